package glw

// The vertex shader applies the view isometry on the hyperboloid and then
// the projection selected by the projection uniform, numbered as
// projection.Model.
const vertexShader VertSrc = `#version 410 core

uniform mat4 viewport;
uniform mat4 model;
uniform int projection;

in vec3 position;
in vec3 color;

out vec3 vcolor;

const float limit = 1e4;

void main() {
	vec3 p = (model * vec4(position, 1.0)).xyz;
	vec2 q;
	if (projection == 1) {
		q = p.xy / p.z;
	} else if (projection == 2) {
		vec2 w = p.xy / (1.0 + p.z);
		float d = max((1.0-w.x)*(1.0-w.x) + w.y*w.y, 1e-12);
		q = clamp(vec2(-2.0*w.y, 1.0 - dot(w, w)) / d - vec2(0.0, 1.0), -limit, limit);
	} else if (projection == 3) {
		q = clamp(p.xy / 2.0, -limit, limit);
	} else {
		q = p.xy / (1.0 + p.z);
	}
	gl_Position = viewport * vec4(q, 0.0, 1.0);
	vcolor = color;
}
`

const fragmentShader FragSrc = `#version 410 core

uniform int outline;

in vec3 vcolor;

out vec4 frag;

void main() {
	if (outline == 1) {
		frag = vec4(0.98, 0.98, 0.98, 1.0);
	} else {
		frag = vec4(vcolor, 1.0);
	}
}
`
