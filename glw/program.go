package glw

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var shaderKinds = map[uint32]string{
	gl.VERTEX_SHADER:   "vertex shader",
	gl.FRAGMENT_SHADER: "fragment shader",
}

// infoLog reads a shader or program log of length n through get.
func infoLog(n int32, get func(int32, *uint8)) string {
	if n <= 0 {
		return ""
	}
	buf := make([]uint8, n+1)
	get(n, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

func compile(kind uint32, src string) (uint32, error) {
	shd := gl.CreateShader(kind)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shd, 1, csrc, nil)
	free()
	gl.CompileShader(shd)

	var ok, n int32
	gl.GetShaderiv(shd, gl.COMPILE_STATUS, &ok)
	if ok != gl.FALSE {
		return shd, nil
	}
	gl.GetShaderiv(shd, gl.INFO_LOG_LENGTH, &n)
	msg := infoLog(n, func(n int32, p *uint8) { gl.GetShaderInfoLog(shd, n, nil, p) })
	gl.DeleteShader(shd)
	return 0, fmt.Errorf("glw: %s: %s", shaderKinds[kind], msg)
}

// VertSrc is vertex shader source.
type VertSrc string

// FragSrc is fragment shader source.
type FragSrc string

// Program is a linked shader program.
type Program struct{ Program uint32 }

func (prg Program) Use()    { gl.UseProgram(prg.Program) }
func (prg Program) Delete() { gl.DeleteProgram(prg.Program) }

// Uniform returns the location of the named uniform, -1 if inactive.
func (prg Program) Uniform(name string) int32 {
	return gl.GetUniformLocation(prg.Program, gl.Str(name+"\x00"))
}

// Attrib returns the location of the named attribute, -1 if inactive.
func (prg Program) Attrib(name string) Attrib {
	return Attrib(gl.GetAttribLocation(prg.Program, gl.Str(name+"\x00")))
}

// Build compiles vsrc and fsrc and links them into prg. The shaders are
// released once linked.
func (prg *Program) Build(vsrc VertSrc, fsrc FragSrc) error {
	var shaders []uint32
	defer func() {
		for _, shd := range shaders {
			gl.DeleteShader(shd)
		}
	}()
	for _, s := range []struct {
		kind uint32
		src  string
	}{{gl.VERTEX_SHADER, string(vsrc)}, {gl.FRAGMENT_SHADER, string(fsrc)}} {
		shd, err := compile(s.kind, s.src)
		if err != nil {
			return err
		}
		shaders = append(shaders, shd)
	}

	prg.Program = gl.CreateProgram()
	for _, shd := range shaders {
		gl.AttachShader(prg.Program, shd)
	}
	gl.LinkProgram(prg.Program)

	var ok, n int32
	gl.GetProgramiv(prg.Program, gl.LINK_STATUS, &ok)
	if ok != gl.FALSE {
		return nil
	}
	gl.GetProgramiv(prg.Program, gl.INFO_LOG_LENGTH, &n)
	msg := infoLog(n, func(n int32, p *uint8) { gl.GetProgramInfoLog(prg.Program, n, nil, p) })
	gl.DeleteProgram(prg.Program)
	prg.Program = 0
	return fmt.Errorf("glw: link: %s", msg)
}

// Unmarshal sets fields of dst to the locations of their lower-cased names
// in prg; nested structs are visited recursively.
func (prg Program) Unmarshal(dst interface{}) {
	var val reflect.Value
	if v, ok := dst.(reflect.Value); ok {
		val = v
	} else {
		val = reflect.ValueOf(dst).Elem()
	}
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		if f := val.Field(i); f.CanSet() {
			p := []rune(typ.Field(i).Name)
			p[0] = unicode.ToLower(p[0])
			name := string(p)
			switch f.Interface().(type) {
			case Attrib:
				f.Set(reflect.ValueOf(prg.Attrib(name)))
			case U1i:
				f.Set(reflect.ValueOf(U1i(prg.Uniform(name))))
			case U16fv:
				f.Set(reflect.ValueOf(U16fv(prg.Uniform(name))))
			default:
				if f.Kind() == reflect.Struct {
					prg.Unmarshal(f)
				}
			}
		}
	}
}
