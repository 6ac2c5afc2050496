// Package raster draws tiling meshes into images without a GPU.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"dasa.cc/hyperbolic/geom"
	"dasa.cc/hyperbolic/projection"
	"dasa.cc/hyperbolic/tiling"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/nfnt/resize"
	"golang.org/x/exp/shiny/materialdesign/colornames"
	"golang.org/x/image/vector"
)

// Options control Render. The zero value renders 640x480 with no
// supersampling.
type Options struct {
	Width, Height int

	// Supersample renders at this multiple of the output size and
	// scales down with Filter.
	Supersample int
	Filter      resize.InterpolationFunction

	Background color.Color
	Edge       color.Color

	// EdgeWidth is in output pixels; zero draws no edges.
	EdgeWidth float32

	Caption string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 640
	}
	if o.Height <= 0 {
		o.Height = 480
	}
	if o.Supersample < 1 {
		o.Supersample = 1
	}
	if o.Background == nil {
		o.Background = colornames.BlueGrey900
	}
	if o.Edge == nil {
		o.Edge = colornames.Grey50
	}
	return o
}

// Render draws mesh projected by model after moving it by view. The
// visible region matches the viewer: y spans [-1, 1] and x is scaled by
// the aspect ratio.
func Render(mesh *tiling.Mesh, model projection.Model, view geom.Isometry, opt Options) *image.RGBA {
	opt = opt.withDefaults()
	w, h := opt.Width*opt.Supersample, opt.Height*opt.Supersample

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(opt.Background), image.Point{}, draw.Src)

	c := canvas{
		dst:    dst,
		z:      vector.NewRasterizer(w, h),
		w:      float64(w),
		h:      float64(h),
		aspect: float64(w) / float64(h),
	}
	edge := image.NewUniform(opt.Edge)
	pts := make([]mgl64.Vec2, 0, 64)
	for i, f := range mesh.Faces {
		pts = pts[:0]
		for _, p := range mesh.Outline(i) {
			pts = append(pts, c.pixel(projection.Project(model, p, view)))
		}
		c.fill(pts, image.NewUniform(rgba(mesh.Vertices[f.First+1].Color)))
		if opt.EdgeWidth > 0 {
			c.stroke(pts, float64(opt.EdgeWidth)*float64(opt.Supersample), edge)
		}
	}

	out := dst
	if opt.Supersample > 1 {
		m := resize.Resize(uint(opt.Width), uint(opt.Height), dst, opt.Filter)
		out = image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
		draw.Draw(out, out.Bounds(), m, m.Bounds().Min, draw.Src)
	}
	if opt.Caption != "" {
		drawCaption(out, opt.Caption, opt.Edge)
	}
	return out
}

type canvas struct {
	dst    *image.RGBA
	z      *vector.Rasterizer
	w, h   float64
	aspect float64
}

// pixel maps view coordinates to pixel coordinates, y down. Points far
// off canvas are pulled in to keep the rasterizer's scanline loop short.
func (c canvas) pixel(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		mgl64.Clamp((v[0]/c.aspect+1)/2*c.w, -4*c.w, 5*c.w),
		mgl64.Clamp((1-v[1])/2*c.h, -4*c.h, 5*c.h),
	}
}

func (c canvas) fill(pts []mgl64.Vec2, src image.Image) {
	if len(pts) < 3 {
		return
	}
	c.z.Reset(c.dst.Bounds().Dx(), c.dst.Bounds().Dy())
	c.z.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
	for _, p := range pts[1:] {
		c.z.LineTo(float32(p[0]), float32(p[1]))
	}
	c.z.ClosePath()
	c.z.Draw(c.dst, c.dst.Bounds(), src, image.Point{})
}

// stroke outlines the closed path pts with quads of the given width.
func (c canvas) stroke(pts []mgl64.Vec2, width float64, src image.Image) {
	c.z.Reset(c.dst.Bounds().Dx(), c.dst.Bounds().Dy())
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		d := b.Sub(a)
		if d.Len() == 0 {
			continue
		}
		n := mgl64.Vec2{-d[1], d[0]}.Normalize().Mul(width / 2)
		p0, p1, p2, p3 := a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)
		c.z.MoveTo(float32(p0[0]), float32(p0[1]))
		c.z.LineTo(float32(p1[0]), float32(p1[1]))
		c.z.LineTo(float32(p2[0]), float32(p2[1]))
		c.z.LineTo(float32(p3[0]), float32(p3[1]))
		c.z.ClosePath()
	}
	c.z.Draw(c.dst, c.dst.Bounds(), src, image.Point{})
}

func rgba(c [3]float32) color.RGBA {
	return color.RGBA{
		R: uint8(c[0]*255 + 0.5),
		G: uint8(c[1]*255 + 0.5),
		B: uint8(c[2]*255 + 0.5),
		A: 0xff,
	}
}
