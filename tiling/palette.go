package tiling

import (
	"image/color"

	"golang.org/x/exp/shiny/materialdesign/colornames"
)

var (
	tilePalette = []color.RGBA{
		colornames.Indigo500,
		colornames.Teal500,
		colornames.Amber500,
		colornames.DeepOrange500,
		colornames.Purple500,
		colornames.LightBlue500,
		colornames.Lime500,
		colornames.Pink500,
	}
	vertexPalette = []color.RGBA{
		colornames.Indigo100,
		colornames.Teal100,
		colornames.Amber100,
		colornames.DeepOrange100,
		colornames.Purple100,
		colornames.LightBlue100,
		colornames.Lime100,
		colornames.Pink100,
	}
)

// palette returns the outline and centroid colors of a polygon by ring.
func palette(s Shape, ring int) (base, tint [3]float32) {
	pal := tilePalette
	if s == ShapeVertex {
		pal = vertexPalette
	}
	c := pal[ring%len(pal)]
	base = rgb(c)
	for i, v := range base {
		tint[i] = v + (1-v)/4
	}
	return base, tint
}

func rgb(c color.RGBA) [3]float32 {
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}
