package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/math/fixed"
)

var monobold = mustParseTTF(gomonobold.TTF)

func mustParseTTF(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic(err)
	}
	return f
}

// captionFace is sized to the image so captions read the same at any
// output resolution.
func captionFace(height int) font.Face {
	size := float64(height) / 32
	if size < 10 {
		size = 10
	}
	return truetype.NewFace(monobold, &truetype.Options{Size: size, Hinting: font.HintingFull})
}

// drawCaption writes s in the bottom left corner of dst over a shaded band.
func drawCaption(dst *image.RGBA, s string, clr color.Color) {
	face := captionFace(dst.Bounds().Dy())
	defer face.Close()

	m := face.Metrics()
	pad := m.Height.Ceil() / 2
	band := image.Rect(0, dst.Bounds().Dy()-m.Height.Ceil()-2*pad, font.MeasureString(face, s).Ceil()+2*pad, dst.Bounds().Dy())
	draw.Draw(dst, band, image.NewUniform(color.RGBA{A: 0x80}), image.Point{}, draw.Over)

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(clr),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(band.Min.X + pad),
			Y: fixed.I(band.Min.Y+pad) + m.Ascent,
		},
	}
	d.DrawString(s)
}
