package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"dasa.cc/hyperbolic/geom"
	"dasa.cc/hyperbolic/projection"
	"dasa.cc/hyperbolic/tiling"

	"github.com/nfnt/resize"
	"golang.org/x/exp/shiny/materialdesign/colornames"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func mesh(t testing.TB, p tiling.Params) *tiling.Mesh {
	m, err := tiling.Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func near(a, b color.Color, tol int) bool {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	d := func(x, y uint32) bool {
		v := int(x>>8) - int(y>>8)
		return v >= -tol && v <= tol
	}
	return d(ar, br) && d(ag, bg) && d(ab, bb)
}

func TestRender(t *testing.T) {
	m := mesh(t, tiling.Params{P: 7, Q: 3, Depth: 2})
	for _, model := range projection.Models() {
		img := Render(m, model, geom.Identity(), Options{Width: 120, Height: 80, EdgeWidth: 1})
		if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 80 {
			t.Fatalf("%v: bounds %v", model, img.Bounds())
		}
		if model == projection.HalfPlane {
			continue
		}
		if c := img.At(60, 40); !near(c, colornames.Indigo500, 1) {
			t.Errorf("%v: center %v, want %v", model, c, colornames.Indigo500)
		}
	}

	// the disk boundary never reaches the corners
	img := Render(m, projection.Poincare, geom.Identity(), Options{Width: 120, Height: 80})
	if c := img.At(0, 0); !near(c, colornames.BlueGrey900, 0) {
		t.Errorf("corner %v, want background", c)
	}
}

func TestRenderView(t *testing.T) {
	m := mesh(t, tiling.Params{P: 7, Q: 3, Depth: 2})
	d, err := tiling.NewDomain(7, 3)
	if err != nil {
		t.Fatal(err)
	}
	// move a neighbouring tile to the center
	view := geom.Translation(1, 0, 2*d.Inradius)
	img := Render(m, projection.Poincare, view, Options{Width: 64, Height: 64})
	if c := img.At(32, 32); near(c, colornames.Indigo500, 8) {
		t.Fatalf("center still shows the central tile: %v", c)
	}
}

func TestSupersample(t *testing.T) {
	m := mesh(t, tiling.Params{P: 5, Q: 4, Kind: tiling.KindTruncated, Depth: 1})
	img := Render(m, projection.Klein, geom.Identity(), Options{
		Width: 50, Height: 50, Supersample: 3, Filter: resize.Lanczos3, EdgeWidth: 1,
		Caption: "{5,4}",
	})
	if img.Bounds() != image.Rect(0, 0, 50, 50) {
		t.Fatalf("bounds %v", img.Bounds())
	}
}

func TestCaption(t *testing.T) {
	m := mesh(t, tiling.Params{P: 7, Q: 3})
	plain := Render(m, projection.Poincare, geom.Identity(), Options{Width: 200, Height: 200})
	captioned := Render(m, projection.Poincare, geom.Identity(), Options{Width: 200, Height: 200, Caption: "{7,3}"})
	if bytes.Equal(plain.Pix, captioned.Pix) {
		t.Fatal("caption drew nothing")
	}
	// top half is untouched
	n := plain.Stride * 100
	if !bytes.Equal(plain.Pix[:n], captioned.Pix[:n]) {
		t.Fatal("caption drew outside the bottom band")
	}
}

func TestEncode(t *testing.T) {
	img := Render(mesh(t, tiling.Params{P: 7, Q: 3}), projection.Poincare, geom.Identity(), Options{Width: 16, Height: 16})

	decoders := map[Format]func(*bytes.Buffer) (image.Image, error){
		PNG:  func(b *bytes.Buffer) (image.Image, error) { m, _, err := image.Decode(b); return m, err },
		BMP:  func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) },
		TIFF: func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(b) },
	}
	for f, decode := range decoders {
		var buf bytes.Buffer
		if err := Encode(&buf, img, f); err != nil {
			t.Fatal(err)
		}
		m, err := decode(&buf)
		if err != nil {
			t.Fatalf("format %v: %v", f, err)
		}
		if !near(m.At(8, 8), img.At(8, 8), 0) {
			t.Errorf("format %v: have %v, want %v", f, m.At(8, 8), img.At(8, 8))
		}
	}

	if err := Encode(&bytes.Buffer{}, img, Format(9)); !errors.Is(err, ErrFormat) {
		t.Fatalf("have %v", err)
	}
}

func TestFormatFor(t *testing.T) {
	for path, want := range map[string]Format{"a.png": PNG, "b.BMP": BMP, "c.tif": TIFF, "d.tiff": TIFF} {
		if f, err := FormatFor(path); err != nil || f != want {
			t.Errorf("%q: have %v %v, want %v", path, f, err, want)
		}
	}
	if _, err := FormatFor("e.jpg"); !errors.Is(err, ErrFormat) {
		t.Fatalf("have %v", err)
	}
	if err := Save(filepath.Join(t.TempDir(), "x.gif"), image.NewRGBA(image.Rect(0, 0, 1, 1))); !errors.Is(err, ErrFormat) {
		t.Fatalf("have %v", err)
	}
	if err := Save(filepath.Join(t.TempDir(), "x.png"), image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
}

func TestParseFilter(t *testing.T) {
	if f, err := ParseFilter("Lanczos3"); err != nil || f != resize.Lanczos3 {
		t.Fatalf("have %v %v", f, err)
	}
	if _, err := ParseFilter("box"); !errors.Is(err, ErrFilter) {
		t.Fatalf("have %v", err)
	}
}

func BenchmarkRender(b *testing.B) {
	m := mesh(b, tiling.Params{P: 7, Q: 3, Depth: 4})
	for i := 0; i < b.N; i++ {
		Render(m, projection.Poincare, geom.Identity(), Options{Width: 512, Height: 512, EdgeWidth: 1})
	}
}
