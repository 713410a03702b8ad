package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	src.SetRGBA(1, 1, color.RGBA{B: 255, A: 255})

	got, err := Decode(encodePNG(t, src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), src.Bounds())
	}
	if got.RGBAAt(0, 0) != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel (0,0) = %v", got.RGBAAt(0, 0))
	}
}

func TestDecodeJPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatal(err)
	}

	got, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.Bounds().Dx() != 8 || got.Bounds().Dy() != 8 {
		t.Errorf("bounds = %v, want 8x8", got.Bounds())
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image")); err == nil {
		t.Error("expected error for non-image bytes")
	}
}

func TestToRGBAPassthrough(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if ToRGBA(src) != src {
		t.Error("RGBA input should be returned as-is")
	}
}

func TestCheckerboard(t *testing.T) {
	img := Checkerboard(8, 4)
	if img.Bounds().Dx() != 8 {
		t.Errorf("size = %d, want 8", img.Bounds().Dx())
	}
	if img.RGBAAt(0, 0) == img.RGBAAt(4, 0) {
		t.Error("adjacent cells should differ")
	}
}

func TestPlaceholders(t *testing.T) {
	if c := FlatNormal().RGBAAt(0, 0); c != (color.RGBA{R: 128, G: 128, B: 255, A: 255}) {
		t.Errorf("flat normal = %v", c)
	}
	if c := White().RGBAAt(0, 0); c != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("white = %v", c)
	}
}
