// Package texture provides image decoding and texture processing utilities.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	_ "image/jpeg" // glTF image/jpeg MIME
	_ "image/png"  // glTF image/png MIME
)

// Decode decodes PNG or JPEG bytes into an RGBA image ready for GL upload.
// These are the two image formats glTF 2.0 allows.
func Decode(data []byte) (*image.RGBA, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if format != "png" && format != "jpeg" {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image.Image to *image.RGBA.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			rgba.SetRGBA(x, y, color.RGBA{
				R: uint8(r16 >> 8),
				G: uint8(g16 >> 8),
				B: uint8(b16 >> 8),
				A: uint8(a16 >> 8),
			})
		}
	}
	return rgba
}

// Checkerboard builds a gray checkerboard placeholder for materials whose
// textures failed to load.
func Checkerboard(size, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.RGBA{R: 180, G: 180, B: 180, A: 255}
			if (x/cell+y/cell)%2 == 0 {
				c = color.RGBA{R: 90, G: 90, B: 90, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// FlatNormal builds a 1x1 "up" normal map (128,128,255) used when a material
// has no normal texture but the shader still samples one.
func FlatNormal() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 128, G: 128, B: 255, A: 255})
	return img
}

// White builds a 1x1 white texture so untextured materials can share the
// textured shader path.
func White() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}
