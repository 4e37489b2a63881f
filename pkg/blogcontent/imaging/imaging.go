// Package imaging applies client-requested edits (crop, brightness,
// contrast, saturation) to uploaded images before they reach the asset
// store. The output is always JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

const jpegQuality = 85

// Effect names accepted in edit descriptors.
const (
	EffectCrop       = "crop"
	EffectBrightness = "brightness"
	EffectContrast   = "contrast"
	EffectSaturation = "saturation"
)

// Edit describes one named effect. Crop uses the rectangle fields;
// brightness, contrast and saturation use Value, a signed scalar in
// [-100, 100].
type Edit struct {
	Effect string  `json:"effect"`
	X      int     `json:"x,omitempty"`
	Y      int     `json:"y,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Value  float64 `json:"value,omitempty"`
}

// Apply decodes the image from src, applies the edits in order and returns
// the JPEG-encoded result together with its MIME type.
func Apply(src io.Reader, edits []Edit) (io.Reader, string, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	for i, e := range edits {
		switch e.Effect {
		case EffectCrop:
			img, err = crop(img, e)
			if err != nil {
				return nil, "", fmt.Errorf("edit %d: %w", i, err)
			}
		case EffectBrightness:
			img = mapPixels(img, brightness(e.Value))
		case EffectContrast:
			img = mapPixels(img, contrast(e.Value))
		case EffectSaturation:
			img = saturate(img, e.Value)
		default:
			return nil, "", fmt.Errorf("edit %d: unknown effect %q", i, e.Effect)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("encode jpeg: %w", err)
	}
	return &buf, "image/jpeg", nil
}

func crop(img image.Image, e Edit) (image.Image, error) {
	rect := image.Rect(e.X, e.Y, e.X+e.Width, e.Y+e.Height)
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("crop rectangle %dx%d at (%d,%d) is outside the image", e.Width, e.Height, e.X, e.Y)
	}

	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Copy(dst, image.Point{}, img, rect, draw.Src, nil)
	return dst, nil
}

// mapPixels applies a per-channel transfer function to every pixel.
func mapPixels(img image.Image, f func(uint8) uint8) image.Image {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			i := dst.PixOffset(x-bounds.Min.X, y-bounds.Min.Y)
			dst.Pix[i+0] = f(uint8(r >> 8))
			dst.Pix[i+1] = f(uint8(g >> 8))
			dst.Pix[i+2] = f(uint8(b >> 8))
			dst.Pix[i+3] = uint8(a >> 8)
		}
	}
	return dst
}

func brightness(value float64) func(uint8) uint8 {
	offset := value * 255 / 100
	return func(c uint8) uint8 {
		return clamp(float64(c) + offset)
	}
}

func contrast(value float64) func(uint8) uint8 {
	factor := (259 * (value + 255)) / (255 * (259 - value))
	return func(c uint8) uint8 {
		return clamp(factor*(float64(c)-128) + 128)
	}
}

func saturate(img image.Image, value float64) image.Image {
	amount := 1 + value/100
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			rf, gf, bf := float64(r>>8), float64(g>>8), float64(b>>8)
			gray := 0.299*rf + 0.587*gf + 0.114*bf
			i := dst.PixOffset(x-bounds.Min.X, y-bounds.Min.Y)
			dst.Pix[i+0] = clamp(gray + (rf-gray)*amount)
			dst.Pix[i+1] = clamp(gray + (gf-gray)*amount)
			dst.Pix[i+2] = clamp(gray + (bf-gray)*amount)
			dst.Pix[i+3] = uint8(a >> 8)
		}
	}
	return dst
}

func clamp(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
