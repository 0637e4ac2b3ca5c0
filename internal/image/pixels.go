package image

import (
	"image"
	"image/color"
)

// opaque is implemented by the standard image types.
type opaque interface {
	Opaque() bool
}

// HasAlpha reports whether img carries any non-opaque pixel. Images that
// cannot answer cheaply are scanned.
func HasAlpha(img image.Image) bool {
	if o, ok := img.(opaque); ok {
		return !o.Opaque()
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

// Pixels flattens img row by row into non-premultiplied bytes: 4 per pixel
// when the image has alpha, 3 otherwise.
func Pixels(img image.Image) (data []byte, hasAlpha bool) {
	hasAlpha = HasAlpha(img)
	stride := 3
	if hasAlpha {
		stride = 4
	}

	b := img.Bounds()
	data = make([]byte, 0, b.Dx()*b.Dy()*stride)

	if nrgba, ok := img.(*image.NRGBA); ok && hasAlpha {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			start := nrgba.PixOffset(b.Min.X, y)
			data = append(data, nrgba.Pix[start:start+b.Dx()*4]...)
		}
		return data, hasAlpha
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			data = append(data, c.R, c.G, c.B)
			if hasAlpha {
				data = append(data, c.A)
			}
		}
	}
	return data, hasAlpha
}
