package svgfx

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/clone"

	"github.com/gogpu/svgfx/internal/blur"
	svgcolor "github.com/gogpu/svgfx/internal/color"
)

// Format is the pixel layout of a Buffer.
type Format uint8

const (
	// FormatA8 stores one alpha byte per pixel.
	FormatA8 Format = iota
	// FormatARGB32 stores premultiplied R, G, B, A bytes per pixel.
	FormatARGB32
)

// BytesPerPixel returns the number of bytes per pixel.
func (f Format) BytesPerPixel() int {
	if f == FormatA8 {
		return 1
	}
	return 4
}

// String returns a short name of the format.
func (f Format) String() string {
	switch f {
	case FormatA8:
		return "A8"
	case FormatARGB32:
		return "ARGB32"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
}

// ColorInterpolation is the value of color-interpolation-filters, and the
// color space tag carried by a buffer.
type ColorInterpolation uint8

const (
	// ColorInterpolationAuto leaves pixels in whatever space they are in.
	ColorInterpolationAuto ColorInterpolation = iota
	ColorInterpolationSRGB
	ColorInterpolationLinearRGB
)

// String returns the CSS keyword.
func (ci ColorInterpolation) String() string {
	switch ci {
	case ColorInterpolationSRGB:
		return "sRGB"
	case ColorInterpolationLinearRGB:
		return "linearRGB"
	default:
		return "auto"
	}
}

func (ci ColorInterpolation) space() svgcolor.Space {
	if ci == ColorInterpolationLinearRGB {
		return svgcolor.LinearRGB
	}
	return svgcolor.SRGB
}

const (
	// MaxBufferDimension is the largest accepted width or height.
	MaxBufferDimension = 1 << 15
	// maxBufferBytes bounds the allocation of a single buffer.
	maxBufferBytes = 1 << 30
)

// Buffer is an addressable 2D grid of 8-bit pixels.
//
// Thread safety: a Buffer is not safe for concurrent mutation.
type Buffer struct {
	pix    []byte
	width  int
	height int
	stride int
	format Format
	ci     ColorInterpolation
}

// NewBuffer allocates a transparent buffer.
// Returns ErrInvalidDimensions for non-positive sizes and ErrBufferTooLarge
// when the allocation would exceed the size limit.
func NewBuffer(format Format, width, height int) (*Buffer, error) {
	if err := checkSize(format, width, height); err != nil {
		return nil, err
	}
	return newBuffer(format, width, height), nil
}

// newBuffer allocates without validation.
func newBuffer(format Format, width, height int) *Buffer {
	bpp := format.BytesPerPixel()
	return &Buffer{
		pix:    make([]byte, width*height*bpp),
		width:  width,
		height: height,
		stride: width * bpp,
		format: format,
	}
}

// BufferFromImage copies any image into a premultiplied ARGB32 buffer
// tagged sRGB.
func BufferFromImage(img image.Image) *Buffer {
	rgba := clone.AsRGBA(img)
	b := rgba.Bounds()
	return &Buffer{
		pix:    rgba.Pix,
		width:  b.Dx(),
		height: b.Dy(),
		stride: rgba.Stride,
		format: FormatARGB32,
		ci:     ColorInterpolationSRGB,
	}
}

// Format returns the pixel format.
func (b *Buffer) Format() Format { return b.format }

// Width returns the width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Buffer) Height() int { return b.height }

// Stride returns the number of bytes between rows.
func (b *Buffer) Stride() int { return b.stride }

// Pix returns the raw pixel bytes.
func (b *Buffer) Pix() []byte { return b.pix }

// Bounds returns the buffer rectangle with its origin at (0, 0).
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// ColorInterpolation returns the color space tag.
func (b *Buffer) ColorInterpolation() ColorInterpolation { return b.ci }

// SetColorInterpolation retags the buffer without converting pixels.
func (b *Buffer) SetColorInterpolation(ci ColorInterpolation) { b.ci = ci }

// Row returns the bytes of row y.
func (b *Buffer) Row(y int) []byte {
	off := y * b.stride
	return b.pix[off : off+b.width*b.format.BytesPerPixel()]
}

// Clone returns a deep copy with a tightly packed stride.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{
		width:  b.width,
		height: b.height,
		stride: b.width * b.format.BytesPerPixel(),
		format: b.format,
		ci:     b.ci,
	}
	c.pix = make([]byte, c.stride*c.height)
	for y := 0; y < b.height; y++ {
		copy(c.Row(y), b.Row(y))
	}
	return c
}

// Clear sets every pixel to transparent.
func (b *Buffer) Clear() {
	clear(b.pix)
}

// CopyFrom overwrites b with src, which must have the same size and
// format. The color space tag is copied too.
func (b *Buffer) CopyFrom(src *Buffer) {
	for y := 0; y < b.height && y < src.height; y++ {
		copy(b.Row(y), src.Row(y))
	}
	b.ci = src.ci
}

// Image returns an image view sharing the buffer's pixels: *image.Alpha
// for FormatA8 and *image.RGBA for FormatARGB32.
func (b *Buffer) Image() draw.Image {
	r := b.Bounds()
	if b.format == FormatA8 {
		return &image.Alpha{Pix: b.pix, Stride: b.stride, Rect: r}
	}
	return &image.RGBA{Pix: b.pix, Stride: b.stride, Rect: r}
}

// At returns the premultiplied pixel at (x, y). A8 pixels are reported as
// black with the stored alpha.
func (b *Buffer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return color.RGBA{}
	}
	if b.format == FormatA8 {
		return color.RGBA{A: b.pix[y*b.stride+x]}
	}
	i := y*b.stride + x*4
	p := b.pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// ExtractAlpha returns a new A8 buffer holding the alpha channel.
func (b *Buffer) ExtractAlpha() *Buffer {
	out := &Buffer{
		pix:    make([]byte, b.width*b.height),
		width:  b.width,
		height: b.height,
		stride: b.width,
		format: FormatA8,
		ci:     b.ci,
	}
	if b.format == FormatA8 {
		for y := 0; y < b.height; y++ {
			copy(out.Row(y), b.Row(y))
		}
		return out
	}
	for y := 0; y < b.height; y++ {
		src := b.Row(y)
		dst := out.Row(y)
		for x := range dst {
			dst[x] = src[x*4+3]
		}
	}
	return out
}

// ToARGB32 returns b itself when it is already ARGB32, otherwise a new
// buffer with black colour and the same alpha.
func (b *Buffer) ToARGB32() *Buffer {
	if b.format == FormatARGB32 {
		return b
	}
	out := &Buffer{
		pix:    make([]byte, b.width*b.height*4),
		width:  b.width,
		height: b.height,
		stride: b.width * 4,
		format: FormatARGB32,
		ci:     b.ci,
	}
	for y := 0; y < b.height; y++ {
		src := b.Row(y)
		dst := out.Row(y)
		for x, a := range src {
			dst[x*4+3] = a
		}
	}
	return out
}

// convertedTo returns the buffer in the requested color space, converting
// a copy when needed. A8 buffers and the Auto target are returned as is.
// Untagged buffers are treated as sRGB.
func (b *Buffer) convertedTo(ci ColorInterpolation) *Buffer {
	if ci == ColorInterpolationAuto || b.format == FormatA8 {
		return b
	}
	from := b.ci
	if from == ColorInterpolationAuto {
		from = ColorInterpolationSRGB
	}
	if from == ci {
		return b
	}
	c := b.Clone()
	svgcolor.ConvertPremultiplied(c.pix, c.stride, c.width, c.height, from.space(), ci.space())
	c.ci = ci
	return c
}

// plane exposes the pixels to the blur engine.
func (b *Buffer) plane() blur.Plane {
	return blur.Plane{
		Pix:           b.pix,
		Width:         b.width,
		Height:        b.height,
		Stride:        b.stride,
		Channels:      b.format.BytesPerPixel(),
		Premultiplied: b.format == FormatARGB32,
	}
}

// clearOutside makes every pixel outside r transparent.
func (b *Buffer) clearOutside(r image.Rectangle) {
	r = r.Intersect(b.Bounds())
	bpp := b.format.BytesPerPixel()
	for y := 0; y < b.height; y++ {
		row := b.Row(y)
		if y < r.Min.Y || y >= r.Max.Y {
			clear(row)
			continue
		}
		clear(row[:r.Min.X*bpp])
		clear(row[r.Max.X*bpp:])
	}
}

// checkSize validates dimensions the way NewBuffer does.
func checkSize(format Format, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxBufferDimension || height > MaxBufferDimension ||
		int64(width)*int64(height)*int64(format.BytesPerPixel()) > maxBufferBytes {
		return fmt.Errorf("%w: %dx%d %s", ErrBufferTooLarge, width, height, format)
	}
	return nil
}
