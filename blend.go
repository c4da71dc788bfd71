package svgfx

import (
	"fmt"

	"github.com/gogpu/svgfx/internal/blend"
)

// Blend is feBlend: the first input is blended onto the second with a
// CSS blend mode.
type Blend struct {
	base
	mode blend.Mode
}

// NewBlend creates a blend in normal mode.
func NewBlend() *Blend {
	return &Blend{mode: blend.ModeNormal}
}

func (b *Blend) Type() PrimitiveType { return TypeBlend }

// SetMode selects the blend mode by its keyword.
func (b *Blend) SetMode(name string) error {
	m, ok := blend.ParseMode(name)
	if !ok {
		return fmt.Errorf("%w: blend mode %q", ErrInvalidAttribute, name)
	}
	b.mode = m
	return nil
}

// Mode returns the keyword of the current mode.
func (b *Blend) Mode() string { return b.mode.String() }

func (b *Blend) SetAttribute(name, value string) error {
	if name == "mode" {
		return b.SetMode(value)
	}
	return b.setCommon(name, value)
}

func (b *Blend) Render(s *Slot) {
	src := b.read(s, 0)
	backdrop := b.read(s, 1)
	b.write(s, combine(src, backdrop, blend.ModeFunc(b.mode)))
}

// combine applies fn to every pixel pair. A8 is kept only when both inputs
// are A8.
func combine(src, backdrop *Buffer, fn blend.Func) *Buffer {
	src, backdrop = promote(src, backdrop)
	w := min(src.width, backdrop.width)
	h := min(src.height, backdrop.height)
	out := newBuffer(src.format, w, h)
	out.ci = src.ci
	bpp := src.format.BytesPerPixel()
	for y := 0; y < h; y++ {
		d := out.Row(y)
		sr := src.Row(y)[:w*bpp]
		br := backdrop.Row(y)[:w*bpp]
		if src.format == FormatA8 {
			blend.ApplyAlpha(d, sr, br, fn)
		} else {
			blend.Apply(d, sr, br, fn)
		}
	}
	return out
}
