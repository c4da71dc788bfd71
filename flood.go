package svgfx

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Flood is feFlood: the whole subregion filled with one colour.
type Flood struct {
	base
	color   color.NRGBA
	opacity float64
}

// NewFlood creates an opaque black flood.
func NewFlood() *Flood {
	return &Flood{color: color.NRGBA{A: 255}, opacity: 1}
}

func (f *Flood) Type() PrimitiveType { return TypeFlood }

// SetColor sets the flood colour. Its alpha multiplies flood-opacity.
func (f *Flood) SetColor(c color.NRGBA) { f.color = c }

// SetOpacity sets flood-opacity, clamped to [0, 1].
func (f *Flood) SetOpacity(a float64) {
	if math.IsNaN(a) {
		return
	}
	f.opacity = math.Max(0, math.Min(1, a))
}

func (f *Flood) SetAttribute(name, value string) error {
	switch name {
	case "flood-color":
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		f.color = c
		return nil
	case "flood-opacity":
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("%w: flood-opacity=%q", ErrInvalidAttribute, value)
		}
		f.SetOpacity(v)
		return nil
	}
	return f.setCommon(name, value)
}

// ParseColor reads a CSS colour: a named colour, "transparent", or #rgb /
// #rrggbb hex.
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "transparent" {
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[v]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}, nil
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: colour %q", ErrInvalidAttribute, s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func (f *Flood) Render(s *Slot) {
	a := float64(f.color.A) / 255 * f.opacity
	pa := unitByte(a)
	pr := unitByte(float64(f.color.R) / 255 * a)
	pg := unitByte(float64(f.color.G) / 255 * a)
	pb := unitByte(float64(f.color.B) / 255 * a)

	out := s.blank(FormatARGB32)
	out.ci = ColorInterpolationSRGB
	for y := 0; y < out.height; y++ {
		row := out.Row(y)
		for i := 0; i < len(row); i += 4 {
			row[i], row[i+1], row[i+2], row[i+3] = pr, pg, pb, pa
		}
	}
	f.write(s, out.convertedTo(f.space(s)))
}

func unitByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
