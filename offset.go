package svgfx

import (
	"fmt"
	"image"
	"math"
	"strconv"
)

// Offset is feOffset: the input shifted by (dx, dy) primitive units.
type Offset struct {
	base
	dx, dy float64
}

// NewOffset creates a zero offset.
func NewOffset() *Offset {
	return &Offset{}
}

func (o *Offset) Type() PrimitiveType { return TypeOffset }

// SetOffset sets the shift in primitive units.
func (o *Offset) SetOffset(dx, dy float64) {
	o.dx, o.dy = dx, dy
}

func (o *Offset) SetAttribute(name, value string) error {
	var dst *float64
	switch name {
	case "dx":
		dst = &o.dx
	case "dy":
		dst = &o.dy
	default:
		return o.setCommon(name, value)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s=%q", ErrInvalidAttribute, name, value)
	}
	*dst = v
	return nil
}

func (o *Offset) Render(s *Slot) {
	in := o.read(s, 0)
	v := s.Units().PrimitiveUnitsToPixelBuffer().TransformVector(Point{o.dx, o.dy})
	out := newBuffer(in.format, in.width, in.height)
	out.ci = in.ci
	place(out, in, Translate(v.X, v.Y))
	o.write(s, out)
}

// AreaEnlarge extends area towards where the content comes from.
func (o *Offset) AreaEnlarge(area image.Rectangle, m Matrix) image.Rectangle {
	v := m.TransformVector(Point{o.dx, o.dy})
	ex := reach(v.X)
	ey := reach(v.Y)
	if v.X > 0 {
		area.Min.X -= ex
	} else {
		area.Max.X += ex
	}
	if v.Y > 0 {
		area.Min.Y -= ey
	} else {
		area.Max.Y += ey
	}
	return area
}

// reach rounds a distance up to whole pixels, at most MaxBufferDimension.
func reach(d float64) int {
	r := math.Ceil(math.Abs(d))
	if !(r <= MaxBufferDimension) {
		return MaxBufferDimension
	}
	return int(r)
}
