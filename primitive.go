package svgfx

import (
	"fmt"
	"image"
	"strings"
)

// PrimitiveType names one of the SVG filter primitives.
type PrimitiveType uint8

const (
	TypeBlend PrimitiveType = iota
	TypeColorMatrix
	TypeComponentTransfer
	TypeComposite
	TypeConvolveMatrix
	TypeDiffuseLighting
	TypeDisplacementMap
	TypeFlood
	TypeGaussianBlur
	TypeImage
	TypeMerge
	TypeMorphology
	TypeOffset
	TypeSpecularLighting
	TypeTile
	TypeTurbulence

	primitiveTypeCount
)

var primitiveTypeNames = [primitiveTypeCount]string{
	TypeBlend:             "feBlend",
	TypeColorMatrix:       "feColorMatrix",
	TypeComponentTransfer: "feComponentTransfer",
	TypeComposite:         "feComposite",
	TypeConvolveMatrix:    "feConvolveMatrix",
	TypeDiffuseLighting:   "feDiffuseLighting",
	TypeDisplacementMap:   "feDisplacementMap",
	TypeFlood:             "feFlood",
	TypeGaussianBlur:      "feGaussianBlur",
	TypeImage:             "feImage",
	TypeMerge:             "feMerge",
	TypeMorphology:        "feMorphology",
	TypeOffset:            "feOffset",
	TypeSpecularLighting:  "feSpecularLighting",
	TypeTile:              "feTile",
	TypeTurbulence:        "feTurbulence",
}

// String returns the SVG element name.
func (t PrimitiveType) String() string {
	if t < primitiveTypeCount {
		return primitiveTypeNames[t]
	}
	return fmt.Sprintf("PrimitiveType(%d)", t)
}

// ParsePrimitiveType reads an element name such as "feGaussianBlur". The
// "fe" prefix is optional and case is ignored.
func ParsePrimitiveType(s string) (PrimitiveType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "fe")
	for i, n := range primitiveTypeNames {
		if strings.ToLower(n[2:]) == name {
			return PrimitiveType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: primitive type %q", ErrInvalidAttribute, s)
}

// Primitive is one operation of a filter chain. It reads its inputs from
// a Slot and writes exactly one output back.
type Primitive interface {
	Type() PrimitiveType
	// Render runs the primitive. It never fails: problems produce a
	// transparent or pass-through output.
	Render(s *Slot)
	// AreaEnlarge grows a display-space area by the primitive's reach.
	AreaEnlarge(area image.Rectangle, m Matrix) image.Rectangle
	// Complexity is the relative cost of rendering under m, at least 1.
	Complexity(m Matrix) float64
	// CanHandleAffine reports whether the primitive is correct in a pixel
	// buffer that is related to user space by m.
	CanHandleAffine(m Matrix) bool
	UsesBackground() bool
	SetInput(id SlotID)
	SetInputN(index int, id SlotID)
	SetOutput(id SlotID)
	Output() SlotID
	SetSubregion(r Region)
	SetColorInterpolation(ci ColorInterpolation)
	// SetAttribute sets a parameter from its SVG attribute form.
	SetAttribute(name, value string) error
}

// constructors creates the implemented primitives; nil entries are
// recognised but unsupported.
var constructors = [primitiveTypeCount]func() Primitive{
	TypeBlend:        func() Primitive { return NewBlend() },
	TypeColorMatrix:  func() Primitive { return NewColorMatrix() },
	TypeComposite:    func() Primitive { return NewComposite() },
	TypeFlood:        func() Primitive { return NewFlood() },
	TypeGaussianBlur: func() Primitive { return NewGaussian() },
	TypeMerge:        func() Primitive { return NewMerge() },
	TypeOffset:       func() Primitive { return NewOffset() },
}

// NewPrimitive creates a primitive with default parameters.
func NewPrimitive(t PrimitiveType) (Primitive, error) {
	if t >= primitiveTypeCount || constructors[t] == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPrimitive, t)
	}
	return constructors[t](), nil
}

// base holds what every primitive shares: input wiring, output, subregion
// and color-interpolation-filters.
type base struct {
	inputs    []SlotID
	output    SlotID
	subregion *Region
	ci        ColorInterpolation
}

func (p *base) SetInput(id SlotID) { p.SetInputN(0, id) }

func (p *base) SetInputN(index int, id SlotID) {
	if index < 0 {
		return
	}
	for len(p.inputs) <= index {
		p.inputs = append(p.inputs, NotSet)
	}
	p.inputs[index] = id
}

// input returns input n, or NotSet when it was never wired.
func (p *base) input(n int) SlotID {
	if n < len(p.inputs) {
		return p.inputs[n]
	}
	return NotSet
}

func (p *base) SetOutput(id SlotID) { p.output = id }

func (p *base) Output() SlotID { return p.output }

func (p *base) SetSubregion(r Region) { p.subregion = &r }

func (p *base) SetColorInterpolation(ci ColorInterpolation) { p.ci = ci }

func (p *base) AreaEnlarge(area image.Rectangle, _ Matrix) image.Rectangle { return area }

func (p *base) Complexity(Matrix) float64 { return 1 }

func (p *base) CanHandleAffine(Matrix) bool { return true }

func (p *base) UsesBackground() bool {
	for _, id := range p.inputs {
		if id.IsBackground() {
			return true
		}
	}
	return false
}

// space returns the color space the primitive works in.
func (p *base) space(s *Slot) ColorInterpolation {
	if p.ci != ColorInterpolationAuto {
		return p.ci
	}
	return s.ColorInterpolation()
}

// read fetches input n converted to the primitive's color space. The
// returned buffer may be shared with the slot and must not be modified.
func (p *base) read(s *Slot, n int) *Buffer {
	return s.Get(p.input(n)).convertedTo(p.space(s))
}

// write tags out, clears it outside the subregion and hands it to the slot.
func (p *base) write(s *Slot, out *Buffer) {
	if ci := p.space(s); ci != ColorInterpolationAuto && out.format != FormatA8 {
		out.ci = ci
	}
	if p.subregion != nil {
		if r, ok := s.pixelRegion(*p.subregion); ok {
			out.clearOutside(r)
		} else {
			out.Clear()
		}
	}
	s.set(p.output, out)
}

// setCommon handles attributes every primitive accepts.
func (p *base) setCommon(name, value string) error {
	switch name {
	case "color-interpolation-filters":
		ci, err := ParseColorInterpolation(value)
		if err != nil {
			return err
		}
		p.ci = ci
		return nil
	}
	return fmt.Errorf("%w: unknown attribute %q", ErrInvalidAttribute, name)
}

// ParseColorInterpolation reads a color-interpolation-filters keyword.
func ParseColorInterpolation(s string) (ColorInterpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return ColorInterpolationAuto, nil
	case "srgb":
		return ColorInterpolationSRGB, nil
	case "linearrgb":
		return ColorInterpolationLinearRGB, nil
	}
	return ColorInterpolationAuto, fmt.Errorf("%w: color-interpolation-filters %q", ErrInvalidAttribute, s)
}

// promote returns both buffers in a common format: A8 when both are A8,
// ARGB32 otherwise.
func promote(a, b *Buffer) (*Buffer, *Buffer) {
	if a.format == b.format {
		return a, b
	}
	return a.ToARGB32(), b.ToARGB32()
}
