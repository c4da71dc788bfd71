package svgfx

import (
	"fmt"
	"math"
	"strings"
)

// ColorMatrixType selects how feColorMatrix interprets its values.
type ColorMatrixType uint8

const (
	ColorMatrixMatrix ColorMatrixType = iota
	ColorMatrixSaturate
	ColorMatrixHueRotate
	ColorMatrixLuminanceToAlpha
)

var colorMatrixTypeNames = [...]string{
	ColorMatrixMatrix:           "matrix",
	ColorMatrixSaturate:         "saturate",
	ColorMatrixHueRotate:        "hueRotate",
	ColorMatrixLuminanceToAlpha: "luminanceToAlpha",
}

func (t ColorMatrixType) String() string {
	if int(t) < len(colorMatrixTypeNames) {
		return colorMatrixTypeNames[t]
	}
	return "unknown"
}

// ColorMatrix is feColorMatrix: a 4x5 matrix applied to straight-alpha
// colour in [0, 1].
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
type ColorMatrix struct {
	base
	kind   ColorMatrixType
	values []float64
	matrix [20]float64
}

// NewColorMatrix creates an identity matrix.
func NewColorMatrix() *ColorMatrix {
	c := &ColorMatrix{}
	c.matrix = identityColorMatrix()
	return c
}

func (c *ColorMatrix) Type() PrimitiveType { return TypeColorMatrix }

// Matrix returns the effective 4x5 matrix in row-major order.
func (c *ColorMatrix) Matrix() [20]float64 { return c.matrix }

// SetMatrix sets a full matrix.
func (c *ColorMatrix) SetMatrix(m [20]float64) {
	c.kind = ColorMatrixMatrix
	c.values = m[:]
	c.matrix = m
}

// SetSaturate sets a saturation matrix; 0 is grayscale, 1 unchanged.
func (c *ColorMatrix) SetSaturate(s float64) {
	c.kind = ColorMatrixSaturate
	c.values = []float64{s}
	c.matrix = saturateMatrix(s)
}

// SetHueRotate sets a hue rotation in degrees.
func (c *ColorMatrix) SetHueRotate(deg float64) {
	c.kind = ColorMatrixHueRotate
	c.values = []float64{deg}
	c.matrix = hueRotateMatrix(deg)
}

// SetLuminanceToAlpha converts luminance to alpha and clears the colour.
func (c *ColorMatrix) SetLuminanceToAlpha() {
	c.kind = ColorMatrixLuminanceToAlpha
	c.values = nil
	c.matrix = [20]float64{
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0.2125, 0.7154, 0.0721, 0, 0,
	}
}

// SetAttribute accepts type (also spelled matrixType) and values. A type
// change re-reads the values already given, and values with no type keep
// the current type.
func (c *ColorMatrix) SetAttribute(name, value string) error {
	switch name {
	case "type", "matrixType":
		var kind ColorMatrixType
		found := false
		for i, n := range colorMatrixTypeNames {
			if strings.EqualFold(n, strings.TrimSpace(value)) {
				kind, found = ColorMatrixType(i), true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: color matrix type %q", ErrInvalidAttribute, value)
		}
		return c.apply(kind, c.values)
	case "values":
		v, err := parseNumbers(value, 0, 20)
		if err != nil {
			return err
		}
		return c.apply(c.kind, v)
	}
	return c.setCommon(name, value)
}

// apply rebuilds the matrix. Missing values fall back to the SVG
// defaults: identity, saturate 1, hueRotate 0.
func (c *ColorMatrix) apply(kind ColorMatrixType, v []float64) error {
	switch kind {
	case ColorMatrixMatrix:
		switch len(v) {
		case 0:
			c.SetMatrix(identityColorMatrix())
		case 20:
			var m [20]float64
			copy(m[:], v)
			c.SetMatrix(m)
		default:
			c.kind, c.values = kind, v
			return fmt.Errorf("%w: matrix needs 20 values, got %d", ErrInvalidAttribute, len(v))
		}
	case ColorMatrixSaturate:
		s := 1.0
		if len(v) > 0 {
			s = v[0]
		}
		c.SetSaturate(s)
	case ColorMatrixHueRotate:
		d := 0.0
		if len(v) > 0 {
			d = v[0]
		}
		c.SetHueRotate(d)
	case ColorMatrixLuminanceToAlpha:
		c.SetLuminanceToAlpha()
	}
	return nil
}

func identityColorMatrix() [20]float64 {
	return [20]float64{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func saturateMatrix(s float64) [20]float64 {
	return [20]float64{
		0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func hueRotateMatrix(deg float64) [20]float64 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return [20]float64{
		0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928, 0, 0,
		0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283, 0, 0,
		0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func (c *ColorMatrix) Render(s *Slot) {
	in := c.read(s, 0).ToARGB32()
	out := newBuffer(FormatARGB32, in.width, in.height)
	out.ci = in.ci
	m := &c.matrix
	for y := 0; y < in.height; y++ {
		src := in.Row(y)
		dst := out.Row(y)
		for i := 0; i+3 < len(src); i += 4 {
			a := float64(src[i+3]) / 255
			var r, g, b float64
			if a > 0 {
				r = float64(src[i]) / 255 / a
				g = float64(src[i+1]) / 255 / a
				b = float64(src[i+2]) / 255 / a
			}
			nr := m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
			ng := m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
			nb := m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
			na := clampUnit(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19])

			dst[i] = unitByte(clampUnit(nr) * na)
			dst[i+1] = unitByte(clampUnit(ng) * na)
			dst[i+2] = unitByte(clampUnit(nb) * na)
			dst[i+3] = unitByte(na)
		}
	}
	c.write(s, out)
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
