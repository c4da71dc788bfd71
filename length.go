package svgfx

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Length is a region coordinate, either absolute or a percentage.
// Percent values are stored as written: 50% has Value 50.
type Length struct {
	Value   float64
	Percent bool
}

// Abs returns an absolute length.
func Abs(v float64) Length { return Length{Value: v} }

// Pct returns a percentage length.
func Pct(v float64) Length { return Length{Value: v, Percent: true} }

// String formats the length the way ParseLength reads it.
func (l Length) String() string {
	s := strconv.FormatFloat(l.Value, 'g', -1, 64)
	if l.Percent {
		return s + "%"
	}
	return s
}

// ParseLength reads a number with an optional trailing '%'.
func ParseLength(s string) (Length, error) {
	t := strings.TrimSpace(s)
	pct := strings.HasSuffix(t, "%")
	if pct {
		t = strings.TrimSpace(strings.TrimSuffix(t, "%"))
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return Length{}, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	return Length{Value: v, Percent: pct}, nil
}

// UnmarshalYAML accepts both plain numbers and percentage strings.
func (l *Length) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a scalar", ErrInvalidLength, value.Line)
	}
	v, err := ParseLength(value.Value)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// resolve maps the length onto an axis with the given origin and size.
// Percentages are always fractions of size; absolute values are scaled by
// size only for bounding-box units.
func (l Length) resolve(origin, size float64, bboxUnits bool) float64 {
	switch {
	case l.Percent:
		return origin + l.Value/100*size
	case bboxUnits:
		return origin + l.Value*size
	default:
		return l.Value
	}
}

// scale maps a length used as a width or height.
func (l Length) scale(size float64, bboxUnits bool) float64 {
	switch {
	case l.Percent:
		return l.Value / 100 * size
	case bboxUnits:
		return l.Value * size
	default:
		return l.Value
	}
}

// Region is a filter or primitive region: x, y, width, height.
type Region struct {
	X, Y, Width, Height Length
}

// DefaultRegion returns the SVG default filter region,
// (-10%, -10%, 120%, 120%).
func DefaultRegion() Region {
	return Region{X: Pct(-10), Y: Pct(-10), Width: Pct(120), Height: Pct(120)}
}

// FullRegion returns (0%, 0%, 100%, 100%).
func FullRegion() Region {
	return Region{X: Pct(0), Y: Pct(0), Width: Pct(100), Height: Pct(100)}
}
