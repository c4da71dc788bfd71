package svgfx

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/svgfx/internal/blur"
)

// Gaussian is feGaussianBlur: a separable Gaussian blur with independent
// standard deviations along the primitive-unit axes.
//
// Small deviations are convolved directly; large ones use a third-order
// recursive filter. Depending on BlurQuality the input is first reduced
// by a power-of-two step and scaled back up afterwards.
type Gaussian struct {
	base
	deviationX float64
	deviationY float64
}

// NewGaussian creates a blur with zero deviation, which copies its input.
func NewGaussian() *Gaussian {
	return &Gaussian{}
}

func (g *Gaussian) Type() PrimitiveType { return TypeGaussianBlur }

// SetDeviation sets both deviations. Negative, NaN and infinite values are
// ignored.
func (g *Gaussian) SetDeviation(d float64) {
	g.SetDeviationXY(d, d)
}

// SetDeviationXY sets the deviations per axis. An invalid value leaves
// that axis unchanged.
func (g *Gaussian) SetDeviationXY(x, y float64) {
	if validDeviation(x) {
		g.deviationX = x
	}
	if validDeviation(y) {
		g.deviationY = y
	}
}

// Deviation returns the deviations in primitive units.
func (g *Gaussian) Deviation() (float64, float64) {
	return g.deviationX, g.deviationY
}

func validDeviation(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0) && d >= 0
}

// SetAttribute accepts stdDeviation as one or two numbers.
func (g *Gaussian) SetAttribute(name, value string) error {
	if name != "stdDeviation" {
		return g.setCommon(name, value)
	}
	v, err := parseNumbers(value, 1, 2)
	if err != nil {
		return err
	}
	if len(v) == 1 {
		g.SetDeviation(v[0])
	} else {
		g.SetDeviationXY(v[0], v[1])
	}
	return nil
}

// Render blurs the input into the output slot.
func (g *Gaussian) Render(s *Slot) {
	in := g.read(s, 0)
	m := s.Units().PrimitiveUnitsToPixelBuffer()
	dx := g.deviationX * m.ExpansionX()
	dy := g.deviationY * m.ExpansionY()
	if dx <= 0 && dy <= 0 {
		g.write(s, in.Clone())
		return
	}

	plan := blur.NewPlan(dx, dy, blur.Quality(s.BlurQuality()))
	s.logger.Debug("svgfx: gaussian blur",
		"deviationX", plan.DeviationX, "deviationY", plan.DeviationY,
		"stepLog2X", plan.StepLog2X, "stepLog2Y", plan.StepLog2Y,
		"iirX", plan.IIRX(), "iirY", plan.IIRY(),
		"width", in.Width(), "height", in.Height())

	out := in.Clone()
	if err := plan.Apply(out.plane(), out.plane(), s.pool); err != nil {
		s.logger.Warn("svgfx: gaussian blur failed", "err", err)
		out.Clear()
	}
	g.write(s, out)
}

// effectArea returns the reach of the blur in pixels under m.
func (g *Gaussian) effectArea(m Matrix) (int, int) {
	return blur.EffectArea(g.deviationX * m.ExpansionX()),
		blur.EffectArea(g.deviationY * m.ExpansionY())
}

// AreaEnlarge grows area by the blur reach, where m maps primitive units
// to the area's space.
func (g *Gaussian) AreaEnlarge(area image.Rectangle, m Matrix) image.Rectangle {
	ax, ay := g.effectArea(m)
	e := max(ax, ay)
	return area.Inset(-e)
}

// Complexity grows with the kernel footprint.
func (g *Gaussian) Complexity(m Matrix) float64 {
	ax, ay := g.effectArea(m)
	return math.Max(1, 2*float64(ax)*float64(ay))
}

// CanHandleAffine is false: the blur runs along the buffer axes, which
// must coincide with the primitive-unit axes.
func (g *Gaussian) CanHandleAffine(Matrix) bool { return false }

// parseNumbers splits a whitespace or comma separated list and checks its
// length.
func parseNumbers(value string, minN, maxN int) ([]float64, error) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) < minN || len(fields) > maxN {
		return nil, fmt.Errorf("%w: expected %d to %d numbers, got %q", ErrInvalidAttribute, minN, maxN, value)
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAttribute, f)
		}
		out[i] = v
	}
	return out, nil
}
