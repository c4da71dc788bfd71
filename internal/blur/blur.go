package blur

import (
	"errors"
	"math"

	"github.com/gogpu/svgfx/internal/parallel"
)

// ErrPlaneMismatch is returned when source and destination planes differ
// in size or channel count.
var ErrPlaneMismatch = errors.New("blur: plane size or channel mismatch")

// Plane is an interleaved 8-bit pixel grid. With Premultiplied set the last
// channel is alpha and bounds the colour channels.
type Plane struct {
	Pix           []byte
	Width, Height int
	Stride        int
	Channels      int
	Premultiplied bool
}

// NewPlane allocates a tightly packed plane.
func NewPlane(width, height, channels int, premultiplied bool) Plane {
	return Plane{
		Pix:           make([]byte, width*height*channels),
		Width:         width,
		Height:        height,
		Stride:        width * channels,
		Channels:      channels,
		Premultiplied: premultiplied,
	}
}

func (p Plane) sameShape(o Plane) bool {
	return p.Width == o.Width && p.Height == o.Height && p.Channels == o.Channels
}

func (p Plane) copyFrom(src Plane) {
	rowLen := p.Width * p.Channels
	for y := 0; y < p.Height; y++ {
		copy(p.Pix[y*p.Stride:y*p.Stride+rowLen], src.Pix[y*src.Stride:y*src.Stride+rowLen])
	}
}

// Plan is the resolved execution of one blur: subsampling steps and the
// per-axis deviation in subsampled pixels.
type Plan struct {
	StepLog2X, StepLog2Y   int
	DeviationX, DeviationY float64
}

// NewPlan resolves the subsampling for deviations given in pixels.
func NewPlan(deviationX, deviationY float64, q Quality) Plan {
	p := Plan{
		StepLog2X: SubsampleStepLog2(deviationX, q),
		StepLog2Y: SubsampleStepLog2(deviationY, q),
	}
	p.DeviationX = deviationX / float64(int(1)<<p.StepLog2X)
	p.DeviationY = deviationY / float64(int(1)<<p.StepLog2Y)
	return p
}

// Resampling reports whether the plan subsamples on either axis.
func (p Plan) Resampling() bool {
	return p.StepLog2X > 0 || p.StepLog2Y > 0
}

// IIRX reports whether the horizontal pass uses the recursive filter.
func (p Plan) IIRX() bool { return p.DeviationX > IIRThreshold }

// IIRY reports whether the vertical pass uses the recursive filter.
func (p Plan) IIRY() bool { return p.DeviationY > IIRThreshold }

// WorkSize returns the dimensions of the plane the passes run on.
func (p Plan) WorkSize(width, height int) (int, int) {
	if !p.Resampling() {
		return width, height
	}
	w := int(math.Ceil(float64(width)/float64(int(1)<<p.StepLog2X))) + 1
	h := int(math.Ceil(float64(height)/float64(int(1)<<p.StepLog2Y))) + 1
	return w, h
}

// Apply blurs src into dst. dst may be src itself.
func (p Plan) Apply(dst, src Plane, pool *parallel.WorkerPool) error {
	if !dst.sameShape(src) {
		return ErrPlaneMismatch
	}
	if src.Width == 0 || src.Height == 0 {
		return nil
	}

	work := dst
	if p.Resampling() {
		w, h := p.WorkSize(src.Width, src.Height)
		work = NewPlane(w, h, src.Channels, src.Premultiplied)
		downsample(work, src, p.StepLog2X, p.StepLog2Y, pool)
	} else if &dst.Pix[0] != &src.Pix[0] {
		dst.copyFrom(src)
	}

	pass(work, p.DeviationX, true, pool)
	pass(work, p.DeviationY, false, pool)

	if p.Resampling() {
		upsample(dst, work, p.StepLog2X, p.StepLog2Y, pool)
	}
	return nil
}

// Blur is a convenience wrapper: NewPlan followed by Apply.
func Blur(dst, src Plane, deviationX, deviationY float64, q Quality, pool *parallel.WorkerPool) error {
	return NewPlan(deviationX, deviationY, q).Apply(dst, src, pool)
}

type lineScratch struct {
	in, out  []byte
	tmp      []float64
	runStart []int32
}

// pass filters every line of p along one axis in place. A deviation whose
// effect area is zero leaves the plane untouched.
func pass(p Plane, deviation float64, horizontal bool, pool *parallel.WorkerPool) {
	if EffectArea(deviation) == 0 {
		return
	}

	ch := p.Channels
	n, lines, s1, s2 := p.Width, p.Height, ch, p.Stride
	if !horizontal {
		n, lines, s1, s2 = p.Height, p.Width, p.Stride, ch
	}

	useIIR := deviation > IIRThreshold
	var iir IIR
	var kernel []float64
	if useIIR {
		iir = CachedIIR(deviation)
	} else {
		kernel = CachedFIRKernel(deviation)
	}

	scratch := make([]lineScratch, pool.Workers())
	pool.ForRanges(lines, func(worker, start, end int) {
		sc := &scratch[worker]
		sc.in = make([]byte, n*ch)
		sc.out = make([]byte, n*ch)
		if useIIR {
			sc.tmp = make([]float64, n*ch)
		} else {
			sc.runStart = make([]int32, n)
		}

		for line := start; line < end; line++ {
			base := line * s2
			for i := 0; i < n; i++ {
				copy(sc.in[i*ch:i*ch+ch], p.Pix[base+i*s1:base+i*s1+ch])
			}
			if useIIR {
				iir.filterLine(sc.out, sc.in, ch, p.Premultiplied, sc.tmp)
			} else {
				firLine(sc.out, sc.in, ch, p.Premultiplied, kernel, sc.runStart)
			}
			for i := 0; i < n; i++ {
				copy(p.Pix[base+i*s1:base+i*s1+ch], sc.out[i*ch:i*ch+ch])
			}
		}
	})
}
