package blur

import (
	"math"
	"math/cmplx"
)

// order is the order of the recursive filter.
const order = 3

// IIR holds the coefficients of a third-order recursive Gaussian.
//
// B[0] is the input gain and B[1..3] the feedback taps, so that
// y[n] = B[0]·x[n] + B[1]·y[n-1] + B[2]·y[n-2] + B[3]·y[n-3].
// M is the row-major 3×3 Triggs–Sdika matrix used to initialize the
// backward pass from the forward pass state.
type IIR struct {
	B [order + 1]float64
	M [order * order]float64
}

// NewIIR computes the recursive filter for the given deviation. The
// deviation should exceed IIRThreshold; smaller values give poor accuracy.
func NewIIR(sigma float64) IIR {
	bf := youngVanVliet(sigma)
	for i := range bf {
		bf[i] = -bf[i]
	}

	var f IIR
	f.B[0] = 1
	for i := 0; i < order; i++ {
		f.B[i+1] = bf[i]
		f.B[0] -= bf[i]
	}
	f.M = triggsSdikaM(bf)
	return f
}

// youngVanVliet finds the pole scale q whose filter has variance sigma² by
// bisection over [1, 2σ] and returns the (unnegated) denominator
// coefficients for it.
func youngVanVliet(sigma float64) [order]float64 {
	d1Org := complex(1.40098, 1.00236)
	d3Org := 1.85132

	qbeg := 1.0
	qend := 2 * sigma
	sigmaSqr := sigma * sigma
	tol := sigma / (1 << 30)

	var b [order]float64
	for {
		q := (qbeg + qend) / 2
		d1 := cmplx.Pow(d1Org, complex(1/q, 0))
		d3 := math.Pow(d3Org, 1/q)

		absD1Sqr := real(d1)*real(d1) + imag(d1)*imag(d1)
		re2D1 := 2 * real(d1)
		bscale := 1 / (absD1Sqr * d3)
		b[2] = -bscale
		b[1] = bscale * (d3 + re2D1)
		b[0] = -bscale * (absD1Sqr + d3*re2D1)

		dm1 := d1 - 1
		ssqr := 2 * (2*real(d1/(dm1*dm1)) + d3/((d3-1)*(d3-1)))
		if ssqr < sigmaSqr {
			qbeg = q
		} else {
			qend = q
		}
		if qend-qbeg <= tol {
			break
		}
	}
	return b
}

// triggsSdikaM returns the boundary matrix for feedback taps a1, a2, a3.
func triggsSdikaM(a [order]float64) [order * order]float64 {
	a1, a2, a3 := a[0], a[1], a[2]
	scale := 1 / ((1 + a1 - a2 + a3) * (1 - a1 - a2 - a3) * (1 + a2 + (a1-a3)*a3))

	m := [order * order]float64{
		1 - a2 - a1*a3 - a3*a3,
		(a1 + a3) * (a2 + a1*a3),
		a3 * (a1 + a2*a3),
		a1 + a2*a3,
		(1 - a2) * (a2 + a1*a3),
		a3 * (1 - a2 - a1*a3 - a3*a3),
		a1*(a1+a3) + a2*(1-a2),
		a1*(a2-a3*a3) + a3*(1+a2*(a2-1)-a3*a3),
		a3 * (a1 + a2*a3),
	}
	for i := range m {
		m[i] *= scale
	}
	return m
}

// filterLine runs the forward and backward recursion over one line of
// interleaved pixels. src and dst hold n·ch bytes and may alias. tmp must
// hold at least n·ch values. When premultiplied, the last channel is alpha
// and colour channels are clamped to it.
func (f *IIR) filterLine(dst, src []byte, ch int, premultiplied bool, tmp []float64) {
	n := len(src) / ch
	if n == 0 {
		return
	}
	b := &f.B

	// u[0] is the newest forward output; u[1..3] are the previous ones.
	var u [order + 1][4]float64
	for i := 0; i < order; i++ {
		for c := 0; c < ch; c++ {
			u[i][c] = float64(src[c])
		}
	}
	for c1 := 0; c1 < n; c1++ {
		u[3], u[2], u[1] = u[2], u[1], u[0]
		off := c1 * ch
		for c := 0; c < ch; c++ {
			v := float64(src[off+c]) * b[0]
			v += u[1][c]*b[1] + u[2][c]*b[2] + u[3][c]*b[3]
			u[0][c] = v
			tmp[off+c] = v
		}
	}

	var iplus [4]float64
	last := (n - 1) * ch
	for c := 0; c < ch; c++ {
		iplus[c] = float64(src[last+c])
	}

	// Triggs–Sdika initialization of the backward state.
	var v [order + 1][4]float64
	for c := 0; c < ch; c++ {
		var uminp [order]float64
		for i := 0; i < order; i++ {
			uminp[i] = u[i][c] - iplus[c]
		}
		for i := 0; i < order; i++ {
			s := 0.0
			for j := 0; j < order; j++ {
				s += uminp[j] * f.M[i*order+j]
			}
			v[i][c] = s*b[0] + iplus[c]
		}
	}
	storePixel(dst[last:last+ch], v[0][:ch], premultiplied)

	for c1 := n - 2; c1 >= 0; c1-- {
		v[3], v[2], v[1] = v[2], v[1], v[0]
		off := c1 * ch
		for c := 0; c < ch; c++ {
			x := tmp[off+c] * b[0]
			x += v[1][c]*b[1] + v[2][c]*b[2] + v[3][c]*b[3]
			v[0][c] = x
		}
		storePixel(dst[off:off+ch], v[0][:ch], premultiplied)
	}
}

// storePixel rounds and clamps one pixel. In premultiplied mode alpha is
// written first and bounds the colour channels.
func storePixel(dst []byte, val []float64, premultiplied bool) {
	if premultiplied && len(dst) > 1 {
		ai := len(dst) - 1
		a := clipRound(val[ai], 255)
		dst[ai] = a
		for c := 0; c < ai; c++ {
			dst[c] = clipRound(val[c], a)
		}
		return
	}
	for c := range dst {
		dst[c] = clipRound(val[c], 255)
	}
}

func clipRound(v float64, maxVal uint8) uint8 {
	if v < 0 {
		return 0
	}
	if v > float64(maxVal) {
		return maxVal
	}
	return uint8(v + 0.5)
}
