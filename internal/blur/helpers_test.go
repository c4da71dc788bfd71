package blur

import "math"

// Test helper functions shared across blur tests.

// filledPlane returns a plane where every pixel holds the given channel values.
func filledPlane(w, h int, premultiplied bool, px ...byte) Plane {
	p := NewPlane(w, h, len(px), premultiplied)
	for i := 0; i < len(p.Pix); i += len(px) {
		copy(p.Pix[i:], px)
	}
	return p
}

// blockPlane returns a single-channel plane with a square block of 255.
func blockPlane(w, h, x0, y0, size int) Plane {
	p := NewPlane(w, h, 1, false)
	for y := y0; y < y0+size; y++ {
		for x := x0; x < x0+size; x++ {
			p.Pix[y*p.Stride+x] = 255
		}
	}
	return p
}

// noisePlane fills a plane with a deterministic pseudo-random pattern. When
// premultiplied, colour channels never exceed alpha.
func noisePlane(w, h, ch int, premultiplied bool, seed uint32) Plane {
	p := NewPlane(w, h, ch, premultiplied)
	state := seed
	next := func() byte {
		state = state*1664525 + 1013904223
		return byte(state >> 24)
	}
	for i := 0; i < len(p.Pix); i += ch {
		for c := 0; c < ch; c++ {
			p.Pix[i+c] = next()
		}
		if premultiplied && ch == 4 {
			a := p.Pix[i+3]
			for c := 0; c < 3; c++ {
				if p.Pix[i+c] > a {
					p.Pix[i+c] = a
				}
			}
		}
	}
	return p
}

// clonePlane returns a deep copy.
func clonePlane(p Plane) Plane {
	c := p
	c.Pix = append([]byte(nil), p.Pix...)
	return c
}

// energyAndCentroid returns the pixel sum and intensity-weighted centroid
// of a single-channel plane.
func energyAndCentroid(p Plane) (energy, cx, cy float64) {
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			v := float64(p.Pix[y*p.Stride+x])
			energy += v
			cx += v * float64(x)
			cy += v * float64(y)
		}
	}
	if energy > 0 {
		cx /= energy
		cy /= energy
	}
	return energy, cx, cy
}

func absf(x float64) float64 {
	return math.Abs(x)
}
