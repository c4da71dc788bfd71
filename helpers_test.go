package svgfx

import (
	"image/color"
	"testing"
)

// mustBuffer allocates a buffer or fails the test.
func mustBuffer(t testing.TB, f Format, w, h int) *Buffer {
	t.Helper()
	b, err := NewBuffer(f, w, h)
	if err != nil {
		t.Fatalf("NewBuffer(%s, %d, %d) = %v", f, w, h, err)
	}
	return b
}

// fillRect paints a premultiplied colour into x0 <= x < x1, y0 <= y < y1.
func fillRect(b *Buffer, x0, y0, x1, y1 int, c color.RGBA) {
	for y := max(y0, 0); y < min(y1, b.Height()); y++ {
		row := b.Row(y)
		for x := max(x0, 0); x < min(x1, b.Width()); x++ {
			if b.Format() == FormatA8 {
				row[x] = c.A
				continue
			}
			i := x * 4
			row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
		}
	}
}

// squareScene returns a target with an opaque red size x size square at
// (margin, margin) and the matching item.
func squareScene(t testing.TB, size, margin int) (*Buffer, Item) {
	t.Helper()
	total := size + 2*margin
	target := mustBuffer(t, FormatARGB32, total, total)
	fillRect(target, margin, margin, margin+size, margin+size, color.RGBA{R: 255, A: 255})
	bbox := NewRect(float64(margin), float64(margin), float64(size), float64(size))
	return target, Item{CTM: Identity(), BBox: &bbox}
}

// noiseBuffer fills an ARGB32 buffer with valid premultiplied pixels from
// a fixed LCG sequence.
func noiseBuffer(t testing.TB, w, h int, opaque bool) *Buffer {
	t.Helper()
	b := mustBuffer(t, FormatARGB32, w, h)
	seed := uint32(12345)
	next := func() byte {
		seed = seed*1664525 + 1013904223
		return byte(seed >> 24)
	}
	pix := b.Pix()
	for i := 0; i < len(pix); i += 4 {
		a := byte(255)
		if !opaque {
			a = next()
		}
		pix[i] = byte(uint16(next()) * uint16(a) / 255)
		pix[i+1] = byte(uint16(next()) * uint16(a) / 255)
		pix[i+2] = byte(uint16(next()) * uint16(a) / 255)
		pix[i+3] = a
	}
	return b
}

// singleThread keeps tests deterministic and quick.
func singleThread() Option { return WithThreads(1) }

// newTestSlot builds a slot with identity CTM over target, for primitive
// tests that do not go through Filter.Render.
func newTestSlot(t testing.TB, target *Buffer, bbox *Rect, primitiveUnits UnitsType) *Slot {
	t.Helper()
	u := NewUnits(UserSpaceOnUse, primitiveUnits)
	u.SetItemBBox(bbox)
	u.SetFilterArea(NewRect(0, 0, float64(target.Width()), float64(target.Height())))
	u.SetResolution(u.AutomaticResolution(QualityBest))
	s, err := newSlot(u, Context{Target: target}, nil, Preferences{Threads: 1}, ColorInterpolationAuto, nil, Logger())
	if err != nil {
		t.Fatalf("newSlot() = %v", err)
	}
	return s
}

func equalPix(a, b *Buffer) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() || a.Format() != b.Format() {
		return false
	}
	for y := 0; y < a.Height(); y++ {
		ra, rb := a.Row(y), b.Row(y)
		for i := range ra {
			if ra[i] != rb[i] {
				return false
			}
		}
	}
	return true
}
