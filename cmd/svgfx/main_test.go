package main

import (
	"testing"

	"github.com/gogpu/svgfx"
)

func gaussianFilter(units svgfx.UnitsType, deviation float64) *svgfx.Filter {
	f := svgfx.NewFilter()
	f.SetPrimitiveUnits(units)
	g := svgfx.NewGaussian()
	g.SetDeviation(deviation)
	f.Add(g)
	return f
}

func TestPadding(t *testing.T) {
	tests := []struct {
		name      string
		units     svgfx.UnitsType
		deviation float64
		want      int
	}{
		{"region margin only", svgfx.UserSpaceOnUse, 0.1, 10},
		{"user space blur", svgfx.UserSpaceOnUse, 5, 15},
		{"bbox units blur", svgfx.ObjectBoundingBox, 0.1, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padding(gaussianFilter(tt.units, tt.deviation), 100, 100); got != tt.want {
				t.Errorf("padding() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPaddingBounded(t *testing.T) {
	p := padding(gaussianFilter(svgfx.UserSpaceOnUse, 1e300), 100, 50)
	if size := 100 + 2*p; size > svgfx.MaxBufferDimension {
		t.Errorf("padded width = %d, want at most %d", size, svgfx.MaxBufferDimension)
	}
	if p <= 0 {
		t.Errorf("padding() = %d, want positive", p)
	}
}
