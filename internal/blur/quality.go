package blur

import "math"

// Quality selects the speed/accuracy trade-off of subsampling.
type Quality int

// Blur quality levels, matching the rendering preference values.
const (
	QualityWorst  Quality = -2
	QualityWorse  Quality = -1
	QualityNormal Quality = 0
	QualityBetter Quality = 1
	QualityBest   Quality = 2
)

// IIRThreshold is the deviation (in subsampled pixels) above which the
// recursive filter replaces direct convolution. The recursive filter is
// unstable below roughly σ = 2.
const IIRThreshold = 3.0

// maxStepLog2 keeps step² · 255 within 32 bits during box downsampling.
const maxStepLog2 = 12

// MaxEffectArea bounds the reach reported by EffectArea. It equals the
// largest buffer dimension.
const MaxEffectArea = 1 << 15

// EffectArea returns the number of pixels a blur of the given deviation
// reaches on each side: ceil(3·|σ|), at most MaxEffectArea.
func EffectArea(deviation float64) int {
	r := math.Ceil(math.Abs(deviation) * 3)
	if !(r <= MaxEffectArea) {
		return MaxEffectArea
	}
	return int(r)
}

// SubsampleStepLog2 returns log2 of the subsampling step for a deviation
// at the given quality. QualityBest never subsamples.
func SubsampleStepLog2(deviation float64, q Quality) int {
	var f float64
	switch q {
	case QualityWorst:
		f = 3.0 / 2.0
	case QualityWorse:
		f = 3.0 / 4.0
	case QualityBetter:
		f = 3.0 / 16.0
	case QualityBest:
		return 0
	default:
		f = 3.0 / 8.0
	}
	if deviation <= 0 {
		return 0
	}
	return clampInt(int(math.Log(deviation*f)/math.Ln2), 0, maxStepLog2)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
