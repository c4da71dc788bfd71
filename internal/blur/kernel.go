package blur

import (
	"math"

	"github.com/gogpu/svgfx/internal/cache"
)

// FIRKernel returns the half kernel of a normalized Gaussian with the given
// deviation: k[0] is the centre tap and k[i] the weight at distance i, for
// i in [0, EffectArea(deviation)]. The full symmetric kernel sums to 1;
// k[0] absorbs the rounding so that 2·Σk[i>0] + k[0] == 1.
//
// For deviation <= 0 the kernel is the identity [1].
func FIRKernel(deviation float64) []float64 {
	if deviation <= 0 {
		return []float64{1}
	}

	scrLen := EffectArea(deviation)
	dSq := deviation * deviation * 2

	k := make([]float64, scrLen+1)
	sum := 0.0
	for i := scrLen; i >= 0; i-- {
		x := float64(i)
		k[i] = math.Exp(-(x * x) / dSq)
		if i > 0 {
			sum += k[i]
		}
	}
	// The full kernel counts every off-centre tap twice.
	sum = 2*sum + k[0]

	kernel := make([]float64, scrLen+1)
	kernelSum := 0.0
	for i := scrLen; i >= 1; i-- {
		kernel[i] = k[i] / sum
		kernelSum += kernel[i]
	}
	kernel[0] = 1 - 2*kernelSum

	return kernel
}

// Coefficient tables keyed by the bits of the deviation. Cached values
// are shared and must not be modified.
var (
	kernelCache = cache.New[uint64, []float64](64)
	iirCache    = cache.New[uint64, IIR](64)
)

// CachedFIRKernel returns a shared FIR kernel for the deviation.
func CachedFIRKernel(deviation float64) []float64 {
	return kernelCache.GetOrCreate(math.Float64bits(deviation), func() []float64 {
		return FIRKernel(deviation)
	})
}

// CachedIIR returns the recursive filter for the deviation.
func CachedIIR(deviation float64) IIR {
	return iirCache.GetOrCreate(math.Float64bits(deviation), func() IIR {
		return NewIIR(deviation)
	})
}
