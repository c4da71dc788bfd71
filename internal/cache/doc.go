// Package cache provides the bounded LRU cache behind the blur coefficient
// tables.
//
// FIR kernels and recursive-filter coefficients depend only on the
// deviation, and a document tends to reuse a handful of deviations across
// many renders. Cache keeps the most recently used tables and evicts the
// oldest ones once a soft limit is passed.
//
//	kernels := cache.New[uint64, []float64](64)
//	k := kernels.GetOrCreate(math.Float64bits(sigma), func() []float64 {
//	    return buildKernel(sigma)
//	})
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
