// Package blur implements the separable Gaussian blur used by the
// feGaussianBlur primitive.
//
// Two one-dimensional kernels are available:
//   - FIR: direct convolution with a symmetric, normalized kernel truncated
//     at ceil(3σ) taps. Used for σ <= 3.
//   - IIR: third-order recursive filter (Young and van Vliet) with
//     Triggs–Sdika boundary initialization. Cost per pixel is independent
//     of σ. Used for σ > 3.
//
// Large deviations are handled by subsampling: the plane is box-downsampled
// by a power-of-two step chosen from the blur quality, blurred at σ/step and
// linearly upsampled back.
//
// All passes operate on 8-bit interleaved planes (1 or 4 channels) and
// split their lines across a parallel.WorkerPool. Each worker owns its
// scratch rows, so the output is identical for any worker count.
package blur
