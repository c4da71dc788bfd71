package blur

import "github.com/gogpu/svgfx/internal/parallel"

// downsample box-filters src into dst. Destination pixel (x, y) averages the
// source block centred on (x·2^xl2, y·2^yl2); samples outside src replicate
// the nearest edge pixel.
func downsample(dst, src Plane, xl2, yl2 int, pool *parallel.WorkerPool) {
	ch := src.Channels
	divisorL2 := uint(xl2 + yl2)
	roundOffset := uint32(1<<divisorL2) / 2
	step1 := 1 << xl2
	step2 := 1 << yl2
	half1 := step1 / 2
	half2 := step2 / 2

	pool.ForRanges(dst.Height, func(_, start, end int) {
		var sum [4]uint32
		for dy := start; dy < end; dy++ {
			sy0 := dy<<yl2 - half2
			row := dst.Pix[dy*dst.Stride:]
			for dx := 0; dx < dst.Width; dx++ {
				sx0 := dx<<xl2 - half1
				sum = [4]uint32{}
				for sy := sy0; sy < sy0+step2; sy++ {
					srow := src.Pix[clampInt(sy, 0, src.Height-1)*src.Stride:]
					for sx := sx0; sx < sx0+step1; sx++ {
						off := clampInt(sx, 0, src.Width-1) * ch
						for c := 0; c < ch; c++ {
							sum[c] += uint32(srow[off+c])
						}
					}
				}
				for c := 0; c < ch; c++ {
					row[dx*ch+c] = uint8((sum[c] + roundOffset) >> divisorL2)
				}
			}
		}
	})
}

// upsample bilinearly interpolates src back onto the full-resolution grid
// of dst. Source pixel (x, y) lands on destination pixel (x·2^xl2, y·2^yl2).
// src must extend at least one pixel beyond dst on both axes.
func upsample(dst, src Plane, xl2, yl2 int, pool *parallel.WorkerPool) {
	ch := src.Channels
	divisorL2 := uint(xl2 + yl2)
	roundOffset := uint32(1<<divisorL2) / 2
	step1 := uint32(1) << xl2
	step2 := uint32(1) << yl2

	pool.ForRanges(src.Height-1, func(_, start, end int) {
		for sy := start; sy < end; sy++ {
			dy0 := sy << yl2
			dy1 := min(dst.Height, dy0+int(step2))
			r0 := src.Pix[sy*src.Stride:]
			r1 := src.Pix[(sy+1)*src.Stride:]
			for sx := 0; sx < src.Width-1; sx++ {
				dx0 := sx << xl2
				dx1 := min(dst.Width, dx0+int(step1))
				for c := 0; c < ch; c++ {
					a00 := uint32(r0[sx*ch+c])
					a10 := uint32(r0[(sx+1)*ch+c])
					a01 := uint32(r1[sx*ch+c])
					a11 := uint32(r1[(sx+1)*ch+c])

					a0 := a00 * step2
					a1 := a10 * step2
					for dy := dy0; dy < dy1; dy++ {
						a := a0*step1 + roundOffset
						row := dst.Pix[dy*dst.Stride:]
						for dx := dx0; dx < dx1; dx++ {
							row[dx*ch+c] = uint8(a >> divisorL2)
							a = a - a0 + a1
						}
						a0 = a0 - a00 + a01
						a1 = a1 - a10 + a11
					}
				}
			}
		}
	})
}
