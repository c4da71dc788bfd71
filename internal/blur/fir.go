package blur

// firLine convolves one line of interleaved pixels with a symmetric half
// kernel. Pixels beyond either end replicate the edge pixel. dst and src
// must not alias. runStart needs room for n entries.
//
// Windows that lie entirely inside a run of equal values are copied
// through unchanged; with a normalized kernel that is exactly what the
// convolution yields, so the shortcut does not change the output.
func firLine(dst, src []byte, ch int, premultiplied bool, kernel []float64, runStart []int32) {
	n := len(src) / ch
	if n == 0 {
		return
	}
	r := len(kernel) - 1

	channels := channelOrder(ch, premultiplied)
	for _, c := range channels[:ch] {
		limit := uint8(255)
		bounded := premultiplied && c != ch-1

		runStart[0] = 0
		for i := 1; i < n; i++ {
			if src[i*ch+c] == src[(i-1)*ch+c] {
				runStart[i] = runStart[i-1]
			} else {
				runStart[i] = int32(i)
			}
		}

		for i := 0; i < n; i++ {
			if bounded {
				limit = dst[i*ch+ch-1]
			}

			lo := i - r
			if lo < 0 {
				lo = 0
			}
			hi := i + r
			if hi > n-1 {
				hi = n - 1
			}
			if int(runStart[hi]) <= lo {
				v := src[i*ch+c]
				if v > limit {
					v = limit
				}
				dst[i*ch+c] = v
				continue
			}

			sum := kernel[0] * float64(src[i*ch+c])
			for j := 1; j <= r; j++ {
				left := i - j
				if left < 0 {
					left = 0
				}
				right := i + j
				if right > n-1 {
					right = n - 1
				}
				sum += kernel[j] * float64(int(src[left*ch+c])+int(src[right*ch+c]))
			}
			dst[i*ch+c] = clipRound(sum, limit)
		}
	}
}

// channelOrder lists channel indices with alpha first when premultiplied,
// so colour channels can be clamped to the freshly written alpha.
func channelOrder(ch int, premultiplied bool) [4]int {
	if premultiplied && ch == 4 {
		return [4]int{3, 0, 1, 2}
	}
	return [4]int{0, 1, 2, 3}
}
