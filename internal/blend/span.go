package blend

// Apply combines two rows of premultiplied RGBA pixels into dst. All three
// slices must have the same length, a multiple of 4; dst may alias either
// input.
func Apply(dst, src, backdrop []byte, fn Func) {
	for i := 0; i+3 < len(dst); i += 4 {
		dst[i], dst[i+1], dst[i+2], dst[i+3] = fn(
			src[i], src[i+1], src[i+2], src[i+3],
			backdrop[i], backdrop[i+1], backdrop[i+2], backdrop[i+3],
		)
	}
}

// ApplyAlpha combines two rows of alpha-only pixels. The colour channels
// seen by fn are zero and only the resulting alpha is kept.
func ApplyAlpha(dst, src, backdrop []byte, fn Func) {
	for i := range dst {
		_, _, _, dst[i] = fn(0, 0, 0, src[i], 0, 0, 0, backdrop[i])
	}
}
