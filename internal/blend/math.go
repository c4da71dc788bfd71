package blend

// mulDiv255 multiplies two bytes and divides by 255, rounding to nearest.
//
// Formula: t = a*b + 128; (t + (t >> 8)) >> 8
//
// This is Alvy Ray Smith's exact formula; it matches round(a*b/255) for
// every input pair.
func mulDiv255(a, b byte) byte {
	t := uint16(a)*uint16(b) + 128
	return byte((t + (t >> 8)) >> 8)
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// unitToByte maps a value in [0,1] to a byte with rounding, clamping
// values outside the range.
func unitToByte(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}

// minByte returns the smaller of two bytes.
func minByte(a, b byte) byte {
	if a < b {
		return a
	}
	return b
}
