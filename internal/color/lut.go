package color

import colorful "github.com/lucasb-eyer/go-colorful"

// Byte-to-byte transfer tables for 8-bit channels.
var (
	srgbToLinear8 [256]uint8
	linearToSRGB8 [256]uint8
)

func init() {
	for i := 0; i < 256; i++ {
		v := float64(i) / 255

		l, _, _ := colorful.Color{R: v, G: v, B: v}.LinearRgb()
		srgbToLinear8[i] = toByte(l)

		s := colorful.LinearRgb(v, v, v).R
		linearToSRGB8[i] = toByte(s)
	}
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// SRGBToLinear8 converts one 8-bit sRGB channel value to linear light.
func SRGBToLinear8(s uint8) uint8 {
	return srgbToLinear8[s]
}

// LinearToSRGB8 converts one 8-bit linear channel value to sRGB.
func LinearToSRGB8(l uint8) uint8 {
	return linearToSRGB8[l]
}
