package color

import colorful "github.com/lucasb-eyer/go-colorful"

// SRGBToLinear converts an sRGB component in [0,1] to linear light.
func SRGBToLinear(s float64) float64 {
	l, _, _ := colorful.Color{R: s, G: s, B: s}.LinearRgb()
	return l
}

// LinearToSRGB converts a linear component in [0,1] to sRGB.
func LinearToSRGB(l float64) float64 {
	return colorful.LinearRgb(l, l, l).R
}

// ConvertPremultiplied converts the colour channels of premultiplied RGBA
// pixels in place from one space to another. Alpha is never touched, and
// fully transparent pixels are skipped. Converting a space to itself is a
// no-op.
func ConvertPremultiplied(pix []byte, stride, width, height int, from, to Space) {
	if from == to {
		return
	}
	table := &srgbToLinear8
	if to == SRGB {
		table = &linearToSRGB8
	}

	for y := 0; y < height; y++ {
		row := pix[y*stride : y*stride+width*4]
		for i := 0; i < len(row); i += 4 {
			a := row[i+3]
			if a == 0 {
				continue
			}
			if a == 255 {
				row[i] = table[row[i]]
				row[i+1] = table[row[i+1]]
				row[i+2] = table[row[i+2]]
				continue
			}
			for c := 0; c < 3; c++ {
				u := unpremultiply(row[i+c], a)
				row[i+c] = premultiply(table[u], a)
			}
		}
	}
}

// unpremultiply returns round(c·255/a), clamped to 255.
func unpremultiply(c, a byte) byte {
	v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
	if v > 255 {
		return 255
	}
	return byte(v)
}

// premultiply returns round(c·a/255).
func premultiply(c, a byte) byte {
	t := uint32(c)*uint32(a) + 128
	return byte((t + t>>8) >> 8)
}
