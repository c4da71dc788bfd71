// Package blend implements the pixel arithmetic behind feBlend, feComposite
// and feMerge.
//
// All operations work on premultiplied 8-bit RGBA. By convention the first
// operand (s*) is the primitive's "in" and the second (d*) is "in2", the
// backdrop. Results always satisfy colour <= alpha.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Func combines a source and a backdrop pixel, both premultiplied.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// Mode is a feBlend mode.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeMultiply
	ModeScreen
	ModeDarken
	ModeLighten
	ModeOverlay
	ModeColorDodge
	ModeColorBurn
	ModeHardLight
	ModeSoftLight
	ModeDifference
	ModeExclusion
	ModeHue
	ModeSaturation
	ModeColor
	ModeLuminosity
)

var modeNames = [...]string{
	ModeNormal:     "normal",
	ModeMultiply:   "multiply",
	ModeScreen:     "screen",
	ModeDarken:     "darken",
	ModeLighten:    "lighten",
	ModeOverlay:    "overlay",
	ModeColorDodge: "color-dodge",
	ModeColorBurn:  "color-burn",
	ModeHardLight:  "hard-light",
	ModeSoftLight:  "soft-light",
	ModeDifference: "difference",
	ModeExclusion:  "exclusion",
	ModeHue:        "hue",
	ModeSaturation: "saturation",
	ModeColor:      "color",
	ModeLuminosity: "luminosity",
}

// String returns the CSS keyword of the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode maps a CSS mix-blend-mode keyword to a Mode.
func ParseMode(name string) (Mode, bool) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return ModeNormal, false
}

// ModeFunc returns the pixel function for a blend mode. Unknown modes
// behave like ModeNormal.
func ModeFunc(m Mode) Func {
	switch m {
	case ModeMultiply:
		return blendMultiply
	case ModeScreen:
		return blendScreen
	case ModeDarken:
		return blendDarken
	case ModeLighten:
		return blendLighten
	case ModeOverlay:
		return blendOverlay
	case ModeColorDodge:
		return blendColorDodge
	case ModeColorBurn:
		return blendColorBurn
	case ModeHardLight:
		return blendHardLight
	case ModeSoftLight:
		return blendSoftLight
	case ModeDifference:
		return blendDifference
	case ModeExclusion:
		return blendExclusion
	case ModeHue:
		return blendHue
	case ModeSaturation:
		return blendSaturation
	case ModeColor:
		return blendColor
	case ModeLuminosity:
		return blendLuminosity
	default:
		return blendSourceOver
	}
}
