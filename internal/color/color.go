// Package color converts premultiplied 8-bit pixels between sRGB and
// linearRGB, the two values of color-interpolation-filters.
package color

// Space is a pixel color space.
type Space uint8

const (
	// SRGB is the gamma-encoded standard space.
	SRGB Space = iota
	// LinearRGB is the linear-light space.
	LinearRGB
)

// String returns the CSS keyword for the space.
func (s Space) String() string {
	switch s {
	case SRGB:
		return "sRGB"
	case LinearRGB:
		return "linearRGB"
	default:
		return "unknown"
	}
}
