package svgfx

import "errors"

var (
	// ErrInvalidDimensions is returned when a buffer is requested with a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("svgfx: invalid buffer dimensions")

	// ErrBufferTooLarge is returned when a buffer would exceed the size
	// limit.
	ErrBufferTooLarge = errors.New("svgfx: buffer too large")

	// ErrUnsupportedPrimitive is returned for primitive types that are
	// recognised but not implemented.
	ErrUnsupportedPrimitive = errors.New("svgfx: unsupported filter primitive")

	// ErrInvalidAttribute is returned when a primitive attribute is unknown
	// or its value cannot be parsed.
	ErrInvalidAttribute = errors.New("svgfx: invalid attribute")

	// ErrUnknownSlot is returned when a slot reference cannot be resolved.
	ErrUnknownSlot = errors.New("svgfx: unknown slot reference")

	// ErrInvalidLength is returned when a length string cannot be parsed.
	ErrInvalidLength = errors.New("svgfx: invalid length")
)
