// Package svgfx renders SVG filter effects on 8-bit pixel buffers.
//
// A [Filter] holds an ordered chain of filter primitives, a filter region
// and a resolution policy. [Filter.Render] evaluates the chain for one
// drawable item: it maps the filter region into an intermediate
// pixel-buffer space, seeds a [Slot] with the item's rendered pixels,
// runs every primitive in order, and writes the designated output back
// onto the target.
//
// # Coordinate spaces
//
// Four spaces are involved:
//   - user space: the item's own coordinates (where the bounding box lives)
//   - display space: device pixels of the target buffer
//   - pixel-buffer space: the grid the primitives work on
//   - primitive space: user space or bounding-box fractions, depending on
//     primitiveUnits
//
// [Units] owns the matrices between them.
//
// # Primitives
//
// The primitive set is closed: [PrimitiveType] enumerates every SVG filter
// primitive name and [NewPrimitive] constructs the implemented ones
// (Gaussian blur, blend, composite, color matrix, merge, offset, flood).
//
// # Buffers
//
// [Buffer] is either alpha-only ([FormatA8]) or premultiplied RGBA
// ([FormatARGB32], stored R,G,B,A like image.RGBA). Buffers placed in a
// slot are owned by it; callers get read-only views and Set stores copies.
//
// # Logging
//
// svgfx is silent by default. Use [SetLogger] or [WithLogger] to receive
// diagnostics through log/slog.
package svgfx
