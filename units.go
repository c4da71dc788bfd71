package svgfx

import (
	"fmt"
	"image"
	"math"
	"strings"
)

// UnitsType is the value of filterUnits and primitiveUnits.
type UnitsType uint8

const (
	// UserSpaceOnUse interprets lengths in the user coordinate system.
	UserSpaceOnUse UnitsType = iota
	// ObjectBoundingBox interprets lengths as fractions of the item bbox.
	ObjectBoundingBox
)

// String returns the SVG keyword.
func (t UnitsType) String() string {
	if t == ObjectBoundingBox {
		return "objectBoundingBox"
	}
	return "userSpaceOnUse"
}

// ParseUnitsType reads an SVG units keyword, case-insensitively.
func ParseUnitsType(s string) (UnitsType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "userspaceonuse":
		return UserSpaceOnUse, nil
	case "objectboundingbox":
		return ObjectBoundingBox, nil
	default:
		return UserSpaceOnUse, fmt.Errorf("%w: units %q", ErrInvalidAttribute, s)
	}
}

// EffectArea evaluates a region in user space. It reports false when the
// region needs a bounding box that is absent, or when the result has no
// area.
//
// Bounding-box units resolve every length against bbox. In user space
// absolute lengths are taken as is and percentages resolve against bbox,
// so they too need one.
func EffectArea(r Region, units UnitsType, bbox *Rect) (Rect, bool) {
	obb := units == ObjectBoundingBox
	needsBBox := obb || r.X.Percent || r.Y.Percent || r.Width.Percent || r.Height.Percent
	if needsBBox && bbox == nil {
		return Rect{}, false
	}
	var ref Rect
	if bbox != nil {
		ref = *bbox
	}
	x := r.X.resolve(ref.MinX, ref.Width(), obb)
	y := r.Y.resolve(ref.MinY, ref.Height(), obb)
	w := r.Width.scale(ref.Width(), obb)
	h := r.Height.scale(ref.Height(), obb)
	out := NewRect(x, y, w, h)
	if out.IsEmpty() || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return Rect{}, false
	}
	return out, true
}

// Units maps between the coordinate spaces of one filter invocation:
// user space (the item's own coordinates), display space (device pixels
// after the CTM) and pixel-buffer space (the grid primitives work on).
type Units struct {
	ctm            Matrix
	bbox           *Rect
	area           Rect
	resX, resY     float64
	automatic      bool
	parallel       bool
	filterUnits    UnitsType
	primitiveUnits UnitsType
}

// NewUnits creates a mapper with an identity CTM and automatic resolution.
func NewUnits(filterUnits, primitiveUnits UnitsType) *Units {
	return &Units{
		ctm:            Identity(),
		automatic:      true,
		filterUnits:    filterUnits,
		primitiveUnits: primitiveUnits,
	}
}

// SetCTM sets the user-to-display transform.
func (u *Units) SetCTM(m Matrix) { u.ctm = m }

// CTM returns the user-to-display transform.
func (u *Units) CTM() Matrix { return u.ctm }

// SetItemBBox sets the item bounding box in user space. A nil bbox means
// the item has no geometry.
func (u *Units) SetItemBBox(b *Rect) {
	if b == nil {
		u.bbox = nil
		return
	}
	c := *b
	u.bbox = &c
}

// ItemBBox returns a copy of the bounding box, or nil.
func (u *Units) ItemBBox() *Rect {
	if u.bbox == nil {
		return nil
	}
	c := *u.bbox
	return &c
}

// SetFilterArea sets the filter effect area in user space.
func (u *Units) SetFilterArea(r Rect) { u.area = r }

// FilterArea returns the filter effect area in user space.
func (u *Units) FilterArea() Rect { return u.area }

// SetResolution sets the pixel-buffer size of the filter area.
func (u *Units) SetResolution(x, y float64) {
	u.resX, u.resY = x, y
}

// Resolution returns the pixel-buffer size of the filter area.
func (u *Units) Resolution() (float64, float64) { return u.resX, u.resY }

// SetAutomaticResolution selects whether the pixel buffer follows the CTM.
func (u *Units) SetAutomaticResolution(auto bool) { u.automatic = auto }

// SetParallel forces an axis-aligned pixel buffer.
func (u *Units) SetParallel(p bool) { u.parallel = p }

// Parallel reports whether the pixel buffer is axis-aligned to user space.
func (u *Units) Parallel() bool { return u.parallel }

// FilterUnits returns the filterUnits setting.
func (u *Units) FilterUnits() UnitsType { return u.filterUnits }

// PrimitiveUnits returns the primitiveUnits setting.
func (u *Units) PrimitiveUnits() UnitsType { return u.primitiveUnits }

// deviceSize returns the display-space lengths of the filter area edges.
func (u *Units) deviceSize() (float64, float64) {
	w := u.area.Width() * math.Hypot(u.ctm.A, u.ctm.D)
	h := u.area.Height() * math.Hypot(u.ctm.B, u.ctm.E)
	return w, h
}

// AutomaticResolution derives a resolution from the display size of the
// filter area, scaled down uniformly so neither edge exceeds the limit
// of the given quality.
func (u *Units) AutomaticResolution(q Quality) (float64, float64) {
	w, h := u.deviceSize()
	limit := q.resolutionLimit()
	if limit > 0 {
		if m := math.Max(w, h); m > limit {
			f := limit / m
			w, h = w*f, h*f
		}
	}
	return w, h
}

// UserToPixelBuffer returns the user-space to pixel-buffer transform.
//
// With automatic resolution the pixel buffer is the display grid, scaled
// down when the resolution was clamped. In parallel or fixed-resolution
// mode it is axis-aligned with the filter area mapped onto resX x resY.
func (u *Units) UserToPixelBuffer() Matrix {
	if u.automatic && !u.parallel {
		dw, _ := u.deviceSize()
		if dw <= 0 || u.resX <= 0 {
			return u.ctm
		}
		s := u.resX / dw
		if math.Abs(s-1) < 1e-9 {
			return u.ctm
		}
		return Scale(s, s).Multiply(u.ctm)
	}
	aw, ah := u.area.Width(), u.area.Height()
	if aw <= 0 || ah <= 0 {
		return u.ctm
	}
	return Matrix{
		A: u.resX / aw, B: 0, C: u.ctm.C,
		D: 0, E: u.resY / ah, F: u.ctm.F,
	}
}

// PixelBufferToUser is the inverse of UserToPixelBuffer.
func (u *Units) PixelBufferToUser() Matrix {
	return u.UserToPixelBuffer().Invert()
}

// DisplayToPixelBuffer maps display coordinates into the pixel buffer.
func (u *Units) DisplayToPixelBuffer() Matrix {
	return u.UserToPixelBuffer().Multiply(u.ctm.Invert())
}

// PixelBufferToDisplay maps pixel-buffer coordinates to display space.
func (u *Units) PixelBufferToDisplay() Matrix {
	return u.ctm.Multiply(u.PixelBufferToUser())
}

// FilterUnitsToPixelBuffer maps filterUnits coordinates into the pixel
// buffer.
func (u *Units) FilterUnitsToPixelBuffer() Matrix {
	return u.unitsToPixelBuffer(u.filterUnits)
}

// PrimitiveUnitsToPixelBuffer maps primitiveUnits coordinates into the
// pixel buffer. For objectBoundingBox one unit spans the bbox edge.
func (u *Units) PrimitiveUnitsToPixelBuffer() Matrix {
	return u.unitsToPixelBuffer(u.primitiveUnits)
}

func (u *Units) unitsToPixelBuffer(t UnitsType) Matrix {
	return unitsMatrix(u.UserToPixelBuffer(), t, u.bbox)
}

// unitsMatrix extends m, which maps user space, so that it maps units of
// type t instead.
func unitsMatrix(m Matrix, t UnitsType, bbox *Rect) Matrix {
	if t != ObjectBoundingBox || bbox == nil {
		return m
	}
	return m.Multiply(Translate(bbox.MinX, bbox.MinY)).Multiply(Scale(bbox.Width(), bbox.Height()))
}

// PixelBufferFilterArea returns the filter area in pixel-buffer space,
// rounded outwards.
func (u *Units) PixelBufferFilterArea() image.Rectangle {
	return u.area.Transform(u.UserToPixelBuffer()).RoundOut()
}

// PixelBufferRegion evaluates a primitive subregion in pixel-buffer space.
func (u *Units) PixelBufferRegion(r Region) (image.Rectangle, bool) {
	area, ok := EffectArea(r, u.primitiveUnits, u.bbox)
	if !ok {
		return image.Rectangle{}, false
	}
	return area.Transform(u.UserToPixelBuffer()).RoundOut(), true
}
