package svgfx

import (
	"fmt"
	"strconv"
)

// Role is the kind of a SlotID.
type Role uint8

const (
	// RoleNotSet means "the previous primitive's output".
	RoleNotSet Role = iota
	RoleSourceGraphic
	RoleSourceAlpha
	RoleBackgroundImage
	RoleBackgroundAlpha
	RoleFillPaint
	RoleStrokePaint
	// RoleUnnamed is an output nobody refers to by name.
	RoleUnnamed
	// RoleNamed is a numbered intermediate result.
	RoleNamed
)

var roleNames = [...]string{
	RoleNotSet:          "NotSet",
	RoleSourceGraphic:   "SourceGraphic",
	RoleSourceAlpha:     "SourceAlpha",
	RoleBackgroundImage: "BackgroundImage",
	RoleBackgroundAlpha: "BackgroundAlpha",
	RoleFillPaint:       "FillPaint",
	RoleStrokePaint:     "StrokePaint",
	RoleUnnamed:         "Unnamed",
	RoleNamed:           "Named",
}

// SlotID identifies a buffer in a Slot. The zero value is NotSet.
type SlotID struct {
	role  Role
	index uint32
}

// Well-known slot identifiers.
var (
	NotSet          = SlotID{}
	SourceGraphic   = SlotID{role: RoleSourceGraphic}
	SourceAlpha     = SlotID{role: RoleSourceAlpha}
	BackgroundImage = SlotID{role: RoleBackgroundImage}
	BackgroundAlpha = SlotID{role: RoleBackgroundAlpha}
	FillPaint       = SlotID{role: RoleFillPaint}
	StrokePaint     = SlotID{role: RoleStrokePaint}
	Unnamed         = SlotID{role: RoleUnnamed}
)

// Named returns the identifier of intermediate result n.
func Named(n uint32) SlotID {
	return SlotID{role: RoleNamed, index: n}
}

// Role returns the kind of the identifier.
func (id SlotID) Role() Role { return id.role }

// Index returns the result number of a Named identifier, or 0.
func (id SlotID) Index() uint32 { return id.index }

// IsNamed reports whether id is a numbered intermediate result.
func (id SlotID) IsNamed() bool { return id.role == RoleNamed }

// IsBackground reports whether id refers to the background.
func (id SlotID) IsBackground() bool {
	return id.role == RoleBackgroundImage || id.role == RoleBackgroundAlpha
}

// String returns the keyword of a well-known id, or "result<n>".
func (id SlotID) String() string {
	if id.role == RoleNamed {
		return "result" + strconv.FormatUint(uint64(id.index), 10)
	}
	if int(id.role) < len(roleNames) {
		return roleNames[id.role]
	}
	return "SlotID(?)"
}

// Int returns the integer wire form: well-known roles are -1 (NotSet)
// down to -8 (Unnamed), named results are their non-negative index.
func (id SlotID) Int() int {
	if id.role == RoleNamed {
		return int(id.index)
	}
	return -1 - int(id.role)
}

// SlotFromInt is the inverse of SlotID.Int.
func SlotFromInt(n int) (SlotID, error) {
	switch {
	case n >= 0 && uint64(n) <= uint64(^uint32(0)):
		return Named(uint32(n)), nil
	case n < 0 && n >= -1-int(RoleUnnamed):
		return SlotID{role: Role(-1 - n)}, nil
	default:
		return NotSet, fmt.Errorf("%w: %d", ErrUnknownSlot, n)
	}
}

// slotKeyword maps the SVG input keywords to their ids.
func slotKeyword(s string) (SlotID, bool) {
	switch s {
	case "SourceGraphic":
		return SourceGraphic, true
	case "SourceAlpha":
		return SourceAlpha, true
	case "BackgroundImage":
		return BackgroundImage, true
	case "BackgroundAlpha":
		return BackgroundAlpha, true
	case "FillPaint":
		return FillPaint, true
	case "StrokePaint":
		return StrokePaint, true
	}
	return NotSet, false
}
