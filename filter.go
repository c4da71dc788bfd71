package svgfx

import (
	"image"
	"log/slog"

	"github.com/gogpu/svgfx/internal/parallel"
)

// Status is the outcome of Filter.Render.
type Status int

const (
	// StatusRendered means the filter output was written to the target.
	StatusRendered Status = 0
	// StatusCleared means there was nothing to draw and the target was
	// cleared to transparent.
	StatusCleared Status = 1
)

// String returns a short description of the status.
func (s Status) String() string {
	if s == StatusRendered {
		return "rendered"
	}
	return "cleared"
}

// Context is a drawing target: a buffer placed at Origin in display space.
type Context struct {
	Target *Buffer
	Origin image.Point
}

// Item is the drawable a filter is applied to.
type Item struct {
	// CTM maps the item's user space to display space.
	CTM Matrix
	// BBox is the item's bounding box in user space, or nil when the item
	// has no geometry.
	BBox *Rect
}

// Filter is an ordered chain of primitives with a filter region and a
// resolution policy.
//
// Thread safety: a Filter may be rendered from several goroutines as long
// as it is not modified at the same time. Each Render call owns its own
// slot and worker pool.
type Filter struct {
	primitives     []Primitive
	region         Region
	filterUnits    UnitsType
	primitiveUnits UnitsType
	output         SlotID
	ci             ColorInterpolation

	automatic  bool
	resX, resY float64
	deriveY    bool

	opts filterOptions
}

// NewFilter creates an empty filter with the SVG defaults: the region
// (-10%, -10%, 120%, 120%) in objectBoundingBox units, userSpaceOnUse
// primitive units and automatic resolution.
func NewFilter(opts ...Option) *Filter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Filter{
		region:         DefaultRegion(),
		filterUnits:    ObjectBoundingBox,
		primitiveUnits: UserSpaceOnUse,
		automatic:      true,
		opts:           o,
	}
}

// Add appends a primitive to the chain.
func (f *Filter) Add(p Primitive) {
	f.primitives = append(f.primitives, p)
}

// Primitives returns the chain. The slice must not be modified.
func (f *Filter) Primitives() []Primitive { return f.primitives }

// Len returns the number of primitives.
func (f *Filter) Len() int { return len(f.primitives) }

// ClearPrimitives removes every primitive.
func (f *Filter) ClearPrimitives() { f.primitives = nil }

// SetRegion sets the filter region.
func (f *Filter) SetRegion(r Region) { f.region = r }

// Region returns the filter region.
func (f *Filter) Region() Region { return f.region }

// SetFilterUnits sets the units of the filter region.
func (f *Filter) SetFilterUnits(t UnitsType) { f.filterUnits = t }

// SetPrimitiveUnits sets the units of primitive parameters and subregions.
func (f *Filter) SetPrimitiveUnits(t UnitsType) { f.primitiveUnits = t }

// SetOutput selects the slot written to the target. NotSet, the default,
// takes the last primitive's output.
func (f *Filter) SetOutput(id SlotID) { f.output = id }

// SetColorInterpolation sets the color space of primitives left at auto.
func (f *Filter) SetColorInterpolation(ci ColorInterpolation) { f.ci = ci }

// SetResolution fixes the horizontal pixel-buffer resolution of the filter
// area; the vertical one follows the area's aspect ratio.
func (f *Filter) SetResolution(x float64) {
	f.automatic = false
	f.resX, f.resY = x, 0
	f.deriveY = true
}

// SetResolutionXY fixes both pixel-buffer resolutions.
func (f *Filter) SetResolutionXY(x, y float64) {
	f.automatic = false
	f.resX, f.resY = x, y
	f.deriveY = false
}

// SetAutomaticResolution makes the resolution follow the display size.
func (f *Filter) SetAutomaticResolution() {
	f.automatic = true
	f.resX, f.resY = 0, 0
	f.deriveY = false
}

// SetPreferences replaces the rendering preferences.
func (f *Filter) SetPreferences(p Preferences) { f.opts.prefs = p }

// Preferences returns the rendering preferences.
func (f *Filter) Preferences() Preferences { return f.opts.prefs }

func (f *Filter) logger() *slog.Logger {
	if f.opts.logger != nil {
		return f.opts.logger
	}
	return Logger()
}

// Render applies the filter to item and writes the result over the whole
// target, replacing its pixels. The target's current pixels are the
// SourceGraphic. background, if not nil, supplies BackgroundImage.
//
// Render never fails: when there is nothing to draw the target is cleared
// and StatusCleared is returned.
func (f *Filter) Render(item Item, target Context, background *Context) (status Status) {
	log := f.logger()
	if target.Target == nil {
		return StatusCleared
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error("svgfx: filter render aborted", "panic", r)
			target.Target.Clear()
			status = StatusCleared
		}
	}()

	if len(f.primitives) == 0 {
		target.Target.Clear()
		return StatusCleared
	}

	area, ok := EffectArea(f.region, f.filterUnits, item.BBox)
	if !ok {
		log.Debug("svgfx: no filter area", "units", f.filterUnits, "hasBBox", item.BBox != nil)
		target.Target.Clear()
		return StatusCleared
	}

	u := NewUnits(f.filterUnits, f.primitiveUnits)
	u.SetCTM(item.CTM)
	u.SetItemBBox(item.BBox)
	u.SetFilterArea(area)
	u.SetAutomaticResolution(f.automatic)

	prefs := f.opts.prefs
	resX, resY := f.resolution(u, prefs.FilterQuality)
	if !(resX > 0 && resY > 0) {
		log.Debug("svgfx: degenerate resolution", "x", resX, "y", resY)
		target.Target.Clear()
		return StatusCleared
	}
	u.SetResolution(resX, resY)

	for _, p := range f.primitives {
		if !p.CanHandleAffine(item.CTM) {
			u.SetParallel(true)
			break
		}
	}

	var pool *parallel.WorkerPool
	if prefs.Threads > 1 {
		pool = parallel.NewWorkerPool(prefs.Threads)
		defer pool.Close()
	}

	slot, err := newSlot(u, target, background, prefs, f.ci, pool, log)
	if err != nil {
		log.Warn("svgfx: cannot create filter slot", "err", err)
		target.Target.Clear()
		return StatusCleared
	}
	log.Debug("svgfx: rendering filter",
		"primitives", len(f.primitives),
		"resX", resX, "resY", resY,
		"parallel", u.Parallel(),
		"slot", slot.Bounds())

	for _, p := range f.primitives {
		p.Render(slot)
	}

	target.Target.CopyFrom(slot.Result(f.output))
	return StatusRendered
}

// resolution returns the pixel-buffer size of the filter area.
func (f *Filter) resolution(u *Units, q Quality) (float64, float64) {
	if f.automatic {
		return u.AutomaticResolution(q)
	}
	if f.deriveY {
		a := u.FilterArea()
		if a.Width() <= 0 {
			return 0, 0
		}
		return f.resX, f.resX * a.Height() / a.Width()
	}
	return f.resX, f.resY
}

// AreaEnlarge grows a display-space area by the reach of every primitive
// applied to item, so that rendering the grown area yields correct pixels
// inside area. With objectBoundingBox primitive units the reach scales
// with the item's bbox.
func (f *Filter) AreaEnlarge(area image.Rectangle, item Item) image.Rectangle {
	m := unitsMatrix(item.CTM, f.primitiveUnits, item.BBox)
	for _, p := range f.primitives {
		area = p.AreaEnlarge(area, m)
	}
	return area
}

// Complexity estimates the relative cost of rendering under ctm. A chain
// of no-op primitives scores 1.
func (f *Filter) Complexity(ctm Matrix) float64 {
	c := 1.0
	for _, p := range f.primitives {
		c += p.Complexity(ctm) - 1
	}
	return c
}

// UsesBackground reports whether any primitive reads the background.
func (f *Filter) UsesBackground() bool {
	for _, p := range f.primitives {
		if p.UsesBackground() {
			return true
		}
	}
	return false
}
