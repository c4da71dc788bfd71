package svgfx

import (
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/svgfx/internal/parallel"
)

// Slot is the buffer table of one filter invocation. It maps slot ids to
// buffers in pixel-buffer space and synthesises the well-known inputs on
// first use.
//
// Every buffer in a slot covers the same pixel-buffer rectangle: the part
// of the target that falls inside the filter area.
//
// Thread safety: a Slot belongs to a single Render call and is not safe
// for concurrent use.
type Slot struct {
	units      *Units
	target     Context
	background *Context
	prefs      Preferences
	ci         ColorInterpolation
	pool       *parallel.WorkerPool
	logger     *slog.Logger

	rect    image.Rectangle
	buffers map[SlotID]*Buffer
	lastOut SlotID
}

// newSlot sizes the slot from the target and the units. The returned error
// is ErrInvalidDimensions when the target misses the filter area entirely
// and ErrBufferTooLarge when the slot could not be allocated.
func newSlot(u *Units, target Context, background *Context, prefs Preferences,
	ci ColorInterpolation, pool *parallel.WorkerPool, logger *slog.Logger) (*Slot, error) {
	d2pb := u.DisplayToPixelBuffer()
	w, h := target.Target.Width(), target.Target.Height()

	var r image.Rectangle
	if d2pb.IsTranslation() {
		x := int(math.Floor(float64(target.Origin.X) + d2pb.C))
		y := int(math.Floor(float64(target.Origin.Y) + d2pb.F))
		r = image.Rect(x, y, x+w, y+h)
	} else {
		disp := NewRect(float64(target.Origin.X), float64(target.Origin.Y), float64(w), float64(h))
		r = disp.Transform(d2pb).RoundOut()
	}
	r = r.Intersect(u.PixelBufferFilterArea())
	if err := checkSize(FormatARGB32, r.Dx(), r.Dy()); err != nil {
		return nil, err
	}

	return &Slot{
		units:      u,
		target:     target,
		background: background,
		prefs:      prefs,
		ci:         ci,
		pool:       pool,
		logger:     logger,
		rect:       r,
		buffers:    make(map[SlotID]*Buffer),
		lastOut:    SourceGraphic,
	}, nil
}

// Units returns the coordinate mapper of this invocation.
func (s *Slot) Units() *Units { return s.units }

// Quality returns the filter quality preference.
func (s *Slot) Quality() Quality { return s.prefs.FilterQuality }

// BlurQuality returns the blur quality preference.
func (s *Slot) BlurQuality() Quality { return s.prefs.BlurQuality }

// Width returns the width of every buffer in the slot.
func (s *Slot) Width() int { return s.rect.Dx() }

// Height returns the height of every buffer in the slot.
func (s *Slot) Height() int { return s.rect.Dy() }

// Bounds returns the slot rectangle in pixel-buffer space.
func (s *Slot) Bounds() image.Rectangle { return s.rect }

// ColorInterpolation returns the filter-wide color-interpolation-filters
// value used by primitives set to auto.
func (s *Slot) ColorInterpolation() ColorInterpolation { return s.ci }

// LastOutput returns the id most recently written.
func (s *Slot) LastOutput() SlotID { return s.lastOut }

// Get returns the buffer bound to id. NotSet resolves to the last output.
// Unbound well-known inputs are created on first use and kept; any other
// unbound id yields a transparent buffer, so the result is never nil. It
// must not be modified.
func (s *Slot) Get(id SlotID) *Buffer {
	if id.role == RoleNotSet {
		id = s.lastOut
	}
	if b, ok := s.buffers[id]; ok {
		return b
	}

	var b *Buffer
	switch id.role {
	case RoleSourceGraphic:
		b = s.resample(s.target)
	case RoleSourceAlpha:
		b = s.Get(SourceGraphic).ExtractAlpha()
	case RoleBackgroundImage:
		if s.background != nil && s.background.Target != nil {
			b = s.resample(*s.background)
		} else {
			b = s.blank(FormatARGB32)
			b.ci = ColorInterpolationSRGB
		}
	case RoleBackgroundAlpha:
		b = s.Get(BackgroundImage).ExtractAlpha()
	default:
		s.logger.Debug("svgfx: unbound slot read as transparent", "slot", id)
		b = s.blank(FormatARGB32)
	}
	s.buffers[id] = b
	return b
}

// Set binds a copy of buf to id, replacing any previous buffer. NotSet is
// stored as Unnamed. The id becomes the last output.
func (s *Slot) Set(id SlotID, buf *Buffer) {
	s.set(id, buf.Clone())
}

// set binds buf without copying; the slot takes ownership.
func (s *Slot) set(id SlotID, buf *Buffer) {
	if id.role == RoleNotSet {
		id = Unnamed
	}
	s.buffers[id] = buf
	s.lastOut = id
}

// Result returns the buffer bound to id mapped back to display space, in
// the target's format and size. Linear RGB output is converted to sRGB.
func (s *Slot) Result(id SlotID) *Buffer {
	src := s.Get(id)
	if src.ci == ColorInterpolationLinearRGB {
		src = src.convertedTo(ColorInterpolationSRGB)
	}
	tgt := s.target.Target
	if src.format != tgt.format {
		if tgt.format == FormatA8 {
			src = src.ExtractAlpha()
		} else {
			src = src.ToARGB32()
		}
	}

	out := newBuffer(tgt.format, tgt.width, tgt.height)
	out.ci = src.ci
	o := s.target.Origin
	m := Translate(float64(-o.X), float64(-o.Y)).
		Multiply(s.units.PixelBufferToDisplay()).
		Multiply(Translate(float64(s.rect.Min.X), float64(s.rect.Min.Y)))
	place(out, src, m)
	return out
}

// resample maps a drawing context into the slot.
func (s *Slot) resample(c Context) *Buffer {
	dst := s.blank(c.Target.format)
	m := Translate(float64(-s.rect.Min.X), float64(-s.rect.Min.Y)).
		Multiply(s.units.DisplayToPixelBuffer()).
		Multiply(Translate(float64(c.Origin.X), float64(c.Origin.Y)))
	place(dst, c.Target, m)
	dst.ci = ColorInterpolationSRGB
	return dst
}

// place draws src into dst, where m maps src pixel coordinates to dst
// pixel coordinates. Integer translations are copied exactly.
func place(dst, src *Buffer, m Matrix) {
	if m.IsIntegerTranslation() {
		sp := image.Pt(-int(math.Round(m.C)), -int(math.Round(m.F)))
		draw.Draw(dst.Image(), dst.Bounds(), src.Image(), sp, draw.Src)
		return
	}
	draw.BiLinear.Transform(dst.Image(), m.Aff3(), src.Image(), src.Bounds(), draw.Src, nil)
}

// blank allocates a transparent buffer of slot size.
func (s *Slot) blank(f Format) *Buffer {
	return newBuffer(f, s.rect.Dx(), s.rect.Dy())
}

// pixelRegion evaluates a primitive subregion in slot pixel coordinates.
func (s *Slot) pixelRegion(r Region) (image.Rectangle, bool) {
	pr, ok := s.units.PixelBufferRegion(r)
	if !ok {
		return image.Rectangle{}, false
	}
	return pr.Sub(s.rect.Min), true
}
