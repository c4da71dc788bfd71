package svgfx

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// near reports whether two bytes differ by at most tol.
func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d >= -tol && d <= tol
}

func nearRGBA(a, b color.RGBA, tol int) bool {
	return near(a.R, b.R, tol) && near(a.G, b.G, tol) && near(a.B, b.B, tol) && near(a.A, b.A, tol)
}

// solid returns a w x h ARGB32 buffer filled with c.
func solid(t testing.TB, w, h int, c color.RGBA) *Buffer {
	t.Helper()
	b := mustBuffer(t, FormatARGB32, w, h)
	fillRect(b, 0, 0, w, h, c)
	return b
}

var (
	opaqueRed  = color.RGBA{R: 255, A: 255}
	opaqueBlue = color.RGBA{B: 255, A: 255}
	opaqueGray = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// =============================================================================
// Primitive registry
// =============================================================================

func TestParsePrimitiveType(t *testing.T) {
	tests := []struct {
		in   string
		want PrimitiveType
	}{
		{"feGaussianBlur", TypeGaussianBlur},
		{"gaussianblur", TypeGaussianBlur},
		{"FEBLEND", TypeBlend},
		{"merge", TypeMerge},
		{"feTurbulence", TypeTurbulence},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrimitiveType(tt.in)
			if err != nil || got != tt.want {
				t.Errorf("ParsePrimitiveType(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
	if _, err := ParsePrimitiveType("feSparkle"); err == nil {
		t.Error("unknown primitive type accepted")
	}
}

func TestNewPrimitive(t *testing.T) {
	supported := []PrimitiveType{
		TypeBlend, TypeColorMatrix, TypeComposite, TypeFlood,
		TypeGaussianBlur, TypeMerge, TypeOffset,
	}
	for _, typ := range supported {
		p, err := NewPrimitive(typ)
		if err != nil {
			t.Errorf("NewPrimitive(%v) = %v", typ, err)
			continue
		}
		if p.Type() != typ {
			t.Errorf("NewPrimitive(%v).Type() = %v", typ, p.Type())
		}
	}
	if _, err := NewPrimitive(TypeTurbulence); !errors.Is(err, ErrUnsupportedPrimitive) {
		t.Errorf("NewPrimitive(turbulence) error = %v", err)
	}
}

func TestPrimitiveCommonAttributes(t *testing.T) {
	p := NewOffset()
	if err := p.SetAttribute("color-interpolation-filters", "linearRGB"); err != nil {
		t.Fatal(err)
	}
	if p.ci != ColorInterpolationLinearRGB {
		t.Errorf("ci = %v", p.ci)
	}
	if err := p.SetAttribute("color-interpolation-filters", "cmyk"); !errors.Is(err, ErrInvalidAttribute) {
		t.Errorf("bad keyword error = %v", err)
	}
	if err := p.SetAttribute("radius", "3"); !errors.Is(err, ErrInvalidAttribute) {
		t.Errorf("unknown attribute error = %v", err)
	}
}

func TestPrimitiveUsesBackground(t *testing.T) {
	b := NewBlend()
	if b.UsesBackground() {
		t.Error("unwired blend uses background")
	}
	b.SetInputN(1, BackgroundAlpha)
	if !b.UsesBackground() {
		t.Error("blend reading BackgroundAlpha does not use background")
	}
}

// =============================================================================
// Blend
// =============================================================================

func TestBlendModes(t *testing.T) {
	tests := []struct {
		mode string
		want color.RGBA
	}{
		{"normal", opaqueRed},
		{"multiply", color.RGBA{R: 128, A: 255}},
		{"screen", color.RGBA{R: 255, G: 128, B: 128, A: 255}},
		{"darken", color.RGBA{R: 128, A: 255}},
		{"lighten", color.RGBA{R: 255, G: 128, B: 128, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			s := newTestSlot(t, mustBuffer(t, FormatARGB32, 4, 4), nil, UserSpaceOnUse)
			s.Set(Named(0), solid(t, 4, 4, opaqueRed))
			s.Set(Named(1), solid(t, 4, 4, opaqueGray))

			b := NewBlend()
			if err := b.SetAttribute("mode", tt.mode); err != nil {
				t.Fatal(err)
			}
			b.SetInput(Named(0))
			b.SetInputN(1, Named(1))
			b.SetOutput(Named(2))
			b.Render(s)

			if got := s.Get(Named(2)).At(2, 2); !nearRGBA(got, tt.want, 1) {
				t.Errorf("%s = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestBlendInvalidMode(t *testing.T) {
	b := NewBlend()
	if err := b.SetMode("dissolve"); !errors.Is(err, ErrInvalidAttribute) {
		t.Errorf("SetMode(dissolve) error = %v", err)
	}
	if b.Mode() != "normal" {
		t.Errorf("mode after bad value = %q", b.Mode())
	}
}

func TestBlendAlphaOnly(t *testing.T) {
	s := newTestSlot(t, mustBuffer(t, FormatARGB32, 2, 2), nil, UserSpaceOnUse)
	a := mustBuffer(t, FormatA8, 2, 2)
	fillRect(a, 0, 0, 2, 2, color.RGBA{A: 128})
	s.Set(Named(0), a)

	b := NewBlend()
	b.SetInput(Named(0))
	b.SetInputN(1, Named(0))
	b.Render(s)

	out := s.Get(NotSet)
	if out.Format() != FormatA8 {
		t.Fatalf("format = %s, want A8", out.Format())
	}
	// 128 over 128 = 128 + 128*127/255
	if v := out.Row(0)[0]; !near(v, 192, 1) {
		t.Errorf("alpha = %d, want about 192", v)
	}
}

// =============================================================================
// Composite
// =============================================================================

func TestCompositeOperators(t *testing.T) {
	half := color.RGBA{A: 128}
	tests := []struct {
		name  string
		setup func(c *Composite) error
		want  color.RGBA
	}{
		{"over", func(c *Composite) error { return c.SetOperator("over") }, opaqueRed},
		{"in", func(c *Composite) error { return c.SetOperator("in") }, color.RGBA{R: 128, A: 128}},
		{"out", func(c *Composite) error { return c.SetOperator("out") }, color.RGBA{R: 127, A: 127}},
		{"atop", func(c *Composite) error { return c.SetOperator("atop") }, color.RGBA{R: 128, A: 128}},
		{"arithmetic", func(c *Composite) error {
			c.SetArithmetic(0, 0.5, 0, 0)
			return nil
		}, color.RGBA{R: 128, A: 128}},
		{"arithmetic attributes", func(c *Composite) error {
			for k, v := range map[string]string{"operator": "arithmetic", "k3": "1"} {
				if err := c.SetAttribute(k, v); err != nil {
					return err
				}
			}
			return nil
		}, half},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSlot(t, mustBuffer(t, FormatARGB32, 4, 4), nil, UserSpaceOnUse)
			s.Set(Named(0), solid(t, 4, 4, opaqueRed))
			s.Set(Named(1), solid(t, 4, 4, half))

			c := NewComposite()
			if err := tt.setup(c); err != nil {
				t.Fatal(err)
			}
			c.SetInput(Named(0))
			c.SetInputN(1, Named(1))
			c.Render(s)

			if got := s.Get(NotSet).At(1, 1); !nearRGBA(got, tt.want, 1) {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestCompositeBadCoefficient(t *testing.T) {
	c := NewComposite()
	if err := c.SetAttribute("k1", "lots"); !errors.Is(err, ErrInvalidAttribute) {
		t.Errorf("k1=lots error = %v", err)
	}
	if err := c.SetOperator("plus"); err == nil {
		t.Error("unknown operator accepted")
	}
}

// =============================================================================
// Merge
// =============================================================================

func TestMergeLayers(t *testing.T) {
	s := newTestSlot(t, mustBuffer(t, FormatARGB32, 10, 10), nil, UserSpaceOnUse)
	bottom := solid(t, 10, 10, opaqueBlue)
	top := mustBuffer(t, FormatARGB32, 10, 10)
	fillRect(top, 0, 0, 5, 10, opaqueRed)
	s.Set(Named(0), bottom)
	s.Set(Named(1), top)

	m := NewMerge()
	m.SetInputN(0, Named(0))
	m.SetInputN(1, Named(1))
	m.Render(s)

	out := s.Get(NotSet)
	if got := out.At(2, 5); got != opaqueRed {
		t.Errorf("left = %v, want red", got)
	}
	if got := out.At(7, 5); got != opaqueBlue {
		t.Errorf("right = %v, want blue", got)
	}
	if m.Complexity(Identity()) != 2 {
		t.Errorf("Complexity() = %v, want 2", m.Complexity(Identity()))
	}
}

func TestMergeEmpty(t *testing.T) {
	s := newTestSlot(t, solid(t, 3, 3, opaqueRed), nil, UserSpaceOnUse)
	NewMerge().Render(s)
	if got := s.Get(NotSet).At(1, 1); got.A != 0 {
		t.Errorf("empty merge = %v, want transparent", got)
	}
}

// =============================================================================
// Offset
// =============================================================================

func TestOffsetShiftsInput(t *testing.T) {
	target := mustBuffer(t, FormatARGB32, 20, 20)
	fillRect(target, 5, 5, 10, 10, opaqueRed)
	s := newTestSlot(t, target, nil, UserSpaceOnUse)

	o := NewOffset()
	o.SetOffset(3, -2)
	o.Render(s)

	out := s.Get(NotSet)
	if got := out.At(8, 3); got != opaqueRed {
		t.Errorf("shifted top-left = %v, want red", got)
	}
	if got := out.At(12, 7); got != opaqueRed {
		t.Errorf("shifted bottom-right = %v, want red", got)
	}
	if got := out.At(5, 5); got.A != 0 {
		t.Errorf("vacated pixel = %v, want transparent", got)
	}
}

func TestOffsetBoundingBoxUnits(t *testing.T) {
	target := mustBuffer(t, FormatARGB32, 40, 40)
	fillRect(target, 0, 0, 1, 1, opaqueRed)
	bbox := NewRect(0, 0, 20, 10)
	s := newTestSlot(t, target, &bbox, ObjectBoundingBox)

	o := NewOffset()
	o.SetOffset(0.5, 0.5)
	o.Render(s)

	if got := s.Get(NotSet).At(10, 5); got != opaqueRed {
		t.Errorf("pixel at (10, 5) = %v, want the shifted red pixel", got)
	}
}

func TestOffsetAreaEnlarge(t *testing.T) {
	o := NewOffset()
	o.SetOffset(4, -3)
	got := o.AreaEnlarge(image.Rect(0, 0, 10, 10), Identity())
	if want := image.Rect(-4, 0, 10, 13); got != want {
		t.Errorf("AreaEnlarge() = %v, want %v", got, want)
	}

	o.SetOffset(1e300, 0)
	got = o.AreaEnlarge(image.Rect(0, 0, 10, 10), Identity())
	if want := image.Rect(-MaxBufferDimension, 0, 10, 10); got != want {
		t.Errorf("AreaEnlarge() for a huge offset = %v, want %v", got, want)
	}
}

// =============================================================================
// Flood
// =============================================================================

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"red", color.NRGBA{R: 255, A: 255}, false},
		{"CornflowerBlue", color.NRGBA{R: 100, G: 149, B: 237, A: 255}, false},
		{"#00ff00", color.NRGBA{G: 255, A: 255}, false},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"transparent", color.NRGBA{}, false},
		{"#12", color.NRGBA{}, true},
		{"reddish", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFloodFillsPremultiplied(t *testing.T) {
	s := newTestSlot(t, mustBuffer(t, FormatARGB32, 6, 6), nil, UserSpaceOnUse)
	f := NewFlood()
	if err := f.SetAttribute("flood-color", "red"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetAttribute("flood-opacity", "0.5"); err != nil {
		t.Fatal(err)
	}
	f.Render(s)

	if got := s.Get(NotSet).At(3, 3); !nearRGBA(got, color.RGBA{R: 128, A: 128}, 1) {
		t.Errorf("flood pixel = %v", got)
	}
}

func TestFloodOpacityClamped(t *testing.T) {
	f := NewFlood()
	f.SetOpacity(3)
	if f.opacity != 1 {
		t.Errorf("opacity = %v, want 1", f.opacity)
	}
	f.SetOpacity(-1)
	if f.opacity != 0 {
		t.Errorf("opacity = %v, want 0", f.opacity)
	}
}

func TestFloodSubregion(t *testing.T) {
	s := newTestSlot(t, mustBuffer(t, FormatARGB32, 20, 20), nil, UserSpaceOnUse)
	f := NewFlood()
	f.SetSubregion(Region{X: Abs(5), Y: Abs(5), Width: Abs(10), Height: Abs(5)})
	f.Render(s)

	out := s.Get(NotSet)
	if got := out.At(7, 7); got.A != 255 {
		t.Errorf("inside subregion alpha = %d", got.A)
	}
	for _, p := range []image.Point{{4, 7}, {15, 7}, {7, 4}, {7, 10}} {
		if got := out.At(p.X, p.Y); got.A != 0 {
			t.Errorf("outside subregion %v alpha = %d", p, got.A)
		}
	}
}

func TestFloodLinearRGBRoundTrip(t *testing.T) {
	target := mustBuffer(t, FormatARGB32, 4, 4)
	s := newTestSlot(t, target, nil, UserSpaceOnUse)
	f := NewFlood()
	f.SetColor(color.NRGBA{R: 128, G: 64, B: 200, A: 255})
	f.SetColorInterpolation(ColorInterpolationLinearRGB)
	f.Render(s)

	if ci := s.Get(NotSet).ColorInterpolation(); ci != ColorInterpolationLinearRGB {
		t.Fatalf("flood output tagged %v", ci)
	}
	got := s.Result(NotSet).At(1, 1)
	if !nearRGBA(got, color.RGBA{R: 128, G: 64, B: 200, A: 255}, 2) {
		t.Errorf("result = %v after linear round trip", got)
	}
}

// =============================================================================
// ColorMatrix
// =============================================================================

func TestColorMatrixTypes(t *testing.T) {
	tests := []struct {
		name  string
		attrs [][2]string
		in    color.RGBA
		want  color.RGBA
	}{
		{"identity", nil, opaqueRed, opaqueRed},
		{"saturate 0", [][2]string{{"type", "saturate"}, {"values", "0"}}, opaqueRed,
			color.RGBA{R: 54, G: 54, B: 54, A: 255}},
		{"saturate default", [][2]string{{"type", "saturate"}}, opaqueRed, opaqueRed},
		{"hueRotate 0", [][2]string{{"type", "hueRotate"}, {"values", "0"}}, opaqueBlue, opaqueBlue},
		{"luminanceToAlpha", [][2]string{{"type", "luminanceToAlpha"}},
			color.RGBA{R: 255, G: 255, B: 255, A: 255}, color.RGBA{A: 255}},
		{"swap red and blue", [][2]string{{"values",
			"0 0 1 0 0  0 1 0 0 0  1 0 0 0 0  0 0 0 1 0"}}, opaqueRed, opaqueBlue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSlot(t, solid(t, 3, 3, tt.in), nil, UserSpaceOnUse)
			c := NewColorMatrix()
			for _, a := range tt.attrs {
				if err := c.SetAttribute(a[0], a[1]); err != nil {
					t.Fatalf("SetAttribute(%s, %s) = %v", a[0], a[1], err)
				}
			}
			c.Render(s)
			if got := s.Get(NotSet).At(1, 1); !nearRGBA(got, tt.want, 1) {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestColorMatrixWrongValueCount(t *testing.T) {
	c := NewColorMatrix()
	if err := c.SetAttribute("values", "1 2 3"); !errors.Is(err, ErrInvalidAttribute) {
		t.Errorf("three values for a full matrix error = %v", err)
	}
	if err := c.SetAttribute("type", "sepia"); !errors.Is(err, ErrInvalidAttribute) {
		t.Errorf("unknown type error = %v", err)
	}
}

func TestColorMatrixTypeAfterValues(t *testing.T) {
	c := NewColorMatrix()
	if err := c.SetAttribute("values", "0.5"); err == nil {
		t.Fatal("a single value for a full matrix was accepted")
	}
	if err := c.SetAttribute("type", "saturate"); err != nil {
		t.Fatal(err)
	}
	if got, want := c.Matrix(), saturateMatrix(0.5); got != want {
		t.Errorf("type change did not re-read the values: %v", got)
	}
}
