package svgfx

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const shadowConfig = `
preferences:
  filterQuality: better
  blurQuality: 1
  threads: 2
filter:
  filterUnits: userSpaceOnUse
  region: {x: 0, y: 0, width: 64, height: "50%"}
  colorInterpolationFilters: linearRGB
  primitives:
    - type: feGaussianBlur
      in: SourceAlpha
      stdDeviation: [3, 2]
      result: blur
    - type: offset
      dx: 4
      dy: 4
      result: shifted
    - type: feFlood
      flood-color: "#336699"
      flood-opacity: 0.5
    - type: feComposite
      in2: shifted
      operator: in
      result: shadow
    - type: feMerge
      inputs: [shadow, SourceGraphic]
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(shadowConfig))
	if err != nil {
		t.Fatalf("ParseConfig() = %v", err)
	}
	if cfg.Preferences.FilterQuality != QualityBetter {
		t.Errorf("filterQuality = %v", cfg.Preferences.FilterQuality)
	}
	if cfg.Preferences.BlurQuality != QualityBetter {
		t.Errorf("blurQuality by number = %v", cfg.Preferences.BlurQuality)
	}
	if cfg.Preferences.Threads != 2 {
		t.Errorf("threads = %d", cfg.Preferences.Threads)
	}
	spec := cfg.Filter
	if spec.FilterUnits != "userSpaceOnUse" {
		t.Errorf("filterUnits = %q", spec.FilterUnits)
	}
	if spec.Region == nil || spec.Region.Height == nil || *spec.Region.Height != Pct(50) {
		t.Errorf("region height = %+v", spec.Region)
	}
	if len(spec.Primitives) != 5 {
		t.Fatalf("primitives = %d", len(spec.Primitives))
	}
	if got := attributeString(spec.Primitives[0].Attributes["stdDeviation"]); got != "3 2" {
		t.Errorf("stdDeviation list = %q", got)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("filter:\n  primitives: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Preferences != DefaultPreferences() {
		t.Errorf("preferences = %+v, want defaults", cfg.Preferences)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad length", "filter:\n  region: {x: wide}\n"},
		{"length not scalar", "filter:\n  region: {x: [1, 2]}\n"},
		{"not yaml", "filter: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.doc)); err == nil {
				t.Error("ParseConfig() accepted the document")
			}
		})
	}
}

func TestParseConfigBadEnumFallsBack(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	doc := `preferences:
  filterQuality: 7
  blurQuality: superb
  threads: 3
filter:
  filterUnits: bogus
  primitiveUnits: pixels
  primitives:
    - type: feOffset
      dx: 0.5
`
	cfg, err := ParseConfig([]byte(doc))
	if err != nil {
		t.Fatalf("ParseConfig() = %v", err)
	}
	if cfg.Preferences.FilterQuality != QualityNormal || cfg.Preferences.BlurQuality != QualityNormal {
		t.Errorf("qualities = %v, %v, want normal", cfg.Preferences.FilterQuality, cfg.Preferences.BlurQuality)
	}
	if cfg.Preferences.Threads != 3 {
		t.Errorf("threads = %d, want 3", cfg.Preferences.Threads)
	}
	if n := strings.Count(buf.String(), "ignoring quality"); n != 2 {
		t.Errorf("quality warnings = %d, want 2\n%s", n, buf.String())
	}

	buf.Reset()
	f, err := BuildFilter(cfg.Filter, WithLogger(Logger()))
	if err != nil {
		t.Fatalf("BuildFilter() = %v", err)
	}
	if f.filterUnits != ObjectBoundingBox {
		t.Errorf("filterUnits = %v, want objectBoundingBox", f.filterUnits)
	}
	if f.primitiveUnits != UserSpaceOnUse {
		t.Errorf("primitiveUnits = %v, want userSpaceOnUse", f.primitiveUnits)
	}
	for _, want := range []string{"ignoring filterUnits", "ignoring primitiveUnits"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log lacks %q:\n%s", want, buf.String())
		}
	}
}

func TestQualityYAMLRoundTrip(t *testing.T) {
	out, err := yaml.Marshal(Preferences{FilterQuality: QualityWorst, BlurQuality: QualityBest, Threads: 3})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "filterQuality: worst") {
		t.Errorf("marshalled preferences = %s", out)
	}
	var p Preferences
	if err := yaml.Unmarshal(out, &p); err != nil {
		t.Fatal(err)
	}
	if p.FilterQuality != QualityWorst || p.BlurQuality != QualityBest || p.Threads != 3 {
		t.Errorf("round trip = %+v", p)
	}
}

func TestBuildFilter(t *testing.T) {
	cfg, err := ParseConfig([]byte(shadowConfig))
	if err != nil {
		t.Fatal(err)
	}
	f, err := BuildFilter(cfg.Filter, WithPreferences(cfg.Preferences))
	if err != nil {
		t.Fatalf("BuildFilter() = %v", err)
	}
	if f.Len() != 5 {
		t.Fatalf("Len() = %d", f.Len())
	}

	ps := f.Primitives()
	g := ps[0].(*Gaussian)
	if x, y := g.Deviation(); x != 3 || y != 2 {
		t.Errorf("deviation = (%v, %v)", x, y)
	}
	if g.input(0) != SourceAlpha || g.Output() != Named(0) {
		t.Errorf("blur wiring = %v -> %v", g.input(0), g.Output())
	}
	if o := ps[1].(*Offset); o.dx != 4 || o.dy != 4 || o.input(0) != NotSet || o.Output() != Named(1) {
		t.Errorf("offset = %+v", o)
	}
	if fl := ps[2].(*Flood); fl.opacity != 0.5 || fl.color.B != 0x99 {
		t.Errorf("flood = %+v", fl)
	}
	c := ps[3].(*Composite)
	if c.input(1) != Named(1) || c.Output() != Named(2) {
		t.Errorf("composite wiring = %v, %v", c.input(1), c.Output())
	}
	m := ps[4].(*Merge)
	if len(m.inputs) != 2 || m.inputs[0] != Named(2) || m.inputs[1] != SourceGraphic {
		t.Errorf("merge inputs = %v", m.inputs)
	}
	if f.ci != ColorInterpolationLinearRGB {
		t.Errorf("filter ci = %v", f.ci)
	}
	if f.filterUnits != UserSpaceOnUse {
		t.Errorf("filter units = %v", f.filterUnits)
	}
	want := Region{X: Abs(0), Y: Abs(0), Width: Abs(64), Height: Pct(50)}
	if f.Region() != want {
		t.Errorf("region = %+v", f.Region())
	}

	target, item := squareScene(t, 32, 16)
	if status := f.Render(item, Context{Target: target}, nil); status != StatusRendered {
		t.Errorf("Render() = %v", status)
	}
}

func TestBuildFilterColorMatrixType(t *testing.T) {
	doc := `
filter:
  primitives:
    - type: feColorMatrix
      values: 0
      matrixType: saturate
`
	cfg, err := ParseConfig([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	f, err := BuildFilter(cfg.Filter, WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Primitives()[0].(*ColorMatrix).Matrix(); got != saturateMatrix(0) {
		t.Errorf("matrix = %v, want saturate 0", got)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected warnings: %s", buf.String())
	}
}

func TestBuildFilterDegradesGracefully(t *testing.T) {
	doc := `
filter:
  primitives:
    - type: feTurbulence
      baseFrequency: 0.05
    - type: feGaussianBlur
      in: nowhere
      stdDeviation: -4
      glow: 3
    - type: feBlend
      mode: dissolve
`
	cfg, err := ParseConfig([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	f, err := BuildFilter(cfg.Filter, WithLogger(log))
	if err != nil {
		t.Fatalf("BuildFilter() = %v", err)
	}
	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want the unsupported primitive skipped", f.Len())
	}
	g := f.Primitives()[0].(*Gaussian)
	if x, y := g.Deviation(); x != 0 || y != 0 {
		t.Errorf("negative deviation applied: (%v, %v)", x, y)
	}
	if g.input(0) != NotSet {
		t.Errorf("unknown reference resolved to %v", g.input(0))
	}
	if b := f.Primitives()[1].(*Blend); b.Mode() != "normal" {
		t.Errorf("bad mode applied: %q", b.Mode())
	}
	logs := buf.String()
	for _, want := range []string{"skipping primitive", "unknown input reference", "glow", "dissolve"} {
		if !strings.Contains(logs, want) {
			t.Errorf("log lacks %q:\n%s", want, logs)
		}
	}
}

func TestBuildFilterErrors(t *testing.T) {
	tests := []struct {
		name string
		spec FilterSpec
	}{
		{"unknown type", FilterSpec{Primitives: []PrimitiveSpec{{Type: "feSparkle"}}}},
		{"resolution arity", FilterSpec{Resolution: []float64{1, 2, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildFilter(tt.spec); err == nil {
				t.Error("BuildFilter() accepted the spec")
			}
		})
	}
}

func TestBuildFilterResolution(t *testing.T) {
	f, err := BuildFilter(FilterSpec{Resolution: []float64{100}})
	if err != nil {
		t.Fatal(err)
	}
	if f.automatic || !f.deriveY || f.resX != 100 {
		t.Errorf("one value: automatic=%v deriveY=%v resX=%v", f.automatic, f.deriveY, f.resX)
	}
	f, err = BuildFilter(FilterSpec{Resolution: []float64{100, 40}})
	if err != nil {
		t.Fatal(err)
	}
	if f.automatic || f.deriveY || f.resY != 40 {
		t.Errorf("two values: automatic=%v deriveY=%v resY=%v", f.automatic, f.deriveY, f.resY)
	}
}

func TestBuildFilterOutputAndSubregion(t *testing.T) {
	doc := `
filter:
  output: base
  primitives:
    - type: feFlood
      result: base
      subregion: {width: "50%"}
    - type: feOffset
      dx: 1
`
	cfg, err := ParseConfig([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	f, err := BuildFilter(cfg.Filter)
	if err != nil {
		t.Fatal(err)
	}
	if f.output != Named(0) {
		t.Errorf("output = %v, want result0", f.output)
	}
	fl := f.Primitives()[0].(*Flood)
	want := Region{X: Pct(0), Y: Pct(0), Width: Pct(50), Height: Pct(100)}
	if fl.subregion == nil || *fl.subregion != want {
		t.Errorf("subregion = %+v, want %+v", fl.subregion, want)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.yaml")
	if err := os.WriteFile(path, []byte(shadowConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	if len(cfg.Filter.Primitives) != 5 {
		t.Errorf("primitives = %d", len(cfg.Filter.Primitives))
	}

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestSortAttributeKeys(t *testing.T) {
	keys := []string{"values", "in", "matrixType", "color-interpolation-filters"}
	sortAttributeKeys(keys)
	want := []string{"matrixType", "color-interpolation-filters", "in", "values"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("order = %v, want %v", keys, want)
		}
	}
}
