package svgfx

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is a YAML document holding rendering preferences and one filter.
//
//	preferences:
//	  blurQuality: best
//	  threads: 4
//	filter:
//	  primitives:
//	    - type: feGaussianBlur
//	      stdDeviation: 2
//	      result: blur
//	    - type: feBlend
//	      in: blur
//	      in2: SourceGraphic
//	      mode: multiply
type Config struct {
	Preferences Preferences `yaml:"preferences"`
	Filter      FilterSpec  `yaml:"filter"`
}

// FilterSpec describes a filter the way an SVG <filter> element does.
type FilterSpec struct {
	FilterUnits    string      `yaml:"filterUnits,omitempty"`
	PrimitiveUnits string      `yaml:"primitiveUnits,omitempty"`
	Region         *RegionSpec `yaml:"region,omitempty"`
	// Resolution is empty for automatic resolution, one value for a fixed
	// horizontal resolution, or two values.
	Resolution                []float64       `yaml:"resolution,omitempty"`
	ColorInterpolationFilters string          `yaml:"colorInterpolationFilters,omitempty"`
	Output                    string          `yaml:"output,omitempty"`
	Primitives                []PrimitiveSpec `yaml:"primitives"`
}

// PrimitiveSpec describes one filter primitive. Keys other than the fixed
// ones are passed to Primitive.SetAttribute. Since type names the
// primitive, the type attribute of feColorMatrix is spelled matrixType.
type PrimitiveSpec struct {
	Type       string         `yaml:"type"`
	In         string         `yaml:"in,omitempty"`
	In2        string         `yaml:"in2,omitempty"`
	Inputs     []string       `yaml:"inputs,omitempty"`
	Result     string         `yaml:"result,omitempty"`
	Subregion  *RegionSpec    `yaml:"subregion,omitempty"`
	Attributes map[string]any `yaml:",inline"`
}

// RegionSpec is a region whose missing edges take default values.
type RegionSpec struct {
	X      *Length `yaml:"x,omitempty"`
	Y      *Length `yaml:"y,omitempty"`
	Width  *Length `yaml:"width,omitempty"`
	Height *Length `yaml:"height,omitempty"`
}

// Region fills the missing values from def.
func (r RegionSpec) Region(def Region) Region {
	pick := func(l *Length, d Length) Length {
		if l == nil {
			return d
		}
		return *l
	}
	return Region{
		X:      pick(r.X, def.X),
		Y:      pick(r.Y, def.Y),
		Width:  pick(r.Width, def.Width),
		Height: pick(r.Height, def.Height),
	}
}

// UnmarshalYAML accepts a quality by name ("worst" to "best") or as an
// integer from -2 to 2. Anything else is logged and leaves q unchanged.
func (q *Quality) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseQuality(value.Value)
	if err != nil {
		Logger().Warn("svgfx: ignoring quality", "line", value.Line, "err", err)
		return nil
	}
	*q = v
	return nil
}

// MarshalYAML writes the quality name.
func (q Quality) MarshalYAML() (any, error) {
	return q.String(), nil
}

// ParseQuality reads a quality name or integer level.
func ParseQuality(s string) (Quality, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for q := QualityWorst; q <= QualityBest; q++ {
		if q.String() == s {
			return q, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= int(QualityWorst) && n <= int(QualityBest) {
		return Quality(n), nil
	}
	return QualityNormal, fmt.Errorf("%w: quality %q", ErrInvalidAttribute, s)
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses a YAML config document. Missing preferences keep
// their defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := Config{Preferences: DefaultPreferences()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// BuildFilter creates a filter from its description.
//
// Unknown primitive types and malformed structure are errors. Bad
// attribute or units values are logged and leave the parameter at its
// default,
// and recognised but unsupported primitives are logged and skipped, so
// the filter degrades instead of failing.
func BuildFilter(spec FilterSpec, opts ...Option) (*Filter, error) {
	f := NewFilter(opts...)
	log := f.logger()

	if spec.FilterUnits != "" {
		if t, err := ParseUnitsType(spec.FilterUnits); err != nil {
			log.Warn("svgfx: ignoring filterUnits", "err", err)
		} else {
			f.SetFilterUnits(t)
		}
	}
	if spec.PrimitiveUnits != "" {
		if t, err := ParseUnitsType(spec.PrimitiveUnits); err != nil {
			log.Warn("svgfx: ignoring primitiveUnits", "err", err)
		} else {
			f.SetPrimitiveUnits(t)
		}
	}
	if spec.Region != nil {
		f.SetRegion(spec.Region.Region(DefaultRegion()))
	}
	switch len(spec.Resolution) {
	case 0:
	case 1:
		f.SetResolution(spec.Resolution[0])
	case 2:
		f.SetResolutionXY(spec.Resolution[0], spec.Resolution[1])
	default:
		return nil, fmt.Errorf("%w: resolution takes 1 or 2 values, got %d", ErrInvalidAttribute, len(spec.Resolution))
	}
	if spec.ColorInterpolationFilters != "" {
		ci, err := ParseColorInterpolation(spec.ColorInterpolationFilters)
		if err != nil {
			log.Warn("svgfx: ignoring filter attribute", "err", err)
		}
		f.SetColorInterpolation(ci)
	}

	names := make(map[string]SlotID)
	resolve := func(ref string) SlotID {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			return NotSet
		}
		if id, ok := slotKeyword(ref); ok {
			return id
		}
		if id, ok := names[ref]; ok {
			return id
		}
		log.Warn("svgfx: unknown input reference, using previous result", "in", ref)
		return NotSet
	}

	for i, ps := range spec.Primitives {
		t, err := ParsePrimitiveType(ps.Type)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		p, err := NewPrimitive(t)
		if errors.Is(err, ErrUnsupportedPrimitive) {
			log.Warn("svgfx: skipping primitive", "index", i, "err", err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}

		if len(ps.Inputs) > 0 {
			for n, ref := range ps.Inputs {
				p.SetInputN(n, resolve(ref))
			}
		} else {
			p.SetInput(resolve(ps.In))
			if ps.In2 != "" {
				p.SetInputN(1, resolve(ps.In2))
			}
		}
		if ps.Subregion != nil {
			p.SetSubregion(ps.Subregion.Region(FullRegion()))
		}
		setAttributes(p, ps.Attributes, log)

		if ps.Result != "" {
			id := Named(uint32(len(names)))
			if prev, ok := names[ps.Result]; ok {
				id = prev
			}
			names[ps.Result] = id
			p.SetOutput(id)
		}
		f.Add(p)
	}

	if spec.Output != "" {
		f.SetOutput(resolve(spec.Output))
	}
	return f, nil
}

// setAttributes applies attributes in a stable order so that, for
// feColorMatrix, matrixType is seen before values.
func setAttributes(p Primitive, attrs map[string]any, log *slog.Logger) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sortAttributeKeys(keys)
	for _, k := range keys {
		if err := p.SetAttribute(k, attributeString(attrs[k])); err != nil {
			log.Warn("svgfx: ignoring primitive attribute", "type", p.Type(), "attr", k, "err", err)
		}
	}
}

// sortAttributeKeys orders matrixType first, the rest alphabetically.
func sortAttributeKeys(keys []string) {
	rank := func(k string) string {
		if k == "matrixType" {
			return ""
		}
		return k
	}
	slices.SortFunc(keys, func(a, b string) int {
		return cmp.Compare(rank(a), rank(b))
	})
}

// attributeString renders a decoded YAML value in SVG attribute syntax:
// lists become space separated.
func attributeString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = attributeString(e)
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(x)
	}
}
