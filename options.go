package svgfx

import (
	"log/slog"
	"runtime"
)

// Quality is a rendering quality preference. Lower values trade accuracy
// for speed.
type Quality int

const (
	QualityWorst  Quality = -2
	QualityWorse  Quality = -1
	QualityNormal Quality = 0
	QualityBetter Quality = 1
	QualityBest   Quality = 2
)

// String returns the lower-case name of the quality level.
func (q Quality) String() string {
	switch q {
	case QualityWorst:
		return "worst"
	case QualityWorse:
		return "worse"
	case QualityNormal:
		return "normal"
	case QualityBetter:
		return "better"
	case QualityBest:
		return "best"
	default:
		return "unknown"
	}
}

// resolutionLimit returns the maximum pixel-buffer edge length for
// automatic resolution, or 0 for no limit.
func (q Quality) resolutionLimit() float64 {
	switch {
	case q <= QualityWorst:
		return 32
	case q == QualityWorse:
		return 64
	case q == QualityNormal:
		return 256
	default:
		return 0
	}
}

// Preferences are the rendering preferences a Filter consults on every
// render.
type Preferences struct {
	// FilterQuality bounds the automatic pixel-buffer resolution.
	FilterQuality Quality `yaml:"filterQuality"`
	// BlurQuality selects the Gaussian subsampling step.
	BlurQuality Quality `yaml:"blurQuality"`
	// Threads is the number of blur workers; 1 or less runs inline.
	Threads int `yaml:"threads"`
}

// DefaultPreferences returns normal quality on both axes and one worker
// per CPU.
func DefaultPreferences() Preferences {
	return Preferences{
		FilterQuality: QualityNormal,
		BlurQuality:   QualityNormal,
		Threads:       runtime.NumCPU(),
	}
}

// Option configures a Filter during creation.
//
// Example:
//
//	f := svgfx.NewFilter(
//	    svgfx.WithBlurQuality(svgfx.QualityBest),
//	    svgfx.WithThreads(1),
//	)
type Option func(*filterOptions)

type filterOptions struct {
	prefs  Preferences
	logger *slog.Logger
}

func defaultOptions() filterOptions {
	return filterOptions{prefs: DefaultPreferences()}
}

// WithPreferences replaces all rendering preferences at once.
func WithPreferences(p Preferences) Option {
	return func(o *filterOptions) {
		o.prefs = p
	}
}

// WithQuality sets the filter quality, which limits automatic resolution.
func WithQuality(q Quality) Option {
	return func(o *filterOptions) {
		o.prefs.FilterQuality = q
	}
}

// WithBlurQuality sets the Gaussian blur quality.
func WithBlurQuality(q Quality) Option {
	return func(o *filterOptions) {
		o.prefs.BlurQuality = q
	}
}

// WithThreads sets the number of blur workers.
func WithThreads(n int) Option {
	return func(o *filterOptions) {
		o.prefs.Threads = n
	}
}

// WithLogger gives the filter its own logger instead of the package-wide
// one. A nil logger keeps the package-wide logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *filterOptions) {
		o.logger = l
	}
}
