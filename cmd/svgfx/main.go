// Command svgfx applies an SVG filter chain, described in YAML, to an image.
//
// Usage:
//
//	svgfx -config shadow.yaml -in logo.png -out logo-shadow.png
//
// The input image is the filtered item: its bounds are the item bounding
// box. The canvas is padded so that the filter output is not cut off.
package main

import (
	"flag"
	"image"
	"log"
	"log/slog"
	"os"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"

	"github.com/gogpu/svgfx"
)

func main() {
	var (
		configPath  = flag.String("config", "", "filter description (YAML)")
		input       = flag.String("in", "", "input image")
		output      = flag.String("out", "out.png", "output image")
		pad         = flag.Int("pad", -1, "canvas padding in pixels; -1 derives it from the filter")
		quality     = flag.String("quality", "", "filter quality override (worst..best)")
		blurQuality = flag.String("blur-quality", "", "blur quality override (worst..best)")
		threads     = flag.Int("threads", 0, "blur workers override; 0 keeps the config value")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *configPath == "" || *input == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		svgfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg, err := svgfx.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	prefs := cfg.Preferences
	if *quality != "" {
		if prefs.FilterQuality, err = svgfx.ParseQuality(*quality); err != nil {
			log.Fatalf("Invalid -quality: %v", err)
		}
	}
	if *blurQuality != "" {
		if prefs.BlurQuality, err = svgfx.ParseQuality(*blurQuality); err != nil {
			log.Fatalf("Invalid -blur-quality: %v", err)
		}
	}
	if *threads > 0 {
		prefs.Threads = *threads
	}

	filter, err := svgfx.BuildFilter(cfg.Filter, svgfx.WithPreferences(prefs))
	if err != nil {
		log.Fatalf("Failed to build filter: %v", err)
	}

	src, err := imaging.Open(*input, imaging.AutoOrientation(true))
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	p := *pad
	if p < 0 {
		p = padding(filter, w, h)
	}
	canvas := svgfx.BufferFromImage(clone.Pad(src, p, p, clone.NoFill))

	bbox := svgfx.NewRect(float64(p), float64(p), float64(w), float64(h))
	item := svgfx.Item{CTM: svgfx.Identity(), BBox: &bbox}
	var bg *svgfx.Context
	if filter.UsesBackground() {
		// There is no backdrop behind a standalone image; an opaque white
		// page stands in for it.
		bg = &svgfx.Context{Target: whitePage(canvas.Width(), canvas.Height())}
	}

	status := filter.Render(item, svgfx.Context{Target: canvas}, bg)
	log.Printf("Filter %s %dx%d image (complexity %.1f)",
		status, w, h, filter.Complexity(item.CTM))

	if err := imaging.Save(canvas.Image(), *output, imaging.JPEGQuality(95)); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Saved to %s (%dx%d)", *output, canvas.Width(), canvas.Height())
}

// padding returns the margin needed around a w x h image so that neither
// the default filter region nor any primitive's reach is clipped. The
// padded canvas never exceeds svgfx.MaxBufferDimension.
func padding(f *svgfx.Filter, w, h int) int {
	r := image.Rect(0, 0, w, h)
	bbox := svgfx.NewRect(0, 0, float64(w), float64(h))
	e := f.AreaEnlarge(r, svgfx.Item{CTM: svgfx.Identity(), BBox: &bbox})
	p := max(-e.Min.X, -e.Min.Y, e.Max.X-w, e.Max.Y-h, 0)
	// Room for a region of up to 120% of the bbox.
	p = max(p, (max(w, h)+9)/10)
	if limit := (svgfx.MaxBufferDimension - max(w, h)) / 2; p > limit {
		log.Printf("Padding %d exceeds the canvas limit, using %d", p, max(limit, 0))
		p = max(limit, 0)
	}
	return p
}

func whitePage(w, h int) *svgfx.Buffer {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return svgfx.BufferFromImage(img)
}
