package svgfx

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		w, h    int
		wantErr error
	}{
		{"argb", FormatARGB32, 10, 5, nil},
		{"a8", FormatA8, 3, 7, nil},
		{"zero width", FormatARGB32, 0, 5, ErrInvalidDimensions},
		{"negative height", FormatA8, 5, -1, ErrInvalidDimensions},
		{"too wide", FormatA8, MaxBufferDimension + 1, 1, ErrBufferTooLarge},
		{"too many bytes", FormatARGB32, MaxBufferDimension, MaxBufferDimension, ErrBufferTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBuffer(tt.format, tt.w, tt.h)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewBuffer() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if b.Stride() != tt.w*tt.format.BytesPerPixel() {
				t.Errorf("Stride() = %d", b.Stride())
			}
			for _, v := range b.Pix() {
				if v != 0 {
					t.Fatal("new buffer is not transparent")
				}
			}
		})
	}
}

func TestBufferFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 8, 7))
	src.Set(5, 5, color.NRGBA{R: 255, A: 128})
	src.Set(7, 6, color.NRGBA{G: 255, A: 255})

	b := BufferFromImage(src)
	if b.Width() != 3 || b.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", b.Width(), b.Height())
	}
	if b.Format() != FormatARGB32 || b.ColorInterpolation() != ColorInterpolationSRGB {
		t.Errorf("format %s / %s", b.Format(), b.ColorInterpolation())
	}
	if got := b.At(0, 0); got.A != 128 || got.R != 128 {
		t.Errorf("At(0,0) = %v, want premultiplied red at half alpha", got)
	}
	if got := b.At(2, 1); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("At(2,1) = %v", got)
	}
}

func TestBufferCloneIsDeep(t *testing.T) {
	b := mustBuffer(t, FormatARGB32, 4, 4)
	fillRect(b, 0, 0, 4, 4, color.RGBA{B: 10, A: 20})
	b.SetColorInterpolation(ColorInterpolationLinearRGB)

	c := b.Clone()
	if !equalPix(b, c) || c.ColorInterpolation() != ColorInterpolationLinearRGB {
		t.Fatal("clone differs from original")
	}
	c.Clear()
	if b.At(1, 1).A != 20 {
		t.Error("clearing the clone changed the original")
	}
}

func TestExtractAlphaAndPromote(t *testing.T) {
	b := mustBuffer(t, FormatARGB32, 3, 1)
	fillRect(b, 1, 0, 2, 1, color.RGBA{R: 40, G: 50, B: 60, A: 70})

	a := b.ExtractAlpha()
	if a.Format() != FormatA8 {
		t.Fatalf("ExtractAlpha format = %s", a.Format())
	}
	if got := a.Row(0); got[0] != 0 || got[1] != 70 || got[2] != 0 {
		t.Errorf("alpha row = %v", got)
	}

	p := a.ToARGB32()
	if got := p.At(1, 0); got != (color.RGBA{A: 70}) {
		t.Errorf("promoted pixel = %v, want black at alpha 70", got)
	}
	if b.ToARGB32() != b {
		t.Error("ToARGB32 on an ARGB32 buffer should return it unchanged")
	}
}

func TestBufferImageView(t *testing.T) {
	b := mustBuffer(t, FormatA8, 2, 2)
	img, ok := b.Image().(*image.Alpha)
	if !ok {
		t.Fatalf("A8 Image() = %T, want *image.Alpha", b.Image())
	}
	img.SetAlpha(1, 1, color.Alpha{A: 99})
	if b.Row(1)[1] != 99 {
		t.Error("image view does not share pixels")
	}

	rgba := mustBuffer(t, FormatARGB32, 2, 2)
	draw.Draw(rgba.Image(), rgba.Bounds(), image.NewUniform(color.RGBA{R: 1, A: 1}), image.Point{}, draw.Src)
	if rgba.At(0, 0) != (color.RGBA{R: 1, A: 1}) {
		t.Error("ARGB32 image view does not share pixels")
	}
}

func TestConvertedTo(t *testing.T) {
	b := mustBuffer(t, FormatARGB32, 1, 1)
	fillRect(b, 0, 0, 1, 1, color.RGBA{R: 128, G: 128, B: 128, A: 255})
	b.SetColorInterpolation(ColorInterpolationSRGB)

	if b.convertedTo(ColorInterpolationAuto) != b {
		t.Error("auto should not convert")
	}
	if b.convertedTo(ColorInterpolationSRGB) != b {
		t.Error("same space should not convert")
	}
	lin := b.convertedTo(ColorInterpolationLinearRGB)
	if lin == b {
		t.Fatal("conversion must work on a copy")
	}
	if got := lin.At(0, 0).R; got != 55 {
		t.Errorf("linear value of sRGB 128 = %d, want 55", got)
	}
	if b.At(0, 0).R != 128 {
		t.Error("source buffer changed")
	}
}

func TestClearOutside(t *testing.T) {
	b := mustBuffer(t, FormatA8, 4, 4)
	fillRect(b, 0, 0, 4, 4, color.RGBA{A: 255})
	b.clearOutside(image.Rect(1, 1, 3, 2))

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := uint8(0)
			if x >= 1 && x < 3 && y == 1 {
				want = 255
			}
			if got := b.At(x, y).A; got != want {
				t.Errorf("(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}
