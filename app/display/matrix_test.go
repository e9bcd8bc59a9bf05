package display

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

type recordingPresenter struct {
	frames []*image.RGBA
	err    error
}

func (p *recordingPresenter) Present(frame *image.RGBA) error {
	p.frames = append(p.frames, frame)
	return p.err
}

func litPixels(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestMatrixClearAndDraw(t *testing.T) {
	p := &recordingPresenter{}
	m := NewMatrix(32, 16, 1, p)

	m.SetPen(rgb(0, 0, 255))
	m.Clear()
	m.SetPen(rgb(255, 255, 255))
	m.DrawText("Hi", 1, 1, 1)

	if err := m.Present(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(p.frames) != 1 {
		t.Fatalf("Expected one frame, got: %d", len(p.frames))
	}

	frame := p.frames[0]
	if litPixels(frame, rgb(255, 255, 255)) == 0 {
		t.Error("Expected text pixels to be drawn")
	}
	if litPixels(frame, rgb(0, 0, 255)) == 0 {
		t.Error("Expected background pixels to remain")
	}
}

func TestMatrixMeasureText(t *testing.T) {
	m := NewMatrix(32, 16, 1, nil)

	if w := m.MeasureText("abc", 1); w != 21 {
		t.Errorf("Expected width 21 for 7px glyphs, got: %d", w)
	}
	if w := m.MeasureText("abc", 2); w != 42 {
		t.Errorf("Expected scaled width 42, got: %d", w)
	}
	if m.MeasureText("café", 1) != m.MeasureText("cafe", 1) {
		t.Error("Expected accented text to measure like its folded form")
	}

	m.SetFont("sans")
	if w := m.MeasureText("abc", 1); w != 24 {
		t.Errorf("Expected width 24 for 8px glyphs, got: %d", w)
	}
}

func TestMatrixScaledText(t *testing.T) {
	single := &recordingPresenter{}
	m := NewMatrix(64, 32, 1, single)
	m.SetPen(rgb(255, 255, 255))
	m.DrawText("I", 0, 0, 1)
	m.Present()

	double := &recordingPresenter{}
	m2 := NewMatrix(64, 32, 1, double)
	m2.SetPen(rgb(255, 255, 255))
	m2.DrawText("I", 0, 0, 2)
	m2.Present()

	white := rgb(255, 255, 255)
	n1 := litPixels(single.frames[0], white)
	n2 := litPixels(double.frames[0], white)
	if n2 != 4*n1 {
		t.Errorf("Expected scale 2 to light 4x pixels (%d), got: %d", 4*n1, n2)
	}
}

func TestMatrixClipsOffscreenText(t *testing.T) {
	m := NewMatrix(16, 8, 1, nil)
	m.SetPen(rgb(255, 255, 255))
	m.DrawText("Hello", -100, 0, 1)
	m.DrawText("Hello", 100, 0, 1)
	m.Present()

	if n := litPixels(m.Snapshot(), rgb(255, 255, 255)); n != 0 {
		t.Errorf("Expected no visible pixels, got: %d", n)
	}
}

func TestMatrixBrightness(t *testing.T) {
	p := &recordingPresenter{}
	m := NewMatrix(4, 4, 0.5, p)

	m.SetPen(rgb(200, 100, 50))
	m.Clear()
	m.Present()

	got := p.frames[0].RGBAAt(0, 0)
	if got != rgb(100, 50, 25) {
		t.Errorf("Expected half brightness pixel, got: %v", got)
	}

	m.AdjustBrightness(0.8)
	if m.Brightness() != 1 {
		t.Errorf("Expected brightness clamped to 1, got: %v", m.Brightness())
	}
	m.AdjustBrightness(-2)
	if m.Brightness() != 0 {
		t.Errorf("Expected brightness clamped to 0, got: %v", m.Brightness())
	}
}

func TestMatrixBrightnessRepresentsFrame(t *testing.T) {
	p := &recordingPresenter{}
	m := NewMatrix(4, 4, 0.5, p)

	m.AdjustBrightness(0.1)
	if len(p.frames) != 0 {
		t.Fatalf("Expected nothing presented before the first frame, got: %d", len(p.frames))
	}

	m.SetPen(rgb(200, 100, 50))
	m.Clear()
	m.Present()

	// Drawing after Present must not leak into the re-presented frame.
	m.SetPen(rgb(0, 0, 0))
	m.Clear()

	m.AdjustBrightness(1)
	if len(p.frames) != 2 {
		t.Fatalf("Expected brightness change to re-present, got %d frames", len(p.frames))
	}
	if got := p.frames[1].RGBAAt(0, 0); got != rgb(200, 100, 50) {
		t.Errorf("Expected full brightness pixel, got: %v", got)
	}
	if got := m.Snapshot().RGBAAt(0, 0); got != rgb(200, 100, 50) {
		t.Errorf("Expected snapshot to follow the re-presented frame, got: %v", got)
	}
}

func TestMatrixUnknownFontFallsBack(t *testing.T) {
	if !KnownFont("bitmap14_outline") {
		t.Error("Expected bitmap14_outline to be known")
	}
	if KnownFont("comic") {
		t.Error("Expected comic to be unknown")
	}

	m := NewMatrix(96, 20, 1, nil)
	want := m.MeasureText("abc", 1)
	m.SetFont("comic")
	if got := m.MeasureText("abc", 1); got != want {
		t.Errorf("Expected unknown font to measure like %s (%d), got: %d", DefaultFont, want, got)
	}
}

func TestMatrixPresentError(t *testing.T) {
	m := NewMatrix(4, 4, 1, &recordingPresenter{err: errors.New("closed")})

	if err := m.Present(); err == nil {
		t.Error("Expected presenter error to be returned")
	}
}

func TestMatrixSnapshotIsCopy(t *testing.T) {
	m := NewMatrix(4, 4, 1, nil)
	m.SetPen(rgb(10, 20, 30))
	m.Clear()
	m.Present()

	snap := m.Snapshot()
	snap.SetRGBA(0, 0, rgb(1, 1, 1))

	if m.Snapshot().RGBAAt(0, 0) != rgb(10, 20, 30) {
		t.Error("Expected snapshot to be independent of the matrix")
	}
}
