package display

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const BrightnessStep = 0.01

var dashes = strings.NewReplacer("—", "-", "–", "-")

var (
	_ Display   = (*Matrix)(nil)
	_ Backlight = (*Matrix)(nil)
)

// Matrix is a software LED matrix. It renders with bitmap fonts into an RGBA
// back buffer and hands brightness-scaled copies to a Presenter.
type Matrix struct {
	mu         sync.Mutex
	frame      *image.RGBA
	last       *image.RGBA
	shown      *image.RGBA
	fontName   string
	face       font.Face
	pen        color.RGBA
	brightness float64
	presenter  Presenter
	fold       transform.Transformer
}

func NewMatrix(width, height int, brightness float64, presenter Presenter) *Matrix {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	rect := image.Rect(0, 0, width, height)
	return &Matrix{
		frame:      image.NewRGBA(rect),
		last:       image.NewRGBA(rect),
		fontName:   DefaultFont,
		face:       faceFor(DefaultFont),
		pen:        Blank,
		brightness: clamp(brightness),
		presenter:  presenter,
		fold:       transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
}

func (m *Matrix) Bounds() (int, int) {
	b := m.frame.Bounds()
	return b.Dx(), b.Dy()
}

func (m *Matrix) SetFont(name string) {
	if !KnownFont(name) {
		slog.Warn("Unknown font, using default", "font", name, "default", DefaultFont)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fontName = name
	m.face = faceFor(name)
}

func (m *Matrix) MeasureText(text string, scale int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return font.MeasureString(m.face, m.glyphs(text)).Ceil() * max(scale, 1)
}

func (m *Matrix) SetPen(c color.RGBA) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pen = c
}

func (m *Matrix) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	draw.Draw(m.frame, m.frame.Bounds(), image.NewUniform(m.pen), image.Point{}, draw.Src)
}

// DrawText draws text with its top-left corner at (x, y). Pixels falling
// outside the matrix are clipped.
func (m *Matrix) DrawText(text string, x, y, scale int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	text = m.glyphs(text)
	if text == "" {
		return
	}

	ascent := m.face.Metrics().Ascent.Ceil()
	src := image.NewUniform(m.pen)

	if scale <= 1 {
		d := font.Drawer{Dst: m.frame, Src: src, Face: m.face, Dot: fixed.P(x, y+ascent)}
		d.DrawString(text)
		return
	}

	w := font.MeasureString(m.face, text).Ceil()
	h := m.face.Metrics().Height.Ceil()
	glyphs := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{Dst: glyphs, Src: src, Face: m.face, Dot: fixed.P(0, ascent)}
	d.DrawString(text)

	target := image.Rect(x, y, x+w*scale, y+h*scale)
	draw.NearestNeighbor.Scale(m.frame, target, glyphs, glyphs.Bounds(), draw.Over, nil)
}

func (m *Matrix) Present() error {
	m.mu.Lock()
	m.shown = image.NewRGBA(m.frame.Bounds())
	copy(m.shown.Pix, m.frame.Pix)
	out := m.dimmed(m.shown)
	m.mu.Unlock()

	if err := m.presenter.Present(out); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}
	return nil
}

// AdjustBrightness changes the backlight level and re-presents the frame on
// screen so the change is visible during holds.
func (m *Matrix) AdjustBrightness(delta float64) {
	m.mu.Lock()
	m.brightness = clamp(m.brightness + delta)
	if m.shown == nil {
		m.mu.Unlock()
		return
	}
	out := m.dimmed(m.shown)
	m.mu.Unlock()

	if err := m.presenter.Present(out); err != nil {
		slog.Warn("Failed to re-present frame", "error", err)
	}
}

// dimmed returns a brightness-scaled copy of src and records it as the last
// presented frame. Callers hold m.mu.
func (m *Matrix) dimmed(src *image.RGBA) *image.RGBA {
	out := image.NewRGBA(src.Bounds())
	for i := 0; i+3 < len(src.Pix); i += 4 {
		out.Pix[i] = uint8(float64(src.Pix[i]) * m.brightness)
		out.Pix[i+1] = uint8(float64(src.Pix[i+1]) * m.brightness)
		out.Pix[i+2] = uint8(float64(src.Pix[i+2]) * m.brightness)
		out.Pix[i+3] = 255
	}
	m.last = out
	return out
}

func (m *Matrix) Brightness() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.brightness
}

// Snapshot returns a copy of the most recently presented frame.
func (m *Matrix) Snapshot() *image.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := image.NewRGBA(m.last.Bounds())
	copy(out.Pix, m.last.Pix)
	return out
}

// glyphs folds accented letters to their base form and replaces anything
// the current face cannot draw.
func (m *Matrix) glyphs(text string) string {
	folded, _, err := transform.String(m.fold, dashes.Replace(text))
	if err != nil {
		folded = dashes.Replace(text)
	}
	return strings.Map(func(r rune) rune {
		if _, ok := m.face.GlyphAdvance(r); ok {
			return r
		}
		return '?'
	}, folded)
}

func clamp(v float64) float64 {
	return min(max(v, 0), 1)
}
