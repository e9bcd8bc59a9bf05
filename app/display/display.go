package display

import (
	"image"
	"image/color"
)

// Display is a drawable pixel surface. Drawing calls only touch the back
// buffer; Present pushes it out.
type Display interface {
	Bounds() (width, height int)
	SetFont(name string)
	MeasureText(text string, scale int) int
	SetPen(c color.RGBA)
	Clear()
	DrawText(text string, x, y, scale int)
	Present() error
}

type Backlight interface {
	AdjustBrightness(delta float64)
	Brightness() float64
}

// Presenter receives finished frames, already adjusted for brightness.
type Presenter interface {
	Present(frame *image.RGBA) error
}

type PresenterFunc func(frame *image.RGBA) error

func (f PresenterFunc) Present(frame *image.RGBA) error {
	return f(frame)
}

type NopPresenter struct{}

func (NopPresenter) Present(*image.RGBA) error { return nil }
