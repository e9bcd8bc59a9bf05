package display

import "image/color"

type Style struct {
	Font       string
	Text       color.RGBA
	Outline    color.RGBA
	Background color.RGBA
	Outlined   bool
}

// Styles groups the look of each section of a feed cycle.
type Styles struct {
	Banner Style
	Title  Style
	Body   Style
}

var Blank = color.RGBA{0, 0, 0, 255}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

func DefaultStyles() Styles {
	return Styles{
		Banner: Style{
			Font:       DefaultFont,
			Text:       rgb(64, 64, 127),
			Outline:    rgb(255, 255, 255),
			Background: rgb(31, 37, 59),
			Outlined:   true,
		},
		Title: Style{
			Font:       DefaultFont,
			Text:       rgb(255, 255, 255),
			Outline:    rgb(64, 64, 127),
			Background: rgb(64, 0, 0),
		},
		Body: Style{
			Font:       DefaultFont,
			Text:       rgb(239, 245, 191),
			Outline:    rgb(32, 32, 32),
			Background: Blank,
		},
	}
}
