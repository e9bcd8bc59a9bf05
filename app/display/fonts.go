package display

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
)

const (
	DefaultFont       = "bitmap8"
	defaultFontHeight = 13
)

type fontFace struct {
	face   font.Face
	height int
}

var fonts = map[string]fontFace{
	"bitmap6":          {face: basicfont.Face7x13, height: 13},
	"bitmap8":          {face: basicfont.Face7x13, height: 13},
	"bitmap14_outline": {face: inconsolata.Bold8x16, height: 16},
	"sans":             {face: inconsolata.Regular8x16, height: 16},
	"gothic":           {face: inconsolata.Regular8x16, height: 16},
	"cursive":          {face: inconsolata.Regular8x16, height: 16},
	"serif_italic":     {face: inconsolata.Regular8x16, height: 16},
	"serif":            {face: inconsolata.Regular8x16, height: 16},
}

// FontHeight returns the glyph height used for vertical centering.
func FontHeight(name string) int {
	if f, ok := fonts[name]; ok {
		return f.height
	}
	return defaultFontHeight
}

func faceFor(name string) font.Face {
	if f, ok := fonts[name]; ok {
		return f.face
	}
	return fonts[DefaultFont].face
}

func KnownFont(name string) bool {
	_, ok := fonts[name]
	return ok
}
