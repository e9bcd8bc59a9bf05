package tui

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lysyi3m/rss-marquee/app/display"
)

var _ display.Presenter = (*Presenter)(nil)

// Presenter forwards matrix frames to a running program.
type Presenter struct {
	send func(tea.Msg)
}

func NewPresenter(program *tea.Program) *Presenter {
	return &Presenter{send: program.Send}
}

func (p *Presenter) Present(frame *image.RGBA) error {
	p.send(frameMsg{frame: frame})
	return nil
}
