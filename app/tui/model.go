package tui

import (
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lysyi3m/rss-marquee/app/control"
	"github.com/lysyi3m/rss-marquee/app/player"
)

type frameMsg struct {
	frame *image.RGBA
}

var keyButtons = map[string]control.Button{
	"right": control.FeedForward,
	"n":     control.FeedForward,
	"left":  control.FeedBackward,
	"p":     control.FeedBackward,
	"+":     control.BrightnessUp,
	"=":     control.BrightnessUp,
	"up":    control.BrightnessUp,
	"-":     control.BrightnessDown,
	"down":  control.BrightnessDown,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EFF5BF"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#40407F"))
)

// Model shows the matrix in the terminal and turns keys into button presses.
type Model struct {
	latch  *control.Latch
	status func() player.Status
	frame  *image.RGBA
}

func NewModel(latch *control.Latch, status func() player.Status) Model {
	return Model{latch: latch, status: status}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = msg.frame

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		default:
			if button, ok := keyButtons[key]; ok {
				m.latch.Press(button)
			}
		}
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	if m.status != nil {
		s := m.status()
		b.WriteString(headerStyle.Render(fmt.Sprintf("%s [%s] %d/%d", s.Feed, s.Category, s.Index+1, s.Total)))
		b.WriteString("\n")
	}

	if m.frame != nil {
		b.WriteString(panelStyle.Render(RenderFrame(m.frame)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("←/p prev  →/n next  +/- brightness  q quit"))
	return b.String()
}

// RenderFrame draws two pixel rows per text line using upper half blocks:
// the foreground colour is the top pixel and the background the bottom one.
func RenderFrame(frame *image.RGBA) string {
	bounds := frame.Bounds()
	lines := make([]string, 0, (bounds.Dy()+1)/2)

	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		var line strings.Builder
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hex(frame, x, y))
			if y+1 < bounds.Max.Y {
				style = style.Background(hex(frame, x, y+1))
			}
			line.WriteString(style.Render("▀"))
		}
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}

func hex(frame *image.RGBA, x, y int) lipgloss.Color {
	c := frame.RGBAAt(x, y)
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}
