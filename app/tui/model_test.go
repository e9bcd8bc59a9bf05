package tui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lysyi3m/rss-marquee/app/control"
	"github.com/lysyi3m/rss-marquee/app/player"
)

func TestKeysPressButtons(t *testing.T) {
	cases := []struct {
		key    tea.KeyMsg
		button control.Button
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, control.FeedForward},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, control.FeedForward},
		{tea.KeyMsg{Type: tea.KeyLeft}, control.FeedBackward},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")}, control.BrightnessUp},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")}, control.BrightnessDown},
	}

	for _, tc := range cases {
		latch := control.NewLatch()
		m := NewModel(latch, nil)

		_, cmd := m.Update(tc.key)
		if cmd != nil {
			t.Errorf("Expected no command for %s", tc.key)
		}
		if !latch.IsPressed(tc.button) {
			t.Errorf("Expected %s to press %s", tc.key, tc.button)
		}
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(control.NewLatch(), nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}

func TestFrameMsgUpdatesView(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 3, 4))
	frame.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})

	status := func() player.Status {
		return player.Status{Feed: "BBC World", Category: "News", Index: 0, Total: 5}
	}
	m := NewModel(control.NewLatch(), status)

	updated, _ := m.Update(frameMsg{frame: frame})
	view := updated.View()

	if !strings.Contains(view, "BBC World") {
		t.Errorf("Expected feed name in view, got: %s", view)
	}
	if strings.Count(view, "▀") != 6 {
		t.Errorf("Expected 6 half blocks for a 3x4 frame, got: %d", strings.Count(view, "▀"))
	}
}

func TestRenderFrameOddHeight(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 2, 3))

	out := RenderFrame(frame)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Errorf("Expected 2 lines for 3 pixel rows, got: %d", len(lines))
	}
}

func TestPresenterSendsFrame(t *testing.T) {
	var got tea.Msg
	p := &Presenter{send: func(msg tea.Msg) { got = msg }}

	frame := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := p.Present(frame); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if msg, ok := got.(frameMsg); !ok || msg.frame != frame {
		t.Errorf("Expected frameMsg with the frame, got: %#v", got)
	}
}
