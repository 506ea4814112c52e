package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap binds the keys the model handles itself. Arrow keys move the
// player while the input line is empty; history lives on ctrl+p/ctrl+n.
type keyMap struct {
	Quit     key.Binding
	Submit   key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	HistPrev key.Binding
	HistNext key.Binding
	Scroll   key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run command")),
	Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "move up")),
	Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "move down")),
	Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "move left")),
	Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "move right")),
	HistPrev: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "previous command")),
	HistNext: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next command")),
	Scroll:   key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll log")),
}

// moveCommand maps an arrow key to the command it stands for.
func (k keyMap) moveCommand(msg tea.KeyMsg) (string, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return "up", true
	case key.Matches(msg, k.Down):
		return "down", true
	case key.Matches(msg, k.Left):
		return "left", true
	case key.Matches(msg, k.Right):
		return "right", true
	}
	return "", false
}

// helpLines renders the bindings for /help.
func (k keyMap) helpLines() []string {
	var out []string
	for _, b := range []key.Binding{k.Up, k.Down, k.Left, k.Right, k.HistPrev, k.HistNext, k.Scroll, k.Quit} {
		h := b.Help()
		out = append(out, "  "+padRight(h.Key, 12)+h.Desc)
	}
	return out
}

func padRight(s string, n int) string {
	for len([]rune(s)) < n {
		s += " "
	}
	return s
}

// viewportKeyMap returns a viewport keymap with the arrow keys disabled
// (we use those for movement).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
