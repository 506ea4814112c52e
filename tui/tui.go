// Package tui provides a Bubble Tea terminal UI for gridcrawl: a styled
// board with the goal checklist beside it, a scrolling message log, a
// status bar, and a command line.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/gridcrawl/catalog"
	"github.com/nathoo/gridcrawl/engine/dungeon"
	"github.com/nathoo/gridcrawl/game"
	"github.com/nathoo/gridcrawl/types"
)

// rawLine is an unstyled log line. Lines are re-wrapped and re-styled from
// these on every resize.
type rawLine struct {
	text string
	kind lineKind
}

// Model is the Bubble Tea model for the gridcrawl TUI.
type Model struct {
	session  *game.Session
	levelDir string

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	meta     bool     // meta-command reply
}

// New creates a TUI model wired to the given session. levelDir feeds
// /levels and /level and may be empty.
func New(s *game.Session, levelDir string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		session:  s,
		levelDir: levelDir,
		input:    ti,
		history:  NewHistory(100),
	}
}

// Run starts the Bubble Tea program.
func Run(s *game.Session, levelDir string) error {
	m := New(s, levelDir)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the intro text.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		return gameOutputMsg{lines: m.introLines()}
	}
}

func (m Model) introLines() []string {
	lines := []string{m.session.Title(), ""}
	if skipped := m.session.Report.Skipped; len(skipped) > 0 {
		lines = append(lines, fmt.Sprintf("[%d malformed entity record(s) skipped.]", len(skipped)))
	}
	lines = append(lines, "Arrow keys move; type /help for commands.")
	return lines
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(m.width, m.logHeight())
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		}
		m.refreshViewport()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Submit):
			return m.handleEnter()

		case key.Matches(msg, keys.HistPrev):
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.HistNext):
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case key.Matches(msg, keys.Scroll):
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

		if m.input.Value() == "" {
			if dir, ok := keys.moveCommand(msg); ok {
				return m.runCommand(dir, dir)
			}
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	echo := input
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, meta: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else if !strings.HasPrefix(input, "/") {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: echo, lines: output, meta: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	return m.runCommand(echo, input)
}

// runCommand steps the engine with input and logs the outcome under echo.
func (m Model) runCommand(echo, input string) (tea.Model, tea.Cmd) {
	eng := m.session.Engine
	before := eng.Status()
	result := eng.Step(input)
	output := result.Output
	if m.trace {
		output = append(output, formatTrace(result)...)
	}
	if before == dungeon.Playing && eng.Status() != dungeon.Playing {
		output = append(output, fmt.Sprintf("[Session %s after %d turns. /restart to play again, /quit to exit.]",
			eng.Status(), eng.TurnCount))
	}
	m = m.appendOutput(gameOutputMsg{input: echo, lines: output})
	return m, nil
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{text: "> " + msg.input, kind: kindInput})
	}
	for _, line := range msg.lines {
		kind := kindMeta
		if !msg.meta {
			kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rawLine{text: line, kind: kind})
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// logHeight is what remains for the message log under the board panel,
// above the status bar and input line.
func (m Model) logHeight() int {
	h := m.height - lipgloss.Height(m.renderBoard()) - 2
	if h < 1 {
		h = 1
	}
	return h
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.width
	m.viewport.Height = m.logHeight()

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		styled = append(styled, renderLineKind(wordWrap(rl.text, width), rl.kind))
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Leading indentation is kept on the first line.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(indent + word)
			lineLen = len(indent) + wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: board + log + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.renderBoard() + "\n" + m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/level":
		return m.cmdLevel(arg), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/restart":
		return m.cmdRestart(), false

	case "/levels":
		return m.cmdLevels(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdLevel(name string) []string {
	if name == "" {
		return []string{"Usage: /level <name>"}
	}
	path, err := catalog.Resolve(m.levelDir, name)
	if err != nil {
		return []string{fmt.Sprintf("Switch failed: %v", err)}
	}
	s, err := m.session.Switch(path)
	if err != nil {
		return []string{fmt.Sprintf("Switch failed: %v", err)}
	}
	m.session = s
	m.lastCmd = ""
	return m.introLines()
}

func (m *Model) cmdRestart() []string {
	s, err := m.session.Restart()
	if err != nil {
		return []string{fmt.Sprintf("Restart failed: %v", err)}
	}
	m.session = s
	m.lastCmd = ""
	return append([]string{"Level restarted."}, m.introLines()...)
}

func (m *Model) cmdLevels() []string {
	if m.levelDir == "" {
		return []string{"No level directory configured."}
	}
	entries, err := catalog.Scan(context.Background(), m.levelDir)
	if err != nil {
		return []string{fmt.Sprintf("Listing levels failed: %v", err)}
	}
	if len(entries) == 0 {
		return []string{"No levels found in " + m.levelDir + "."}
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.String())
	}
	return out
}

func (m *Model) cmdHelp() []string {
	help := []string{
		"System:",
		"  /level <name> Play another level from the level directory",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /restart      Start the level again",
		"  /levels       List the levels in the level directory",
		"  /state        Debug: dump current state",
		"  /trace        Toggle debug trace output",
		"",
		"Game commands:",
		"  up/down/left/right    Move (also n/s/e/w, k/j/h/l, go <dir>)",
		"  take (t)              Pick up the item you stand on",
		"  wait (z)              Let a turn pass",
		"  look (x)              Describe your surroundings",
		"  inventory (i)         Check what you're carrying",
		"  goal                  Show the level goal",
		"  again (g)             Repeat your last command",
		"",
		"Keys:",
	}
	return append(help, keys.helpLines()...)
}

func (m *Model) cmdState() []string {
	eng := m.session.Engine
	p := eng.Player()
	var inv []string
	for _, it := range p.Inventory() {
		inv = append(inv, string(it.Kind()))
	}
	return []string{
		fmt.Sprintf("Session: %s", eng.SessionID),
		fmt.Sprintf("Turn: %d", eng.TurnCount),
		fmt.Sprintf("Status: %s", eng.Status()),
		fmt.Sprintf("Position: %s", p.Position()),
		fmt.Sprintf("Inventory: %v", inv),
	}
}

func formatTrace(result types.Result) []string {
	var lines []string
	if len(result.Events) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
	return lines
}
