package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/gridcrawl/engine/dungeon"
	"github.com/nathoo/gridcrawl/view"
)

// renderStatusBar produces a full-width inverted status line showing the
// level, the player's position and state, inventory, and turn count.
func (m Model) renderStatusBar() string {
	eng := m.session.Engine
	p := eng.Player()

	state := eng.Status().String()
	if eng.Status() == dungeon.Playing && p.Invincible() {
		state = "invincible"
	}
	left := fmt.Sprintf(" %s | %s | %s", m.session.Def.Name, p.Position(), state)
	right := fmt.Sprintf("T:%d ", eng.TurnCount)

	// Show inventory items if they fit, otherwise just count.
	inv := p.Inventory()
	if len(inv) > 0 {
		names := make([]string, 0, len(inv))
		for _, it := range inv {
			name := view.Name(it.Kind())
			if u, ok := it.(dungeon.Usable); ok {
				name = fmt.Sprintf("%s(%d)", name, u.Uses())
			}
			names = append(names, name)
		}
		candidate := fmt.Sprintf("Inv: %s | T:%d ", strings.Join(names, ", "), eng.TurnCount)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | T:%d ", len(inv), eng.TurnCount)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

// renderBoard draws the board with styled glyphs beside the goal checklist.
func (m Model) renderBoard() string {
	board := m.session.Board
	grid := board.Grid()
	rows := make([]string, len(grid))
	for y, row := range grid {
		var b strings.Builder
		for x, r := range row {
			k, ok := board.At(x, y)
			b.WriteString(styledGlyph(r, k, ok))
		}
		rows[y] = b.String()
	}

	var goals []string
	for _, line := range view.GoalLines(m.session.Engine.Goal()) {
		goals = append(goals, renderLineKind(line, classifyLine(line)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styleBoardPanel.Render(strings.Join(rows, "\n")),
		"  ",
		strings.Join(goals, "\n"),
	)
}
