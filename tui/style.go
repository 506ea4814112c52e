package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/gridcrawl/types"
	"github.com/nathoo/gridcrawl/view"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleSuccess = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleGoalDone = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	styleGoalOpen = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleBoardPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	styleFloor = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// glyphStyles colors board glyphs by kind.
var glyphStyles = map[types.Kind]lipgloss.Style{
	types.KindPlayer:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
	types.KindEnemy:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	types.KindWall:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	types.KindExit:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	types.KindBoulder:  lipgloss.NewStyle().Foreground(lipgloss.Color("137")),
	types.KindSwitch:   lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	types.KindDoor:     lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	types.KindTreasure: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	types.KindKey:      lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	types.KindSword:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	types.KindPotion:   lipgloss.NewStyle().Foreground(lipgloss.Color("201")),
	types.KindPortal:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	types.KindSaw:      lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
}

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindSuccess
	kindGoalDone
	kindGoalOpen
	kindSystem
	kindError
	kindTrace
	kindInput // echoed player input
	kindMeta  // meta-command reply, shown bracketed
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimLeft(line, " ")
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(trimmed, "[x] "):
		return kindGoalDone
	case strings.HasPrefix(trimmed, "[ ] "):
		return kindGoalOpen
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case line == "Level complete!",
		line == "You reach the exit.",
		strings.HasPrefix(line, "An enemy is slain"),
		strings.HasPrefix(line, "The door unlocks"):
		return kindSuccess
	case strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "You have been killed"),
		strings.HasPrefix(line, "There is nothing"),
		strings.HasPrefix(line, "I don't understand"),
		strings.HasPrefix(line, "Game over"):
		return kindError
	default:
		return kindNarrative
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindSuccess:
		return styleSuccess.Render(line)
	case kindGoalDone:
		return styleGoalDone.Render(line)
	case kindGoalOpen:
		return styleGoalOpen.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	case kindInput:
		return stylePlayerInput.Render(line)
	case kindMeta:
		return styledSystemMsg(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledGlyph renders one board cell.
func styledGlyph(r rune, k types.Kind, ok bool) string {
	if !ok {
		return styleFloor.Render(string(view.Empty))
	}
	if st, found := glyphStyles[k]; found {
		return st.Render(string(r))
	}
	return string(r)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
