// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the plain-text front end.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/gridcrawl/catalog"
	"github.com/nathoo/gridcrawl/engine/dungeon"
	"github.com/nathoo/gridcrawl/game"
	"github.com/nathoo/gridcrawl/types"
	"github.com/nathoo/gridcrawl/view"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Session   *game.Session
	LevelDir  string
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given session.
func New(s *game.Session) *CLI {
	return &CLI{
		Session: s,
		In:      os.Stdin,
		Out:     os.Stdout,
	}
}

// Run starts the game loop. It shows the level banner, the board and the
// goal, then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	c.intro()

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		eng := c.Session.Engine
		before := eng.Status()
		result := eng.Step(input)
		c.printResult(result)
		if result.Moved || len(result.Events) > 0 {
			c.printBoard()
		}

		if c.Trace {
			c.printTrace(result)
		}
		if before == dungeon.Playing && eng.Status() != dungeon.Playing {
			c.printSystem(fmt.Sprintf("Session %s after %d turns. /restart to play again, /quit to exit.",
				eng.Status(), eng.TurnCount))
		}
	}
}

func (c *CLI) intro() {
	c.printLine(c.Session.Title())
	c.printLine("")
	c.printBoard()
	c.printLine("")
	for _, line := range view.GoalLines(c.Session.Engine.Goal()) {
		c.printLine(line)
	}
	if skipped := c.Session.Report.Skipped; len(skipped) > 0 {
		c.printSystem(fmt.Sprintf("%d malformed entity record(s) skipped.", len(skipped)))
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/level":
		c.cmdLevel(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/map":
		c.printBoard()
		for _, line := range view.Legend() {
			c.printLine("  " + line)
		}

	case "/restart":
		c.cmdRestart()

	case "/levels":
		c.cmdLevels()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdLevel(name string) {
	if name == "" {
		c.printSystem("Usage: /level <name>")
		return
	}
	path, err := catalog.Resolve(c.LevelDir, name)
	if err != nil {
		c.printSystem(fmt.Sprintf("Switch failed: %v", err))
		return
	}
	s, err := c.Session.Switch(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Switch failed: %v", err))
		return
	}
	c.Session = s
	c.lastCmd = ""
	c.intro()
}

func (c *CLI) cmdRestart() {
	s, err := c.Session.Restart()
	if err != nil {
		c.printSystem(fmt.Sprintf("Restart failed: %v", err))
		return
	}
	c.Session = s
	c.lastCmd = ""
	c.printSystem("Level restarted.")
	c.intro()
}

func (c *CLI) cmdLevels() {
	if c.LevelDir == "" {
		c.printSystem("No level directory configured.")
		return
	}
	entries, err := catalog.Scan(context.Background(), c.LevelDir)
	if err != nil {
		c.printSystem(fmt.Sprintf("Listing levels failed: %v", err))
		return
	}
	if len(entries) == 0 {
		c.printSystem("No levels found in " + c.LevelDir + ".")
		return
	}
	for _, e := range entries {
		c.printLine("  " + e.String())
	}
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /level <name> Play another level from the level directory",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /map          Show the board and legend",
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
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	eng := c.Session.Engine
	p := eng.Player()
	c.printSystem(fmt.Sprintf("Session: %s", eng.SessionID))
	c.printSystem(fmt.Sprintf("Turn: %d", eng.TurnCount))
	c.printSystem(fmt.Sprintf("Status: %s", eng.Status()))
	c.printSystem(fmt.Sprintf("Position: %s", p.Position()))
	var inv []string
	for _, it := range p.Inventory() {
		inv = append(inv, string(it.Kind()))
	}
	c.printSystem(fmt.Sprintf("Inventory: %v", inv))
	if p.Invincible() {
		c.printSystem("Invincible: yes")
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
}

func (c *CLI) printBoard() {
	for _, line := range c.Session.Board.Lines() {
		c.printLine(line)
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
