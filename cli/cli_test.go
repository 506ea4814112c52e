package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/gridcrawl/game"
	"github.com/nathoo/gridcrawl/types"
)

func intp(n int) *int { return &n }

// testLevel is a 4x1 corridor: player, key, door, exit.
func testLevel() *types.LevelDef {
	return &types.LevelDef{
		Name:   "corridor",
		Width:  4,
		Height: 1,
		Goal:   types.GoalDef{Op: "exit"},
		Entities: []types.EntityDef{
			{Kind: "player", X: 0, Y: 0},
			{Kind: "key", X: 1, Y: 0, ID: intp(1)},
			{Kind: "door", X: 2, Y: 0, ID: intp(1)},
			{Kind: "exit", X: 3, Y: 0},
		},
	}
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	s, err := game.Start("", testLevel(), game.Options{})
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}
	var out bytes.Buffer
	c := &CLI{
		Session: s,
		In:      strings.NewReader(input),
		Out:     &out,
	}
	return c, &out
}

func TestCLI_IntroShowsBoardAndGoal(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "corridor (4x1)") {
		t.Error("expected level banner in output")
	}
	if !strings.Contains(output, "@k+>") {
		t.Errorf("expected board in output, got:\n%s", output)
	}
	if !strings.Contains(output, "[ ] reach the exit") {
		t.Error("expected goal checklist in output")
	}
}

func TestCLI_PlayThrough(t *testing.T) {
	c, out := newTestCLI(t, "right\nright\nright\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{
		"You pick up the key.",
		".@+>",
		"The door unlocks.",
		"Level complete!",
		"Session won after 3 turns.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestCLI_GameOverBlocksCommands(t *testing.T) {
	c, out := newTestCLI(t, "d\nd\nd\nleft\n/quit\n")
	c.Run()
	if strings.Contains(out.String(), "Game over") {
		t.Error("game should still be in play")
	}

	c, out = newTestCLI(t, "right\nright\nright\nleft\n/quit\n")
	c.Run()
	if !strings.Contains(out.String(), "Game over. Use /quit to exit.") {
		t.Error("expected game over message after winning")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/level", "/quit", "/restart", "/levels", "take"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in help output", want)
		}
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nright\n/trace\nright\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "[trace]   item_picked_up map[kind:key]") {
		t.Errorf("expected traced pickup event:\n%s", output)
	}
	if strings.Contains(output, "door_opened map") {
		t.Error("events after disabling trace should not be traced")
	}
	if !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace disabled message")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "right\n/state\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"Turn: 1", "Position: (1,0)", "Inventory: [key]", "Status: playing", "Session: "} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in state output", want)
		}
	}
}

func TestCLI_MapShowsLegend(t *testing.T) {
	c, out := newTestCLI(t, "/map\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "  @ player") || !strings.Contains(output, "  ! invincibility potion") {
		t.Errorf("expected legend in output:\n%s", output)
	}
}

func TestCLI_Restart(t *testing.T) {
	c, out := newTestCLI(t, "right\nright\nright\n/restart\n/state\n/quit\n")
	first := c.Session
	c.Run()

	if c.Session == first {
		t.Fatal("expected a new session after /restart")
	}
	output := out.String()
	if !strings.Contains(output, "Level restarted.") {
		t.Error("expected restart confirmation")
	}
	if !strings.Contains(output, "Turn: 0") || !strings.Contains(output, "Position: (0,0)") {
		t.Errorf("expected fresh state after restart:\n%s", output)
	}
}

func TestCLI_SwitchLevel(t *testing.T) {
	dir := t.TempDir()
	level := `{"width": 2, "height": 1, "entities": [{"kind": "player", "x": 0, "y": 0}, {"kind": "exit", "x": 1, "y": 0}], "goal": {"op": "exit"}}`
	if err := os.WriteFile(filepath.Join(dir, "alpha.json"), []byte(level), 0o644); err != nil {
		t.Fatal(err)
	}

	c, out := newTestCLI(t, "right\n/level alpha\nright\n/quit\n")
	c.LevelDir = dir
	c.Run()

	output := out.String()
	if !strings.Contains(output, "alpha (2x1)") {
		t.Errorf("expected banner of the new level:\n%s", output)
	}
	if !strings.Contains(output, "Session won after 1 turns.") {
		t.Errorf("expected the new level to be won in one turn:\n%s", output)
	}
	if c.Session.Def.Name != "alpha" {
		t.Errorf("session level = %q, want alpha", c.Session.Def.Name)
	}
}

func TestCLI_SwitchLevelErrors(t *testing.T) {
	c, out := newTestCLI(t, "/level\n/level nonexistent\n/quit\n")
	c.LevelDir = t.TempDir()
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Usage: /level <name>") {
		t.Error("expected usage message")
	}
	if !strings.Contains(output, "Switch failed") {
		t.Error("expected switch failure message")
	}
	if c.Session.Def.Name != "corridor" {
		t.Errorf("session level = %q, want corridor", c.Session.Def.Name)
	}
}

func TestCLI_Levels(t *testing.T) {
	dir := t.TempDir()
	level := `{"width": 2, "height": 1, "entities": [{"kind": "player", "x": 0, "y": 0}], "goal": {"op": "exit"}}`
	if err := os.WriteFile(filepath.Join(dir, "alpha.json"), []byte(level), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("width: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	c, out := newTestCLI(t, "/levels\n/quit\n")
	c.LevelDir = dir
	c.Run()

	output := out.String()
	if !strings.Contains(output, "alpha") || !strings.Contains(output, "2x1") {
		t.Errorf("expected alpha listing:\n%s", output)
	}
	if !strings.Contains(output, "broken") || !strings.Contains(output, "error:") {
		t.Errorf("expected broken listing:\n%s", output)
	}
}

func TestCLI_LevelsWithoutDir(t *testing.T) {
	c, out := newTestCLI(t, "/levels\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "No level directory configured.") {
		t.Error("expected missing directory message")
	}
}

func TestCLI_EmptyInput(t *testing.T) {
	c, out := newTestCLI(t, "\n\n/quit\n")
	c.Run()

	// Empty lines should be skipped (no "What do you want to do?" spam).
	if strings.Contains(out.String(), "What do you want to do?") {
		t.Error("empty lines should be silently skipped by CLI")
	}
}

func TestCLI_CommentLinesSkipped(t *testing.T) {
	c, out := newTestCLI(t, "# walk to the key\nright\n/quit\n")
	c.EchoInput = true
	c.Run()

	output := out.String()
	if strings.Contains(output, "walk to the key") {
		t.Error("comment lines should not be echoed")
	}
	if !strings.Contains(output, "right\n") {
		t.Error("expected echoed command")
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "right\nagain\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "The door unlocks.") {
		t.Error("expected 'again' to repeat the move into the door")
	}
	if got := c.Session.Engine.Player().Position().X; got != 2 {
		t.Errorf("player x = %d, want 2", got)
	}
}

func TestCLI_G_RepeatsLastCommand(t *testing.T) {
	c, _ := newTestCLI(t, "right\ng\ng\n/quit\n")
	c.Run()

	if got := c.Session.Engine.TurnCount; got != 3 {
		t.Errorf("turns = %d, want 3", got)
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}
