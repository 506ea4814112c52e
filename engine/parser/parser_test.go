package parser

import (
	"testing"

	"github.com/nathoo/gridcrawl/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Command
	}{
		// Empty / whitespace
		{"empty string", "", types.Command{}},
		{"whitespace only", "   ", types.Command{}},

		// Bare directions
		{"up", "up", types.Command{Verb: "move", DX: 0, DY: -1, Dir: "up"}},
		{"down", "down", types.Command{Verb: "move", DX: 0, DY: 1, Dir: "down"}},
		{"left", "left", types.Command{Verb: "move", DX: -1, DY: 0, Dir: "left"}},
		{"right", "right", types.Command{Verb: "move", DX: 1, DY: 0, Dir: "right"}},

		// Compass and abbreviations
		{"north → up", "north", types.Command{Verb: "move", DY: -1, Dir: "up"}},
		{"east → right", "east", types.Command{Verb: "move", DX: 1, Dir: "right"}},
		{"s → down", "s", types.Command{Verb: "move", DY: 1, Dir: "down"}},
		{"w → left", "w", types.Command{Verb: "move", DX: -1, Dir: "left"}},

		// vi keys
		{"h → left", "h", types.Command{Verb: "move", DX: -1, Dir: "left"}},
		{"j → down", "j", types.Command{Verb: "move", DY: 1, Dir: "down"}},
		{"k → up", "k", types.Command{Verb: "move", DY: -1, Dir: "up"}},
		{"l → right", "l", types.Command{Verb: "move", DX: 1, Dir: "right"}},

		// Movement verbs
		{"go north", "go north", types.Command{Verb: "move", DY: -1, Dir: "up"}},
		{"move left", "move left", types.Command{Verb: "move", DX: -1, Dir: "left"}},
		{"walk without direction", "walk", types.Command{Verb: "move"}},
		{"go nowhere", "go sideways", types.Command{Verb: "move"}},

		// Case and whitespace
		{"uppercase", "  RIGHT  ", types.Command{Verb: "move", DX: 1, Dir: "right"}},

		// Verb aliases
		{"look", "look", types.Command{Verb: "look"}},
		{"examine → look", "examine", types.Command{Verb: "look"}},
		{"i → inventory", "i", types.Command{Verb: "inventory"}},
		{"inv → inventory", "inv", types.Command{Verb: "inventory"}},
		{"goals → goal", "goals", types.Command{Verb: "goal"}},
		{"z → wait", "z", types.Command{Verb: "wait"}},
		{"rest → wait", "rest", types.Command{Verb: "wait"}},
		{"pick up → take", "pick up", types.Command{Verb: "take"}},
		{"get key → take", "get key", types.Command{Verb: "take"}},

		// Unknown
		{"unknown verb", "dance wildly", types.Command{Verb: "dance"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDirections(t *testing.T) {
	got := Directions()
	if len(got) != 4 {
		t.Fatalf("Directions() = %v, want 4 names", got)
	}
	for _, name := range got {
		cmd := Parse(name)
		if cmd.Verb != "move" || cmd.Dir != name {
			t.Errorf("Parse(%q) = %+v, want a move named %q", name, cmd, name)
		}
	}
}
