// Package parser converts command strings into Command structs.
// Intentionally dumb: no NLP, just alias tables.
package parser

import (
	"strings"

	"github.com/nathoo/gridcrawl/types"
)

type direction struct {
	name   string
	dx, dy int
}

var (
	up    = direction{"up", 0, -1}
	down  = direction{"down", 0, 1}
	left  = direction{"left", -1, 0}
	right = direction{"right", 1, 0}
)

var directions = map[string]direction{
	"up": up, "down": down, "left": left, "right": right,
	"north": up, "south": down, "west": left, "east": right,
	"n": up, "s": down, "w": left, "e": right,
	"u": up, "d": down,
	// vi keys
	"k": up, "j": down, "h": left, "l": right,
}

var moveVerbs = map[string]bool{
	"go": true, "move": true, "walk": true, "step": true, "run": true, "head": true,
}

var verbAliases = map[string]string{
	"look":    "look",
	"examine": "look",
	"x":       "look",

	"inventory": "inventory",
	"inv":       "inventory",
	"i":         "inventory",

	"goal":       "goal",
	"goals":      "goal",
	"objective":  "goal",
	"objectives": "goal",

	"wait": "wait",
	"z":    "wait",
	"rest": "wait",
	".":    "wait",

	"take":   "take",
	"get":    "take",
	"grab":   "take",
	"pick":   "take",
	"t":      "take",
	"loot":   "take",
	"pickup": "take",
}

// Parse converts a raw command string into a Command. Unknown input yields
// a Command whose Verb is the first word, lowercased; the empty string
// yields the zero Command.
func Parse(input string) types.Command {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(words) == 0 {
		return types.Command{}
	}

	// Bare direction: "n", "left", "k".
	if len(words) == 1 {
		if d, ok := directions[words[0]]; ok {
			return move(d)
		}
	}

	// "go north", "move left".
	if moveVerbs[words[0]] {
		if len(words) == 2 {
			if d, ok := directions[words[1]]; ok {
				return move(d)
			}
		}
		return types.Command{Verb: "move"}
	}

	// "pick up" collapses to take; trailing words are ignored.
	if verb, ok := verbAliases[words[0]]; ok {
		return types.Command{Verb: verb}
	}
	return types.Command{Verb: words[0]}
}

func move(d direction) types.Command {
	return types.Command{Verb: "move", DX: d.dx, DY: d.dy, Dir: d.name}
}

// Directions returns the canonical direction names.
func Directions() []string {
	return []string{up.name, down.name, left.name, right.name}
}
