// Package goal evaluates level completion conditions as a tree of
// strategies. Leaves scan the dungeon for one kind of entity; AllOf and
// AnyOf combine children with short-circuit boolean logic. The tree is
// built once from the level description and re-evaluated on every query.
package goal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/gridcrawl/engine/dungeon"
	"github.com/nathoo/gridcrawl/types"
)

var (
	ErrUnknownOp      = errors.New("unknown goal operator")
	ErrEmptyComposite = errors.New("composite goal has no children")
)

// Operators accepted in a goal description.
const (
	OpAnd      = "AND"
	OpOr       = "OR"
	OpExit     = "exit"
	OpTreasure = "treasure"
	OpEnemies  = "enemies"
	OpBoulders = "boulders"
)

// Strategy is one node of the tree.
type Strategy interface {
	Achieved(d *dungeon.Dungeon) bool
	Describe(d *dungeon.Dungeon) Node
}

// Node is a read-only snapshot of a strategy for rendering.
type Node struct {
	Op       string
	Label    string
	Achieved bool
	Children []Node
}

// Goal binds a strategy tree to the dungeon it inspects.
type Goal struct {
	d    *dungeon.Dungeon
	root Strategy
}

// New wraps an already built strategy.
func New(d *dungeon.Dungeon, root Strategy) *Goal {
	return &Goal{d: d, root: root}
}

// Achieved re-evaluates the whole tree.
func (g *Goal) Achieved() bool { return g.root.Achieved(g.d) }

// Describe returns the current structure and per-node results.
func (g *Goal) Describe() Node { return g.root.Describe(g.d) }

// Compile builds the strategy tree for def and binds it to d.
func Compile(def types.GoalDef, d *dungeon.Dungeon) (*Goal, error) {
	root, err := compile(def, "goal")
	if err != nil {
		return nil, err
	}
	return New(d, root), nil
}

func compile(def types.GoalDef, path string) (Strategy, error) {
	switch op := normalize(def.Op); op {
	case OpAnd, OpOr:
		if len(def.Children) == 0 {
			return nil, fmt.Errorf("%s (%s): %w", path, op, ErrEmptyComposite)
		}
		children := make([]Strategy, 0, len(def.Children))
		for i, c := range def.Children {
			s, err := compile(c, fmt.Sprintf("%s.children[%d]", path, i))
			if err != nil {
				return nil, err
			}
			children = append(children, s)
		}
		if op == OpAnd {
			return AllOf(children...), nil
		}
		return AnyOf(children...), nil
	default:
		leaf, ok := leaves[op]
		if !ok {
			return nil, fmt.Errorf("%s: %q: %w", path, def.Op, ErrUnknownOp)
		}
		if len(def.Children) > 0 {
			return nil, fmt.Errorf("%s: objective %q cannot have children", path, op)
		}
		return leaf, nil
	}
}

func normalize(op string) string {
	op = strings.TrimSpace(op)
	switch up := strings.ToUpper(op); up {
	case OpAnd, OpOr:
		return up
	}
	return strings.ToLower(op)
}
