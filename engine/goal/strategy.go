package goal

import "github.com/nathoo/gridcrawl/engine/dungeon"

// leaf is a named predicate over the dungeon.
type leaf struct {
	op    string
	label string
	test  func(d *dungeon.Dungeon) bool
}

func (l leaf) Achieved(d *dungeon.Dungeon) bool { return l.test(d) }

func (l leaf) Describe(d *dungeon.Dungeon) Node {
	return Node{Op: l.op, Label: l.label, Achieved: l.test(d)}
}

var leaves = map[string]Strategy{
	OpExit:     Exit(),
	OpTreasure: Treasure(),
	OpEnemies:  Enemies(),
	OpBoulders: Boulders(),
}

// Exit is achieved while any exit is activated.
func Exit() Strategy {
	return leaf{op: OpExit, label: "reach the exit", test: func(d *dungeon.Dungeon) bool {
		for _, x := range dungeon.Filter[*dungeon.Exit](d) {
			if x.Activated() {
				return true
			}
		}
		return false
	}}
}

// Treasure is achieved when no treasure remains on the board.
func Treasure() Strategy {
	return leaf{op: OpTreasure, label: "collect all treasure", test: func(d *dungeon.Dungeon) bool {
		return len(dungeon.Filter[*dungeon.Treasure](d)) == 0
	}}
}

// Enemies is achieved when every enemy is dead.
func Enemies() Strategy {
	return leaf{op: OpEnemies, label: "defeat all enemies", test: func(d *dungeon.Dungeon) bool {
		for _, e := range dungeon.Filter[*dungeon.Enemy](d) {
			if e.Alive() {
				return false
			}
		}
		return true
	}}
}

// Boulders is achieved when every switch is pressed.
func Boulders() Strategy {
	return leaf{op: OpBoulders, label: "cover every switch", test: func(d *dungeon.Dungeon) bool {
		for _, s := range dungeon.Filter[*dungeon.Switch](d) {
			if !s.Pressed() {
				return false
			}
		}
		return true
	}}
}

type composite struct {
	op       string
	all      bool
	children []Strategy
}

// AllOf is achieved when every child is. Evaluation stops at the first
// unachieved child.
func AllOf(children ...Strategy) Strategy {
	return composite{op: OpAnd, all: true, children: children}
}

// AnyOf is achieved when at least one child is. Evaluation stops at the
// first achieved child.
func AnyOf(children ...Strategy) Strategy {
	return composite{op: OpOr, children: children}
}

func (c composite) Achieved(d *dungeon.Dungeon) bool {
	for _, ch := range c.children {
		if ch.Achieved(d) != c.all {
			return !c.all
		}
	}
	return c.all
}

func (c composite) Describe(d *dungeon.Dungeon) Node {
	n := Node{Op: c.op, Label: "any of"}
	if c.all {
		n.Label = "all of"
	}
	for _, ch := range c.children {
		n.Children = append(n.Children, ch.Describe(d))
	}
	n.Achieved = c.Achieved(d)
	return n
}
