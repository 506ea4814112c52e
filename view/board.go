// Package view renders a dungeon as text. A Board learns about entities
// only through the load hooks and the per-entity move notifications, so it
// can sit beside any driver without reaching into the simulation.
package view

import (
	"fmt"
	"strings"

	"github.com/nathoo/gridcrawl/engine/dungeon"
	"github.com/nathoo/gridcrawl/engine/goal"
	"github.com/nathoo/gridcrawl/engine/level"
	"github.com/nathoo/gridcrawl/types"
)

var _ level.Hook = (*Board)(nil)

var glyphs = map[types.Kind]rune{
	types.KindPlayer:   '@',
	types.KindEnemy:    'E',
	types.KindWall:     '#',
	types.KindExit:     '>',
	types.KindBoulder:  'O',
	types.KindSwitch:   '_',
	types.KindDoor:     '+',
	types.KindTreasure: '$',
	types.KindKey:      'k',
	types.KindSword:    '/',
	types.KindPotion:   '!',
	types.KindPortal:   '*',
	types.KindSaw:      'x',
}

// Empty is the glyph of a cell with nothing in it.
const Empty = '.'

// Glyph returns the map symbol for a kind.
func Glyph(k types.Kind) rune {
	if g, ok := glyphs[k]; ok {
		return g
	}
	return '?'
}

// Name returns the display name for a kind.
func Name(k types.Kind) string {
	if k == types.KindPotion {
		return "invincibility potion"
	}
	return string(k)
}

type mark struct {
	kind  types.Kind
	level types.Occupancy
	pos   types.Position
}

// Board mirrors entity positions for rendering.
type Board struct {
	width, height int
	marks         map[string]*mark
	order         []string
	cells         map[types.Position][]*mark
	updates       int
}

// NewBoard returns an empty board. Attach it with level.WithHooks.
func NewBoard() *Board {
	return &Board{marks: map[string]*mark{}, cells: map[types.Position][]*mark{}}
}

func (b *Board) place(m *mark) {
	b.cells[m.pos] = append(b.cells[m.pos], m)
}

func (b *Board) lift(m *mark) {
	here := b.cells[m.pos]
	for i, other := range here {
		if other == m {
			here = append(here[:i], here[i+1:]...)
			break
		}
	}
	if len(here) == 0 {
		delete(b.cells, m.pos)
		return
	}
	b.cells[m.pos] = here
}

// OnLoad starts tracking e.
func (b *Board) OnLoad(e dungeon.Entity) {
	id := e.ID()
	m := &mark{kind: e.Kind(), level: e.Level(), pos: e.Position()}
	b.marks[id] = m
	b.order = append(b.order, id)
	b.place(m)
	e.MoveEvent().Register(func(src dungeon.Entity, mv types.Move) {
		if m, ok := b.marks[src.ID()]; ok {
			b.lift(m)
			m.pos = mv.To
			b.place(m)
			b.updates++
		}
	})
}

// PostLoad records the board size and follows removals.
func (b *Board) PostLoad(d *dungeon.Dungeon) {
	b.width, b.height = d.Width(), d.Height()
	d.Removed().Register(func(_ *dungeon.Dungeon, e dungeon.Entity) {
		if m, ok := b.marks[e.ID()]; ok {
			b.lift(m)
			delete(b.marks, e.ID())
			b.updates++
		}
	})
}

// Size returns the board dimensions.
func (b *Board) Size() (width, height int) { return b.width, b.height }

// Updates counts the notifications received since load.
func (b *Board) Updates() int { return b.updates }

// At returns the kind shown at (x, y): the object if there is one, else the
// item, else the floor entity.
func (b *Board) At(x, y int) (types.Kind, bool) {
	var best *mark
	for _, m := range b.cells[types.Position{X: x, Y: y}] {
		if best == nil || rank(m.level) > rank(best.level) {
			best = m
		}
	}
	if best == nil {
		return "", false
	}
	return best.kind, true
}

func rank(l types.Occupancy) int {
	switch l {
	case types.Object:
		return 2
	case types.Item:
		return 1
	default:
		return 0
	}
}

// Grid returns the glyph matrix, indexed [y][x].
func (b *Board) Grid() [][]rune {
	grid := make([][]rune, b.height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(Empty), b.width))
	}
	for _, l := range []types.Occupancy{types.Floor, types.Item, types.Object} {
		for _, id := range b.order {
			m, ok := b.marks[id]
			if !ok || m.level != l || m.pos.Y < 0 || m.pos.Y >= b.height || m.pos.X < 0 || m.pos.X >= b.width {
				continue
			}
			grid[m.pos.Y][m.pos.X] = Glyph(m.kind)
		}
	}
	return grid
}

// Lines renders the board one row per line.
func (b *Board) Lines() []string {
	grid := b.Grid()
	out := make([]string, len(grid))
	for y, row := range grid {
		out[y] = string(row)
	}
	return out
}

// Legend lists each glyph and its kind name.
func Legend() []string {
	var out []string
	for _, k := range level.Kinds() {
		out = append(out, fmt.Sprintf("%c %s", Glyph(k), Name(k)))
	}
	return out
}

// GoalLines renders a goal tree as an indented checklist.
func GoalLines(n goal.Node) []string {
	var out []string
	goalLines(n, 0, &out)
	return out
}

func goalLines(n goal.Node, depth int, out *[]string) {
	box := "[ ]"
	if n.Achieved {
		box = "[x]"
	}
	*out = append(*out, fmt.Sprintf("%s%s %s", strings.Repeat("  ", depth), box, n.Label))
	for _, c := range n.Children {
		goalLines(c, depth+1, out)
	}
}
