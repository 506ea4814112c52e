// Package dungeon holds the mutable board: the entity collection, the
// occupancy index, the player, the session status and the per-kind movement
// and interaction rules.
//
// Every position change goes through Base.Relocate, which runs the entity's
// intent listeners, the kind's admission rule, the index update and then the
// entity's event listeners, in that order.
package dungeon

import (
	"errors"
	"fmt"

	"github.com/nathoo/gridcrawl/engine/emitter"
	"github.com/nathoo/gridcrawl/types"
)

var (
	ErrOutOfBounds     = errors.New("position out of bounds")
	ErrCellOccupied    = errors.New("cell already occupied")
	ErrDuplicatePlayer = errors.New("dungeon already has a player")
	ErrForeignEntity   = errors.New("entity belongs to another dungeon")
)

// Status is the session state of a dungeon.
type Status int

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Goal is the completion predicate the dungeon checks at checkpoints.
type Goal interface {
	Achieved() bool
}

type cell struct {
	level types.Occupancy
	x, y  int
}

// Dungeon is the board and everything on it.
type Dungeon struct {
	width    int
	height   int
	entities []Entity
	index    map[cell]Entity
	player   *Player
	goal     Goal
	status   Status

	removed emitter.Event[*Dungeon, Entity]
	journal emitter.Event[*Dungeon, types.Event]
}

// New creates an empty board of the given size.
func New(width, height int) *Dungeon {
	return &Dungeon{
		width:  width,
		height: height,
		index:  map[cell]Entity{},
	}
}

// Width returns the board width.
func (d *Dungeon) Width() int { return d.width }

// Height returns the board height.
func (d *Dungeon) Height() int { return d.height }

// PositionValid reports whether (x, y) lies on the board. Occupancy is not
// considered.
func (d *Dungeon) PositionValid(x, y int) bool {
	return x >= 0 && x < d.width && y >= 0 && y < d.height
}

// EntityAt returns the entity occupying (x, y) on the given level, or nil.
func (d *Dungeon) EntityAt(level types.Occupancy, x, y int) Entity {
	return d.index[cell{level: level, x: x, y: y}]
}

// Add places a constructed entity on the board.
func (d *Dungeon) Add(e Entity) error {
	b := e.base()
	if b.d != d {
		return ErrForeignEntity
	}
	if !d.PositionValid(b.pos.X, b.pos.Y) {
		return fmt.Errorf("%s at %s: %w", b.kind, b.pos, ErrOutOfBounds)
	}
	key := cell{level: b.level, x: b.pos.X, y: b.pos.Y}
	if other, ok := d.index[key]; ok {
		return fmt.Errorf("%s at %s (held by %s): %w", b.kind, b.pos, other.Kind(), ErrCellOccupied)
	}
	if p, ok := e.(*Player); ok {
		if d.player != nil {
			return ErrDuplicatePlayer
		}
		d.player = p
	}
	d.index[key] = e
	d.entities = append(d.entities, e)
	b.onBoard = true
	return nil
}

// Remove takes an entity off the board and notifies removal listeners.
// Removing an entity that is not on the board is a no-op.
func (d *Dungeon) Remove(e Entity) {
	b := e.base()
	if !b.onBoard || b.d != d {
		return
	}
	key := cell{level: b.level, x: b.pos.X, y: b.pos.Y}
	if d.index[key] == e {
		delete(d.index, key)
	}
	for i, other := range d.entities {
		if other == e {
			d.entities = append(d.entities[:i], d.entities[i+1:]...)
			break
		}
	}
	b.onBoard = false
	d.removed.Emit(d, e)
}

// relocate moves e in the index. Fails if the target cell on e's level is
// held by another entity.
func (d *Dungeon) relocate(e Entity, to types.Position) bool {
	b := e.base()
	dst := cell{level: b.level, x: to.X, y: to.Y}
	if other, ok := d.index[dst]; ok && other != e {
		return false
	}
	src := cell{level: b.level, x: b.pos.X, y: b.pos.Y}
	if d.index[src] == e {
		delete(d.index, src)
	}
	d.index[dst] = e
	b.pos = to
	return true
}

// Entities returns the on-board entities in insertion order.
func (d *Dungeon) Entities() []Entity {
	out := make([]Entity, len(d.entities))
	copy(out, d.entities)
	return out
}

// Filter returns the on-board entities of concrete type T in insertion order.
func Filter[T Entity](d *Dungeon) []T {
	var out []T
	for _, e := range d.entities {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Player returns the dungeon's player, or nil before one is added.
func (d *Dungeon) Player() *Player { return d.player }

// Goal returns the root goal.
func (d *Dungeon) Goal() Goal { return d.goal }

// SetGoal installs the root goal.
func (d *Dungeon) SetGoal(g Goal) { d.goal = g }

// Status returns the session status.
func (d *Dungeon) Status() Status { return d.status }

// Checkpoint re-evaluates the goal and ends the session as won when it is
// achieved. Returns the resulting status.
func (d *Dungeon) Checkpoint() Status {
	if d.status != Playing || d.goal == nil {
		return d.status
	}
	if d.player != nil && !d.player.Alive() {
		return d.status
	}
	if d.goal.Achieved() {
		d.status = Won
		d.note(types.EventLevelComplete, nil)
	}
	return d.status
}

func (d *Dungeon) lose() {
	if d.status == Playing {
		d.status = Lost
	}
}

// Removed is notified whenever an entity leaves the board.
func (d *Dungeon) Removed() *emitter.Event[*Dungeon, Entity] { return &d.removed }

// Journal is notified of noteworthy simulation happenings.
func (d *Dungeon) Journal() *emitter.Event[*Dungeon, types.Event] { return &d.journal }

func (d *Dungeon) note(typ string, data map[string]any) {
	d.journal.Emit(d, types.Event{Type: typ, Data: data})
}
