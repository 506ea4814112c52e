package dungeon

import (
	"github.com/google/uuid"

	"github.com/nathoo/gridcrawl/engine/emitter"
	"github.com/nathoo/gridcrawl/types"
)

// Entity is implemented by every kind on the board. The set of kinds is
// closed: only types in this package embed Base.
type Entity interface {
	ID() string
	Kind() types.Kind
	Level() types.Occupancy
	Position() types.Position
	OnBoard() bool
	Dungeon() *Dungeon

	// SetPosition requests a move to (x, y) as an ordinary step.
	SetPosition(x, y int) bool
	// Relocate requests a move to the given cell with an explicit cause.
	Relocate(to types.Position, cause types.Cause) bool

	MoveIntent() *emitter.Intent[Entity, types.Move]
	MoveEvent() *emitter.Event[Entity, types.Move]

	base() *Base
}

// Interactable entities decide the outcome when another entity acts on them.
// The return value tells the actor whether its action succeeded.
type Interactable interface {
	Entity
	Interact(actor Entity) bool
}

// Movable entities can attempt a one-square move.
type Movable interface {
	Entity
	Move(dx, dy int) bool
}

// Item is anything the player can pick up.
type Item interface {
	Entity
	// MaxOne reports whether carrying more than one live instance of this
	// kind is meaningless.
	MaxOne() bool
}

// Usable items have a finite number of effect-producing uses.
type Usable interface {
	Item
	Use(target Interactable) bool
	Uses() int
	Used() *emitter.Event[Usable, types.ItemUsed]
}

// Base is the state shared by all kinds.
type Base struct {
	id      string
	kind    types.Kind
	level   types.Occupancy
	pos     types.Position
	onBoard bool
	d       *Dungeon
	self    Entity

	// admit is the kind's occupancy rule, consulted after the intent phase.
	admit func(mv types.Move) bool

	intent emitter.Intent[Entity, types.Move]
	event  emitter.Event[Entity, types.Move]
}

func (b *Base) init(d *Dungeon, self Entity, kind types.Kind, level types.Occupancy, x, y int) {
	b.id = uuid.NewString()
	b.kind = kind
	b.level = level
	b.pos = types.Position{X: x, Y: y}
	b.d = d
	b.self = self
	b.admit = b.cellFree
}

func (b *Base) ID() string { return b.id }
func (b *Base) Kind() types.Kind { return b.kind }
func (b *Base) Level() types.Occupancy { return b.level }
func (b *Base) Position() types.Position { return b.pos }
func (b *Base) OnBoard() bool { return b.onBoard }
func (b *Base) Dungeon() *Dungeon { return b.d }
func (b *Base) base() *Base { return b }
func (b *Base) at(p types.Position) bool { return b.onBoard && b.pos == p }

// MoveIntent is the vetoable pre-move broadcast of this entity.
func (b *Base) MoveIntent() *emitter.Intent[Entity, types.Move] { return &b.intent }

// MoveEvent is the post-move broadcast of this entity. Presentation layers
// subscribe here to follow position changes.
func (b *Base) MoveEvent() *emitter.Event[Entity, types.Move] { return &b.event }

// SetPosition requests a step to (x, y).
func (b *Base) SetPosition(x, y int) bool {
	return b.Relocate(types.Position{X: x, Y: y}, types.CauseStep)
}

// Relocate is the only way an entity's position changes:
//  1. out-of-bounds targets are ignored;
//  2. intent listeners run in order, the first veto aborts;
//  3. the kind's admission rule runs;
//  4. the index and position are updated;
//  5. event listeners run in order.
func (b *Base) Relocate(to types.Position, cause types.Cause) bool {
	if !b.onBoard || !b.d.PositionValid(to.X, to.Y) {
		return false
	}
	mv := types.Move{From: b.pos, To: to, Cause: cause}
	if !b.intent.Emit(b.self, mv) {
		return false
	}
	if !b.onBoard || b.pos != mv.From {
		// Removed or moved by a listener during the intent phase.
		return false
	}
	if !b.admit(mv) {
		return false
	}
	if !b.d.relocate(b.self, to) {
		return false
	}
	b.event.Emit(b.self, mv)
	return true
}

// cellFree is the default admission rule: the target cell on the entity's
// own level must be empty.
func (b *Base) cellFree(mv types.Move) bool {
	other := b.d.EntityAt(b.level, mv.To.X, mv.To.Y)
	return other == nil || other == b.self
}

// objectFree admits a move when no Object-level entity holds the target.
func (b *Base) objectFree(mv types.Move) bool {
	other := b.d.EntityAt(types.Object, mv.To.X, mv.To.Y)
	return other == nil || other == b.self
}
