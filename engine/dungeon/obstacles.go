package dungeon

import (
	"fmt"

	"github.com/nathoo/gridcrawl/types"
)

// Wall blocks everything.
type Wall struct {
	Base
}

// NewWall constructs a wall.
func NewWall(d *Dungeon, x, y int) *Wall {
	w := &Wall{}
	w.init(d, w, types.KindWall, types.Object, x, y)
	return w
}

// Interact always fails.
func (w *Wall) Interact(Entity) bool { return false }

// Boulder is pushed by the player and crushes enemies in its way.
type Boulder struct {
	Base
}

// NewBoulder constructs a boulder.
func NewBoulder(d *Dungeon, x, y int) *Boulder {
	b := &Boulder{}
	b.init(d, b, types.KindBoulder, types.Object, x, y)
	b.admit = b.admitMove
	return b
}

// Move attempts to roll the boulder one square.
func (b *Boulder) Move(dx, dy int) bool {
	return b.Relocate(b.pos.Add(dx, dy), types.CausePush)
}

// admitMove refuses any occupied cell except one held by an enemy, which is
// crushed.
func (b *Boulder) admitMove(mv types.Move) bool {
	occ := b.d.EntityAt(types.Object, mv.To.X, mv.To.Y)
	switch o := occ.(type) {
	case nil:
		return true
	case *Enemy:
		o.Kill()
		return true
	default:
		return occ == Entity(b)
	}
}

// Interact pushes the boulder away from an adjacent player.
func (b *Boulder) Interact(actor Entity) bool {
	p, ok := actor.(*Player)
	if !ok {
		return false
	}
	from := p.Position()
	dx, dy := b.pos.X-from.X, b.pos.Y-from.Y
	if abs(dx)+abs(dy) != 1 {
		return false
	}
	return b.Move(dx, dy)
}

// OnPlayerIntent pushes the boulder when the player steps into it.
// Teleports do not push; the player's admission rule refuses them.
func (b *Boulder) OnPlayerIntent(src Entity, mv types.Move) bool {
	if !b.at(mv.To) || mv.Cause != types.CauseStep {
		return true
	}
	return b.Interact(src)
}

// Orientation is the axis a saw travels along.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// ParseOrientation maps a level-description orientation string.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("unknown orientation %q", s)
	}
}

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Saw shuttles along one axis, one square per player turn, and kills a
// player it touches unless the player is invincible.
type Saw struct {
	Base
	axis Orientation
	dir  int
}

// NewSaw constructs a saw heading in the positive direction of its axis.
func NewSaw(d *Dungeon, x, y int, axis Orientation) *Saw {
	s := &Saw{axis: axis, dir: 1}
	s.init(d, s, types.KindSaw, types.Object, x, y)
	s.admit = s.objectFree
	return s
}

// Orientation returns the saw's axis.
func (s *Saw) Orientation() Orientation { return s.axis }

// Move attempts a one-square step.
func (s *Saw) Move(dx, dy int) bool {
	return s.Relocate(s.pos.Add(dx, dy), types.CausePatrol)
}

// Advance steps along the axis, reversing once when blocked.
func (s *Saw) Advance() bool {
	if !s.onBoard {
		return false
	}
	if s.Move(s.step()) {
		return true
	}
	s.dir = -s.dir
	if !s.onBoard {
		return false
	}
	return s.Move(s.step())
}

func (s *Saw) step() (int, int) {
	if s.axis == Vertical {
		return 0, s.dir
	}
	return s.dir, 0
}

// Interact kills a vulnerable player. The saw itself is never passable.
func (s *Saw) Interact(actor Entity) bool {
	if p, ok := actor.(*Player); ok && !p.Invincible() {
		p.Kill()
	}
	return false
}

// OnPlayerIntent resolves the player stepping into the saw.
func (s *Saw) OnPlayerIntent(src Entity, mv types.Move) bool {
	if !s.at(mv.To) {
		return true
	}
	return s.Interact(src)
}

// OnPlayerMove advances the saw once per player turn while the session is
// in play.
func (s *Saw) OnPlayerMove(_ Entity, mv types.Move) {
	if mv.Cause == types.CauseTeleport || s.d.Status() != Playing {
		return
	}
	s.Advance()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
