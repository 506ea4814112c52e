package dungeon

import "github.com/nathoo/gridcrawl/types"

// Player is the single actor driven by commands.
type Player struct {
	Base
	alive     bool
	inventory []Item
}

// NewPlayer constructs a player at (x, y). It is not on the board until
// added to d.
func NewPlayer(d *Dungeon, x, y int) *Player {
	p := &Player{alive: true}
	p.init(d, p, types.KindPlayer, types.Object, x, y)
	p.admit = p.admitMove
	return p
}

// Move attempts a one-square step. A dead player cannot move.
func (p *Player) Move(dx, dy int) bool {
	if !p.alive {
		return false
	}
	return p.Relocate(p.pos.Add(dx, dy), types.CauseStep)
}

// admitMove lets the player into an occupied cell only if the occupant's
// interaction succeeds and leaves the cell free. Teleports never interact.
func (p *Player) admitMove(mv types.Move) bool {
	occ := p.d.EntityAt(types.Object, mv.To.X, mv.To.Y)
	if occ == nil || occ == Entity(p) {
		return true
	}
	if mv.Cause != types.CauseStep {
		return false
	}
	ia, ok := occ.(Interactable)
	if !ok || !ia.Interact(p) {
		return false
	}
	return p.d.EntityAt(types.Object, mv.To.X, mv.To.Y) == nil
}

// Alive reports whether the player is still alive.
func (p *Player) Alive() bool { return p.alive }

// Kill ends the player's life and loses the session.
func (p *Player) Kill() {
	if !p.alive {
		return
	}
	p.alive = false
	p.d.lose()
	p.d.note(types.EventPlayerKilled, map[string]any{"x": p.pos.X, "y": p.pos.Y})
}

// Inventory returns the carried items in pickup order.
func (p *Player) Inventory() []Item {
	out := make([]Item, len(p.inventory))
	copy(out, p.inventory)
	return out
}

// Carries reports whether it is in the inventory.
func (p *Player) Carries(it Item) bool {
	for _, c := range p.inventory {
		if c == it {
			return true
		}
	}
	return false
}

// Invincible reports whether the player carries a potion with charges left.
func (p *Player) Invincible() bool {
	for _, it := range p.inventory {
		if pot, ok := it.(*Potion); ok && pot.Uses() > 0 {
			return true
		}
	}
	return false
}

// PickUp moves an on-board item into the inventory. A maxOne item is left on
// the board while the player already carries one of its kind.
func (p *Player) PickUp(it Item) bool {
	if !p.alive || !it.OnBoard() {
		return false
	}
	if it.MaxOne() {
		for _, c := range p.inventory {
			if c.Kind() == it.Kind() {
				return false
			}
		}
	}
	p.d.Remove(it)
	p.inventory = append(p.inventory, it)
	p.d.note(types.EventItemPickedUp, map[string]any{"kind": string(it.Kind())})
	return true
}

// PickUpHere collects the item under the player, if any.
func (p *Player) PickUpHere() (Item, bool) {
	it, ok := p.d.EntityAt(types.Item, p.pos.X, p.pos.Y).(Item)
	if !ok || !p.PickUp(it) {
		return nil, false
	}
	return it, true
}

// TryUsables offers every carried usable to target in pickup order and stops
// at the first one whose use succeeds. Spent items are discarded afterwards.
func (p *Player) TryUsables(target Interactable) bool {
	carried := p.Inventory()
	for _, it := range carried {
		u, ok := it.(Usable)
		if !ok {
			continue
		}
		if u.Use(target) {
			p.discardSpent()
			return true
		}
	}
	return false
}

// discardSpent drops usables with no uses left.
func (p *Player) discardSpent() {
	kept := p.inventory[:0]
	for _, it := range p.inventory {
		if u, ok := it.(Usable); ok && u.Uses() <= 0 {
			p.d.note(types.EventItemSpent, map[string]any{"kind": string(it.Kind())})
			continue
		}
		kept = append(kept, it)
	}
	for i := len(kept); i < len(p.inventory); i++ {
		p.inventory[i] = nil
	}
	p.inventory = kept
}

// OnHostileIntent answers a hostile's intent to move into the player's cell:
// the hostile's interaction with the player is resolved and the hostile's
// move is vetoed.
func (p *Player) OnHostileIntent(src Entity, mv types.Move) bool {
	if !p.alive || mv.To != p.pos {
		return true
	}
	if ia, ok := src.(Interactable); ok {
		ia.Interact(p)
	}
	return false
}
