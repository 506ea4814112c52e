package dungeon

import (
	"github.com/nathoo/gridcrawl/engine/emitter"
	"github.com/nathoo/gridcrawl/types"
)

// Default use counts.
const (
	KeyUses    = 1
	SwordUses  = 5
	PotionUses = 10
)

// charges is the use counter shared by usable items.
type charges struct {
	uses int
	used emitter.Event[Usable, types.ItemUsed]
}

// use attempts the interaction and decrements only if it succeeded.
func (c *charges) use(self Usable, target Interactable) bool {
	if c.uses <= 0 {
		return false
	}
	if !target.Interact(self) {
		return false
	}
	before := c.uses
	c.uses--
	c.used.Emit(self, types.ItemUsed{Before: before, After: c.uses})
	self.Dungeon().note(types.EventItemUsed, map[string]any{
		"kind":   string(self.Kind()),
		"target": string(target.Kind()),
		"uses":   c.uses,
	})
	return true
}

func (c *charges) Uses() int { return c.uses }

func (c *charges) Used() *emitter.Event[Usable, types.ItemUsed] { return &c.used }

// Key opens the door sharing its id.
type Key struct {
	Base
	charges
	link int
}

// NewKey constructs a key with KeyUses uses.
func NewKey(d *Dungeon, x, y, id int) *Key {
	k := &Key{link: id}
	k.init(d, k, types.KindKey, types.Item, x, y)
	k.uses = KeyUses
	return k
}

// LinkID is the door pairing identifier.
func (k *Key) LinkID() int { return k.link }

func (k *Key) MaxOne() bool { return true }

// Use presents the key to target.
func (k *Key) Use(target Interactable) bool { return k.use(k, target) }

// Sword defeats enemies.
type Sword struct {
	Base
	charges
}

// NewSword constructs a sword with SwordUses uses.
func NewSword(d *Dungeon, x, y int) *Sword {
	s := &Sword{}
	s.init(d, s, types.KindSword, types.Item, x, y)
	s.uses = SwordUses
	return s
}

func (s *Sword) MaxOne() bool { return true }

func (s *Sword) Use(target Interactable) bool { return s.use(s, target) }

// Potion grants invincibility while it has charges. A charge is spent every
// player turn it is carried and every time it defeats an enemy.
type Potion struct {
	Base
	charges
}

// NewPotion constructs an invincibility potion with PotionUses charges.
func NewPotion(d *Dungeon, x, y int) *Potion {
	p := &Potion{}
	p.init(d, p, types.KindPotion, types.Item, x, y)
	p.uses = PotionUses
	return p
}

func (p *Potion) MaxOne() bool { return true }

func (p *Potion) Use(target Interactable) bool { return p.use(p, target) }

// OnPlayerMove burns a charge on every player turn while the potion is
// carried. Pickup is wired separately, after this handler, so the turn the
// potion is collected is free.
func (p *Potion) OnPlayerMove(src Entity, mv types.Move) {
	pl, ok := src.(*Player)
	if !ok || mv.Cause == types.CauseTeleport || !pl.Carries(p) {
		return
	}
	if p.uses > 0 {
		p.uses--
	}
	if p.uses == 0 {
		pl.discardSpent()
	}
}

// Treasure is collected for the treasure objective.
type Treasure struct {
	Base
}

// NewTreasure constructs a treasure pile.
func NewTreasure(d *Dungeon, x, y int) *Treasure {
	t := &Treasure{}
	t.init(d, t, types.KindTreasure, types.Item, x, y)
	return t
}

func (t *Treasure) MaxOne() bool { return false }

// PickUpOnArrival returns a player move-event handler that collects it when
// the player stands on its cell.
func PickUpOnArrival(it Item) func(Entity, types.Move) {
	return func(src Entity, _ types.Move) {
		pl, ok := src.(*Player)
		if !ok || !it.OnBoard() {
			return
		}
		if it.Position() == pl.Position() {
			pl.PickUp(it)
		}
	}
}
