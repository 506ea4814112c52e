// Package rules wires the fixed cross-entity listener relationships of a
// freshly loaded dungeon. Entities never subscribe to each other on
// construction; this pass does it explicitly, once, after every entity is on
// the board.
package rules

import (
	"errors"

	"github.com/nathoo/gridcrawl/engine/dungeon"
)

// ErrNoPlayer is returned when the dungeon has nobody to wire rules around.
var ErrNoPlayer = errors.New("dungeon has no player")

// Options tune the wiring pass.
type Options struct {
	// ManualPickup leaves items on the floor until the player takes them
	// explicitly instead of collecting them on arrival.
	ManualPickup bool
}

// Stats counts the registrations made by Wire.
type Stats struct {
	PlayerIntents int
	PlayerEvents  int
	HostileGuards int
	SwitchLinks   int
}

// Wire registers, in load order within each group:
//
//	player intent:  boulder push, enemy and saw confrontation, door lock,
//	                switch sync
//	player event:   potion burn and item pickup, exits, portals, enemy AI, saws
//	hostile intent: the player's confrontation guard on every enemy and saw
//	boulder event:  every switch
//
// and then syncs each switch with whatever starts on it.
func Wire(d *dungeon.Dungeon, opts Options) (Stats, error) {
	var st Stats
	p := d.Player()
	if p == nil {
		return st, ErrNoPlayer
	}
	intent, event := p.MoveIntent(), p.MoveEvent()
	all := d.Entities()

	for _, e := range all {
		switch x := e.(type) {
		case *dungeon.Boulder:
			intent.Register(x.OnPlayerIntent)
		case *dungeon.Enemy:
			intent.Register(x.OnPlayerIntent)
		case *dungeon.Saw:
			intent.Register(x.OnPlayerIntent)
		case *dungeon.Door:
			intent.Register(x.OnPlayerIntent)
		case *dungeon.Switch:
			intent.Register(x.OnPlayerIntent)
		default:
			continue
		}
		st.PlayerIntents++
	}

	// Items first so pickups and potion charges settle before anything
	// reacts to the new position.
	for _, e := range all {
		it, ok := e.(dungeon.Item)
		if !ok {
			continue
		}
		if pot, ok := it.(*dungeon.Potion); ok {
			event.Register(pot.OnPlayerMove)
			st.PlayerEvents++
		}
		if !opts.ManualPickup {
			event.Register(dungeon.PickUpOnArrival(it))
			st.PlayerEvents++
		}
	}
	for _, x := range dungeon.Filter[*dungeon.Exit](d) {
		event.Register(x.OnPlayerMove)
		st.PlayerEvents++
	}
	for _, x := range dungeon.Filter[*dungeon.Portal](d) {
		event.Register(x.OnPlayerMove)
		st.PlayerEvents++
	}
	for _, x := range dungeon.Filter[*dungeon.Enemy](d) {
		event.Register(x.OnPlayerMove)
		x.MoveIntent().Register(p.OnHostileIntent)
		st.PlayerEvents++
		st.HostileGuards++
	}
	for _, x := range dungeon.Filter[*dungeon.Saw](d) {
		event.Register(x.OnPlayerMove)
		x.MoveIntent().Register(p.OnHostileIntent)
		st.PlayerEvents++
		st.HostileGuards++
	}

	switches := dungeon.Filter[*dungeon.Switch](d)
	for _, b := range dungeon.Filter[*dungeon.Boulder](d) {
		for _, sw := range switches {
			b.MoveEvent().Register(sw.OnBoulderMove)
			st.SwitchLinks++
		}
	}
	for _, sw := range switches {
		sw.Sync()
	}
	return st, nil
}

// Hook runs Wire after a level finishes loading.
type Hook struct {
	Options Options
	Stats   Stats
	Err     error
}

// NewHook returns a wiring hook with the given options.
func NewHook(opts Options) *Hook {
	return &Hook{Options: opts}
}

// OnLoad is a no-op; wiring needs the complete board.
func (h *Hook) OnLoad(dungeon.Entity) {}

// PostLoad wires the dungeon.
func (h *Hook) PostLoad(d *dungeon.Dungeon) {
	h.Stats, h.Err = Wire(d, h.Options)
}
