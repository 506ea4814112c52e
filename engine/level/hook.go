package level

import (
	"reflect"

	"github.com/nathoo/gridcrawl/engine/dungeon"
)

// Hook observes level construction. OnLoad is called once per entity placed
// on the board, in record order; PostLoad once after the last one.
type Hook interface {
	OnLoad(e dungeon.Entity)
	PostLoad(d *dungeon.Dungeon)
}

// Composite fans out to its hooks in insertion order. Pointer hooks are
// deduplicated by identity.
type Composite struct {
	hooks []Hook
}

// Add appends h unless it is nil or already present.
func (c *Composite) Add(h Hook) {
	if h == nil {
		return
	}
	// Hooks of an incomparable type are never duplicates.
	if reflect.TypeOf(h).Comparable() {
		for _, existing := range c.hooks {
			if existing == h {
				return
			}
		}
	}
	c.hooks = append(c.hooks, h)
}

// Len returns the number of distinct hooks.
func (c *Composite) Len() int { return len(c.hooks) }

func (c *Composite) OnLoad(e dungeon.Entity) {
	for _, h := range c.hooks {
		h.OnLoad(e)
	}
}

func (c *Composite) PostLoad(d *dungeon.Dungeon) {
	for _, h := range c.hooks {
		h.PostLoad(d)
	}
}
