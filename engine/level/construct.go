package level

import (
	"fmt"

	"github.com/nathoo/gridcrawl/engine/dungeon"
	"github.com/nathoo/gridcrawl/types"
)

type constructor func(d *dungeon.Dungeon, rec types.EntityDef) (dungeon.Entity, error)

var constructors = map[types.Kind]constructor{
	types.KindPlayer: func(d *dungeon.Dungeon, r types.EntityDef) (dungeon.Entity, error) {
		return dungeon.NewPlayer(d, r.X, r.Y), nil
	},
	types.KindEnemy: func(d *dungeon.Dungeon, r types.EntityDef) (dungeon.Entity, error) {
		return dungeon.NewEnemy(d, r.X, r.Y), nil
	},
	types.KindWall: func(d *dungeon.Dungeon, r types.EntityDef) (dungeon.Entity, error) {
		return dungeon.NewWall(d, r.X, r.Y), nil
	},
	types.KindExit: func(d *dungeon.Dungeon, r types.EntityDef) (dungeon.Entity, error) {
		return dungeon.NewExit(d, r.X, r.Y), nil
	},
	types.KindBoulder: func(d *dungeon.Dungeon, r types.EntityDef) (dungeon.Entity, error) {
		return dungeon.NewBoulder(d, r.X, r.Y), nil
	},
	types.KindSwitch: func(d *dungeon.Dungeon, r types.EntityDef) (dungeon.Entity, error) {
		id := -1
		if r.ID != nil {
			id = *r.ID
		}
		return dungeon.NewSwitch(d, r.X, r.Y, id), nil
	},
	types.KindDoor: func(d *dungeon.Dungeon, r types.EntityDef) (dungeon.Entity, error) {
		if r.ID == nil {
			return nil, ErrMissingID
		}
		return dungeon.NewDoor(d, r.X, r.Y, *r.ID), nil
	},
	types.KindTreasure: func(d *dungeon.Dungeon, r types.EntityDef) (dungeon.Entity, error) {
		return dungeon.NewTreasure(d, r.X, r.Y), nil
	},
	types.KindKey: func(d *dungeon.Dungeon, r types.EntityDef) (dungeon.Entity, error) {
		if r.ID == nil {
			return nil, ErrMissingID
		}
		return dungeon.NewKey(d, r.X, r.Y, *r.ID), nil
	},
	types.KindSword: func(d *dungeon.Dungeon, r types.EntityDef) (dungeon.Entity, error) {
		return dungeon.NewSword(d, r.X, r.Y), nil
	},
	types.KindPotion: func(d *dungeon.Dungeon, r types.EntityDef) (dungeon.Entity, error) {
		return dungeon.NewPotion(d, r.X, r.Y), nil
	},
	types.KindPortal: func(d *dungeon.Dungeon, r types.EntityDef) (dungeon.Entity, error) {
		if r.ID == nil {
			return nil, ErrMissingID
		}
		activated := true
		if r.Activated != nil {
			activated = *r.Activated
		}
		return dungeon.NewPortal(d, r.X, r.Y, *r.ID, activated), nil
	},
	types.KindSaw: func(d *dungeon.Dungeon, r types.EntityDef) (dungeon.Entity, error) {
		o, err := dungeon.ParseOrientation(r.Orientation)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadOrientation, err)
		}
		return dungeon.NewSaw(d, r.X, r.Y, o), nil
	},
}

func construct(d *dungeon.Dungeon, rec types.EntityDef) (dungeon.Entity, error) {
	c, ok := constructors[types.Kind(rec.Kind)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", rec.Kind, ErrUnknownKind)
	}
	return c(d, rec)
}

// Kinds lists the kinds Build understands.
func Kinds() []types.Kind {
	return []types.Kind{
		types.KindPlayer, types.KindEnemy, types.KindWall, types.KindExit,
		types.KindBoulder, types.KindSwitch, types.KindDoor, types.KindTreasure,
		types.KindKey, types.KindSword, types.KindPotion, types.KindPortal,
		types.KindSaw,
	}
}
