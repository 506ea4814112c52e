package dungeon

import "github.com/nathoo/gridcrawl/types"

// Exit is activated while the player stands on it.
type Exit struct {
	Base
	activated bool
}

// NewExit constructs an exit.
func NewExit(d *Dungeon, x, y int) *Exit {
	ex := &Exit{}
	ex.init(d, ex, types.KindExit, types.Floor, x, y)
	return ex
}

// Activated reports whether the player is on the exit.
func (ex *Exit) Activated() bool { return ex.activated }

// Interact lets the player through; anything else fails.
func (ex *Exit) Interact(actor Entity) bool {
	_, ok := actor.(*Player)
	return ok
}

// OnPlayerMove activates the exit when the player arrives, checks the goal,
// and deactivates it when the player leaves.
func (ex *Exit) OnPlayerMove(src Entity, _ types.Move) {
	p, ok := src.(*Player)
	if !ok {
		return
	}
	here := p.Alive() && ex.at(p.Position())
	switch {
	case here && !ex.activated:
		if !ex.Interact(p) {
			return
		}
		ex.activated = true
		ex.d.note(types.EventExitReached, map[string]any{"x": ex.pos.X, "y": ex.pos.Y})
		ex.d.Checkpoint()
	case !here:
		ex.activated = false
	}
}

// Switch is pressed while a boulder rests on it. A pressed switch powers
// the portals sharing its id.
type Switch struct {
	Base
	link    int
	pressed bool
}

// NewSwitch constructs a released switch. id may be -1 for an unlinked one.
func NewSwitch(d *Dungeon, x, y, id int) *Switch {
	s := &Switch{link: id}
	s.init(d, s, types.KindSwitch, types.Floor, x, y)
	return s
}

// LinkID is the portal pairing identifier, -1 when unlinked.
func (s *Switch) LinkID() int { return s.link }

// Pressed reports whether a boulder rests on the switch.
func (s *Switch) Pressed() bool { return s.pressed }

// Sync presses or releases the switch to match what currently sits on it.
func (s *Switch) Sync() {
	_, covered := s.d.EntityAt(types.Object, s.pos.X, s.pos.Y).(*Boulder)
	s.set(covered)
}

// OnBoulderMove presses the switch when a boulder rolls on and releases it
// when the boulder rolls off.
func (s *Switch) OnBoulderMove(_ Entity, mv types.Move) {
	switch {
	case s.at(mv.To):
		s.set(true)
	case s.at(mv.From):
		s.Sync()
	}
}

// OnPlayerIntent never vetoes. It re-syncs the switch when the player steps
// onto it or pushes something onto it, so a boulder pushed by a listener
// registered earlier on the same intent is already counted. The player's
// own weight does not press a switch.
func (s *Switch) OnPlayerIntent(_ Entity, mv types.Move) bool {
	dx, dy := mv.Delta()
	if s.at(mv.To) || s.at(mv.To.Add(dx, dy)) {
		s.Sync()
	}
	return true
}

func (s *Switch) set(pressed bool) {
	if s.pressed == pressed {
		return
	}
	s.pressed = pressed
	typ := types.EventSwitchReleased
	delta := -1
	if pressed {
		typ = types.EventSwitchPressed
		delta = 1
	}
	if s.link >= 0 {
		for _, p := range Filter[*Portal](s.d) {
			if p.link == s.link {
				p.power(delta)
			}
		}
	}
	s.d.note(typ, map[string]any{"x": s.pos.X, "y": s.pos.Y, "id": s.link})
}

// Door blocks the player until opened by the key sharing its id.
type Door struct {
	Base
	link int
	open bool
}

// NewDoor constructs a locked door.
func NewDoor(d *Dungeon, x, y, id int) *Door {
	dr := &Door{link: id}
	dr.init(d, dr, types.KindDoor, types.Floor, x, y)
	return dr
}

// LinkID is the key pairing identifier.
func (dr *Door) LinkID() int { return dr.link }

// Open reports whether the door has been unlocked.
func (dr *Door) Open() bool { return dr.open }

// Interact opens the door for its key and lets the player through an open
// door.
func (dr *Door) Interact(actor Entity) bool {
	switch a := actor.(type) {
	case *Key:
		if dr.open || a.LinkID() != dr.link {
			return false
		}
		dr.open = true
		dr.d.note(types.EventDoorOpened, map[string]any{"id": dr.link})
		return true
	case *Player:
		return dr.open
	default:
		return false
	}
}

// OnPlayerIntent vetoes entry into a locked door unless a carried usable
// unlocks it.
func (dr *Door) OnPlayerIntent(src Entity, mv types.Move) bool {
	if !dr.at(mv.To) || dr.open {
		return true
	}
	p, ok := src.(*Player)
	if !ok {
		return true
	}
	return p.TryUsables(dr)
}

// Portal teleports the player to its partner, the other portal sharing its
// id. It works while level-activated or powered by a pressed switch.
type Portal struct {
	Base
	link      int
	activated bool
	powered   int
}

// NewPortal constructs a portal.
func NewPortal(d *Dungeon, x, y, id int, activated bool) *Portal {
	p := &Portal{link: id, activated: activated}
	p.init(d, p, types.KindPortal, types.Floor, x, y)
	return p
}

// LinkID is the partner pairing identifier.
func (p *Portal) LinkID() int { return p.link }

// Active reports whether the portal teleports.
func (p *Portal) Active() bool { return p.activated || p.powered > 0 }

func (p *Portal) power(delta int) {
	p.powered += delta
	if p.powered < 0 {
		p.powered = 0
	}
}

// Partner returns the first other on-board portal sharing this id.
func (p *Portal) Partner() *Portal {
	for _, other := range Filter[*Portal](p.d) {
		if other != p && other.link == p.link {
			return other
		}
	}
	return nil
}

// OnPlayerMove teleports a player that stepped onto an active portal. The
// teleport is itself a move, so its listeners run nested inside this one;
// arrivals by teleport are ignored so partners do not bounce.
func (p *Portal) OnPlayerMove(src Entity, mv types.Move) {
	if mv.Cause == types.CauseTeleport || !p.Active() || !p.at(mv.To) || src.Position() != mv.To {
		return
	}
	partner := p.Partner()
	if partner == nil {
		return
	}
	if src.Relocate(partner.Position(), types.CauseTeleport) {
		p.d.note(types.EventTeleported, map[string]any{
			"from": p.pos.String(), "to": partner.pos.String(),
		})
	}
}
