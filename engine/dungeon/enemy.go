package dungeon

import "github.com/nathoo/gridcrawl/types"

// behaviour is an enemy movement state.
type behaviour interface {
	name() string
	// directions lists the steps to try, in priority order, given the
	// displacement from the enemy to the player.
	directions(dx, dy int) [][2]int
}

type roam struct{}

func (roam) name() string { return "roam" }

func (roam) directions(dx, dy int) [][2]int {
	var steps [][2]int
	if dx > 0 {
		steps = append(steps, [2]int{1, 0})
	}
	if dx < 0 {
		steps = append(steps, [2]int{-1, 0})
	}
	if dy > 0 {
		steps = append(steps, [2]int{0, 1})
	}
	if dy < 0 {
		steps = append(steps, [2]int{0, -1})
	}
	return steps
}

type flee struct{}

func (flee) name() string { return "flee" }

func (flee) directions(dx, dy int) [][2]int {
	steps := roam{}.directions(dx, dy)
	for i := range steps {
		steps[i][0], steps[i][1] = -steps[i][0], -steps[i][1]
	}
	return steps
}

var (
	roamState behaviour = roam{}
	fleeState behaviour = flee{}
)

// Enemy chases the player, or runs from an invincible one.
type Enemy struct {
	Base
	alive bool
	state behaviour
}

// NewEnemy constructs a living enemy in the roam state.
func NewEnemy(d *Dungeon, x, y int) *Enemy {
	e := &Enemy{alive: true, state: roamState}
	e.init(d, e, types.KindEnemy, types.Object, x, y)
	e.admit = e.objectFree
	return e
}

// Move attempts a one-square autonomous step.
func (e *Enemy) Move(dx, dy int) bool {
	if !e.alive {
		return false
	}
	return e.Relocate(e.pos.Add(dx, dy), types.CausePatrol)
}

// Alive reports whether the enemy is alive.
func (e *Enemy) Alive() bool { return e.alive }

// State returns the current behaviour name, "roam" or "flee".
func (e *Enemy) State() string { return e.state.name() }

// Kill removes the enemy from the board.
func (e *Enemy) Kill() {
	if !e.alive {
		return
	}
	e.alive = false
	pos := e.pos
	e.d.Remove(e)
	e.d.note(types.EventEnemyKilled, map[string]any{"x": pos.X, "y": pos.Y})
}

// React chooses the behaviour for this tick and takes one step under it.
func (e *Enemy) React(p *Player) {
	if !e.alive || !p.Alive() {
		return
	}
	if p.Invincible() {
		e.state = fleeState
	} else {
		e.state = roamState
	}
	e.follow(p)
}

// Roam takes one step towards the player regardless of the current state.
func (e *Enemy) Roam(p *Player) bool {
	e.state = roamState
	return e.follow(p)
}

// Flee takes one step away from the player regardless of the current state.
func (e *Enemy) Flee(p *Player) bool {
	e.state = fleeState
	return e.follow(p)
}

// follow tries the current state's directions in order and stops at the
// first step that succeeds.
func (e *Enemy) follow(p *Player) bool {
	target := p.Position()
	for _, step := range e.state.directions(target.X-e.pos.X, target.Y-e.pos.Y) {
		if !e.alive || !p.Alive() {
			return false
		}
		if e.Move(step[0], step[1]) {
			return true
		}
	}
	return false
}

// Interact resolves an actor acting on the enemy. A player confronting the
// enemy survives only if one of its usables defeats it; swords and active
// potions defeat it.
func (e *Enemy) Interact(actor Entity) bool {
	if !e.alive {
		return true
	}
	switch a := actor.(type) {
	case *Player:
		if a.TryUsables(e) {
			return true
		}
		a.Kill()
		return false
	case *Sword:
		e.Kill()
		return true
	case *Potion:
		if a.Uses() <= 0 {
			return false
		}
		e.Kill()
		return true
	default:
		return false
	}
}

// OnPlayerIntent resolves the player stepping into the enemy's cell.
func (e *Enemy) OnPlayerIntent(src Entity, mv types.Move) bool {
	if !e.alive || !e.at(mv.To) {
		return true
	}
	return e.Interact(src)
}

// OnPlayerMove lets the enemy react to the player's completed move.
func (e *Enemy) OnPlayerMove(src Entity, mv types.Move) {
	if mv.Cause == types.CauseTeleport || e.d.Status() != Playing {
		return
	}
	if p, ok := src.(*Player); ok {
		e.React(p)
	}
}
