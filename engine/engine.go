// Package engine provides the Step() orchestrator: one parsed player command
// per call, run synchronously against the dungeon, with the simulation's
// journal collected into the returned Result.
package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nathoo/gridcrawl/engine/dungeon"
	"github.com/nathoo/gridcrawl/engine/goal"
	"github.com/nathoo/gridcrawl/engine/parser"
	"github.com/nathoo/gridcrawl/types"
	"github.com/nathoo/gridcrawl/view"
)

// Engine drives one play session of a loaded dungeon.
type Engine struct {
	Dungeon    *dungeon.Dungeon
	SessionID  string
	Level      string
	TurnCount  int
	CommandLog []string

	log     *zap.Logger
	pending []types.Event
	ended   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithLevelName records the level name for logs and status lines.
func WithLevelName(name string) Option {
	return func(e *Engine) { e.Level = name }
}

// New starts a session on d. d must come from level.Build so its rules are
// wired.
func New(d *dungeon.Dungeon, opts ...Option) *Engine {
	e := &Engine{
		Dungeon:   d,
		SessionID: uuid.NewString(),
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(e)
	}
	e.log = e.log.With(zap.String("session", e.SessionID))
	d.Journal().Register(func(_ *dungeon.Dungeon, ev types.Event) {
		e.pending = append(e.pending, ev)
	})
	e.log.Info("session started",
		zap.String("level_name", e.Level),
		zap.Int("width", d.Width()),
		zap.Int("height", d.Height()),
		zap.Int("entities", len(d.Entities())),
	)
	return e
}

// Status returns the session status.
func (e *Engine) Status() dungeon.Status { return e.Dungeon.Status() }

// Player returns the player entity.
func (e *Engine) Player() *dungeon.Player { return e.Dungeon.Player() }

// Goal returns the structural view of the level goal.
func (e *Engine) Goal() goal.Node {
	if g, ok := e.Dungeon.Goal().(interface{ Describe() goal.Node }); ok {
		return g.Describe()
	}
	return goal.Node{}
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// 0. Game over: block all gameplay commands.
	if e.Status() != dungeon.Playing {
		result.Output = append(result.Output, "Game over. Use /quit to exit.")
		return result
	}

	// 1. Parse input.
	cmd := parser.Parse(input)

	// 2. Log the command.
	e.CommandLog = append(e.CommandLog, input)

	// 3. Empty input.
	if cmd.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}

	// 4. Act. Free actions do not advance the turn counter.
	e.pending = e.pending[:0]
	turn := false
	switch cmd.Verb {
	case "move":
		if cmd.Dir == "" {
			result.Output = append(result.Output, "Which way? ("+strings.Join(parser.Directions(), ", ")+")")
			break
		}
		result.Moved = e.Player().Move(cmd.DX, cmd.DY)
		turn = result.Moved
		if !result.Moved && len(e.pending) == 0 {
			result.Output = append(result.Output, "You can't go "+cmd.Dir+".")
		}

	case "wait":
		turn = true
		result.Output = append(result.Output, "Time passes.")

	case "take":
		if _, ok := e.Player().PickUpHere(); ok {
			turn = true
		} else {
			result.Output = append(result.Output, "There is nothing here to take.")
		}

	case "look":
		result.Output = append(result.Output, e.look()...)

	case "inventory":
		result.Output = append(result.Output, e.inventory()...)

	case "goal":
		result.Output = append(result.Output, view.GoalLines(e.Goal())...)

	default:
		result.Output = append(result.Output, fmt.Sprintf("I don't understand %q.", cmd.Verb))
	}

	// 5. Re-evaluate the goal.
	e.Dungeon.Checkpoint()

	// 6. Collect and narrate the journal.
	result.Events = append(result.Events, e.pending...)
	for _, ev := range e.pending {
		if line := narrate(ev); line != "" {
			result.Output = append(result.Output, line)
		}
	}
	e.pending = e.pending[:0]

	// 7. Increment turn count.
	if turn {
		e.TurnCount++
	}
	e.log.Debug("step",
		zap.String("input", input),
		zap.String("verb", cmd.Verb),
		zap.Bool("moved", result.Moved),
		zap.Int("events", len(result.Events)),
		zap.Int("turn", e.TurnCount),
	)

	// 8. Session end.
	if st := e.Status(); st != dungeon.Playing && !e.ended {
		e.ended = true
		e.log.Info("session ended",
			zap.Stringer("status", st),
			zap.Int("turns", e.TurnCount),
		)
	}
	return result
}

func (e *Engine) look() []string {
	p := e.Player()
	pos := p.Position()
	lines := []string{fmt.Sprintf("You are at %s.", pos)}
	for _, l := range []types.Occupancy{types.Floor, types.Item} {
		if x := e.Dungeon.EntityAt(l, pos.X, pos.Y); x != nil {
			lines = append(lines, "Here: "+view.Name(x.Kind())+".")
		}
	}
	for _, dir := range parser.Directions() {
		c := parser.Parse(dir)
		x, y := pos.X+c.DX, pos.Y+c.DY
		if !e.Dungeon.PositionValid(x, y) {
			continue
		}
		var seen []string
		for _, l := range []types.Occupancy{types.Object, types.Item, types.Floor} {
			if ent := e.Dungeon.EntityAt(l, x, y); ent != nil {
				seen = append(seen, describe(ent))
			}
		}
		if len(seen) > 0 {
			lines = append(lines, fmt.Sprintf("%s: %s.", capitalize(dir), strings.Join(seen, ", ")))
		}
	}
	return lines
}

func (e *Engine) inventory() []string {
	inv := e.Player().Inventory()
	if len(inv) == 0 {
		return []string{"You are carrying nothing."}
	}
	var names []string
	for _, it := range inv {
		name := view.Name(it.Kind())
		if u, ok := it.(dungeon.Usable); ok {
			name = fmt.Sprintf("%s (%d)", name, u.Uses())
		}
		names = append(names, name)
	}
	return []string{"You are carrying: " + strings.Join(names, ", ") + "."}
}

func describe(ent dungeon.Entity) string {
	name := view.Name(ent.Kind())
	switch x := ent.(type) {
	case *dungeon.Door:
		if x.Open() {
			return "open " + name
		}
		return "locked " + name
	case *dungeon.Enemy:
		return name + " (" + x.State() + ")"
	case *dungeon.Switch:
		if x.Pressed() {
			return "pressed " + name
		}
	case *dungeon.Portal:
		if !x.Active() {
			return "dormant " + name
		}
	}
	return name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
