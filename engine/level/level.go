// Package level turns a parsed level description into a playable dungeon.
//
// Records are constructed in order. A record that cannot be built is either
// skipped and reported (PolicySkip, the default) or aborts the load
// (PolicyStrict). A malformed board, a malformed goal or a missing player
// always abort. Every placed entity is passed to the load hooks; the
// rule-wiring hook always runs first.
package level

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nathoo/gridcrawl/engine/dungeon"
	"github.com/nathoo/gridcrawl/engine/goal"
	"github.com/nathoo/gridcrawl/engine/rules"
	"github.com/nathoo/gridcrawl/types"
)

var (
	ErrBadBoard       = errors.New("board dimensions must be positive")
	ErrUnknownKind    = errors.New("unknown entity kind")
	ErrMissingID      = errors.New("missing required id")
	ErrBadOrientation = errors.New("missing or invalid orientation")
	ErrNoPlayer       = errors.New("level has no player")
)

// Policy decides what happens to a record that cannot be built.
type Policy int

const (
	PolicySkip Policy = iota
	PolicyStrict
)

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "skip"
}

// RecordError describes one entity record that could not be built.
type RecordError struct {
	Index int
	Kind  string
	X, Y  int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("entity %d (%s at %d,%d): %v", e.Index, e.Kind, e.X, e.Y, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Report summarizes a successful build.
type Report struct {
	Name    string
	Placed  int
	Skipped []*RecordError
	Wiring  rules.Stats
}

// Option configures Build.
type Option func(*builder)

// WithHooks adds load hooks after the rule-wiring hook.
func WithHooks(hooks ...Hook) Option {
	return func(b *builder) { b.extra = append(b.extra, hooks...) }
}

// WithPolicy sets the record error policy.
func WithPolicy(p Policy) Option {
	return func(b *builder) { b.policy = p }
}

// WithRules sets the rule-wiring options.
func WithRules(opts rules.Options) Option {
	return func(b *builder) { b.rules = opts }
}

// WithLogger sets the logger for skipped records and load summaries.
func WithLogger(l *zap.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.log = l
		}
	}
}

type builder struct {
	policy Policy
	rules  rules.Options
	extra  []Hook
	log    *zap.Logger
}

// Build constructs the dungeon described by def.
func Build(def *types.LevelDef, opts ...Option) (*dungeon.Dungeon, *Report, error) {
	b := &builder{log: zap.NewNop()}
	for _, o := range opts {
		o(b)
	}
	if def.Width <= 0 || def.Height <= 0 {
		return nil, nil, fmt.Errorf("%dx%d: %w", def.Width, def.Height, ErrBadBoard)
	}

	d := dungeon.New(def.Width, def.Height)
	g, err := goal.Compile(def.Goal, d)
	if err != nil {
		return nil, nil, fmt.Errorf("compiling goal: %w", err)
	}
	d.SetGoal(g)

	wiring := rules.NewHook(b.rules)
	var hooks Composite
	hooks.Add(wiring)
	for _, h := range b.extra {
		hooks.Add(h)
	}

	report := &Report{Name: def.Name}
	for i, rec := range def.Entities {
		e, err := construct(d, rec)
		if err == nil {
			err = d.Add(e)
		}
		if err != nil {
			re := &RecordError{Index: i, Kind: rec.Kind, X: rec.X, Y: rec.Y, Err: err}
			if b.policy == PolicyStrict {
				return nil, nil, re
			}
			b.log.Warn("skipping entity record",
				zap.Int("index", i),
				zap.String("kind", rec.Kind),
				zap.Int("x", rec.X),
				zap.Int("y", rec.Y),
				zap.Error(err),
			)
			report.Skipped = append(report.Skipped, re)
			continue
		}
		report.Placed++
		hooks.OnLoad(e)
	}

	if d.Player() == nil {
		return nil, nil, ErrNoPlayer
	}
	hooks.PostLoad(d)
	if wiring.Err != nil {
		return nil, nil, fmt.Errorf("wiring rules: %w", wiring.Err)
	}
	report.Wiring = wiring.Stats

	b.log.Info("level loaded",
		zap.String("name", def.Name),
		zap.Int("width", def.Width),
		zap.Int("height", def.Height),
		zap.Int("placed", report.Placed),
		zap.Int("skipped", len(report.Skipped)),
		zap.Stringer("policy", b.policy),
	)
	return d, report, nil
}
