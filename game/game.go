// Package game opens a level file as a playable session: it loads the
// description, builds the dungeon with a board view attached, and starts an
// engine on it. Both front ends start and restart levels through here.
package game

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/nathoo/gridcrawl/catalog"
	"github.com/nathoo/gridcrawl/engine"
	"github.com/nathoo/gridcrawl/engine/level"
	"github.com/nathoo/gridcrawl/engine/rules"
	"github.com/nathoo/gridcrawl/loader"
	"github.com/nathoo/gridcrawl/types"
	"github.com/nathoo/gridcrawl/view"
)

// Options controls how a level is built.
type Options struct {
	Strict       bool
	ManualPickup bool
	Logger       *zap.Logger
}

// Session is one loaded level in play.
type Session struct {
	Path   string
	Def    *types.LevelDef
	Engine *engine.Engine
	Board  *view.Board
	Report *level.Report

	// Fingerprint hashes the level file contents; zero for in-memory levels.
	Fingerprint uint64

	opts Options
}

// Open loads the level file at path and starts a session on it.
func Open(path string, opts Options) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level %s: %w", path, err)
	}
	def, err := loader.Parse(path, data)
	if err != nil {
		return nil, err
	}
	return start(path, def, catalog.Fingerprint(data), opts)
}

// Start builds def and starts a session on it. path is only recorded for
// Restart and may be empty.
func Start(path string, def *types.LevelDef, opts Options) (*Session, error) {
	return start(path, def, 0, opts)
}

func start(path string, def *types.LevelDef, fingerprint uint64, opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	policy := level.PolicySkip
	if opts.Strict {
		policy = level.PolicyStrict
	}

	buildLog := log.With(zap.String("level_name", def.Name))
	if fingerprint != 0 {
		buildLog = buildLog.With(zap.String("fingerprint", fmt.Sprintf("%016x", fingerprint)))
	}

	board := view.NewBoard()
	d, report, err := level.Build(def,
		level.WithHooks(board),
		level.WithPolicy(policy),
		level.WithRules(rules.Options{ManualPickup: opts.ManualPickup}),
		level.WithLogger(buildLog),
	)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", def.Name, err)
	}

	eng := engine.New(d, engine.WithLogger(log), engine.WithLevelName(def.Name))
	return &Session{
		Path:   path,
		Def:    def,
		Engine: eng,
		Board:  board,
		Report: report,

		Fingerprint: fingerprint,
		opts:        opts,
	}, nil
}

// Restart starts the level again from its initial layout. A session backed
// by a file re-reads it, so edits made while playing take effect.
func (s *Session) Restart() (*Session, error) {
	if s.Path == "" {
		return start("", s.Def, s.Fingerprint, s.opts)
	}
	return Open(s.Path, s.opts)
}

// Switch opens another level file with the same options as s.
func (s *Session) Switch(path string) (*Session, error) {
	return Open(path, s.opts)
}

// Title is the banner line shown when a session starts.
func (s *Session) Title() string {
	w, h := s.Board.Size()
	return fmt.Sprintf("%s (%dx%d)", s.Def.Name, w, h)
}
