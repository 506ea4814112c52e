// Gridcrawl is a turn-based dungeon crawler played on a grid.
// Usage: gridcrawl [--version] [--plain] [--script <file>] [--trace] [--strict]
//
//	[--manual-pickup] [--levels <dir>] [--list] <level name or file>
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/nathoo/gridcrawl/catalog"
	"github.com/nathoo/gridcrawl/cli"
	"github.com/nathoo/gridcrawl/config"
	"github.com/nathoo/gridcrawl/game"
	"github.com/nathoo/gridcrawl/logging"
	"github.com/nathoo/gridcrawl/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: gridcrawl [--version] [--plain] [--script <file>] [--trace] [--strict] [--manual-pickup] [--levels <dir>] [--list] <level>"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	plain := false
	trace := false
	list := false
	var levelArg string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("gridcrawl %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--list":
			list = true
		case "--strict":
			cfg.StrictLoad = true
		case "--manual-pickup":
			cfg.ManualPickup = true
		case "--script", "--levels":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a path\n", args[i])
				os.Exit(1)
			}
			if args[i] == "--script" {
				scriptFile = args[i+1]
			} else {
				cfg.LevelDir = args[i+1]
			}
			i++
		default:
			if levelArg == "" {
				levelArg = args[i]
			}
		}
	}

	if list {
		listLevels(cfg)
		return
	}
	if levelArg == "" {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	useTUI := scriptFile == "" && !plain && isTerminal()
	logger, err := newLogger(cfg, useTUI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	path, err := catalog.Resolve(cfg.LevelDir, levelArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	session, err := game.Open(path, game.Options{
		Strict:       cfg.StrictLoad,
		ManualPickup: cfg.ManualPickup,
		Logger:       logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading level: %v\n", err)
		os.Exit(1)
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(session)
		c.LevelDir = cfg.LevelDir
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	if !useTUI {
		c := cli.New(session)
		c.LevelDir = cfg.LevelDir
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(session, cfg.LevelDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the configured file, or to stderr in plain mode.
// The TUI owns the terminal, so without a file it logs nothing.
func newLogger(cfg config.Config, useTUI bool) (*zap.Logger, error) {
	if useTUI && cfg.LogFile == "" {
		return zap.NewNop(), nil
	}
	return logging.New(cfg.LogLevel, cfg.LogFile)
}

func listLevels(cfg config.Config) {
	entries, err := catalog.Scan(context.Background(), cfg.LevelDir, catalog.WithWorkers(cfg.ScanWorkers))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, e := range entries {
		fmt.Println(e.String())
		for _, w := range e.Warnings {
			fmt.Println("    warning: " + w)
		}
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
