// Package catalog indexes the level files in a directory.
//
// Files are parsed concurrently; each parse produces its own LevelDef, so
// the workers share nothing but the result slice, which they write by index.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/nathoo/gridcrawl/loader"
)

// ErrNotFound is returned by Resolve when no level file matches the name.
var ErrNotFound = errors.New("level not found")

// DefaultWorkers bounds the number of files parsed at once.
const DefaultWorkers = 4

// Entry summarizes one level file. A file that fails to load still gets an
// entry, with Err set and the size fields zero.
type Entry struct {
	Name        string
	Path        string
	Width       int
	Height      int
	Entities    int
	Goal        string
	Fingerprint uint64
	Warnings    []string
	Err         error
}

// String renders the entry as one listing line.
func (e Entry) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%-16s  error: %v", e.Name, e.Err)
	}
	line := fmt.Sprintf("%-16s  %dx%d  %3d entities  goal %-8s  %016x",
		e.Name, e.Width, e.Height, e.Entities, e.Goal, e.Fingerprint)
	if n := len(e.Warnings); n > 0 {
		line += fmt.Sprintf("  (%d warning(s))", n)
	}
	return line
}

// Option configures a scan.
type Option func(*scanner)

// WithWorkers sets the parse concurrency. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(s *scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

type scanner struct {
	workers int
}

// Scan lists the loadable files in dir, sorted by file name, and parses them
// in parallel. A broken level does not fail the scan; only a directory read
// error or cancellation of ctx does.
func Scan(ctx context.Context, dir string, opts ...Option) ([]Entry, error) {
	s := &scanner{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(s)
	}

	paths, err := list(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries[i] = inspect(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Resolve maps a level name to a file in dir. The name may carry its own
// extension; otherwise each supported extension is tried in order. A name
// that is already a path to a readable level file is returned unchanged.
func Resolve(dir, name string) (string, error) {
	if loader.Supported(name) {
		for _, candidate := range []string{name, filepath.Join(dir, name)} {
			if isFile(candidate) {
				return candidate, nil
			}
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	for _, ext := range loader.Extensions {
		candidate := filepath.Join(dir, name+ext)
		if isFile(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrNotFound, name, dir)
}

// Fingerprint hashes level file contents. Two files with the same
// fingerprint describe the same level.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

func list(dir string) ([]string, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading level directory: %w", err)
	}
	var paths []string
	for _, de := range dirents {
		if de.IsDir() || strings.HasPrefix(de.Name(), ".") || !loader.Supported(de.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, de.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func inspect(path string) Entry {
	e := Entry{Name: loader.LevelName(path), Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		e.Err = err
		return e
	}
	e.Fingerprint = Fingerprint(data)

	def, err := loader.Parse(path, data)
	if err != nil {
		e.Err = err
		return e
	}
	e.Name = def.Name
	e.Width = def.Width
	e.Height = def.Height
	e.Entities = len(def.Entities)
	e.Goal = def.Goal.Op
	e.Warnings = loader.Warnings(def)
	return e
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
