package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/gridcrawl/engine/level"
	"github.com/nathoo/gridcrawl/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var knownKinds = func() map[string]bool {
	m := map[string]bool{}
	for _, k := range level.Kinds() {
		m[string(k)] = true
	}
	return m
}()

// validate checks the description for problems that make it unloadable
// (errors). Problems confined to one entity record are warnings: the level
// builder skips or rejects such records according to its load policy.
func validate(def *types.LevelDef) *ValidationError {
	ve := &ValidationError{}

	if def.Width <= 0 || def.Height <= 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"board size %dx%d must be positive", def.Width, def.Height))
	}
	validateGoal(def.Goal, "goal", ve)

	players := 0
	for i, e := range def.Entities {
		switch {
		case e.Kind == "":
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("entity %d has no kind", i))
			continue
		case !knownKinds[e.Kind]:
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"entity %d has unknown kind %q", i, e.Kind))
		}
		switch types.Kind(e.Kind) {
		case types.KindPlayer:
			players++
		case types.KindDoor, types.KindKey, types.KindPortal:
			if e.ID == nil {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"entity %d (%s) has no id", i, e.Kind))
			}
		case types.KindSaw:
			if e.Orientation == "" {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"entity %d (saw) has no orientation", i))
			}
		}
		if e.X < 0 || e.Y < 0 || e.X >= def.Width || e.Y >= def.Height {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"entity %d (%s) at %d,%d lies outside the board", i, e.Kind, e.X, e.Y))
		}
	}
	switch {
	case players == 0:
		ve.Warnings = append(ve.Warnings, "no player placed")
	case players > 1:
		ve.Warnings = append(ve.Warnings, fmt.Sprintf("%d players placed, only the first is used", players))
	}
	return ve
}

func validateGoal(g types.GoalDef, path string, ve *ValidationError) {
	if g.Op == "" {
		ve.Errors = append(ve.Errors, path+" has no op")
	}
	for i, c := range g.Children {
		validateGoal(c, fmt.Sprintf("%s.children[%d]", path, i), ve)
	}
}

// Warnings returns the non-fatal problems found in def.
func Warnings(def *types.LevelDef) []string {
	return validate(def).Warnings
}
