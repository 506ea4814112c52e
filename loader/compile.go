package loader

import (
	"errors"
	"fmt"

	"github.com/nathoo/gridcrawl/types"
)

// rawLevel is the on-disk shape shared by every format. It accepts both the
// current field names and the older "type" / "goal-condition" / "subgoals"
// spelling.
type rawLevel struct {
	Name          string      `json:"name" yaml:"name"`
	Width         *int        `json:"width" yaml:"width"`
	Height        *int        `json:"height" yaml:"height"`
	Entities      []rawEntity `json:"entities" yaml:"entities"`
	Goal          *rawGoal    `json:"goal" yaml:"goal"`
	GoalCondition *rawGoal    `json:"goal-condition" yaml:"goal-condition"`
}

type rawEntity struct {
	Kind        string `json:"kind" yaml:"kind"`
	Type        string `json:"type" yaml:"type"`
	X           int    `json:"x" yaml:"x"`
	Y           int    `json:"y" yaml:"y"`
	ID          *int   `json:"id" yaml:"id"`
	Activated   *bool  `json:"activated" yaml:"activated"`
	Orientation string `json:"orientation" yaml:"orientation"`
}

type rawGoal struct {
	Op       string    `json:"op" yaml:"op"`
	Goal     string    `json:"goal" yaml:"goal"`
	Children []rawGoal `json:"children" yaml:"children"`
	Subgoals []rawGoal `json:"subgoals" yaml:"subgoals"`
}

var (
	errNoWidth  = errors.New("width is required")
	errNoHeight = errors.New("height is required")
	errNoGoal   = errors.New("goal is required")
)

// compile converts the raw description into a LevelDef.
func compile(raw *rawLevel) (*types.LevelDef, error) {
	if raw.Width == nil {
		return nil, errNoWidth
	}
	if raw.Height == nil {
		return nil, errNoHeight
	}
	g := raw.Goal
	if g == nil {
		g = raw.GoalCondition
	}
	if g == nil {
		return nil, errNoGoal
	}

	def := &types.LevelDef{
		Name:     raw.Name,
		Width:    *raw.Width,
		Height:   *raw.Height,
		Entities: make([]types.EntityDef, 0, len(raw.Entities)),
	}
	for i, e := range raw.Entities {
		kind := e.Kind
		if kind == "" {
			kind = e.Type
		} else if e.Type != "" && e.Type != e.Kind {
			return nil, fmt.Errorf("entity %d: kind %q and type %q disagree", i, e.Kind, e.Type)
		}
		def.Entities = append(def.Entities, types.EntityDef{
			Kind:        kind,
			X:           e.X,
			Y:           e.Y,
			ID:          e.ID,
			Activated:   e.Activated,
			Orientation: e.Orientation,
		})
	}
	def.Goal = compileGoal(*g)
	return def, nil
}

func compileGoal(g rawGoal) types.GoalDef {
	op := g.Op
	if op == "" {
		op = g.Goal
	}
	children := g.Children
	if len(children) == 0 {
		children = g.Subgoals
	}
	out := types.GoalDef{Op: op}
	for _, c := range children {
		out.Children = append(out.Children, compileGoal(c))
	}
	return out
}
