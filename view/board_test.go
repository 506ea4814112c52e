package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/gridcrawl/engine/goal"
	"github.com/nathoo/gridcrawl/engine/level"
	"github.com/nathoo/gridcrawl/engine/rules"
	"github.com/nathoo/gridcrawl/types"
)

func intp(n int) *int { return &n }

func TestBoard_FollowsMovesAndRemovals(t *testing.T) {
	b := NewBoard()
	def := &types.LevelDef{
		Width: 5, Height: 2, Goal: types.GoalDef{Op: "exit"},
		Entities: []types.EntityDef{
			{Kind: "player", X: 0, Y: 0},
			{Kind: "boulder", X: 1, Y: 0},
			{Kind: "enemy", X: 2, Y: 0},
			{Kind: "exit", X: 4, Y: 1},
			{Kind: "key", X: 0, Y: 1, ID: intp(1)},
		},
	}
	d, _, err := level.Build(def, level.WithHooks(b))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"@OE..",
		"k...>",
	}, b.Lines())

	// Push the boulder into the enemy. The enemy is crushed before it can
	// react.
	require.True(t, d.Player().Move(1, 0))
	assert.Equal(t, []string{
		".@O..",
		"k...>",
	}, b.Lines())
	assert.Positive(t, b.Updates())

	w, h := b.Size()
	assert.Equal(t, 5, w)
	assert.Equal(t, 2, h)
}

func TestBoard_ObjectCoversItemCoversFloor(t *testing.T) {
	b := NewBoard()
	def := &types.LevelDef{
		Width: 3, Height: 1, Goal: types.GoalDef{Op: "exit"},
		Entities: []types.EntityDef{
			{Kind: "exit", X: 0, Y: 0},
			{Kind: "treasure", X: 0, Y: 0},
			{Kind: "player", X: 0, Y: 0},
			{Kind: "portal", X: 1, Y: 0, ID: intp(1)},
			{Kind: "sword", X: 1, Y: 0},
			{Kind: "switch", X: 2, Y: 0},
		},
	}
	_, _, err := level.Build(def, level.WithHooks(b), level.WithRules(rules.Options{ManualPickup: true}))
	require.NoError(t, err)

	assert.Equal(t, []string{"@/_"}, b.Lines())
	k, ok := b.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, types.KindPlayer, k)
	k, ok = b.At(1, 0)
	require.True(t, ok)
	assert.Equal(t, types.KindSword, k)
	_, ok = b.At(2, 1)
	assert.False(t, ok)
}

func TestBoard_AtTracksCellsAcrossMovesAndRemovals(t *testing.T) {
	b := NewBoard()
	def := &types.LevelDef{
		Width: 4, Height: 1, Goal: types.GoalDef{Op: "exit"},
		Entities: []types.EntityDef{
			{Kind: "treasure", X: 0, Y: 0},
			{Kind: "player", X: 0, Y: 0},
			{Kind: "boulder", X: 1, Y: 0},
			{Kind: "enemy", X: 2, Y: 0},
		},
	}
	d, _, err := level.Build(def, level.WithHooks(b), level.WithRules(rules.Options{ManualPickup: true}))
	require.NoError(t, err)

	k, ok := b.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, types.KindPlayer, k)

	require.True(t, d.Player().Move(1, 0))

	// The treasure shows again once the player steps off it.
	k, ok = b.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, types.KindTreasure, k)
	k, ok = b.At(1, 0)
	require.True(t, ok)
	assert.Equal(t, types.KindPlayer, k)
	k, ok = b.At(2, 0)
	require.True(t, ok)
	assert.Equal(t, types.KindBoulder, k)
	_, ok = b.At(3, 0)
	assert.False(t, ok)
	assert.Len(t, b.cells[types.Position{X: 2, Y: 0}], 1)
}

func TestGlyphsAndLegend(t *testing.T) {
	assert.Equal(t, '?', Glyph("dragon"))
	assert.Equal(t, "invincibility potion", Name(types.KindPotion))
	legend := Legend()
	assert.Len(t, legend, len(level.Kinds()))
	assert.Contains(t, legend, "@ player")
	seen := map[rune]bool{}
	for _, k := range level.Kinds() {
		g := Glyph(k)
		assert.False(t, seen[g], "glyph %c reused", g)
		seen[g] = true
	}
}

func TestGoalLines(t *testing.T) {
	n := goal.Node{Op: "AND", Label: "all of", Children: []goal.Node{
		{Op: "exit", Label: "reach the exit"},
		{Op: "OR", Label: "any of", Achieved: true, Children: []goal.Node{
			{Op: "treasure", Label: "collect all treasure", Achieved: true},
			{Op: "enemies", Label: "defeat all enemies"},
		}},
	}}
	assert.Equal(t, []string{
		"[ ] all of",
		"  [ ] reach the exit",
		"  [x] any of",
		"    [x] collect all treasure",
		"    [ ] defeat all enemies",
	}, GoalLines(n))
}
