package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nathoo/gridcrawl/engine/dungeon"
	"github.com/nathoo/gridcrawl/engine/rules"
	"github.com/nathoo/gridcrawl/types"
)

func intp(n int) *int { return &n }
func boolp(b bool) *bool { return &b }

func exitGoal() types.GoalDef { return types.GoalDef{Op: "exit"} }

// recorder is a hook that logs what it sees.
type recorder struct {
	name   string
	trace  *[]string
	loaded []dungeon.Entity
	posts  int
}

func (r *recorder) OnLoad(e dungeon.Entity) {
	r.loaded = append(r.loaded, e)
	*r.trace = append(*r.trace, r.name+":"+string(e.Kind()))
}

func (r *recorder) PostLoad(*dungeon.Dungeon) {
	r.posts++
	*r.trace = append(*r.trace, r.name+":post")
}

func TestBuild_AllKinds(t *testing.T) {
	def := &types.LevelDef{
		Name: "zoo", Width: 8, Height: 3, Goal: exitGoal(),
		Entities: []types.EntityDef{
			{Kind: "player", X: 0, Y: 0},
			{Kind: "enemy", X: 7, Y: 2},
			{Kind: "wall", X: 1, Y: 1},
			{Kind: "exit", X: 7, Y: 0},
			{Kind: "boulder", X: 2, Y: 0},
			{Kind: "switch", X: 3, Y: 0},
			{Kind: "door", X: 4, Y: 0, ID: intp(1)},
			{Kind: "treasure", X: 5, Y: 0},
			{Kind: "key", X: 6, Y: 0, ID: intp(1)},
			{Kind: "sword", X: 0, Y: 1},
			{Kind: "invincibility", X: 0, Y: 2},
			{Kind: "portal", X: 2, Y: 2, ID: intp(4), Activated: boolp(false)},
			{Kind: "portal", X: 3, Y: 2, ID: intp(4)},
			{Kind: "saw", X: 5, Y: 2, Orientation: "horizontal"},
		},
	}
	d, rep, err := Build(def)
	require.NoError(t, err)
	assert.Equal(t, "zoo", rep.Name)
	assert.Equal(t, len(def.Entities), rep.Placed)
	assert.Empty(t, rep.Skipped)
	assert.Len(t, d.Entities(), len(def.Entities))
	assert.Len(t, Kinds(), 13)
	assert.NotNil(t, d.Goal())

	portals := dungeon.Filter[*dungeon.Portal](d)
	require.Len(t, portals, 2)
	assert.False(t, portals[0].Active())
	assert.True(t, portals[1].Active(), "portals default to activated")
	sw := dungeon.Filter[*dungeon.Switch](d)[0]
	assert.Equal(t, -1, sw.LinkID())
	assert.Positive(t, rep.Wiring.PlayerIntents)
}

func TestBuild_SkipPolicy(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	def := &types.LevelDef{
		Width: 4, Height: 1, Goal: exitGoal(),
		Entities: []types.EntityDef{
			{Kind: "player", X: 0, Y: 0},
			{Kind: "dragon", X: 1, Y: 0},
			{Kind: "door", X: 2, Y: 0},
			{Kind: "saw", X: 3, Y: 0, Orientation: "diagonal"},
			{Kind: "wall", X: 9, Y: 0},
			{Kind: "wall", X: 0, Y: 0},
			{Kind: "player", X: 1, Y: 0},
			{Kind: "exit", X: 3, Y: 0},
		},
	}
	d, rep, err := Build(def, WithLogger(zap.New(core)))
	require.NoError(t, err)

	require.Len(t, rep.Skipped, 6)
	wants := []error{ErrUnknownKind, ErrMissingID, ErrBadOrientation, dungeon.ErrOutOfBounds, dungeon.ErrCellOccupied, dungeon.ErrDuplicatePlayer}
	for i, want := range wants {
		assert.ErrorIs(t, rep.Skipped[i], want, "record %d", rep.Skipped[i].Index)
	}
	assert.Equal(t, 1, rep.Skipped[0].Index)
	assert.Equal(t, 2, rep.Placed)
	assert.Len(t, d.Entities(), 2)
	assert.Equal(t, 6, logs.FilterMessage("skipping entity record").Len())
}

func TestBuild_StrictPolicy(t *testing.T) {
	def := &types.LevelDef{
		Width: 3, Height: 1, Goal: exitGoal(),
		Entities: []types.EntityDef{
			{Kind: "player", X: 0, Y: 0},
			{Kind: "key", X: 1, Y: 0},
		},
	}
	_, _, err := Build(def, WithPolicy(PolicyStrict))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingID)
	var re *RecordError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 1, re.Index)
	assert.Equal(t, "key", re.Kind)
}

func TestBuild_FatalErrors(t *testing.T) {
	player := []types.EntityDef{{Kind: "player"}}
	tests := []struct {
		name string
		def  types.LevelDef
		want error
	}{
		{"zero width", types.LevelDef{Width: 0, Height: 3, Goal: exitGoal(), Entities: player}, ErrBadBoard},
		{"no player", types.LevelDef{Width: 2, Height: 2, Goal: exitGoal()}, ErrNoPlayer},
		{"skipped player", types.LevelDef{Width: 2, Height: 2, Goal: exitGoal(),
			Entities: []types.EntityDef{{Kind: "player", X: 5}}}, ErrNoPlayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Build(&tt.def)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, _, err := Build(&types.LevelDef{Width: 2, Height: 2, Goal: types.GoalDef{Op: "XOR"}, Entities: player})
	assert.Error(t, err, "bad goal is fatal")
}

func TestBuild_HookOrder(t *testing.T) {
	var trace []string
	a := &recorder{name: "a", trace: &trace}
	b := &recorder{name: "b", trace: &trace}
	def := &types.LevelDef{
		Width: 2, Height: 1, Goal: exitGoal(),
		Entities: []types.EntityDef{{Kind: "player"}, {Kind: "exit", X: 1}, {Kind: "nope"}},
	}
	_, _, err := Build(def, WithHooks(a, b, a))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"a:player", "b:player",
		"a:exit", "b:exit",
		"a:post", "b:post",
	}, trace)
	assert.Equal(t, 1, a.posts, "duplicate hooks are ignored")
	assert.Len(t, b.loaded, 2)
}

func TestBuild_RulesRunBeforeOtherHooks(t *testing.T) {
	// A post-load hook sees a wired board.
	var intents int
	h := &postHook{fn: func(d *dungeon.Dungeon) { intents = d.Player().MoveIntent().Len() }}
	def := &types.LevelDef{
		Width: 3, Height: 1, Goal: exitGoal(),
		Entities: []types.EntityDef{{Kind: "player"}, {Kind: "boulder", X: 1}},
	}
	_, _, err := Build(def, WithHooks(h))
	require.NoError(t, err)
	assert.Equal(t, 1, intents)
}

func TestBuild_ManualPickup(t *testing.T) {
	def := &types.LevelDef{
		Width: 3, Height: 1, Goal: exitGoal(),
		Entities: []types.EntityDef{{Kind: "player"}, {Kind: "sword", X: 1}},
	}
	d, _, err := Build(def, WithRules(rules.Options{ManualPickup: true}))
	require.NoError(t, err)
	require.True(t, d.Player().Move(1, 0))
	assert.Empty(t, d.Player().Inventory())
}

type postHook struct {
	fn func(d *dungeon.Dungeon)
}

func (p *postHook) OnLoad(dungeon.Entity) {}
func (p *postHook) PostLoad(d *dungeon.Dungeon) { p.fn(d) }

func TestComposite_IgnoresNilAndDuplicates(t *testing.T) {
	var trace []string
	r := &recorder{name: "r", trace: &trace}
	var c Composite
	c.Add(r)
	c.Add(nil)
	c.Add(r)
	assert.Equal(t, 1, c.Len())
}

// sliceHook is a value hook of an incomparable type.
type sliceHook struct {
	seen []string
}

func (sliceHook) OnLoad(dungeon.Entity) {}
func (sliceHook) PostLoad(*dungeon.Dungeon) {}

func TestComposite_IncomparableHooks(t *testing.T) {
	var c Composite
	c.Add(sliceHook{})
	assert.NotPanics(t, func() { c.Add(sliceHook{seen: []string{"x"}}) })
	assert.Equal(t, 2, c.Len())

	def := &types.LevelDef{
		Width: 2, Height: 1, Goal: exitGoal(),
		Entities: []types.EntityDef{{Kind: "player"}, {Kind: "exit", X: 1}},
	}
	assert.NotPanics(t, func() {
		_, _, err := Build(def, WithHooks(sliceHook{}, sliceHook{}))
		require.NoError(t, err)
	})
}
