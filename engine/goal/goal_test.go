package goal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/gridcrawl/engine/dungeon"
	"github.com/nathoo/gridcrawl/types"
)

// fixed is a strategy with a settable answer that counts evaluations.
type fixed struct {
	ok    *bool
	calls *int
}

func newFixed(ok bool) fixed {
	return fixed{ok: &ok, calls: new(int)}
}

func (f fixed) Achieved(*dungeon.Dungeon) bool { *f.calls++; return *f.ok }

func (f fixed) Describe(d *dungeon.Dungeon) Node {
	return Node{Op: "fixed", Achieved: *f.ok}
}

func TestComposites(t *testing.T) {
	tests := []struct {
		name string
		a, b bool
		all  bool
		any  bool
	}{
		{"both", true, true, true, true},
		{"first", true, false, false, true},
		{"second", false, true, false, true},
		{"neither", false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := newFixed(tt.a), newFixed(tt.b)
			assert.Equal(t, tt.all, AllOf(a, b).Achieved(nil))
			assert.Equal(t, tt.any, AnyOf(a, b).Achieved(nil))
		})
	}
}

func TestComposites_Nesting(t *testing.T) {
	// AllOf(AnyOf(A, B), C)
	a, b, c := newFixed(false), newFixed(true), newFixed(true)
	tree := AllOf(AnyOf(a, b), c)
	assert.True(t, tree.Achieved(nil))

	*c.ok = false
	assert.False(t, tree.Achieved(nil))

	*c.ok, *b.ok = true, false
	assert.False(t, tree.Achieved(nil))
}

func TestComposites_ShortCircuit(t *testing.T) {
	a, b := newFixed(false), newFixed(true)
	assert.False(t, AllOf(a, b).Achieved(nil))
	assert.Equal(t, 0, *b.calls)

	c, d := newFixed(true), newFixed(false)
	assert.True(t, AnyOf(c, d).Achieved(nil))
	assert.Equal(t, 0, *d.calls)
}

func board(t *testing.T) (*dungeon.Dungeon, *dungeon.Player, *dungeon.Exit, *dungeon.Treasure) {
	t.Helper()
	d := dungeon.New(4, 1)
	p := dungeon.NewPlayer(d, 0, 0)
	tr := dungeon.NewTreasure(d, 1, 0)
	ex := dungeon.NewExit(d, 3, 0)
	for _, e := range []dungeon.Entity{p, tr, ex} {
		require.NoError(t, d.Add(e))
	}
	p.MoveEvent().Register(dungeon.PickUpOnArrival(tr))
	p.MoveEvent().Register(ex.OnPlayerMove)
	return d, p, ex, tr
}

func TestLeaves_ExitAndTreasure(t *testing.T) {
	d, p, _, _ := board(t)
	g, err := Compile(types.GoalDef{Op: "AND", Children: []types.GoalDef{{Op: "exit"}, {Op: "treasure"}}}, d)
	require.NoError(t, err)
	exit, treasure := Exit(), Treasure()

	assert.False(t, g.Achieved())
	require.True(t, p.Move(1, 0))
	assert.True(t, treasure.Achieved(d))
	assert.False(t, exit.Achieved(d))
	assert.False(t, g.Achieved())

	require.True(t, p.Move(1, 0))
	require.True(t, p.Move(1, 0))
	assert.True(t, exit.Achieved(d))
	assert.True(t, g.Achieved())
}

func TestLeaves_EnemiesAndBoulders(t *testing.T) {
	d := dungeon.New(3, 1)
	e := dungeon.NewEnemy(d, 0, 0)
	sw := dungeon.NewSwitch(d, 2, 0, -1)
	b := dungeon.NewBoulder(d, 1, 0)
	for _, x := range []dungeon.Entity{e, sw, b} {
		require.NoError(t, d.Add(x))
	}
	b.MoveEvent().Register(sw.OnBoulderMove)

	assert.False(t, Enemies().Achieved(d))
	e.Kill()
	assert.True(t, Enemies().Achieved(d))

	assert.False(t, Boulders().Achieved(d))
	require.True(t, b.Move(1, 0))
	assert.True(t, Boulders().Achieved(d))
}

func TestCompile_Errors(t *testing.T) {
	d := dungeon.New(1, 1)
	tests := []struct {
		name string
		def  types.GoalDef
		want error
	}{
		{"unknown leaf", types.GoalDef{Op: "gold"}, ErrUnknownOp},
		{"empty op", types.GoalDef{}, ErrUnknownOp},
		{"empty AND", types.GoalDef{Op: "AND"}, ErrEmptyComposite},
		{"nested unknown", types.GoalDef{Op: "OR", Children: []types.GoalDef{{Op: "exit"}, {Op: "XOR"}}}, ErrUnknownOp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.def, d)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCompile_LeafWithChildren(t *testing.T) {
	_, err := Compile(types.GoalDef{Op: "exit", Children: []types.GoalDef{{Op: "treasure"}}}, dungeon.New(1, 1))
	assert.Error(t, err)
}

func TestCompile_CaseInsensitive(t *testing.T) {
	g, err := Compile(types.GoalDef{Op: "and", Children: []types.GoalDef{{Op: "Enemies"}}}, dungeon.New(1, 1))
	require.NoError(t, err)
	assert.True(t, g.Achieved(), "no enemies on an empty board")
}

func TestDescribe(t *testing.T) {
	d, p, _, _ := board(t)
	g, err := Compile(types.GoalDef{Op: "OR", Children: []types.GoalDef{{Op: "exit"}, {Op: "treasure"}}}, d)
	require.NoError(t, err)
	require.True(t, p.Move(1, 0))

	n := g.Describe()
	assert.Equal(t, OpOr, n.Op)
	assert.True(t, n.Achieved)
	require.Len(t, n.Children, 2)
	assert.Equal(t, Node{Op: OpExit, Label: "reach the exit"}, n.Children[0])
	assert.Equal(t, Node{Op: OpTreasure, Label: "collect all treasure", Achieved: true}, n.Children[1])
}
