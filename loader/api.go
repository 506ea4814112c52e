package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// rawPlace holds one Place call before compilation.
type rawPlace struct {
	kind  string
	table *lua.LTable
}

// collector accumulates Lua definitions during script execution.
type collector struct {
	level  *lua.LTable
	places []rawPlace
	goal   lua.LValue
}

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerGoalHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Level { width = 8, height = 6, name = "..." }
	L.SetGlobal("Level", L.NewFunction(func(L *lua.LState) int {
		coll.level = L.CheckTable(1)
		return 0
	}))

	// Place "kind" { x = 1, y = 2, ... } is curried: Place("kind") returns a
	// function that takes a table.
	L.SetGlobal("Place", L.NewFunction(func(L *lua.LState) int {
		kind := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.places = append(coll.places, rawPlace{kind: kind, table: tbl})
			return 0
		}))
		return 1
	}))

	// Goal(node) or Goal "exit"
	L.SetGlobal("Goal", L.NewFunction(func(L *lua.LState) int {
		coll.goal = L.CheckAny(1)
		return 0
	}))
}

func registerGoalHelpers(L *lua.LState) {
	// Objective "treasure"
	L.SetGlobal("Objective", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("op", lua.LString(L.CheckString(1)))
		L.Push(tbl)
		return 1
	}))

	composite := func(op string) lua.LGFunction {
		return func(L *lua.LState) int {
			children := L.NewTable()
			for i := 1; i <= L.GetTop(); i++ {
				children.Append(L.Get(i))
			}
			tbl := L.NewTable()
			tbl.RawSetString("op", lua.LString(op))
			tbl.RawSetString("children", children)
			L.Push(tbl)
			return 1
		}
	}
	// AllOf(a, b, ...) / AnyOf(a, b, ...)
	L.SetGlobal("AllOf", L.NewFunction(composite("AND")))
	L.SetGlobal("AnyOf", L.NewFunction(composite("OR")))
}

// into converts the collected tables to the shared raw shape.
func (c *collector) into(raw *rawLevel) error {
	if c.level == nil {
		return fmt.Errorf("no Level{} definition found")
	}
	raw.Name = getString(c.level, "name")
	raw.Width = getOptInt(c.level, "width")
	raw.Height = getOptInt(c.level, "height")

	for _, p := range c.places {
		raw.Entities = append(raw.Entities, rawEntity{
			Kind:        p.kind,
			X:           getInt(p.table, "x"),
			Y:           getInt(p.table, "y"),
			ID:          getOptInt(p.table, "id"),
			Activated:   getOptBool(p.table, "activated"),
			Orientation: getString(p.table, "orientation"),
		})
	}

	if c.goal != nil {
		g, err := goalFromLua(c.goal)
		if err != nil {
			return fmt.Errorf("goal: %w", err)
		}
		raw.Goal = &g
	}
	return nil
}

func goalFromLua(v lua.LValue) (rawGoal, error) {
	switch val := v.(type) {
	case lua.LString:
		return rawGoal{Op: string(val)}, nil
	case *lua.LTable:
		g := rawGoal{Op: getString(val, "op")}
		if children, ok := val.RawGetString("children").(*lua.LTable); ok {
			for i := 1; i <= children.MaxN(); i++ {
				c, err := goalFromLua(children.RawGetInt(i))
				if err != nil {
					return rawGoal{}, err
				}
				g.Children = append(g.Children, c)
			}
		}
		return g, nil
	default:
		return rawGoal{}, fmt.Errorf("expected string or table, got %s", v.Type())
	}
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getOptInt returns a pointer to an int field, or nil if missing.
func getOptInt(tbl *lua.LTable, key string) *int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		v := int(n)
		return &v
	}
	return nil
}

// getOptBool returns a pointer to a bool field, or nil if missing.
func getOptBool(tbl *lua.LTable, key string) *bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		v := bool(b)
		return &v
	}
	return nil
}
