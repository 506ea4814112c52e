// Package loader reads level description files into types.LevelDef.
// JSON and YAML files are decoded directly; Lua files are executed in a
// sandboxed VM that is discarded after loading. Building the dungeon from
// the description is the engine's job, not the loader's.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"

	"github.com/nathoo/gridcrawl/types"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".json", ".yaml", ".yml", ".lua"}

// Supported reports whether path has a loadable extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads and decodes the level file at path.
func Load(path string) (*types.LevelDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes data using the format implied by name's extension.
func Parse(name string, data []byte) (*types.LevelDef, error) {
	var (
		raw rawLevel
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		err = decodeJSON(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".lua":
		err = runLua(name, data, &raw)
	default:
		return nil, fmt.Errorf("%s: unsupported level format %q", name, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(name), err)
	}

	def, err := compile(&raw)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", filepath.Base(name), err)
	}
	if def.Name == "" {
		def.Name = LevelName(name)
	}

	if ve := validate(def); len(ve.Errors) > 0 {
		return nil, ve
	}
	return def, nil
}

// LevelName derives a level name from its file name.
func LevelName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func decodeJSON(data []byte, raw *rawLevel) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(raw)
}

// runLua executes a level script and collects its definitions.
func runLua(name string, data []byte, raw *rawLevel) error {
	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Open safe libs only.
	openSafeLibs(L)

	// Sandbox: remove dangerous globals.
	sandbox(L)

	// Register API.
	coll := &collector{}
	registerAPI(L, coll)

	fn, err := L.Load(bytes.NewReader(data), filepath.Base(name))
	if err != nil {
		return err
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return err
	}
	return coll.into(raw)
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// Table library (table.insert, table.sort, etc.)
	lua.OpenTable(L)
	// String library (string.format, string.sub, etc.)
	lua.OpenString(L)
	// Math library (math.floor, math.max, etc.)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "print",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Levels are static; no randomness.
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("random", lua.LNil)
		tbl.RawSetString("randomseed", lua.LNil)
	}
}
