package loader

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/nathoo/meganjourney/content"
	"github.com/nathoo/meganjourney/engine/state"
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game       *lua.LTable
	rooms      []rawRoom
	items      []rawItem
	characters []rawCharacter
}

// LoadDefault loads the embedded stock world.
func LoadDefault() (*state.Defs, error) {
	return LoadFS(content.FS)
}

// Load reads all .lua files from dir, compiles them into game definitions,
// validates references, and returns the immutable Defs.
func Load(dir string) (*state.Defs, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading world directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("world path %s is not a directory", dir)
	}
	defs, err := LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	return defs, nil
}

// LoadFS is Load over any file system; the .lua files are read from its root.
// The Lua VM is discarded after loading.
func LoadFS(fsys fs.FS) (*state.Defs, error) {
	luaFiles, err := fs.Glob(fsys, "*.lua")
	if err != nil {
		return nil, fmt.Errorf("reading world files: %w", err)
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found")
	}
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		if err := runFile(L, fsys, f); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling world: %w", err)
	}

	warnings, err := validate(defs)
	for _, w := range warnings {
		slog.Warn("world validation", "warning", w)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("world loaded",
		"title", defs.Game.Title,
		"files", len(luaFiles),
		"rooms", len(defs.Rooms),
	)
	return defs, nil
}

// runFile executes one Lua chunk, using the file name as the chunk name so
// Lua errors point at the right file.
func runFile(L *lua.LState, fsys fs.FS, name string) error {
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return err
	}
	fn, err := L.Load(strings.NewReader(string(src)), path.Base(name))
	if err != nil {
		return err
	}
	L.Push(fn)
	return L.PCall(0, lua.MultRet, nil)
}

// safeLibs are the only standard libraries a world file can see.
var safeLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

func openSafeLibs(L *lua.LState) {
	for _, lib := range safeLibs {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// sandbox removes globals that reach outside the world files.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring", "require",
		"rawset", "rawget", "rawequal", "collectgarbage",
	} {
		L.SetGlobal(name, lua.LNil)
	}

	// The world is fixed; no randomness.
	if mathTbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		mathTbl.RawSetString("random", lua.LNil)
		mathTbl.RawSetString("randomseed", lua.LNil)
	}
}
