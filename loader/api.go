package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerEffectHelpers(L)
}

// curried returns a Lua function for the `Name "id" { ... }` form:
// Name("id") returns a function that takes the definition table.
func curried(L *lua.LState, add func(id string, tbl *lua.LTable)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			add(id, L.CheckTable(1))
			return 0
		}))
		return 1
	})
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	L.SetGlobal("Room", curried(L, func(id string, tbl *lua.LTable) {
		coll.rooms = append(coll.rooms, rawRoom{id: id, table: tbl})
	}))

	L.SetGlobal("Item", curried(L, func(id string, tbl *lua.LTable) {
		coll.items = append(coll.items, rawItem{id: id, table: tbl})
	}))

	L.SetGlobal("Character", curried(L, func(id string, tbl *lua.LTable) {
		coll.characters = append(coll.characters, rawCharacter{id: id, table: tbl})
	}))

	// Encounter { requires = {...}, victory = {...}, ... }: pass-through,
	// tagged so compile can tell it apart from a plain table.
	L.SetGlobal("Encounter", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		tbl.RawSetString("__kind", lua.LString("encounter"))
		L.Push(tbl)
		return 1
	}))

	// Reward "id" { ... }: an item that doesn't exist until an encounter
	// is won. Returns the table with its id attached.
	L.SetGlobal("Reward", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			tbl.RawSetString("__id", lua.LString(id))
			L.Push(tbl)
			return 1
		}))
		return 1
	}))
}

// tagged builds a helper table { type = kind, key = value, ... }.
func tagged(L *lua.LState, kind string, kv ...any) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("type", lua.LString(kind))
	for i := 0; i+1 < len(kv); i += 2 {
		key := kv[i].(string)
		switch v := kv[i+1].(type) {
		case string:
			tbl.RawSetString(key, lua.LString(v))
		case lua.LNumber:
			tbl.RawSetString(key, v)
		}
	}
	return tbl
}

func registerConditionHelpers(L *lua.LState) {
	// HasItem("key")
	L.SetGlobal("HasItem", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "has_item", "item", L.CheckString(1)))
		return 1
	}))

	// FlagSet("flag")
	L.SetGlobal("FlagSet", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "flag_set", "flag", L.CheckString(1)))
		return 1
	}))

	// FlagNot("flag")
	L.SetGlobal("FlagNot", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "flag_not", "flag", L.CheckString(1)))
		return 1
	}))

	// PowerAtLeast(n)
	L.SetGlobal("PowerAtLeast", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "power_at_least", "amount", L.CheckNumber(1)))
		return 1
	}))

	// InRoom("room_id")
	L.SetGlobal("InRoom", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "in_room", "room", L.CheckString(1)))
		return 1
	}))
}

func registerEffectHelpers(L *lua.LState) {
	// Say("text")
	L.SetGlobal("Say", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "say", "text", L.CheckString(1)))
		return 1
	}))

	// AddPower(n)
	L.SetGlobal("AddPower", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "add_power", "amount", L.CheckNumber(1)))
		return 1
	}))

	// SetFlag("flag")
	L.SetGlobal("SetFlag", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "set_flag", "flag", L.CheckString(1)))
		return 1
	}))

	// SetFlagOnce("flag", "text")
	L.SetGlobal("SetFlagOnce", L.NewFunction(func(L *lua.LState) int {
		L.Push(tagged(L, "set_flag_once", "flag", L.CheckString(1), "text", L.OptString(2, "")))
		return 1
	}))
}
