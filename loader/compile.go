// Package loader loads Lua world content into Go structs at startup.
// The Lua VM is discarded after loading: zero Lua at runtime.
package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/meganjourney/engine/effects"
	"github.com/nathoo/meganjourney/engine/rules"
	"github.com/nathoo/meganjourney/engine/state"
	"github.com/nathoo/meganjourney/types"
	lua "github.com/yuin/gopher-lua"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// rawRoom holds a room table before compilation.
type rawRoom struct {
	id    string
	table *lua.LTable
}

// rawItem holds an item table before compilation.
type rawItem struct {
	id    string
	table *lua.LTable
}

// rawCharacter holds a character table before compilation.
type rawCharacter struct {
	id    string
	table *lua.LTable
}

// defaultMood is every character's starting mood.
const defaultMood = "neutral"

// normKey lowercases an identifier. Item and character keys are matched
// against lowercased player input, so content keys must be lowercase too.
func normKey(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an integer field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getLines returns a text field as lines. A string is split on newlines;
// an array of strings is taken as-is.
func getLines(tbl *lua.LTable, key string) []string {
	switch v := tbl.RawGetString(key).(type) {
	case lua.LString:
		return strings.Split(string(v), "\n")
	case *lua.LTable:
		var lines []string
		for i := 1; i <= v.MaxN(); i++ {
			if s, ok := v.RawGetInt(i).(lua.LString); ok {
				lines = append(lines, string(s))
			}
		}
		return lines
	default:
		return nil
	}
}

// arrayTables returns the table elements of a Lua array in index order.
func arrayTables(tbl *lua.LTable) []*lua.LTable {
	if tbl == nil {
		return nil
	}
	var out []*lua.LTable
	for i := 1; i <= tbl.MaxN(); i++ {
		if t, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			out = append(out, t)
		}
	}
	return out
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	m := map[string]string{}
	if tbl == nil {
		return m
	}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Rooms: map[string]types.Room{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game = compileGame(coll.game)

	// Rooms first so items and characters can be placed.
	for _, raw := range coll.rooms {
		room := compileRoom(raw)
		if _, dup := defs.Rooms[room.ID]; dup {
			return nil, fmt.Errorf("duplicate room %q", room.ID)
		}
		defs.Rooms[room.ID] = room
	}

	// Items, in declaration order.
	seenItems := map[string]bool{}
	for _, raw := range coll.items {
		item, err := compileItem(normKey(raw.id), raw.table)
		if err != nil {
			return nil, fmt.Errorf("compiling item %s: %w", raw.id, err)
		}
		if seenItems[item.ID] {
			return nil, fmt.Errorf("duplicate item %q", item.ID)
		}
		seenItems[item.ID] = true

		loc := normKey(getString(raw.table, "location"))
		room, ok := defs.Rooms[loc]
		if !ok {
			return nil, fmt.Errorf("item %q: location %q is not a defined room", item.ID, loc)
		}
		room.Items = append(room.Items, item)
		defs.Rooms[loc] = room
	}

	// Characters, in declaration order.
	seenChars := map[string]bool{}
	for _, raw := range coll.characters {
		c, err := compileCharacter(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling character %s: %w", raw.id, err)
		}
		if seenChars[c.ID] {
			return nil, fmt.Errorf("duplicate character %q", c.ID)
		}
		seenChars[c.ID] = true

		loc := normKey(getString(raw.table, "location"))
		room, ok := defs.Rooms[loc]
		if !ok {
			return nil, fmt.Errorf("character %q: location %q is not a defined room", c.ID, loc)
		}
		room.Characters = append(room.Characters, c)
		defs.Rooms[loc] = room
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:    getString(tbl, "title"),
		Author:   getString(tbl, "author"),
		Version:  getString(tbl, "version"),
		Start:    normKey(getString(tbl, "start")),
		Welcome:  getLines(tbl, "welcome"),
		Intro:    getLines(tbl, "intro"),
		Help:     getLines(tbl, "help"),
		Victory:  getLines(tbl, "victory"),
		Farewell: getString(tbl, "farewell"),
	}
}

func compileRoom(raw rawRoom) types.Room {
	tbl := raw.table
	exits, order := compileExits(getTable(tbl, "exits"))
	return types.Room{
		ID:          normKey(raw.id),
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Exits:       exits,
		ExitOrder:   order,
	}
}

// compileExits reads a room's exits. A list of {direction, room} pairs keeps
// its order; a keyed table { north = "hall" } has none, so it yields no
// ExitOrder and the exits list alphabetically.
func compileExits(tbl *lua.LTable) (map[string]string, []string) {
	exits := map[string]string{}
	if tbl == nil {
		return exits, nil
	}
	if tbl.Len() == 0 {
		for dir, target := range tableToStringMap(tbl) {
			exits[normKey(dir)] = normKey(target)
		}
		return exits, nil
	}

	var order []string
	for i := 1; i <= tbl.Len(); i++ {
		pair, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		dir, dok := pair.RawGetInt(1).(lua.LString)
		target, tok := pair.RawGetInt(2).(lua.LString)
		if !dok || !tok {
			continue
		}
		key := normKey(string(dir))
		if _, dup := exits[key]; !dup {
			order = append(order, key)
		}
		exits[key] = normKey(string(target))
	}
	return exits, order
}

// compileItem builds an item from its table. Items are takeable unless the
// table says otherwise, and are named by their key unless given a name.
func compileItem(id string, tbl *lua.LTable) (*types.Item, error) {
	item := &types.Item{
		ID:          id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Takeable:    getBool(tbl, "takeable", true),
		UseText:     getString(tbl, "use_text"),
	}
	if item.Name == "" {
		item.Name = id
	}

	var err error
	if item.OnTake, err = compileEffects(getTable(tbl, "on_take")); err != nil {
		return nil, fmt.Errorf("on_take: %w", err)
	}
	if item.OnUse, err = compileEffects(getTable(tbl, "on_use")); err != nil {
		return nil, fmt.Errorf("on_use: %w", err)
	}
	return item, nil
}

func compileCharacter(raw rawCharacter) (*types.Character, error) {
	tbl := raw.table
	id := normKey(raw.id)
	c := &types.Character{
		ID:          id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Dialogue:    tableToStringMap(getTable(tbl, "dialogue")),
		Mood:        getString(tbl, "mood"),
	}
	if c.Name == "" {
		c.Name = id
	}
	if c.Mood == "" {
		c.Mood = defaultMood
	}

	var err error
	if c.OnTalk, err = compileEffects(getTable(tbl, "on_talk")); err != nil {
		return nil, fmt.Errorf("on_talk: %w", err)
	}
	if encTbl := getTable(tbl, "encounter"); encTbl != nil {
		if c.Encounter, err = compileEncounter(encTbl); err != nil {
			return nil, fmt.Errorf("encounter: %w", err)
		}
	}
	return c, nil
}

func compileEncounter(tbl *lua.LTable) (*types.Encounter, error) {
	enc := &types.Encounter{
		Victory: getLines(tbl, "victory"),
		Defeat:  getLines(tbl, "defeat"),
	}

	var err error
	if enc.Requires, err = compileConditions(getTable(tbl, "requires")); err != nil {
		return nil, fmt.Errorf("requires: %w", err)
	}
	if enc.OnVictory, err = compileEffects(getTable(tbl, "on_victory")); err != nil {
		return nil, fmt.Errorf("on_victory: %w", err)
	}
	if rewardTbl := getTable(tbl, "reward"); rewardTbl != nil {
		id := getString(rewardTbl, "__id")
		if id == "" {
			id = getString(rewardTbl, "id")
		}
		if id == "" {
			return nil, fmt.Errorf("reward has no id")
		}
		if enc.Reward, err = compileItem(normKey(id), rewardTbl); err != nil {
			return nil, fmt.Errorf("reward %s: %w", id, err)
		}
	}
	return enc, nil
}

func compileConditions(tbl *lua.LTable) ([]types.Condition, error) {
	var conditions []types.Condition
	for _, condTbl := range arrayTables(tbl) {
		c, err := compileCondition(condTbl)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, c)
	}
	return conditions, nil
}

func compileCondition(tbl *lua.LTable) (types.Condition, error) {
	switch condType := getString(tbl, "type"); condType {
	case "has_item":
		return rules.HasItem(normKey(getString(tbl, "item"))), nil
	case "flag_set", "flag_not":
		f, err := lookupFlag(getString(tbl, "flag"))
		if err != nil {
			return types.Condition{}, err
		}
		if condType == "flag_set" {
			return rules.FlagSet(f), nil
		}
		return rules.FlagNot(f), nil
	case "power_at_least":
		return rules.PowerAtLeast(getInt(tbl, "amount")), nil
	case "in_room":
		return rules.InRoom(normKey(getString(tbl, "room"))), nil
	default:
		return types.Condition{}, fmt.Errorf("unknown condition type %q", condType)
	}
}

func compileEffects(tbl *lua.LTable) ([]types.Effect, error) {
	var effs []types.Effect
	for _, effTbl := range arrayTables(tbl) {
		eff, err := compileEffect(effTbl)
		if err != nil {
			return nil, err
		}
		effs = append(effs, eff)
	}
	return effs, nil
}

func compileEffect(tbl *lua.LTable) (types.Effect, error) {
	switch effType := getString(tbl, "type"); effType {
	case "say":
		return effects.Say(getString(tbl, "text")), nil
	case "add_power":
		return effects.AddPower(getInt(tbl, "amount")), nil
	case "set_flag", "set_flag_once":
		f, err := lookupFlag(getString(tbl, "flag"))
		if err != nil {
			return types.Effect{}, err
		}
		if effType == "set_flag" {
			return effects.SetFlag(f), nil
		}
		return effects.SetFlagOnce(f, getString(tbl, "text")), nil
	default:
		return types.Effect{}, fmt.Errorf("unknown effect type %q", effType)
	}
}

func lookupFlag(name string) (types.Flag, error) {
	f, ok := state.FlagByName(normKey(name))
	if !ok {
		return types.FlagNone, fmt.Errorf("unknown flag %q", name)
	}
	return f, nil
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
