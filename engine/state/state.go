// Package state manages the mutable game state: the player, the live copy of
// the world and the quest flags.
package state

import (
	"sort"

	"github.com/nathoo/meganjourney/types"
)

// Defs holds the immutable game definitions loaded from content files.
// Every game starts from a fresh copy of these rooms.
type Defs struct {
	Game  types.GameDef
	Rooms map[string]types.Room
}

// flagNames maps the content names of flags to their typed values.
var flagNames = map[string]types.Flag{
	"has_weapon":       types.FlagHasWeapon,
	"has_potion":       types.FlagHasPotion,
	"has_companions":   types.FlagHasCompanions,
	"bandits_defeated": types.FlagBanditsDefeated,
	"met_vee":          types.FlagMetVee,
}

// FlagByName returns the flag with the given content name.
func FlagByName(name string) (types.Flag, bool) {
	f, ok := flagNames[name]
	return f, ok
}

// FlagName returns the content name of a flag, or "" for FlagNone.
func FlagName(f types.Flag) string {
	for name, v := range flagNames {
		if v == f {
			return name
		}
	}
	return ""
}

// NewState creates a fresh game state from definitions. Rooms, items and
// characters are deep-copied so the definitions are never mutated.
func NewState(defs *Defs) *types.State {
	rooms := make(map[string]*types.Room, len(defs.Rooms))
	for id, r := range defs.Rooms {
		rooms[id] = cloneRoom(r)
	}
	return &types.State{
		Player: types.Player{
			Location:  defs.Game.Start,
			Inventory: []*types.Item{},
		},
		Rooms: rooms,
	}
}

// GetFlag returns the value of a flag. FlagNone is always false.
func GetFlag(s *types.State, f types.Flag) bool {
	switch f {
	case types.FlagHasWeapon:
		return s.Game.HasWeapon
	case types.FlagHasPotion:
		return s.Game.HasPotion
	case types.FlagHasCompanions:
		return s.Game.HasCompanions
	case types.FlagBanditsDefeated:
		return s.Game.BanditsDefeated
	case types.FlagMetVee:
		return s.Game.MetVee
	default:
		return false
	}
}

// SetFlag sets a flag. Setting FlagNone is a no-op.
func SetFlag(s *types.State, f types.Flag, value bool) {
	switch f {
	case types.FlagHasWeapon:
		s.Game.HasWeapon = value
	case types.FlagHasPotion:
		s.Game.HasPotion = value
	case types.FlagHasCompanions:
		s.Game.HasCompanions = value
	case types.FlagBanditsDefeated:
		s.Game.BanditsDefeated = value
	case types.FlagMetVee:
		s.Game.MetVee = value
	}
}

// CurrentRoom returns the room the player is standing in.
func CurrentRoom(s *types.State) *types.Room {
	return s.Rooms[s.Player.Location]
}

// PlayerLocation returns the player's current room ID.
func PlayerLocation(s *types.State) string {
	return s.Player.Location
}

// HasItem returns true if the player has the given item in inventory.
func HasItem(s *types.State, itemID string) bool {
	return InventoryItem(s, itemID) != nil
}

// InventoryItem returns the inventory item with the given key, or nil.
func InventoryItem(s *types.State, itemID string) *types.Item {
	for _, it := range s.Player.Inventory {
		if it.ID == itemID {
			return it
		}
	}
	return nil
}

// RoomItem returns the item with the given key in the room, or nil.
func RoomItem(room *types.Room, itemID string) *types.Item {
	for _, it := range room.Items {
		if it.ID == itemID {
			return it
		}
	}
	return nil
}

// TakeItem moves an item from the room into the inventory.
// Returns false if the room doesn't hold it.
func TakeItem(s *types.State, room *types.Room, itemID string) bool {
	for i, it := range room.Items {
		if it.ID == itemID {
			room.Items = append(room.Items[:i:i], room.Items[i+1:]...)
			s.Player.Inventory = append(s.Player.Inventory, it)
			return true
		}
	}
	return false
}

// PlaceItem puts an item into a room, replacing any item with the same key.
func PlaceItem(room *types.Room, item *types.Item) {
	for i, it := range room.Items {
		if it.ID == item.ID {
			room.Items[i] = item
			return
		}
	}
	room.Items = append(room.Items, item)
}

// RoomCharacter returns the character with the given key in the room, or nil.
func RoomCharacter(room *types.Room, charID string) *types.Character {
	for _, c := range room.Characters {
		if c.ID == charID {
			return c
		}
	}
	return nil
}

// RemoveCharacter deletes a character from the room permanently.
func RemoveCharacter(room *types.Room, charID string) {
	for i, c := range room.Characters {
		if c.ID == charID {
			room.Characters = append(room.Characters[:i:i], room.Characters[i+1:]...)
			return
		}
	}
}

// ExitDirections returns the room's exit directions in the order the room
// declares them. Exits missing from ExitOrder follow alphabetically.
func ExitDirections(room *types.Room) []string {
	dirs := make([]string, 0, len(room.Exits))
	listed := make(map[string]bool, len(room.ExitOrder))
	for _, dir := range room.ExitOrder {
		if _, ok := room.Exits[dir]; ok && !listed[dir] {
			listed[dir] = true
			dirs = append(dirs, dir)
		}
	}

	var rest []string
	for dir := range room.Exits {
		if !listed[dir] {
			rest = append(rest, dir)
		}
	}
	sort.Strings(rest)
	return append(dirs, rest...)
}

func cloneRoom(r types.Room) *types.Room {
	out := r
	out.Exits = make(map[string]string, len(r.Exits))
	for dir, target := range r.Exits {
		out.Exits[dir] = target
	}
	out.ExitOrder = append([]string(nil), r.ExitOrder...)
	out.Items = make([]*types.Item, 0, len(r.Items))
	for _, it := range r.Items {
		out.Items = append(out.Items, CloneItem(it))
	}
	out.Characters = make([]*types.Character, 0, len(r.Characters))
	for _, c := range r.Characters {
		cc := *c
		cc.Dialogue = make(map[string]string, len(c.Dialogue))
		for k, v := range c.Dialogue {
			cc.Dialogue[k] = v
		}
		out.Characters = append(out.Characters, &cc)
	}
	return &out
}

// CloneItem returns a copy of an item definition. Effect slices are shared;
// they are never mutated after loading.
func CloneItem(it *types.Item) *types.Item {
	c := *it
	return &c
}
