// Package rules evaluates typed conditions against the game state.
package rules

import (
	"github.com/nathoo/meganjourney/engine/state"
	"github.com/nathoo/meganjourney/types"
)

// EvalCondition evaluates a single condition against the current state.
func EvalCondition(c types.Condition, s *types.State) bool {
	switch c.Kind {
	case types.CondHasItem:
		return state.HasItem(s, c.Item)

	case types.CondFlagSet:
		return state.GetFlag(s, c.Flag)

	case types.CondFlagNot:
		return !state.GetFlag(s, c.Flag)

	case types.CondPowerAtLeast:
		return s.Game.AmuletPower >= c.Amount

	case types.CondInRoom:
		return state.PlayerLocation(s) == c.Room

	default:
		return false
	}
}

// EvalAllConditions returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvalAllConditions(conditions []types.Condition, s *types.State) bool {
	for _, c := range conditions {
		if !EvalCondition(c, s) {
			return false
		}
	}
	return true
}

// HasItem builds a condition that the player carries the item.
func HasItem(itemID string) types.Condition {
	return types.Condition{Kind: types.CondHasItem, Item: itemID}
}

// FlagSet builds a condition that the flag is true.
func FlagSet(f types.Flag) types.Condition {
	return types.Condition{Kind: types.CondFlagSet, Flag: f}
}

// FlagNot builds a condition that the flag is false.
func FlagNot(f types.Flag) types.Condition {
	return types.Condition{Kind: types.CondFlagNot, Flag: f}
}

// PowerAtLeast builds a condition on the amulet power counter.
func PowerAtLeast(n int) types.Condition {
	return types.Condition{Kind: types.CondPowerAtLeast, Amount: n}
}

// InRoom builds a condition on the player's location.
func InRoom(roomID string) types.Condition {
	return types.Condition{Kind: types.CondInRoom, Room: roomID}
}
