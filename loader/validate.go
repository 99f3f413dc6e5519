package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/meganjourney/engine/state"
	"github.com/nathoo/meganjourney/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled defs for referential integrity and
// consistency. Warnings are returned even when validation passes.
func validate(defs *state.Defs) ([]string, error) {
	ve := &ValidationError{}

	// Game title required.
	if defs.Game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.Title is required")
	}

	// Start room exists.
	if defs.Game.Start == "" {
		ve.Errors = append(ve.Errors, "Game.Start is required")
	} else if _, ok := defs.Rooms[defs.Game.Start]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start room %q not found in defined rooms", defs.Game.Start))
	}

	// Walk rooms in a stable order so messages are deterministic.
	roomIDs := make([]string, 0, len(defs.Rooms))
	for id := range defs.Rooms {
		roomIDs = append(roomIDs, id)
	}
	sort.Strings(roomIDs)

	itemOwner := map[string]string{}
	charOwner := map[string]string{}
	var rewards []*types.Item

	for _, roomID := range roomIDs {
		room := defs.Rooms[roomID]

		if room.ID != roomID {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"room %q is stored under key %q", room.ID, roomID))
		}
		if room.Name == "" {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("room %q has no name", roomID))
		}

		// Exit targets valid.
		for _, dir := range state.ExitDirections(&room) {
			target := room.Exits[dir]
			if _, ok := defs.Rooms[target]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %q exit %q points to undefined room %q", roomID, dir, target))
			}
		}

		// Item keys live in exactly one room.
		for _, it := range room.Items {
			if prev, ok := itemOwner[it.ID]; ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"item %q is placed in both %q and %q", it.ID, prev, roomID))
				continue
			}
			itemOwner[it.ID] = roomID
		}

		// Character keys live in exactly one room.
		for _, c := range room.Characters {
			if prev, ok := charOwner[c.ID]; ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"character %q is placed in both %q and %q", c.ID, prev, roomID))
				continue
			}
			charOwner[c.ID] = roomID
			if c.Encounter != nil && c.Encounter.Reward != nil {
				rewards = append(rewards, c.Encounter.Reward)
			}
		}
	}

	// Rewards must not collide with placed items.
	for _, r := range rewards {
		if room, ok := itemOwner[r.ID]; ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"reward %q collides with the item of the same name in %q", r.ID, room))
			continue
		}
		itemOwner[r.ID] = "(reward)"
	}

	// Conditions and effects reference things that exist.
	for _, roomID := range roomIDs {
		room := defs.Rooms[roomID]
		for _, it := range room.Items {
			validateEffects("item "+it.ID, it.OnTake, ve)
			validateEffects("item "+it.ID, it.OnUse, ve)
		}
		for _, c := range room.Characters {
			where := "character " + c.ID
			validateEffects(where, c.OnTalk, ve)
			if c.Encounter == nil {
				if c.Dialogue["talk"] == "" {
					ve.Warnings = append(ve.Warnings, fmt.Sprintf(
						"%s has neither a talk line nor an encounter", where))
				}
				continue
			}
			validateConditions(where, c.Encounter.Requires, defs, itemOwner, ve)
			validateEffects(where, c.Encounter.OnVictory, ve)
			if len(c.Encounter.Victory) == 0 {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf("%s encounter has no victory lines", where))
			}
		}
	}

	// Warnings: rooms the player can never reach.
	if _, ok := defs.Rooms[defs.Game.Start]; ok {
		reached := reachable(defs, defs.Game.Start)
		for _, roomID := range roomIDs {
			if !reached[roomID] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"room %q is not reachable from %q", roomID, defs.Game.Start))
			}
		}
	}

	if len(ve.Errors) > 0 {
		return ve.Warnings, ve
	}
	return ve.Warnings, nil
}

func validateConditions(where string, conditions []types.Condition, defs *state.Defs, items map[string]string, ve *ValidationError) {
	for _, cond := range conditions {
		switch cond.Kind {
		case types.CondHasItem:
			if _, ok := items[cond.Item]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s: condition has_item references undefined item %q", where, cond.Item))
			}
		case types.CondInRoom:
			if _, ok := defs.Rooms[cond.Room]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s: condition in_room references undefined room %q", where, cond.Room))
			}
		case types.CondFlagSet, types.CondFlagNot:
			if cond.Flag == types.FlagNone {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: flag condition has no flag", where))
			}
		case types.CondPowerAtLeast:
		default:
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: unknown condition kind %d", where, cond.Kind))
		}
	}
}

func validateEffects(where string, effs []types.Effect, ve *ValidationError) {
	for _, eff := range effs {
		switch eff.Kind {
		case types.EffectSay:
			if eff.Text == "" {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf("%s: empty Say effect", where))
			}
		case types.EffectAddPower:
			if eff.Amount == 0 {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf("%s: AddPower(0) has no effect", where))
			}
		case types.EffectSetFlag, types.EffectSetFlagOnce:
			if eff.Flag == types.FlagNone {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: flag effect has no flag", where))
			}
		default:
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: unknown effect kind %d", where, eff.Kind))
		}
	}
}

// reachable returns the set of rooms reachable from start through exits.
func reachable(defs *state.Defs, start string) map[string]bool {
	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, target := range defs.Rooms[id].Exits {
			if _, ok := defs.Rooms[target]; ok && !seen[target] {
				seen[target] = true
				queue = append(queue, target)
			}
		}
	}
	return seen
}
