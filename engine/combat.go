package engine

import (
	"fmt"

	"github.com/nathoo/meganjourney/engine/effects"
	"github.com/nathoo/meganjourney/engine/events"
	"github.com/nathoo/meganjourney/engine/rules"
	"github.com/nathoo/meganjourney/engine/state"
	"github.com/nathoo/meganjourney/types"
)

// builtinFight resolves a fight against a character in the current room.
// Combat is a single deterministic check: the encounter's requirements either
// hold and the character falls, or they don't and nothing changes.
func (e *Engine) builtinFight(charID string) ([]string, []types.Event) {
	room := state.CurrentRoom(e.State)
	c := state.RoomCharacter(room, charID)
	if c == nil {
		return []string{MsgNoPerson}, nil
	}

	enc := c.Encounter
	if enc == nil {
		return []string{fmt.Sprintf("You can't fight the %s.", c.Name)}, nil
	}

	// Requirements unmet: defeat narration, no penalty. The fight can be
	// retried later.
	if !rules.EvalAllConditions(enc.Requires, e.State) {
		return append([]string{}, enc.Defeat...), nil
	}

	output := append([]string{}, enc.Victory...)
	state.RemoveCharacter(room, c.ID)
	evts := []types.Event{events.New(events.CharacterDefeated, "character", c.ID, "room", room.ID)}

	effEvts, effOut := effects.Apply(e.State, enc.OnVictory, effects.Context{Action: "fight", SourceID: c.ID})
	output = append(output, effOut...)
	evts = append(evts, effEvts...)

	if enc.Reward != nil {
		state.PlaceItem(room, state.CloneItem(enc.Reward))
		evts = append(evts, events.New(events.ItemSpawned, "item", enc.Reward.ID, "room", room.ID))
	}

	return output, evts
}
