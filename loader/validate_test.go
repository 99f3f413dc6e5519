package loader

import (
	"strings"
	"testing"

	"github.com/nathoo/meganjourney/engine/effects"
	"github.com/nathoo/meganjourney/engine/rules"
	"github.com/nathoo/meganjourney/engine/state"
	"github.com/nathoo/meganjourney/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validDefs returns a minimal valid Defs for testing.
func validDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{
			Title: "Test",
			Start: "hall",
		},
		Rooms: map[string]types.Room{
			"hall": {
				ID:          "hall",
				Name:        "Hall",
				Description: "A hall.",
				Exits:       map[string]string{"east": "den"},
				Items:       []*types.Item{{ID: "coin", Name: "coin", Takeable: true}},
			},
			"den": {
				ID:    "den",
				Name:  "Den",
				Exits: map[string]string{"west": "hall"},
				Characters: []*types.Character{
					{ID: "fox", Name: "fox", Dialogue: map[string]string{"talk": "Yip."}},
				},
			},
		},
	}
}

func validationErrors(t *testing.T, defs *state.Defs) *ValidationError {
	t.Helper()
	_, err := validate(defs)
	require.Error(t, err)
	ve, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	return ve
}

func assertContains(t *testing.T, msgs []string, substr string) {
	t.Helper()
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return
		}
	}
	t.Errorf("expected a message containing %q, got %v", substr, msgs)
}

func TestValidate_ValidDefs(t *testing.T) {
	warnings, err := validate(validDefs())
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidate_MissingStartRoom(t *testing.T) {
	defs := validDefs()
	defs.Game.Start = "nonexistent"

	ve := validationErrors(t, defs)
	assertContains(t, ve.Errors, "start room")
}

func TestValidate_EmptyTitleAndStart(t *testing.T) {
	defs := validDefs()
	defs.Game.Title = ""
	defs.Game.Start = ""

	ve := validationErrors(t, defs)
	assertContains(t, ve.Errors, "Title")
	assertContains(t, ve.Errors, "Game.Start is required")
}

func TestValidate_BadExit(t *testing.T) {
	defs := validDefs()
	defs.Rooms["hall"].Exits["up"] = "attic"

	ve := validationErrors(t, defs)
	assertContains(t, ve.Errors, `exit "up" points to undefined room "attic"`)
}

func TestValidate_ItemInTwoRooms(t *testing.T) {
	defs := validDefs()
	den := defs.Rooms["den"]
	den.Items = []*types.Item{{ID: "coin", Name: "coin"}}
	defs.Rooms["den"] = den

	ve := validationErrors(t, defs)
	assertContains(t, ve.Errors, `item "coin" is placed in both`)
}

func TestValidate_CharacterInTwoRooms(t *testing.T) {
	defs := validDefs()
	hall := defs.Rooms["hall"]
	hall.Characters = []*types.Character{{ID: "fox", Name: "fox", Dialogue: map[string]string{"talk": "Yip."}}}
	defs.Rooms["hall"] = hall

	ve := validationErrors(t, defs)
	assertContains(t, ve.Errors, `character "fox" is placed in both`)
}

func TestValidate_EncounterReferences(t *testing.T) {
	defs := validDefs()
	den := defs.Rooms["den"]
	den.Characters[0].Encounter = &types.Encounter{
		Requires: []types.Condition{rules.HasItem("sword"), rules.InRoom("moon")},
		Victory:  []string{"Won."},
		Reward:   &types.Item{ID: "coin"},
	}
	defs.Rooms["den"] = den

	ve := validationErrors(t, defs)
	assertContains(t, ve.Errors, `undefined item "sword"`)
	assertContains(t, ve.Errors, `undefined room "moon"`)
	assertContains(t, ve.Errors, `reward "coin" collides`)
}

func TestValidate_RewardSatisfiesHasItem(t *testing.T) {
	defs := validDefs()
	den := defs.Rooms["den"]
	den.Characters[0].Encounter = &types.Encounter{
		Requires: []types.Condition{rules.HasItem("crown")},
		Victory:  []string{"Won."},
		Reward:   &types.Item{ID: "crown"},
	}
	defs.Rooms["den"] = den

	_, err := validate(defs)
	assert.NoError(t, err)
}

func TestValidate_FlagEffectWithoutFlag(t *testing.T) {
	defs := validDefs()
	defs.Rooms["hall"].Items[0].OnTake = []types.Effect{effects.SetFlag(types.FlagNone)}

	ve := validationErrors(t, defs)
	assertContains(t, ve.Errors, "flag effect has no flag")
}

func TestValidate_Warnings(t *testing.T) {
	defs := validDefs()
	defs.Rooms["island"] = types.Room{ID: "island"}
	defs.Rooms["hall"].Items[0].OnUse = []types.Effect{effects.AddPower(0)}
	den := defs.Rooms["den"]
	den.Characters = append(den.Characters, &types.Character{ID: "rock", Name: "rock"})
	defs.Rooms["den"] = den

	warnings, err := validate(defs)
	require.NoError(t, err)
	assertContains(t, warnings, `room "island" has no name`)
	assertContains(t, warnings, `room "island" is not reachable`)
	assertContains(t, warnings, "AddPower(0)")
	assertContains(t, warnings, "character rock has neither a talk line nor an encounter")
}

func TestValidationError_Message(t *testing.T) {
	ve := &ValidationError{Errors: []string{"one", "two"}}
	assert.Equal(t, "validation failed with 2 error(s):\n  one\n  two", ve.Error())
}
