package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/meganjourney/engine/state"
	"github.com/nathoo/meganjourney/types"
)

// DebugState dumps the mutable state for the /state meta command.
func (e *Engine) DebugState() []string {
	s := e.State

	ids := make([]string, 0, len(s.Player.Inventory))
	for _, it := range s.Player.Inventory {
		ids = append(ids, it.ID)
	}

	flags := make([]string, 0, 5)
	for _, f := range []types.Flag{
		types.FlagHasWeapon, types.FlagHasPotion, types.FlagHasCompanions,
		types.FlagBanditsDefeated, types.FlagMetVee,
	} {
		flags = append(flags, fmt.Sprintf("%s=%t", state.FlagName(f), state.GetFlag(s, f)))
	}

	return []string{
		fmt.Sprintf("Turn: %d", s.TurnCount),
		fmt.Sprintf("Location: %s", state.PlayerLocation(s)),
		fmt.Sprintf("Inventory: [%s]", strings.Join(ids, " ")),
		fmt.Sprintf("Power: %d", s.Game.AmuletPower),
		"Flags: " + strings.Join(flags, " "),
	}
}
