package engine

import (
	"github.com/nathoo/meganjourney/engine/events"
	"github.com/nathoo/meganjourney/engine/rules"
	"github.com/nathoo/meganjourney/types"
)

// WinPower is the amulet power needed to finish the journey.
const WinPower = 8

// winConditions must all hold for the game to be won.
var winConditions = []types.Condition{
	rules.PowerAtLeast(WinPower),
	rules.HasItem("amulet"),
	rules.FlagSet(types.FlagBanditsDefeated),
}

// defaultVictory is shown when the content defines no victory banner.
var defaultVictory = []string{
	"",
	"Congratulations! You have completed your journey!",
}

// Won reports whether the win condition holds. It never mutates state.
func Won(s *types.State) bool {
	return rules.EvalAllConditions(winConditions, s)
}

// checkWin marks the result as won and appends the victory banner.
func (e *Engine) checkWin(result *types.Result) {
	if !Won(e.State) {
		return
	}
	result.Won = true
	banner := e.Defs.Game.Victory
	if len(banner) == 0 {
		banner = defaultVictory
	}
	result.Output = append(result.Output, banner...)
	result.Events = append(result.Events, events.New(events.GameWon,
		"turns", e.State.TurnCount,
		"power", e.State.Game.AmuletPower,
	))
}
