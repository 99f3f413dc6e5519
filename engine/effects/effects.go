// Package effects implements centralized state mutation via the Apply function.
// Every effect kind is one atomic operation. No logic in effects.
package effects

import (
	"strings"

	"github.com/nathoo/meganjourney/engine/events"
	"github.com/nathoo/meganjourney/engine/state"
	"github.com/nathoo/meganjourney/types"
)

// Context identifies what triggered the effects, for event data.
type Context struct {
	Action   string
	SourceID string // item or character the effects are attached to
}

// Apply applies a list of effects to the game state, mutating it.
// Returns events emitted and output text collected.
func Apply(s *types.State, effs []types.Effect, ctx Context) ([]types.Event, []string) {
	var evts []types.Event
	var output []string

	for _, eff := range effs {
		switch eff.Kind {
		case types.EffectSay:
			output = append(output, lines(eff.Text)...)

		case types.EffectAddPower:
			s.Game.AmuletPower += eff.Amount
			evts = append(evts, events.New(events.PowerChanged,
				"source", ctx.SourceID,
				"amount", eff.Amount,
				"power", s.Game.AmuletPower,
			))

		case types.EffectSetFlag:
			state.SetFlag(s, eff.Flag, true)
			evts = append(evts, flagEvent(eff.Flag, ctx))

		case types.EffectSetFlagOnce:
			if state.GetFlag(s, eff.Flag) {
				continue
			}
			state.SetFlag(s, eff.Flag, true)
			evts = append(evts, flagEvent(eff.Flag, ctx))
			if eff.Text != "" {
				output = append(output, lines(eff.Text)...)
			}

		default:
			// Unknown effect kind: ignore silently.
		}
	}

	return evts, output
}

// lines splits effect text on newlines so "\nText" renders as a blank line
// followed by Text.
func lines(text string) []string {
	return strings.Split(text, "\n")
}

func flagEvent(f types.Flag, ctx Context) types.Event {
	return events.New(events.FlagSet, "flag", state.FlagName(f), "source", ctx.SourceID)
}

// Say builds an effect that prints a line.
func Say(text string) types.Effect {
	return types.Effect{Kind: types.EffectSay, Text: text}
}

// AddPower builds an effect that raises the amulet power.
func AddPower(n int) types.Effect {
	return types.Effect{Kind: types.EffectAddPower, Amount: n}
}

// SetFlag builds an effect that sets a flag.
func SetFlag(f types.Flag) types.Effect {
	return types.Effect{Kind: types.EffectSetFlag, Flag: f}
}

// SetFlagOnce builds an effect that sets a flag and prints text the first
// time only.
func SetFlagOnce(f types.Flag, text string) types.Effect {
	return types.Effect{Kind: types.EffectSetFlagOnce, Flag: f, Text: text}
}
