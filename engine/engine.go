// Package engine provides the Step() orchestrator that wires together
// parsing, action dispatch, effects and the win check into a single turn.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nathoo/meganjourney/engine/dialogue"
	"github.com/nathoo/meganjourney/engine/effects"
	"github.com/nathoo/meganjourney/engine/events"
	"github.com/nathoo/meganjourney/engine/parser"
	"github.com/nathoo/meganjourney/engine/state"
	"github.com/nathoo/meganjourney/logger"
	"github.com/nathoo/meganjourney/types"
)

// Player-facing messages.
const (
	MsgEmpty       = "I don't understand that command."
	MsgUnknown     = "I don't understand that command. Type 'help' for available commands."
	MsgNoExit      = "You can't go that way."
	MsgNoItem      = "That item isn't here."
	MsgNotCarried  = "You don't have that item."
	MsgNoPerson    = "That person isn't here."
	MsgEmptyBag    = "Your inventory is empty."
	MsgUnknownRoom = "You are somewhere unknown."
)

// Closing messages for sessions that end without quit or win.
const (
	MsgGoodbye     = "Goodbye!"
	MsgInterrupted = "Game interrupted. Thank you for playing!"
)

// helpLines is the static command reference.
var helpLines = []string{
	"",
	"--- Commands ---",
	"Movement: north/n, south/s, east/e, west/w, up/u, down/d",
	"Actions: take <item>, use <item>, talk to <person>, fight <person>",
	"Info: look/l, inventory/i, status, help/h",
	"Game: quit/q",
}

// Engine holds the game definitions and mutable state.
type Engine struct {
	Defs   *state.Defs
	State  *types.State
	Logger *slog.Logger
}

// New creates a new engine from definitions.
func New(defs *state.Defs) *Engine {
	return &Engine{
		Defs:   defs,
		State:  state.NewState(defs),
		Logger: slog.Default(),
	}
}

// Opening returns the welcome banner, the intro and the starting room.
func (e *Engine) Opening() []string {
	var output []string
	output = append(output, e.Defs.Game.Welcome...)
	output = append(output, e.Defs.Game.Intro...)
	output = append(output, e.builtinLook()...)
	return output
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	return e.StepContext(context.Background(), input)
}

// StepContext is Step with a context for logging.
func (e *Engine) StepContext(ctx context.Context, input string) types.Result {
	var result types.Result
	log := logger.FromContext(ctx, e.Logger)

	// 1. Parse input.
	cmd := parser.Parse(input)

	// 2. Empty input.
	if cmd.Action == "" {
		result.Output = append(result.Output, MsgEmpty)
		return result
	}

	// 3. Dispatch. Unknown commands leave the state untouched.
	output, evts, handled := e.dispatch(cmd, &result)
	if !handled {
		log.DebugContext(ctx, "command not understood", "tokens", parser.Tokens(cmd))
		result.Output = append(result.Output, MsgUnknown)
		return result
	}
	result.Output = append(result.Output, output...)
	result.Events = append(result.Events, evts...)

	if result.Quit {
		if farewell := e.Defs.Game.Farewell; farewell != "" {
			result.Output = append(result.Output, "", farewell)
		}
		log.InfoContext(ctx, "player quit", "turns", e.State.TurnCount)
		return result
	}

	// 4. Increment turn count.
	e.State.TurnCount++

	// 5. Win check.
	e.checkWin(&result)

	events.Log(ctx, log, result.Events)
	log.DebugContext(ctx, "command processed",
		"action", cmd.Action,
		"target", cmd.Target,
		"room", e.State.Player.Location,
		"power", e.State.Game.AmuletPower,
		"turn", e.State.TurnCount,
	)
	if result.Won {
		log.InfoContext(ctx, "game won", "turns", e.State.TurnCount, "events", events.Count(result.Events))
	}

	return result
}

// dispatch routes a command to its built-in behavior. The bool is false when
// the action/target combination isn't recognized.
func (e *Engine) dispatch(cmd types.Command, result *types.Result) ([]string, []types.Event, bool) {
	// Direction shorthand ignores any target.
	if dir, ok := parser.Directions[cmd.Action]; ok {
		out, evts := e.builtinMove(dir)
		return out, evts, true
	}

	switch cmd.Action {
	case "move", "take", "use", "talk", "fight":
		if cmd.Target == "" {
			return nil, nil, false
		}
	}

	switch cmd.Action {
	case "move":
		out, evts := e.builtinMove(cmd.Target)
		return out, evts, true
	case "take":
		out, evts := e.builtinTake(cmd.Target)
		return out, evts, true
	case "use":
		out, evts := e.builtinUse(cmd.Target)
		return out, evts, true
	case "talk":
		out, evts := e.builtinTalk(cmd.Target)
		return out, evts, true
	case "fight":
		out, evts := e.builtinFight(cmd.Target)
		return out, evts, true
	case "look", "l":
		return e.builtinLook(), nil, true
	case "inventory", "i", "inv":
		return e.builtinInventory(), nil, true
	case "status", "stats":
		return e.builtinStatus(), nil, true
	case "help", "h":
		return e.builtinHelp(), nil, true
	case "quit", "exit", "q":
		result.Quit = true
		return nil, nil, true
	default:
		return nil, nil, false
	}
}

func (e *Engine) builtinMove(direction string) ([]string, []types.Event) {
	room := state.CurrentRoom(e.State)
	target, ok := room.Exits[direction]
	if !ok {
		return []string{MsgNoExit}, nil
	}

	e.State.Player.Location = target
	return []string{"", fmt.Sprintf("You head %s...", direction)},
		[]types.Event{events.New(events.RoomEntered, "room", target, "direction", direction)}
}

func (e *Engine) builtinTake(itemID string) ([]string, []types.Event) {
	room := state.CurrentRoom(e.State)
	item := state.RoomItem(room, itemID)
	if item == nil {
		return []string{MsgNoItem}, nil
	}
	if !item.Takeable {
		return []string{fmt.Sprintf("You can't take the %s.", item.Name)}, nil
	}

	state.TakeItem(e.State, room, itemID)
	output := []string{fmt.Sprintf("You take the %s.", item.Name)}
	evts := []types.Event{events.New(events.ItemTaken, "item", item.ID, "room", room.ID)}

	effEvts, effOut := effects.Apply(e.State, item.OnTake, effects.Context{Action: "take", SourceID: item.ID})
	return append(output, effOut...), append(evts, effEvts...)
}

func (e *Engine) builtinUse(itemID string) ([]string, []types.Event) {
	item := state.InventoryItem(e.State, itemID)
	if item == nil {
		return []string{MsgNotCarried}, nil
	}
	if item.UseText == "" || item.Used {
		return []string{fmt.Sprintf("You can't use the %s right now.", item.Name)}, nil
	}

	item.Used = true
	output := []string{item.UseText}
	evts := []types.Event{events.New(events.ItemUsed, "item", item.ID)}

	effEvts, effOut := effects.Apply(e.State, item.OnUse, effects.Context{Action: "use", SourceID: item.ID})
	return append(output, effOut...), append(evts, effEvts...)
}

func (e *Engine) builtinTalk(charID string) ([]string, []types.Event) {
	room := state.CurrentRoom(e.State)
	c := state.RoomCharacter(room, charID)
	if c == nil {
		return []string{MsgNoPerson}, nil
	}

	text, effs := dialogue.SelectLine(c, dialogue.Talk)
	if text == "" {
		return []string{fmt.Sprintf("The %s doesn't seem interested in talking.", c.Name)}, nil
	}

	evts, effOut := effects.Apply(e.State, effs, effects.Context{Action: "talk", SourceID: c.ID})
	return append([]string{text}, effOut...), evts
}

func (e *Engine) builtinLook() []string {
	room := state.CurrentRoom(e.State)
	if room == nil {
		return []string{MsgUnknownRoom}
	}
	room.Visited = true
	return describeRoom(room)
}

func (e *Engine) builtinInventory() []string {
	inv := e.State.Player.Inventory
	if len(inv) == 0 {
		return []string{MsgEmptyBag}
	}
	names := make([]string, 0, len(inv))
	for _, it := range inv {
		names = append(names, it.Name)
	}
	return []string{"Inventory: " + strings.Join(names, ", ")}
}

func (e *Engine) builtinStatus() []string {
	name := e.State.Player.Location
	if room := state.CurrentRoom(e.State); room != nil && room.Name != "" {
		name = room.Name
	}
	output := []string{
		"",
		"--- Status ---",
		"Location: " + name,
		fmt.Sprintf("Magical Power: %d", e.State.Game.AmuletPower),
	}
	return append(output, e.builtinInventory()...)
}

func (e *Engine) builtinHelp() []string {
	output := append([]string{}, helpLines...)
	return append(output, e.Defs.Game.Help...)
}

// describeRoom produces the standard room description output.
func describeRoom(room *types.Room) []string {
	output := []string{
		"",
		fmt.Sprintf("--- %s ---", room.Name),
		room.Description,
	}

	// List exits.
	if dirs := state.ExitDirections(room); len(dirs) > 0 {
		output = append(output, "", "Exits: "+strings.Join(dirs, ", "))
	}

	// List items, in the order they arrived in the room.
	if len(room.Items) > 0 {
		names := make([]string, 0, len(room.Items))
		for _, it := range room.Items {
			names = append(names, it.Name)
		}
		output = append(output, "Items here: "+strings.Join(names, ", "))
	}

	// List characters.
	if len(room.Characters) > 0 {
		names := make([]string, 0, len(room.Characters))
		for _, c := range room.Characters {
			names = append(names, c.Name)
		}
		output = append(output, "People here: "+strings.Join(names, ", "))
	}

	return output
}
