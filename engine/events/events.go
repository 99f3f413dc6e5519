// Package events records the state changes a turn produced. Events are a
// trace of what happened; nothing reacts to them.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nathoo/meganjourney/types"
)

// Event type names.
const (
	RoomEntered       = "room_entered"
	ItemTaken         = "item_taken"
	ItemUsed          = "item_used"
	PowerChanged      = "power_changed"
	FlagSet           = "flag_set"
	CharacterDefeated = "character_defeated"
	ItemSpawned       = "item_spawned"
	GameWon           = "game_won"
)

// New builds an event from alternating key/value pairs.
func New(eventType string, kv ...any) types.Event {
	data := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			data[k] = kv[i+1]
		}
	}
	return types.Event{Type: eventType, Data: data}
}

// Log writes one debug record per event.
func Log(ctx context.Context, log *slog.Logger, evts []types.Event) {
	for _, e := range evts {
		log.DebugContext(ctx, "event", attrs(e)...)
	}
}

// Count returns how many events of each type are in the list.
func Count(evts []types.Event) map[string]int {
	counts := map[string]int{}
	for _, e := range evts {
		counts[e.Type]++
	}
	return counts
}

// Format renders an event on one line: the type followed by key=value pairs.
func Format(e types.Event) string {
	var b strings.Builder
	b.WriteString(e.Type)
	kv := attrs(e)[2:]
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %s=%v", kv[i], kv[i+1])
	}
	return b.String()
}

// attrs flattens an event into slog key/value pairs in a stable order.
func attrs(e types.Event) []any {
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := []any{"type", e.Type}
	for _, k := range keys {
		out = append(out, k, e.Data[k])
	}
	return out
}
