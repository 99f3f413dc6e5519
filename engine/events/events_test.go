package events

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/nathoo/meganjourney/types"
)

func TestNew_BuildsData(t *testing.T) {
	e := New(ItemTaken, "item", "sword", "room", "dungeon")

	if e.Type != ItemTaken {
		t.Errorf("Type = %q, want %q", e.Type, ItemTaken)
	}
	if e.Data["item"] != "sword" || e.Data["room"] != "dungeon" {
		t.Errorf("unexpected data: %v", e.Data)
	}
}

func TestNew_IgnoresDanglingKey(t *testing.T) {
	e := New(RoomEntered, "room", "forest", "extra")

	if len(e.Data) != 1 {
		t.Errorf("expected 1 data entry, got %v", e.Data)
	}
}

func TestCount(t *testing.T) {
	evts := []types.Event{
		New(PowerChanged), New(PowerChanged), New(FlagSet),
	}

	counts := Count(evts)
	if counts[PowerChanged] != 2 || counts[FlagSet] != 1 {
		t.Errorf("Count = %v", counts)
	}
	if counts[GameWon] != 0 {
		t.Error("missing types should count zero")
	}
}

func TestLog_WritesSortedAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Log(context.Background(), log, []types.Event{
		New(ItemTaken, "room", "cabin", "item", "journal"),
	})

	out := buf.String()
	if !strings.Contains(out, "type=item_taken") {
		t.Errorf("missing type attribute: %s", out)
	}
	if strings.Index(out, "item=journal") > strings.Index(out, "room=cabin") {
		t.Errorf("attributes not sorted: %s", out)
	}
}

func TestFormat(t *testing.T) {
	got := Format(New(PowerChanged, "source", "crystal", "amount", 2, "power", 3))
	want := "power_changed amount=2 power=3 source=crystal"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
	if Format(New(GameWon)) != "game_won" {
		t.Errorf("Format without data = %q", Format(New(GameWon)))
	}
}
