package cli

import (
	"bytes"
	"context"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/nathoo/meganjourney/engine"
	"github.com/nathoo/meganjourney/engine/effects"
	"github.com/nathoo/meganjourney/engine/state"
	"github.com/nathoo/meganjourney/types"
)

// testDefs returns minimal game definitions for CLI testing.
func testDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{
			Title:    "Test Game",
			Author:   "Test",
			Version:  "1.0",
			Start:    "hall",
			Welcome:  []string{"=== Test Game ==="},
			Intro:    []string{"Welcome to the test."},
			Victory:  []string{"", "Victory!"},
			Farewell: "Thanks for testing.",
		},
		Rooms: map[string]types.Room{
			"hall": {
				ID:          "hall",
				Name:        "Hall",
				Description: "A grand hall.",
				Exits:       map[string]string{"north": "garden"},
				Items: []*types.Item{
					{ID: "key", Name: "key", Takeable: true},
				},
			},
			"garden": {
				ID:          "garden",
				Name:        "Garden",
				Description: "A peaceful garden.",
				Exits:       map[string]string{"south": "hall"},
			},
		},
	}
}

func newTestCLI(input string) (*CLI, *bytes.Buffer) {
	eng := engine.New(testDefs())
	var out bytes.Buffer
	c := &CLI{
		Engine: eng,
		In:     strings.NewReader(input),
		Out:    &out,
	}
	return c, &out
}

func TestCLI_OpeningAndStartingRoom(t *testing.T) {
	c, out := newTestCLI("quit\n")
	c.Run(context.Background())

	output := out.String()
	for _, want := range []string{"=== Test Game ===", "Welcome to the test.", "--- Hall ---", "A grand hall."} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestCLI_Quit(t *testing.T) {
	c, out := newTestCLI("quit\nlook\n")
	c.Run(context.Background())

	output := out.String()
	if !strings.HasSuffix(output, "> \nThanks for testing.\n") {
		t.Errorf("expected farewell at the end, got:\n%s", output)
	}
	if strings.Count(output, "--- Hall ---") != 1 {
		t.Error("commands after quit should not run")
	}
}

func TestCLI_EndOfInput(t *testing.T) {
	c, out := newTestCLI("look\n")
	c.Run(context.Background())

	if !strings.HasSuffix(out.String(), "> \n\n"+engine.MsgGoodbye+"\n") {
		t.Errorf("expected goodbye on EOF, got:\n%s", out.String())
	}
}

func TestCLI_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	c := &CLI{Engine: engine.New(testDefs()), In: pr, Out: &out}
	c.Run(ctx)

	if !strings.Contains(out.String(), engine.MsgInterrupted) {
		t.Errorf("expected interrupt message, got:\n%s", out.String())
	}
}

func TestCLI_Navigation(t *testing.T) {
	c, out := newTestCLI("north\nlook\n")
	c.Run(context.Background())

	output := out.String()
	if !strings.Contains(output, "You head north...") {
		t.Error("expected move message")
	}
	if !strings.Contains(output, "A peaceful garden.") {
		t.Error("expected garden description after look")
	}
}

func TestCLI_StopsOnWin(t *testing.T) {
	defs := testDefs()
	hall := defs.Rooms["hall"]
	hall.Items = append(hall.Items, &types.Item{
		ID: "amulet", Name: "amulet", Takeable: true, UseText: "It glows.",
		OnUse: []types.Effect{effects.AddPower(engine.WinPower), effects.SetFlag(types.FlagBanditsDefeated)},
	})
	defs.Rooms["hall"] = hall

	var out bytes.Buffer
	c := &CLI{
		Engine: engine.New(defs),
		In:     strings.NewReader("take amulet\nuse amulet\nlook\n"),
		Out:    &out,
	}
	c.Run(context.Background())

	output := out.String()
	if !strings.HasSuffix(output, "Victory!\n") {
		t.Errorf("expected the game to end on the victory banner, got:\n%s", output)
	}
	if strings.Contains(output, engine.MsgGoodbye) {
		t.Error("a won game should not print the EOF goodbye")
	}
}

func TestCLI_EmptyAndCommentLines(t *testing.T) {
	c, out := newTestCLI("\n   \n# a comment\nlook\n")
	c.Run(context.Background())

	output := out.String()
	if strings.Contains(output, "I don't understand") {
		t.Errorf("blank and comment lines should be skipped, got:\n%s", output)
	}
	if c.Engine.State.TurnCount != 1 {
		t.Errorf("TurnCount = %d, want 1", c.Engine.State.TurnCount)
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI("look\n")
	c.EchoInput = true
	c.Run(context.Background())

	if !strings.Contains(out.String(), "> look\n") {
		t.Errorf("expected echoed input, got:\n%s", out.String())
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI("/help\nhelp\n")
	c.Run(context.Background())

	output := out.String()
	if !strings.Contains(output, "/state") {
		t.Error("expected meta help")
	}
	if !strings.Contains(output, "--- Commands ---") {
		t.Error("expected game help")
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI("/save\n")
	c.Run(context.Background())

	if !strings.Contains(out.String(), "[Unknown command: /save.") {
		t.Errorf("expected unknown meta command message, got:\n%s", out.String())
	}
}

func TestCLI_MetaQuit(t *testing.T) {
	c, out := newTestCLI("/quit\nlook\n")
	c.Run(context.Background())

	if !strings.Contains(out.String(), "Thanks for testing.") {
		t.Error("expected farewell from /quit")
	}
	if strings.Contains(out.String(), engine.MsgGoodbye) {
		t.Error("/quit should not fall through to end of input")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI("/trace\ntake key\n/trace\nnorth\n")
	c.Run(context.Background())

	output := out.String()
	if !strings.Contains(output, "[Trace output enabled.]") || !strings.Contains(output, "[Trace output disabled.]") {
		t.Error("expected trace toggle messages")
	}
	if !strings.Contains(output, "[trace:   item_taken item=key room=hall]") {
		t.Errorf("expected item_taken trace, got:\n%s", output)
	}
	if strings.Contains(output, "room_entered") {
		t.Error("trace should be off for the move")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI("take key\n/state\n")
	c.Run(context.Background())

	output := out.String()
	for _, want := range []string{"[Turn: 1]", "[Location: hall]", "[Inventory: [key]]", "[Power: 0]", "met_vee=false"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in state dump:\n%s", want, output)
		}
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI("north\nlook\nagain\n")
	c.Run(context.Background())

	if n := strings.Count(out.String(), "A peaceful garden."); n != 2 {
		t.Errorf("expected 'again' to repeat look (2 descriptions, got %d):\n%s", n, out.String())
	}
	if c.Engine.State.TurnCount != 3 {
		t.Errorf("TurnCount = %d, want 3", c.Engine.State.TurnCount)
	}
}

func TestCLI_G_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI("take key\ng\n")
	c.Run(context.Background())

	if !strings.Contains(out.String(), "That item isn't here.") {
		t.Errorf("expected repeated take to fail, got:\n%s", out.String())
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI("again\n")
	c.Run(context.Background())

	if !strings.Contains(out.String(), "Nothing to repeat.") {
		t.Error("expected 'Nothing to repeat.'")
	}
}

func TestCLI_ReaderStopsAfterQuit(t *testing.T) {
	before := runtime.NumGoroutine()

	c, _ := newTestCLI("quit\nlook\nlook\n")
	c.Run(context.Background())

	deadline := time.Now().Add(time.Second)
	for runtime.NumGoroutine() > before {
		if time.Now().After(deadline) {
			t.Fatalf("input reader still running: %d goroutines, want <= %d", runtime.NumGoroutine(), before)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestReadLines_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	lines := readLines(ctx, strings.NewReader("a\nb\nc\n"))

	if got := <-lines; got != "a" {
		t.Fatalf("first line = %q, want a", got)
	}
	cancel()

	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("line channel not closed after cancel")
		}
	}
}
