// Package cli provides the plain line-oriented front end: terminal I/O,
// output formatting and meta-command dispatch.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/meganjourney/engine"
	"github.com/nathoo/meganjourney/engine/events"
	"github.com/nathoo/meganjourney/types"
)

const prompt = "\n> "

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine *engine.Engine
	In     io.Reader
	Out    io.Writer
	Trace  bool

	// EchoInput prints each command after the prompt, for script playback
	// where the input isn't typed on the terminal.
	EchoInput bool

	lastCmd string
}

// New creates a CLI on stdin and stdout.
func New(eng *engine.Engine) *CLI {
	return &CLI{Engine: eng, In: os.Stdin, Out: os.Stdout}
}

// Run plays the opening and then one command per input line until the
// player quits or wins, input runs out, or ctx is cancelled.
func (c *CLI) Run(ctx context.Context) {
	c.printLines(c.Engine.Opening())

	// Cancelled on return so the reader never blocks on an unread line.
	readCtx, stop := context.WithCancel(ctx)
	defer stop()
	lines := readLines(readCtx, c.In)
	for {
		fmt.Fprint(c.Out, prompt)

		select {
		case <-ctx.Done():
			c.farewell(engine.MsgInterrupted)
			return
		case line, ok := <-lines:
			if !ok {
				c.farewell(engine.MsgGoodbye)
				return
			}
			if c.handleLine(ctx, strings.TrimSpace(line)) {
				return
			}
		}
	}
}

// farewell ends the prompt line, then prints a blank line and msg.
func (c *CLI) farewell(msg string) {
	c.printLines([]string{"", "", msg})
}

// handleLine runs one input line and reports whether the session is over.
// Blank lines and "#" comments are skipped.
func (c *CLI) handleLine(ctx context.Context, input string) bool {
	if input == "" || strings.HasPrefix(input, "#") {
		return false
	}
	if c.EchoInput {
		fmt.Fprintln(c.Out, input)
	}
	if strings.HasPrefix(input, "/") {
		return c.handleMeta(ctx, input)
	}

	switch strings.ToLower(input) {
	case "again", "g":
		if c.lastCmd == "" {
			fmt.Fprintln(c.Out, "Nothing to repeat.")
			return false
		}
		input = c.lastCmd
	default:
		c.lastCmd = input
	}

	result := c.Engine.StepContext(ctx, input)
	c.printLines(result.Output)
	if c.Trace {
		c.printTrace(result)
	}
	return result.Quit || result.Won
}

// readLines feeds lines from r into a channel that is closed at end of
// input. The reader stops sending once ctx is done.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case out <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

var metaHelp = []string{
	"System:",
	"  /quit         Exit game",
	"  /help         Show this help",
	"  /state        Debug: dump current state",
	"  /trace        Toggle event trace output",
	"  again (g)     Repeat your last command",
	"",
	"Type 'help' for the game commands.",
}

// handleMeta runs a slash command and reports whether the session is over.
func (c *CLI) handleMeta(ctx context.Context, input string) bool {
	name := strings.Fields(input)[0]

	switch name {
	case "/quit", "/exit":
		c.printLines(c.Engine.StepContext(ctx, "quit").Output)
		return true
	case "/help":
		c.printLines(metaHelp)
	case "/state":
		for _, line := range c.Engine.DebugState() {
			c.printSystem(line)
		}
	case "/trace":
		c.Trace = !c.Trace
		state := "disabled"
		if c.Trace {
			state = "enabled"
		}
		c.printSystem("Trace output " + state + ".")
	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", name))
	}
	return false
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) == 0 {
		return
	}
	c.printSystem(fmt.Sprintf("trace: %d event(s)", len(result.Events)))
	for _, e := range result.Events {
		c.printSystem("trace:   " + events.Format(e))
	}
}

func (c *CLI) printLines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(c.Out, line)
	}
}

// printSystem prints a bracketed out-of-game message.
func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
