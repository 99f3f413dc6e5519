// Megan's Journey is a text adventure played in the terminal.
// Usage: journey [--version] [--plain] [--trace] [--script <file>] [--world <dir>]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/nathoo/meganjourney/cli"
	"github.com/nathoo/meganjourney/config"
	"github.com/nathoo/meganjourney/engine"
	"github.com/nathoo/meganjourney/engine/state"
	"github.com/nathoo/meganjourney/loader"
	"github.com/nathoo/meganjourney/logger"
	"github.com/nathoo/meganjourney/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: journey [--version] [--plain] [--trace] [--script <file>] [--world <dir>]"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("journey %s (commit %s, built %s)\n", version, commit, date)
			return nil
		case "--plain":
			cfg.Plain = true
		case "--trace":
			cfg.Trace = true
		case "--script", "--world":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a path\n%s", args[i], usage)
			}
			if args[i] == "--script" {
				cfg.ScriptFile = args[i+1]
			} else {
				cfg.WorldDir = args[i+1]
			}
			i++
		default:
			return fmt.Errorf("unknown argument %q\n%s", args[i], usage)
		}
	}

	interactive := cfg.ScriptFile == "" && !cfg.Plain && isTerminal()

	log, closeLog, err := initLogger(cfg, interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logger.WithSessionID(ctx, logger.GenerateSessionID())

	defs, err := loadWorld(cfg.WorldDir)
	if err != nil {
		return fmt.Errorf("loading game: %w", err)
	}
	logger.FromContext(ctx, log).InfoContext(ctx, "session started",
		"title", defs.Game.Title, "rooms", len(defs.Rooms), "interactive", interactive)

	eng := engine.New(defs)
	eng.Logger = log

	if interactive {
		closing, err := tui.Run(ctx, eng, cfg.Trace)
		if err != nil {
			return err
		}
		for _, line := range closing {
			fmt.Println(line)
		}
		return nil
	}

	c := cli.New(eng)
	c.Trace = cfg.Trace
	if cfg.ScriptFile != "" {
		f, err := os.Open(cfg.ScriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		c.In = f
		c.EchoInput = true
	}
	c.Run(ctx)
	return nil
}

func loadWorld(dir string) (*state.Defs, error) {
	if dir == "" {
		return loader.LoadDefault()
	}
	return loader.Load(dir)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
