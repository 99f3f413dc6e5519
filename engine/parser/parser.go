// Package parser converts command strings into Command structs.
// Intentionally dumb: no grammar, just a prefix-keyword table.
package parser

import (
	"strings"

	"github.com/nathoo/meganjourney/types"
)

// Synonyms maps the first word of a multi-word command to its canonical
// action. Words not listed pass through unchanged.
var Synonyms = map[string]string{
	// Movement
	"go":   "move",
	"move": "move",
	"walk": "move",

	// Take
	"take": "take",
	"get":  "take",
	"pick": "take",

	// Use
	"use":      "use",
	"activate": "use",

	// Talk
	"talk":  "talk",
	"speak": "talk",

	// Fight
	"fight":  "fight",
	"attack": "fight",
	"battle": "fight",
}

// Directions maps the single-word direction shortcuts to canonical names.
var Directions = map[string]string{
	"north": "north", "n": "north",
	"south": "south", "s": "south",
	"east": "east", "e": "east",
	"west": "west", "w": "west",
	"up": "up", "u": "up",
	"down": "down", "d": "down",
}

// Parse converts a raw command string into a Command.
// Empty input yields the zero Command.
func Parse(input string) types.Command {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(words) == 0 {
		return types.Command{}
	}
	if len(words) == 1 {
		return types.Command{Action: words[0]}
	}

	target := strings.Join(words[1:], " ")
	action, ok := Synonyms[words[0]]
	if !ok {
		return types.Command{Action: words[0], Target: target}
	}
	if action == "talk" {
		target = stripTo(target)
	}
	return types.Command{Action: action, Target: target}
}

// Tokens returns the command as its token list: [], [action] or
// [action, target].
func Tokens(c types.Command) []string {
	switch {
	case c.Action == "":
		return nil
	case c.Target == "":
		return []string{c.Action}
	default:
		return []string{c.Action, c.Target}
	}
}

// stripTo removes the first occurrence of "to " anywhere in the target,
// so "to wizard" becomes "wizard".
func stripTo(target string) string {
	return strings.Replace(target, "to ", "", 1)
}
