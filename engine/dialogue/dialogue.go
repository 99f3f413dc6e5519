// Package dialogue implements character conversation lookups.
package dialogue

import "github.com/nathoo/meganjourney/types"

// Talk is the dialogue key used by the "talk" command.
const Talk = "talk"

// SelectLine returns the character's line for the given verb and the effects
// that fire after it. Returns empty text and nil effects if the character
// has nothing to say for that verb.
func SelectLine(c *types.Character, verb string) (string, []types.Effect) {
	if c == nil || c.Dialogue == nil {
		return "", nil
	}
	text, ok := c.Dialogue[verb]
	if !ok || text == "" {
		return "", nil
	}
	if verb == Talk {
		return text, c.OnTalk
	}
	return text, nil
}
