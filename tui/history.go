// Package tui provides a Bubble Tea terminal UI for Megan's Journey.
package tui

// History remembers submitted commands for Up/Down recall. The line being
// typed when recall starts is kept as a draft and restored when the player
// walks back past the newest entry.
type History struct {
	entries []string
	limit   int
	pos     int // len(entries) while editing a fresh line
	draft   string
}

// NewHistory creates a history keeping at most limit commands.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{limit: limit}
}

// Add records a submitted command and ends any recall in progress.
// A repeat of the newest entry is not stored twice.
func (h *History) Add(cmd string) {
	if n := len(h.entries); n == 0 || h.entries[n-1] != cmd {
		h.entries = append(h.entries, cmd)
		if over := len(h.entries) - h.limit; over > 0 {
			h.entries = append([]string(nil), h.entries[over:]...)
		}
	}
	h.pos = len(h.entries)
	h.draft = ""
}

// Older steps back one entry. current is the text in the input box, saved
// as the draft when recall begins. ok is false when there is nothing older.
func (h *History) Older(current string) (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	if h.pos == len(h.entries) {
		h.draft = current
	}
	h.pos--
	return h.entries[h.pos], true
}

// Newer steps forward one entry, returning the draft once past the newest.
// ok is false when no recall is in progress.
func (h *History) Newer() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return h.draft, true
	}
	return h.entries[h.pos], true
}

// Len reports how many commands are stored.
func (h *History) Len() int {
	return len(h.entries)
}
