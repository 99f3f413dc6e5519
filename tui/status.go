package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/meganjourney/engine/state"
)

// roomDisplayName derives a human-readable name from a room ID.
// "ancient_dungeon" -> "Ancient Dungeon".
func roomDisplayName(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

// renderStatusBar produces a full-width status line showing the current
// room, magical power, inventory and turn count.
func (m Model) renderStatusBar() string {
	s := m.engine.State

	name := roomDisplayName(s.Player.Location)
	if room := state.CurrentRoom(s); room != nil && room.Name != "" {
		name = room.Name
	}

	left := fmt.Sprintf(" %s | ", name)
	power := fmt.Sprintf("Power: %d", s.Game.AmuletPower)
	right := fmt.Sprintf("T:%d ", s.TurnCount)

	// Show item names if they fit, otherwise just the count.
	if inv := s.Player.Inventory; len(inv) > 0 {
		names := make([]string, 0, len(inv))
		for _, it := range inv {
			names = append(names, it.Name)
		}
		candidate := fmt.Sprintf("Bag: %s | T:%d ", strings.Join(names, ", "), s.TurnCount)
		if lipgloss.Width(left)+lipgloss.Width(power)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Bag: %d | T:%d ", len(inv), s.TurnCount)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(power) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return styleStatusBar.Render(left) +
		styleStatusPower.Render(power) +
		styleStatusBar.Render(strings.Repeat(" ", gap)+right)
}
