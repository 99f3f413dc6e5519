package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("54")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	styleStatusPower = lipgloss.NewStyle().
				Background(lipgloss.Color("54")).
				Foreground(lipgloss.Color("219")).
				Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("141"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeader = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true)

	styleBanner = lipgloss.NewStyle().
			Foreground(lipgloss.Color("177"))

	styleListLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	styleListNames = lipgloss.NewStyle().
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleMagic = lipgloss.NewStyle().
			Foreground(lipgloss.Color("219")).
			Italic(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("141"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindHeader
	kindBanner
	kindListing
	kindExits
	kindDialogue
	kindMagic
	kindError
	kindSystem
	kindTrace
)

// listingPrefixes label the name lists in room descriptions and inventory.
var listingPrefixes = []string{"Items here: ", "People here: ", "Inventory: "}

// errorPrefixes mark the refusals the engine prints.
var errorPrefixes = []string{
	"You can't",
	"You don't",
	"I don't understand",
	"That item isn't here",
	"That person isn't here",
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "[trace"):
		return kindTrace
	case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		return kindSystem
	case isBanner(trimmed):
		return kindBanner
	case strings.HasPrefix(trimmed, "--- ") && strings.HasSuffix(trimmed, " ---"):
		return kindHeader
	case listingPrefix(trimmed) != "":
		return kindListing
	case strings.HasPrefix(trimmed, "Exits:"):
		return kindExits
	case hasAnyPrefix(trimmed, errorPrefixes):
		return kindError
	case containsQuotedSpeech(trimmed):
		return kindDialogue
	case strings.Contains(trimmed, "power"), strings.Contains(trimmed, "Power"):
		return kindMagic
	default:
		return kindNarration
	}
}

// isBanner reports whether the line is a rule of one repeated character.
func isBanner(line string) bool {
	if len(line) < 3 {
		return false
	}
	return strings.Trim(line, "=") == "" || strings.Trim(line, "*") == ""
}

func listingPrefix(line string) string {
	for _, p := range listingPrefixes {
		if strings.HasPrefix(line, p) {
			return p
		}
	}
	return ""
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// containsQuotedSpeech checks if a line contains dialogue in single quotes.
// Apostrophes inside words ("I've", "Megan's") don't open a quote.
func containsQuotedSpeech(line string) bool {
	runes := []rune(line)
	inQuote := false
	quoteLen := 0
	for i, r := range runes {
		if r != '\'' {
			if inQuote {
				quoteLen++
			}
			continue
		}
		if isLetter(runes, i-1) && isLetter(runes, i+1) {
			if inQuote {
				quoteLen++
			}
			continue
		}
		if inQuote && quoteLen > 5 {
			return true
		}
		inQuote = !inQuote
		quoteLen = 0
	}
	return false
}

func isLetter(runes []rune, i int) bool {
	if i < 0 || i >= len(runes) {
		return false
	}
	r := runes[i]
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// styledListing renders "Items here: a, b" with the names bold.
func styledListing(line string) string {
	prefix := listingPrefix(line)
	if prefix == "" {
		return styleNarration.Render(line)
	}
	return styleListLabel.Render(prefix) + styleListNames.Render(line[len(prefix):])
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindHeader:
		return styleHeader.Render(line)
	case kindBanner:
		return styleBanner.Render(line)
	case kindListing:
		return styledListing(line)
	case kindExits:
		return styleExits.Render(line)
	case kindDialogue:
		return styleDialogue.Render(line)
	case kindMagic:
		return styleMagic.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarration.Render(line)
	}
}
