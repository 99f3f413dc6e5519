package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/meganjourney/engine"
	"github.com/nathoo/meganjourney/engine/events"
	"github.com/nathoo/meganjourney/types"
)

// entry is one unstyled transcript line. Styling happens at render time so
// the whole transcript can be re-wrapped when the terminal is resized.
type entry struct {
	text   string
	kind   lineKind
	echo   bool // the player's own command
	system bool // meta-command output
}

type keyMap struct {
	Interrupt key.Binding
	Submit    key.Binding
	Older     key.Binding
	Newer     key.Binding
	Scroll    key.Binding
}

var keys = keyMap{
	Interrupt: key.NewBinding(key.WithKeys("ctrl+c")),
	Submit:    key.NewBinding(key.WithKeys("enter")),
	Older:     key.NewBinding(key.WithKeys("up")),
	Newer:     key.NewBinding(key.WithKeys("down")),
	Scroll:    key.NewBinding(key.WithKeys("pgup", "pgdown", "ctrl+u", "ctrl+d")),
}

// Model is the Bubble Tea model for the game screen.
type Model struct {
	ctx    context.Context
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History

	transcript []entry

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string

	// closing holds the lines to print once the alt screen is gone.
	closing []string
}

// turnMsg delivers engine output to Update.
type turnMsg struct {
	echo   string
	lines  []string
	system bool
}

// New creates a TUI model wired to the given engine.
func New(ctx context.Context, eng *engine.Engine) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.PromptStyle = styleInputPrompt
	in.Placeholder = "north, take mushroom, talk to fairy..."
	in.CharLimit = 200
	in.Focus()

	return Model{
		ctx:     ctx,
		engine:  eng,
		input:   in,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program and blocks until the session ends.
// It returns the lines the caller should print after the screen is
// restored: the farewell, the victory banner or the interrupt notice.
func Run(ctx context.Context, eng *engine.Engine, trace bool) ([]string, error) {
	m := New(ctx, eng)
	m.trace = trace

	final, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	).Run()
	switch {
	case errors.Is(err, tea.ErrProgramKilled):
		return []string{"", engine.MsgInterrupted}, nil
	case err != nil:
		return nil, fmt.Errorf("running terminal UI: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.closing, nil
	}
	return nil, nil
}

// Init starts the cursor blinking and shows the opening. The opening is
// rendered here, not inside the command, so the engine is only touched
// from the update loop.
func (m Model) Init() tea.Cmd {
	opening := m.engine.Opening()
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return turnMsg{lines: opening}
	})
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if next, cmd, done := m.handleKey(msg); done {
			return next, cmd
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case turnMsg:
		m = m.record(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// resize lays out the viewport above the status bar and input line.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	vpHeight := max(height-2, 1)

	if m.ready {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	} else {
		m.viewport = viewport.New(width, vpHeight)
		m.viewport.KeyMap = viewportKeyMap()
		m.ready = true
	}
	m.render()
}

// handleKey reacts to the game's own bindings. done is false for keys that
// belong to the text input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Interrupt):
		m.closing = []string{"", engine.MsgInterrupted}
		m.quitting = true
		return m, tea.Quit, true

	case key.Matches(msg, keys.Submit):
		next, cmd := m.submit()
		return next, cmd, true

	case key.Matches(msg, keys.Older):
		if cmd, ok := m.history.Older(m.input.Value()); ok {
			m.setInput(cmd)
		}
		return m, nil, true

	case key.Matches(msg, keys.Newer):
		if cmd, ok := m.history.Newer(); ok {
			m.setInput(cmd)
		}
		return m, nil, true

	case key.Matches(msg, keys.Scroll):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

func (m *Model) setInput(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

// submit runs the line in the input box.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}
	m.history.Add(line)

	if strings.HasPrefix(line, "/") {
		out, result := m.handleMeta(line)
		m = m.record(turnMsg{echo: line, lines: out, system: result == nil})
		if result == nil {
			return m, nil
		}
		return m.finish(*result)
	}

	switch strings.ToLower(line) {
	case "again", "g":
		if m.lastCmd == "" {
			return m.record(turnMsg{echo: line, lines: []string{"Nothing to repeat."}, system: true}), nil
		}
		line = m.lastCmd
	default:
		m.lastCmd = line
	}

	result := m.engine.StepContext(m.ctx, line)
	out := result.Output
	if m.trace {
		out = append(out, formatTrace(result)...)
	}
	m = m.record(turnMsg{echo: line, lines: out})
	return m.finish(result)
}

// finish ends the program when the turn quit or won the game.
func (m Model) finish(result types.Result) (tea.Model, tea.Cmd) {
	if !result.Quit && !result.Won {
		return m, nil
	}
	m.closing = result.Output
	m.quitting = true
	return m, tea.Quit
}

// record appends a turn to the transcript, followed by a blank separator.
func (m Model) record(msg turnMsg) Model {
	if msg.echo != "" {
		m.transcript = append(m.transcript, entry{text: "> " + msg.echo, echo: true})
	}
	for _, line := range msg.lines {
		for _, part := range strings.Split(line, "\n") {
			e := entry{text: part, system: msg.system}
			if !msg.system {
				e.kind = classifyLine(part)
			}
			m.transcript = append(m.transcript, e)
		}
	}
	m.transcript = append(m.transcript, entry{})
	m.render()
	return m
}

// render wraps and styles the transcript at the current width and scrolls
// to the newest line.
func (m *Model) render() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)

	out := make([]string, len(m.transcript))
	for i, e := range m.transcript {
		if e.text == "" {
			continue
		}
		wrapped := wordWrap(e.text, width)
		switch {
		case e.echo:
			out[i] = stylePlayerInput.Render(wrapped)
		case e.system:
			out[i] = styledSystemMsg(wrapped)
		default:
			out[i] = renderLineKind(wrapped, e.kind)
		}
	}
	m.viewport.SetContent(strings.Join(out, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap breaks text at spaces so no line exceeds width runes.
// Words longer than the width are left whole.
func wordWrap(text string, width int) string {
	if width <= 0 || len([]rune(text)) <= width {
		return text
	}

	var b strings.Builder
	col := 0
	for i, word := range strings.Fields(text) {
		n := len([]rune(word))
		switch {
		case i == 0:
		case col+1+n > width:
			b.WriteByte('\n')
			col = 0
		default:
			b.WriteByte(' ')
			col++
		}
		b.WriteString(word)
		col += n
	}
	return b.String()
}

// View renders the viewport, status bar and input.
func (m Model) View() string {
	switch {
	case m.quitting:
		return ""
	case !m.ready:
		return "Loading..."
	}
	return strings.Join([]string{m.viewport.View(), m.renderStatusBar(), m.input.View()}, "\n")
}

// handleMeta dispatches meta-commands. A non-nil result means the command
// played a game turn whose outcome must be checked.
func (m *Model) handleMeta(line string) ([]string, *types.Result) {
	name := strings.Fields(line)[0]

	switch name {
	case "/quit", "/exit":
		result := m.engine.StepContext(m.ctx, "quit")
		return result.Output, &result
	case "/help":
		return metaHelp, nil
	case "/state":
		return m.engine.DebugState(), nil
	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, nil
		}
		return []string{"Trace output disabled."}, nil
	}
	return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", name)}, nil
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
	"PgUp/PgDn or the mouse wheel scroll. Up/Down recall earlier commands.",
}

func formatTrace(result types.Result) []string {
	if len(result.Events) == 0 {
		return nil
	}
	lines := make([]string, 0, len(result.Events)+1)
	lines = append(lines, fmt.Sprintf("[trace] %d event(s)", len(result.Events)))
	for _, e := range result.Events {
		lines = append(lines, "[trace]   "+events.Format(e))
	}
	return lines
}

// viewportKeyMap leaves Up/Down to command history.
func viewportKeyMap() viewport.KeyMap {
	km := viewport.DefaultKeyMap()
	km.Up = key.NewBinding(key.WithDisabled())
	km.Down = key.NewBinding(key.WithDisabled())
	km.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	km.PageUp = key.NewBinding(key.WithKeys("pgup"))
	km.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	km.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))
	return km
}
