package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hitcircle/internal/core"
	"github.com/vovakirdan/hitcircle/internal/game"
)

// Model is the Bubble Tea model for one round on a chosen map.
// It forwards latched key state to the session once per tick.
type Model struct {
	session     *game.Session
	screen      *core.Screen
	config      core.RuntimeConfig
	input       *Controller
	title       string
	summary     *game.Summary
	decorations []Decoration
	status      string
	clock       func() time.Time
	quitting    bool
	backToMenu  bool
}

// NewModel creates a play model for session sized to cfg.
func NewModel(session *game.Session, cfg core.RuntimeConfig) Model {
	doubleTap := time.Duration(session.Config().Paddle.DoubleTapMs) * time.Millisecond
	return Model{
		session: session,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		input:   NewController(doubleTap),
		title:   session.Selection().Label(),
		clock:   time.Now,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles incoming messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	actions, isQuit := m.input.HandleKey(msg, m.clock())
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	phase := m.session.Phase()
	switch {
	case phase.Terminal() && hasAction(actions, core.ActionRestart, core.ActionConfirm):
		m.apply(m.session.Restart().Events)
	case hasAction(actions, core.ActionBack) && (phase.Terminal() || phase == game.PhasePaused):
		m.backToMenu = true
	}
	return m, nil
}

// handleTick advances the session by one step.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	res := m.session.Tick(m.input.Frame(t))
	m.apply(res.Events)

	if res.Phase == game.PhaseLost {
		kept := m.decorations[:0]
		for _, d := range m.decorations {
			d.Age++
			if d.Age/3 < m.screen.Height() {
				kept = append(kept, d)
			}
		}
		m.decorations = kept
	}
	return m, tickCmd(m.config.TickRate)
}

// apply folds session events into presentation state.
func (m *Model) apply(events []game.Event) {
	for _, e := range events {
		switch e := e.(type) {
		case game.WinEvent:
			s := e.Summary
			m.summary = &s
		case game.RestartEvent:
			m.summary = nil
			m.decorations = nil
			m.status = ""
			m.input.Reset()
		case game.DecorationEvent:
			m.decorations = append(m.decorations, Decoration{X: e.X})
		}
	}
}

// draw renders the current frame into the screen buffer.
func (m *Model) draw() {
	DrawField(m.screen, FieldView{
		Title:       m.title,
		Snapshot:    m.session.Snapshot(),
		Summary:     m.summary,
		Decorations: m.decorations,
	})
	if m.status != "" {
		m.screen.DrawTextColored(m.screen.Width()-len(m.status), m.screen.Height()-1, m.status, core.ColorGreen)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "screenshot failed"
		return
	}
	dir := filepath.Join(home, ".hitcircle", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = "screenshot failed"
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.session.Selection().Map.ID, m.clock().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed"
		return
	}
	m.status = "saved " + filename
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// Session returns the session being played.
func (m Model) Session() *game.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}
