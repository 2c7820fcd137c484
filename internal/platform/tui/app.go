package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hitcircle/internal/config"
	"github.com/vovakirdan/hitcircle/internal/core"
	"github.com/vovakirdan/hitcircle/internal/game"
	"github.com/vovakirdan/hitcircle/internal/storage"
)

// AppOptions configures the full terminal flow.
type AppOptions struct {
	Catalog config.Catalog
	Game    config.GameConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil disables history
	Logger  *log.Logger
	Initial *config.Selection // Skip the menu and start on this selection
}

type appScreen int

const (
	screenMenu appScreen = iota
	screenHistory
	screenPlay
)

// AppModel manages the session flow: menu -> play -> menu, plus history.
// It is the top-level model for both local play and SSH sessions.
type AppModel struct {
	opts     AppOptions
	config   core.RuntimeConfig
	screen   appScreen
	menu     MenuModel
	history  HistoryModel
	play     Model
	err      error
	quitting bool
}

// NewAppModel creates the top-level model.
func NewAppModel(opts AppOptions) AppModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	m := AppModel{
		opts:   opts,
		config: opts.Runtime,
		menu:   NewMenuModel(opts.Catalog, opts.Store, opts.Runtime.ScreenW, opts.Runtime.ScreenH),
	}
	if opts.Initial != nil {
		m.startPlay(*opts.Initial)
	}
	return m
}

// Init starts the tick loop when the app opens straight into a round.
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenPlay {
		return m.play.Init()
	}
	return nil
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.WantsHistory():
		m.history = NewHistoryModel(m.opts.Catalog, m.opts.Store, m.menu.Cursor(), m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		m.resetMenu()
		return m, nil
	case m.menu.Selected() != nil:
		sel := *m.menu.Selected()
		m.resetMenu()
		if !m.startPlay(sel) {
			return m, nil
		}
		return m, m.play.Init()
	}
	return m, cmd
}

func (m AppModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	if h, ok := next.(HistoryModel); ok {
		m.history = h
	}

	switch {
	case m.history.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.history.IsGoingBack():
		m.screen = screenMenu
		m.resetMenu()
	}
	return m, cmd
}

func (m AppModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if play, ok := next.(Model); ok {
		m.play = play
	}

	switch {
	case m.play.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.play.BackToMenu():
		m.screen = screenMenu
		m.resetMenu()
		return m, nil
	}
	return m, cmd
}

// resetMenu rebuilds the menu, keeping the highlighted map and reloading records.
func (m *AppModel) resetMenu() {
	cursor := m.menu.Cursor()
	m.menu = NewMenuModel(m.opts.Catalog, m.opts.Store, m.config.ScreenW, m.config.ScreenH)
	m.menu.cursor = cursor
	m.menu.loadRecords()
}

// startPlay creates a session for sel and switches to the play screen.
func (m *AppModel) startPlay(sel config.Selection) bool {
	runtime := m.config
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}

	opts := []game.Option{game.WithLogger(m.opts.Logger)}
	if m.opts.Store != nil {
		opts = append(opts, game.WithRecorder(m.opts.Store))
	}

	session, err := game.NewSession(sel, m.opts.Game, runtime, opts...)
	if err != nil {
		m.opts.Logger.Error("could not start round", "map", sel.Map.ID, "difficulty", sel.Difficulty.Name, "error", err)
		m.err = err
		return false
	}

	m.err = nil
	m.play = NewModel(session, m.config)
	m.screen = screenPlay
	return true
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenHistory:
		return m.history.View()
	default:
		view := m.menu.View()
		if m.err != nil {
			view += "\n" + colorStyles[core.ColorRed].Render("Error: "+m.err.Error())
		}
		return view
	}
}

// Err returns the last error raised while starting a round.
func (m AppModel) Err() error {
	return m.err
}

// Run starts a Bubble Tea program with the full menu and play flow.
func Run(opts AppOptions) error {
	p := tea.NewProgram(
		NewAppModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
