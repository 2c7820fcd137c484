package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/hitcircle/internal/config"
	"github.com/vovakirdan/hitcircle/internal/storage"
)

// History board layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the map list sidebar
	sidebarWidth       = 24  // Width of map list sidebar
	maxHistory         = 100 // Max results to load
)

// HistoryKeyMap defines the key bindings for the history board.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextMap key.Binding
	PrevMap key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMap, k.PrevMap, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMap, k.PrevMap},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMap: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next map"),
		),
		PrevMap: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev map"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel lists recorded clears for one map at a time, newest first.
type HistoryModel struct {
	maps        []config.MapConfig
	cursor      int
	store       *storage.Store
	results     []storage.Result
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	now         func() time.Time
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a history board starting at map index cursor.
func NewHistoryModel(catalog config.Catalog, store *storage.Store, cursor, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		maps:        catalog.Maps,
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		now:         time.Now,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	if cursor >= 0 && cursor < len(m.maps) {
		m.cursor = cursor
	}

	m.table = m.createTable()
	m.loadResults()
	return m
}

// createTable creates a new table sized to the current window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 16},
		{Title: "Difficulty", Width: 10},
		{Title: "Score", Width: 10},
		{Title: "Acc", Width: 7},
		{Title: "Rank", Width: 4},
		{Title: "Time", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadResults loads history for the selected map.
func (m *HistoryModel) loadResults() {
	m.results = nil
	if m.store != nil && len(m.maps) > 0 {
		if results, err := m.store.History(m.maps[m.cursor].ID, maxHistory); err == nil {
			m.results = results
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current results.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			humanize.RelTime(r.CreatedAt, m.now(), "ago", "from now"),
			r.Difficulty,
			humanize.Comma(int64(r.Score)),
			fmt.Sprintf("%.1f%%", r.AccuracyPercent()),
			string(r.Rank),
			fmt.Sprintf("%ds", r.ElapsedSecs),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history board.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextMap):
			if len(m.maps) > 0 {
				m.cursor = (m.cursor + 1) % len(m.maps)
				m.loadResults()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMap):
			if len(m.maps) > 0 {
				m.cursor = (m.cursor - 1 + len(m.maps)) % len(m.maps)
				m.loadResults()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history board.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HISTORY"
	if len(m.maps) > 0 {
		title = fmt.Sprintf("HISTORY - %s", m.maps[m.cursor].Name)
	}
	b.WriteString(centerText(menuTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	content := menuPanelStyle.Render(m.renderTableContent())
	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content))
	} else {
		if len(m.maps) > 0 {
			b.WriteString(centerText(fmt.Sprintf("< %s >", m.maps[m.cursor].Name), m.width))
			b.WriteString("\n\n")
		}
		b.WriteString(content)
	}

	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderSidebar lists all maps with the current one highlighted.
func (m HistoryModel) renderSidebar() string {
	var sidebar strings.Builder
	sidebar.WriteString("Maps\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, mp := range m.maps {
		name := mp.Name
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		if i == m.cursor {
			sidebar.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("> " + name))
		} else {
			sidebar.WriteString("  " + name)
		}
		sidebar.WriteString("\n")
	}

	return menuPanelStyle.Width(sidebarWidth).Render(strings.TrimRight(sidebar.String(), "\n"))
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.results) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No clears recorded yet.\nWin a round to start your history!")
	}
	return m.table.View()
}

// Rows returns the rendered table rows, newest first.
func (m HistoryModel) Rows() []table.Row {
	return m.table.Rows()
}

// Cursor returns the selected map index.
func (m HistoryModel) Cursor() int {
	return m.cursor
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}
