package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/hitcircle/internal/config"
	"github.com/vovakirdan/hitcircle/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuPanelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// MenuModel is the Bubble Tea model for the map and difficulty picker.
// Up/Down choose the map, Left/Right the difficulty.
type MenuModel struct {
	catalog     config.Catalog
	store       *storage.Store
	keyMapper   *KeyMapper
	cursor      int
	tier        int
	width       int
	height      int
	best        []storage.Best
	stats       *storage.MapStats
	selected    *config.Selection
	openHistory bool
	quitting    bool
}

// NewMenuModel creates a new menu model. store may be nil.
func NewMenuModel(catalog config.Catalog, store *storage.Store, width, height int) MenuModel {
	m := MenuModel{
		catalog:   catalog,
		store:     store,
		keyMapper: NewKeyMapper(),
		width:     width,
		height:    height,
	}
	m.loadRecords()
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.catalog.Maps) == 0 {
		if m.keyMapper.MapKeyToMenuAction(msg) == MenuActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.tier = 0
			m.loadRecords()
		}

	case MenuActionDown:
		if m.cursor < len(m.catalog.Maps)-1 {
			m.cursor++
			m.tier = 0
			m.loadRecords()
		}

	case MenuActionLeft:
		if m.tier > 0 {
			m.tier--
		}

	case MenuActionRight:
		if m.tier < len(m.currentMap().Difficulties)-1 {
			m.tier++
		}

	case MenuActionSelect:
		mp := m.currentMap()
		if len(mp.Difficulties) > 0 {
			m.selected = &config.Selection{Map: mp, Difficulty: mp.Difficulties[m.tier]}
		}

	case MenuActionHistory:
		m.openHistory = true
	}

	return m, nil
}

func (m MenuModel) currentMap() config.MapConfig {
	return m.catalog.Maps[m.cursor]
}

// loadRecords refreshes best results for the highlighted map.
func (m *MenuModel) loadRecords() {
	m.best, m.stats = nil, nil
	if m.store == nil || len(m.catalog.Maps) == 0 {
		return
	}
	id := m.currentMap().ID
	if best, err := m.store.BestByDifficulty(id); err == nil {
		m.best = best
	}
	if stats, err := m.store.Stats(id); err == nil {
		m.stats = stats
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("H I T C I R C L E"), m.width))
	b.WriteString("\n\n")

	if len(m.catalog.Maps) == 0 {
		b.WriteString(centerText("No maps configured", m.width))
		return b.String()
	}

	var list strings.Builder
	for i, mp := range m.catalog.Maps {
		line := fmt.Sprintf("  %s - %s", mp.Name, mp.Artist)
		if i == m.cursor {
			line = menuActiveStyle.Render(fmt.Sprintf("> %s - %s", mp.Name, mp.Artist))
		}
		list.WriteString(line)
		list.WriteString("\n")
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		menuPanelStyle.Render(strings.TrimRight(list.String(), "\n")),
		"  ",
		menuPanelStyle.Render(m.renderDetails()),
	)
	b.WriteString(panels)
	b.WriteString("\n\n")
	b.WriteString(menuDimStyle.Render("Up/Down: Map  |  Left/Right: Difficulty  |  Enter: Play  |  Tab: History  |  Q: Quit"))
	b.WriteString("\n")
	return b.String()
}

// renderDetails shows the highlighted map, its tiers and past bests.
func (m MenuModel) renderDetails() string {
	mp := m.currentMap()

	var b strings.Builder
	b.WriteString(menuTitleStyle.Render(mp.Name))
	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(mp.Artist))
	b.WriteString("\n")
	if mp.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(40).Render(mp.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	tabs := make([]string, len(mp.Difficulties))
	for i, d := range mp.Difficulties {
		if i == m.tier {
			tabs[i] = menuActiveStyle.Render(" " + d.Name + " ")
		} else {
			tabs[i] = menuDimStyle.Render(" " + d.Name + " ")
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")

	tier := mp.Difficulties[m.tier]
	fmt.Fprintf(&b, "%d balls at speed %.0f\n\n", tier.BallCount, tier.InitialBallSpeed)

	if best := m.bestFor(tier.Name); best != nil {
		fmt.Fprintf(&b, "Best  %s  %.1f%%  %s  (%d plays)\n",
			humanize.Comma(int64(best.Score)), best.Accuracy*100, best.Rank, best.Plays)
	} else {
		b.WriteString(menuDimStyle.Render("No clears yet"))
		b.WriteString("\n")
	}
	if m.stats != nil && m.stats.Plays > 0 {
		b.WriteString(menuDimStyle.Render(fmt.Sprintf("Last played %s", humanize.Time(m.stats.LastPlayed))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m MenuModel) bestFor(difficulty string) *storage.Best {
	for i := range m.best {
		if strings.EqualFold(m.best[i].Difficulty, difficulty) {
			return &m.best[i]
		}
	}
	return nil
}

// Selected returns the chosen map and difficulty, or nil if none selected.
func (m MenuModel) Selected() *config.Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the history board.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// Cursor returns the highlighted map index.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
