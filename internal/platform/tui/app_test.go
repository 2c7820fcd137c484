package tui

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hitcircle/internal/config"
	"github.com/vovakirdan/hitcircle/internal/core"
	"github.com/vovakirdan/hitcircle/internal/game"
	"github.com/vovakirdan/hitcircle/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testApp(store *storage.Store) AppModel {
	return NewAppModel(AppOptions{
		Catalog: config.DefaultCatalog(),
		Game:    config.DefaultGameConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 3},
		Store:   store,
		Logger:  log.New(io.Discard),
	})
}

func sendApp(t *testing.T, m AppModel, msgs ...tea.Msg) AppModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		am, ok := next.(AppModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = am
	}
	return m
}

func TestAppMenuToPlayAndBack(t *testing.T) {
	m := testApp(nil)

	m = sendApp(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if m.screen != screenPlay {
		t.Fatalf("screen = %v, want play", m.screen)
	}
	sel := m.play.Session().Selection()
	if sel.Map.ID != "babyhalo" || sel.Difficulty.Name != "Hard" {
		t.Errorf("selection = %s/%s, want babyhalo/Hard", sel.Map.ID, sel.Difficulty.Name)
	}
	if !strings.Contains(m.View(), "Babyhalo [Hard]") {
		t.Error("play view should show the selection")
	}

	m = sendApp(t, m, runeKey("p"), TickMsg(time.Now()), tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	if m.menu.Cursor() != 1 {
		t.Errorf("menu cursor = %d, want the map just played", m.menu.Cursor())
	}
}

func TestAppInitialSelectionSkipsMenu(t *testing.T) {
	sel, err := config.DefaultCatalog().Lookup("onigiri", "easy")
	if err != nil {
		t.Fatal(err)
	}
	m := NewAppModel(AppOptions{
		Catalog: config.DefaultCatalog(),
		Game:    config.DefaultGameConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Initial: &sel,
	})
	if m.screen != screenPlay {
		t.Fatalf("screen = %v, want play", m.screen)
	}
	if m.Init() == nil {
		t.Error("Init should start the tick loop")
	}
}

func TestAppInvalidGameConfigStaysInMenu(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Ball.MinRadius = 0
	m := NewAppModel(AppOptions{
		Catalog: config.DefaultCatalog(),
		Game:    cfg,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60},
		Logger:  log.New(io.Discard),
	})

	m = sendApp(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	if m.Err() == nil || !strings.Contains(m.View(), "Error:") {
		t.Error("start failure should be reported in the menu")
	}
}

func TestAppHistoryBoard(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for _, score := range []float64{1500, 2500} {
		_, err := store.SaveResult(ctx, game.Summary{
			RoundID: "r", MapID: "reaction-slyleaf", Difficulty: "Normal",
			Score: score, Hits: 9, MaxHits: 10, Accuracy: 0.9, Rank: game.RankA,
			Elapsed: 30 * time.Second,
		})
		if err != nil {
			t.Fatalf("SaveResult: %v", err)
		}
	}

	m := testApp(store)
	if best := m.menu.bestFor("normal"); best == nil || best.Score != 2500 {
		t.Errorf("menu best = %+v, want 2500", best)
	}

	m = sendApp(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenHistory {
		t.Fatalf("screen = %v, want history", m.screen)
	}
	rows := m.history.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][2] != "2,500" {
		t.Errorf("newest row score = %q, want 2,500", rows[0][2])
	}

	m = sendApp(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.history.Cursor() != 1 || len(m.history.Rows()) != 0 {
		t.Error("next map should have no history")
	}

	m = sendApp(t, m, runeKey("b"))
	if m.screen != screenMenu {
		t.Errorf("screen = %v, want menu", m.screen)
	}
}
