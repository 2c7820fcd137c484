package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hitcircle/internal/config"
	"github.com/vovakirdan/hitcircle/internal/core"
	"github.com/vovakirdan/hitcircle/internal/game"
)

func newTestModel(t *testing.T, mutate func(*config.GameConfig)) Model {
	t.Helper()
	return NewModel(testSession(t, mutate), core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func tick(t *testing.T, m Model, at time.Time) Model {
	t.Helper()
	return send(t, m, TickMsg(at))
}

func TestModelTickAdvancesSession(t *testing.T) {
	m := newTestModel(t, nil)
	now := time.Now()

	m = tick(t, m, now)
	m = tick(t, m, now.Add(16*time.Millisecond))

	if got := m.Session().Now(); got != 2*(time.Second/60) {
		t.Errorf("session clock = %v, want two ticks", got)
	}
}

func TestModelPauseAndBack(t *testing.T) {
	m := newTestModel(t, nil)
	now := time.Now()

	m = send(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	m = send(t, m, runeKey("p"))
	m = tick(t, m, now)
	if m.Session().Phase() != game.PhasePaused {
		t.Fatalf("phase = %v, want paused", m.Session().Phase())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should work while paused")
	}
}

func TestModelRestartAfterLoss(t *testing.T) {
	// Health decays to zero on the first regen tick.
	m := newTestModel(t, func(cfg *config.GameConfig) {
		cfg.Player.RegenAmount = -100
	})
	now := time.Now()

	for i := 0; i < 20 && m.Session().Phase() != game.PhaseLost; i++ {
		m = tick(t, m, now.Add(time.Duration(i)*16*time.Millisecond))
	}
	if m.Session().Phase() != game.PhaseLost {
		t.Fatalf("phase = %v, want lost", m.Session().Phase())
	}
	if !m.Session().Phase().Terminal() {
		t.Fatal("lost should be terminal")
	}

	m = send(t, m, runeKey("r"))
	if m.Session().Phase() != game.PhasePlaying {
		t.Errorf("phase = %v, want playing after restart", m.Session().Phase())
	}
	if m.Session().Now() != 0 {
		t.Errorf("clock = %v, want 0 after restart", m.Session().Now())
	}
}

func TestModelHeldRestartFiresOnce(t *testing.T) {
	m := newTestModel(t, nil)
	t0 := time.Unix(1000, 0)
	round := m.Session().RoundID()
	restarts := 0

	// Two seconds of a held backtick with terminal auto-repeat every 32ms.
	for i := 0; i < 120; i++ {
		at := t0.Add(time.Duration(i) * 16 * time.Millisecond)
		if i%2 == 0 {
			m.clock = func() time.Time { return at }
			m = send(t, m, runeKey("`"))
		}
		m = tick(t, m, at)
		if id := m.Session().RoundID(); id != round {
			restarts++
			round = id
		}
	}

	if restarts != 1 {
		t.Errorf("restarts = %d, want 1 for one continuous hold", restarts)
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	m := newTestModel(t, nil)
	now := time.Now()
	for i := 0; i < 5; i++ {
		m = tick(t, m, now.Add(time.Duration(i)*16*time.Millisecond))
	}
	before := m.Session().RoundID()
	elapsed := m.Session().Now()

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.Session().RoundID() != before || m.Session().Now() != elapsed {
		t.Error("resize should not restart the round")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, want 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !next.(Model).IsQuitting() {
		t.Error("model should be quitting")
	}
	if next.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelScreenshot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	m := newTestModel(t, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(filepath.Join(home, ".hitcircle", "screenshots"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d screenshots, want 1", len(entries))
	}
	if filepath.Ext(entries[0].Name()) != ".txt" {
		t.Errorf("unexpected screenshot name %q", entries[0].Name())
	}
}
