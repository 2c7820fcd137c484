package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/hitcircle/internal/config"
	"github.com/vovakirdan/hitcircle/internal/core"
	"github.com/vovakirdan/hitcircle/internal/game"
)

func testSession(t *testing.T, mutate func(*config.GameConfig)) *game.Session {
	t.Helper()
	sel, err := config.DefaultCatalog().Lookup("reaction-slyleaf", "normal")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	cfg := config.DefaultGameConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := game.NewSession(sel, cfg, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, "000,000"},
		{1234.9, "001,234"},
		{999999, "999,999"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := formatScore(tt.score); got != tt.want {
			t.Errorf("formatScore(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestDrawFieldPlaying(t *testing.T) {
	s := testSession(t, nil)
	scr := core.NewScreen(80, 24)

	DrawField(scr, FieldView{Title: s.Selection().Label(), Snapshot: s.Snapshot()})

	if !strings.HasPrefix(scr.Row(0), "Reaction feat. Slyleaf [Normal]") {
		t.Errorf("HUD should start with the title, got %q", scr.Row(0))
	}
	if !strings.Contains(scr.Row(0), "000,000") {
		t.Errorf("HUD should show the score, got %q", scr.Row(0))
	}
	if !strings.Contains(scr.String(), "▀") {
		t.Error("paddle not drawn")
	}
	if !strings.HasPrefix(scr.Row(23), "←/→ move") {
		t.Errorf("footer should show controls, got %q", scr.Row(23))
	}
}

func TestDrawFieldPaddleOnBottomRows(t *testing.T) {
	s := testSession(t, nil)
	scr := core.NewScreen(80, 24)
	DrawField(scr, FieldView{Snapshot: s.Snapshot()})

	found := -1
	for y := 0; y < scr.Height(); y++ {
		if strings.Contains(scr.Row(y), "▀") {
			found = y
		}
	}
	if found < scr.Height()-4 {
		t.Errorf("paddle drawn on row %d, want near the bottom", found)
	}
}

func TestDrawBall(t *testing.T) {
	scr := core.NewScreen(80, 24)
	a := newArea(scr, game.Snapshot{FieldW: 1600, FieldH: 900})

	drawBall(scr, a, game.BallView{X: 810, Y: 460, Radius: 100, Health: 3, State: game.BallActive.String()})

	if got := scr.Get(40, 12); got != '3' {
		t.Errorf("center = %q, want health digit", got)
	}
	if got := scr.GetCell(41, 12); got.Rune != '█' || got.Color != core.ColorCyan {
		t.Errorf("body = %+v, want cyan block", got)
	}

	drawBall(scr, a, game.BallView{X: 810, Y: 460, Radius: 100, Health: 3, Warning: true})
	if got := scr.GetCell(41, 12).Color; got != core.ColorOrange {
		t.Errorf("warning color = %v, want orange", got)
	}

	drawBall(scr, a, game.BallView{X: 810, Y: 460, Radius: 100, State: game.BallDisappearing.String()})
	if got := scr.Get(41, 12); got != '░' {
		t.Errorf("fading ball = %q, want shade", got)
	}
}

func TestDrawFieldPaused(t *testing.T) {
	s := testSession(t, nil)
	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	s.Tick(in)

	scr := core.NewScreen(80, 24)
	DrawField(scr, FieldView{Snapshot: s.Snapshot()})
	if !strings.Contains(scr.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}
}

func TestDrawFieldWonSummary(t *testing.T) {
	s := testSession(t, nil)
	snap := s.Snapshot()
	snap.Phase = game.PhaseWon.String()
	snap.Balls = nil
	sum := game.Summary{
		MapName:    "Reaction feat. Slyleaf",
		Difficulty: "Normal",
		Score:      4321,
		Accuracy:   0.92,
		Rank:       game.RankA,
		Elapsed:    42 * time.Second,
	}

	scr := core.NewScreen(80, 24)
	DrawField(scr, FieldView{Snapshot: snap, Summary: &sum})
	out := scr.String()

	for _, want := range []string{"CLEARED", "rank      A", "004,321", "92.0%", "42s"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestDrawFieldTooSmall(t *testing.T) {
	s := testSession(t, nil)
	scr := core.NewScreen(10, 5)
	DrawField(scr, FieldView{Snapshot: s.Snapshot()})
	if !strings.Contains(scr.String(), "too") {
		t.Errorf("expected size warning, got %q", scr.String())
	}
}

func TestBallColorByHealth(t *testing.T) {
	if ballColor(1) != core.ColorRed {
		t.Error("health 1 should be red")
	}
	if ballColor(9) != core.ColorMagenta {
		t.Error("health 9 should be magenta")
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	scr := core.NewScreen(5, 2)
	scr.DrawText(0, 0, "hello")
	scr.DrawText(0, 1, "world")

	if got := RenderScreen(scr); got != "hello\nworld" {
		t.Errorf("RenderScreen = %q", got)
	}
}
