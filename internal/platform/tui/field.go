package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/hitcircle/internal/core"
	"github.com/vovakirdan/hitcircle/internal/game"
)

// Minimum terminal size that still shows a playable field.
const (
	minFieldCols = 24
	minFieldRows = 8
	healthBarLen = 20
)

// Decoration is an ornament falling across the loss screen.
type Decoration struct {
	X   float64 // Field coordinate
	Age int     // Ticks since spawn
}

// FieldView is everything the play screen draws in one frame.
type FieldView struct {
	Title       string
	Snapshot    game.Snapshot
	Summary     *game.Summary // Set once the round is won
	Decorations []Decoration
}

// area maps field coordinates onto the inner cells of the playfield box.
type area struct {
	x, y, w, h int
	sx, sy     float64
}

func newArea(scr *core.Screen, snap game.Snapshot) area {
	a := area{x: 1, y: 2, w: scr.Width() - 2, h: scr.Height() - 4}
	if snap.FieldW > 0 {
		a.sx = float64(a.w) / snap.FieldW
	}
	if snap.FieldH > 0 {
		a.sy = float64(a.h) / snap.FieldH
	}
	return a
}

func (a area) set(scr *core.Screen, x, y int, r rune, c core.Color) {
	if x < a.x || x >= a.x+a.w || y < a.y || y >= a.y+a.h {
		return
	}
	scr.SetColored(x, y, r, c)
}

func (a area) col(fx float64) float64 { return float64(a.x) + fx*a.sx }
func (a area) row(fy float64) float64 { return float64(a.y) + fy*a.sy }

// DrawField renders the HUD, playfield and any phase overlay onto scr.
func DrawField(scr *core.Screen, v FieldView) {
	scr.Clear()
	if scr.Width() < minFieldCols || scr.Height() < minFieldRows {
		scr.DrawTextCentered(scr.Height()/2, "terminal too small")
		return
	}

	snap := v.Snapshot
	a := newArea(scr, snap)

	drawHUD(scr, v)
	scr.DrawBox(0, 1, scr.Width(), scr.Height()-2)

	for _, b := range snap.Balls {
		drawBall(scr, a, b)
	}
	drawPaddle(scr, a, snap.Paddle)

	switch snap.Phase {
	case game.PhasePaused.String():
		drawPanel(scr, core.ColorYellow, "PAUSED", "", "p resume   b menu")
	case game.PhaseLost.String():
		for _, d := range v.Decorations {
			a.set(scr, int(a.col(d.X)), a.y+d.Age/3, '✶', core.ColorRed)
		}
		drawPanel(scr, core.ColorRed, "YOU LOST", "", "r restart   b menu")
	case game.PhaseWon.String():
		if v.Summary != nil {
			drawSummary(scr, *v.Summary)
		}
	}

	drawFooter(scr, snap)
}

func drawHUD(scr *core.Screen, v FieldView) {
	snap := v.Snapshot
	scr.DrawTextColored(0, 0, v.Title, core.ColorWhite)

	stats := fmt.Sprintf("%s  x%d  %.1f%%", formatScore(snap.Score), snap.Combo, snap.Accuracy*100)
	scr.DrawTextColored(scr.Width()-len(stats), 0, stats, core.ColorWhite)

	frac := 0.0
	if snap.MaxHealth > 0 {
		frac = core.ClampF(snap.Health/snap.MaxHealth, 0, 1)
	}
	filled := int(math.Round(frac * healthBarLen))
	x := max((scr.Width()-healthBarLen-2)/2, len([]rune(v.Title))+2)
	scr.DrawText(x, 0, "[")
	scr.DrawHLine(x+1, 0, filled, '█', healthColor(frac))
	scr.DrawHLine(x+1+filled, 0, healthBarLen-filled, '·', core.ColorGray)
	scr.DrawText(x+1+healthBarLen, 0, "]")
}

func drawFooter(scr *core.Screen, snap game.Snapshot) {
	y := scr.Height() - 1
	if snap.RestartProgress > 0 {
		n := int(snap.RestartProgress * healthBarLen)
		scr.DrawTextColored(0, y, "restarting ", core.ColorYellow)
		scr.DrawHLine(11, y, n, '█', core.ColorYellow)
		return
	}

	help := "←/→ move  shift boost  space×2 expand  p pause  hold ` restart  q quit"
	if snap.Phase != game.PhasePlaying.String() {
		help = "r restart  b menu  q quit"
	}
	scr.DrawTextColored(0, y, help, core.ColorGray)
}

func drawBall(scr *core.Screen, a area, b game.BallView) {
	cx, cy := a.col(b.X), a.row(b.Y)
	rx := math.Max(b.Radius*a.sx, 0.5)
	ry := math.Max(b.Radius*a.sy, 0.5)

	fill, color := '█', ballColor(b.Health)
	switch {
	case b.State == game.BallDisappearing.String():
		fill, color = '░', core.ColorGray
	case b.Warning:
		color = core.ColorOrange
	}

	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				a.set(scr, x, y, fill, color)
			}
		}
	}

	if b.Health > 0 && b.Health < 10 {
		a.set(scr, int(cx), int(cy), rune('0'+b.Health), color)
	}
}

func drawPaddle(scr *core.Screen, a area, p game.PaddleView) {
	x0 := int(math.Floor(a.col(p.X)))
	x1 := int(math.Ceil(a.col(p.X + p.W)))
	y0 := int(math.Floor(a.row(p.Y)))
	y1 := max(y0+1, int(math.Ceil(a.row(p.Y+p.H))))

	color := core.ColorWhite
	if p.Expansion > 0 {
		color = core.ColorCyan
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			a.set(scr, x, y, '▀', color)
		}
	}
}

func drawSummary(scr *core.Screen, s game.Summary) {
	grade := core.ColorRed
	if s.Accuracy > 0.6 {
		grade = core.ColorGreen
	}
	drawPanel(scr, grade,
		"CLEARED",
		fmt.Sprintf("%s [%s]", s.MapName, s.Difficulty),
		"",
		fmt.Sprintf("rank      %s", s.Rank),
		fmt.Sprintf("score     %s", formatScore(s.Score)),
		fmt.Sprintf("accuracy  %.1f%%", s.AccuracyPercent()),
		fmt.Sprintf("time      %ds", s.ElapsedSeconds()),
		"",
		"r retry   b menu",
	)
}

// drawPanel draws lines centered in a bordered box; the first line takes color.
func drawPanel(scr *core.Screen, color core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	w, h := width+4, len(lines)+2
	x, y := (scr.Width()-w)/2, (scr.Height()-h)/2

	scr.DrawRect(x, y, w, h, ' ', core.ColorDefault)
	scr.DrawBox(x, y, w, h)
	for i, l := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = color
		}
		lx := x + (w-len([]rune(l)))/2
		scr.DrawTextColored(lx, y+1+i, l, c)
	}
}

// ballColor picks a color by remaining health.
func ballColor(health int) core.Color {
	switch {
	case health >= 7:
		return core.ColorMagenta
	case health >= 5:
		return core.ColorBlue
	case health >= 3:
		return core.ColorCyan
	case health == 2:
		return core.ColorYellow
	default:
		return core.ColorRed
	}
}

func healthColor(frac float64) core.Color {
	switch {
	case frac > 0.5:
		return core.ColorGreen
	case frac > 0.25:
		return core.ColorYellow
	default:
		return core.ColorRed
	}
}

// formatScore renders a score zero-padded to six digits with thousands separators.
func formatScore(score float64) string {
	digits := fmt.Sprintf("%06d", int64(score))
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
