package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/hitcircle/internal/core"
)

func autopilotSnap(balls ...BallView) Snapshot {
	return Snapshot{
		FieldW: 1600,
		FieldH: 900,
		Paddle: PaddleView{X: 700, Y: 840, W: 200, H: 40},
		Balls:  balls,
	}
}

func activeBall(x, y, vy float64) BallView {
	return BallView{X: x, Y: y, VY: vy, Radius: 30, Health: 1, State: BallActive.String()}
}

func TestAutopilotChasesLowestDescendingBall(t *testing.T) {
	// The rising ball is lower but the descending one is the threat.
	in := Autopilot(autopilotSnap(
		activeBall(1500, 800, -3),
		activeBall(100, 300, 3),
	))
	assert.True(t, in.Has(core.ActionLeft))
	assert.False(t, in.Has(core.ActionRight))
	assert.True(t, in.Has(core.ActionBoost), "far targets should boost")
}

func TestAutopilotHoldsWhenUnderBall(t *testing.T) {
	in := Autopilot(autopilotSnap(activeBall(820, 500, 2)))
	assert.False(t, in.Has(core.ActionLeft))
	assert.False(t, in.Has(core.ActionRight))
}

func TestAutopilotFallsBackToRisingBalls(t *testing.T) {
	in := Autopilot(autopilotSnap(
		activeBall(1000, 200, -1),
		activeBall(1100, 600, -2),
	))
	assert.True(t, in.Has(core.ActionRight))
	assert.False(t, in.Has(core.ActionBoost))
}

func TestAutopilotIgnoresFadingBalls(t *testing.T) {
	fading := activeBall(100, 800, 5)
	fading.State = BallDisappearing.String()
	in := Autopilot(autopilotSnap(fading))
	assert.Empty(t, in.Actions)
}

func TestAutopilotPlaysARound(t *testing.T) {
	s := newTestSession(t, testSelection(2, 4), nil)
	for i := 0; i < 60*60 && !s.Phase().Terminal(); i++ {
		snap := s.Snapshot()
		s.Tick(Autopilot(snap))
	}
	assert.Greater(t, s.State().Hits, 0, "autopilot should return at least one ball")
}
