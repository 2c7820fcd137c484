package game

import (
	"math"

	"github.com/vovakirdan/hitcircle/internal/core"
)

// Autopilot returns input that steers the paddle under the lowest
// descending ball, falling back to the lowest ball of any direction.
// It never expands, pauses or restarts.
func Autopilot(snap Snapshot) core.InputFrame {
	in := core.NewInputFrame()

	target, found := BallView{}, false
	for _, b := range snap.Balls {
		if b.State != BallActive.String() {
			continue
		}
		if !found || betterTarget(b, target) {
			target, found = b, true
		}
	}
	if !found {
		return in
	}

	center := snap.Paddle.X + snap.Paddle.W/2
	dx := target.X - center
	if math.Abs(dx) <= snap.Paddle.W/4 {
		return in
	}
	if dx < 0 {
		in.Set(core.ActionLeft)
	} else {
		in.Set(core.ActionRight)
	}
	if math.Abs(dx) > snap.Paddle.W*1.5 {
		in.Set(core.ActionBoost)
	}
	return in
}

// betterTarget prefers descending balls, then the one closest to the floor.
func betterTarget(b, current BallView) bool {
	bDown, cDown := b.VY > 0, current.VY > 0
	if bDown != cDown {
		return bDown
	}
	return b.Y > current.Y
}
