// Package game implements the hitcircle simulation: health-bearing balls
// falling onto a single paddle, with collision response, scoring and the
// round phase machine. It has no presentation dependencies.
package game

import (
	"math"
	"time"

	"github.com/vovakirdan/hitcircle/internal/core"
)

// BallState is the lifecycle stage of a ball.
type BallState int

const (
	BallActive       BallState = iota // Moving and colliding
	BallDisappearing                  // Cleared, only animating
	BallRemoved                       // Animation done, deleted next tick
)

// String returns the lowercase name used in snapshots.
func (s BallState) String() string {
	switch s {
	case BallActive:
		return "active"
	case BallDisappearing:
		return "disappearing"
	case BallRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Ball is a circular body with hit points.
type Ball struct {
	ID     int
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
	Health int

	// LastBounce is the session time of the last paddle or ball contact.
	// Wall bounces do not update it.
	LastBounce time.Duration

	State    BallState
	Progress float64 // Disappearance progress in [0, 1]
	Warning  bool    // Untouched long enough to show the danger marker
	Falling  bool    // Untouched long enough for gravity to apply

	fadeTicks int
}

// Active reports whether the ball still moves and collides.
func (b *Ball) Active() bool {
	return b != nil && b.State == BallActive
}

// Speed returns the velocity magnitude.
func (b *Ball) Speed() float64 {
	return b.Vel.Len()
}

// Top returns the y of the ball's upper edge.
func (b *Ball) Top() float64 { return b.Pos.Y - b.Radius }

// Bottom returns the y of the ball's lower edge.
func (b *Ball) Bottom() float64 { return b.Pos.Y + b.Radius }

// startDisappearing moves an active ball into its clear animation.
func (b *Ball) startDisappearing() {
	b.State = BallDisappearing
	b.Health = 0
	b.Progress = 0
	b.fadeTicks = 0
	b.Warning = false
	b.Falling = false
}

// advanceFade steps the clear animation by step and reports whether the ball
// just became Removed. The ball is removed after ceil(1/step) steps.
func (b *Ball) advanceFade(step float64) bool {
	if b.State != BallDisappearing {
		return false
	}
	b.fadeTicks++
	b.Progress = min(1, float64(b.fadeTicks)*step)
	if b.fadeTicks >= fadeLength(step) {
		b.State = BallRemoved
		return true
	}
	return false
}

// fadeLength returns the number of ticks a clear animation lasts.
func fadeLength(step float64) int {
	if step <= 0 {
		return 1
	}
	// Tolerance keeps 1/0.02 at 50 instead of 51 after rounding error.
	return int(math.Ceil(1/step - 1e-9))
}
