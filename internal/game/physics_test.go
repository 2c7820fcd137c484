package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hitcircle/internal/core"
)

func ball(x, y, r, vx, vy float64, health int) *Ball {
	return &Ball{Pos: core.V(x, y), Vel: core.V(vx, vy), Radius: r, Health: health}
}

func TestIntegrate(t *testing.T) {
	b := ball(10, 20, 5, 3, -4, 1)
	Integrate(b)
	assert.Equal(t, core.V(13, 16), b.Pos)

	b.State = BallDisappearing
	Integrate(b)
	assert.Equal(t, core.V(13, 16), b.Pos, "disappearing balls do not move")
}

func TestResolveWall(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		wantSide bool
		wantTop  bool
	}{
		{"inside", 500, 500, false, false},
		{"left wall", 10, 500, true, false},
		{"right wall", 995, 500, true, false},
		{"ceiling", 500, 10, false, true},
		{"corner", 10, 10, true, true},
		{"below floor is open", 500, 2000, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ball(tt.x, tt.y, 20, 3.5, -2.25, 1)
			side, top := ResolveWall(b, 1000)

			assert.Equal(t, tt.wantSide, side)
			assert.Equal(t, tt.wantTop, top)
			if tt.wantSide {
				assert.Equal(t, -3.5, b.Vel.X)
			} else {
				assert.Equal(t, 3.5, b.Vel.X)
			}
			if tt.wantTop {
				assert.Equal(t, 2.25, b.Vel.Y)
			} else {
				assert.Equal(t, -2.25, b.Vel.Y)
			}
			assert.Zero(t, b.LastBounce, "wall bounces never count as contact")
		})
	}
}

func TestPaddleContact(t *testing.T) {
	paddle := core.NewRect(700, 840, 200, 40)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"above paddle", 800, 700, false},
		{"edge touching is not contact", 800, 800, false},
		{"overlapping top", 800, 805, true},
		{"deep below still counts", 800, 1000, true},
		{"left of paddle", 650, 805, false},
		{"exactly on left edge", 700, 805, false},
		{"exactly on right edge", 900, 805, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PaddleContact(ball(tt.x, tt.y, 40, 0, 5, 1), paddle))
		})
	}
}

func TestResolveBallBallExactFormula(t *testing.T) {
	a := ball(0, 0, 30, 4, 0, 1)
	b := ball(50, 0, 40, -2, 0, 1)

	require.True(t, ResolveBallBall(a, b))

	// n = (1, 0), closing = 6, impulse = 12 / (900 + 1600)
	impulse := 2 * 6.0 / (900.0 + 1600.0)
	assert.InDelta(t, 4-impulse*1600, a.Vel.X, 1e-12)
	assert.InDelta(t, -2+impulse*900, b.Vel.X, 1e-12)
	assert.Zero(t, a.Vel.Y)
	assert.Zero(t, b.Vel.Y)
}

func TestResolveBallBallSeparates(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		ra := 30 + rng.Float64()*30
		rb := 30 + rng.Float64()*30
		angle := rng.Float64() * 2 * math.Pi
		dist := (ra + rb) * (0.1 + 0.85*rng.Float64())

		a := ball(500, 500, ra, rng.Float64()*20-10, rng.Float64()*20-10, 1)
		b := ball(500+dist*math.Cos(angle), 500+dist*math.Sin(angle), rb, rng.Float64()*20-10, rng.Float64()*20-10, 1)

		n := b.Pos.Sub(a.Pos).Normalize()
		closing := a.Vel.Sub(b.Vel).Dot(n)

		require.True(t, ResolveBallBall(a, b))

		separating := b.Vel.Sub(a.Vel).Dot(n)
		assert.GreaterOrEqual(t, separating, -1e-9, "pair %d still closing", i)
		if closing > 0 {
			assert.InDelta(t, closing, separating, 1e-9, "pair %d separation speed", i)
		}
	}
}

func TestResolveBallBallSkips(t *testing.T) {
	t.Run("separating pair untouched", func(t *testing.T) {
		a := ball(0, 0, 30, -1, 0, 1)
		b := ball(50, 0, 30, 1, 0, 1)
		assert.True(t, ResolveBallBall(a, b))
		assert.Equal(t, core.V(-1, 0), a.Vel)
		assert.Equal(t, core.V(1, 0), b.Vel)
	})

	t.Run("coincident centres untouched", func(t *testing.T) {
		a := ball(10, 10, 30, 5, 5, 1)
		b := ball(10, 10, 30, -5, -5, 1)
		assert.True(t, ResolveBallBall(a, b))
		assert.Equal(t, core.V(5, 5), a.Vel)
		assert.Equal(t, core.V(-5, -5), b.Vel)
		assert.False(t, math.IsNaN(a.Vel.X))
	})

	t.Run("apart", func(t *testing.T) {
		assert.False(t, ResolveBallBall(ball(0, 0, 10, 1, 0, 1), ball(100, 0, 10, -1, 0, 1)))
	})

	t.Run("disappearing ignored", func(t *testing.T) {
		a := ball(0, 0, 30, 4, 0, 1)
		b := ball(50, 0, 30, -4, 0, 1)
		b.State = BallDisappearing
		assert.False(t, ResolveBallBall(a, b))
		assert.Equal(t, core.V(4, 0), a.Vel)
	})

	t.Run("nil ball", func(t *testing.T) {
		assert.False(t, ResolveBallBall(nil, ball(0, 0, 30, 0, 0, 1)))
	})
}

func TestApplyGravity(t *testing.T) {
	b := ball(0, 0, 30, 1, 2, 1)
	ApplyGravity(b, 0.2)
	assert.InDelta(t, 2.2, b.Vel.Y, 1e-12)
	assert.Equal(t, 1.0, b.Vel.X)
}

func TestAdvanceFade(t *testing.T) {
	b := ball(0, 0, 30, 0, 0, 1)
	b.startDisappearing()
	assert.Zero(t, b.Health)

	for i := 1; i < 50; i++ {
		require.False(t, b.advanceFade(0.02), "removed early at step %d", i)
	}
	assert.True(t, b.advanceFade(0.02))
	assert.Equal(t, BallRemoved, b.State)
	assert.Equal(t, 1.0, b.Progress)
	assert.Equal(t, 50, fadeLength(0.02))
}
