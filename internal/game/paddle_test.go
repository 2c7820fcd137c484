package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/hitcircle/internal/config"
)

func newTestPaddle() *Paddle {
	cfg := config.DefaultGameConfig()
	return NewPaddle(cfg.Paddle, cfg.Field)
}

func TestPaddleRect(t *testing.T) {
	p := newTestPaddle()
	r := p.Rect()

	assert.Equal(t, 700.0, r.X)
	assert.Equal(t, 840.0, r.Y)
	assert.Equal(t, 200.0, r.W)
	assert.Equal(t, 40.0, r.H)

	p.Expansion = 0.5
	r = p.Rect()
	assert.Equal(t, 500.0, r.X)
	assert.Equal(t, 600.0, r.W)
}

func TestPaddleMove(t *testing.T) {
	p := newTestPaddle()

	p.Move(true, false, false)
	assert.Equal(t, 780.0, p.Center)

	p.Move(false, true, true)
	assert.Equal(t, 820.0, p.Center)

	p.Move(true, true, false)
	assert.Equal(t, 800.0, p.Center, "left wins when both are held")
}

func TestPaddleMoveStopsAtWalls(t *testing.T) {
	p := newTestPaddle()

	for i := 0; i < 200; i++ {
		p.Move(true, false, true)
	}
	assert.LessOrEqual(t, p.Center, 100.0)
	assert.Greater(t, p.Center, 100.0-40)

	stuck := p.Center
	p.Move(true, false, false)
	assert.Equal(t, stuck, p.Center)

	for i := 0; i < 200; i++ {
		p.Move(false, true, true)
	}
	assert.GreaterOrEqual(t, p.Center, 1500.0)
	assert.Less(t, p.Center, 1500.0+40)
}

func TestPaddleExpansionCycle(t *testing.T) {
	p := newTestPaddle()

	assert.True(t, p.TriggerExpand(0))
	assert.False(t, p.TriggerExpand(0), "cannot retrigger while expanding")

	peak := 0
	for i := 1; i <= 20 && p.expanding; i++ {
		p.Advance()
		peak = i
	}
	assert.Equal(t, 1.0, p.Expansion)
	assert.LessOrEqual(t, peak, 11)

	for i := 0; i < 30; i++ {
		p.Advance()
	}
	assert.Zero(t, p.Expansion)
}

func TestPaddleExpandCooldown(t *testing.T) {
	p := newTestPaddle()

	assert.True(t, p.TriggerExpand(0))
	for i := 0; i < 40; i++ {
		p.Advance()
	}
	assert.Zero(t, p.Expansion)

	assert.False(t, p.TriggerExpand(time.Second), "inside cooldown")
	assert.True(t, p.TriggerExpand(3*time.Second))
}

func TestPaddleReset(t *testing.T) {
	p := newTestPaddle()
	p.Move(true, false, false)
	p.TriggerExpand(0)
	p.Advance()

	p.Reset()
	assert.Equal(t, 800.0, p.Center)
	assert.Zero(t, p.Expansion)
	assert.True(t, p.TriggerExpand(0), "cooldown forgotten after reset")
}
