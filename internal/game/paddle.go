package game

import (
	"time"

	"github.com/vovakirdan/hitcircle/internal/config"
	"github.com/vovakirdan/hitcircle/internal/core"
)

// Paddle is the player's horizontal bat near the floor.
type Paddle struct {
	Center    float64 // Horizontal centre in field units
	Expansion float64 // Widening progress in [0, 1]

	expanding  bool
	expanded   bool          // An expansion has been accepted this round
	lastExpand time.Duration // Session time of the last accepted expansion

	cfg    config.PaddleConfig
	fieldW float64
	fieldH float64
}

// NewPaddle creates a paddle centred on the field.
func NewPaddle(cfg config.PaddleConfig, field config.FieldConfig) *Paddle {
	return &Paddle{
		Center: field.Width / 2,
		cfg:    cfg,
		fieldW: field.Width,
		fieldH: field.Height,
	}
}

// Rect returns the paddle's collision rectangle, including expansion.
func (p *Paddle) Rect() core.Rect {
	extra := p.cfg.ExpandReach * p.Expansion
	return core.NewRect(
		p.Center-p.cfg.Width/2-extra,
		p.fieldH-p.cfg.Height-p.cfg.Padding,
		p.cfg.Width+2*extra,
		p.cfg.Height,
	)
}

// Move shifts the paddle one step. Left takes precedence when both are held,
// and the paddle stops once its base half-width reaches a wall.
func (p *Paddle) Move(left, right, boost bool) {
	step := p.cfg.Speed
	if boost {
		step *= p.cfg.BoostMultiplier
	}

	half := p.cfg.Width / 2
	if left && p.Center > half {
		p.Center -= step
	} else if right && p.Center < p.fieldW-half {
		p.Center += step
	}
}

// TriggerExpand starts a widening if the paddle is fully retracted and the
// cooldown since the last accepted expansion has passed.
func (p *Paddle) TriggerExpand(now time.Duration) bool {
	if p.expanding || p.Expansion > 0 {
		return false
	}
	cooldown := time.Duration(p.cfg.ExpandCooldownMs) * time.Millisecond
	if p.expanded && now-p.lastExpand < cooldown {
		return false
	}
	p.expanding = true
	p.expanded = true
	p.lastExpand = now
	return true
}

// Advance steps the expansion animation.
func (p *Paddle) Advance() {
	switch {
	case p.expanding:
		p.Expansion += p.cfg.ExpandRate
		if p.Expansion >= 1 {
			p.Expansion = 1
			p.expanding = false
		}
	case p.Expansion > 0:
		p.Expansion = max(0, p.Expansion-p.cfg.RetractRate)
	}
}

// Reset recentres the paddle and cancels any expansion.
func (p *Paddle) Reset() {
	p.Center = p.fieldW / 2
	p.Expansion = 0
	p.expanding = false
	p.expanded = false
	p.lastExpand = 0
}
