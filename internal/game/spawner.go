package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/hitcircle/internal/config"
	"github.com/vovakirdan/hitcircle/internal/core"
)

// Spawner generates balls with random radius, health, heading and position.
type Spawner struct {
	rng    *rand.Rand
	cfg    config.BallConfig
	fieldW float64
	fieldH float64
	nextID int
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand, cfg config.BallConfig, field config.FieldConfig) *Spawner {
	return &Spawner{
		rng:    rng,
		cfg:    cfg,
		fieldW: field.Width,
		fieldH: field.Height,
	}
}

// Velocity returns a vector of magnitude speed in a random direction.
// Integer components are drawn from [-5, 4] and redrawn while either is
// zero, so neither axis of the result is ever exactly zero.
func (s *Spawner) Velocity(speed float64) core.Vec2 {
	for {
		x := s.rng.Intn(10) - 5
		y := s.rng.Intn(10) - 5
		if x != 0 && y != 0 {
			return core.V(float64(x), float64(y)).Normalize().Scale(speed)
		}
	}
}

// Radius returns a whole-unit radius in [MinRadius, MaxRadius).
func (s *Spawner) Radius() float64 {
	span := s.cfg.MaxRadius - s.cfg.MinRadius
	return s.cfg.MinRadius + math.Floor(s.rng.Float64()*span)
}

// Health returns a value in [1, MaxHealth].
func (s *Spawner) Health() int {
	return s.rng.Intn(s.cfg.MaxHealth) + 1
}

// Position returns a point in the upper half of the field, pushed inward by
// one radius along any axis where the ball would cross a boundary.
func (s *Spawner) Position(radius float64) core.Vec2 {
	x := math.Floor(s.rng.Float64() * s.fieldW)
	y := math.Floor(s.rng.Float64() * s.fieldH / 2)

	if x-radius < 0 {
		x += radius
	} else if x+radius > s.fieldW {
		x -= radius
	}
	if y-radius < 0 {
		y += radius
	} else if y+radius > s.fieldH {
		y -= radius
	}
	return core.V(x, y)
}

// Ball generates one ball moving at speed. now becomes its initial bounce
// time so gravity starts counting from the spawn.
func (s *Spawner) Ball(speed float64, now time.Duration) *Ball {
	s.nextID++
	radius := s.Radius()
	vel := s.Velocity(speed)
	pos := s.Position(radius)
	return &Ball{
		ID:         s.nextID,
		Pos:        pos,
		Vel:        vel,
		Radius:     radius,
		Health:     s.Health(),
		LastBounce: now,
	}
}
