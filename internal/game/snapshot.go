package game

import (
	"hash/fnv"
	"math"
)

// BallView is the render state of one ball.
type BallView struct {
	ID       int     `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Radius   float64 `json:"radius"`
	Health   int     `json:"health"`
	State    string  `json:"state"`
	Progress float64 `json:"progress"`
	Warning  bool    `json:"warning"`
	Falling  bool    `json:"falling"`
}

// PaddleView is the paddle rectangle in field units.
type PaddleView struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	Expansion float64 `json:"expansion"`
}

// Snapshot is the complete per-tick output of a session for renderers.
// It holds plain values only, so it can be serialized or compared.
type Snapshot struct {
	Tick       uint64     `json:"tick"`
	RoundID    string     `json:"round_id"`
	MapID      string     `json:"map_id"`
	Difficulty string     `json:"difficulty"`
	Phase      string     `json:"phase"`
	FieldW     float64    `json:"field_w"`
	FieldH     float64    `json:"field_h"`
	Paddle     PaddleView `json:"paddle"`
	Balls      []BallView `json:"balls"`

	Score     float64 `json:"score"`
	Combo     int     `json:"combo"`
	Hits      int     `json:"hits"`
	Missed    int     `json:"missed"`
	MaxHits   int     `json:"max_hits"`
	Accuracy  float64 `json:"accuracy"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"max_health"`
	ElapsedMs int64   `json:"elapsed_ms"`

	RestartProgress float64 `json:"restart_progress"`
}

// Snapshot returns the current render state.
func (s *Session) Snapshot() Snapshot {
	rect := s.paddle.Rect()
	balls := make([]BallView, len(s.balls))
	for i, b := range s.balls {
		balls[i] = BallView{
			ID:       b.ID,
			X:        b.Pos.X,
			Y:        b.Pos.Y,
			VX:       b.Vel.X,
			VY:       b.Vel.Y,
			Radius:   b.Radius,
			Health:   b.Health,
			State:    b.State.String(),
			Progress: b.Progress,
			Warning:  b.Warning,
			Falling:  b.Falling,
		}
	}

	return Snapshot{
		Tick:       s.tick,
		RoundID:    s.roundID,
		MapID:      s.sel.Map.ID,
		Difficulty: s.sel.Difficulty.Name,
		Phase:      s.state.Phase.String(),
		FieldW:     s.cfg.Field.Width,
		FieldH:     s.cfg.Field.Height,
		Paddle: PaddleView{
			X:         rect.X,
			Y:         rect.Y,
			W:         rect.W,
			H:         rect.H,
			Expansion: s.paddle.Expansion,
		},
		Balls: balls,

		Score:     s.state.Score,
		Combo:     s.state.Combo,
		Hits:      s.state.Hits,
		Missed:    s.state.Missed,
		MaxHits:   s.state.MaxHits,
		Accuracy:  s.state.Accuracy(),
		Health:    s.state.Health,
		MaxHealth: s.state.MaxHealth,
		ElapsedMs: s.now.Milliseconds(),

		RestartProgress: s.RestartProgress(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
// Floats are hashed by their bit patterns.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v uint64) { h = h*31 + v }
	mixF := func(f float64) { mix(math.Float64bits(f)) }

	str := fnv.New64a()
	_, _ = str.Write([]byte(snap.RoundID + "|" + snap.MapID + "|" + snap.Difficulty + "|" + snap.Phase))
	mix(str.Sum64())

	mixF(snap.Paddle.X)
	mixF(snap.Paddle.W)
	mixF(snap.Paddle.Expansion)
	mixF(snap.Score)
	mix(uint64(snap.Combo))   //#nosec G115 -- hash computation
	mix(uint64(snap.Hits))    //#nosec G115 -- hash computation
	mix(uint64(snap.Missed))  //#nosec G115 -- hash computation
	mix(uint64(snap.MaxHits)) //#nosec G115 -- hash computation
	mixF(snap.Health)
	mix(uint64(snap.ElapsedMs)) //#nosec G115 -- hash computation

	for _, b := range snap.Balls {
		mix(uint64(b.ID)) //#nosec G115 -- hash computation
		mixF(b.X)
		mixF(b.Y)
		mixF(b.VX)
		mixF(b.VY)
		mixF(b.Radius)
		mix(uint64(b.Health)) //#nosec G115 -- hash computation
		mixF(b.Progress)
	}
	return h
}
