package game

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/hitcircle/internal/config"
	"github.com/vovakirdan/hitcircle/internal/core"
)

// ResultRecorder persists won rounds. Failures are logged and never affect
// the simulation.
type ResultRecorder interface {
	RecordResult(ctx context.Context, s Summary) error
}

// StepResult is returned from each tick.
type StepResult struct {
	Phase  Phase
	Events []Event
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger sets the logger for phase transitions and recorder failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the store that receives win summaries.
func WithRecorder(r ResultRecorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// Session owns one player's game: the paddle, the active balls and the
// round counters. It is not safe for concurrent use; callers serialize
// Tick, Restart and Snapshot.
type Session struct {
	sel     config.Selection
	cfg     config.GameConfig
	runtime core.RuntimeConfig

	rng     *rand.Rand
	decoRNG *rand.Rand
	spawner *Spawner
	paddle  *Paddle
	balls   []*Ball
	state   State
	sched   *Scheduler

	regen      *Task
	decoration *Task

	roundID string
	dt      time.Duration
	now     time.Duration // Simulated time since round start
	tick    uint64
	held    time.Duration // How long restart has been held

	// restartLatched is set by Restart and cleared by the first frame
	// without restart, so one continuous hold restarts at most once.
	restartLatched bool

	events   []Event
	recorder ResultRecorder
	logger   *log.Logger
}

// NewSession starts a round on the selected map and difficulty.
func NewSession(sel config.Selection, cfg config.GameConfig, runtime core.RuntimeConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sel.Difficulty.BallCount < 1 || sel.Difficulty.InitialBallSpeed <= 0 {
		return nil, fmt.Errorf("%w: difficulty %q of map %q is not playable",
			config.ErrInvalidConfig, sel.Difficulty.Name, sel.Map.ID)
	}

	s := &Session{
		sel:     sel,
		cfg:     cfg,
		runtime: runtime,
		rng:     rand.New(rand.NewSource(runtime.Seed)),
		decoRNG: rand.New(rand.NewSource(runtime.Seed + 1)),
		dt:      runtime.TickDuration(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.spawner = NewSpawner(s.rng, cfg.Ball, cfg.Field)
	s.paddle = NewPaddle(cfg.Paddle, cfg.Field)
	s.sched = NewScheduler(s.dt)
	s.Restart()
	s.restartLatched = false
	return s, nil
}

// Selection returns the map and difficulty being played.
func (s *Session) Selection() config.Selection { return s.sel }

// Config returns the gameplay configuration.
func (s *Session) Config() config.GameConfig { return s.cfg }

// State returns a copy of the round counters.
func (s *Session) State() State { return s.state }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.state.Phase }

// Balls returns the live ball set. Callers must not retain it across ticks.
func (s *Session) Balls() []*Ball { return s.balls }

// Paddle returns the session's paddle.
func (s *Session) Paddle() *Paddle { return s.paddle }

// Now returns simulated time since the round started.
func (s *Session) Now() time.Duration { return s.now }

// RoundID returns the identifier of the current round.
func (s *Session) RoundID() string { return s.roundID }

// Restart begins a fresh round with the same selection.
// Pending scheduled tasks from the previous round are cancelled.
func (s *Session) Restart() StepResult {
	s.events = nil
	s.sched.CancelAll()
	s.regen = nil
	s.decoration = nil

	s.roundID = s.newRoundID()
	s.now = 0
	s.tick = 0
	s.held = 0
	s.restartLatched = true
	s.paddle.Reset()
	s.state = State{
		Phase:     PhasePlaying,
		Health:    s.cfg.Player.MaxHealth,
		MaxHealth: s.cfg.Player.MaxHealth,
	}

	s.balls = make([]*Ball, 0, s.sel.Difficulty.BallCount)
	for i := 0; i < s.sel.Difficulty.BallCount; i++ {
		b := s.spawner.Ball(s.sel.Difficulty.InitialBallSpeed, s.now)
		s.balls = append(s.balls, b)
		s.state.MaxHits += b.Health
		s.emit(BallSpawnedEvent{BallID: b.ID})
	}

	s.regen = s.sched.Every(time.Duration(s.cfg.Player.RegenIntervalMs)*time.Millisecond, s.regenerate)

	s.emit(RestartEvent{RoundID: s.roundID})
	s.emit(SoundEvent{Name: SoundRestart})
	s.logger.Debug("round started", "round", s.roundID, "map", s.sel.Map.ID,
		"difficulty", s.sel.Difficulty.Name, "balls", len(s.balls))
	return s.result()
}

// newRoundID draws a UUID from the session RNG so seeded runs repeat exactly.
func (s *Session) newRoundID() string {
	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Tick advances the round by one fixed step.
func (s *Session) Tick(in core.InputFrame) StepResult {
	s.events = nil

	if s.restartHeld(in) {
		return s.Restart()
	}

	switch s.state.Phase {
	case PhaseWon:
		return s.result()
	case PhaseLost:
		s.sched.Advance()
		return s.result()
	case PhasePaused:
		if in.Has(core.ActionPause) {
			s.setPhase(PhasePlaying)
		}
		return s.result()
	}

	if in.Has(core.ActionPause) {
		s.setPhase(PhasePaused)
		return s.result()
	}

	s.tick++
	s.now += s.dt
	s.step(in)
	return s.result()
}

// restartHeld accumulates hold time while restart is held, in any phase,
// and reports when the hold exceeds the configured duration. After a
// restart the input must be released before a new hold counts.
func (s *Session) restartHeld(in core.InputFrame) bool {
	if !in.Has(core.ActionRestart) {
		s.held = 0
		s.restartLatched = false
		return false
	}
	if s.restartLatched {
		return false
	}
	s.held += s.dt
	return s.held > time.Duration(s.cfg.Session.RestartHoldMs)*time.Millisecond
}

// RestartProgress returns how far the restart hold is, in [0, 1].
func (s *Session) RestartProgress() float64 {
	need := time.Duration(s.cfg.Session.RestartHoldMs) * time.Millisecond
	if need <= 0 || s.held == 0 {
		return 0
	}
	return min(1, float64(s.held)/float64(need))
}

func (s *Session) step(in core.InputFrame) {
	// Balls whose clear animation finished last tick leave the set first.
	if s.sweepRemoved() && len(s.balls) == 0 {
		s.win()
		return
	}

	if in.Has(core.ActionExpand) {
		s.paddle.TriggerExpand(s.now)
	}
	s.paddle.Move(in.Has(core.ActionLeft), in.Has(core.ActionRight), in.Has(core.ActionBoost))
	s.paddle.Advance()
	rect := s.paddle.Rect()

	kept := make([]*Ball, 0, len(s.balls))
	for i, b := range s.balls {
		if b.State == BallDisappearing {
			b.advanceFade(s.cfg.Ball.DisappearStep)
			kept = append(kept, b)
			continue
		}
		if !b.Active() {
			kept = append(kept, b)
			continue
		}

		Integrate(b)
		ResolveWall(b, s.cfg.Field.Width)
		if PaddleContact(b, rect) {
			s.paddleHit(b)
		}

		if b.Active() && b.Top() > s.cfg.Field.Height {
			s.miss(b)
			if s.state.Phase == PhaseLost {
				s.balls = append(kept, s.balls[i+1:]...)
				return
			}
			continue
		}
		kept = append(kept, b)
	}
	s.balls = kept

	for i := 0; i < len(s.balls); i++ {
		for j := i + 1; j < len(s.balls); j++ {
			if ResolveBallBall(s.balls[i], s.balls[j]) {
				s.balls[i].LastBounce = s.now
				s.balls[j].LastBounce = s.now
			}
		}
	}

	gravityAfter := time.Duration(s.cfg.Ball.GravityAfterMs) * time.Millisecond
	warningAfter := time.Duration(s.cfg.Ball.WarningAfterMs) * time.Millisecond
	for _, b := range s.balls {
		if !b.Active() {
			continue
		}
		since := s.now - b.LastBounce
		b.Falling = since > gravityAfter
		b.Warning = !b.Falling && since > warningAfter
		if b.Falling {
			ApplyGravity(b, s.cfg.Ball.Gravity)
		}
	}

	s.sched.Advance()

	if s.state.Phase == PhasePlaying && len(s.balls) == 0 {
		s.win()
	}
}

// sweepRemoved drops balls whose animation completed and reports whether
// any were dropped.
func (s *Session) sweepRemoved() bool {
	kept := s.balls[:0]
	removed := false
	for _, b := range s.balls {
		if b.State == BallRemoved {
			s.emit(BallRemovedEvent{BallID: b.ID})
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	clear(s.balls[len(kept):])
	s.balls = kept
	return removed
}

func (s *Session) paddleHit(b *Ball) {
	b.LastBounce = s.now
	b.Vel.Y = -b.Vel.Y

	s.state.Hits++
	s.state.Combo++
	points := float64(b.Health) * b.Speed() * (1 + float64(s.state.Combo)/10)
	s.state.Score += points

	s.emit(SoundEvent{Name: SoundHit})
	if b.Health > 1 {
		b.Health--
		s.emit(HitEvent{BallID: b.ID, Health: b.Health, Points: points})
	} else {
		b.startDisappearing()
		s.state.Score += s.cfg.Ball.ClearBonus
		s.emit(HitEvent{BallID: b.ID, Health: 0, Points: points})
		s.emit(BallClearedEvent{BallID: b.ID, Bonus: s.cfg.Ball.ClearBonus})
		s.emit(SoundEvent{Name: SoundHitBreak})
	}
	s.emitScore()
}

func (s *Session) miss(b *Ball) {
	b.State = BallRemoved
	s.state.Missed += b.Health
	s.state.Combo = 0

	if s.state.Health-float64(b.Health) <= 0 {
		s.state.Health = 0
	} else {
		s.state.Health -= float64(b.Health)
	}

	s.emit(BallMissedEvent{BallID: b.ID, Health: b.Health, RemainingHealth: s.state.Health})
	s.emit(BallRemovedEvent{BallID: b.ID})
	s.emit(SoundEvent{Name: SoundMiss})
	s.emitScore()
	s.emitHealth()

	if s.state.Health == 0 {
		s.lose()
	}
}

// regenerate is the scheduled health tick. A negative amount drains health.
func (s *Session) regenerate() {
	if s.state.Phase != PhasePlaying {
		return
	}
	next := core.ClampF(s.state.Health+s.cfg.Player.RegenAmount, 0, s.state.MaxHealth)
	if next == s.state.Health {
		return
	}
	s.state.Health = next
	s.emitHealth()
	if next == 0 {
		s.lose()
	}
}

func (s *Session) lose() {
	if s.state.Phase.Terminal() {
		return
	}
	s.setPhase(PhaseLost)
	s.regen.Cancel()
	s.emit(LoseEvent{})
	s.emit(SoundEvent{Name: SoundFail})

	interval := time.Duration(s.cfg.Session.DecorationIntervalMs) * time.Millisecond
	s.decoration = s.sched.Every(interval, func() {
		if s.state.Phase != PhaseLost {
			return
		}
		s.emit(DecorationEvent{X: s.decoRNG.Float64() * s.cfg.Field.Width})
	})

	s.logger.Debug("round lost", "round", s.roundID, "map", s.sel.Map.ID,
		"score", s.state.Score, "elapsed", s.now)
}

func (s *Session) win() {
	if s.state.Phase.Terminal() {
		return
	}
	s.setPhase(PhaseWon)
	s.regen.Cancel()

	summary := s.summary()
	s.emit(WinEvent{Summary: summary})
	if summary.Accuracy > 0.6 {
		s.emit(SoundEvent{Name: SoundGradePass})
	} else {
		s.emit(SoundEvent{Name: SoundGradeFail})
	}

	s.logger.Debug("round won", "round", s.roundID, "map", s.sel.Map.ID,
		"rank", summary.Rank, "score", summary.Score)

	if s.recorder != nil {
		if err := s.recorder.RecordResult(context.Background(), summary); err != nil {
			s.logger.Warn("failed to record result", "round", s.roundID, "err", err)
		}
	}
}

func (s *Session) summary() Summary {
	acc := s.state.FinalAccuracy()
	return Summary{
		RoundID:    s.roundID,
		MapID:      s.sel.Map.ID,
		MapName:    s.sel.Map.Name,
		Difficulty: s.sel.Difficulty.Name,
		Score:      s.state.Score,
		Hits:       s.state.Hits,
		MaxHits:    s.state.MaxHits,
		Accuracy:   acc,
		Rank:       RankFor(acc),
		Elapsed:    s.now,
	}
}

func (s *Session) setPhase(p Phase) {
	if s.state.Phase == p {
		return
	}
	from := s.state.Phase
	s.state.Phase = p
	s.emit(PhaseChangedEvent{From: from, To: p})
}

func (s *Session) emitScore() {
	s.emit(ScoreChangedEvent{Score: s.state.Score, Combo: s.state.Combo, Accuracy: s.state.Accuracy()})
}

func (s *Session) emitHealth() {
	s.emit(HealthChangedEvent{Health: s.state.Health, MaxHealth: s.state.MaxHealth})
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *Session) result() StepResult {
	return StepResult{Phase: s.state.Phase, Events: s.events}
}
