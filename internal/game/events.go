package game

// Event is emitted by a Session during a tick for presentation layers.
type Event interface {
	gameEvent()
}

// Sound names an audio intent. Playback is up to the presentation layer.
type Sound string

const (
	SoundHit       Sound = "hit"
	SoundHitBreak  Sound = "hit-break"
	SoundMiss      Sound = "miss"
	SoundFail      Sound = "fail"
	SoundGradePass Sound = "gameover-pass"
	SoundGradeFail Sound = "gameover-fail"
	SoundRestart   Sound = "restart"
)

// HitEvent is sent when a ball bounces off the paddle.
type HitEvent struct {
	BallID int
	Health int     // Ball health after the hit
	Points float64 // Score awarded for the hit
}

func (HitEvent) gameEvent() {}

// BallClearedEvent is sent when a hit takes a ball's last point of health.
type BallClearedEvent struct {
	BallID int
	Bonus  float64
}

func (BallClearedEvent) gameEvent() {}

// BallMissedEvent is sent when a ball leaves through the floor.
type BallMissedEvent struct {
	BallID          int
	Health          int     // Ball health lost to the player
	RemainingHealth float64 // Player health afterwards
}

func (BallMissedEvent) gameEvent() {}

// BallSpawnedEvent is sent for every ball created at round start.
type BallSpawnedEvent struct {
	BallID int
}

func (BallSpawnedEvent) gameEvent() {}

// BallRemovedEvent is sent when a ball leaves the active set.
type BallRemovedEvent struct {
	BallID int
}

func (BallRemovedEvent) gameEvent() {}

// ScoreChangedEvent is sent after any change to score, combo or accuracy.
type ScoreChangedEvent struct {
	Score    float64
	Combo    int
	Accuracy float64 // Running accuracy in [0, 1]
}

func (ScoreChangedEvent) gameEvent() {}

// HealthChangedEvent is sent when player health changes.
type HealthChangedEvent struct {
	Health    float64
	MaxHealth float64
}

func (HealthChangedEvent) gameEvent() {}

// PhaseChangedEvent is sent on every phase transition.
type PhaseChangedEvent struct {
	From Phase
	To   Phase
}

func (PhaseChangedEvent) gameEvent() {}

// WinEvent is sent once when the last ball is gone.
type WinEvent struct {
	Summary Summary
}

func (WinEvent) gameEvent() {}

// LoseEvent is sent once when player health runs out.
type LoseEvent struct{}

func (LoseEvent) gameEvent() {}

// RestartEvent is sent when a new round begins.
type RestartEvent struct {
	RoundID string
}

func (RestartEvent) gameEvent() {}

// SoundEvent asks the presentation layer to play a sound.
type SoundEvent struct {
	Name Sound
}

func (SoundEvent) gameEvent() {}

// DecorationEvent asks the loss screen to spawn an ornament at X.
type DecorationEvent struct {
	X float64
}

func (DecorationEvent) gameEvent() {}
