package game

import (
	"fmt"
	"time"
)

// Phase is the round's top-level state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhasePaused
	PhaseLost
	PhaseWon
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseLost:
		return "lost"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether the round has ended.
func (p Phase) Terminal() bool {
	return p == PhaseLost || p == PhaseWon
}

// Rank is the letter grade of a won round.
type Rank string

const (
	RankD  Rank = "D"
	RankC  Rank = "C"
	RankB  Rank = "B"
	RankA  Rank = "A"
	RankS  Rank = "S"
	RankSS Rank = "SS"
)

// rankThresholds is ordered by ascending minimum accuracy.
var rankThresholds = []struct {
	min  float64
	rank Rank
}{
	{0, RankD},
	{0.6, RankC},
	{0.8, RankB},
	{0.9, RankA},
	{0.95, RankS},
	{1, RankSS},
}

// RankFor returns the rank of the highest threshold not above accuracy.
func RankFor(accuracy float64) Rank {
	rank := RankD
	for _, t := range rankThresholds {
		if accuracy >= t.min {
			rank = t.rank
		}
	}
	return rank
}

// State holds the round's counters.
type State struct {
	Phase     Phase
	Health    float64
	MaxHealth float64
	Score     float64
	Combo     int
	Hits      int
	Missed    int // Sum of health of balls that fell through
	MaxHits   int // Sum of health of all balls spawned this round
}

// Accuracy returns hits over attempts so far, or 1 before any attempt.
func (s State) Accuracy() float64 {
	attempts := s.Hits + s.Missed
	if attempts == 0 {
		return 1
	}
	return float64(s.Hits) / float64(attempts)
}

// FinalAccuracy returns hits over the round's total available hits.
func (s State) FinalAccuracy() float64 {
	if s.MaxHits == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.MaxHits)
}

// Summary is the record of a won round.
type Summary struct {
	RoundID    string
	MapID      string
	MapName    string
	Difficulty string
	Score      float64
	Hits       int
	MaxHits    int
	Accuracy   float64 // Fraction in [0, 1]
	Rank       Rank
	Elapsed    time.Duration
}

// AccuracyPercent returns accuracy as a percentage.
func (s Summary) AccuracyPercent() float64 {
	return s.Accuracy * 100
}

// ElapsedSeconds returns whole seconds played.
func (s Summary) ElapsedSeconds() int {
	return int(s.Elapsed / time.Second)
}

// String formats the summary for logs and terminal output.
func (s Summary) String() string {
	return fmt.Sprintf("%s [%s] %s score=%.0f acc=%.1f%% hits=%d/%d time=%ds",
		s.MapName, s.Difficulty, s.Rank, s.Score, s.AccuracyPercent(), s.Hits, s.MaxHits, s.ElapsedSeconds())
}
