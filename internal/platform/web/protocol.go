package web

import (
	"github.com/vovakirdan/hitcircle/internal/core"
	"github.com/vovakirdan/hitcircle/internal/game"
)

// Input is the control state a browser client sends. Movement, boost and
// restart are levels; expand and pause act on their rising edge.
type Input struct {
	Left    bool `json:"left"`
	Right   bool `json:"right"`
	Boost   bool `json:"boost"`
	Expand  bool `json:"expand"`
	Restart bool `json:"restart"`
	Pause   bool `json:"pause"`
}

// levels returns a frame with the held actions of in.
func (in Input) levels() core.InputFrame {
	frame := core.NewInputFrame()
	if in.Left {
		frame.Set(core.ActionLeft)
	}
	if in.Right {
		frame.Set(core.ActionRight)
	}
	if in.Boost {
		frame.Set(core.ActionBoost)
	}
	if in.Restart {
		frame.Set(core.ActionRestart)
	}
	return frame
}

// Frame is sent to the client after every tick.
type Frame struct {
	Snapshot game.Snapshot `json:"snapshot"`
	Events   []EventMessage `json:"events"`
}

// ErrorMessage is sent before the server closes a connection it cannot serve.
type ErrorMessage struct {
	Error string `json:"error"`
}

// EventMessage is a typed session event.
type EventMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type phaseData struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type summaryData struct {
	RoundID     string  `json:"round_id"`
	MapID       string  `json:"map_id"`
	MapName     string  `json:"map_name"`
	Difficulty  string  `json:"difficulty"`
	Score       float64 `json:"score"`
	Hits        int     `json:"hits"`
	MaxHits     int     `json:"max_hits"`
	Accuracy    float64 `json:"accuracy"`
	Rank        string  `json:"rank"`
	ElapsedSecs int     `json:"elapsed_secs"`
}

// encodeEvents names each event for the wire.
func encodeEvents(events []game.Event) []EventMessage {
	out := make([]EventMessage, 0, len(events))
	for _, e := range events {
		out = append(out, encodeEvent(e))
	}
	return out
}

func encodeEvent(e game.Event) EventMessage {
	switch e := e.(type) {
	case game.HitEvent:
		return EventMessage{"hit", map[string]any{"ball_id": e.BallID, "health": e.Health, "points": e.Points}}
	case game.BallClearedEvent:
		return EventMessage{"ball_cleared", map[string]any{"ball_id": e.BallID, "bonus": e.Bonus}}
	case game.BallMissedEvent:
		return EventMessage{"ball_missed", map[string]any{"ball_id": e.BallID, "health": e.Health, "remaining_health": e.RemainingHealth}}
	case game.BallSpawnedEvent:
		return EventMessage{"ball_spawned", map[string]any{"ball_id": e.BallID}}
	case game.BallRemovedEvent:
		return EventMessage{"ball_removed", map[string]any{"ball_id": e.BallID}}
	case game.ScoreChangedEvent:
		return EventMessage{"score", map[string]any{"score": e.Score, "combo": e.Combo, "accuracy": e.Accuracy}}
	case game.HealthChangedEvent:
		return EventMessage{"health", map[string]any{"health": e.Health, "max_health": e.MaxHealth}}
	case game.PhaseChangedEvent:
		return EventMessage{"phase", phaseData{From: e.From.String(), To: e.To.String()}}
	case game.WinEvent:
		s := e.Summary
		return EventMessage{"win", summaryData{
			RoundID:     s.RoundID,
			MapID:       s.MapID,
			MapName:     s.MapName,
			Difficulty:  s.Difficulty,
			Score:       s.Score,
			Hits:        s.Hits,
			MaxHits:     s.MaxHits,
			Accuracy:    s.Accuracy,
			Rank:        string(s.Rank),
			ElapsedSecs: s.ElapsedSeconds(),
		}}
	case game.LoseEvent:
		return EventMessage{Type: "lose"}
	case game.RestartEvent:
		return EventMessage{"restart", map[string]any{"round_id": e.RoundID}}
	case game.SoundEvent:
		return EventMessage{"sound", map[string]any{"name": string(e.Name)}}
	case game.DecorationEvent:
		return EventMessage{"decoration", map[string]any{"x": e.X}}
	default:
		return EventMessage{Type: "unknown"}
	}
}
