package config

import (
	_ "embed"
)

//go:embed defaults/hitcircle.yaml
var defaultGameYAML []byte

//go:embed defaults/maps.yaml
var defaultMapsYAML []byte

// DefaultGameConfig returns the default gameplay configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Field: FieldConfig{
			Width:  1600,
			Height: 900,
		},
		Paddle: PaddleConfig{
			Width:            200,
			Height:           40,
			Padding:          20,
			Speed:            20,
			BoostMultiplier:  2,
			ExpandReach:      400,
			ExpandRate:       0.1,
			RetractRate:      0.05,
			ExpandCooldownMs: 3000,
			DoubleTapMs:      500,
		},
		Ball: BallConfig{
			MinRadius:      30,
			MaxRadius:      60,
			MaxHealth:      9,
			Gravity:        0.2,
			GravityAfterMs: 5000,
			WarningAfterMs: 3000,
			DisappearStep:  0.02,
			ClearBonus:     1000,
		},
		Player: PlayerConfig{
			MaxHealth:       10,
			RegenAmount:     0.01,
			RegenIntervalMs: 100,
		},
		Session: SessionConfig{
			RestartHoldMs:        300,
			DecorationIntervalMs: 500,
		},
	}
}

// DefaultCatalog returns the built-in map catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Maps: []MapConfig{
			{
				ID:          "reaction-slyleaf",
				Name:        "Reaction feat. Slyleaf",
				Artist:      "Slyleaf",
				Description: "A normal map with balanced number of balls and speed.",
				Difficulties: []DifficultyTier{
					{Name: "Easy", BallCount: 1, InitialBallSpeed: 3},
					{Name: "Normal", BallCount: 2, InitialBallSpeed: 5},
					{Name: "Hard", BallCount: 5, InitialBallSpeed: 7},
					{Name: "Insane", BallCount: 8, InitialBallSpeed: 9},
				},
			},
			{
				ID:          "babyhalo",
				Name:        "Babyhalo",
				Artist:      "sana",
				Description: "A slow map with a lot of balls.",
				Difficulties: []DifficultyTier{
					{Name: "Easy", BallCount: 1, InitialBallSpeed: 3},
					{Name: "Normal", BallCount: 2, InitialBallSpeed: 4},
					{Name: "Hard", BallCount: 10, InitialBallSpeed: 4},
					{Name: "Insane", BallCount: 15, InitialBallSpeed: 5},
				},
			},
			{
				ID:          "onigiri",
				Name:        "Onigiri",
				Artist:      "OISHII",
				Description: "Small amount of objects but very fast.",
				Difficulties: []DifficultyTier{
					{Name: "Easy", BallCount: 1, InitialBallSpeed: 6},
					{Name: "Normal", BallCount: 2, InitialBallSpeed: 10},
					{Name: "Hard", BallCount: 2, InitialBallSpeed: 15},
					{Name: "Insane", BallCount: 3, InitialBallSpeed: 20},
				},
			},
		},
	}
}
