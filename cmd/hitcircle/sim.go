package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hitcircle/internal/core"
	"github.com/vovakirdan/hitcircle/internal/game"
)

var (
	flagSimTicks  int
	flagSimRecord bool
)

var simCmd = &cobra.Command{
	Use:   "sim <map> [difficulty]",
	Short: "Run a headless round with an autopilot",
	Long: `Play a round without a terminal: the paddle chases the lowest
descending ball until the round ends or the tick limit is reached.
Events are logged at debug level. With a fixed --seed the run is
reproducible and the final snapshot hash can be compared across builds.

Examples:
  hitcircle sim babyhalo hard --seed 1
  hitcircle sim onigiri insane --ticks 7200 --log-level debug
  hitcircle sim reaction-slyleaf normal --record`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 60*60*10, "Maximum ticks to simulate")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Store a win in the history database")
}

func runSim(_ *cobra.Command, args []string) {
	cfg, catalog := loadConfigs()
	sel := resolveSelection(catalog, args)
	logger := newLogger("hitcircle-sim")

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := []game.Option{game.WithLogger(logger)}
	if flagSimRecord {
		if store := openStore(); store != nil {
			defer store.Close()
			opts = append(opts, game.WithRecorder(store))
		}
	}

	session, err := game.NewSession(sel, cfg, core.RuntimeConfig{TickRate: flagFPS, Seed: seed}, opts...)
	if err != nil {
		fail("%v", err)
	}
	logger.Info("simulating", "map", sel.Map.ID, "difficulty", sel.Difficulty.Name, "seed", seed, "balls", len(session.Balls()))

	ticks := 0
	for ticks < flagSimTicks && !session.Phase().Terminal() {
		res := session.Tick(game.Autopilot(session.Snapshot()))
		ticks++
		logEvents(logger, ticks, res.Events)
	}

	snap := session.Snapshot()
	state := session.State()
	fmt.Printf("%s  seed=%d  ticks=%d  phase=%s\n", sel.Label(), seed, ticks, state.Phase)
	fmt.Printf("score=%.0f  hits=%d/%d  missed=%d  health=%.2f/%.0f\n",
		state.Score, state.Hits, state.MaxHits, state.Missed, state.Health, state.MaxHealth)
	if state.Phase == game.PhaseWon {
		fmt.Printf("accuracy=%.1f%%  rank=%s\n", state.FinalAccuracy()*100, game.RankFor(state.FinalAccuracy()))
	}
	fmt.Printf("hash=%d\n", snap.Hash())
}

// logEvents reports a tick's events at debug level.
func logEvents(logger *log.Logger, tick int, events []game.Event) {
	for _, e := range events {
		switch e := e.(type) {
		case game.HitEvent:
			logger.Debug("hit", "tick", tick, "ball", e.BallID, "health", e.Health, "points", e.Points)
		case game.BallClearedEvent:
			logger.Debug("cleared", "tick", tick, "ball", e.BallID, "bonus", e.Bonus)
		case game.BallMissedEvent:
			logger.Debug("missed", "tick", tick, "ball", e.BallID, "health", e.Health, "remaining", e.RemainingHealth)
		case game.WinEvent:
			logger.Info("won", "tick", tick, "summary", e.Summary.String())
		case game.LoseEvent:
			logger.Info("lost", "tick", tick)
		case game.PhaseChangedEvent:
			logger.Debug("phase", "tick", tick, "from", e.From, "to", e.To)
		}
	}
}
