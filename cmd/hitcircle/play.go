package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hitcircle/internal/config"
	"github.com/vovakirdan/hitcircle/internal/core"
	"github.com/vovakirdan/hitcircle/internal/platform/tui"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play [map] [difficulty]",
	Short: "Play in the terminal",
	Long: `Start the map picker, or jump straight into a map and difficulty.

Controls:
  Left/Right, A/D     - Move paddle
  Shift+Left/Right    - Move faster
  Space (twice)       - Widen the paddle for a moment
  Hold ` + "`" + `              - Restart the round
  P                   - Pause
  R/Enter             - Restart after winning or losing
  B/Esc               - Back to menu (paused or finished)
  Ctrl+S              - Save a screenshot
  Q/Ctrl+C            - Quit

Examples:
  hitcircle play
  hitcircle play babyhalo
  hitcircle play onigiri insane --seed 7`,
	Args: cobra.MaximumNArgs(2),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal is owned by the game)")
}

func runPlay(_ *cobra.Command, args []string) {
	cfg, catalog := loadConfigs()

	var initial *config.Selection
	if len(args) > 0 {
		sel := resolveSelection(catalog, args)
		initial = &sel
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	logger := log.New(io.Discard)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			fail("cannot open log file: %v", err)
		}
		defer f.Close()
		logger = newLogger("hitcircle")
		logger.SetOutput(f)
	}

	store := openStore()

	runErr := tui.Run(tui.AppOptions{
		Catalog: catalog,
		Game:    cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:   store,
		Logger:  logger,
		Initial: initial,
	})

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
