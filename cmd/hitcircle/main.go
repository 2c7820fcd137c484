// hitcircle is a paddle game with health-bearing falling balls, played in
// the terminal, over SSH, or from a browser through a WebSocket server.
//
// Usage:
//
//	hitcircle play [map] [difficulty]  - Play (menu when no map is given)
//	hitcircle maps                     - List maps and difficulty tiers
//	hitcircle scores <map>             - Show recorded clears for a map
//	hitcircle serve                    - Start SSH server for remote play
//	hitcircle web                      - Start WebSocket server for browsers
//	hitcircle sim [map] [difficulty]   - Run a headless round with an autopilot
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.hitcircle/history.db)
//	--config <path>       - Gameplay tunables YAML
//	--maps <path>         - Map catalog YAML
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hitcircle/internal/config"
	"github.com/vovakirdan/hitcircle/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagMaps     string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hitcircle",
	Short: "hitcircle - keep the balls up with your paddle",
	Long: `hitcircle is a paddle game: every ball carries health, every paddle
hit knocks one point off and scores, and every ball that reaches the floor
costs you its remaining health. Clear all balls to win.

Available commands:
  play     - Play in the terminal
  maps     - Show maps and difficulty tiers
  scores   - View recorded clears
  serve    - Start SSH server for remote play
  web      - Start WebSocket server for browser clients
  sim      - Run a headless round with an autopilot

Examples:
  hitcircle play
  hitcircle play onigiri hard
  hitcircle scores babyhalo
  hitcircle serve --ssh :2222
  hitcircle sim reaction-slyleaf insane --seed 42`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hitcircle/history.db", "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	rootCmd.PersistentFlags().StringVar(&flagMaps, "maps", "", "Path to custom map catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(simCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfigs reads the gameplay tunables and the map catalog.
func loadConfigs() (config.GameConfig, config.Catalog) {
	cfg, err := config.LoadGame(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	catalog, err := config.LoadCatalog(flagMaps)
	if err != nil {
		fail("%v", err)
	}
	return cfg, catalog
}

// newLogger builds a timestamped stderr logger at the --log-level.
func newLogger(prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level %q: %v", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// openStore opens the history database, warning and continuing without one on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return nil
	}
	return store
}

// resolveSelection picks a map and difficulty from positional arguments.
// A missing difficulty selects the map's first tier.
func resolveSelection(catalog config.Catalog, args []string) config.Selection {
	if len(args) == 0 {
		fail("a map id is required; run 'hitcircle maps' to list them")
	}
	m, err := catalog.Map(args[0])
	if err != nil {
		fail("%v\nRun 'hitcircle maps' to see available maps.", err)
	}
	if len(args) < 2 {
		return config.Selection{Map: m, Difficulty: m.Difficulties[0]}
	}
	d, err := m.Difficulty(args[1])
	if err != nil {
		fail("%v", err)
	}
	return config.Selection{Map: m, Difficulty: d}
}
