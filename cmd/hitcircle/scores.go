package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hitcircle/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <map>",
	Short: "Show recorded clears for a map",
	Long: `Display recent clears for a map, newest first, with the best result
per difficulty.

Examples:
  hitcircle scores onigiri
  hitcircle scores babyhalo --limit 50
  hitcircle scores babyhalo --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 20, "Number of recent clears to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the map's history")
}

func runScores(_ *cobra.Command, args []string) {
	_, catalog := loadConfigs()
	m, err := catalog.Map(args[0])
	if err != nil {
		fail("%v\nRun 'hitcircle maps' to see available maps.", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening history database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearHistory(m.ID); err != nil {
			fail("clearing history: %v", err)
		}
		fmt.Printf("History cleared for %s.\n", m.Name)
		return
	}

	results, err := store.History(m.ID, flagScoresLimit)
	if err != nil {
		fail("retrieving history: %v", err)
	}
	best, err := store.BestByDifficulty(m.ID)
	if err != nil {
		fail("retrieving best results: %v", err)
	}

	fmt.Printf("History - %s (%s)\n", m.Name, m.Artist)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No clears recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'hitcircle play %s' to record the first one!\n", m.ID)
		return
	}

	fmt.Printf("  %-16s  %-10s  %10s  %7s  %-4s  %s\n", "When", "Difficulty", "Score", "Acc", "Rank", "Time")
	fmt.Printf("  %-16s  %-10s  %10s  %7s  %-4s  %s\n", "----", "----------", "-----", "---", "----", "----")
	for _, r := range results {
		fmt.Printf("  %-16s  %-10s  %10s  %6.1f%%  %-4s  %ds\n",
			humanize.Time(r.CreatedAt), r.Difficulty, humanize.Comma(int64(r.Score)),
			r.AccuracyPercent(), r.Rank, r.ElapsedSecs)
	}

	fmt.Println()
	fmt.Println("Best per difficulty:")
	for _, b := range best {
		fmt.Printf("  %-10s  %10s  %6.1f%%  %-4s  %s\n",
			b.Difficulty, humanize.Comma(int64(b.Score)), b.Accuracy*100, b.Rank,
			english.Plural(b.Plays, "clear", "clears"))
	}

	if stats, err := store.Stats(m.ID); err == nil && stats.Plays > 0 {
		fmt.Println()
		fmt.Printf("Average accuracy: %.1f%%  Last played: %s\n", stats.AvgAccuracy*100, humanize.Time(stats.LastPlayed))
	}
}
