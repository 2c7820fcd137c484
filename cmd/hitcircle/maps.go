package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List maps and difficulty tiers",
	Long:  `Shows every map in the catalog with its difficulty tiers.`,
	Args:  cobra.NoArgs,
	Run:   runMaps,
}

func runMaps(_ *cobra.Command, _ []string) {
	_, catalog := loadConfigs()

	fmt.Println("Available maps:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, m := range catalog.Maps {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Map")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "---")

	for _, m := range catalog.Maps {
		fmt.Printf("  %-*s  %s - %s\n", maxIDLen, m.ID, m.Name, m.Artist)
		if m.Description != "" {
			fmt.Printf("  %-*s  %s\n", maxIDLen, "", m.Description)
		}
		for _, d := range m.Difficulties {
			fmt.Printf("  %-*s    %-8s %2d balls  speed %.0f\n", maxIDLen, "", d.Name, d.BallCount, d.InitialBallSpeed)
		}
		fmt.Println()
	}

	fmt.Println("Run 'hitcircle play <id> [difficulty]' to play a map.")
}
