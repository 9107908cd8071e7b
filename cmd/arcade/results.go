package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/platform/tui"
	"github.com/vovakirdan/arcade-sim/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagYes    bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show recorded race results",
	Long: `Show the fastest finished races, or the most recent ones with --recent.
Use --difficulty to filter by preset.

Examples:
  arcade results
  arcade results --difficulty hard --limit 5
  arcade results --recent
  arcade results show 01J9Z3K5QG8W7V2M4T6N0XH1RB
  arcade results board
  arcade results clear --yes`,
	RunE: runResults,
}

var resultsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one race result",
	Args:  cobra.ExactArgs(1),
	RunE:  runResultsShow,
}

var resultsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all race results",
	RunE:  runResultsClear,
}

var resultsBoardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse best times in the terminal",
	RunE:  runResultsBoard,
}

func init() {
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Maximum results to show")
	resultsCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest races instead of the fastest")
	resultsClearCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm deleting every result")

	resultsCmd.AddCommand(resultsShowCmd)
	resultsCmd.AddCommand(resultsClearCmd)
	resultsCmd.AddCommand(resultsBoardCmd)
}

func mustStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return store, nil
}

func runResults(_ *cobra.Command, _ []string) error {
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var (
		rows  []storage.RaceResult
		title string
	)
	if flagRecent {
		rows, err = store.RecentResults(flagLimit)
		title = "Recent races"
	} else {
		difficulty := ""
		if flagDifficulty != "" {
			d, perr := config.ParseDifficulty(flagDifficulty)
			if perr != nil {
				return perr
			}
			difficulty = string(d)
		}
		rows, err = store.BestTimes(difficulty, flagLimit)
		title = "Best times"
		if difficulty != "" {
			title += " (" + difficulty + ")"
		}
	}
	if err != nil {
		return fmt.Errorf("cannot load results: %w", err)
	}

	if len(rows) == 0 {
		fmt.Println("No races recorded yet.")
		return nil
	}

	fmt.Println(title + ":")
	fmt.Println()
	fmt.Printf("  %-4s  %-9s  %-5s  %-6s  %-4s  %-12s  %s\n", "Rank", "Time", "Place", "Level", "Laps", "Date", "Run")
	fmt.Printf("  %-4s  %-9s  %-5s  %-6s  %-4s  %-12s  %s\n", "----", "----", "-----", "-----", "----", "----", "---")
	for i, r := range rows {
		fmt.Printf("  %-4d  %-9s  %-5s  %-6s  %-4d  %-12s  %s\n",
			i+1,
			clock(r.FinishMs),
			fmt.Sprintf("%d/%d", r.Position, r.Racers),
			r.Difficulty,
			r.Laps,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.RunID,
		)
	}
	return nil
}

func runResultsShow(_ *cobra.Command, args []string) error {
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.RaceResultByID(args[0])
	if err != nil {
		return fmt.Errorf("cannot load result: %w", err)
	}
	if r == nil {
		return fmt.Errorf("no result with id %q", args[0])
	}

	fmt.Printf("Run:        %s\n", r.RunID)
	fmt.Printf("Date:       %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Difficulty: %s\n", r.Difficulty)
	fmt.Printf("Place:      %d of %d\n", r.Position, r.Racers)
	fmt.Printf("Time:       %s\n", clock(r.FinishMs))
	fmt.Printf("Laps:       %d\n", r.Laps)
	fmt.Printf("Seed:       %d\n", r.Seed)
	fmt.Println()
	fmt.Printf("Replay the field with: arcade play kart --difficulty %s --seed %d\n", r.Difficulty, r.Seed)
	return nil
}

func runResultsClear(_ *cobra.Command, _ []string) error {
	if !flagYes {
		return fmt.Errorf("refusing to delete results without --yes")
	}
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ClearResults(); err != nil {
		return fmt.Errorf("cannot clear results: %w", err)
	}
	fmt.Println("All race results deleted.")
	return nil
}

func runResultsBoard(_ *cobra.Command, _ []string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("board needs a terminal")
	}
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, err := term.GetSize(fd); err == nil {
		width, height = w, h
	}
	_, err = tui.RunScoreboard(store, width, height)
	return err
}
