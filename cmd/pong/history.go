package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-pong/internal/game"
	"github.com/vovakirdan/neon-pong/internal/platform/tui"
	"github.com/vovakirdan/neon-pong/internal/storage"
)

var (
	flagHistoryLimit  int
	flagHistoryMode   string
	flagHistoryClear  bool
	flagHistoryBrowse bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent matches",
	Long: `Display recently played matches and per-mode statistics.

Abandoned matches are listed without a winner.

Examples:
  pong history
  pong history --limit 5
  pong history --mode two
  pong history --browse
  pong history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().StringVar(&flagHistoryMode, "mode", "", "Only show this mode: single, two, online")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded matches")
	historyCmd.Flags().BoolVar(&flagHistoryBrowse, "browse", false, "Browse the history interactively")
}

func runHistory(_ *cobra.Command, _ []string) {
	var mode game.Mode
	if flagHistoryMode != "" {
		m, err := game.ParseMode(flagHistoryMode)
		if err != nil {
			fatal("%v", err)
		}
		mode = m
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening history database: %v", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearHistory(); err != nil {
			store.Close()
			fatal("clearing history: %v", err)
		}
		fmt.Println("Match history cleared.")
		return
	}

	if flagHistoryBrowse {
		w, h, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			w, h = 80, 24
		}
		if err := tui.RunScoreboard(store, w, h); err != nil {
			store.Close()
			fatal("%v", err)
		}
		return
	}

	matches, err := store.RecentMatches(mode, flagHistoryLimit)
	if err != nil {
		store.Close()
		fatal("retrieving matches: %v", err)
	}

	fmt.Println("Match History")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pong play' to record the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-10s  %-6s  %-5s  %-8s  %s\n", "Date", "Mode", "Level", "Score", "Winner", "Time")
	fmt.Printf("  %-16s  %-10s  %-6s  %-5s  %-8s  %s\n", "----", "----", "-----", "-----", "------", "----")

	for _, m := range matches {
		winner := m.Winner
		if !m.Completed() {
			winner = "-"
		}
		fmt.Printf("  %-16s  %-10s  %-6s  %-5s  %-8s  %s\n",
			m.PlayedAt.Local().Format("2006-01-02 15:04"),
			m.Mode,
			m.Difficulty,
			fmt.Sprintf("%d-%d", m.ScoreLeft, m.ScoreRight),
			winner,
			m.Duration.Round(time.Second),
		)
	}

	stats, err := store.Stats()
	if err != nil {
		store.Close()
		fatal("retrieving statistics: %v", err)
	}

	fmt.Println()
	for _, md := range game.Modes {
		st, ok := stats[md]
		if !ok {
			continue
		}
		fmt.Printf("  %-10s  played %d, finished %d, left wins %d, right wins %d, average %s\n",
			md, st.Played, st.Completed, st.LeftWins, st.RightWins, st.AvgDuration.Round(time.Second))
	}
}
