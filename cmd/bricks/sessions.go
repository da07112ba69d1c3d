package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bricks/internal/economy"
	"github.com/vovakirdan/bricks/internal/platform/tui"
	"github.com/vovakirdan/bricks/internal/storage"
)

var (
	flagSessionsLimit int
	flagSessionsUI    bool
	flagSessionsClear bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [id]",
	Short: "Show finished rounds",
	Long: `Display the most recent finished rounds, or one round by its session id.

Examples:
  bricks sessions
  bricks sessions --limit 50
  bricks sessions --ui
  bricks sessions 6f1c2e0a-8a4b-4d57-9d0e-2b8f1f5d3c11`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionsLimit, "limit", 10, "Number of rounds to show")
	sessionsCmd.Flags().BoolVar(&flagSessionsUI, "ui", false, "Browse history in an interactive table")
	sessionsCmd.Flags().BoolVar(&flagSessionsClear, "clear", false, "Delete all recorded rounds")
}

func runSessions(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagSessionsClear:
		if err := store.ClearSessions(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
	case len(args) == 1:
		showSession(store, args[0])
	case flagSessionsUI:
		width, height := 80, 24
		if w, h, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		listSessions(store, flagSessionsLimit)
	}
}

func listSessions(store *storage.Store, limit int) {
	records, err := store.RecentSessions(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Rounds")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bricks play' to earn your first coins!")
		return
	}

	fmt.Printf("  %-16s  %-12s  %-6s  %6s  %10s  %10s\n", "Date", "Player", "Result", "Score", "Coins", "Total")
	fmt.Printf("  %-16s  %-12s  %-6s  %6s  %10s  %10s\n", "----", "------", "------", "-----", "-----", "-----")
	for _, rec := range records {
		fmt.Printf("  %-16s  %-12s  %-6s  %6d  %10s  %10s\n",
			rec.CreatedAt.Format("2006-01-02 15:04"),
			playerName(rec.Player),
			rec.Outcome,
			rec.Score,
			"+"+economy.Format(rec.CoinsEarned),
			economy.Format(rec.TotalCoins),
		)
	}

	stats, err := store.Stats()
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Rounds: %d  Wins: %d  High score: %d  Coins earned: %s\n",
		stats.Sessions, stats.Wins, stats.HighScore, economy.Format(stats.TotalEarned))
}

func showSession(store *storage.Store, raw string) {
	id, err := uuid.Parse(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid session id %q\n", raw)
		os.Exit(1)
	}

	rec, err := store.SessionByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving round: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "Error: no round with id %s\n", id)
		os.Exit(1)
	}

	fmt.Printf("Session:  %s\n", rec.SessionID)
	fmt.Printf("Player:   %s\n", playerName(rec.Player))
	fmt.Printf("Played:   %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Result:   %s\n", rec.Outcome)
	fmt.Printf("Score:    %d\n", rec.Score)
	fmt.Printf("Ticks:    %d\n", rec.Ticks)
	fmt.Printf("Economy:  %s\n", rec.Economy)
	fmt.Printf("Earned:   %s\n", economy.Format(rec.CoinsEarned))
	fmt.Printf("Wallet:   %s\n", economy.Format(rec.TotalCoins))
}

func playerName(owner string) string {
	if owner == storage.LocalOwner {
		return "local"
	}
	return owner
}
