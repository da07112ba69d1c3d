package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bricks/internal/core"
	"github.com/vovakirdan/bricks/internal/platform/tui"
	"github.com/vovakirdan/bricks/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round of bricks",
	Args:  cobra.NoArgs,
	Run:   runPlay,
}

const playExamples = `Examples:
  bricks play
  bricks play --fps 30
  bricks play --seed 12345
  bricks play --difficulty easy --economy stepped`

func init() {
	playCmd.Long = "Start the game in this terminal.\n\n" +
		controlsHelp(tui.DefaultKeyMap()) + "\n" + playExamples
}

// controlsHelp lists every key of the key map with its action.
func controlsHelp(km tui.KeyMap) string {
	var b strings.Builder
	b.WriteString("Controls:\n")
	for _, group := range km.FullHelp() {
		for _, binding := range group {
			keys := make([]string, 0, len(binding.Keys()))
			for _, k := range binding.Keys() {
				if k == " " {
					k = "space"
				}
				keys = append(keys, k)
			}
			fmt.Fprintf(&b, "  %-18s %s\n", strings.Join(keys, " / "), binding.Help().Desc)
		}
	}
	fmt.Fprintf(&b, "  %-18s %s\n", "mouse", "move the paddle")
	return b.String()
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig(flagConfigPath, flagDifficulty, flagEconomy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns stdout, so logs only go to a file.
	logger, closeLog, err := newLogger(flagLogLevel, flagLogFile, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Get terminal size
	width, height := 80, 24
	if w, h, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
		width, height = w, h
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW = width
	cfg.ScreenH = height
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed

	// Without a database the wallet lives for this run only.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		fmt.Fprintln(os.Stderr, "Coins will not be saved.")
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	deps := tui.Deps{
		Store:  store,
		Logger: logger,
		Player: storage.LocalOwner,
	}
	if err := tui.Run(gameCfg, cfg, deps); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
