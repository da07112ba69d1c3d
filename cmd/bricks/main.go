// bricks is a terminal brick-breaker with a persistent coin wallet.
//
// Usage:
//
//	bricks play              - Play a round in this terminal
//	bricks serve             - Start SSH server for remote play
//	bricks sessions          - Show recent sessions
//	bricks coins             - Show or reset coin wallets
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible rounds
//	--db <path>          - Set database path (default: ~/.bricks/bricks.db)
//	--config <path>      - Load game tunables from a YAML file
//	--difficulty <name>  - easy, normal or hard
//	--economy <rule>     - proportional or stepped
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bricks/internal/config"
	"github.com/vovakirdan/bricks/internal/economy"
	"github.com/vovakirdan/bricks/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfigPath string
	flagDifficulty string
	flagEconomy    string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bricks",
	Short: "Bricks - break bricks, earn coins",
	Long: `Bricks is a terminal brick-breaker. Every finished round converts
its score into coins that accumulate in a wallet across sessions.

Available commands:
  play      - Play a round in this terminal
  serve     - Start SSH server for remote play
  sessions  - View finished rounds
  coins     - View or reset wallets

Examples:
  bricks play
  bricks play --difficulty hard --economy stepped
  bricks serve --ssh :23234
  bricks sessions --limit 20
  bricks coins`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Game tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed for reproducible rounds (0 = random)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to wallet and history database")
	pf.StringVar(&flagConfigPath, "config", "", "Path to a breakout.yaml with custom tunables")
	pf.StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset (easy, normal, hard)")
	pf.StringVar(&flagEconomy, "economy", "", "Coin rule override (proportional, stepped)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(coinsCmd)
}

// loadGameConfig resolves the game tunables from the config search path,
// then applies the difficulty preset and the economy override.
func loadGameConfig(path, difficulty, rule string) (config.BreakoutConfig, error) {
	cfg, err := config.LoadBreakout(path)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyBreakoutPreset(&cfg, preset)

	if rule != "" {
		if _, err := economy.Parse(rule); err != nil {
			return cfg, err
		}
		cfg.Economy.Rule = rule
	}
	return cfg, nil
}

// newLogger builds the process logger. When fallback is nil and no log
// file is given, logs are discarded.
func newLogger(level, file string, fallback io.Writer) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	out := fallback
	closer := func() {}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { _ = f.Close() }
	}
	if out == nil {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "bricks",
	})
	return logger, closer, nil
}
