package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bricks/internal/economy"
	"github.com/vovakirdan/bricks/internal/storage"
)

var (
	flagCoinsPlayer string
	flagCoinsReset  bool
)

var coinsCmd = &cobra.Command{
	Use:   "coins",
	Short: "Show or reset coin wallets",
	Long: `Display the cumulative coin balance of every wallet, or of one player.

Local play uses the "local" wallet; SSH players get one per user name.

Examples:
  bricks coins
  bricks coins --player alice
  bricks coins --player local --reset`,
	Args: cobra.NoArgs,
	Run:  runCoins,
}

func init() {
	coinsCmd.Flags().StringVar(&flagCoinsPlayer, "player", "", "Show only this player's wallet (\"local\" for this machine)")
	coinsCmd.Flags().BoolVar(&flagCoinsReset, "reset", false, "Reset the selected wallet to zero")
}

func runCoins(cmd *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagCoinsReset && !cmd.Flags().Changed("player") {
		fmt.Fprintln(os.Stderr, "Error: --reset needs --player")
		os.Exit(1)
	}

	if cmd.Flags().Changed("player") {
		wallet := store.Wallet(ownerName(flagCoinsPlayer))
		if flagCoinsReset {
			if err := wallet.Reset(); err != nil {
				fmt.Fprintf(os.Stderr, "Error resetting wallet: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Wallet %q reset.\n", playerName(wallet.Owner()))
			return
		}
		coins, err := wallet.LoadCumulativeCoins()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading wallet: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %s coins\n", playerName(wallet.Owner()), economy.Format(coins))
		return
	}

	balances, err := store.Wallets()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving wallets: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Wallets")
	fmt.Println()
	if len(balances) == 0 {
		fmt.Println("No coins earned yet.")
		return
	}

	fmt.Printf("  %-16s  %12s\n", "Player", "Coins")
	fmt.Printf("  %-16s  %12s\n", "------", "-----")
	for _, b := range balances {
		fmt.Printf("  %-16s  %12s\n", playerName(b.Owner), economy.Format(b.Coins))
	}
}

// ownerName maps the "local" alias back to the local wallet owner.
func ownerName(player string) string {
	if player == "local" {
		return storage.LocalOwner
	}
	return player
}
