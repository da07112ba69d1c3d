package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vovakirdan/bricks/internal/economy"
)

// LocalOwner is the wallet used by local play.
const LocalOwner = ""

// Wallet is one owner's persisted coin total. It implements economy.Ledger.
type Wallet struct {
	store *Store
	owner string
}

var _ economy.Accumulator = (*Wallet)(nil)

// Wallet returns the ledger for owner. SSH players get one wallet per user
// name; local play uses LocalOwner.
func (s *Store) Wallet(owner string) *Wallet {
	return &Wallet{store: s, owner: owner}
}

// Owner returns the wallet's owner.
func (w *Wallet) Owner() string { return w.owner }

// LoadCumulativeCoins returns the persisted coin total.
// A missing row, an unparsable value or a negative value all read as zero;
// only database failures are reported.
func (w *Wallet) LoadCumulativeCoins() (decimal.Decimal, error) {
	var raw string
	err := w.store.db.QueryRow("SELECT coins FROM wallets WHERE owner = ?", w.owner).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("storage: cannot load coins: %w", err)
	}

	coins, err := decimal.NewFromString(raw)
	if err != nil || coins.IsNegative() {
		return decimal.Zero, nil
	}
	return coins, nil
}

// SaveCumulativeCoins overwrites the persisted coin total.
func (w *Wallet) SaveCumulativeCoins(total decimal.Decimal) error {
	_, err := w.store.db.Exec(
		`INSERT INTO wallets (owner, coins, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(owner) DO UPDATE SET coins = excluded.coins, updated_at = excluded.updated_at`,
		w.owner, total.String(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save coins: %w", err)
	}
	return nil
}

// AddCumulativeCoins adds delta to the persisted total inside one
// transaction and returns the new total. Unreadable values count as zero.
func (w *Wallet) AddCumulativeCoins(delta decimal.Decimal) (decimal.Decimal, error) {
	tx, err := w.store.db.Begin()
	if err != nil {
		return decimal.Zero, fmt.Errorf("storage: cannot begin coin update: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var raw string
	err = tx.QueryRow("SELECT coins FROM wallets WHERE owner = ?", w.owner).Scan(&raw)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("storage: cannot load coins: %w", err)
	}

	prev, parseErr := decimal.NewFromString(raw)
	if parseErr != nil || prev.IsNegative() {
		prev = decimal.Zero
	}
	total := prev.Add(delta)

	_, err = tx.Exec(
		`INSERT INTO wallets (owner, coins, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(owner) DO UPDATE SET coins = excluded.coins, updated_at = excluded.updated_at`,
		w.owner, total.String(),
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("storage: cannot save coins: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("storage: cannot commit coins: %w", err)
	}
	return total, nil
}

// Reset sets the coin total back to zero.
func (w *Wallet) Reset() error {
	if _, err := w.store.db.Exec("DELETE FROM wallets WHERE owner = ?", w.owner); err != nil {
		return fmt.Errorf("storage: cannot reset coins: %w", err)
	}
	return nil
}

// WalletBalance is one row of the wallets table.
type WalletBalance struct {
	Owner string
	Coins decimal.Decimal
}

// Wallets lists every stored wallet, local first then by owner.
func (s *Store) Wallets() ([]WalletBalance, error) {
	rows, err := s.db.Query("SELECT owner, coins FROM wallets ORDER BY owner")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query wallets: %w", err)
	}
	defer rows.Close()

	var out []WalletBalance
	for rows.Next() {
		var (
			b   WalletBalance
			raw string
		)
		if err := rows.Scan(&b.Owner, &raw); err != nil {
			return nil, fmt.Errorf("storage: cannot scan wallet: %w", err)
		}
		b.Coins, err = decimal.NewFromString(raw)
		if err != nil || b.Coins.IsNegative() {
			b.Coins = decimal.Zero
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
