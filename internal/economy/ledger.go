package economy

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Ledger stores the single cumulative coin total across sessions.
// Implementations must treat missing or unreadable data as zero.
type Ledger interface {
	LoadCumulativeCoins() (decimal.Decimal, error)
	SaveCumulativeCoins(total decimal.Decimal) error
}

// Accumulator is a Ledger that can add to the stored total in one atomic
// step, so concurrent sessions on the same ledger cannot lose coins.
type Accumulator interface {
	Ledger
	AddCumulativeCoins(delta decimal.Decimal) (decimal.Decimal, error)
}

// MemoryLedger is an in-process Ledger, used when no database is available
// and in tests.
type MemoryLedger struct {
	mu    sync.Mutex
	total decimal.Decimal
}

// NewMemoryLedger creates a ledger holding the given starting total.
func NewMemoryLedger(start decimal.Decimal) *MemoryLedger {
	return &MemoryLedger{total: start}
}

// LoadCumulativeCoins implements Ledger.
func (l *MemoryLedger) LoadCumulativeCoins() (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total, nil
}

// SaveCumulativeCoins implements Ledger.
func (l *MemoryLedger) SaveCumulativeCoins(total decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.total = total
	return nil
}

// AddCumulativeCoins implements Accumulator.
func (l *MemoryLedger) AddCumulativeCoins(delta decimal.Decimal) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.total = l.total.Add(delta)
	return l.total, nil
}

var _ Accumulator = (*MemoryLedger)(nil)
