// Package economy converts in-session score into the persisted coin currency
// and defines the ledger boundary the engine settles against.
package economy

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Rule converts a final session score into coins.
type Rule interface {
	// Name returns the identifier used in configuration ("proportional", "stepped").
	Name() string

	// Earned returns the coins awarded for the given score. Negative scores earn nothing.
	Earned(score int) decimal.Decimal
}

const (
	NameProportional = "proportional"
	NameStepped      = "stepped"
)

var (
	// quarter is the coin amount paid per 100 points.
	quarter = decimal.RequireFromString("0.25")

	hundred = decimal.NewFromInt(100)
)

// Proportional pays 0.25 coins per 100 points, fractionally (score × 0.0025).
type Proportional struct{}

// Name implements Rule.
func (Proportional) Name() string { return NameProportional }

// Earned implements Rule.
func (Proportional) Earned(score int) decimal.Decimal {
	if score <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(score)).Mul(quarter).Div(hundred)
}

// Stepped pays 0.25 coins for every whole 100 points.
type Stepped struct{}

// Name implements Rule.
func (Stepped) Name() string { return NameStepped }

// Earned implements Rule.
func (Stepped) Earned(score int) decimal.Decimal {
	if score <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(score / 100)).Mul(quarter)
}

// Default returns the rule used when configuration names none.
func Default() Rule {
	return Proportional{}
}

// Parse resolves a rule by name. An empty name yields the default rule.
func Parse(name string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return Default(), nil
	case NameProportional:
		return Proportional{}, nil
	case NameStepped:
		return Stepped{}, nil
	default:
		return nil, fmt.Errorf("economy: unknown rule %q (want %s or %s)", name, NameProportional, NameStepped)
	}
}

// Format renders a coin amount with two decimals for display.
func Format(coins decimal.Decimal) string {
	return coins.StringFixed(2)
}
