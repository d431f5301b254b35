package financials

import (
	"context"

	"github.com/bobmcallan/yfinance-mcp/internal/ticker"
)

// Statement is a provider statement table: period → line item → value.
type Statement = map[string]map[string]any

// Frequencies accepted by the provider for statements.
const (
	FrequencyYearly    = "yearly"
	FrequencyQuarterly = "quarterly"
	FrequencyTrailing  = "trailing"
)

// BalanceSheet returns the provider's balance sheet unmodified. frequency
// is passed through without validation.
func BalanceSheet(ctx context.Context, h *ticker.Handle, frequency string) (Statement, error) {
	return h.BalanceSheet(ctx, frequency)
}

// IncomeStatement returns the provider's income statement unmodified.
func IncomeStatement(ctx context.Context, h *ticker.Handle, frequency string) (Statement, error) {
	return h.IncomeStatement(ctx, frequency)
}
