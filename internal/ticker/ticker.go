// Package ticker holds the per-call handle that binds a symbol to one
// snapshot of provider data.
package ticker

import (
	"context"
	"errors"
	"strings"
)

// UnknownCompany is the company name used when the snapshot has no longName.
const UnknownCompany = "Unknown Company"

// ErrEmptySymbol is returned by New when the symbol is blank.
var ErrEmptySymbol = errors.New("ticker symbol is required")

// Provider is the market-data client the handle reads from.
//
//go:generate mockgen -destination=mocks/provider.go -package=mocks . Provider
type Provider interface {
	// Info returns the provider's key/value snapshot for symbol.
	Info(ctx context.Context, symbol string) (map[string]any, error)
	// BalanceSheet returns balance sheet line items keyed by period.
	BalanceSheet(ctx context.Context, symbol, frequency string) (map[string]map[string]any, error)
	// IncomeStatement returns income statement line items keyed by period.
	IncomeStatement(ctx context.Context, symbol, frequency string) (map[string]map[string]any, error)
}

// Handle is a symbol plus the info snapshot fetched when it was created.
// Handles are built per tool call and are not shared.
type Handle struct {
	Symbol      string
	CompanyName string

	info     map[string]any
	provider Provider
}

// New fetches the info snapshot for symbol exactly once. Provider errors
// are returned as-is.
func New(ctx context.Context, p Provider, symbol string) (*Handle, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, ErrEmptySymbol
	}

	info, err := p.Info(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = map[string]any{}
	}

	name := UnknownCompany
	if v, ok := info["longName"].(string); ok && v != "" {
		name = v
	}

	return &Handle{
		Symbol:      symbol,
		CompanyName: name,
		info:        info,
		provider:    p,
	}, nil
}

// Info returns the snapshot captured by New.
func (h *Handle) Info() map[string]any {
	return h.info
}

// Get looks up a single snapshot key.
func (h *Handle) Get(key string) (any, bool) {
	v, ok := h.info[key]
	return v, ok
}

// BalanceSheet asks the provider for the balance sheet at the given frequency.
func (h *Handle) BalanceSheet(ctx context.Context, frequency string) (map[string]map[string]any, error) {
	return h.provider.BalanceSheet(ctx, h.Symbol, frequency)
}

// IncomeStatement asks the provider for the income statement at the given frequency.
func (h *Handle) IncomeStatement(ctx context.Context, frequency string) (map[string]map[string]any, error) {
	return h.provider.IncomeStatement(ctx, h.Symbol, frequency)
}
