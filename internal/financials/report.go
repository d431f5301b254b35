// Package financials turns a ticker snapshot into the labelled reports
// served by the MCP tools.
package financials

import (
	"encoding/json"
	"fmt"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/bobmcallan/yfinance-mcp/internal/ticker"
)

// NotAvailable is emitted for any field missing from the snapshot.
const NotAvailable = "N/A"

// Report is an ordered label → value mapping. Marshals to JSON in
// declaration order.
type Report = orderedmap.OrderedMap[string, any]

// Transform computes one output value from the handle's snapshot.
type Transform func(h *ticker.Handle, key string) any

// Field declares one report row: the output label, the snapshot key it
// reads, and an optional Transform (defaults to Raw).
type Field struct {
	Label     string
	Key       string
	Transform Transform
}

// Project builds a report containing every field in order. Projection
// never fails; missing values become NotAvailable.
func Project(h *ticker.Handle, fields []Field) *Report {
	r := orderedmap.New[string, any]()
	for _, f := range fields {
		tr := f.Transform
		if tr == nil {
			tr = Raw
		}
		r.Set(f.Label, tr(h, f.Key))
	}
	return r
}

// Raw copies the snapshot value unchanged, or NotAvailable when the key
// is absent. A key present with a null value stays null.
func Raw(h *ticker.Handle, key string) any {
	if v, ok := h.Get(key); ok {
		return v
	}
	return NotAvailable
}

// Symbol returns the handle's own symbol, ignoring the snapshot.
func Symbol(h *ticker.Handle, _ string) any {
	return h.Symbol
}

// UnixDate formats a unix-seconds value as a local YYYY-MM-DD date.
// Zero, absent and non-numeric values are NotAvailable.
func UnixDate(h *ticker.Handle, key string) any {
	v, _ := h.Get(key)
	secs, ok := toSeconds(v)
	if !ok || secs == 0 {
		return NotAvailable
	}
	return time.Unix(secs, 0).Local().Format(time.DateOnly)
}

// Range renders "{low} - {high}" with NotAvailable substituted per side
// for absent or null values.
func Range(lowKey, highKey string) Transform {
	return func(h *ticker.Handle, _ string) any {
		return fmt.Sprintf("%v - %v", rangeSide(h, lowKey), rangeSide(h, highKey))
	}
}

func rangeSide(h *ticker.Handle, key string) any {
	if v, ok := h.Get(key); ok && v != nil {
		return v
	}
	return NotAvailable
}

func toSeconds(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), true
		}
	}
	return 0, false
}
