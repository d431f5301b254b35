package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// infoModules are the quoteSummary modules merged into the info snapshot,
// in merge order.
var infoModules = []string{
	"financialData",
	"quoteType",
	"defaultKeyStatistics",
	"assetProfile",
	"summaryDetail",
	"price",
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []map[string]map[string]any `json:"result"`
		Error  *APIError                   `json:"error"`
	} `json:"quoteSummary"`
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []map[string]any `json:"result"`
		Error  *APIError        `json:"error"`
	} `json:"quoteResponse"`
}

// Info returns the flattened key/value snapshot for symbol: the
// quoteSummary modules merged together, then v7 quote fields filling any
// keys they did not provide.
func (c *Client) Info(ctx context.Context, symbol string) (map[string]any, error) {
	q := url.Values{}
	q.Set("modules", strings.Join(infoModules, ","))
	q.Set("formatted", "false")
	q.Set("corsDomain", "finance.yahoo.com")

	var summary quoteSummaryResponse
	if err := c.getJSON(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), q, &summary); err != nil {
		return nil, err
	}
	if summary.QuoteSummary.Error != nil {
		return nil, summary.QuoteSummary.Error
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}

	info := make(map[string]any)
	result := summary.QuoteSummary.Result[0]
	for _, module := range infoModules {
		for k, v := range result[module] {
			if k == "maxAge" {
				continue
			}
			if fv, ok := flatten(v); ok {
				info[k] = fv
			}
		}
	}

	qq := url.Values{}
	qq.Set("symbols", symbol)
	qq.Set("formatted", "false")

	var quote quoteResponse
	if err := c.getJSON(ctx, "/v7/finance/quote", qq, &quote); err != nil {
		return nil, err
	}
	if quote.QuoteResponse.Error != nil {
		return nil, quote.QuoteResponse.Error
	}
	if len(quote.QuoteResponse.Result) > 0 {
		for k, v := range quote.QuoteResponse.Result[0] {
			if _, exists := info[k]; exists {
				continue
			}
			if fv, ok := flatten(v); ok {
				info[k] = fv
			}
		}
	}

	c.logger.Debug().Str("symbol", symbol).Int("fields", len(info)).Msg("Yahoo info snapshot")
	return info, nil
}

// flatten unwraps {"raw":..,"fmt":..} values and drops empty objects.
func flatten(v any) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return v, true
	}
	if raw, ok := m["raw"]; ok {
		return raw, true
	}
	if len(m) == 0 {
		return nil, false
	}
	return m, true
}
