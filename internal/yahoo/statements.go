package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// seriesStart is the earliest period requested from the timeseries API.
var seriesStart = time.Date(2016, time.December, 31, 0, 0, 0, 0, time.UTC)

var balanceSheetItems = []string{
	"TreasurySharesNumber", "OrdinarySharesNumber", "ShareIssued", "NetDebt", "TotalDebt",
	"TangibleBookValue", "InvestedCapital", "WorkingCapital", "NetTangibleAssets",
	"CommonStockEquity", "TotalCapitalization", "TotalEquityGrossMinorityInterest",
	"MinorityInterest", "StockholdersEquity", "RetainedEarnings", "CapitalStock", "CommonStock",
	"TotalLiabilitiesNetMinorityInterest", "TotalNonCurrentLiabilitiesNetMinorityInterest",
	"LongTermDebt", "CurrentLiabilities", "CurrentDebt", "AccountsPayable", "TotalAssets",
	"TotalNonCurrentAssets", "NetPPE", "GrossPPE", "AccumulatedDepreciation", "Goodwill",
	"OtherIntangibleAssets", "InvestmentsAndAdvances", "CurrentAssets", "CashAndCashEquivalents",
	"CashCashEquivalentsAndShortTermInvestments", "OtherShortTermInvestments", "Inventory",
	"AccountsReceivable", "Receivables",
}

var incomeStatementItems = []string{
	"TotalRevenue", "OperatingRevenue", "CostOfRevenue", "GrossProfit", "OperatingExpense",
	"SellingGeneralAndAdministration", "ResearchAndDevelopment", "OperatingIncome",
	"NetInterestIncome", "InterestExpense", "InterestIncome", "OtherIncomeExpense", "PretaxIncome",
	"TaxProvision", "NetIncome", "NetIncomeCommonStockholders", "DilutedNIAvailtoComStockholders",
	"BasicEPS", "DilutedEPS", "BasicAverageShares", "DilutedAverageShares", "TotalExpenses",
	"EBIT", "EBITDA", "NormalizedEBITDA", "NormalizedIncome", "ReconciledDepreciation",
	"ReconciledCostOfRevenue", "TaxRateForCalcs", "TotalOperatingIncomeAsReported",
}

type timeseriesResponse struct {
	Timeseries struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *APIError                    `json:"error"`
	} `json:"timeseries"`
}

type timeseriesMeta struct {
	Type []string `json:"type"`
}

type timeseriesPoint struct {
	AsOfDate      string `json:"asOfDate"`
	PeriodType    string `json:"periodType"`
	CurrencyCode  string `json:"currencyCode"`
	ReportedValue struct {
		Raw any `json:"raw"`
	} `json:"reportedValue"`
}

// BalanceSheet returns balance sheet line items keyed by period end date.
func (c *Client) BalanceSheet(ctx context.Context, symbol, frequency string) (map[string]map[string]any, error) {
	return c.statement(ctx, symbol, frequency, balanceSheetItems)
}

// IncomeStatement returns income statement line items keyed by period end date.
func (c *Client) IncomeStatement(ctx context.Context, symbol, frequency string) (map[string]map[string]any, error) {
	return c.statement(ctx, symbol, frequency, incomeStatementItems)
}

// seriesPrefix maps a statement frequency to the timeseries type prefix.
func seriesPrefix(frequency string) (string, error) {
	switch frequency {
	case "yearly":
		return "annual", nil
	case "quarterly":
		return "quarterly", nil
	case "trailing":
		return "trailing", nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidFrequency, frequency)
}

func (c *Client) statement(ctx context.Context, symbol, frequency string, items []string) (map[string]map[string]any, error) {
	prefix, err := seriesPrefix(frequency)
	if err != nil {
		return nil, err
	}

	types := make([]string, len(items))
	for i, item := range items {
		types[i] = prefix + item
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("type", strings.Join(types, ","))
	q.Set("period1", strconv.FormatInt(seriesStart.Unix(), 10))
	q.Set("period2", strconv.FormatInt(c.now().Unix(), 10))

	var resp timeseriesResponse
	path := "/ws/fundamentals-timeseries/v1/finance/timeseries/" + url.PathEscape(symbol)
	if err := c.getJSON(ctx, path, q, &resp); err != nil {
		return nil, err
	}
	if resp.Timeseries.Error != nil {
		return nil, resp.Timeseries.Error
	}

	out := make(map[string]map[string]any)
	for _, result := range resp.Timeseries.Result {
		var meta timeseriesMeta
		if raw, ok := result["meta"]; ok {
			if err := json.Unmarshal(raw, &meta); err != nil {
				return nil, fmt.Errorf("parse timeseries meta: %w", err)
			}
		}
		for _, typ := range meta.Type {
			raw, ok := result[typ]
			if !ok {
				continue
			}
			var points []*timeseriesPoint
			if err := json.Unmarshal(raw, &points); err != nil {
				return nil, fmt.Errorf("parse timeseries %s: %w", typ, err)
			}
			item := strings.TrimPrefix(typ, prefix)
			for _, p := range points {
				if p == nil || p.AsOfDate == "" {
					continue
				}
				period, ok := out[p.AsOfDate]
				if !ok {
					period = make(map[string]any)
					out[p.AsOfDate] = period
				}
				period[item] = p.ReportedValue.Raw
			}
		}
	}

	return out, nil
}
