package financials

import "github.com/bobmcallan/yfinance-mcp/internal/ticker"

// header is the identity block every report starts with.
var header = []Field{
	{Label: "Ticker", Transform: Symbol},
	{Label: "Company Name", Key: "longName"},
	{Label: "Symbol", Key: "symbol"},
}

func withHeader(fields ...Field) []Field {
	out := make([]Field, 0, len(header)+len(fields))
	out = append(out, header...)
	return append(out, fields...)
}

var (
	PriceFields = withHeader(
		Field{Label: "Current Price", Key: "currentPrice"},
		Field{Label: "Previous Close", Key: "regularMarketPreviousClose"},
		Field{Label: "Open", Key: "regularMarketOpen"},
		Field{Label: "Day High", Key: "regularMarketDayHigh"},
		Field{Label: "Day Low", Key: "regularMarketDayLow"},
	)

	DividendFields = withHeader(
		Field{Label: "Dividend Yield", Key: "dividendYield"},
		Field{Label: "Annual Dividend Rate", Key: "dividendRate"},
		Field{Label: "Ex-Dividend Date", Key: "exDividendDate", Transform: UnixDate},
		Field{Label: "Payout Ratio", Key: "payoutRatio"},
		Field{Label: "five_year_avg_dividend_yield", Key: "fiveYearAvgDividendYield"},
	)

	EPSPEFields = withHeader(
		Field{Label: "EPS (TTM)", Key: "trailingEps"},
		Field{Label: "PE Ratio (TTM)", Key: "trailingPE"},
	)

	TradingFields = withHeader(
		Field{Label: "Market Cap", Key: "marketCap"},
		Field{Label: "Volume", Key: "volume"},
		Field{Label: "Average Volume", Key: "averageVolume"},
		Field{Label: "Beta", Key: "beta"},
		Field{Label: "52 Week High", Key: "fiftyTwoWeekHigh"},
		Field{Label: "52 Week Low", Key: "fiftyTwoWeekLow"},
		Field{Label: "bid", Key: "bid"},
		Field{Label: "ask", Key: "ask"},
		Field{Label: "bid size", Key: "bidSize"},
		Field{Label: "ask size", Key: "askSize"},
	)

	VolatilityFields = withHeader(
		Field{Label: "50 Day Avg Change %", Key: "fiftyDayAverageChangePercent"},
		Field{Label: "200 Day Avg Change %", Key: "twoHundredDayAverageChangePercent"},
		Field{Label: "52 Week Change", Key: "52WeekChange"},
		Field{Label: "Beta ", Key: "beta"},
		Field{Label: "50 Day Moving Average", Key: "fiftyDayAverage"},
		Field{Label: "200 Day Moving Average", Key: "twoHundredDayAverage"},
		Field{Label: "50 Day High", Key: "fiftyDayHigh"},
		Field{Label: "50 Day Low", Key: "fiftyDayLow"},
		Field{Label: "200 Day High", Key: "twoHundredDayHigh"},
		Field{Label: "200 Day Low", Key: "twoHundredDayLow"},
		Field{Label: "52 Week Range", Transform: Range("fiftyTwoWeekLow", "fiftyTwoWeekHigh")},
		Field{Label: "52 Week High Change %", Key: "fiftyTwoWeekHighChangePercent"},
		Field{Label: "52 Week Low Change %", Key: "fiftyTwoWeekLowChangePercent"},
	)

	ShareFields = withHeader(
		Field{Label: "Shares Outstanding", Key: "sharesOutstanding"},
		Field{Label: "Float", Key: "floatShares"},
		Field{Label: "Insider holding percentage", Key: "heldPercentInsiders"},
		Field{Label: "Institutional holding percentage", Key: "heldPercentInstitutions"},
		Field{Label: "Implied Shares Outstanding", Key: "impliedSharesOutstanding"},
		Field{Label: "bookValue", Key: "bookValue"},
		Field{Label: "priceToBook", Key: "priceToBook"},
		Field{Label: "Last splitFactor", Key: "lastSplitFactor"},
		Field{Label: "Last splitDate", Key: "lastSplitDate", Transform: UnixDate},
		Field{Label: "Debt to Equity", Key: "debtToEquity"},
		Field{Label: "Revenue per Share", Key: "revenuePerShare"},
		Field{Label: "Return on Assets", Key: "returnOnAssets"},
		Field{Label: "Return on Equity", Key: "returnOnEquity"},
	)

	FinancialFields = withHeader(
		Field{Label: "Total Revenue", Key: "totalRevenue"},
		Field{Label: "Gross Profit", Key: "grossProfits"},
		Field{Label: "Net Income", Key: "netIncomeToCommon"},
		Field{Label: "EBITDA", Key: "ebitda"},
		Field{Label: "Total cash", Key: "totalCash"},
		Field{Label: "Total Debt", Key: "totalDebt"},
		Field{Label: "returnOnAssets", Key: "returnOnAssets"},
		Field{Label: "returnOnEquity", Key: "returnOnEquity"},
		Field{Label: "Gross Profits", Key: "grossProfits"},
		Field{Label: "Free Cash Flow", Key: "freeCashflow"},
		Field{Label: "Operating Cash Flow", Key: "operatingCashflow"},
		Field{Label: "Earings growth", Key: "earningsGrowth"},
		Field{Label: "Revenue growth", Key: "revenueGrowth"},
		Field{Label: "Gross margin", Key: "grossMargins"},
		Field{Label: "EBITDA margin", Key: "ebitdaMargins"},
		Field{Label: "Operating margin", Key: "operatingMargins"},
	)
)

// Prices reports current and intraday prices.
func Prices(h *ticker.Handle) *Report { return Project(h, PriceFields) }

// Dividends reports yield, rate, payout and the last ex-dividend date.
func Dividends(h *ticker.Handle) *Report { return Project(h, DividendFields) }

// EPSPE reports trailing EPS and P/E.
func EPSPE(h *ticker.Handle) *Report { return Project(h, EPSPEFields) }

// Trading reports market cap, volume and order book figures.
func Trading(h *ticker.Handle) *Report { return Project(h, TradingFields) }

// Volatility reports moving averages, ranges and relative changes.
func Volatility(h *ticker.Handle) *Report { return Project(h, VolatilityFields) }

// Shares reports share structure, holdings and split history.
func Shares(h *ticker.Handle) *Report { return Project(h, ShareFields) }

// Financials reports the aggregate financial summary.
func Financials(h *ticker.Handle) *Report { return Project(h, FinancialFields) }
