package tools

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bobmcallan/yfinance-mcp/internal/financials"
)

func tickerArg() mcp.ToolOption {
	return mcp.WithString("ticker", mcp.Required(), mcp.Description("The stock ticker symbol (e.g., 'ITC.NS', 'AAPL')"))
}

func frequencyArg(what string) mcp.ToolOption {
	return mcp.WithString("frequency", mcp.Required(),
		mcp.Enum(financials.FrequencyYearly, financials.FrequencyQuarterly, financials.FrequencyTrailing),
		mcp.Description("The frequency of the "+what+": 'yearly', 'quarterly' or 'trailing'"))
}

func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the server version and status. Use this to verify connectivity."),
	)
}

func createStockPriceTool() mcp.Tool {
	return mcp.NewTool("stock_price",
		mcp.WithDescription("Get the stock price for the given ticker: current price, previous close, open, and day high/low."),
		tickerArg(),
	)
}

func createDividendInfoTool() mcp.Tool {
	return mcp.NewTool("dividend_info",
		mcp.WithDescription("Get the dividend information for the given ticker: yield, annual rate, ex-dividend date and payout ratio."),
		tickerArg(),
	)
}

func createEPSPETool() mcp.Tool {
	return mcp.NewTool("eps_pe",
		mcp.WithDescription("Get the trailing EPS and PE ratio for the given ticker."),
		tickerArg(),
	)
}

func createTradingInfoTool() mcp.Tool {
	return mcp.NewTool("trading_info",
		mcp.WithDescription("Get the trading information for the given ticker: market cap, volume, beta, 52 week high/low, bid and ask."),
		tickerArg(),
	)
}

// aliasOf appends an alias note to description when target is set.
func aliasOf(description, target string) string {
	if target == "" {
		return description
	}
	return description + " Same as " + target + "."
}

func createVolatilityInfoTool(name, target string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(aliasOf("Get the volatility information for the given ticker: moving averages, their change percentages and the 52 week range.", target)),
		tickerArg(),
	)
}

func createShareInfoTool() mcp.Tool {
	return mcp.NewTool("share_info",
		mcp.WithDescription("Get the share information for the given ticker: share counts, holdings, book value, splits and per-share ratios."),
		tickerArg(),
	)
}

func createFinancialsTool(name, target string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(aliasOf("Get the financial summary for the given ticker: revenue, profit, cash, debt, cash flow, growth and margins.", target)),
		tickerArg(),
	)
}

func createBalanceSheetTool() mcp.Tool {
	return mcp.NewTool("balance_sheet",
		mcp.WithDescription("Get the balance sheet for the given ticker, keyed by period end date."),
		tickerArg(),
		frequencyArg("balance sheet"),
	)
}

func createIncomeStatementTool() mcp.Tool {
	return mcp.NewTool("income_statement",
		mcp.WithDescription("Get the income statement for the given ticker, keyed by period end date."),
		tickerArg(),
		frequencyArg("income statement"),
	)
}

func createCompanyNameSymbolsTool() mcp.Tool {
	return mcp.NewTool("get_company_name_symbols",
		mcp.WithDescription("List company names and their ticker symbols. Pass company_name to look up a single company."),
		mcp.WithString("company_name", mcp.Description("Exact company name to look up. Returns the full list if omitted.")),
	)
}
