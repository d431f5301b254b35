// Package tools exposes the stock-data lookups as MCP tools.
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/yfinance-mcp/internal/common"
	"github.com/bobmcallan/yfinance-mcp/internal/directory"
	"github.com/bobmcallan/yfinance-mcp/internal/financials"
	"github.com/bobmcallan/yfinance-mcp/internal/ticker"
)

// Tool names kept identical to the published server so existing clients
// keep working. The aliases carry the corrected spellings.
const (
	ToolVolatilityInfo = "volatilet_info"
	ToolFinancials     = "get_financials_tool"

	aliasVolatilityInfo = "volatility_info"
	aliasFinancials     = "financials"
)

type entry struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

// Registry holds the tool definitions and their handlers. It is built
// once at startup and is read-only afterwards.
type Registry struct {
	provider  ticker.Provider
	logger    *common.Logger
	directory *directory.Directory
	entries   []entry
}

// Option is a configuration option for Registry.
type Option func(*Registry)

// WithDirectory enables the get_company_name_symbols tool.
func WithDirectory(d *directory.Directory) Option {
	return func(r *Registry) {
		r.directory = d
	}
}

// NewRegistry creates the registry for provider.
func NewRegistry(provider ticker.Provider, logger *common.Logger, options ...Option) *Registry {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	r := &Registry{provider: provider, logger: logger}
	for _, option := range options {
		option(r)
	}

	r.add(createGetVersionTool(), r.handleGetVersion())
	r.add(createStockPriceTool(), r.handleReport("stock_price", financials.Prices))
	r.add(createDividendInfoTool(), r.handleReport("dividend_info", financials.Dividends))
	r.add(createEPSPETool(), r.handleReport("eps_pe", financials.EPSPE))
	r.add(createTradingInfoTool(), r.handleReport("trading_info", financials.Trading))
	r.add(createVolatilityInfoTool(ToolVolatilityInfo, ""), r.handleReport(ToolVolatilityInfo, financials.Volatility))
	r.add(createShareInfoTool(), r.handleReport("share_info", financials.Shares))
	r.add(createFinancialsTool(ToolFinancials, ""), r.handleReport(ToolFinancials, financials.Financials))
	r.add(createBalanceSheetTool(), r.handleStatement("balance_sheet", financials.BalanceSheet))
	r.add(createIncomeStatementTool(), r.handleStatement("income_statement", financials.IncomeStatement))
	r.add(createVolatilityInfoTool(aliasVolatilityInfo, ToolVolatilityInfo), r.handleReport(aliasVolatilityInfo, financials.Volatility))
	r.add(createFinancialsTool(aliasFinancials, ToolFinancials), r.handleReport(aliasFinancials, financials.Financials))
	if r.directory != nil {
		r.add(createCompanyNameSymbolsTool(), r.handleCompanyNameSymbols())
	}

	return r
}

func (r *Registry) add(tool mcp.Tool, handler server.ToolHandlerFunc) {
	r.entries = append(r.entries, entry{tool: tool, handler: handler})
}

// Register adds every tool to s.
func (r *Registry) Register(s *server.MCPServer) {
	for _, e := range r.entries {
		s.AddTool(e.tool, e.handler)
	}
	r.logger.Info().Int("tools", len(r.entries)).Msg("Registered MCP tools")
}

// Definitions returns the tool definitions in registration order.
func (r *Registry) Definitions() []mcp.Tool {
	tools := make([]mcp.Tool, len(r.entries))
	for i, e := range r.entries {
		tools[i] = e.tool
	}
	return tools
}

// Handler returns the handler registered under name.
func (r *Registry) Handler(name string) (server.ToolHandlerFunc, bool) {
	for _, e := range r.entries {
		if e.tool.Name == name {
			return e.handler, true
		}
	}
	return nil, false
}
