package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/yfinance-mcp/internal/common"
	"github.com/bobmcallan/yfinance-mcp/internal/financials"
	"github.com/bobmcallan/yfinance-mcp/internal/ticker"
)

// --- Helpers ---

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(out)), nil
}

// callLogger returns a logger tagged with a fresh correlation id.
func (r *Registry) callLogger() *common.Logger {
	return r.logger.WithCorrelationId(uuid.New().String())
}

// --- Handlers ---

// handleReport builds a fresh handle for the requested ticker and projects
// it with extract. Provider errors are returned unchanged.
func (r *Registry) handleReport(tool string, extract func(*ticker.Handle) *financials.Report) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("ticker")
		if err != nil {
			return errorResult("Error: ticker parameter is required"), nil
		}

		logger := r.callLogger()
		start := time.Now()
		logger.Debug().Str("tool", tool).Str("ticker", symbol).Msg("Tool call")

		h, err := ticker.New(ctx, r.provider, symbol)
		if err != nil {
			logger.Error().Str("tool", tool).Str("ticker", symbol).Err(err).Msg("Ticker lookup failed")
			return nil, err
		}

		report := extract(h)
		logger.Debug().Str("tool", tool).Int("fields", report.Len()).Dur("duration", time.Since(start)).Msg("Tool call complete")
		return jsonResult(report)
	}
}

// handleStatement is handleReport for the frequency-keyed statements.
func (r *Registry) handleStatement(tool string, extract func(context.Context, *ticker.Handle, string) (financials.Statement, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("ticker")
		if err != nil {
			return errorResult("Error: ticker parameter is required"), nil
		}
		frequency, err := request.RequireString("frequency")
		if err != nil {
			return errorResult("Error: frequency parameter is required"), nil
		}

		logger := r.callLogger()
		start := time.Now()
		logger.Debug().Str("tool", tool).Str("ticker", symbol).Str("frequency", frequency).Msg("Tool call")

		h, err := ticker.New(ctx, r.provider, symbol)
		if err != nil {
			logger.Error().Str("tool", tool).Str("ticker", symbol).Err(err).Msg("Ticker lookup failed")
			return nil, err
		}

		statement, err := extract(ctx, h, frequency)
		if err != nil {
			logger.Error().Str("tool", tool).Str("ticker", symbol).Str("frequency", frequency).Err(err).Msg("Statement lookup failed")
			return nil, err
		}

		logger.Debug().Str("tool", tool).Int("periods", len(statement)).Dur("duration", time.Since(start)).Msg("Tool call complete")
		return jsonResult(statement)
	}
}

func (r *Registry) handleCompanyNameSymbols() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := request.GetString("company_name", "")
		if name == "" {
			return jsonResult(r.directory.All())
		}

		symbol, ok := r.directory.Lookup(name)
		if !ok {
			return errorResult(fmt.Sprintf("Error: no symbol found for company %q", name)), nil
		}
		return jsonResult(map[string]string{name: symbol})
	}
}

// versionInfo holds the build fields reported by get_version.
type versionInfo struct {
	Version string `json:"version"`
	Build   string `json:"build"`
	Commit  string `json:"commit"`
	Status  string `json:"status"`
}

func (r *Registry) handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(versionInfo{
			Version: common.GetVersion(),
			Build:   common.GetBuild(),
			Commit:  common.GetGitCommit(),
			Status:  "OK",
		})
	}
}
