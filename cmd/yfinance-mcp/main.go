package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/yfinance-mcp/internal/common"
	"github.com/bobmcallan/yfinance-mcp/internal/directory"
	httpserver "github.com/bobmcallan/yfinance-mcp/internal/server"
	"github.com/bobmcallan/yfinance-mcp/internal/tools"
	"github.com/bobmcallan/yfinance-mcp/internal/yahoo"
)

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for Claude Desktop)")
	configFile := flag.String("config", "yfinance-mcp.toml", "Path to config file")
	flag.Parse()

	if err := run(*configFile, *stdio); err != nil {
		fmt.Fprintf(os.Stderr, "yfinance-mcp: %v\n", err)
		os.Exit(1)
	}
}

// run wires the server and blocks until the transport stops. Any failure
// before the tools are registered is returned without starting a transport.
func run(configFile string, stdio bool) error {
	cfg, err := common.LoadConfig(configFile)
	if err != nil {
		return err
	}

	common.LoadVersionFromFile()
	logger := common.NewLoggerFromConfig(cfg.Logging)

	client := yahoo.NewClient(
		yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
		yahoo.WithCookieURL(cfg.Yahoo.CookieURL),
		yahoo.WithUserAgent(cfg.Yahoo.UserAgent),
		yahoo.WithTimeout(cfg.Yahoo.GetTimeout()),
		yahoo.WithLogger(logger),
	)

	var options []tools.Option
	if cfg.Directory.SymbolsFile != "" {
		dir, err := directory.Load(cfg.Directory.SymbolsFile, cfg.Directory.Suffix)
		if err != nil {
			return err
		}
		logger.Info().Str("file", cfg.Directory.SymbolsFile).Int("companies", dir.Len()).Msg("Loaded symbol directory")
		options = append(options, tools.WithDirectory(dir))
	}

	mcpServer := server.NewMCPServer(
		cfg.Server.Name,
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)
	tools.NewRegistry(client, logger, options...).Register(mcpServer)

	if stdio {
		logger.Info().Str("version", common.GetFullVersion()).Msg("Serving MCP over stdio")
		if err := server.ServeStdio(mcpServer); err != nil {
			return fmt.Errorf("stdio server error: %w", err)
		}
		return nil
	}

	streamable := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)
	srv := httpserver.New(cfg.Server.Port, streamable, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info().Str("port", cfg.Server.Port).Str("version", common.GetFullVersion()).Msg("Starting MCP Streamable HTTP")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
