// yfinance-live prints every tick of the Yahoo streaming quote feed for
// one symbol until interrupted.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/yfinance-mcp/internal/common"
	"github.com/bobmcallan/yfinance-mcp/internal/yahoo"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "yfinance-live",
		Short:         "Stream live Yahoo Finance ticks for a symbol",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			cfg, err := common.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			symbol, _ := cmd.Flags().GetString("symbol")
			if symbol == "" {
				symbol = cfg.Live.Symbol
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := common.NewLoggerFromConfig(cfg.Logging)
			streamer := yahoo.NewStreamer(
				yahoo.WithStreamURL(cfg.Yahoo.StreamURL),
				yahoo.WithStreamUserAgent(cfg.Yahoo.UserAgent),
				yahoo.WithStreamLogger(logger),
			)
			return stream(ctx, streamer, symbol, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("config", "yfinance-mcp.toml", "config file path")
	cmd.Flags().String("symbol", "", "symbol to subscribe to (default: [live] symbol from config)")
	return cmd
}

// stream subscribes to symbol and writes one line per tick to w. An
// interrupt ends the stream cleanly.
func stream(ctx context.Context, streamer *yahoo.Streamer, symbol string, w io.Writer) error {
	sub, err := streamer.Subscribe(ctx, symbol)
	if err != nil {
		return err
	}

	err = sub.Listen(ctx, func(tick yahoo.Tick) error {
		line, err := formatTick(tick)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, line)
		return err
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// formatTick renders "Time: YYYY-MM-DD HH:MM:SS, Data: {...}" using the
// tick's millisecond timestamp in local time.
func formatTick(tick yahoo.Tick) (string, error) {
	ts := "N/A"
	if ms, ok := tick.Time(); ok {
		ts = time.UnixMilli(ms).Local().Format(time.DateTime)
	}
	data, err := json.Marshal(tick)
	if err != nil {
		return "", fmt.Errorf("encode tick: %w", err)
	}
	return fmt.Sprintf("Time: %s, Data: %s", ts, data), nil
}
