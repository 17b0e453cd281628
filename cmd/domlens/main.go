// Command domlens infers structured layout descriptions from rendered
// web pages.
//
// Usage:
//
//	domlens -url https://example.com                 # analyze one page, JSON on stdout
//	domlens -url https://example.com -out page.json  # write result to a file
//	domlens -url https://example.com -screenshot s.png
//	domlens -serve -config domlens.yaml              # HTTP API + MCP tools
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domlens/analyzer"
	"github.com/hazyhaar/domlens/browser"
	"github.com/hazyhaar/domlens/server"
	"github.com/hazyhaar/domlens/store"
)

func main() {
	url := flag.String("url", "", "analyze a single URL and exit")
	name := flag.String("name", "", "human name used to derive the result id")
	out := flag.String("out", "", "write the result JSON to this file instead of stdout")
	screenshot := flag.String("screenshot", "", "capture a full-page PNG to this path")
	serve := flag.Bool("serve", false, "run the HTTP API server")
	mcpStdio := flag.Bool("mcp", false, "serve MCP tools over stdio")
	configPath := flag.String("config", "", "path to domlens.yaml config file")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *url, *name, *out, *screenshot, *serve, *mcpStdio); err != nil {
		logger.Error("domlens: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, url, name, out, screenshot string, serve, mcpStdio bool) error {
	cfg, err := server.LoadConfig(configPath)
	if err != nil {
		return err
	}

	mgr := browser.NewManager(browser.Config{
		RemoteURL: cfg.Browser.Remote,
		BinPath:   cfg.Browser.Bin,
		Stealth:   cfg.Browser.Stealth,
		Logger:    logger,
	})
	if err := mgr.Start(ctx); err != nil {
		return fmt.Errorf("browser start: %w", err)
	}
	defer mgr.Close()

	a := analyzer.New(mgr, cfg.Engine, logger)

	if url != "" {
		return runSingle(ctx, a, url, name, out, screenshot)
	}
	if serve || mcpStdio {
		return runServe(ctx, logger, cfg, a, serve, mcpStdio)
	}

	fmt.Fprintln(os.Stderr, "usage: domlens -url <url> | -serve | -mcp")
	os.Exit(1)
	return nil
}

func runSingle(ctx context.Context, a *analyzer.Analyzer, url, name, out, screenshot string) error {
	resp, err := a.Analyze(ctx, analyzer.Request{
		URL:        url,
		Name:       name,
		Screenshot: screenshot != "",
		FullPage:   true,
	})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(resp.Result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
	} else {
		fmt.Println(string(data))
	}

	if screenshot != "" && len(resp.Screenshot) > 0 {
		if err := os.WriteFile(screenshot, resp.Screenshot, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", screenshot, err)
		}
	}
	return nil
}

func runServe(ctx context.Context, logger *slog.Logger, cfg *server.Config, a *analyzer.Analyzer, serve, mcpStdio bool) error {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(a, st, cfg.ScreenshotDir, logger)

	if mcpStdio {
		mcpSrv := mcp.NewServer(&mcp.Implementation{
			Name:    "domlens",
			Version: "1.0.0",
		}, nil)
		srv.RegisterMCP(mcpSrv)

		if !serve {
			return mcpSrv.Run(ctx, &mcp.StdioTransport{})
		}
		go func() {
			if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				logger.Error("mcp server", "error", err)
			}
		}()
	}

	return srv.ListenAndServe(ctx, cfg.Addr)
}
