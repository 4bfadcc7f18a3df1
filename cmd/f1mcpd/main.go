// Command f1mcpd serves Formula 1 data from the OpenF1 API to MCP
// clients over stdio.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/f1mcp-io/f1mcp/internal/api"
	"github.com/f1mcp-io/f1mcp/internal/config"
	"github.com/f1mcp-io/f1mcp/internal/logbuf"
	"github.com/f1mcp-io/f1mcp/internal/mcpserver"
	"github.com/f1mcp-io/f1mcp/internal/openf1"
	"github.com/f1mcp-io/f1mcp/internal/tool"
)

const version = "1.0.0"

func main() {
	var (
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:   "f1mcpd",
		Short: "MCP server for Formula 1 data from the OpenF1 API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, verbose)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "path to config JSON file")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("f1mcpd %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath string, verbose bool) error {
	// Best effort; a missing .env is fine.
	godotenv.Load()

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	// stdout carries the MCP stdio framing, so all logging goes to stderr.
	logLevel := parseLevel(cfg.Log.Level)
	if verbose {
		logLevel = slog.LevelDebug
	}
	logBuf := logbuf.New(cfg.Log.BufferSize)
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(logbuf.NewHandler(jsonHandler, logBuf))

	logger.Info("f1mcpd starting", "version", version, "base_url", cfg.OpenF1.BaseURL)

	client := openf1.NewClient(
		openf1.WithBaseURL(cfg.OpenF1.BaseURL),
		openf1.WithTimeout(time.Duration(cfg.OpenF1.TimeoutSeconds)*time.Second),
	)

	reg := tool.NewRegistry(logger)
	reg.Register(&tool.SessionsTool{API: client})
	reg.Register(&tool.DriversTool{API: client})
	reg.Register(&tool.LapsTool{API: client})
	reg.Register(&tool.OvertakesTool{API: client})
	logger.Info("tools registered", "tools", reg.List())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.API.Port != 0 {
		opsSrv := api.NewServer(
			&toolListerAdapter{reg: reg},
			api.Config{Host: cfg.API.Host, Port: cfg.API.Port, Key: cfg.API.Key},
			logger.With("component", "api"),
			logBuf,
		)
		go safeGo(logger, "ops-server", func() { opsSrv.Start(ctx) })
	}

	srv := mcpserver.New(reg, logger, "f1mcp", version)
	if err := mcpserver.ServeStdio(srv); err != nil {
		logger.Error("stdio server stopped", "error", err)
		return err
	}

	logger.Info("f1mcpd stopped")
	return nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// safeGo runs fn with panic recovery.
func safeGo(logger *slog.Logger, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("goroutine panicked", "name", name, "panic", fmt.Sprintf("%v", r))
		}
	}()
	fn()
}

// toolListerAdapter implements api.ToolLister using the tool registry.
type toolListerAdapter struct {
	reg *tool.Registry
}

func (a *toolListerAdapter) ListToolInfo() []api.ToolInfo {
	tools := a.reg.Tools()
	infos := make([]api.ToolInfo, len(tools))
	for i, t := range tools {
		infos[i] = api.ToolInfo{
			Name:        t.Name(),
			Description: t.Description(),
		}
	}
	return infos
}
