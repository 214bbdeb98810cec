package cmd

import (
	"context"
	"fmt"

	"github.com/mj1618/visible/internal/platform"
	"github.com/mj1618/visible/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the visibility tools",
	Long: `Start a Model Context Protocol (MCP) server with the tools is_visible, read
and verify. Pages stay open between calls for --session-ttl.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  visible serve
  visible serve --transport streamable-http --port 8080
  visible serve --session-ttl 0`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, streamable-http (default from config, else stdio)")
	serveCmd.Flags().Int("port", 0, "HTTP port for streamable-http transport (default from config, else 8080)")
	serveCmd.Flags().Duration("session-ttl", 0, "How long idle pages stay open (0 closes after every call)")
}

func runServe(cmd *cobra.Command, args []string) error {
	sc := server.Config{
		Transport:   cfg.Serve.Transport,
		Port:        cfg.Serve.Port,
		SessionTTL:  cfg.Serve.SessionTTL,
		Concurrency: cfg.Verify.Concurrency,
	}
	flags := cmd.Flags()
	if flags.Changed("transport") {
		sc.Transport, _ = flags.GetString("transport")
	}
	if flags.Changed("port") {
		sc.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("session-ttl") {
		sc.SessionTTL, _ = flags.GetDuration("session-ttl")
		if sc.SessionTTL < 0 {
			return fmt.Errorf("--session-ttl must not be negative")
		}
	}

	logger := loggerFromContext(cmdContext(cmd))
	backend, _ := flags.GetString("backend")
	open := func(ctx context.Context, target string) (platform.Session, error) {
		return openTarget(withLogger(ctx, logger), backend, target)
	}

	return server.New(sc, open, logger).Serve()
}
