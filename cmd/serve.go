package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/hud-a11y/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing overlay navigation tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the overlay's
keyboard navigation as tools. Agents press keys, move focus, and read the
narration without a terminal attached.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  hud-a11y serve
  hud-a11y serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, streamable-http (default from config: stdio)")
	serveCmd.Flags().Int("port", 0, "HTTP port for streamable-http transport (default from config: 8080)")
	serveCmd.Flags().Bool("no-restore", false, "Do not hand OS focus back to the previous application on blur")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	if transport == "" {
		transport = cfg.Serve.Transport
	}
	if port == 0 {
		port = cfg.Serve.Port
	}

	// stdout carries the protocol on stdio, so logs never go there.
	session, logger, closeSession, err := openSession(os.Stderr, sessionOptions(cmd)...)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer closeSession()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("mcp server starting", "transport", transport, "port", port)
	srv := server.New(session, version)
	return srv.Serve(ctx, server.Config{Transport: transport, Port: port})
}
