package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mj1618/hud-a11y/internal/config"
	"github.com/mj1618/hud-a11y/internal/hud"
	"github.com/mj1618/hud-a11y/internal/logging"
	"github.com/mj1618/hud-a11y/internal/output"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/mj1618/hud-a11y/cmd.version=...".
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// cfg is loaded once per invocation by the root PersistentPreRunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "hud-a11y",
	Short: "Keyboard navigation for a heads-up display overlay",
	Long: `Drive the heads-up display overlay from the keyboard: tab through widgets,
open context menus, and hear each focus change narrated. The overlay runs
in the terminal (run), as an MCP server for agents (serve), or one-shot
from scripts (keys, tree).`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./hud.yaml or $XDG_CONFIG_HOME/hud-a11y/hud.yaml)")
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json (default from config: yaml)")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override: debug, info, warn, error")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path, _ := rootCmd.PersistentFlags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if level, _ := rootCmd.PersistentFlags().GetString("log-level"); level != "" {
			if _, err := logging.ParseLevel(level); err != nil {
				return err
			}
			loaded.Log.Level = level
		}
		cfg = loaded

		format, _ := rootCmd.PersistentFlags().GetString("format")
		if format == "" {
			format = cfg.Output.Format
		}
		switch format {
		case "", "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}
}

// openSession builds a session from the loaded config. Log lines go to the
// configured file, or to fallback when none is set. The returned func
// closes the session and the log file.
func openSession(fallback io.Writer, opts ...hud.Option) (*hud.Session, *slog.Logger, func(), error) {
	logger, closer, err := logging.Configure(cfg.Log.File, cfg.Log.Level, fallback)
	if err != nil {
		return nil, nil, nil, err
	}
	session, err := hud.New(cfg, append([]hud.Option{hud.WithLogger(logger)}, opts...)...)
	if err != nil {
		closer.Close()
		return nil, nil, nil, err
	}
	return session, logger, func() {
		session.Close()
		closer.Close()
	}, nil
}

// sessionOptions maps the --no-restore flag of cmd to session options.
func sessionOptions(cmd *cobra.Command) []hud.Option {
	if noRestore, _ := cmd.Flags().GetBool("no-restore"); noRestore {
		return []hud.Option{hud.WithoutPlatform()}
	}
	return nil
}

// diagnostics is where one-shot commands log without a log file: stderr
// when --log-level was given, nowhere otherwise.
func diagnostics(cmd *cobra.Command) io.Writer {
	if rootCmd.PersistentFlags().Changed("log-level") {
		return cmd.ErrOrStderr()
	}
	return io.Discard
}
