package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/mj1618/hud-a11y/internal/tui"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the overlay in the terminal",
	Long: `Draw the overlay's widgets in the terminal and navigate them with the keyboard.

While unfocused, tab, enter, or space enters the overlay and m opens the
first context menu. Once focused:
  tab / shift+tab   next / previous element
  escape            up one level, leaving the overlay from widget level
  left / right      switch widgets
  space / enter     activate
  q, ctrl+c         quit (q only while unfocused)

Narration is shown at the bottom and written to the log file when one is
configured.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("no-restore", false, "Do not hand OS focus back to the previous application on blur")
}

func runRun(cmd *cobra.Command, args []string) error {
	// The terminal belongs to the screen; logs only go to a configured file.
	session, logger, closeSession, err := openSession(io.Discard, sessionOptions(cmd)...)
	if err != nil {
		return err
	}
	defer closeSession()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("terminal overlay starting")
	return tui.NewApp(screen, session).Run(ctx)
}
