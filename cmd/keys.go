package cmd

import (
	"fmt"
	"sync"

	"github.com/mj1618/hud-a11y/internal/hud"
	"github.com/mj1618/hud-a11y/internal/narration"
	"github.com/mj1618/hud-a11y/internal/output"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys COMBO...",
	Short: "Press a sequence of key combos and print where focus went",
	Long: `Start the overlay, press each combo in order, and print the focused path and
the narration after every step. The first combo enters the overlay the way
the global hotkey does.

Examples:
  hud-a11y keys tab tab space
  hud-a11y keys tab shift+tab escape --format json
  hud-a11y keys tab right right --disable text_panel`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.Flags().StringSlice("disable", nil, "Widget ids to disable before pressing")
	keysCmd.Flags().Bool("restore", false, "Hand OS focus back to the previous application on blur")
	keysCmd.Flags().Duration("settle", 0, "Max wait for deferred focus checks after each key (default: 4x blur_check_delay)")
}

func runKeys(cmd *cobra.Command, args []string) error {
	var opts []hud.Option
	if restore, _ := cmd.Flags().GetBool("restore"); !restore {
		opts = append(opts, hud.WithoutPlatform())
	}
	session, _, closeSession, err := openSession(diagnostics(cmd), opts...)
	if err != nil {
		return err
	}
	defer closeSession()

	disable, _ := cmd.Flags().GetStringSlice("disable")
	for _, id := range disable {
		if err := session.SetWidgetEnabled(id, false); err != nil {
			return err
		}
	}

	settle, _ := cmd.Flags().GetDuration("settle")
	if settle <= 0 {
		settle = 4 * cfg.BlurCheckDelay
	}

	var mu sync.Mutex
	var spoken []string
	session.Narration.Watch(func(e narration.Entry) {
		if e.Kind != narration.KindNarrate {
			return
		}
		mu.Lock()
		spoken = append(spoken, e.Message)
		mu.Unlock()
	})
	take := func() []string {
		mu.Lock()
		defer mu.Unlock()
		out := spoken
		spoken = nil
		return out
	}

	steps := make([]output.KeyStep, 0, len(args))
	for _, combo := range args {
		handled, err := session.Press(combo)
		if err != nil {
			return fmt.Errorf("key %q: %w", combo, err)
		}
		session.Settle(settle)
		steps = append(steps, output.KeyStep{
			Key:       combo,
			Handled:   handled,
			Path:      session.Snapshot(0).State.Path,
			Narration: take(),
		})
	}
	return output.Fprint(cmd.OutOrStdout(), output.KeysResult{Steps: steps, State: session.Snapshot(0).State})
}
