package cmd

import (
	"fmt"
	"strings"

	"github.com/mj1618/hud-a11y/internal/output"
	"github.com/mj1618/hud-a11y/internal/platform"
	"github.com/spf13/cobra"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List applications focus can be handed back to",
	Long: `List running applications with their name and PID, as seen by the focus
restoration backend. With --active, print only the frontmost application,
which is what the overlay records when it takes focus.`,
	RunE: runApps,
}

func init() {
	rootCmd.AddCommand(appsCmd)
	appsCmd.Flags().Bool("active", false, "Only the frontmost application")
	appsCmd.Flags().String("app", "", "Filter by app name")
}

func runApps(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.Focus == nil {
		return fmt.Errorf("focus backend not available on this platform")
	}

	if active, _ := cmd.Flags().GetBool("active"); active {
		app, err := provider.Focus.ActiveApplication()
		if err != nil {
			return err
		}
		return output.Fprint(cmd.OutOrStdout(), app)
	}

	apps, err := provider.Focus.RunningApplications()
	if err != nil {
		return err
	}
	appName, _ := cmd.Flags().GetString("app")
	entries := filterApps(apps, appName)
	return output.Fprint(cmd.OutOrStdout(), entries)
}

// filterApps keeps apps whose name matches name, case-insensitively.
// An empty name keeps everything.
func filterApps(apps []platform.App, name string) []platform.App {
	entries := []platform.App{}
	for _, a := range apps {
		if name != "" && !strings.EqualFold(a.Name, name) {
			continue
		}
		entries = append(entries, a)
	}
	return entries
}
