package cmd

import (
	"github.com/mj1618/hud-a11y/internal/hud"
	"github.com/mj1618/hud-a11y/internal/output"
	"github.com/spf13/cobra"
)

var widgetsCmd = &cobra.Command{
	Use:   "widgets",
	Short: "List the configured widgets",
	Long:  "List every widget of the layout with its id, label, and whether it starts enabled.",
	RunE:  runWidgets,
}

func init() {
	rootCmd.AddCommand(widgetsCmd)
	widgetsCmd.Flags().Bool("enabled", false, "Only list enabled widgets")
}

func runWidgets(cmd *cobra.Command, args []string) error {
	session, _, closeSession, err := openSession(diagnostics(cmd), hud.WithoutPlatform())
	if err != nil {
		return err
	}
	defer closeSession()

	onlyEnabled, _ := cmd.Flags().GetBool("enabled")
	widgets := session.Snapshot(0).Widgets
	entries := make([]hud.WidgetStatus, 0, len(widgets))
	for _, w := range widgets {
		if onlyEnabled && !w.Enabled {
			continue
		}
		entries = append(entries, w)
	}
	return output.Fprint(cmd.OutOrStdout(), entries)
}
