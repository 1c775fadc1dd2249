package cmd

import (
	"time"

	"github.com/mj1618/hud-a11y/internal/hud"
	"github.com/mj1618/hud-a11y/internal/model"
	"github.com/mj1618/hud-a11y/internal/output"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the accessible tree of the configured widgets",
	Long: `Print the accessible tree built from the enabled widgets. Each node carries
its dotted path, which is what focus, the MCP focus tool, and narration
refer to.

Examples:
  hud-a11y tree
  hud-a11y tree --flat --format json`,
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().Bool("flat", false, "Flat list with depth and breadcrumbs")
}

func runTree(cmd *cobra.Command, args []string) error {
	session, _, closeSession, err := openSession(diagnostics(cmd), hud.WithoutPlatform())
	if err != nil {
		return err
	}
	defer closeSession()

	ts := time.Now().Unix()
	if flat, _ := cmd.Flags().GetBool("flat"); flat {
		return output.Fprint(cmd.OutOrStdout(), output.TreeFlatResult{Root: model.RootName, TS: ts, Nodes: session.Tree()})
	}
	return output.Fprint(cmd.OutOrStdout(), output.TreeResult{Root: model.RootName, TS: ts, Widgets: session.Manager.Root().Children})
}
