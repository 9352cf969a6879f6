package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all state",
		Long:  "Export every slice as one document. JSON by default; --format yaml for YAML.",
		Args:  cobra.NoArgs,
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer closeApp(a)

	render(cmd, a.State.Snapshot(), nil)
}
