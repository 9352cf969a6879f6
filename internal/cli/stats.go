package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/calmish/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show storage statistics",
		Args:  cobra.NoArgs,
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer closeApp(a)

	db, ok := a.Backend.(*store.SQLiteStore)
	if !ok {
		exitErr("stats", fmt.Errorf("backend %T has no statistics", a.Backend))
	}
	stats, err := db.Stats(cmd.Context(), a.Adapter.Prefix()+"_")
	if err != nil {
		exitErr("stats", err)
	}

	render(cmd, stats, func(w io.Writer) {
		fmt.Fprintf(w, "%s (%d bytes)\n", stats.DBPath, stats.DBSizeBytes)
		for _, k := range stats.Keys {
			fmt.Fprintf(w, "  %-24s %6d bytes  %s\n", k.Key, k.Bytes, k.UpdatedAt)
		}
	})
}
