package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored state",
		Args:  cobra.NoArgs,
		Run:   runClear,
	}
	clearCmd.Flags().Bool("yes", false, "Confirm deletion")

	RootCmd.AddCommand(&cobra.Command{
		Use:   "flush",
		Short: "Write every slice to storage now",
		Args:  cobra.NoArgs,
		Run:   runFlush,
	}, clearCmd)
}

func runFlush(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer closeApp(a)

	if err := a.Lifecycle.Flush(cmd.Context(), "manual"); err != nil {
		exitErr("flush", err)
	}
	render(cmd, map[string]bool{"ok": true}, func(w io.Writer) { fmt.Fprintln(w, "saved") })
}

func runClear(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		exitErr("clear", fmt.Errorf("refusing to delete everything without --yes"))
	}

	a := openApp(cmd)
	if err := a.State.Clear(cmd.Context()); err != nil {
		exitErr("clear", err)
	}
	// Skip the final flush so the defaults are not written back.
	if err := a.Release(); err != nil {
		exitErr("close", err)
	}
	render(cmd, map[string]bool{"ok": true}, func(w io.Writer) { fmt.Fprintln(w, "all data cleared") })
}
