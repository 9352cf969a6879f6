package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/calmish/internal/insight"
)

func init() {
	RootCmd.AddCommand(
		&cobra.Command{
			Use:   "insights",
			Short: "Show observations about today",
			Args:  cobra.NoArgs,
			Run:   runInsights,
		},
		&cobra.Command{
			Use:   "comfort",
			Short: "Print a comforting message",
			Args:  cobra.NoArgs,
			Run:   runComfort,
		},
	)
}

func runInsights(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer closeApp(a)

	list := insight.Generate(a.State.Wellness())
	render(cmd, list, func(w io.Writer) {
		if len(list) == 0 {
			fmt.Fprintln(w, "You're taking good care of yourself today.")
			return
		}
		for _, s := range list {
			fmt.Fprintf(w, "* %s\n", s)
		}
	})
}

func runComfort(cmd *cobra.Command, args []string) {
	msg := insight.Comfort(nil)
	out := struct {
		Message string `json:"message" yaml:"message"`
	}{msg}
	render(cmd, out, func(w io.Writer) { fmt.Fprintln(w, msg) })
}
