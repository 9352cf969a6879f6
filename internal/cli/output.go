package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/calmish/internal/state"
)

// render writes v in the selected format. text renders the human form and
// may be nil, in which case text output falls back to JSON.
func render(cmd *cobra.Command, v any, text func(w io.Writer)) {
	w := cmd.OutOrStdout()
	switch {
	case formatFlag == "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			exitErr("encode yaml", err)
		}
		fmt.Fprint(w, string(b))
	case formatFlag == "text" && text != nil:
		text(w)
	default:
		b, _ := json.MarshalIndent(v, "", "  ")
		fmt.Fprintln(w, string(b))
	}
}

// checkMutation exits on validation errors and warns when the change was
// kept in memory but could not be written.
func checkMutation(cmd *cobra.Command, what string, err error) {
	if err == nil {
		return
	}
	if state.IsNotPersisted(err) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s not saved: %v\n", what, err)
		return
	}
	exitErr(what, err)
}
