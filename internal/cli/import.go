package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/calmish/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file|-]",
		Short: "Replace all state from an export",
		Long:  "Import a document produced by export (JSON or YAML) from a file or stdin. Slices missing from the document are reset to their defaults.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

// decodeSnapshot accepts either export format. Missing fields keep their
// defaults.
func decodeSnapshot(data []byte) (model.Snapshot, error) {
	snap := model.DefaultSnapshot()
	jsonErr := json.Unmarshal(data, &snap)
	if jsonErr == nil {
		return snap, nil
	}
	snap = model.DefaultSnapshot()
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("neither JSON (%v) nor YAML (%v)", jsonErr, err)
	}
	return snap, nil
}

func runImport(cmd *cobra.Command, args []string) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		exitErr("read input", err)
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		exitErr("parse import", err)
	}

	a := openApp(cmd)
	defer closeApp(a)

	checkMutation(cmd, "import", a.State.Import(cmd.Context(), snap))
	out := struct {
		OK       bool `json:"ok" yaml:"ok"`
		Messages int  `json:"messages" yaml:"messages"`
		Sessions int  `json:"sessions" yaml:"sessions"`
	}{true, len(snap.Conversations), len(snap.Breathing.Sessions)}
	render(cmd, out, func(w io.Writer) {
		fmt.Fprintf(w, "imported %d breathing sessions and %d messages\n", out.Sessions, out.Messages)
	})
}
