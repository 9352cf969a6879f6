package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/calmish/internal/boundary"
	"github.com/rcliao/calmish/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "boundary",
		Short: "Boundary profile, energy and scripts",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "profile [json]",
			Short: "Show or set the boundary profile",
			Long:  `Without arguments prints the profile. With a JSON object such as {"style":"gentle","strengths":["listening"]} replaces it; "null" clears it.`,
			Args:  cobra.MaximumNArgs(1),
			Run:   runBoundaryProfile,
		},
		&cobra.Command{
			Use:   "energy [1-5]",
			Short: "Show or set the current energy level",
			Args:  cobra.MaximumNArgs(1),
			Run:   runBoundaryEnergy,
		},
		&cobra.Command{
			Use:   "scripts [category]",
			Short: "List scripts for a category (work, family, friends, self)",
			Args:  cobra.MaximumNArgs(1),
			Run:   runBoundaryScripts,
		},
		&cobra.Command{
			Use:   "use <category> <index>",
			Short: "Show a script and remember it as recently used",
			Args:  cobra.ExactArgs(2),
			Run:   runBoundaryUse,
		},
	)
	RootCmd.AddCommand(cmd)
}

func runBoundaryProfile(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer closeApp(a)

	if len(args) == 1 {
		var p *model.BoundaryProfile
		if err := json.Unmarshal([]byte(args[0]), &p); err != nil {
			exitErr("parse profile", err)
		}
		checkMutation(cmd, "boundary profile", a.State.SetBoundaryProfile(cmd.Context(), p))
	}

	b := a.State.Boundaries()
	render(cmd, b.Profile, func(w io.Writer) {
		if b.Profile == nil {
			fmt.Fprintln(w, "no boundary profile yet")
			return
		}
		fmt.Fprintf(w, "style: %s\nstrengths: %v\nchallenges: %v\n", b.Profile.Style, b.Profile.Strengths, b.Profile.Challenges)
	})
}

func runBoundaryEnergy(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer closeApp(a)

	if len(args) == 1 {
		checkMutation(cmd, "energy", a.State.SetEnergyLevel(cmd.Context(), intArg("energy", args[0])))
	}
	level := a.State.Boundaries().EnergyLevel
	out := struct {
		EnergyLevel int `json:"energyLevel" yaml:"energy_level"`
	}{level}
	render(cmd, out, func(w io.Writer) {
		fmt.Fprintf(w, "energy: %d/5\n", level)
	})
}

func runBoundaryScripts(cmd *cobra.Command, args []string) {
	name := string(boundary.Self)
	if len(args) == 1 {
		name = args[0]
	}
	scripts, category := boundary.ScriptsFor(name)
	render(cmd, scripts, func(w io.Writer) {
		fmt.Fprintf(w, "%s scripts:\n", category)
		for i, s := range scripts {
			fmt.Fprintf(w, "  %d. %s (%s)\n", i, s.Title, s.Context)
		}
	})
}

func runBoundaryUse(cmd *cobra.Command, args []string) {
	script, category, err := boundary.Pick(args[0], intArg("index", args[1]))
	if err != nil {
		exitErr("boundary use", err)
	}

	a := openApp(cmd)
	defer closeApp(a)

	_, err = a.State.RecordScript(cmd.Context(), string(category), script.Title)
	checkMutation(cmd, "record script", err)
	render(cmd, script, func(w io.Writer) {
		fmt.Fprintf(w, "%s\n%s\n\n%s\n", script.Title, script.Context, script.Content)
	})
}
