package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/calmish/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "breathe <type> [seconds]",
		Short: "Log a breathing session, or run a guided one",
		Long: "Log a completed breathing session of the given type (478, box, calm, energy).\n" +
			"With --guide the exercise is paced in the terminal and the time actually spent is logged.",
		Args: cobra.RangeArgs(1, 2),
		Run:  runBreathe,
	}
	cmd.Flags().Bool("guide", false, "Pace the exercise in the terminal")
	cmd.Flags().Int("cycles", 4, "Breath cycles to guide")

	RootCmd.AddCommand(cmd, &cobra.Command{
		Use:   "exercises",
		Short: "List breathing exercises",
		Args:  cobra.NoArgs,
		Run:   runExercises,
	})
}

type phase struct {
	name    string
	seconds int
}

func phases(p model.Pattern) []phase {
	var out []phase
	for _, ph := range []phase{{"inhale", p.Inhale}, {"hold", p.Hold}, {"exhale", p.Exhale}, {"hold", p.Hold2}} {
		if ph.seconds > 0 {
			out = append(out, ph)
		}
	}
	return out
}

// guide paces cycles of p and returns the whole seconds spent. It stops
// early when ctx is cancelled.
func guide(ctx context.Context, w io.Writer, p model.Pattern, cycles int, unit time.Duration) int {
	start := time.Now()
	fmt.Fprintf(w, "%s: %d cycles\n", p.Name, cycles)
	for c := 1; c <= cycles; c++ {
		for _, ph := range phases(p) {
			fmt.Fprintf(w, "  [%d/%d] %s %d\n", c, cycles, ph.name, ph.seconds)
			select {
			case <-ctx.Done():
				return int(time.Since(start) / unit)
			case <-time.After(time.Duration(ph.seconds) * unit):
			}
		}
	}
	return int(time.Since(start) / unit)
}

func runBreathe(cmd *cobra.Command, args []string) {
	kind := args[0]
	guided, _ := cmd.Flags().GetBool("guide")
	cycles, _ := cmd.Flags().GetInt("cycles")

	var seconds int
	switch {
	case guided:
		p, ok := model.Exercises[kind]
		if !ok {
			exitErr("breathe", fmt.Errorf("unknown exercise %q", kind))
		}
		seconds = guide(cmd.Context(), cmd.ErrOrStderr(), p, cycles, time.Second)
	case len(args) == 2:
		seconds = intArg("seconds", args[1])
	default:
		exitErr("breathe", fmt.Errorf("seconds required unless --guide is set"))
	}

	a := openApp(cmd)
	defer closeApp(a)

	// A guided session cut short by an interrupt is still logged.
	session, err := a.State.AppendBreathingSession(context.WithoutCancel(cmd.Context()), kind, seconds)
	checkMutation(cmd, "breathing session", err)
	progress := a.State.Breathing().Progress
	out := struct {
		Session  model.BreathingSession  `json:"session" yaml:"session"`
		Progress model.BreathingProgress `json:"progress" yaml:"progress"`
	}{session, progress}
	render(cmd, out, func(w io.Writer) {
		fmt.Fprintf(w, "logged %s session (%ds)\ntoday: %d sessions, %d minutes\nstreak: %d days\n",
			session.Type, session.DurationSeconds, progress.TodaySessions, progress.TodayMinutes, progress.StreakDays)
	})
}

func runExercises(cmd *cobra.Command, args []string) {
	list := make([]model.Pattern, 0, len(model.Exercises))
	for _, k := range slices.Sorted(maps.Keys(model.Exercises)) {
		list = append(list, model.Exercises[k])
	}
	render(cmd, list, func(w io.Writer) {
		for _, p := range list {
			fmt.Fprintf(w, "%-7s %-18s %ds cycle\n", p.Type, p.Name, p.CycleSeconds())
		}
	})
}
