package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/calmish/internal/app"
	"github.com/rcliao/calmish/internal/events"
	"github.com/rcliao/calmish/internal/insight"
	"github.com/rcliao/calmish/internal/model"
)

func init() {
	RootCmd.AddCommand(
		&cobra.Command{
			Use:   "water <glasses>",
			Short: "Set today's glasses of water",
			Args:  cobra.ExactArgs(1),
			Run:   runWater,
		},
		&cobra.Command{
			Use:   "mood <1-5>",
			Short: "Record today's mood",
			Args:  cobra.ExactArgs(1),
			Run:   runMood,
		},
		&cobra.Command{
			Use:   "habit <name>",
			Short: "Mark a habit done for today",
			Args:  cobra.ExactArgs(1),
			Run:   runHabit,
		},
		&cobra.Command{
			Use:   "symptom <name> <value>",
			Short: "Record a symptom observation",
			Args:  cobra.ExactArgs(2),
			Run:   runSymptom,
		},
		&cobra.Command{
			Use:   "close-day",
			Short: "Archive today into the weekly history and start a new day",
			Args:  cobra.NoArgs,
			Run:   runCloseDay,
		},
	)
}

func intArg(name, s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		exitErr(name, fmt.Errorf("%q is not a number", s))
	}
	return n
}

// watchWellness reports whether any wellness value changed after it was
// called. The returned func prints the current nudges in text mode when one
// did.
func watchWellness(cmd *cobra.Command, a *app.App) (nudge func()) {
	changed := false
	mark := func() { changed = true }
	events.Subscribe(a.Bus, func(events.WaterUpdated) { mark() })
	events.Subscribe(a.Bus, func(events.MoodUpdated) { mark() })
	events.Subscribe(a.Bus, func(events.HabitCompleted) { mark() })

	return func() {
		if !changed || formatFlag != "text" {
			return
		}
		for _, s := range insight.Generate(a.State.Wellness()) {
			fmt.Fprintf(cmd.OutOrStdout(), "  * %s\n", s)
		}
	}
}

func printWellness(w io.Writer, ws model.WellnessState) {
	fmt.Fprintf(w, "water: %d glasses\nmood: %d/5\nhabits done: %d\n", ws.WaterGlasses, ws.Mood, ws.CompletedHabits())
}

func showWellness(cmd *cobra.Command, a *app.App) {
	ws := a.State.Wellness()
	render(cmd, ws, func(w io.Writer) { printWellness(w, ws) })
}

func runWater(cmd *cobra.Command, args []string) {
	n := intArg("water", args[0])
	a := openApp(cmd)
	defer closeApp(a)

	nudge := watchWellness(cmd, a)
	checkMutation(cmd, "water", a.State.SetWater(cmd.Context(), n))
	showWellness(cmd, a)
	nudge()
}

func runMood(cmd *cobra.Command, args []string) {
	m := intArg("mood", args[0])
	a := openApp(cmd)
	defer closeApp(a)

	nudge := watchWellness(cmd, a)
	checkMutation(cmd, "mood", a.State.SetMood(cmd.Context(), m))
	showWellness(cmd, a)
	nudge()
}

func runHabit(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer closeApp(a)

	nudge := watchWellness(cmd, a)
	checkMutation(cmd, "habit", a.State.CompleteHabit(cmd.Context(), args[0]))
	showWellness(cmd, a)
	nudge()
}

func runSymptom(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer closeApp(a)

	checkMutation(cmd, "symptom", a.State.SetSymptom(cmd.Context(), args[0], args[1]))
	symptoms := a.State.Wellness().Symptoms
	render(cmd, symptoms, func(w io.Writer) {
		for _, k := range slices.Sorted(maps.Keys(symptoms)) {
			fmt.Fprintf(w, "%s: %s\n", k, symptoms[k])
		}
	})
}

func runCloseDay(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer closeApp(a)

	day, err := a.State.CloseDay(cmd.Context())
	checkMutation(cmd, "close day", err)
	streak := a.State.Breathing().Progress.StreakDays
	out := struct {
		Day        model.DailySnapshot `json:"day" yaml:"day"`
		StreakDays int                 `json:"streakDays" yaml:"streak_days"`
	}{day, streak}
	render(cmd, out, func(w io.Writer) {
		fmt.Fprintf(w, "closed %s: %d glasses, mood %d, %d habits, %d breathing minutes\nbreathing streak: %d days\n",
			day.Date, day.WaterGlasses, day.Mood, day.HabitsCompleted, day.BreathingMinutes, streak)
	})
}
