package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/rcliao/calmish/internal/model"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show a summary of today",
		Args:  cobra.NoArgs,
		Run:   runShow,
	})
}

func runShow(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer closeApp(a)

	snap := a.State.Snapshot()
	render(cmd, snap, func(w io.Writer) { printSummary(w, snap) })
}

func printSummary(w io.Writer, s model.Snapshot) {
	name := s.User.Name
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(w, "Hello, %s.\n\n", name)
	printWellness(w, s.Wellness)
	for _, h := range slices.Sorted(maps.Keys(s.Wellness.Habits)) {
		if s.Wellness.Habits[h] {
			fmt.Fprintf(w, "  - %s\n", h)
		}
	}
	p := s.Breathing.Progress
	fmt.Fprintf(w, "breathing: %d sessions, %d minutes today, %d day streak\n", p.TodaySessions, p.TodayMinutes, p.StreakDays)
	fmt.Fprintf(w, "energy: %d/5\n", s.Boundaries.EnergyLevel)
	if n := len(s.Wellness.WeeklyData); n > 0 {
		fmt.Fprintln(w, "\nrecent days:")
		for _, d := range s.Wellness.WeeklyData {
			fmt.Fprintf(w, "  %s  water %d  mood %d  habits %d  breathing %dm\n",
				d.Date, d.WaterGlasses, d.Mood, d.HabitsCompleted, d.BreathingMinutes)
		}
	}
}
