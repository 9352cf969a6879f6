package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/calmish/internal/model"
	"github.com/rcliao/calmish/internal/state"
)

func init() {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the user profile",
		Args:  cobra.NoArgs,
		Run:   runProfileShow,
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Args:  cobra.NoArgs,
		Run:   runProfileSet,
	}
	set.Flags().String("name", "", "Display name")
	set.Flags().String("life-stage", "", "Life stage, e.g. perimenopause")
	set.Flags().String("theme", "", "Theme: default, calm, warm, dark")
	set.Flags().String("language", "", "Language code")
	set.Flags().Bool("notifications", true, "Enable reminders")

	cmd.AddCommand(set,
		&cobra.Command{
			Use:   "onboard",
			Short: "Mark onboarding complete",
			Args:  cobra.NoArgs,
			Run:   runProfileOnboard,
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the first-run profile",
			Args:  cobra.NoArgs,
			Run:   runProfileReset,
		},
	)
	RootCmd.AddCommand(cmd)
}

func printProfile(cmd *cobra.Command, p model.UserProfile) {
	render(cmd, p, func(w io.Writer) {
		name := p.Name
		if name == "" {
			name = "(not set)"
		}
		fmt.Fprintf(w, "name: %s\nlife stage: %s\nonboarded: %t\ntheme: %s\nlanguage: %s\nnotifications: %t\n",
			name, p.LifeStage, p.OnboardingComplete, p.Preferences.Theme, p.Preferences.Language, p.Preferences.Notifications)
	})
}

func runProfileShow(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer closeApp(a)
	printProfile(cmd, a.State.Profile())
}

// stringFlag returns a pointer to the flag value only when it was given.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func runProfileSet(cmd *cobra.Command, args []string) {
	u := state.ProfileUpdate{
		Name:      stringFlag(cmd, "name"),
		LifeStage: stringFlag(cmd, "life-stage"),
		Theme:     stringFlag(cmd, "theme"),
		Language:  stringFlag(cmd, "language"),
	}
	if cmd.Flags().Changed("notifications") {
		v, _ := cmd.Flags().GetBool("notifications")
		u.Notifications = &v
	}

	a := openApp(cmd)
	defer closeApp(a)

	p, err := a.State.UpdateProfile(cmd.Context(), u)
	checkMutation(cmd, "profile", err)
	printProfile(cmd, p)
}

func runProfileOnboard(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer closeApp(a)

	p, err := a.State.CompleteOnboarding(cmd.Context())
	checkMutation(cmd, "onboarding", err)
	printProfile(cmd, p)
}

func runProfileReset(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer closeApp(a)

	p, err := a.State.ResetProfile(cmd.Context())
	checkMutation(cmd, "profile reset", err)
	printProfile(cmd, p)
}
