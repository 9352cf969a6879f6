// Package insight derives short observations from a wellness snapshot.
// Everything here is pure: nothing reads or writes the store.
package insight

import (
	"math/rand/v2"

	"github.com/rcliao/calmish/internal/model"
)

const (
	// HydrationTarget is the glass count below which the hydration nudge fires.
	HydrationTarget = 6
	// MoodFloor is the mood below which the mood nudge fires.
	MoodFloor = 3
	// HabitTarget is the completed-habit count below which the habit nudge fires.
	HabitTarget = 2
)

const (
	Hydration = "Your energy levels might improve with more hydration. Try adding one extra glass of water today."
	LowMood   = "Lower mood days are normal and temporary. Consider reaching out to a friend or practicing a breathing exercise."
	Habits    = "Even small habits create big changes over time. Which habit feels most nourishing to you today?"
)

// Generate returns the nudges triggered by w, hydration first, then mood,
// then habits. An empty result means every threshold is met.
func Generate(w model.WellnessState) []string {
	out := []string{}
	if w.WaterGlasses < HydrationTarget {
		out = append(out, Hydration)
	}
	if w.Mood < MoodFloor {
		out = append(out, LowMood)
	}
	if w.CompletedHabits() < HabitTarget {
		out = append(out, Habits)
	}
	return out
}

var comfort = []string{
	"You are exactly where you need to be in this moment. Your journey is unfolding perfectly, even when it doesn't feel that way.",
	"Your feelings are valid, your experiences are real, and you are worthy of all the care and compassion in the world.",
	"You've survived every difficult day so far, and that strength is still within you. You're more resilient than you know.",
	"It's okay to rest. It's okay to not have all the answers. It's okay to just be where you are right now.",
}

// ComfortMessages returns every comfort message.
func ComfortMessages() []string {
	return append([]string(nil), comfort...)
}

// Comfort picks one comfort message. A nil r uses the global source.
func Comfort(r *rand.Rand) string {
	if r == nil {
		return comfort[rand.IntN(len(comfort))]
	}
	return comfort[r.IntN(len(comfort))]
}
