package model

import "maps"

const (
	MinScale = 1
	MaxScale = 5

	// DefaultScale is the neutral mood and energy level.
	DefaultScale = 3

	// WeeklyWindow is how many daily snapshots WeeklyData retains.
	WeeklyWindow = 7
)

// DailySnapshot summarises one closed day.
type DailySnapshot struct {
	Date             string `json:"date" yaml:"date"`
	WaterGlasses     int    `json:"waterGlasses" yaml:"water_glasses"`
	Mood             int    `json:"mood" yaml:"mood"`
	HabitsCompleted  int    `json:"habitsCompleted" yaml:"habits_completed"`
	BreathingMinutes int    `json:"breathingMinutes" yaml:"breathing_minutes"`
}

// WellnessState tracks hydration, mood, habits and symptoms.
type WellnessState struct {
	WaterGlasses int               `json:"waterGlasses" yaml:"water_glasses"`
	Mood         int               `json:"mood" yaml:"mood"`
	Habits       map[string]bool   `json:"habits" yaml:"habits"`
	Symptoms     map[string]string `json:"symptoms" yaml:"symptoms"`
	WeeklyData   []DailySnapshot   `json:"weeklyData" yaml:"weekly_data"`
}

// DefaultWellnessState returns the first-run wellness slice.
func DefaultWellnessState() WellnessState {
	return WellnessState{
		WaterGlasses: 0,
		Mood:         DefaultScale,
		Habits:       map[string]bool{},
		Symptoms:     map[string]string{},
		WeeklyData:   []DailySnapshot{},
	}
}

// InScale reports whether v lies in the 1..5 scale used by mood and energy.
func InScale(v int) bool {
	return v >= MinScale && v <= MaxScale
}

// CompletedHabits counts habits marked done.
func (w WellnessState) CompletedHabits() int {
	n := 0
	for _, done := range w.Habits {
		if done {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (w WellnessState) Clone() WellnessState {
	c := w
	c.Habits = maps.Clone(w.Habits)
	c.Symptoms = maps.Clone(w.Symptoms)
	c.WeeklyData = append([]DailySnapshot(nil), w.WeeklyData...)
	c.Normalize()
	return c
}

// Normalize replaces nil collections and out-of-range values with defaults.
func (w *WellnessState) Normalize() {
	if w.Habits == nil {
		w.Habits = map[string]bool{}
	}
	if w.Symptoms == nil {
		w.Symptoms = map[string]string{}
	}
	if w.WeeklyData == nil {
		w.WeeklyData = []DailySnapshot{}
	}
	if w.WaterGlasses < 0 {
		w.WaterGlasses = 0
	}
	if !InScale(w.Mood) {
		w.Mood = DefaultScale
	}
}
