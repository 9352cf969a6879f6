package model

import "time"

// BreathingSession is one completed guided-breathing exercise.
// Sessions are immutable once appended.
type BreathingSession struct {
	ID              string    `json:"id" yaml:"id"`
	Type            string    `json:"type" yaml:"type"`
	DurationSeconds int       `json:"durationSeconds" yaml:"duration_seconds"`
	Timestamp       time.Time `json:"timestamp" yaml:"timestamp"`
}

// Minutes is the whole-minute credit a session contributes to progress.
func (s BreathingSession) Minutes() int {
	return s.DurationSeconds / 60
}

// BreathingProgress holds counters derived incrementally at append time.
type BreathingProgress struct {
	TodaySessions int `json:"todaySessions" yaml:"today_sessions"`
	TodayMinutes  int `json:"todayMinutes" yaml:"today_minutes"`
	StreakDays    int `json:"streakDays" yaml:"streak_days"`
}

// BreathingState is the append-only session log plus its progress counters.
type BreathingState struct {
	Sessions []BreathingSession `json:"sessions" yaml:"sessions"`
	Progress BreathingProgress  `json:"progress" yaml:"progress"`
}

// DefaultBreathingState returns the first-run breathing slice.
func DefaultBreathingState() BreathingState {
	return BreathingState{
		Sessions: []BreathingSession{},
		Progress: BreathingProgress{StreakDays: 1},
	}
}

// Clone returns a deep copy.
func (b BreathingState) Clone() BreathingState {
	c := b
	c.Sessions = append([]BreathingSession(nil), b.Sessions...)
	c.Normalize()
	return c
}

// Normalize replaces nil collections and out-of-range counters.
func (b *BreathingState) Normalize() {
	if b.Sessions == nil {
		b.Sessions = []BreathingSession{}
	}
	if b.Progress.TodaySessions < 0 {
		b.Progress.TodaySessions = 0
	}
	if b.Progress.TodayMinutes < 0 {
		b.Progress.TodayMinutes = 0
	}
	if b.Progress.StreakDays < 1 {
		b.Progress.StreakDays = 1
	}
}

// Exercise kinds.
const (
	Exercise478    = "478"
	ExerciseBox    = "box"
	ExerciseCalm   = "calm"
	ExerciseEnergy = "energy"
)

// Pattern is the per-phase timing of a breathing exercise, in seconds.
type Pattern struct {
	Type   string `json:"type" yaml:"type"`
	Name   string `json:"name" yaml:"name"`
	Inhale int    `json:"inhale" yaml:"inhale"`
	Hold   int    `json:"hold,omitempty" yaml:"hold,omitempty"`
	Exhale int    `json:"exhale" yaml:"exhale"`
	Hold2  int    `json:"hold2,omitempty" yaml:"hold2,omitempty"`
}

// CycleSeconds is the length of one full breath cycle.
func (p Pattern) CycleSeconds() int {
	return p.Inhale + p.Hold + p.Exhale + p.Hold2
}

// Exercises is the catalog of supported breathing exercises.
var Exercises = map[string]Pattern{
	Exercise478:    {Type: Exercise478, Name: "4-7-8 Breathing", Inhale: 4, Hold: 7, Exhale: 8},
	ExerciseBox:    {Type: ExerciseBox, Name: "Box Breathing", Inhale: 4, Hold: 4, Exhale: 4, Hold2: 4},
	ExerciseCalm:   {Type: ExerciseCalm, Name: "Calm Breath", Inhale: 4, Hold: 2, Exhale: 6},
	ExerciseEnergy: {Type: ExerciseEnergy, Name: "Energizing Breath", Inhale: 2, Exhale: 2},
}

// ValidExerciseTypes are the allowed session types.
var ValidExerciseTypes = map[string]bool{
	Exercise478:    true,
	ExerciseBox:    true,
	ExerciseCalm:   true,
	ExerciseEnergy: true,
}

// ExercisePattern looks up an exercise, falling back to the calm breath.
func ExercisePattern(kind string) Pattern {
	if p, ok := Exercises[kind]; ok {
		return p
	}
	return Exercises[ExerciseCalm]
}
