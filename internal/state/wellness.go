package state

import (
	"context"

	"github.com/rcliao/calmish/internal/events"
	"github.com/rcliao/calmish/internal/model"
)

// SetWater replaces the glass count for today.
func (s *Store) SetWater(ctx context.Context, glasses int) error {
	if err := check(waterInput{Glasses: glasses}); err != nil {
		return err
	}
	return s.apply(ctx, func() ([]write, events.Event) {
		s.wellness.WaterGlasses = glasses
		return []write{{model.DomainWellness, s.wellness}}, events.WaterUpdated{Glasses: glasses}
	})
}

// SetMood records a mood on the 1..5 scale.
func (s *Store) SetMood(ctx context.Context, mood int) error {
	if err := check(moodInput{Mood: mood}); err != nil {
		return err
	}
	return s.apply(ctx, func() ([]write, events.Event) {
		s.wellness.Mood = mood
		return []write{{model.DomainWellness, s.wellness}}, events.MoodUpdated{Mood: mood}
	})
}

// CompleteHabit marks name done. Repeating it leaves the state unchanged but
// still publishes HabitCompleted.
func (s *Store) CompleteHabit(ctx context.Context, name string) error {
	if err := check(habitInput{Name: name}); err != nil {
		return err
	}
	return s.apply(ctx, func() ([]write, events.Event) {
		s.wellness.Habits[name] = true
		return []write{{model.DomainWellness, s.wellness}}, events.HabitCompleted{Habit: name}
	})
}

// SetSymptom records the latest value for a tracked symptom.
func (s *Store) SetSymptom(ctx context.Context, name, value string) error {
	if err := check(symptomInput{Name: name, Value: value}); err != nil {
		return err
	}
	return s.apply(ctx, func() ([]write, events.Event) {
		s.wellness.Symptoms[name] = value
		return []write{{model.DomainWellness, s.wellness}}, events.SymptomLogged{Symptom: name, Value: value}
	})
}

// CloseDay ends the current tracking day. It appends a DailySnapshot to
// WeeklyData (keeping the last WeeklyWindow), resets water and habits, resets
// the breathing day counters, and advances or restarts the streak depending on
// whether any session was logged today. Nothing calls it implicitly.
func (s *Store) CloseDay(ctx context.Context) (model.DailySnapshot, error) {
	var day model.DailySnapshot
	err := s.apply(ctx, func() ([]write, events.Event) {
		day = model.DailySnapshot{
			Date:             s.now().Format("2006-01-02"),
			WaterGlasses:     s.wellness.WaterGlasses,
			Mood:             s.wellness.Mood,
			HabitsCompleted:  s.wellness.CompletedHabits(),
			BreathingMinutes: s.breathing.Progress.TodayMinutes,
		}

		weekly := append(s.wellness.WeeklyData, day)
		if len(weekly) > model.WeeklyWindow {
			weekly = weekly[len(weekly)-model.WeeklyWindow:]
		}
		s.wellness.WeeklyData = append([]model.DailySnapshot(nil), weekly...)
		s.wellness.WaterGlasses = 0
		s.wellness.Habits = map[string]bool{}

		p := &s.breathing.Progress
		if p.TodaySessions > 0 {
			p.StreakDays++
		} else {
			p.StreakDays = 1
		}
		p.TodaySessions = 0
		p.TodayMinutes = 0

		return []write{
			{model.DomainWellness, s.wellness},
			{model.DomainBreathing, s.breathing},
		}, events.DayClosed{Day: day}
	})
	return day, err
}
