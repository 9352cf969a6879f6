package state

import (
	"context"

	"github.com/rcliao/calmish/internal/events"
	"github.com/rcliao/calmish/internal/model"
)

// AppendBreathingSession logs a completed exercise. This is the only path
// that touches the progress counters, which keeps them in step with the log:
// TodaySessions grows by one and TodayMinutes by the whole minutes of the
// session.
func (s *Store) AppendBreathingSession(ctx context.Context, kind string, durationSeconds int) (model.BreathingSession, error) {
	if err := check(sessionInput{Type: kind, DurationSeconds: durationSeconds}); err != nil {
		return model.BreathingSession{}, err
	}

	var session model.BreathingSession
	err := s.apply(ctx, func() ([]write, events.Event) {
		now := s.now()
		session = model.BreathingSession{
			ID:              s.newID(now),
			Type:            kind,
			DurationSeconds: durationSeconds,
			Timestamp:       now,
		}
		s.breathing.Sessions = append(s.breathing.Sessions, session)
		s.breathing.Progress.TodaySessions++
		s.breathing.Progress.TodayMinutes += session.Minutes()

		return []write{{model.DomainBreathing, s.breathing}}, events.SessionCompleted{Session: session}
	})
	return session, err
}
