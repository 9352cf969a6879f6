package state

import (
	"context"

	"github.com/rcliao/calmish/internal/events"
	"github.com/rcliao/calmish/internal/model"
)

// SetBoundaryProfile replaces the boundary profile. Nothing observes profile
// changes, so no event is published. A nil profile clears it.
func (s *Store) SetBoundaryProfile(ctx context.Context, profile *model.BoundaryProfile) error {
	if profile != nil {
		if err := check(boundaryProfileInput{Style: profile.Style}); err != nil {
			return err
		}
	}
	return s.apply(ctx, func() ([]write, events.Event) {
		if profile == nil {
			s.boundaries.Profile = nil
		} else {
			p := profile.Clone()
			s.boundaries.Profile = &p
		}
		return []write{{model.DomainBoundaries, s.boundaries}}, nil
	})
}

// SetEnergyLevel records the current energy on the 1..5 scale.
func (s *Store) SetEnergyLevel(ctx context.Context, level int) error {
	if err := check(energyInput{Level: level}); err != nil {
		return err
	}
	return s.apply(ctx, func() ([]write, events.Event) {
		s.boundaries.EnergyLevel = level
		return []write{{model.DomainBoundaries, s.boundaries}}, events.EnergyUpdated{Level: level}
	})
}

// RecordScript remembers that a boundary script was used. Only the newest
// MaxRecentScripts are kept.
func (s *Store) RecordScript(ctx context.Context, category, title string) (model.ScriptRef, error) {
	if err := check(scriptInput{Category: category, Title: title}); err != nil {
		return model.ScriptRef{}, err
	}
	var ref model.ScriptRef
	err := s.apply(ctx, func() ([]write, events.Event) {
		ref = model.ScriptRef{Category: category, Title: title, UsedAt: s.now()}
		recent := append(s.boundaries.RecentScripts, ref)
		if len(recent) > model.MaxRecentScripts {
			recent = recent[len(recent)-model.MaxRecentScripts:]
		}
		s.boundaries.RecentScripts = append([]model.ScriptRef(nil), recent...)
		return []write{{model.DomainBoundaries, s.boundaries}}, events.ScriptUsed{Script: ref}
	})
	return ref, err
}
