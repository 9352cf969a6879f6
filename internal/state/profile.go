package state

import (
	"context"

	"github.com/rcliao/calmish/internal/events"
	"github.com/rcliao/calmish/internal/model"
)

// ProfileUpdate lists profile fields to change. Nil fields are left alone.
type ProfileUpdate struct {
	Name          *string
	LifeStage     *string
	Theme         *string
	Language      *string
	Notifications *bool
}

func (u ProfileUpdate) applyTo(p model.UserProfile) model.UserProfile {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.LifeStage != nil {
		p.LifeStage = *u.LifeStage
	}
	if u.Theme != nil {
		p.Preferences.Theme = *u.Theme
	}
	if u.Language != nil {
		p.Preferences.Language = *u.Language
	}
	if u.Notifications != nil {
		p.Preferences.Notifications = *u.Notifications
	}
	return p
}

// UpdateProfile applies u to the user profile.
func (s *Store) UpdateProfile(ctx context.Context, u ProfileUpdate) (model.UserProfile, error) {
	next := u.applyTo(s.Profile())
	if err := check(profileInput{
		Name:      next.Name,
		LifeStage: next.LifeStage,
		Theme:     next.Preferences.Theme,
		Language:  next.Preferences.Language,
	}); err != nil {
		return model.UserProfile{}, err
	}
	return s.commitProfile(ctx, func(p model.UserProfile) model.UserProfile { return u.applyTo(p) })
}

// CompleteOnboarding marks first-run onboarding as done.
func (s *Store) CompleteOnboarding(ctx context.Context) (model.UserProfile, error) {
	return s.commitProfile(ctx, func(p model.UserProfile) model.UserProfile {
		p.OnboardingComplete = true
		return p
	})
}

// ResetProfile restores the first-run profile. Profiles are never deleted.
func (s *Store) ResetProfile(ctx context.Context) (model.UserProfile, error) {
	return s.commitProfile(ctx, func(model.UserProfile) model.UserProfile {
		return model.DefaultUserProfile()
	})
}

func (s *Store) commitProfile(ctx context.Context, change func(model.UserProfile) model.UserProfile) (model.UserProfile, error) {
	var out model.UserProfile
	err := s.apply(ctx, func() ([]write, events.Event) {
		s.user = change(s.user)
		out = s.user.Clone()
		return []write{{model.DomainUser, s.user}}, events.ProfileUpdated{Profile: out}
	})
	return out, err
}
