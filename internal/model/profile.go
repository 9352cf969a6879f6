// Package model defines the wellness state slices and their defaults.
package model

// Slice domain names. Each slice is persisted under its own key.
const (
	DomainUser          = "user"
	DomainWellness      = "wellness"
	DomainBreathing     = "breathing"
	DomainBoundaries    = "boundaries"
	DomainConversations = "conversations"
)

// Domains lists every slice in restore/flush order.
var Domains = []string{
	DomainUser,
	DomainWellness,
	DomainBreathing,
	DomainBoundaries,
	DomainConversations,
}

// Preferences holds user-facing settings.
type Preferences struct {
	Notifications bool   `json:"notifications" yaml:"notifications"`
	Theme         string `json:"theme" yaml:"theme"`
	Language      string `json:"language" yaml:"language"`
}

// UserProfile describes the person using the app.
type UserProfile struct {
	Name               string      `json:"name" yaml:"name"`
	LifeStage          string      `json:"lifeStage" yaml:"life_stage"`
	OnboardingComplete bool        `json:"onboardingComplete" yaml:"onboarding_complete"`
	Preferences        Preferences `json:"preferences" yaml:"preferences"`
}

// ValidThemes are the allowed preference themes.
var ValidThemes = map[string]bool{
	"default": true,
	"calm":    true,
	"warm":    true,
	"dark":    true,
}

// DefaultUserProfile returns the first-run profile.
func DefaultUserProfile() UserProfile {
	return UserProfile{
		Preferences: Preferences{
			Notifications: true,
			Theme:         "default",
			Language:      "en",
		},
	}
}

// Clone returns a copy of the profile. UserProfile holds no reference types,
// so a value copy is already independent.
func (p UserProfile) Clone() UserProfile {
	return p
}

// Normalize repairs values a stored blob may have corrupted.
func (p *UserProfile) Normalize() {
	if !ValidThemes[p.Preferences.Theme] {
		p.Preferences.Theme = "default"
	}
	if p.Preferences.Language == "" {
		p.Preferences.Language = "en"
	}
}
