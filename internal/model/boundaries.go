package model

import "time"

// BoundaryProfile is the result of the boundary-style questionnaire.
type BoundaryProfile struct {
	Style      string   `json:"style" yaml:"style"`
	Strengths  []string `json:"strengths,omitempty" yaml:"strengths,omitempty"`
	Challenges []string `json:"challenges,omitempty" yaml:"challenges,omitempty"`
}

// Clone returns a deep copy.
func (p BoundaryProfile) Clone() BoundaryProfile {
	c := p
	c.Strengths = append([]string(nil), p.Strengths...)
	c.Challenges = append([]string(nil), p.Challenges...)
	return c
}

// ScriptRef points at a boundary script the user opened.
type ScriptRef struct {
	Category string    `json:"category" yaml:"category"`
	Title    string    `json:"title" yaml:"title"`
	UsedAt   time.Time `json:"usedAt" yaml:"used_at"`
}

// MaxRecentScripts caps BoundariesState.RecentScripts.
const MaxRecentScripts = 10

// BoundariesState holds boundary-setting data.
type BoundariesState struct {
	Profile       *BoundaryProfile `json:"profile" yaml:"profile"`
	EnergyLevel   int              `json:"energyLevel" yaml:"energy_level"`
	RecentScripts []ScriptRef      `json:"recentScripts" yaml:"recent_scripts"`
}

// DefaultBoundariesState returns the first-run boundaries slice.
func DefaultBoundariesState() BoundariesState {
	return BoundariesState{
		Profile:       nil,
		EnergyLevel:   DefaultScale,
		RecentScripts: []ScriptRef{},
	}
}

// Clone returns a deep copy.
func (b BoundariesState) Clone() BoundariesState {
	c := b
	if b.Profile != nil {
		p := b.Profile.Clone()
		c.Profile = &p
	}
	c.RecentScripts = append([]ScriptRef(nil), b.RecentScripts...)
	c.Normalize()
	return c
}

// Normalize replaces nil collections and out-of-range values.
func (b *BoundariesState) Normalize() {
	if b.RecentScripts == nil {
		b.RecentScripts = []ScriptRef{}
	}
	if !InScale(b.EnergyLevel) {
		b.EnergyLevel = DefaultScale
	}
}
