package model

// Snapshot is a detached copy of every slice, used for export and display.
type Snapshot struct {
	User          UserProfile     `json:"user" yaml:"user"`
	Wellness      WellnessState   `json:"wellness" yaml:"wellness"`
	Breathing     BreathingState  `json:"breathing" yaml:"breathing"`
	Boundaries    BoundariesState `json:"boundaries" yaml:"boundaries"`
	Conversations ConversationLog `json:"conversations" yaml:"conversations"`
}

// DefaultSnapshot returns every slice at its compiled-in default.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		User:          DefaultUserProfile(),
		Wellness:      DefaultWellnessState(),
		Breathing:     DefaultBreathingState(),
		Boundaries:    DefaultBoundariesState(),
		Conversations: DefaultConversationLog(),
	}
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		User:          s.User.Clone(),
		Wellness:      s.Wellness.Clone(),
		Breathing:     s.Breathing.Clone(),
		Boundaries:    s.Boundaries.Clone(),
		Conversations: s.Conversations.Clone(),
	}
}
