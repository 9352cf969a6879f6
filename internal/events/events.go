// Package events provides an in-process, synchronous publish/subscribe bus
// for state changes.
//
// Each event kind is its own struct type implementing Event, so handlers
// registered through Subscribe receive a typed payload:
//
//	events.Subscribe(bus, func(e events.MoodUpdated) {
//		fmt.Println("mood is now", e.Mood)
//	})
//
// Event types must be value types; Subscribe derives the topic from the
// type's zero value.
package events

import "github.com/rcliao/calmish/internal/model"

// Topic is the string key identifying an event kind.
type Topic string

const (
	TopicWaterUpdated     Topic = "waterUpdated"
	TopicMoodUpdated      Topic = "moodUpdated"
	TopicHabitCompleted   Topic = "habitCompleted"
	TopicSessionCompleted Topic = "sessionCompleted"
	TopicSymptomLogged    Topic = "symptomLogged"
	TopicEnergyUpdated    Topic = "energyUpdated"
	TopicProfileUpdated   Topic = "profileUpdated"
	TopicScriptUsed       Topic = "scriptUsed"
	TopicMessageAppended  Topic = "messageAppended"
	TopicDayClosed        Topic = "dayClosed"
	TopicStateCleared     Topic = "stateCleared"
)

// Topics lists every topic in declaration order.
var Topics = []Topic{
	TopicWaterUpdated,
	TopicMoodUpdated,
	TopicHabitCompleted,
	TopicSessionCompleted,
	TopicSymptomLogged,
	TopicEnergyUpdated,
	TopicProfileUpdated,
	TopicScriptUsed,
	TopicMessageAppended,
	TopicDayClosed,
	TopicStateCleared,
}

// Event is implemented by every payload published on the bus.
type Event interface {
	Topic() Topic
}

// WaterUpdated carries the new glass count.
type WaterUpdated struct {
	Glasses int `json:"glasses"`
}

func (WaterUpdated) Topic() Topic { return TopicWaterUpdated }

// MoodUpdated carries the new mood.
type MoodUpdated struct {
	Mood int `json:"mood"`
}

func (MoodUpdated) Topic() Topic { return TopicMoodUpdated }

// HabitCompleted names the habit marked done. It is published on every
// completion call, including repeats.
type HabitCompleted struct {
	Habit string `json:"habit"`
}

func (HabitCompleted) Topic() Topic { return TopicHabitCompleted }

// SessionCompleted carries the session just appended.
type SessionCompleted struct {
	Session model.BreathingSession `json:"session"`
}

func (SessionCompleted) Topic() Topic { return TopicSessionCompleted }

type SymptomLogged struct {
	Symptom string `json:"symptom"`
	Value   string `json:"value"`
}

func (SymptomLogged) Topic() Topic { return TopicSymptomLogged }

type EnergyUpdated struct {
	Level int `json:"level"`
}

func (EnergyUpdated) Topic() Topic { return TopicEnergyUpdated }

type ProfileUpdated struct {
	Profile model.UserProfile `json:"profile"`
}

func (ProfileUpdated) Topic() Topic { return TopicProfileUpdated }

type ScriptUsed struct {
	Script model.ScriptRef `json:"script"`
}

func (ScriptUsed) Topic() Topic { return TopicScriptUsed }

type MessageAppended struct {
	Message model.Message `json:"message"`
}

func (MessageAppended) Topic() Topic { return TopicMessageAppended }

// DayClosed carries the snapshot recorded when the day was closed.
type DayClosed struct {
	Day model.DailySnapshot `json:"day"`
}

func (DayClosed) Topic() Topic { return TopicDayClosed }

// StateCleared is published after every slice was reset to its default.
type StateCleared struct{}

func (StateCleared) Topic() Topic { return TopicStateCleared }
