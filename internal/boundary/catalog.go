// Package boundary holds the catalog of boundary-setting scripts.
package boundary

import (
	"fmt"
	"slices"
)

// Category groups scripts by the relationship they address.
type Category string

const (
	Work    Category = "work"
	Family  Category = "family"
	Friends Category = "friends"
	Self    Category = "self"
)

// Categories lists every category in display order.
var Categories = []Category{Work, Family, Friends, Self}

// Script is a ready-to-say boundary statement.
type Script struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	Context string `json:"context" yaml:"context"`
}

var catalog = map[Category][]Script{
	Work: {{
		Title:   "Setting Workload Boundaries",
		Content: "I appreciate you thinking of me for this project. I'm currently at capacity with my existing commitments, and I want to ensure I can give my best to everything I'm working on. Can we revisit this next week when I have more bandwidth?",
		Context: "When your plate is full",
	}},
	Family: {{
		Title:   "Respecting Personal Decisions",
		Content: "I know you care about me and want what's best, which I truly appreciate. I need to make this decision myself, even if it means learning from my own experiences. Your support means everything to me.",
		Context: "When family is overly involved",
	}},
	Friends: {{
		Title:   "Social Energy Management",
		Content: "I love spending time with you, and I also need to rest tonight to recharge. Could we plan something for [alternative time] when I can be fully present with you?",
		Context: "When you need to decline plans",
	}},
	Self: {{
		Title:   "Personal Time Protection",
		Content: "I've realized I need some quiet time to recharge and reconnect with myself. I'm taking this evening for self-care, and I'll be available to connect tomorrow when I'm feeling more centered.",
		Context: "When you need alone time",
	}},
}

// Resolve maps an arbitrary category name onto a known one. Unknown names
// resolve to Self.
func Resolve(name string) Category {
	c := Category(name)
	if slices.Contains(Categories, c) {
		return c
	}
	return Self
}

// ScriptsFor returns a copy of the scripts for name along with the category
// they were taken from.
func ScriptsFor(name string) ([]Script, Category) {
	c := Resolve(name)
	return slices.Clone(catalog[c]), c
}

// Pick returns the script at index within name's category.
func Pick(name string, index int) (Script, Category, error) {
	scripts, c := ScriptsFor(name)
	if index < 0 || index >= len(scripts) {
		return Script{}, c, fmt.Errorf("script %d out of range for %s (have %d)", index, c, len(scripts))
	}
	return scripts[index], c, nil
}
