package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/calmish/internal/insight"
	"github.com/rcliao/calmish/internal/model"
)

func newDB(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return filepath.Join(t.TempDir(), "calmish.db")
}

// run executes the root command against db and returns stdout.
func run(t *testing.T, db, format string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetIn(strings.NewReader(""))
	RootCmd.SetArgs(append([]string{"--db", db, "--format", format}, args...))
	require.NoError(t, RootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func decode[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}

func TestWaterPersistsAcrossRuns(t *testing.T) {
	db := newDB(t)

	ws := decode[model.WellnessState](t, run(t, db, "json", "water", "8"))
	assert.Equal(t, 8, ws.WaterGlasses)

	snap := decode[model.Snapshot](t, run(t, db, "json", "show"))
	assert.Equal(t, 8, snap.Wellness.WaterGlasses)
	assert.Equal(t, 3, snap.Wellness.Mood)
	assert.Equal(t, 1, snap.Breathing.Progress.StreakDays)
}

func TestMoodTextShowsNudges(t *testing.T) {
	db := newDB(t)

	out := run(t, db, "text", "mood", "2")
	assert.Contains(t, out, "mood: 2/5")
	assert.Contains(t, out, insight.Hydration)
	assert.Contains(t, out, insight.LowMood)
	assert.Contains(t, out, insight.Habits)
}

func TestHabitAndInsights(t *testing.T) {
	db := newDB(t)
	run(t, db, "json", "water", "6")
	run(t, db, "json", "habit", "walk")
	run(t, db, "json", "habit", "stretch")

	got := decode[[]string](t, run(t, db, "json", "insights"))
	assert.Empty(t, got)
}

func TestBreatheAndCloseDay(t *testing.T) {
	db := newDB(t)

	out := decode[struct {
		Session  model.BreathingSession  `json:"session"`
		Progress model.BreathingProgress `json:"progress"`
	}](t, run(t, db, "json", "breathe", "box", "240"))
	assert.Equal(t, "box", out.Session.Type)
	assert.Len(t, out.Session.ID, 26)
	assert.Equal(t, model.BreathingProgress{TodaySessions: 1, TodayMinutes: 4, StreakDays: 1}, out.Progress)

	closed := decode[struct {
		Day        model.DailySnapshot `json:"day"`
		StreakDays int                 `json:"streakDays"`
	}](t, run(t, db, "json", "close-day"))
	assert.Equal(t, 4, closed.Day.BreathingMinutes)
	assert.Equal(t, 2, closed.StreakDays)
}

func TestBoundaryUse(t *testing.T) {
	db := newDB(t)

	out := run(t, db, "text", "boundary", "use", "unknown", "0")
	assert.Contains(t, out, "Personal Time Protection")

	snap := decode[model.Snapshot](t, run(t, db, "json", "show"))
	require.Len(t, snap.Boundaries.RecentScripts, 1)
	assert.Equal(t, "self", snap.Boundaries.RecentScripts[0].Category)
}

func TestBoundaryProfile(t *testing.T) {
	db := newDB(t)

	p := decode[*model.BoundaryProfile](t, run(t, db, "json", "boundary", "profile", `{"style":"gentle","strengths":["listening"]}`))
	require.NotNil(t, p)
	assert.Equal(t, "gentle", p.Style)

	p = decode[*model.BoundaryProfile](t, run(t, db, "json", "boundary", "profile", "null"))
	assert.Nil(t, p)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newDB(t)
	run(t, src, "json", "water", "5")
	run(t, src, "json", "mood", "4")
	run(t, src, "json", "symptom", "sleep", "restless")
	run(t, src, "json", "breathe", "478", "120")

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			exported := run(t, src, format, "export")

			dst := filepath.Join(t.TempDir(), "copy.db")
			RootCmd.SetIn(strings.NewReader(exported))
			var out bytes.Buffer
			RootCmd.SetOut(&out)
			RootCmd.SetArgs([]string{"--db", dst, "--format", "json", "import"})
			require.NoError(t, RootCmd.ExecuteContext(context.Background()))

			want := decode[model.Snapshot](t, run(t, src, "json", "show"))
			got := decode[model.Snapshot](t, run(t, dst, "json", "show"))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("imported snapshot mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestShowYAML(t *testing.T) {
	db := newDB(t)
	run(t, db, "json", "water", "3")

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(run(t, db, "yaml", "show")), &doc))
	wellness, ok := doc["wellness"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3, wellness["water_glasses"])
}

func TestStats(t *testing.T) {
	db := newDB(t)
	run(t, db, "json", "flush")

	stats := decode[struct {
		TotalKeys int `json:"total_keys"`
	}](t, run(t, db, "json", "stats"))
	assert.Equal(t, len(model.Domains), stats.TotalKeys)
}

func TestGuide(t *testing.T) {
	var out bytes.Buffer
	p := model.Exercises[model.ExerciseEnergy]

	spent := guide(context.Background(), &out, p, 2, time.Millisecond)
	assert.GreaterOrEqual(t, spent, 2*p.CycleSeconds())
	assert.Contains(t, out.String(), "[2/2] exhale 2")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out.Reset()
	assert.Less(t, guide(ctx, &out, p, 100, time.Second), 1)
}

func TestPhasesSkipEmptyHolds(t *testing.T) {
	assert.Equal(t, []phase{{"inhale", 2}, {"exhale", 2}}, phases(model.Exercises[model.ExerciseEnergy]))
	assert.Len(t, phases(model.Exercises[model.ExerciseBox]), 4)
}
