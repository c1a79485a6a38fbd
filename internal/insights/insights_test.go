package insights

import (
	"strings"
	"testing"
	"time"

	"github.com/starford/laguz/internal/models"
)

func entryOn(date string, score float64, emotion string, tags ...string) *models.Entry {
	return &models.Entry{
		Date:      date,
		Sentiment: models.Sentiment{Score: score, Emotion: emotion},
		Tags:      tags,
	}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStreak(t *testing.T) {
	cases := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"empty", nil, 0},
		{"single", []time.Time{day("2024-03-10")}, 1},
		{"consecutive", []time.Time{day("2024-03-10"), day("2024-03-09"), day("2024-03-08")}, 3},
		{"gap breaks run", []time.Time{day("2024-03-10"), day("2024-03-09"), day("2024-03-07")}, 2},
		{"duplicates collapse", []time.Time{day("2024-03-10"), day("2024-03-10"), day("2024-03-09")}, 2},
		{"unordered input", []time.Time{day("2024-03-08"), day("2024-03-10"), day("2024-03-09")}, 3},
	}
	for _, c := range cases {
		if got := Streak(c.dates); got != c.want {
			t.Errorf("%s: Streak = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	r := Build(nil, WindowForDays(0))
	if r.TotalEntries != 0 {
		t.Errorf("total = %d", r.TotalEntries)
	}
	if r.AverageScore != 0 {
		t.Errorf("average = %v", r.AverageScore)
	}
	if r.AverageMood != "Very Negative" {
		t.Errorf("average mood for empty set = %q", r.AverageMood)
	}
	if r.StreakDays != 0 {
		t.Errorf("streak = %d", r.StreakDays)
	}
	if len(r.Insights) != 0 {
		t.Errorf("insights = %v", r.Insights)
	}
}

func TestBuildAverages(t *testing.T) {
	entries := []*models.Entry{
		entryOn("2024-03-10", 0.9, models.EmotionVeryPositive, "work"),
		entryOn("2024-03-09", 0.9, models.EmotionVeryPositive, "work", "family"),
		entryOn("2024-03-08", 0.9, models.EmotionVeryPositive, "family"),
	}
	r := Build(entries, WindowForDays(7))

	if r.TotalEntries != 3 {
		t.Errorf("total = %d", r.TotalEntries)
	}
	if r.AverageScore < 0.89 || r.AverageScore > 0.91 {
		t.Errorf("average = %v", r.AverageScore)
	}
	if r.AverageMood != "Very Positive" {
		t.Errorf("average mood = %q", r.AverageMood)
	}
	if r.UniqueTopics != 2 {
		t.Errorf("unique topics = %d", r.UniqueTopics)
	}
	if r.StreakDays != 3 {
		t.Errorf("streak = %d", r.StreakDays)
	}
}

func TestBuildEmotionCounts(t *testing.T) {
	entries := []*models.Entry{
		entryOn("2024-03-10", 0.9, models.EmotionVeryPositive),
		entryOn("2024-03-09", 0.9, models.EmotionVeryPositive),
		entryOn("2024-03-08", 0.1, models.EmotionVeryNegative),
		entryOn("2024-03-07", 0.5, ""), // missing label counts as neutral
	}
	r := Build(entries, WindowForDays(0))

	if len(r.EmotionCounts) != 3 {
		t.Fatalf("emotion buckets = %v", r.EmotionCounts)
	}
	if r.EmotionCounts[0].Term != "Very Positive" || r.EmotionCounts[0].Count != 2 {
		t.Errorf("top emotion = %+v", r.EmotionCounts[0])
	}
}

func TestBuildMonthlyActivity(t *testing.T) {
	entries := []*models.Entry{
		entryOn("2024-01-15", 0.5, models.EmotionNeutral),
		entryOn("2024-01-20", 0.5, models.EmotionNeutral),
		entryOn("2024-03-01", 0.5, models.EmotionNeutral),
	}
	r := Build(entries, WindowForDays(0))

	if len(r.MonthlyActivity) != 2 {
		t.Fatalf("months = %v", r.MonthlyActivity)
	}
	if r.MonthlyActivity[0].Month != "2024-01" || r.MonthlyActivity[0].Count != 2 {
		t.Errorf("first month = %+v", r.MonthlyActivity[0])
	}
	if r.MonthlyActivity[1].Label != "Mar 2024" {
		t.Errorf("second month label = %q", r.MonthlyActivity[1].Label)
	}
}

func TestNarrativePositiveTone(t *testing.T) {
	entries := []*models.Entry{
		entryOn("2024-03-10", 0.9, models.EmotionVeryPositive, "running"),
	}
	r := Build(entries, WindowForDays(7))

	if len(r.Insights) == 0 {
		t.Fatal("expected insights")
	}
	if !strings.Contains(r.Insights[0], "consistently positive emotional tone") {
		t.Errorf("first insight = %q", r.Insights[0])
	}
}

func TestNarrativeFrequencyNeedsLargeWindow(t *testing.T) {
	var entries []*models.Entry
	for i := 0; i < 12; i++ {
		entries = append(entries, entryOn("2024-03-10", 0.5, models.EmotionNeutral))
	}

	has := func(insights []string, frag string) bool {
		for _, s := range insights {
			if strings.Contains(s, frag) {
				return true
			}
		}
		return false
	}

	r30 := Build(entries, WindowForDays(30))
	if !has(r30.Insights, "Regular reflection") {
		t.Errorf("30-day window missing frequency insight: %v", r30.Insights)
	}
	r7 := Build(entries, WindowForDays(7))
	if has(r7.Insights, "Regular reflection") {
		t.Errorf("7-day window should not emit frequency insight: %v", r7.Insights)
	}
}

func TestFilterMatch(t *testing.T) {
	e := entryOn("2024-03-10", 0.9, models.EmotionVeryPositive, "work")
	e.Mood = "happy"

	cases := []struct {
		name string
		f    Filter
		want bool
	}{
		{"empty filter", Filter{}, true},
		{"date in range", Filter{From: day("2024-03-01"), To: day("2024-03-31")}, true},
		{"date before range", Filter{From: day("2024-03-11")}, false},
		{"date after range", Filter{To: day("2024-03-09")}, false},
		{"mood match", Filter{Mood: "happy"}, true},
		{"mood mismatch", Filter{Mood: "sad"}, false},
		{"emotion case-insensitive", Filter{Emotion: "VERY POSITIVE"}, true},
		{"tag match", Filter{Tags: []string{"Work"}}, true},
		{"tag mismatch", Filter{Tags: []string{"travel"}}, false},
	}
	for _, c := range cases {
		if got := c.f.Match(e); got != c.want {
			t.Errorf("%s: Match = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestWindowForDays(t *testing.T) {
	if w := WindowForDays(30); w.Label != "Last 30 days" {
		t.Errorf("30-day window = %+v", w)
	}
	if w := WindowForDays(13); w.Days != 0 || w.Label != "All time" {
		t.Errorf("unknown span = %+v", w)
	}
}

func TestWindowCutoff(t *testing.T) {
	now := day("2024-03-31")
	if got := WindowForDays(30).Cutoff(now); !got.Equal(day("2024-03-01")) {
		t.Errorf("cutoff = %v", got)
	}
	if got := WindowForDays(0).Cutoff(now); !got.IsZero() {
		t.Errorf("all-time cutoff = %v", got)
	}
}
