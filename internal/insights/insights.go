// Package insights computes time-windowed aggregate statistics over an
// annotated entry set: counts, average mood, streaks, emotional distribution,
// term frequency, monthly activity, and narrative insights.
package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/starford/laguz/internal/analyzer"
	"github.com/starford/laguz/internal/models"
)

// TermCount is one ranked frequency bucket.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// MonthCount is the entry count for one calendar month.
type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Label string `json:"label"` // e.g. "Jan 2024"
	Count int    `json:"count"`
}

// Report is the aggregate view over a filtered entry set.
type Report struct {
	Window          string       `json:"window"`
	TotalEntries    int          `json:"total_entries"`
	AverageScore    float64      `json:"average_score"`
	AverageMood     string       `json:"average_mood"`
	UniqueTopics    int          `json:"unique_topics"`
	StreakDays      int          `json:"streak_days"`
	EmotionCounts   []TermCount  `json:"emotion_counts"`
	TopTerms        []TermCount  `json:"top_terms"`
	MonthlyActivity []MonthCount `json:"monthly_activity"`
	Insights        []string     `json:"insights"`
}

// Build aggregates the already-filtered entries for the given window.
// Every section tolerates an empty input; nothing here errors.
func Build(entries []*models.Entry, w Window) *Report {
	r := &Report{
		Window:       w.Label,
		TotalEntries: len(entries),
	}

	var scoreSum float64
	tagSet := make(map[string]struct{})
	emotions := make(map[string]int)
	terms := make(map[string]int)
	var dates []time.Time

	for _, e := range entries {
		scoreSum += e.Sentiment.Score
		for _, t := range e.Tags {
			tagSet[t] = struct{}{}
			terms[t]++
		}
		for _, kw := range e.Keywords {
			terms[kw]++
		}
		emotion := e.Sentiment.Emotion
		if emotion == "" {
			emotion = models.EmotionNeutral
		}
		emotions[titleCase(emotion)]++
		dates = append(dates, e.EffectiveDate())
	}

	if len(entries) > 0 {
		r.AverageScore = scoreSum / float64(len(entries))
	}
	r.AverageMood = titleCase(analyzer.EmotionForScore(r.AverageScore))
	r.UniqueTopics = len(tagSet)
	r.StreakDays = Streak(dates)
	r.EmotionCounts = rankCounts(emotions, 0)
	r.TopTerms = rankCounts(terms, 10)
	r.MonthlyActivity = monthlyActivity(dates)
	r.Insights = narrative(r, w)
	return r
}

// Streak counts consecutive calendar days ending at the most recent entry
// date. An empty set scores 0; a single date scores 1; a gap breaks the run.
func Streak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	distinct := make(map[string]time.Time, len(dates))
	for _, d := range dates {
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		distinct[day.Format("2006-01-02")] = day
	}
	days := make([]time.Time, 0, len(distinct))
	for _, d := range distinct {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			streak++
		} else {
			break
		}
	}
	return streak
}

// rankCounts orders counts descending, breaking ties alphabetically so the
// ranking is stable. limit 0 keeps everything.
func rankCounts(counts map[string]int, limit int) []TermCount {
	out := make([]TermCount, 0, len(counts))
	for term, n := range counts {
		out = append(out, TermCount{Term: term, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func monthlyActivity(dates []time.Time) []MonthCount {
	counts := make(map[string]int)
	for _, d := range dates {
		counts[d.Format("2006-01")]++
	}
	months := make([]string, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthCount, len(months))
	for i, m := range months {
		t, _ := time.Parse("2006-01", m)
		out[i] = MonthCount{Month: m, Label: t.Format("Jan 2006"), Count: counts[m]}
	}
	return out
}

// narrative emits the ordered, conditional insight sentences.
func narrative(r *Report, w Window) []string {
	var out []string

	if r.TotalEntries > 0 && r.AverageScore > 0.7 {
		out = append(out, "Your entries show a consistently positive emotional tone. Keep up the good vibes!")
	}
	if r.TotalEntries > 0 && r.AverageScore < 0.3 {
		out = append(out, "Your recent entries show a more negative emotional tone. Consider reflecting on what might be affecting your mood.")
	}
	if r.TotalEntries > 10 && (w.Days == 30 || w.Days == 90) {
		out = append(out, fmt.Sprintf("You've written %d entries in this period. Regular reflection is great for emotional well-being!", r.TotalEntries))
	}
	if len(r.EmotionCounts) > 0 {
		out = append(out, fmt.Sprintf("Your most frequent emotional tone is '%s'. This suggests a consistent pattern in how you process experiences.", r.EmotionCounts[0].Term))
	}
	if len(r.TopTerms) > 0 {
		out = append(out, fmt.Sprintf("'%s' appears frequently in your entries. This seems to be an important theme in your life right now.", r.TopTerms[0].Term))
	}
	return out
}

func titleCase(s string) string {
	prev := ' '
	return strings.Map(func(r rune) rune {
		out := r
		if !unicode.IsLetter(prev) && unicode.IsLetter(r) {
			out = unicode.ToUpper(r)
		}
		prev = r
		return out
	}, s)
}
