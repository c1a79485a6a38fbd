package insights

import (
	"strings"
	"time"

	"github.com/starford/laguz/internal/models"
)

// Filter selects entries by date range, mood, emotion label, and tags.
// Zero-valued fields match everything.
type Filter struct {
	From    time.Time
	To      time.Time
	Mood    string
	Emotion string
	Tags    []string
}

// Match reports whether the entry passes every set predicate. Dates compare
// on the entry's effective date (author-chosen date, falling back to the
// creation timestamp when unparsable).
func (f Filter) Match(e *models.Entry) bool {
	d := e.EffectiveDate()
	if !f.From.IsZero() && d.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && d.After(f.To) {
		return false
	}
	if f.Mood != "" && e.Mood != f.Mood {
		return false
	}
	if f.Emotion != "" && !strings.EqualFold(e.Sentiment.Emotion, f.Emotion) {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(e.Tags, f.Tags) {
		return false
	}
	return true
}

// Apply returns the entries matching the filter, preserving input order.
func Apply(entries []*models.Entry, f Filter) []*models.Entry {
	var out []*models.Entry
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

func hasAnyTag(entryTags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range entryTags {
			if strings.EqualFold(t, w) {
				return true
			}
		}
	}
	return false
}

// Window is a trailing time period for aggregation views.
type Window struct {
	Label string
	Days  int // 0 means all time
}

// Predefined aggregation windows, mirroring the period selector.
var Windows = []Window{
	{Label: "Last 7 days", Days: 7},
	{Label: "Last 30 days", Days: 30},
	{Label: "Last 90 days", Days: 90},
	{Label: "Last 6 months", Days: 180},
	{Label: "Last year", Days: 365},
	{Label: "All time", Days: 0},
}

// WindowForDays returns the predefined window with the given day span,
// defaulting to all time for unknown spans.
func WindowForDays(days int) Window {
	for _, w := range Windows {
		if w.Days == days {
			return w
		}
	}
	return Window{Label: "All time", Days: 0}
}

// Cutoff returns the earliest effective date included in the window, or the
// zero time for an all-time window.
func (w Window) Cutoff(now time.Time) time.Time {
	if w.Days <= 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -w.Days)
}
