// Package models defines the domain types for Laguz.
package models

import "time"

// Emotion labels derived from a sentiment score. The thresholds that map a
// score to one of these labels live in the analyzer package.
const (
	EmotionVeryPositive = "very positive"
	EmotionPositive     = "positive"
	EmotionNeutral      = "neutral"
	EmotionNegative     = "negative"
	EmotionVeryNegative = "very negative"
)

// Sentiment is the derived emotional annotation of an entry.
// Score is always in [0, 1]; Emotion is a fixed function of Score.
type Sentiment struct {
	Emotion string  `json:"emotion"`
	Score   float64 `json:"score"`
}

// Entry represents one journaling record with its derived annotations.
// Summary, Sentiment, and Keywords are computed once at write time and stay
// immutable until the entry content is edited.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	Date      string    `json:"date,omitempty"` // author-chosen ISO calendar date
	CreatedAt time.Time `json:"created_at"`
	Mood      string    `json:"mood,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	IsPrivate bool      `json:"is_private"`
	Summary   string    `json:"summary,omitempty"`
	Sentiment Sentiment `json:"sentiment"`
	Keywords  []string  `json:"keywords,omitempty"` // most relevant first
}

// EffectiveDate returns the author-chosen date when it parses as an ISO
// calendar date, otherwise the calendar date of CreatedAt.
func (e *Entry) EffectiveDate() time.Time {
	if t, err := time.Parse("2006-01-02", e.Date); err == nil {
		return t
	}
	// Full timestamps are accepted too; only the date part matters.
	if t, err := time.Parse(time.RFC3339, e.Date); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	y, m, d := e.CreatedAt.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
