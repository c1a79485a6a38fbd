package api

import (
	"github.com/starford/laguz/internal/journal"
	"github.com/starford/laguz/internal/models"
)

// CreateEntryRequest is the request body for creating an entry.
type CreateEntryRequest struct {
	Title     string   `json:"title" example:"Morning pages" validate:"required"`
	Content   string   `json:"content" example:"Today was a good day..." validate:"required"`
	Date      string   `json:"date,omitempty" example:"2024-01-15"`
	Mood      string   `json:"mood,omitempty" example:"happy"`
	Tags      []string `json:"tags,omitempty" example:"work,family"`
	IsPrivate *bool    `json:"is_private,omitempty"`
}

// UpdateEntryRequest is the request body for updating an entry. Empty fields
// leave the stored value untouched.
type UpdateEntryRequest struct {
	Title     string   `json:"title,omitempty"`
	Content   string   `json:"content,omitempty"`
	Date      string   `json:"date,omitempty"`
	Mood      string   `json:"mood,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	IsPrivate *bool    `json:"is_private,omitempty"`
}

// Entry is the full entry response type (aliased from the domain layer).
type Entry = models.Entry

// EntryListResponse wraps entry listings.
type EntryListResponse struct {
	Entries []*Entry `json:"entries" validate:"required"`
	Total   int      `json:"total" example:"42" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []*Entry `json:"results" validate:"required"`
}

// TimelineResponse is the filtered chronological view.
type TimelineResponse = journal.Timeline

// InsightsResponse couples the aggregate report with topic clusters.
type InsightsResponse = journal.InsightsView
