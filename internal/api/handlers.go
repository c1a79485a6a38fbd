package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/insights"
	"github.com/starford/laguz/internal/journal"
	"github.com/starford/laguz/internal/sse"
)

// Handler holds API route handlers.
type Handler struct {
	svc    *journal.Service
	broker *sse.Broker // may be nil
}

// NewHandler creates a new Handler.
func NewHandler(svc *journal.Service, broker *sse.Broker) *Handler {
	return &Handler{svc: svc, broker: broker}
}

func (h *Handler) notify(kind, id string) {
	if h.broker != nil {
		h.broker.PublishEntryEvent(kind, id)
	}
}

// ListEntries handles GET /api/entries.
//
//	@Summary		List entries with optional ordering
//	@Tags			entries
//	@Produce		json
//	@Param			limit	query		int		false	"Page size"
//	@Param			sort	query		string	false	"Sort field"	Enums(created_at, date, score)
//	@Param			order	query		string	false	"asc or desc"
//	@Success		200		{object}	EntryListResponse
//	@Security		BearerAuth
//	@Router			/entries [get]
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	sort := q.Get("sort")
	descending := q.Get("order") != "asc"

	items, err := h.svc.List(r.Context(), limit, sort, descending)
	if err != nil {
		slog.Error("list entries failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": items,
		"total":   len(items),
	})
}

// GetEntry handles GET /api/entries/{id}.
//
//	@Summary		Get a single entry by id
//	@Tags			entries
//	@Produce		json
//	@Param			id	path		string	true	"Entry id"
//	@Success		200	{object}	Entry
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries/{id} [get]
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, err := h.svc.GetEntry(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get entry failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// CreateEntry handles POST /api/entries.
//
//	@Summary		Create a new entry (annotated on save)
//	@Tags			entries
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateEntryRequest	true	"Entry to create"
//	@Success		201		{object}	Entry
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries [post]
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}

	draft := journal.Draft{
		Title:     req.Title,
		Content:   req.Content,
		Date:      req.Date,
		Mood:      req.Mood,
		Tags:      req.Tags,
		IsPrivate: req.IsPrivate,
	}

	entry, err := h.svc.SaveEntry(r.Context(), draft)
	if err != nil {
		slog.Error("create entry failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.notify("created", entry.ID)
	writeJSON(w, http.StatusCreated, entry)
}

// UpdateEntry handles PUT /api/entries/{id}.
//
//	@Summary		Update an entry; annotations refresh only when content changed
//	@Tags			entries
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Entry id"
//	@Param			body	body		UpdateEntryRequest	true	"Fields to change"
//	@Success		200		{object}	Entry
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries/{id} [put]
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	id := chi.URLParam(r, "id")

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	draft := journal.Draft{
		Title:     req.Title,
		Content:   req.Content,
		Date:      req.Date,
		Mood:      req.Mood,
		Tags:      req.Tags,
		IsPrivate: req.IsPrivate,
	}

	entry, err := h.svc.UpdateEntry(r.Context(), id, draft)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("update entry failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.notify("updated", entry.ID)
	writeJSON(w, http.StatusOK, entry)
}

// DeleteEntry handles DELETE /api/entries/{id}.
//
//	@Summary		Delete an entry
//	@Tags			entries
//	@Param			id	path	string	true	"Entry id"
//	@Success		204	"Entry deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries/{id} [delete]
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteEntry(r.Context(), id); err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	h.notify("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /api/search.
//
//	@Summary		Search entries by title, content, summary, or tags
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
	})
}

// Timeline handles GET /api/timeline.
//
//	@Summary		Filtered chronological view with trend points and month groups
//	@Tags			timeline
//	@Produce		json
//	@Param			from	query		string	false	"Start date (YYYY-MM-DD)"
//	@Param			to		query		string	false	"End date (YYYY-MM-DD)"
//	@Param			mood	query		string	false	"Filter by mood"
//	@Param			emotion	query		string	false	"Filter by emotion"
//	@Param			tag		query		string	false	"Filter by tag (repeatable)"
//	@Param			limit	query		int		false	"Max entries"
//	@Success		200		{object}	TimelineResponse
//	@Security		BearerAuth
//	@Router			/timeline [get]
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	f := insights.Filter{
		Mood:    q.Get("mood"),
		Emotion: q.Get("emotion"),
		Tags:    q["tag"],
	}
	if from := q.Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid 'from' date"))
			return
		}
		f.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid 'to' date"))
			return
		}
		f.To = t
	}

	tl, err := h.svc.GetTimeline(r.Context(), limit, f)
	if err != nil {
		slog.Error("timeline failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, tl)
}

// Insights handles GET /api/insights.
//
//	@Summary		Aggregate statistics, narrative insights, and topic clusters
//	@Tags			insights
//	@Produce		json
//	@Param			days	query		int	false	"Trailing window in days (0 = all time)"
//	@Success		200		{object}	InsightsResponse
//	@Security		BearerAuth
//	@Router			/insights [get]
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	view, err := h.svc.GetInsights(r.Context(), limit, insights.WindowForDays(days))
	if err != nil {
		slog.Error("insights failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, view)
}
