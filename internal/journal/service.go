// Package journal coordinates annotation and persistence: every save runs
// the analyzer synchronously and stores the annotated record; the read side
// assembles timeline and insight views from stored annotations without
// recomputing them.
package journal

import (
	"context"
	"sort"
	"time"

	"github.com/starford/laguz/internal/analyzer"
	"github.com/starford/laguz/internal/cluster"
	"github.com/starford/laguz/internal/insights"
	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/store"
)

// Options bound the annotation pass.
type Options struct {
	SummaryMaxWords int
	SummaryMinWords int
	KeywordCount    int
	ClusterCount    int
}

// DefaultOptions mirror the values used by the entry form.
func DefaultOptions() Options {
	return Options{
		SummaryMaxWords: 100,
		SummaryMinWords: 20,
		KeywordCount:    5,
		ClusterCount:    5,
	}
}

// Service is the journaling application core, caller-owned and constructed
// once at startup.
type Service struct {
	analyzer *analyzer.Analyzer
	store    store.Store
	opts     Options
	now      func() time.Time
}

// NewService creates a journal service.
func NewService(a *analyzer.Analyzer, s store.Store, opts Options) *Service {
	if opts.SummaryMaxWords <= 0 {
		opts = DefaultOptions()
	}
	return &Service{analyzer: a, store: s, opts: opts, now: time.Now}
}

// Draft is the author-provided part of an entry. IsPrivate is a pointer so
// an update can distinguish "leave unchanged" from an explicit choice;
// entries default to private.
type Draft struct {
	Title     string
	Content   string
	Date      string
	Mood      string
	Tags      []string
	IsPrivate *bool
}

// SaveEntry annotates the draft and persists it, returning the stored entry.
// Annotation never fails; only a storage failure past all fallbacks errors.
func (s *Service) SaveEntry(ctx context.Context, d Draft) (*models.Entry, error) {
	e := &models.Entry{
		Title:     d.Title,
		Content:   d.Content,
		Date:      d.Date,
		CreatedAt: s.now().UTC(),
		Mood:      d.Mood,
		Tags:      d.Tags,
		IsPrivate: true,
	}
	if d.IsPrivate != nil {
		e.IsPrivate = *d.IsPrivate
	}
	s.annotate(ctx, e)

	id, err := s.store.Add(e)
	if err != nil {
		return nil, err
	}
	e.ID = id
	return e, nil
}

// GetEntry returns one stored entry.
func (s *Service) GetEntry(_ context.Context, id string) (*models.Entry, error) {
	return s.store.Get(id)
}

// UpdateEntry merges the draft into the stored entry. Annotations are
// recomputed only when the content actually changed.
func (s *Service) UpdateEntry(ctx context.Context, id string, d Draft) (*models.Entry, error) {
	existing, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	changed := d.Content != "" && d.Content != existing.Content
	if d.Title != "" {
		existing.Title = d.Title
	}
	if d.Content != "" {
		existing.Content = d.Content
	}
	if d.Date != "" {
		existing.Date = d.Date
	}
	if d.Mood != "" {
		existing.Mood = d.Mood
	}
	if d.Tags != nil {
		existing.Tags = d.Tags
	}
	if d.IsPrivate != nil {
		existing.IsPrivate = *d.IsPrivate
	}

	if changed {
		s.annotate(ctx, existing)
	}
	if err := s.store.Update(id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteEntry removes a stored entry.
func (s *Service) DeleteEntry(_ context.Context, id string) error {
	return s.store.Delete(id)
}

// List returns recent entries ordered by the given field.
func (s *Service) List(_ context.Context, limit int, orderBy string, descending bool) ([]*models.Entry, error) {
	return s.store.List(limit, orderBy, descending)
}

// Search delegates to the store.
func (s *Service) Search(_ context.Context, query string, limit int) ([]*models.Entry, error) {
	return s.store.Search(query, limit)
}

// annotate fills the derived fields in place.
func (s *Service) annotate(ctx context.Context, e *models.Entry) {
	e.Summary = s.analyzer.Summarize(ctx, e.Content, s.opts.SummaryMaxWords, s.opts.SummaryMinWords)
	e.Sentiment = s.analyzer.AnalyzeSentiment(ctx, e.Content)
	e.Keywords = s.analyzer.ExtractKeywords(e.Content, s.opts.KeywordCount)
}

// TrendPoint is one entry on the emotional trend chart.
type TrendPoint struct {
	Date    string  `json:"date"`
	Score   float64 `json:"score"`
	Emotion string  `json:"emotion"`
	Title   string  `json:"title,omitempty"`
}

// MonthGroup is one month of the timeline, newest month first.
type MonthGroup struct {
	Month   string          `json:"month"` // e.g. "January 2024"
	Entries []*models.Entry `json:"entries"`
}

// Timeline is the filtered chronological view.
type Timeline struct {
	Entries []*models.Entry `json:"entries"`
	Trend   []TrendPoint    `json:"trend"`
	Months  []MonthGroup    `json:"months"`
}

// GetTimeline fetches recent entries, applies the filter, and builds the
// trend series and month grouping.
func (s *Service) GetTimeline(_ context.Context, limit int, f insights.Filter) (*Timeline, error) {
	if limit <= 0 {
		limit = 100
	}
	entries, err := s.store.List(limit, store.OrderByCreatedAt, true)
	if err != nil {
		return nil, err
	}
	filtered := insights.Apply(entries, f)

	tl := &Timeline{Entries: filtered}

	// Trend points in ascending date order.
	byDate := append([]*models.Entry(nil), filtered...)
	sort.SliceStable(byDate, func(i, j int) bool {
		return byDate[i].EffectiveDate().Before(byDate[j].EffectiveDate())
	})
	for _, e := range byDate {
		tl.Trend = append(tl.Trend, TrendPoint{
			Date:    e.EffectiveDate().Format("2006-01-02"),
			Score:   e.Sentiment.Score,
			Emotion: e.Sentiment.Emotion,
			Title:   e.Title,
		})
	}

	// Month groups in descending order, entries newest first within each.
	groups := make(map[string][]*models.Entry)
	var keys []string
	for i := len(byDate) - 1; i >= 0; i-- {
		e := byDate[i]
		key := e.EffectiveDate().Format("2006-01")
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], e)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	for _, key := range keys {
		t, _ := time.Parse("2006-01", key)
		tl.Months = append(tl.Months, MonthGroup{
			Month:   t.Format("January 2006"),
			Entries: groups[key],
		})
	}
	return tl, nil
}

// InsightsView couples the aggregate report with the per-request clusters.
type InsightsView struct {
	Report   *insights.Report `json:"report"`
	Clusters []cluster.Group  `json:"clusters"`
}

// GetInsights fetches recent entries, restricts them to the trailing window,
// and computes the aggregate report plus fresh topic clusters.
func (s *Service) GetInsights(_ context.Context, limit int, w insights.Window) (*InsightsView, error) {
	if limit <= 0 {
		limit = 200
	}
	entries, err := s.store.List(limit, store.OrderByCreatedAt, true)
	if err != nil {
		return nil, err
	}
	filtered := insights.Apply(entries, insights.Filter{From: w.Cutoff(s.now())})

	view := &InsightsView{Report: insights.Build(filtered, w)}
	if len(filtered) >= 3 {
		k := s.opts.ClusterCount
		if k > len(filtered) {
			k = len(filtered)
		}
		view.Clusters = cluster.Groups(filtered, k)
	}
	return view, nil
}
