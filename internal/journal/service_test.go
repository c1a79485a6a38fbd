package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/laguz/internal/insights"
	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/store"
	"github.com/starford/laguz/internal/testutil"
)

func testService(t *testing.T) *Service {
	t.Helper()
	s := store.NewLocal(filepath.Join(t.TempDir(), "entries.json"))
	t.Cleanup(func() { s.Close() })
	return NewService(testutil.TestAnalyzer(t), s, DefaultOptions())
}

func TestSaveEntryAnnotates(t *testing.T) {
	svc := testService(t)

	entry, err := svc.SaveEntry(context.Background(), Draft{
		Title:   "Good day",
		Content: "Today was wonderful and I felt great about everything that happened",
		Tags:    []string{"mood"},
	})
	if err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}
	if entry.ID == "" {
		t.Error("entry id not assigned")
	}
	if entry.Summary == "" {
		t.Error("summary not set")
	}
	if entry.Sentiment.Emotion != models.EmotionVeryPositive {
		t.Errorf("emotion = %q, score %v", entry.Sentiment.Emotion, entry.Sentiment.Score)
	}
	if len(entry.Keywords) == 0 {
		t.Error("keywords not set")
	}

	stored, err := svc.GetEntry(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if stored.Summary != entry.Summary {
		t.Error("stored annotations differ from returned entry")
	}
}

func TestSaveEntryShortContentKeptWhole(t *testing.T) {
	svc := testService(t)
	text := "Just a quick thought."
	entry, err := svc.SaveEntry(context.Background(), Draft{Content: text})
	if err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}
	if entry.Summary != text {
		t.Errorf("short entry summary = %q, want original text", entry.Summary)
	}
}

func TestUpdateEntryReannotatesOnContentChange(t *testing.T) {
	svc := testService(t)

	entry, err := svc.SaveEntry(context.Background(), Draft{
		Content: "Today was wonderful and I felt great",
	})
	if err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}
	if entry.Sentiment.Emotion != models.EmotionVeryPositive {
		t.Fatalf("initial emotion = %q", entry.Sentiment.Emotion)
	}

	updated, err := svc.UpdateEntry(context.Background(), entry.ID, Draft{
		Content: "It was a terrible awful day and everything failed",
	})
	if err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if updated.Sentiment.Emotion != models.EmotionVeryNegative {
		t.Errorf("emotion after content change = %q", updated.Sentiment.Emotion)
	}
}

func TestUpdateEntryMetadataKeepsAnnotations(t *testing.T) {
	svc := testService(t)

	entry, err := svc.SaveEntry(context.Background(), Draft{
		Content: "Today was wonderful and I felt great",
	})
	if err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}

	updated, err := svc.UpdateEntry(context.Background(), entry.ID, Draft{
		Title: "Renamed",
		Mood:  "content",
	})
	if err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if updated.Title != "Renamed" || updated.Mood != "content" {
		t.Errorf("metadata not applied: %+v", updated)
	}
	if updated.Sentiment != entry.Sentiment {
		t.Errorf("sentiment changed without a content change: %+v vs %+v",
			updated.Sentiment, entry.Sentiment)
	}
	if updated.Content != entry.Content {
		t.Errorf("content changed: %q", updated.Content)
	}
}

func TestGetTimeline(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	for _, d := range []struct {
		date, content string
	}{
		{"2024-01-15", "Today was wonderful and I felt great"},
		{"2024-01-20", "A calm ordinary day with nothing special"},
		{"2024-03-05", "It was a terrible awful day"},
	} {
		if _, err := svc.SaveEntry(ctx, Draft{Content: d.content, Date: d.date}); err != nil {
			t.Fatalf("SaveEntry: %v", err)
		}
	}

	tl, err := svc.GetTimeline(ctx, 0, insights.Filter{})
	if err != nil {
		t.Fatalf("GetTimeline: %v", err)
	}
	if len(tl.Entries) != 3 {
		t.Fatalf("entries = %d", len(tl.Entries))
	}

	// Trend is in ascending date order.
	if len(tl.Trend) != 3 {
		t.Fatalf("trend points = %d", len(tl.Trend))
	}
	if tl.Trend[0].Date != "2024-01-15" || tl.Trend[2].Date != "2024-03-05" {
		t.Errorf("trend order: %v, %v", tl.Trend[0].Date, tl.Trend[2].Date)
	}

	// Months newest first, January holds two entries.
	if len(tl.Months) != 2 {
		t.Fatalf("months = %d", len(tl.Months))
	}
	if tl.Months[0].Month != "March 2024" {
		t.Errorf("first month = %q", tl.Months[0].Month)
	}
	if len(tl.Months[1].Entries) != 2 {
		t.Errorf("january entries = %d", len(tl.Months[1].Entries))
	}
}

func TestGetTimelineFiltered(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.SaveEntry(ctx, Draft{Content: "wonderful great happy day", Date: "2024-03-01", Mood: "happy"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SaveEntry(ctx, Draft{Content: "terrible awful sad day", Date: "2024-03-02", Mood: "sad"}); err != nil {
		t.Fatal(err)
	}

	tl, err := svc.GetTimeline(ctx, 0, insights.Filter{Mood: "happy"})
	if err != nil {
		t.Fatalf("GetTimeline: %v", err)
	}
	if len(tl.Entries) != 1 {
		t.Fatalf("filtered entries = %d", len(tl.Entries))
	}
	if tl.Entries[0].Mood != "happy" {
		t.Errorf("mood = %q", tl.Entries[0].Mood)
	}
}

func TestGetInsights(t *testing.T) {
	svc := testService(t)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	recent := []string{"2024-03-08", "2024-03-09", "2024-03-10"}
	for _, d := range recent {
		if _, err := svc.SaveEntry(ctx, Draft{Content: "Today was wonderful and I felt great", Date: d}); err != nil {
			t.Fatal(err)
		}
	}
	// Outside the 7-day window.
	if _, err := svc.SaveEntry(ctx, Draft{Content: "old terrible entry from long ago", Date: "2023-11-01"}); err != nil {
		t.Fatal(err)
	}

	view, err := svc.GetInsights(ctx, 0, insights.WindowForDays(7))
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}
	if view.Report.TotalEntries != 3 {
		t.Errorf("windowed total = %d, want 3", view.Report.TotalEntries)
	}
	if view.Report.StreakDays != 3 {
		t.Errorf("streak = %d", view.Report.StreakDays)
	}
	if view.Report.AverageMood != "Very Positive" {
		t.Errorf("average mood = %q", view.Report.AverageMood)
	}
	if len(view.Clusters) == 0 {
		t.Error("expected clusters for three entries")
	}
}
