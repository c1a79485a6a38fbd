package analyzer

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/starford/laguz/internal/models"
)

func testAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(context.Background(), logger, nil, "", "")
}

func TestEmotionForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.95, models.EmotionVeryPositive},
		{0.8, models.EmotionVeryPositive},
		{0.79, models.EmotionPositive},
		{0.6, models.EmotionPositive},
		{0.59, models.EmotionNeutral},
		{0.4, models.EmotionNeutral},
		{0.39, models.EmotionNegative},
		{0.2, models.EmotionNegative},
		{0.19, models.EmotionVeryNegative},
		{0.0, models.EmotionVeryNegative},
	}
	for _, c := range cases {
		if got := EmotionForScore(c.score); got != c.want {
			t.Errorf("EmotionForScore(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestSummarizeShortTextUnchanged(t *testing.T) {
	a := testAnalyzer(t)
	text := "Quick note before bed."
	if got := a.Summarize(context.Background(), text, 100, 20); got != text {
		t.Errorf("short text changed: %q", got)
	}
}

func TestSummarizeExtractive(t *testing.T) {
	a := testAnalyzer(t)
	text := "The morning run went well. Work was busy but productive. Dinner with friends was lovely. " +
		"We talked for hours straight. Sleep came easily after that."
	want := "The morning run went well. Work was busy but productive. Dinner with friends was lovely."
	if got := a.Summarize(context.Background(), text, 100, 20); got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

func TestSummarizeFewSentencesKeptWhole(t *testing.T) {
	a := testAnalyzer(t)
	text := "One long sentence that rambles on about the day and everything that happened during it without a break. " +
		"And then a second one closing it out."
	if got := a.Summarize(context.Background(), text, 100, 20); got != text {
		t.Errorf("two-sentence text should be kept whole, got %q", got)
	}
}

func TestSummarizeTruncatesLongExtract(t *testing.T) {
	a := testAnalyzer(t)
	long := strings.Repeat("wandering thoughts keep going ", 10)
	text := long + ". " + long + ". " + long + ". " + long + "."
	got := a.Summarize(context.Background(), text, 20, 5)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncated summary with ellipsis, got %q", got)
	}
	// Budget is chars = maxWords*2 plus the ellipsis.
	if len([]rune(got)) > 20*2+3 {
		t.Errorf("summary too long: %d runes", len([]rune(got)))
	}
}

func TestAnalyzeSentimentLexicon(t *testing.T) {
	a := testAnalyzer(t)

	pos := a.AnalyzeSentiment(context.Background(), "Today was wonderful and I felt great")
	if pos.Emotion != models.EmotionVeryPositive {
		t.Errorf("positive text emotion = %q, score %v", pos.Emotion, pos.Score)
	}
	if pos.Score <= 0.8 {
		t.Errorf("positive score = %v, want > 0.8", pos.Score)
	}

	neg := a.AnalyzeSentiment(context.Background(), "It was a terrible awful day")
	if neg.Score >= 0.5 {
		t.Errorf("negative score = %v, want < 0.5", neg.Score)
	}
	if neg.Emotion != models.EmotionVeryNegative {
		t.Errorf("negative emotion = %q", neg.Emotion)
	}

	neutral := a.AnalyzeSentiment(context.Background(), "I went outside and bought some bread")
	if neutral.Score != 0.5 {
		t.Errorf("neutral score = %v, want 0.5", neutral.Score)
	}
	if neutral.Emotion != models.EmotionNeutral {
		t.Errorf("neutral emotion = %q", neutral.Emotion)
	}
}

func TestAnalyzeSentimentNegation(t *testing.T) {
	a := testAnalyzer(t)
	s := a.AnalyzeSentiment(context.Background(), "I was not happy about it")
	if s.Score >= 0.5 {
		t.Errorf("negated positive word should score below 0.5, got %v", s.Score)
	}
}

func TestKeywords(t *testing.T) {
	text := "running trails again, running hard, running past the quiet trails with new gear"
	got := Keywords(text, 3)
	want := []string{"running", "trails", "hard"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

func TestKeywordsShortWordsExcluded(t *testing.T) {
	if got := Keywords("run run run fog fog", 5); got != nil {
		t.Errorf("short words should be excluded, got %v", got)
	}
}

func TestKeywordsEmptyInput(t *testing.T) {
	if got := Keywords("", 5); len(got) != 0 {
		t.Errorf("empty input keywords = %v", got)
	}
	if got := Keywords("something", 0); got != nil {
		t.Errorf("topN 0 keywords = %v", got)
	}
}

func TestKeywordsTieBreakByFirstOccurrence(t *testing.T) {
	got := Keywords("zebra apple zebra apple mango", 3)
	want := []string{"zebra", "apple", "mango"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Don't worry, be HAPPY!")
	want := []string{"don't", "worry", "be", "happy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestContentTokensDropsStopWords(t *testing.T) {
	got := ContentTokens("the quick fox and the lazy dog")
	want := []string{"quick", "fox", "lazy", "dog"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ContentTokens = %v, want %v", got, want)
	}
}

func TestSplitSentences(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"One. Two! Three?", []string{"One.", "Two!", "Three?"}},
		{"Wait... what?!", []string{"Wait...", "what?!"}},
		{"line one\nline two", []string{"line one", "line two"}},
		{"", nil},
		{"   ", nil},
	}
	for _, c := range cases {
		got := SplitSentences(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("SplitSentences(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAnalyzerWithoutModelsReportsUnavailable(t *testing.T) {
	a := testAnalyzer(t)
	if a.Initialized() {
		t.Error("analyzer with no client should not be initialized")
	}
	if a.SummarizerAvailable() || a.SentimentAvailable() {
		t.Error("capabilities should be disabled without a client")
	}
}
