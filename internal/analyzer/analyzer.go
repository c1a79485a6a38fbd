// Package analyzer turns raw entry text into derived annotations: summary,
// sentiment, and keywords. Model-backed paths degrade to deterministic
// algorithms when the inference backend is missing, so every operation
// always returns a usable result and never an error.
package analyzer

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/starford/laguz/internal/models"
)

// Analyzer holds per-capability model availability and the shared inference
// client. Construct one at startup and pass it to every component that
// annotates text; all methods are safe for concurrent use.
type Analyzer struct {
	logger *slog.Logger
	client *OllamaClient

	summaryModel   string
	sentimentModel string

	summarizerOK bool
	sentimentOK  bool
}

// New builds an Analyzer, probing the inference backend for each configured
// model. A nil client or failed probe leaves the corresponding capability
// disabled; that is logged, never fatal.
func New(ctx context.Context, logger *slog.Logger, client *OllamaClient, summaryModel, sentimentModel string) *Analyzer {
	a := &Analyzer{
		logger:         logger,
		client:         client,
		summaryModel:   summaryModel,
		sentimentModel: sentimentModel,
	}
	if client != nil && summaryModel != "" {
		a.summarizerOK = client.HasModel(ctx, summaryModel)
	}
	if client != nil && sentimentModel != "" {
		a.sentimentOK = client.HasModel(ctx, sentimentModel)
	}

	switch {
	case a.summarizerOK && a.sentimentOK:
		logger.Info("analyzer: all models available",
			slog.String("summary_model", summaryModel),
			slog.String("sentiment_model", sentimentModel))
	case a.Initialized():
		logger.Warn("analyzer: partially initialized",
			slog.Bool("summarizer", a.summarizerOK),
			slog.Bool("sentiment", a.sentimentOK))
	default:
		logger.Warn("analyzer: no models available, using fallback methods only")
	}
	return a
}

// Initialized reports whether at least one model capability loaded.
func (a *Analyzer) Initialized() bool {
	return a.summarizerOK || a.sentimentOK
}

// SummarizerAvailable reports whether the generative summary path is active.
func (a *Analyzer) SummarizerAvailable() bool { return a.summarizerOK }

// SentimentAvailable reports whether the model sentiment path is active.
func (a *Analyzer) SentimentAvailable() bool { return a.sentimentOK }

// EmotionForScore maps a sentiment score in [0, 1] to its emotion label.
// Boundary values fall into the higher category.
func EmotionForScore(score float64) string {
	switch {
	case score >= 0.8:
		return models.EmotionVeryPositive
	case score >= 0.6:
		return models.EmotionPositive
	case score >= 0.4:
		return models.EmotionNeutral
	case score >= 0.2:
		return models.EmotionNegative
	default:
		return models.EmotionVeryNegative
	}
}

// Summarize produces a summary bounded by [minWords, maxWords] words.
// Text already shorter than minWords is returned unchanged. When the
// summarizer model is unavailable or errors, the first sentences of the text
// are used instead.
func (a *Analyzer) Summarize(ctx context.Context, text string, maxWords, minWords int) string {
	if WordCount(text) < minWords {
		return text
	}

	if a.summarizerOK {
		summary, err := a.modelSummary(ctx, text, maxWords, minWords)
		if err == nil && summary != "" {
			return summary
		}
		if err != nil {
			a.logger.Error("analyzer: model summary failed", slog.String("error", err.Error()))
		}
	}

	return extractiveSummary(text, maxWords)
}

func (a *Analyzer) modelSummary(ctx context.Context, text string, maxWords, minWords int) (string, error) {
	var sb strings.Builder
	sb.WriteString("Summarize the following journal entry in ")
	sb.WriteString(strconv.Itoa(minWords))
	sb.WriteString(" to ")
	sb.WriteString(strconv.Itoa(maxWords))
	sb.WriteString(" words. Respond with the summary only, no preamble.\n\n")
	sb.WriteString(text)

	out, err := a.client.Generate(ctx, a.summaryModel, sb.String())
	if err != nil {
		return "", err
	}
	summary := strings.TrimSpace(out)
	// A summary longer than the source defeats the purpose; keep the source.
	if len(summary) >= len(text) {
		return text, nil
	}
	return summary, nil
}

// extractiveSummary takes the first sentences as a summary. Sentence
// tokenization yielding nothing falls back to a raw character prefix.
func extractiveSummary(text string, maxWords int) string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return headOf(text, 100) + "..."
	}
	if len(sentences) <= 2 {
		return text
	}
	summary := strings.Join(sentences[:3], " ")
	// The extractive path tolerates up to twice the requested budget.
	if limit := maxWords * 2; len(summary) > limit {
		summary = headOf(summary, limit) + "..."
	}
	return summary
}

// AnalyzeSentiment scores text in [0, 1] and labels it. Long texts are
// scored sentence by sentence with a word-count-weighted average of binary
// classifications; short texts are classified whole. Without a model the
// polarity lexicon decides.
func (a *Analyzer) AnalyzeSentiment(ctx context.Context, text string) models.Sentiment {
	if a.sentimentOK {
		s, err := a.modelSentiment(ctx, text)
		if err == nil {
			return s
		}
		a.logger.Error("analyzer: model sentiment failed", slog.String("error", err.Error()))
	}

	score := (lexiconPolarity(text) + 1) / 2
	return models.Sentiment{Emotion: EmotionForScore(score), Score: score}
}

func (a *Analyzer) modelSentiment(ctx context.Context, text string) (models.Sentiment, error) {
	if WordCount(text) > 100 {
		sentences := SplitSentences(text)
		var totalScore, totalWeight float64
		for _, sent := range sentences {
			positive, err := a.classifySentence(ctx, sent)
			if err != nil {
				return models.Sentiment{}, err
			}
			weight := float64(WordCount(sent))
			if positive {
				totalScore += weight
			}
			totalWeight += weight
		}
		score := 0.5
		if totalWeight > 0 {
			score = totalScore / totalWeight
		}
		return models.Sentiment{Emotion: EmotionForScore(score), Score: score}, nil
	}

	positive, err := a.classifySentence(ctx, text)
	if err != nil {
		return models.Sentiment{}, err
	}
	score := 0.0
	if positive {
		score = 1.0
	}
	return models.Sentiment{Emotion: EmotionForScore(score), Score: score}, nil
}

func (a *Analyzer) classifySentence(ctx context.Context, text string) (bool, error) {
	prompt := "Classify the sentiment of the following text as POSITIVE or NEGATIVE. " +
		"Respond with exactly one word.\n\n" + text
	out, err := a.client.Generate(ctx, a.sentimentModel, prompt)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToUpper(out), "POSITIVE"), nil
}

// ExtractKeywords returns up to topN terms ranked by weighted frequency over
// a bounded vocabulary. It is purely statistical and never errors; empty or
// degenerate input yields an empty slice.
func (a *Analyzer) ExtractKeywords(text string, topN int) []string {
	return Keywords(text, topN)
}

// Keywords is the package-level keyword extractor used by the Analyzer and
// by cluster naming.
func Keywords(text string, topN int) []string {
	if topN <= 0 {
		return nil
	}
	tokens := ContentTokens(text)

	type term struct {
		word  string
		count int
		first int // first-occurrence index, breaks ties
	}
	counts := make(map[string]*term)
	for i, tok := range tokens {
		if len(tok) <= 3 {
			continue
		}
		if t, ok := counts[tok]; ok {
			t.count++
		} else {
			counts[tok] = &term{word: tok, count: 1, first: i}
		}
	}
	if len(counts) == 0 {
		return nil
	}

	terms := make([]*term, 0, len(counts))
	for _, t := range counts {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].count != terms[j].count {
			return terms[i].count > terms[j].count
		}
		return terms[i].first < terms[j].first
	})

	// Bound the vocabulary before ranking.
	if len(terms) > 100 {
		terms = terms[:100]
	}
	if len(terms) > topN {
		terms = terms[:topN]
	}
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.word
	}
	return out
}

func headOf(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
