// Package matcher answers free-text questions from the FAQ index.
package matcher

import (
	"insurance-advisor/internal/domain"
	"insurance-advisor/internal/vectorstore"
)

// DefaultThreshold is the similarity a match must strictly exceed.
const DefaultThreshold = 0.2

// Matcher pairs the frozen vectorizer with the FAQ vectors it produced.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	vectorizer domain.Vectorizer
	store      vectorstore.Storage
	threshold  float64
}

type Option func(*Matcher)

// WithThreshold overrides DefaultThreshold.
func WithThreshold(t float64) Option {
	return func(m *Matcher) { m.threshold = t }
}

func New(vectorizer domain.Vectorizer, store vectorstore.Storage, opts ...Option) *Matcher {
	m := &Matcher{vectorizer: vectorizer, store: store, threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match returns the best FAQ answer for question. ok is false when no entry
// scores strictly above the threshold, including for an empty index.
func (m *Matcher) Match(question string) (domain.MatchResult, bool) {
	if m.store.Len() == 0 {
		return domain.MatchResult{}, false
	}
	best, ok := m.store.Best(m.vectorizer.Transform(question))
	if !ok || !(best.Score > m.threshold) {
		return domain.MatchResult{}, false
	}
	return domain.MatchResult{
		Answer:          best.Entry.Answer,
		Confidence:      clamp01(best.Score),
		MatchedQuestion: best.Entry.Question,
	}, true
}

// Related returns up to n FAQ questions above the threshold, excluding the
// best match itself. Used to suggest follow-up questions.
func (m *Matcher) Related(question string, n int) []string {
	if n <= 0 || m.store.Len() < 2 {
		return nil
	}
	ranked := m.store.Search(m.vectorizer.Transform(question), n+1)
	var out []string
	for i, r := range ranked {
		if i == 0 || !(r.Score > m.threshold) {
			continue
		}
		out = append(out, r.Entry.Question)
	}
	return out
}

func (m *Matcher) Threshold() float64 { return m.threshold }

// clamp01 absorbs floating point drift above 1 for identical vectors.
func clamp01(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < 0 {
		return 0
	}
	return x
}
