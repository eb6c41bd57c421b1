package service

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"insurance-advisor/internal/domain"
	"insurance-advisor/internal/faqindex"
	"insurance-advisor/internal/knowledge"
	"insurance-advisor/internal/matcher"
	"insurance-advisor/internal/pricing"
	"insurance-advisor/internal/risk"
)

// FallbackMessage is shown when no FAQ entry matches confidently enough.
const FallbackMessage = "I could not find an exact answer to your question. " +
	"Could you rephrase it or use the premium calculator?"

// SuggestionCount is how many leading FAQ questions are offered as suggestions.
const SuggestionCount = 3

// Answer is the outcome of Ask. When Matched is false, Result is empty and
// Fallback holds the standard message.
type Answer struct {
	Question string             `json:"question"`
	Matched  bool               `json:"matched"`
	Result   domain.MatchResult `json:"result"`
	Fallback string             `json:"fallback,omitempty"`
	Related  []string           `json:"related,omitempty"`
}

// Options tune the advisor beyond its stores.
type Options struct {
	Threshold float64
	Related   int
}

// Advisor exposes the question answering and scoring operations over the
// read-only knowledge base and FAQ index. Every method is safe for
// concurrent use and keeps no state between calls.
type Advisor struct {
	kb          *knowledge.Store
	matcher     *matcher.Matcher
	calc        *pricing.Calculator
	related     int
	faqs        int
	suggestions []string
	logger      *zap.Logger
}

func NewAdvisor(kb *knowledge.Store, idx *faqindex.Index, opts Options, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	var mopts []matcher.Option
	if opts.Threshold > 0 {
		mopts = append(mopts, matcher.WithThreshold(opts.Threshold))
	}
	return &Advisor{
		kb:          kb,
		matcher:     matcher.New(idx.Vectorizer, idx.Store, mopts...),
		calc:        pricing.NewCalculator(kb),
		related:     opts.Related,
		faqs:        idx.Store.Len(),
		suggestions: idx.Store.Questions(SuggestionCount),
		logger:      logger,
	}
}

// Ask matches question against the FAQ index.
func (a *Advisor) Ask(question string) Answer {
	question = strings.TrimSpace(question)
	ans := Answer{Question: question}
	res, ok := a.matcher.Match(question)
	if !ok {
		ans.Fallback = FallbackMessage
		a.logger.Debug("No FAQ match", zap.String("question", question))
		return ans
	}
	ans.Matched = true
	ans.Result = res
	ans.Related = a.matcher.Related(question, a.related)
	a.logger.Debug("FAQ match",
		zap.String("question", question),
		zap.String("matched", res.MatchedQuestion),
		zap.Float64("confidence", res.Confidence),
	)
	return ans
}

// Quote prices a product and attaches profile advice; unknown keys return
// domain.ErrProductNotFound.
func (a *Advisor) Quote(productKey string, applicant domain.Applicant) (domain.Quote, error) {
	q, err := a.calc.Calculate(productKey, applicant)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			a.logger.Info("Quote for unknown product", zap.String("product", productKey))
		}
		return domain.Quote{}, err
	}
	q.Advice = pricing.Advice(applicant)
	return q, nil
}

// AssessRisk scores the applicant profile.
func (a *Advisor) AssessRisk(applicant domain.Applicant) domain.RiskResult {
	return risk.Analyze(applicant)
}

// Product returns one knowledge base entry.
func (a *Advisor) Product(key string) (domain.Product, bool) {
	return a.kb.Get(key)
}

// Products lists the knowledge base in key order.
func (a *Advisor) Products() []domain.Product {
	keys := a.kb.Keys()
	out := make([]domain.Product, 0, len(keys))
	for _, k := range keys {
		p, _ := a.kb.Get(k)
		out = append(out, p)
	}
	return out
}

// FAQCount is the number of indexed questions.
func (a *Advisor) FAQCount() int { return a.faqs }

// Suggestions returns the leading FAQ questions, in index order.
func (a *Advisor) Suggestions() []string {
	return append([]string(nil), a.suggestions...)
}
