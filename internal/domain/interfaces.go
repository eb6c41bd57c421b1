package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LifeInsuranceKey is the reserved product key priced by coverage and duration.
const LifeInsuranceKey = "life_insurance"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrUnknownSituation = errors.New("unknown family situation")
)

// Product is an insurance product definition from the knowledge base.
type Product struct {
	Key            string   `json:"key"`
	BasePremium    float64  `json:"base_premium"`
	Description    string   `json:"description"`
	PricingFactors []string `json:"pricing_factors"`
}

// FAQEntry is a question/answer pair with the vector of its question.
type FAQEntry struct {
	Question string
	Answer   string
	Vector   []float64
}

// Situation is the applicant's marital/family situation.
type Situation string

const (
	SituationSingle  Situation = "single"
	SituationMarried Situation = "married"
	SituationFamily  Situation = "family"
)

var situationAliases = map[string]Situation{
	"single":      SituationSingle,
	"celibataire": SituationSingle,
	"married":     SituationMarried,
	"marie":       SituationMarried,
	"family":      SituationFamily,
	"famille":     SituationFamily,
}

// ParseSituation maps user input, English or French, onto a Situation.
func ParseSituation(s string) (Situation, error) {
	if sit, ok := situationAliases[Fold(strings.TrimSpace(s))]; ok {
		return sit, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSituation, s)
}

// Applicant holds the per-call attributes supplied by the caller.
// CoverageAmount and Duration only matter for life insurance.
type Applicant struct {
	Age            int
	Situation      Situation
	Smoker         bool
	Profession     string
	MedicalHistory bool
	RiskActivities bool
	CoverageAmount float64
	Duration       float64
}

// MatchResult is the best FAQ answer for a question.
type MatchResult struct {
	Answer          string  `json:"answer"`
	Confidence      float64 `json:"confidence"`
	MatchedQuestion string  `json:"matched_question"`
}

// ScoredEntry is an FAQ entry together with its index position and similarity.
type ScoredEntry struct {
	Index int
	Entry FAQEntry
	Score float64
}

// Quote is a computed premium. Monthly and Daily derive from the rounded Annual.
// Advice holds profile-based tips and is only filled in by the advisor service.
type Quote struct {
	ProductKey string   `json:"product"`
	Annual     float64  `json:"annual"`
	Monthly    float64  `json:"monthly"`
	Daily      float64  `json:"daily"`
	Advice     []string `json:"advice,omitempty"`
}

type RiskCategory string

const (
	RiskLow    RiskCategory = "Low"
	RiskMedium RiskCategory = "Medium"
	RiskHigh   RiskCategory = "High"
)

// RiskResult is the outcome of a risk analysis.
type RiskResult struct {
	Score          int          `json:"score"`
	Category       RiskCategory `json:"category"`
	Factors        []string     `json:"factors"`
	Recommendation string       `json:"recommendation"`
}

// Vectorizer converts free text into a vector with a transform frozen at fit time.
type Vectorizer interface {
	Dimension() int
	Transform(text string) []float64
}

// Fold lower-cases s and strips combining accents so "Célibataire" == "celibataire".
// Chains are stateful, so each call builds its own.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}
