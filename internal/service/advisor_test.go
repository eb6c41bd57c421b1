package service

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"insurance-advisor/internal/domain"
	"insurance-advisor/internal/faqindex"
	"insurance-advisor/internal/knowledge"
	"insurance-advisor/internal/pricing"
)

const testKB = `
home_insurance:
  base_premium: 200
  description: Covers your home and belongings.
  pricing_factors: [Surface, Location]
life_insurance:
  base_premium: 300
  description: Protects your family.
  pricing_factors: [Age, Health]
auto_insurance:
  base_premium: 500
  description: Covers your car.
  pricing_factors: [Vehicle, Driver history]
travel_insurance:
  base_premium: 100
  description: Covers your trips.
  pricing_factors: [Destination]
`

var testFAQs = []faqindex.SourceEntry{
	{Question: "How is my insurance premium calculated?", Answer: "Premiums depend on age, smoking and situation."},
	{Question: "What is the difference between life and death insurance?", Answer: "Life insurance pays at term."},
	{Question: "How do I declare a claim?", Answer: "Declare the claim within five working days."},
}

func newTestAdvisor(t *testing.T) *Advisor {
	t.Helper()
	kb, err := knowledge.Parse([]byte(testKB))
	require.NoError(t, err)
	b, err := faqindex.Build(testFAQs)
	require.NoError(t, err)
	idx, err := b.Index()
	require.NoError(t, err)
	return NewAdvisor(kb, idx, Options{Related: 2}, zap.NewNop())
}

func TestAsk_Match(t *testing.T) {
	a := newTestAdvisor(t)

	ans := a.Ask("  How do I declare a claim?  ")
	require.True(t, ans.Matched)
	assert.Equal(t, "How do I declare a claim?", ans.Question)
	assert.Equal(t, testFAQs[2].Answer, ans.Result.Answer)
	assert.Empty(t, ans.Fallback)
}

func TestAsk_Fallback(t *testing.T) {
	a := newTestAdvisor(t)

	ans := a.Ask("quantum zebra")
	assert.False(t, ans.Matched)
	assert.Equal(t, FallbackMessage, ans.Fallback)
	assert.Zero(t, ans.Result)
	assert.Empty(t, ans.Related)
}

func TestAsk_Related(t *testing.T) {
	a := newTestAdvisor(t)

	ans := a.Ask("insurance premium")
	require.True(t, ans.Matched)
	assert.Equal(t, testFAQs[0].Question, ans.Result.MatchedQuestion)
	assert.Equal(t, []string{testFAQs[1].Question}, ans.Related)
}

func TestQuote(t *testing.T) {
	a := newTestAdvisor(t)

	q, err := a.Quote("home_insurance", domain.Applicant{Age: 30, Situation: domain.SituationMarried})
	require.NoError(t, err)
	assert.Equal(t, 180.0, q.Annual)
	assert.Empty(t, q.Advice)

	q, err = a.Quote("home_insurance", domain.Applicant{Age: 55, Situation: domain.SituationFamily, Smoker: true})
	require.NoError(t, err)
	assert.Equal(t, []string{pricing.AdviceQuitSmoking, pricing.AdviceLifeSavings, pricing.AdviceFamilyDiscount}, q.Advice)

	_, err = a.Quote("dental_insurance", domain.Applicant{Age: 30})
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}

func TestAssessRisk(t *testing.T) {
	a := newTestAdvisor(t)

	r := a.AssessRisk(domain.Applicant{Age: 70, Smoker: true, Profession: "pilot", MedicalHistory: true, RiskActivities: true})
	assert.Equal(t, 130, r.Score)
	assert.Equal(t, domain.RiskHigh, r.Category)
}

func TestProducts(t *testing.T) {
	a := newTestAdvisor(t)

	ps := a.Products()
	require.Len(t, ps, 4)
	assert.Equal(t, "auto_insurance", ps[0].Key)
	assert.Equal(t, "travel_insurance", ps[3].Key)
	assert.Equal(t, 3, a.FAQCount())

	p, ok := a.Product("life_insurance")
	require.True(t, ok)
	assert.Equal(t, 300.0, p.BasePremium)
}

func TestRecommend(t *testing.T) {
	a := newTestAdvisor(t)

	recs := a.Recommend(35, domain.SituationSingle, 20)
	require.Len(t, recs, 2)
	assert.Equal(t, "home_insurance", recs[0].Product.Key)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Equal(t, "travel_insurance", recs[1].Product.Key)
	assert.Equal(t, PriorityMedium, recs[1].Priority)

	for _, r := range recs {
		assert.LessOrEqual(t, r.Quote.Monthly, 20.0)
	}
}

func TestRecommend_BudgetBoundaryInclusive(t *testing.T) {
	a := newTestAdvisor(t)

	// life_insurance at 35 costs exactly 300/12 = 25 a month.
	recs := a.Recommend(35, domain.SituationFamily, 25)
	var keys []string
	for _, r := range recs {
		keys = append(keys, r.Product.Key)
	}
	assert.Contains(t, keys, "life_insurance")
	assert.NotContains(t, keys, "auto_insurance")
}

func TestRecommend_NothingAffordable(t *testing.T) {
	a := newTestAdvisor(t)
	assert.Empty(t, a.Recommend(70, domain.SituationSingle, 1))
}

func writeStores(t *testing.T) (kbPath, idxPath string) {
	t.Helper()
	dir := t.TempDir()
	kbPath = filepath.Join(dir, "kb.yaml")
	require.NoError(t, os.WriteFile(kbPath, []byte(testKB), 0o644))
	b, err := faqindex.Build(testFAQs)
	require.NoError(t, err)
	idxPath = filepath.Join(dir, "faq_index.json")
	require.NoError(t, b.Save(idxPath))
	return kbPath, idxPath
}

func TestLoader_LoadsOnce(t *testing.T) {
	kbPath, idxPath := writeStores(t)
	l := NewLoader(LoaderConfig{KnowledgeBasePath: kbPath, FAQIndexPath: idxPath}, zap.NewNop())

	var wg sync.WaitGroup
	got := make([]*Advisor, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := l.Advisor()
			assert.NoError(t, err)
			got[i] = a
		}(i)
	}
	wg.Wait()

	require.NotNil(t, got[0])
	for _, a := range got[1:] {
		assert.Same(t, got[0], a)
	}

	// Removing the files after the first load does not matter.
	require.NoError(t, os.Remove(kbPath))
	a, err := l.Advisor()
	require.NoError(t, err)
	assert.Same(t, got[0], a)
}

func TestLoader_FailsAtomically(t *testing.T) {
	kbPath, _ := writeStores(t)
	l := NewLoader(LoaderConfig{
		KnowledgeBasePath: kbPath,
		FAQIndexPath:      filepath.Join(t.TempDir(), "missing.json"),
	}, nil)

	a, err := l.Advisor()
	require.Error(t, err)
	assert.Nil(t, a)

	a, err = l.Advisor()
	require.Error(t, err)
	assert.Nil(t, a)
}

func TestLoader_MalformedKnowledgeBase(t *testing.T) {
	_, idxPath := writeStores(t)
	bad := filepath.Join(t.TempDir(), "kb.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("home_insurance:\n  base_premium: -1\n"), 0o644))

	_, err := NewLoader(LoaderConfig{KnowledgeBasePath: bad, FAQIndexPath: idxPath}, nil).Advisor()
	require.Error(t, err)
}

func TestSuggestions(t *testing.T) {
	a := newTestAdvisor(t)

	got := a.Suggestions()
	assert.Equal(t, []string{testFAQs[0].Question, testFAQs[1].Question, testFAQs[2].Question}, got)

	got[0] = "changed"
	assert.Equal(t, testFAQs[0].Question, a.Suggestions()[0])
}
