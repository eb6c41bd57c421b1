package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"insurance-advisor/internal/domain"
)

func TestAnalyze_AllFactors(t *testing.T) {
	r := Analyze(domain.Applicant{
		Age:            70,
		Smoker:         true,
		Profession:     "pilot",
		MedicalHistory: true,
		RiskActivities: true,
	})

	assert.Equal(t, 130, r.Score)
	assert.Equal(t, domain.RiskHigh, r.Category)
	assert.Equal(t, []string{
		"Advanced age", "Smoker", "High-risk profession", "Medical history", "High-risk activities",
	}, r.Factors)
	assert.Equal(t, "Risk profile. A premium loading is likely.", r.Recommendation)
}

func TestAnalyze_YoungTeacherIsMedium(t *testing.T) {
	r := Analyze(domain.Applicant{Age: 22, Profession: "teacher"})

	assert.Equal(t, 30, r.Score)
	assert.Equal(t, domain.RiskMedium, r.Category)
	assert.Equal(t, []string{"Young age"}, r.Factors)
	assert.Equal(t, "Standard profile. Normal premiums apply.", r.Recommendation)
}

func TestAnalyze_OptimalAgeIsLow(t *testing.T) {
	r := Analyze(domain.Applicant{Age: 35, Profession: "Engineer"})

	assert.Equal(t, 10, r.Score)
	assert.Equal(t, domain.RiskLow, r.Category)
	assert.Equal(t, []string{"Optimal age"}, r.Factors)
}

func TestAnalyze_AgePoints(t *testing.T) {
	tests := []struct {
		age   int
		score int
		label string
	}{
		{0, 30, "Young age"},
		{24, 30, "Young age"},
		{25, 10, "Optimal age"},
		{39, 10, "Optimal age"},
		{40, 20, "Middle age"},
		{59, 20, "Middle age"},
		{60, 40, "Advanced age"},
		{110, 40, "Advanced age"},
	}
	for _, tt := range tests {
		r := Analyze(domain.Applicant{Age: tt.age})
		assert.Equal(t, tt.score, r.Score, "age %d", tt.age)
		assert.Equal(t, []string{tt.label}, r.Factors, "age %d", tt.age)
	}
}

func TestAnalyze_MiddleAgeSmokerIsMedium(t *testing.T) {
	r := Analyze(domain.Applicant{Age: 45, Smoker: true})
	assert.Equal(t, 50, r.Score)
	assert.Equal(t, domain.RiskMedium, r.Category)
}

func TestAnalyze_FactorOrderIsEvaluationOrder(t *testing.T) {
	r := Analyze(domain.Applicant{Age: 30, Profession: "firefighter", RiskActivities: true})
	assert.Equal(t, 50, r.Score)
	assert.Equal(t, []string{"Optimal age", "High-risk profession", "High-risk activities"}, r.Factors)
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, domain.RiskLow, Categorize(29))
	assert.Equal(t, domain.RiskMedium, Categorize(30))
	assert.Equal(t, domain.RiskMedium, Categorize(59))
	assert.Equal(t, domain.RiskHigh, Categorize(60))
	assert.Equal(t, domain.RiskHigh, Categorize(500))
}

func TestIsRiskProfession(t *testing.T) {
	tests := []struct {
		profession string
		want       bool
	}{
		{"Pilot", true},
		{"airline PILOT", true},
		{"Firefighter", true},
		{"Police Officer", true},
		{"retired military", true},
		{"coal miner", true},
		{"Pompier", true},
		{"Policière", true},
		{"Militaire", true},
		{"Teacher", false},
		{"Ingénieur", false},
		{"police", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.profession, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRiskProfession(tt.profession))
		})
	}
}
