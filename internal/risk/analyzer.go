// Package risk scores applicant profiles with additive factor points.
package risk

import (
	"strings"

	"insurance-advisor/internal/domain"
)

type agePoints struct {
	points int
	label  string
}

var ageRules = domain.AgeTable[agePoints]{
	{30, "Young age"},
	{10, "Optimal age"},
	{20, "Middle age"},
	{40, "Advanced age"},
}

const (
	smokerPoints     = 30
	professionPoints = 25
	medicalPoints    = 20
	activityPoints   = 15

	mediumFrom = 30
	highFrom   = 60
)

// riskProfessions are matched as folded substrings of the profession text.
var riskProfessions = []string{
	"pilot", "firefighter", "police officer", "military", "miner",
	"pilote", "pompier", "policier", "militaire", "mineur",
}

var recommendations = map[domain.RiskCategory]string{
	domain.RiskLow:    "Excellent profile. Reduced premiums are possible.",
	domain.RiskMedium: "Standard profile. Normal premiums apply.",
	domain.RiskHigh:   "Risk profile. A premium loading is likely.",
}

// Analyze scores the applicant. Factors are listed in evaluation order:
// age, smoking, profession, medical history, risk activities.
func Analyze(a domain.Applicant) domain.RiskResult {
	age := ageRules.For(a.Age)
	score := age.points
	factors := []string{age.label}

	if a.Smoker {
		score += smokerPoints
		factors = append(factors, "Smoker")
	}
	if IsRiskProfession(a.Profession) {
		score += professionPoints
		factors = append(factors, "High-risk profession")
	}
	if a.MedicalHistory {
		score += medicalPoints
		factors = append(factors, "Medical history")
	}
	if a.RiskActivities {
		score += activityPoints
		factors = append(factors, "High-risk activities")
	}

	cat := Categorize(score)
	return domain.RiskResult{
		Score:          score,
		Category:       cat,
		Factors:        factors,
		Recommendation: recommendations[cat],
	}
}

// Categorize maps a score onto Low (<30), Medium (<60) or High.
func Categorize(score int) domain.RiskCategory {
	switch {
	case score < mediumFrom:
		return domain.RiskLow
	case score < highFrom:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}

// IsRiskProfession reports whether profession mentions a high-risk job,
// ignoring case and accents.
func IsRiskProfession(profession string) bool {
	p := domain.Fold(profession)
	for _, kw := range riskProfessions {
		if strings.Contains(p, kw) {
			return true
		}
	}
	return false
}
