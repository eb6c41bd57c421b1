package service

import (
	"go.uber.org/zap"

	"insurance-advisor/internal/domain"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
)

// priorityProducts are always flagged High when they fit the budget.
var priorityProducts = map[string]struct{}{
	domain.LifeInsuranceKey: {},
	"home_insurance":        {},
}

// Recommendation is a product that fits the applicant's monthly budget.
type Recommendation struct {
	Product  domain.Product `json:"product"`
	Quote    domain.Quote   `json:"quote"`
	Priority Priority       `json:"priority"`
}

// Recommend prices every product in key order with default coverage and
// duration, keeping those whose monthly premium is within monthlyBudget.
func (a *Advisor) Recommend(age int, situation domain.Situation, monthlyBudget float64) []Recommendation {
	applicant := domain.Applicant{Age: age, Situation: situation}
	var out []Recommendation
	for _, p := range a.Products() {
		q, err := a.calc.Calculate(p.Key, applicant)
		if err != nil {
			// Keys come from the same store, so this only happens on a broken store.
			a.logger.Error("Pricing failed during recommendation", zap.String("product", p.Key), zap.Error(err))
			continue
		}
		if q.Monthly > monthlyBudget {
			continue
		}
		prio := PriorityMedium
		if _, ok := priorityProducts[p.Key]; ok {
			prio = PriorityHigh
		}
		out = append(out, Recommendation{Product: p, Quote: q, Priority: prio})
	}
	a.logger.Debug("Recommendations computed",
		zap.Int("age", age),
		zap.String("situation", string(situation)),
		zap.Float64("budget", monthlyBudget),
		zap.Int("count", len(out)),
	)
	return out
}
