// Package pricing computes annual premium estimates from the knowledge base.
package pricing

import (
	"fmt"
	"math"

	"insurance-advisor/internal/domain"
)

const (
	DefaultCoverageAmount = 100000.0
	DefaultDuration       = 20.0
)

var (
	ageFactors = domain.AgeTable[float64]{1.3, 1.0, 1.2, 1.5}

	situationFactors = map[domain.Situation]float64{
		domain.SituationSingle:  1.0,
		domain.SituationMarried: 0.9,
		domain.SituationFamily:  0.85,
	}
)

// Products is the part of the knowledge base the calculator reads.
type Products interface {
	Get(key string) (domain.Product, bool)
}

// Calculator prices products. It is stateless apart from the read-only store.
type Calculator struct {
	products Products
}

func NewCalculator(products Products) *Calculator {
	return &Calculator{products: products}
}

// Calculate prices productKey for the applicant. Unknown keys yield
// domain.ErrProductNotFound. Zero coverage or duration take the defaults.
//
// Life insurance scales with coverage and duration and ignores the family
// situation; every other product applies the situation factor instead.
func (c *Calculator) Calculate(productKey string, a domain.Applicant) (domain.Quote, error) {
	p, ok := c.products.Get(productKey)
	if !ok {
		return domain.Quote{}, fmt.Errorf("%w: %q", domain.ErrProductNotFound, productKey)
	}

	premium := p.BasePremium * ageFactors.For(a.Age) * SmokerFactor(a.Smoker)
	if productKey == domain.LifeInsuranceKey {
		coverage, duration := a.CoverageAmount, a.Duration
		if coverage == 0 {
			coverage = DefaultCoverageAmount
		}
		if duration == 0 {
			duration = DefaultDuration
		}
		premium *= (coverage / DefaultCoverageAmount) * (duration / DefaultDuration)
	} else {
		premium *= SituationFactor(a.Situation)
	}

	annual := Round2(premium)
	return domain.Quote{
		ProductKey: productKey,
		Annual:     annual,
		Monthly:    annual / 12,
		Daily:      annual / 365,
	}, nil
}

// AgeFactor returns the multiplicative age loading.
func AgeFactor(age int) float64 { return ageFactors.For(age) }

func SmokerFactor(smoker bool) float64 {
	if smoker {
		return 1.5
	}
	return 1.0
}

// SituationFactor returns the family discount; unknown situations get none.
func SituationFactor(s domain.Situation) float64 {
	if f, ok := situationFactors[s]; ok {
		return f
	}
	return 1.0
}

// Round2 rounds to cents, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
