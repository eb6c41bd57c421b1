package pricing

import "insurance-advisor/internal/domain"

const (
	AdviceQuitSmoking   = "Quitting smoking could save you up to 30% on your premium."
	AdviceLifeSavings   = "At your age, consider a life insurance policy with a savings component."
	AdviceFamilyDiscount = "You benefit from the 15% family discount."
)

// Advice returns profile-based tips for a quote, in display order.
// The age cutoff is strictly over 50 and independent of the pricing brackets.
func Advice(a domain.Applicant) []string {
	var tips []string
	if a.Smoker {
		tips = append(tips, AdviceQuitSmoking)
	}
	if a.Age > 50 {
		tips = append(tips, AdviceLifeSavings)
	}
	if a.Situation == domain.SituationFamily {
		tips = append(tips, AdviceFamilyDiscount)
	}
	return tips
}
