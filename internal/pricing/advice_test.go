package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"insurance-advisor/internal/domain"
)

func TestAdvice(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Applicant
		want []string
	}{
		{"no tips", domain.Applicant{Age: 35, Situation: domain.SituationSingle}, nil},
		{"age 50 is not over the cutoff", domain.Applicant{Age: 50}, nil},
		{"age 51", domain.Applicant{Age: 51}, []string{AdviceLifeSavings}},
		{"smoker", domain.Applicant{Age: 30, Smoker: true}, []string{AdviceQuitSmoking}},
		{"family", domain.Applicant{Age: 30, Situation: domain.SituationFamily}, []string{AdviceFamilyDiscount}},
		{"married gets no discount tip", domain.Applicant{Age: 30, Situation: domain.SituationMarried}, nil},
		{
			"all tips keep their order",
			domain.Applicant{Age: 60, Smoker: true, Situation: domain.SituationFamily},
			[]string{AdviceQuitSmoking, AdviceLifeSavings, AdviceFamilyDiscount},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Advice(tt.in))
		})
	}
}
