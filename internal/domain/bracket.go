package domain

// AgeBracket is one of the four mutually exclusive age ranges shared by
// pricing and risk scoring.
type AgeBracket int

const (
	AgeYoung    AgeBracket = iota // age < 25
	AgeOptimal                    // 25 <= age < 40
	AgeMiddle                     // 40 <= age < 60
	AgeAdvanced                   // age >= 60
)

// AgeBracketOf classifies an age. Out-of-range values fall into the nearest
// bracket: negative ages are young, anything past 60 is advanced.
func AgeBracketOf(age int) AgeBracket {
	switch {
	case age < 25:
		return AgeYoung
	case age < 40:
		return AgeOptimal
	case age < 60:
		return AgeMiddle
	default:
		return AgeAdvanced
	}
}

// AgeTable holds one value per AgeBracket.
type AgeTable[T any] [4]T

// For returns the table entry for age.
func (t AgeTable[T]) For(age int) T {
	return t[AgeBracketOf(age)]
}
