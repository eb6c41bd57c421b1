package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"insurance-advisor/internal/domain"
)

const helpText = `Type a question, or one of:
  /quote <product> <age> [situation] [smoker] [coverage=N] [duration=N]
  /risk <age> [smoker] [medical] [activities] <profession...>
  /recommend <age> <situation> <budget>
  /products
  /suggest [n]
  /clear
  /help`

// quoteArgs parses "/quote" arguments.
func quoteArgs(args []string) (string, domain.Applicant, error) {
	if len(args) < 2 {
		return "", domain.Applicant{}, errors.New("usage: /quote <product> <age> [situation] [smoker] [coverage=N] [duration=N]")
	}
	age, err := parseAge(args[1])
	if err != nil {
		return "", domain.Applicant{}, err
	}
	a := domain.Applicant{Age: age, Situation: domain.SituationSingle}
	for _, arg := range args[2:] {
		switch {
		case strings.EqualFold(arg, "smoker"):
			a.Smoker = true
		case strings.HasPrefix(arg, "coverage="):
			if a.CoverageAmount, err = parsePositive(strings.TrimPrefix(arg, "coverage=")); err != nil {
				return "", domain.Applicant{}, fmt.Errorf("coverage: %w", err)
			}
		case strings.HasPrefix(arg, "duration="):
			if a.Duration, err = parsePositive(strings.TrimPrefix(arg, "duration=")); err != nil {
				return "", domain.Applicant{}, fmt.Errorf("duration: %w", err)
			}
		default:
			if a.Situation, err = domain.ParseSituation(arg); err != nil {
				return "", domain.Applicant{}, err
			}
		}
	}
	return args[0], a, nil
}

// riskArgs parses "/risk" arguments. Words that are not flags form the profession.
func riskArgs(args []string) (domain.Applicant, error) {
	if len(args) < 1 {
		return domain.Applicant{}, errors.New("usage: /risk <age> [smoker] [medical] [activities] <profession...>")
	}
	age, err := parseAge(args[0])
	if err != nil {
		return domain.Applicant{}, err
	}
	a := domain.Applicant{Age: age}
	var profession []string
	for _, arg := range args[1:] {
		switch strings.ToLower(arg) {
		case "smoker":
			a.Smoker = true
		case "medical":
			a.MedicalHistory = true
		case "activities":
			a.RiskActivities = true
		default:
			profession = append(profession, arg)
		}
	}
	a.Profession = strings.Join(profession, " ")
	return a, nil
}

// recommendArgs parses "/recommend" arguments.
func recommendArgs(args []string) (int, domain.Situation, float64, error) {
	if len(args) != 3 {
		return 0, "", 0, errors.New("usage: /recommend <age> <situation> <budget>")
	}
	age, err := parseAge(args[0])
	if err != nil {
		return 0, "", 0, err
	}
	sit, err := domain.ParseSituation(args[1])
	if err != nil {
		return 0, "", 0, err
	}
	budget, err := strconv.ParseFloat(args[2], 64)
	if err != nil || budget < 0 || !finite(budget) {
		return 0, "", 0, fmt.Errorf("invalid budget %q", args[2])
	}
	return age, sit, budget, nil
}

func parseAge(s string) (int, error) {
	age, err := strconv.Atoi(s)
	if err != nil || age < 0 {
		return 0, fmt.Errorf("invalid age %q", s)
	}
	return age, nil
}

func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 || !finite(v) {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	return v, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// suggestArgs parses "/suggest"; 0 means list, otherwise a 1-based pick.
func suggestArgs(args []string, available int) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || len(args) > 1 || n < 1 || n > available {
		return 0, fmt.Errorf("usage: /suggest [1-%d]", available)
	}
	return n, nil
}
