package grading

import "fmt"

const AnnualCredits = 60.0

type Status string

const (
	StatusPass Status = "pass"
	StatusDebt Status = "debt"
	StatusFail Status = "fail"
)

// TextKey is the translation key of the status label.
func (s Status) TextKey() string { return "status_" + string(s) }

// SemesterSummary is a semester as entered on the annual page: an average and
// the credits already earned.
type SemesterSummary struct {
	Average float64 `json:"average"`
	Credits float64 `json:"credits"`
}

func (s SemesterSummary) validate(name string) error {
	if !inRange(s.Average, MinGrade, MaxGrade) {
		return fmt.Errorf("%w: %s average %v", ErrInvalidAnnualInput, name, s.Average)
	}
	if !inRange(s.Credits, 0, SemesterCredits) {
		return fmt.Errorf("%w: %s credits %v", ErrInvalidAnnualInput, name, s.Credits)
	}
	return nil
}

// effectiveCredits applies the pass override: a semester averaging 10 or more
// is worth its full 30 credits.
func (s SemesterSummary) effectiveCredits() float64 {
	if s.Average >= PassGrade {
		return SemesterCredits
	}
	return s.Credits
}

type AnnualResult struct {
	Average float64 `json:"average"`
	Credits float64 `json:"credits"`
	Status  Status  `json:"status"`
}

// AggregateAnnual combines two semesters. A passing annual average grants all
// 60 credits; otherwise the combined credits decide between debt and fail
// against requiredCreditsForDebt.
func AggregateAnnual(s1, s2 SemesterSummary, requiredCreditsForDebt float64) (AnnualResult, error) {
	if err := s1.validate("s1"); err != nil {
		return AnnualResult{}, err
	}
	if err := s2.validate("s2"); err != nil {
		return AnnualResult{}, err
	}

	avg := (s1.Average + s2.Average) / 2
	total := s1.effectiveCredits() + s2.effectiveCredits()

	switch {
	case avg >= PassGrade:
		return AnnualResult{Average: avg, Credits: AnnualCredits, Status: StatusPass}, nil
	case total >= requiredCreditsForDebt:
		return AnnualResult{Average: avg, Credits: total, Status: StatusDebt}, nil
	default:
		return AnnualResult{Average: avg, Credits: total, Status: StatusFail}, nil
	}
}
