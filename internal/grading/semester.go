package grading

import (
	"fmt"
	"math"
)

const (
	MaxModules      = 15
	SemesterCredits = 30.0
	MaxModuleFactor = 10.0
)

// Module is a saved course module. Grade was derived once, at save time, from
// the scheme active then; it is never re-derived under another scheme.
type Module struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Coeff   float64 `json:"coeff"`
	Credits float64 `json:"credits"`
	Grade   float64 `json:"grade"`
}

// Passed reports whether the module's credits are earned.
func (m Module) Passed() bool { return m.Grade >= PassGrade }

func (m Module) validate() error {
	switch {
	case !inRange(m.Coeff, 0, MaxModuleFactor) || m.Coeff == 0:
		return fmt.Errorf("%w: module %q coeff %v", ErrInvalidModule, m.Name, m.Coeff)
	case !inRange(m.Credits, 0, MaxModuleFactor) || m.Credits == 0:
		return fmt.Errorf("%w: module %q credits %v", ErrInvalidModule, m.Name, m.Credits)
	case !inRange(m.Grade, MinGrade, MaxGrade):
		return fmt.Errorf("%w: module %q grade %v", ErrInvalidModule, m.Name, m.Grade)
	}
	return nil
}

type SemesterResult struct {
	Average       float64 `json:"average"`
	Credits       float64 `json:"credits"`
	EarnedCredits float64 `json:"earned_credits"`
	RemarkKey     string  `json:"remark_key"`
}

// AggregateSemester folds modules into the coefficient-weighted average. A
// passing average grants the full 30 credits; otherwise only passed modules
// count.
func AggregateSemester(modules []Module) (SemesterResult, error) {
	if len(modules) == 0 {
		return SemesterResult{}, ErrEmptyModuleSet
	}

	totalPoints, totalCoeff, earned := 0.0, 0.0, 0.0
	for _, m := range modules {
		if err := m.validate(); err != nil {
			return SemesterResult{}, err
		}
		totalPoints += m.Grade * m.Coeff
		totalCoeff += m.Coeff
		if m.Passed() {
			earned += m.Credits
		}
	}

	avg := 0.0
	if totalCoeff > 0 {
		avg = totalPoints / totalCoeff
	}
	credits := earned
	if avg >= PassGrade {
		credits = SemesterCredits
	}

	return SemesterResult{
		Average:       avg,
		Credits:       credits,
		EarnedCredits: earned,
		RemarkKey:     RemarkKey(avg),
	}, nil
}

var remarkThresholds = []struct {
	min float64
	key string
}{
	{18, "remark_excellent"},
	{16, "remark_very_good"},
	{14, "remark_good"},
	{12, "remark_fairly_good"},
	{10, "remark_pass"},
	{7, "remark_resit"},
}

// RemarkKey maps an average to its qualitative remark, first threshold wins.
func RemarkKey(avg float64) string {
	for _, t := range remarkThresholds {
		if avg >= t.min {
			return t.key
		}
	}
	return "remark_poor"
}

func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}
