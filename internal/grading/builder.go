package grading

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const customIDPrefix = "custom-"

// CustomSchemeInput is the custom weighting form: integer percentages for the
// continuous components, each behind a toggle. The exam share is whatever is
// left of 100.
type CustomSchemeInput struct {
	TDEnabled bool   `json:"td_enabled"`
	TD        string `json:"td"`
	TPEnabled bool   `json:"tp_enabled"`
	TP        string `json:"tp"`
}

func (in CustomSchemeInput) percents() (td, tp int, err error) {
	if in.TDEnabled {
		if td, err = parsePercent(in.TD); err != nil {
			return 0, 0, err
		}
	}
	if in.TPEnabled {
		if tp, err = parsePercent(in.TP); err != nil {
			return 0, 0, err
		}
	}
	return td, tp, nil
}

func parsePercent(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeight, raw)
	}
	if v < 0 || v > 99 {
		return 0, fmt.Errorf("%w: %d not in 0..99", ErrInvalidWeight, v)
	}
	return v, nil
}

// BuildCustomScheme validates the form and emits a new complex scheme with a
// fresh id. It does not check registry capacity.
func BuildCustomScheme(in CustomSchemeInput) (Scheme, error) {
	return buildCustomScheme(in, customIDPrefix+uuid.NewString())
}

func buildCustomScheme(in CustomSchemeInput, id string) (Scheme, error) {
	if !in.TDEnabled && !in.TPEnabled {
		return Scheme{}, ErrNoComponentSelected
	}
	td, tp, err := in.percents()
	if err != nil {
		return Scheme{}, err
	}
	exam := 100 - td - tp
	if exam < 0 {
		return Scheme{}, fmt.Errorf("%w: td=%d tp=%d", ErrWeightOverflow, td, tp)
	}

	parts := make([]string, 0, 2)
	if in.TDEnabled {
		parts = append(parts, fmt.Sprintf("%d%%", td))
	}
	if in.TPEnabled {
		parts = append(parts, fmt.Sprintf("%d%%", tp))
	}

	// exam is derived from the float continuous share so the three weights
	// always sum to exactly 1.
	tdW := float64(td) / 100
	tpW := float64(tp) / 100
	examW := 1 - (tdW + tpW)

	return Scheme{
		ID:     id,
		Kind:   KindComplex,
		Label:  fmt.Sprintf("%s / %d%%", strings.Join(parts, "|"), exam),
		Custom: true,
		Complex: ComplexWeights{
			TD:   tdW,
			TP:   tpW,
			Exam: examW,
		},
	}, nil
}

// ExamPercentPreview is the live exam share shown while the form is edited.
// Unparseable or disabled fields count as 0.
func ExamPercentPreview(in CustomSchemeInput) int {
	td, tp := 0, 0
	if in.TDEnabled {
		td, _ = strconv.Atoi(strings.TrimSpace(in.TD))
	}
	if in.TPEnabled {
		tp, _ = strconv.Atoi(strings.TrimSpace(in.TP))
	}
	return 100 - td - tp
}

// IsCustomID reports whether id was minted by BuildCustomScheme.
func IsCustomID(id string) bool {
	return strings.HasPrefix(id, customIDPrefix)
}
