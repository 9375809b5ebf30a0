package state

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/gradecalc/internal/grading"
)

// ModuleForm is the module editor as submitted: free-text numbers plus the
// component toggles and grades.
type ModuleForm struct {
	Name       string             `json:"name"`
	Coeff      string             `json:"coeff"`
	Credits    string             `json:"credits"`
	Components grading.Components `json:"components"`
}

type moduleFields struct {
	Name    string  `validate:"required"`
	Coeff   float64 `validate:"gt=0,lte=10"`
	Credits float64 `validate:"gt=0,lte=10"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// toModule validates the form and derives the module grade under scheme.
func (f ModuleForm) toModule(id string, scheme grading.Scheme) (grading.Module, error) {
	fields := moduleFields{
		Name:    strings.TrimSpace(f.Name),
		Coeff:   parseNumber(f.Coeff),
		Credits: parseNumber(f.Credits),
	}
	if err := formValidator().Struct(fields); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].StructField() {
			case "Name":
				return grading.Module{}, ErrModuleNameRequired
			case "Coeff":
				return grading.Module{}, ErrCoeffInvalid
			case "Credits":
				return grading.Module{}, ErrCreditsInvalid
			}
		}
		return grading.Module{}, err
	}

	grade, err := grading.ResolveGrade(f.Components, scheme)
	if err != nil {
		return grading.Module{}, err
	}
	return grading.Module{
		ID:      id,
		Name:    fields.Name,
		Coeff:   fields.Coeff,
		Credits: fields.Credits,
		Grade:   grade,
	}, nil
}
