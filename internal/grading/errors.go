package grading

import "errors"

var (
	ErrSchemeNotFound      = errors.New("weighting scheme not found")
	ErrNoValidComponent    = errors.New("no valid grade component provided")
	ErrContinuousConflict  = errors.New("only one of td/tp may be enabled under a simple scheme")
	ErrEmptyModuleSet      = errors.New("no modules to aggregate")
	ErrInvalidModule       = errors.New("module values out of range")
	ErrInvalidAnnualInput  = errors.New("annual values out of range")
	ErrNoComponentSelected = errors.New("custom scheme needs td or tp enabled")
	ErrInvalidWeight       = errors.New("custom scheme weight is not a number")
	ErrWeightOverflow      = errors.New("custom scheme weights exceed 100%")
)

var messageKeys = []struct {
	err error
	key string
}{
	{ErrSchemeNotFound, "error_calc_method_not_found"},
	{ErrNoValidComponent, "error_grade_invalid"},
	{ErrContinuousConflict, "error_grade_invalid"},
	{ErrEmptyModuleSet, "error_no_modules"},
	{ErrInvalidModule, "error_grade_invalid"},
	{ErrInvalidAnnualInput, "error_invalid_annual_values"},
	{ErrNoComponentSelected, "error_custom_weights_no_selection"},
	{ErrInvalidWeight, "error_custom_weights_invalid"},
	{ErrWeightOverflow, "error_custom_weights_sum_over_100"},
}

// MessageKey returns the translation key the UI shows for err, or "" when err
// is not a grading validation failure.
func MessageKey(err error) string {
	for _, mk := range messageKeys {
		if errors.Is(err, mk.err) {
			return mk.key
		}
	}
	return ""
}
