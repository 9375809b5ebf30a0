package state

import (
	"errors"
	"fmt"

	"github.com/yungbote/gradecalc/internal/grading"
)

var (
	ErrModuleNameRequired   = errors.New("module name is required")
	ErrCoeffInvalid         = errors.New("module coefficient must be in (0, 10]")
	ErrCreditsInvalid       = errors.New("module credits must be in (0, 10]")
	ErrModuleLimit          = errors.New("module limit reached")
	ErrModuleNotFound       = errors.New("module not found")
	ErrCustomSchemeLimit    = errors.New("custom scheme limit reached")
	ErrInvalidDebtThreshold = errors.New("debt threshold must be 30 or 45")
	ErrInvalidLanguage      = errors.New("unsupported language")
	ErrInvalidTheme         = errors.New("unsupported theme")
	ErrInvalidAnnualField   = errors.New("unknown annual field")

	// ErrConfirmationRequired is returned when an action would discard data
	// and was not confirmed. Resubmit with Confirmed set to proceed.
	ErrConfirmationRequired = errors.New("confirmation required")

	ErrSchemeChangeUnconfirmed    = fmt.Errorf("changing the scheme clears saved modules: %w", ErrConfirmationRequired)
	ErrThresholdChangeUnconfirmed = fmt.Errorf("changing the debt threshold clears annual inputs: %w", ErrConfirmationRequired)
)

var messageKeys = []struct {
	err error
	key string
}{
	{ErrModuleNameRequired, "error_module_name_required"},
	{ErrCoeffInvalid, "error_coeff_invalid"},
	{ErrCreditsInvalid, "error_credits_invalid"},
	{ErrModuleLimit, "error_max_modules"},
	{ErrModuleNotFound, "error_module_not_found"},
	{ErrCustomSchemeLimit, "error_max_custom_methods"},
	{ErrInvalidDebtThreshold, "error_invalid_debt_threshold"},
	{ErrInvalidAnnualField, "error_invalid_annual_values"},
	{ErrSchemeChangeUnconfirmed, "confirm_change_calc_method"},
	{ErrThresholdChangeUnconfirmed, "confirm_change_credits_req"},
}

// MessageKey returns the translation key for err, covering both reducer and
// grading failures. Unknown errors yield "".
func MessageKey(err error) string {
	for _, mk := range messageKeys {
		if errors.Is(err, mk.err) {
			return mk.key
		}
	}
	return grading.MessageKey(err)
}

func invalidAnnual(semester, field, raw string) error {
	return fmt.Errorf("%w: %s %s %q", grading.ErrInvalidAnnualInput, semester, field, raw)
}
