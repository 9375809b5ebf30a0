package state

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/gradecalc/internal/grading"
	"github.com/yungbote/gradecalc/internal/i18n"
)

// Action is one user intent. Implementations live in this package only.
type Action interface {
	Name() string
	apply(s State) (State, error)
}

// Reduce applies a to s and returns the resulting snapshot. s is never
// modified; on error the caller keeps s as the current state.
func Reduce(s State, a Action) (State, error) {
	next, err := a.apply(s.Clone())
	if err != nil {
		return s, err
	}
	return next, nil
}

// Batch applies its actions in order as one transition. If any of them
// fails, none of them takes effect.
type Batch []Action

func (b Batch) Name() string {
	names := make([]string, len(b))
	for i, a := range b {
		names[i] = a.Name()
	}
	return "batch(" + strings.Join(names, ",") + ")"
}

func (b Batch) apply(s State) (State, error) {
	var err error
	for _, a := range b {
		if s, err = a.apply(s); err != nil {
			return s, err
		}
	}
	return s, nil
}

var newModuleID = uuid.NewString

type AddModule struct {
	Form ModuleForm `json:"form"`
}

func (AddModule) Name() string { return "add_module" }

func (a AddModule) apply(s State) (State, error) {
	if len(s.Modules) >= grading.MaxModules {
		return s, fmt.Errorf("%w: %d", ErrModuleLimit, grading.MaxModules)
	}
	m, err := a.Form.toModule(newModuleID(), s.ActiveScheme())
	if err != nil {
		return s, err
	}
	s.Modules = append(s.Modules, m)
	return s, nil
}

// EditModule replaces a saved module. The grade is re-derived from the form
// under the scheme active now.
type EditModule struct {
	ID   string     `json:"id"`
	Form ModuleForm `json:"form"`
}

func (EditModule) Name() string { return "edit_module" }

func (a EditModule) apply(s State) (State, error) {
	idx := moduleIndex(s.Modules, a.ID)
	if idx < 0 {
		return s, fmt.Errorf("%w: %q", ErrModuleNotFound, a.ID)
	}
	m, err := a.Form.toModule(a.ID, s.ActiveScheme())
	if err != nil {
		return s, err
	}
	s.Modules[idx] = m
	return s, nil
}

type DeleteModule struct {
	ID string `json:"id"`
}

func (DeleteModule) Name() string { return "delete_module" }

func (a DeleteModule) apply(s State) (State, error) {
	idx := moduleIndex(s.Modules, a.ID)
	if idx < 0 {
		return s, fmt.Errorf("%w: %q", ErrModuleNotFound, a.ID)
	}
	s.Modules = append(s.Modules[:idx], s.Modules[idx+1:]...)
	return s, nil
}

type ClearModules struct{}

func (ClearModules) Name() string { return "clear_modules" }

func (ClearModules) apply(s State) (State, error) {
	s.Modules = []grading.Module{}
	return s, nil
}

// SelectScheme activates a scheme. Saved grades were derived under the old
// scheme, so switching while modules exist clears them and needs Confirmed.
type SelectScheme struct {
	ID        string `json:"id"`
	Confirmed bool   `json:"confirm"`
}

func (SelectScheme) Name() string { return "select_scheme" }

func (a SelectScheme) apply(s State) (State, error) {
	if _, err := grading.Resolve(a.ID, s.CustomSchemes); err != nil {
		return s, err
	}
	if a.ID == s.SchemeID {
		return s, nil
	}
	if len(s.Modules) > 0 {
		if !a.Confirmed {
			return s, ErrSchemeChangeUnconfirmed
		}
		s.Modules = []grading.Module{}
	}
	s.SchemeID = a.ID
	return s, nil
}

// AddCustomScheme builds a custom complex scheme, stores it and makes it
// active, with the same confirmation rule as SelectScheme.
type AddCustomScheme struct {
	Input     grading.CustomSchemeInput `json:"input"`
	Confirmed bool                      `json:"confirm"`
}

func (AddCustomScheme) Name() string { return "add_custom_scheme" }

func (a AddCustomScheme) apply(s State) (State, error) {
	if len(s.CustomSchemes) >= grading.MaxCustomSchemes {
		return s, fmt.Errorf("%w: %d", ErrCustomSchemeLimit, grading.MaxCustomSchemes)
	}
	sc, err := grading.BuildCustomScheme(a.Input)
	if err != nil {
		return s, err
	}
	if len(s.Modules) > 0 {
		if !a.Confirmed {
			return s, ErrSchemeChangeUnconfirmed
		}
		s.Modules = []grading.Module{}
	}
	s.CustomSchemes = append(s.CustomSchemes, sc)
	s.SchemeID = sc.ID
	return s, nil
}

// DeleteCustomScheme removes a custom scheme. Saved modules keep their grades;
// if the scheme was active the default becomes active.
type DeleteCustomScheme struct {
	ID string `json:"id"`
}

func (DeleteCustomScheme) Name() string { return "delete_custom_scheme" }

func (a DeleteCustomScheme) apply(s State) (State, error) {
	idx := -1
	for i, sc := range s.CustomSchemes {
		if sc.ID == a.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, fmt.Errorf("%w: custom %q", grading.ErrSchemeNotFound, a.ID)
	}
	s.CustomSchemes = append(s.CustomSchemes[:idx], s.CustomSchemes[idx+1:]...)
	if s.SchemeID == a.ID {
		s.SchemeID = grading.DefaultSchemeID
	}
	return s, nil
}

type SetDebtThreshold struct {
	Credits   int  `json:"credits"`
	Confirmed bool `json:"confirm"`
}

func (SetDebtThreshold) Name() string { return "set_debt_threshold" }

func (a SetDebtThreshold) apply(s State) (State, error) {
	if a.Credits != DebtThresholdLow && a.Credits != DebtThresholdHigh {
		return s, fmt.Errorf("%w: %d", ErrInvalidDebtThreshold, a.Credits)
	}
	if a.Credits == s.DebtThreshold {
		return s, nil
	}
	if s.AnnualInputs.Filled() {
		if !a.Confirmed {
			return s, ErrThresholdChangeUnconfirmed
		}
		s.AnnualInputs = AnnualInputs{}
	}
	s.DebtThreshold = a.Credits
	return s, nil
}

// SetAnnualInput stores one sanitized annual field. A semester average of 10
// or more fills that semester's credits with "30".
type SetAnnualInput struct {
	Field AnnualField `json:"field"`
	Value string      `json:"value"`
}

func (SetAnnualInput) Name() string { return "set_annual_input" }

func (a SetAnnualInput) apply(s State) (State, error) {
	switch a.Field {
	case FieldS1Avg:
		s.S1Avg = grading.SanitizeAnnualAverage(a.Value)
		s.S1Credits = autoCredits(s.S1Avg, s.S1Credits)
	case FieldS2Avg:
		s.S2Avg = grading.SanitizeAnnualAverage(a.Value)
		s.S2Credits = autoCredits(s.S2Avg, s.S2Credits)
	case FieldS1Credits:
		s.S1Credits = grading.SanitizeAnnualCredits(a.Value)
	case FieldS2Credits:
		s.S2Credits = grading.SanitizeAnnualCredits(a.Value)
	default:
		return s, fmt.Errorf("%w: %q", ErrInvalidAnnualField, a.Field)
	}
	return s, nil
}

func autoCredits(avgText, credits string) string {
	if avg, ok := grading.ParseAnnualAverage(avgText); ok && avg >= grading.PassGrade {
		return "30"
	}
	return credits
}

type ClearAnnualInputs struct{}

func (ClearAnnualInputs) Name() string { return "clear_annual_inputs" }

func (ClearAnnualInputs) apply(s State) (State, error) {
	s.AnnualInputs = AnnualInputs{}
	return s, nil
}

type SetLanguage struct {
	Language i18n.Language `json:"language"`
}

func (SetLanguage) Name() string { return "set_language" }

func (a SetLanguage) apply(s State) (State, error) {
	if !a.Language.Valid() {
		return s, fmt.Errorf("%w: %q", ErrInvalidLanguage, a.Language)
	}
	s.Language = a.Language
	return s, nil
}

type SetTheme struct {
	Theme Theme `json:"theme"`
}

func (SetTheme) Name() string { return "set_theme" }

func (a SetTheme) apply(s State) (State, error) {
	if !a.Theme.Valid() {
		return s, fmt.Errorf("%w: %q", ErrInvalidTheme, a.Theme)
	}
	s.Theme = a.Theme
	return s, nil
}

type SetSaveEnabled struct {
	Enabled bool `json:"enabled"`
}

func (SetSaveEnabled) Name() string { return "set_save_enabled" }

func (a SetSaveEnabled) apply(s State) (State, error) {
	s.SaveEnabled = a.Enabled
	return s, nil
}

// Reset discards everything, including the save preference.
type Reset struct{}

func (Reset) Name() string { return "reset" }

func (Reset) apply(State) (State, error) {
	return Default(), nil
}

func moduleIndex(modules []grading.Module, id string) int {
	for i, m := range modules {
		if m.ID == id {
			return i
		}
	}
	return -1
}
