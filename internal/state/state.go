// Package state holds the persisted calculator record and the reducer that
// moves it from one snapshot to the next.
package state

import (
	"strings"

	"github.com/yungbote/gradecalc/internal/grading"
	"github.com/yungbote/gradecalc/internal/i18n"
)

type Theme string

const (
	ThemeLight     Theme = "light"
	ThemeDark      Theme = "dark"
	ThemeAutomatic Theme = "automatic"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeAutomatic:
		return true
	}
	return false
}

const (
	DebtThresholdLow  = 30
	DebtThresholdHigh = 45

	DefaultDebtThreshold = DebtThresholdLow
)

// AnnualInputs are the raw annual-page fields, kept as typed.
type AnnualInputs struct {
	S1Avg     string `json:"s1_avg_text"`
	S1Credits string `json:"s1_credits_text"`
	S2Avg     string `json:"s2_avg_text"`
	S2Credits string `json:"s2_credits_text"`
}

func (a AnnualInputs) Filled() bool {
	return strings.TrimSpace(a.S1Avg) != "" ||
		strings.TrimSpace(a.S1Credits) != "" ||
		strings.TrimSpace(a.S2Avg) != "" ||
		strings.TrimSpace(a.S2Credits) != ""
}

type AnnualField string

const (
	FieldS1Avg     AnnualField = "s1_avg"
	FieldS1Credits AnnualField = "s1_credits"
	FieldS2Avg     AnnualField = "s2_avg"
	FieldS2Credits AnnualField = "s2_credits"
)

func (f AnnualField) Valid() bool {
	switch f {
	case FieldS1Avg, FieldS1Credits, FieldS2Avg, FieldS2Credits:
		return true
	}
	return false
}

// State is one complete snapshot of the calculator. Values are never mutated
// in place once handed out; Reduce always returns a fresh copy.
type State struct {
	Language      i18n.Language    `json:"language"`
	Theme         Theme            `json:"theme"`
	SchemeID      string           `json:"calculation_method_id"`
	CustomSchemes []grading.Scheme `json:"custom_calculation_methods"`
	DebtThreshold int              `json:"required_credits_for_debt"`
	SaveEnabled   bool             `json:"save_settings_enabled"`
	Modules       []grading.Module `json:"modules"`
	AnnualInputs
}

func Default() State {
	return State{
		Language:      i18n.DefaultLanguage,
		Theme:         ThemeAutomatic,
		SchemeID:      grading.DefaultSchemeID,
		CustomSchemes: []grading.Scheme{},
		DebtThreshold: DefaultDebtThreshold,
		SaveEnabled:   true,
		Modules:       []grading.Module{},
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.CustomSchemes = append([]grading.Scheme{}, s.CustomSchemes...)
	out.Modules = append([]grading.Module{}, s.Modules...)
	return out
}

// Normalize fills zero or unknown settings with defaults. It is applied to
// records coming back from storage, which may predate a field.
func (s State) Normalize() State {
	out := s.Clone()
	if !out.Language.Valid() {
		out.Language = i18n.DefaultLanguage
	}
	if !out.Theme.Valid() {
		out.Theme = ThemeAutomatic
	}
	if out.SchemeID == "" {
		out.SchemeID = grading.DefaultSchemeID
	}
	if out.DebtThreshold != DebtThresholdLow && out.DebtThreshold != DebtThresholdHigh {
		out.DebtThreshold = DefaultDebtThreshold
	}
	return out
}

// ActiveScheme resolves the selected scheme, falling back to the default when
// the id no longer exists.
func (s State) ActiveScheme() grading.Scheme {
	sc, _ := grading.ResolveOrDefault(s.SchemeID, s.CustomSchemes)
	return sc
}

// Schemes lists built-in schemes followed by the custom ones.
func (s State) Schemes() []grading.Scheme {
	return grading.All(s.CustomSchemes)
}

func (s State) Module(id string) (grading.Module, bool) {
	for _, m := range s.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return grading.Module{}, false
}

func (s State) Semester() (grading.SemesterResult, error) {
	return grading.AggregateSemester(s.Modules)
}

// Annual parses the annual inputs and aggregates them. Missing or malformed
// fields report grading.ErrInvalidAnnualInput.
func (s State) Annual() (grading.AnnualResult, error) {
	s1, err := parseSummary("s1", s.S1Avg, s.S1Credits)
	if err != nil {
		return grading.AnnualResult{}, err
	}
	s2, err := parseSummary("s2", s.S2Avg, s.S2Credits)
	if err != nil {
		return grading.AnnualResult{}, err
	}
	return grading.AggregateAnnual(s1, s2, float64(s.DebtThreshold))
}

func parseSummary(name, avgText, creditsText string) (grading.SemesterSummary, error) {
	avg, ok := grading.ParseAnnualAverage(avgText)
	if !ok {
		return grading.SemesterSummary{}, invalidAnnual(name, "average", avgText)
	}
	credits, ok := grading.ParseAnnualCredits(creditsText)
	if !ok {
		return grading.SemesterSummary{}, invalidAnnual(name, "credits", creditsText)
	}
	return grading.SemesterSummary{Average: avg, Credits: credits}, nil
}
