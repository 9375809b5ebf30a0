package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/gradecalc/internal/grading"
	"github.com/yungbote/gradecalc/internal/i18n"
)

func on(v string) grading.Component { return grading.Component{Enabled: true, Value: v} }

func form(name, coeff, credits string, c grading.Components) ModuleForm {
	return ModuleForm{Name: name, Coeff: coeff, Credits: credits, Components: c}
}

func mustReduce(t *testing.T, s State, a Action) State {
	t.Helper()
	next, err := Reduce(s, a)
	require.NoError(t, err, a.Name())
	return next
}

func withModule(t *testing.T) State {
	t.Helper()
	return mustReduce(t, Default(), AddModule{Form: form("Analysis", "2", "5", grading.Components{Exam: on("16"), TD: on("10")})})
}

func TestAddModuleDerivesGrade(t *testing.T) {
	s := withModule(t)
	require.Len(t, s.Modules, 1)
	m := s.Modules[0]
	require.NotEmpty(t, m.ID)
	require.Equal(t, "Analysis", m.Name)
	require.Equal(t, 2.0, m.Coeff)
	require.Equal(t, 5.0, m.Credits)
	require.Equal(t, 13.6, m.Grade)
}

func TestAddModuleValidation(t *testing.T) {
	grades := grading.Components{Exam: on("12")}
	cases := []struct {
		name string
		f    ModuleForm
		want error
	}{
		{"blank name", form("   ", "1", "1", grades), ErrModuleNameRequired},
		{"coeff not a number", form("A", "x", "1", grades), ErrCoeffInvalid},
		{"coeff zero", form("A", "0", "1", grades), ErrCoeffInvalid},
		{"coeff too big", form("A", "10.5", "1", grades), ErrCoeffInvalid},
		{"credits missing", form("A", "1", "", grades), ErrCreditsInvalid},
		{"no grade", form("A", "1", "1", grading.Components{Exam: on("")}), grading.ErrNoValidComponent},
		{"both continuous under simple", form("A", "1", "1", grading.Components{TD: on("1"), TP: on("2")}), grading.ErrContinuousConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Reduce(Default(), AddModule{Form: tc.f})
			require.True(t, errors.Is(err, tc.want), "err=%v", err)
		})
	}
}

func TestAddModuleLimit(t *testing.T) {
	s := Default()
	for i := 0; i < grading.MaxModules; i++ {
		s = mustReduce(t, s, AddModule{Form: form("M", "1", "1", grading.Components{Exam: on("10")})})
	}
	_, err := Reduce(s, AddModule{Form: form("M", "1", "1", grading.Components{Exam: on("10")})})
	require.True(t, errors.Is(err, ErrModuleLimit))
	require.Equal(t, "error_max_modules", MessageKey(err))
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := withModule(t)
	before := s.Clone()

	_ = mustReduce(t, s, DeleteModule{ID: s.Modules[0].ID})
	_ = mustReduce(t, s, EditModule{ID: s.Modules[0].ID, Form: form("B", "1", "1", grading.Components{Exam: on("3")})})
	_ = mustReduce(t, s, SetAnnualInput{Field: FieldS1Avg, Value: "12"})

	require.Equal(t, before, s)
}

func TestEditAndDeleteModule(t *testing.T) {
	s := withModule(t)
	id := s.Modules[0].ID

	s = mustReduce(t, s, EditModule{ID: id, Form: form("Algebra", "3", "6", grading.Components{Exam: on("9")})})
	require.Equal(t, id, s.Modules[0].ID)
	require.Equal(t, "Algebra", s.Modules[0].Name)
	require.Equal(t, 9.0, s.Modules[0].Grade)

	_, err := Reduce(s, EditModule{ID: "nope", Form: form("X", "1", "1", grading.Components{Exam: on("10")})})
	require.True(t, errors.Is(err, ErrModuleNotFound))

	s = mustReduce(t, s, DeleteModule{ID: id})
	require.Empty(t, s.Modules)

	_, err = Reduce(s, DeleteModule{ID: id})
	require.True(t, errors.Is(err, ErrModuleNotFound))
}

func TestSelectSchemeNeedsConfirmationWithModules(t *testing.T) {
	s := withModule(t)

	_, err := Reduce(s, SelectScheme{ID: "complex-25-25-50"})
	require.True(t, errors.Is(err, ErrConfirmationRequired))
	require.Equal(t, "confirm_change_calc_method", MessageKey(err))

	next := mustReduce(t, s, SelectScheme{ID: "complex-25-25-50", Confirmed: true})
	require.Equal(t, "complex-25-25-50", next.SchemeID)
	require.Empty(t, next.Modules)

	same := mustReduce(t, s, SelectScheme{ID: s.SchemeID})
	require.Len(t, same.Modules, 1)

	_, err = Reduce(s, SelectScheme{ID: "missing", Confirmed: true})
	require.True(t, errors.Is(err, grading.ErrSchemeNotFound))
}

func TestSelectSchemeWithoutModules(t *testing.T) {
	s := mustReduce(t, Default(), SelectScheme{ID: "simple-0.5"})
	require.Equal(t, "simple-0.5", s.SchemeID)
	require.Equal(t, 0.5, s.ActiveScheme().Simple.Exam)
}

func TestCustomSchemeLifecycle(t *testing.T) {
	in := grading.CustomSchemeInput{TDEnabled: true, TD: "20", TPEnabled: true, TP: "10"}

	s := mustReduce(t, Default(), AddCustomScheme{Input: in})
	require.Len(t, s.CustomSchemes, 1)
	id := s.CustomSchemes[0].ID
	require.Equal(t, id, s.SchemeID)
	require.Equal(t, "20%|10% / 70%", s.ActiveScheme().Label)

	s = mustReduce(t, s, AddModule{Form: form("A", "1", "1", grading.Components{Exam: on("10"), TD: on("20")})})
	_, err := Reduce(s, AddCustomScheme{Input: in})
	require.True(t, errors.Is(err, ErrConfirmationRequired))

	for len(s.CustomSchemes) < grading.MaxCustomSchemes {
		s = mustReduce(t, s, AddCustomScheme{Input: in, Confirmed: true})
	}
	_, err = Reduce(s, AddCustomScheme{Input: in, Confirmed: true})
	require.True(t, errors.Is(err, ErrCustomSchemeLimit))

	active := s.SchemeID
	s = mustReduce(t, s, DeleteCustomScheme{ID: id})
	require.Equal(t, active, s.SchemeID)

	s = mustReduce(t, s, DeleteCustomScheme{ID: active})
	require.Equal(t, grading.DefaultSchemeID, s.SchemeID)
	require.Len(t, s.CustomSchemes, grading.MaxCustomSchemes-2)

	_, err = Reduce(s, DeleteCustomScheme{ID: grading.DefaultSchemeID})
	require.True(t, errors.Is(err, grading.ErrSchemeNotFound))
}

func TestAddCustomSchemeRejectsBadWeights(t *testing.T) {
	_, err := Reduce(Default(), AddCustomScheme{Input: grading.CustomSchemeInput{TDEnabled: true, TD: "70", TPEnabled: true, TP: "40"}})
	require.True(t, errors.Is(err, grading.ErrWeightOverflow))
	require.Equal(t, "error_custom_weights_sum_over_100", MessageKey(err))
}

func TestSetDebtThreshold(t *testing.T) {
	s := mustReduce(t, Default(), SetDebtThreshold{Credits: 45})
	require.Equal(t, 45, s.DebtThreshold)

	_, err := Reduce(s, SetDebtThreshold{Credits: 40})
	require.True(t, errors.Is(err, ErrInvalidDebtThreshold))

	s = mustReduce(t, s, SetAnnualInput{Field: FieldS2Credits, Value: "12"})
	_, err = Reduce(s, SetDebtThreshold{Credits: 30})
	require.True(t, errors.Is(err, ErrConfirmationRequired))
	require.Equal(t, "confirm_change_credits_req", MessageKey(err))

	s = mustReduce(t, s, SetDebtThreshold{Credits: 30, Confirmed: true})
	require.Equal(t, 30, s.DebtThreshold)
	require.False(t, s.AnnualInputs.Filled())
}

func TestSetAnnualInputAutoFillsCredits(t *testing.T) {
	s := mustReduce(t, Default(), SetAnnualInput{Field: FieldS1Credits, Value: "12"})
	s = mustReduce(t, s, SetAnnualInput{Field: FieldS1Avg, Value: "1050"})
	require.Equal(t, "10.50", s.S1Avg)
	require.Equal(t, "30", s.S1Credits)

	s = mustReduce(t, s, SetAnnualInput{Field: FieldS2Credits, Value: "18"})
	s = mustReduce(t, s, SetAnnualInput{Field: FieldS2Avg, Value: "9"})
	require.Equal(t, "9", s.S2Avg)
	require.Equal(t, "18", s.S2Credits)

	res, err := s.Annual()
	require.NoError(t, err)
	require.InDelta(t, 9.75, res.Average, 1e-9)
	require.Equal(t, 48.0, res.Credits)
	require.Equal(t, grading.StatusDebt, res.Status)

	_, err = Reduce(s, SetAnnualInput{Field: "s3_avg", Value: "1"})
	require.True(t, errors.Is(err, ErrInvalidAnnualField))
}

func TestAnnualRequiresAllFields(t *testing.T) {
	s := mustReduce(t, Default(), SetAnnualInput{Field: FieldS1Avg, Value: "12"})
	_, err := s.Annual()
	require.True(t, errors.Is(err, grading.ErrInvalidAnnualInput))
	require.Equal(t, "error_invalid_annual_values", MessageKey(err))

	s = mustReduce(t, s, ClearAnnualInputs{})
	require.Equal(t, AnnualInputs{}, s.AnnualInputs)
}

func TestSettingsActions(t *testing.T) {
	s := mustReduce(t, Default(), SetLanguage{Language: i18n.French})
	s = mustReduce(t, s, SetTheme{Theme: ThemeDark})
	s = mustReduce(t, s, SetSaveEnabled{Enabled: false})
	require.Equal(t, i18n.French, s.Language)
	require.Equal(t, ThemeDark, s.Theme)
	require.False(t, s.SaveEnabled)

	_, err := Reduce(s, SetLanguage{Language: "de"})
	require.True(t, errors.Is(err, ErrInvalidLanguage))
	_, err = Reduce(s, SetTheme{Theme: "sepia"})
	require.True(t, errors.Is(err, ErrInvalidTheme))

	require.Equal(t, Default(), mustReduce(t, s, Reset{}))
}

func TestSemesterFromState(t *testing.T) {
	_, err := Default().Semester()
	require.True(t, errors.Is(err, grading.ErrEmptyModuleSet))

	res, err := withModule(t).Semester()
	require.NoError(t, err)
	require.InDelta(t, 13.6, res.Average, 1e-9)
	require.Equal(t, grading.SemesterCredits, res.Credits)
}

func TestNormalizeFillsDefaults(t *testing.T) {
	s := State{Language: "xx", DebtThreshold: 12}.Normalize()
	require.Equal(t, i18n.DefaultLanguage, s.Language)
	require.Equal(t, ThemeAutomatic, s.Theme)
	require.Equal(t, grading.DefaultSchemeID, s.SchemeID)
	require.Equal(t, DefaultDebtThreshold, s.DebtThreshold)
	require.Equal(t, grading.DefaultSchemeID, s.ActiveScheme().ID)
}

func TestBatchAppliesAllOrNothing(t *testing.T) {
	s := withModule(t)

	next := mustReduce(t, s, Batch{SetLanguage{Language: i18n.English}, SetTheme{Theme: ThemeDark}})
	require.Equal(t, i18n.English, next.Language)
	require.Equal(t, ThemeDark, next.Theme)

	got, err := Reduce(s, Batch{
		SetLanguage{Language: i18n.French},
		DeleteModule{ID: s.Modules[0].ID},
		SetTheme{Theme: "sepia"},
	})
	require.True(t, errors.Is(err, ErrInvalidTheme))
	require.Equal(t, s, got)
	require.Len(t, s.Modules, 1)
	require.Equal(t, i18n.DefaultLanguage, s.Language)

	require.Equal(t, "batch(set_language,set_theme)", Batch{SetLanguage{}, SetTheme{}}.Name())
}
