package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/gradecalc/internal/grading"
	"github.com/yungbote/gradecalc/internal/i18n"
	"github.com/yungbote/gradecalc/internal/platform/logger"
	"github.com/yungbote/gradecalc/internal/state"
	"github.com/yungbote/gradecalc/internal/statement"
	"github.com/yungbote/gradecalc/internal/store"
)

type failingStore struct {
	store.Store
	saveErr  error
	clearErr error
}

func (f failingStore) Save(ctx context.Context, st state.State) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.Store.Save(ctx, st)
}

func (f failingStore) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.Store.Clear(ctx)
}

func moduleForm(name string) state.ModuleForm {
	return state.ModuleForm{
		Name:    name,
		Coeff:   "2",
		Credits: "5",
		Components: grading.Components{
			Exam: grading.Component{Enabled: true, Value: "16"},
			TD:   grading.Component{Enabled: true, Value: "10"},
		},
	}
}

func newCalculator(t *testing.T, st store.Store) CalculatorService {
	t.Helper()
	calc, err := NewCalculatorService(context.Background(), st, logger.Nop())
	require.NoError(t, err)
	return calc
}

func TestCalculatorApplyPersists(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	calc := newCalculator(t, mem)

	next, err := calc.Apply(ctx, state.AddModule{Form: moduleForm("Analysis")})
	require.NoError(t, err)
	require.Len(t, next.Modules, 1)
	require.Equal(t, 13.6, next.Modules[0].Grade)

	// a second service over the same store picks the module up
	again := newCalculator(t, mem)
	require.Len(t, again.State(ctx).Modules, 1)

	sem, err := again.Semester(ctx)
	require.NoError(t, err)
	require.Equal(t, 13.6, sem.Average)
	require.Equal(t, grading.SemesterCredits, sem.Credits)
}

func TestCalculatorRejectedActionKeepsState(t *testing.T) {
	ctx := context.Background()
	calc := newCalculator(t, store.NewMemoryStore())
	_, err := calc.Apply(ctx, state.AddModule{Form: moduleForm("Analysis")})
	require.NoError(t, err)

	cur, err := calc.Apply(ctx, state.SelectScheme{ID: "complex-25-25-50"})
	require.ErrorIs(t, err, state.ErrConfirmationRequired)
	require.Equal(t, grading.DefaultSchemeID, cur.SchemeID)
	require.Len(t, cur.Modules, 1)

	cur, err = calc.Apply(ctx, state.SelectScheme{ID: "complex-25-25-50", Confirmed: true})
	require.NoError(t, err)
	require.Equal(t, "complex-25-25-50", cur.SchemeID)
	require.Empty(t, cur.Modules)
}

func TestCalculatorSaveFailureDoesNotAdvance(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	calc := newCalculator(t, failingStore{Store: store.NewMemoryStore(), saveErr: boom})

	_, err := calc.Apply(ctx, state.AddModule{Form: moduleForm("Analysis")})
	require.ErrorIs(t, err, boom)
	require.Empty(t, calc.State(ctx).Modules)
}

func TestCalculatorStateIsACopy(t *testing.T) {
	ctx := context.Background()
	calc := newCalculator(t, store.NewMemoryStore())
	_, err := calc.Apply(ctx, state.AddModule{Form: moduleForm("Analysis")})
	require.NoError(t, err)

	snap := calc.State(ctx)
	snap.Modules[0].Name = "changed"
	require.Equal(t, "Analysis", calc.State(ctx).Modules[0].Name)
}

func TestCalculatorClearAllData(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	calc := newCalculator(t, mem)
	_, err := calc.Apply(ctx, state.AddModule{Form: moduleForm("Analysis")})
	require.NoError(t, err)
	_, err = calc.Apply(ctx, state.SetLanguage{Language: i18n.French})
	require.NoError(t, err)

	cur, err := calc.ClearAllData(ctx)
	require.NoError(t, err)
	require.Equal(t, state.Default(), cur)

	_, found, err := mem.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)
}

func TestCalculatorClearFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("unavailable")
	calc := newCalculator(t, failingStore{Store: store.NewMemoryStore(), clearErr: boom})
	_, err := calc.Apply(ctx, state.AddModule{Form: moduleForm("Analysis")})
	require.NoError(t, err)

	_, err = calc.ClearAllData(ctx)
	require.ErrorIs(t, err, boom)
	require.Len(t, calc.State(ctx).Modules, 1)
}

func TestCalculatorAnnual(t *testing.T) {
	ctx := context.Background()
	calc := newCalculator(t, store.NewMemoryStore())

	_, err := calc.Annual(ctx)
	require.ErrorIs(t, err, grading.ErrInvalidAnnualInput)

	for _, a := range []state.SetAnnualInput{
		{Field: state.FieldS1Avg, Value: "11"},
		{Field: state.FieldS2Avg, Value: "8"},
		{Field: state.FieldS2Credits, Value: "20"},
	} {
		_, err := calc.Apply(ctx, a)
		require.NoError(t, err)
	}
	res, err := calc.Annual(ctx)
	require.NoError(t, err)
	require.Equal(t, 9.5, res.Average)
	require.Equal(t, 50.0, res.Credits)
	require.Equal(t, grading.StatusDebt, res.Status)
}

type recordingSink struct {
	names []string
	err   error
}

func (r *recordingSink) Put(_ context.Context, name string, _ []byte) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.names = append(r.names, name)
	return "mem://" + name, nil
}

func TestStatementServiceGenerate(t *testing.T) {
	ctx := context.Background()
	cat, err := i18n.Default()
	require.NoError(t, err)
	renderer, err := statement.NewRenderer(cat, statement.Options{})
	require.NoError(t, err)

	calc := newCalculator(t, store.NewMemoryStore())
	ok := &recordingSink{}
	broken := &recordingSink{err: errors.New("bucket gone")}
	svc := NewStatementService(logger.Nop(), calc, renderer, broken, ok)

	_, _, err = svc.Generate(ctx)
	require.ErrorIs(t, err, statement.ErrNoStatementData)

	_, err = calc.Apply(ctx, state.AddModule{Form: moduleForm("Analysis")})
	require.NoError(t, err)

	name, png, err := svc.Generate(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	require.Regexp(t, `^Statement_\d{4}-\d{2}-\d{2}\.png$`, name)
	require.Equal(t, []string{name}, ok.names)
}

type stubSender struct {
	got []string
	err error
}

func (s *stubSender) Send(_ context.Context, msg string) error {
	s.got = append(s.got, msg)
	return s.err
}

func TestFeedbackServiceSubmit(t *testing.T) {
	sender := &stubSender{}
	svc := NewFeedbackService(logger.Nop(), sender)
	require.NoError(t, svc.Submit(context.Background(), "nice tool"))
	require.Equal(t, []string{"nice tool"}, sender.got)

	sender.err = errors.New("down")
	require.Error(t, svc.Submit(context.Background(), "again"))
}

func TestCalculatorBatchSavesOnce(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	mem := store.NewMemoryStore()
	calc := newCalculator(t, failingStore{Store: mem, saveErr: boom})

	_, err := calc.Apply(ctx, state.Batch{
		state.SetLanguage{Language: i18n.English},
		state.SetTheme{Theme: state.ThemeDark},
	})
	require.ErrorIs(t, err, boom)

	cur := calc.State(ctx)
	require.Equal(t, i18n.DefaultLanguage, cur.Language)
	require.Equal(t, state.ThemeAutomatic, cur.Theme)
	saved, _, err := mem.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, i18n.DefaultLanguage, saved.Language)
	require.Equal(t, state.ThemeAutomatic, saved.Theme)
}
