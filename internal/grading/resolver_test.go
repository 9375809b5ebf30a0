package grading

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func on(v string) Component { return Component{Enabled: true, Value: v} }

func mustScheme(t *testing.T, id string) Scheme {
	t.Helper()
	s, err := Resolve(id, nil)
	require.NoError(t, err)
	return s
}

func TestResolveGradeSimple(t *testing.T) {
	s := mustScheme(t, "simple-0.6")

	cases := []struct {
		name string
		in   Components
		want float64
	}{
		{"exam and td", Components{Exam: on("16"), TD: on("10")}, 13.6},
		{"exam and tp", Components{Exam: on("16"), TP: on("10")}, 13.6},
		{"exam only", Components{Exam: on("14.5")}, 14.5},
		{"td only", Components{TD: on("11")}, 11},
		{"disabled td ignored", Components{Exam: on("12"), TD: Component{Value: "20"}}, 12},
		{"out of range exam ignored", Components{Exam: on("21"), TD: on("9")}, 9},
		{"unparseable exam ignored", Components{Exam: on("abc"), TP: on("8")}, 8},
		{"rounds to two decimals", Components{Exam: on("13.333"), TD: on("7.777")}, 11.11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveGrade(tc.in, s)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestResolveGradeComplex(t *testing.T) {
	s := mustScheme(t, "complex-25-25-50")

	cases := []struct {
		name string
		in   Components
		want float64
	}{
		{"all three", Components{Exam: on("12"), TD: on("14"), TP: on("10")}, 12},
		{"td only absorbs continuous weight", Components{TD: on("12")}, 12},
		{"tp only", Components{TP: on("15")}, 15},
		{"exam and td", Components{Exam: on("10"), TD: on("16")}, 13},
		{"exam only", Components{Exam: on("9")}, 9},
		{"td and tp without exam", Components{TD: on("8"), TP: on("12")}, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveGrade(tc.in, s)
			require.NoError(t, err)
			require.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestResolveGradeRedistributionUsesFullContinuousShare(t *testing.T) {
	s := mustScheme(t, "complex-15-15-70")
	// exam 10 * 0.7 + td 20 * 0.3, the missing tp weight goes to td.
	got, err := ResolveGrade(Components{Exam: on("10"), TD: on("20")}, s)
	require.NoError(t, err)
	require.Equal(t, 13.0, got)
}

func TestResolveGradeNoValidComponent(t *testing.T) {
	for _, id := range []string{"simple-0.5", "complex-25-25-50"} {
		s := mustScheme(t, id)
		_, err := ResolveGrade(Components{Exam: on(""), TD: on("-1"), TP: Component{Value: "12"}}, s)
		require.True(t, errors.Is(err, ErrNoValidComponent), "%s: %v", id, err)
	}
}

func TestResolveGradeRejectsBothContinuousUnderSimple(t *testing.T) {
	s := mustScheme(t, "simple-0.6")
	_, err := ResolveGrade(Components{Exam: on("12"), TD: on("10"), TP: on("11")}, s)
	require.True(t, errors.Is(err, ErrContinuousConflict))

	c := mustScheme(t, "complex-25-25-50")
	_, err = ResolveGrade(Components{Exam: on("12"), TD: on("10"), TP: on("11")}, c)
	require.NoError(t, err)
}

func TestResolveGradeIsDeterministic(t *testing.T) {
	s := mustScheme(t, "complex-15-15-70")
	in := Components{Exam: on("13.37"), TD: on("9.1"), TP: on("17.25")}
	a, err := ResolveGrade(in, s)
	require.NoError(t, err)
	b, err := ResolveGrade(in, s)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestToggleMutualExclusionUnderSimple(t *testing.T) {
	s := mustScheme(t, "simple-0.6")
	in := Components{Exam: on("12"), TP: on("9")}

	out := in.Toggle(SlotTD, s)
	require.True(t, out.TD.Enabled)
	require.False(t, out.TP.Enabled)
	require.Empty(t, out.TP.Value)
	// original untouched
	require.True(t, in.TP.Enabled)

	out = out.Toggle(SlotTD, s)
	require.False(t, out.TD.Enabled)
	require.Empty(t, out.TD.Value)
}

func TestToggleComplexKeepsBoth(t *testing.T) {
	s := mustScheme(t, "complex-25-25-50")
	in := DefaultComponents(s)
	require.True(t, in.TD.Enabled)
	require.True(t, in.TP.Enabled)

	out := in.Toggle(SlotTP, s).Toggle(SlotTP, s)
	require.True(t, out.TD.Enabled)
	require.True(t, out.TP.Enabled)
}

func TestDefaultComponentsSimple(t *testing.T) {
	in := DefaultComponents(DefaultScheme())
	require.True(t, in.Exam.Enabled)
	require.False(t, in.TD.Enabled)
	require.False(t, in.TP.Enabled)
}
