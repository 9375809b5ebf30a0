package grading

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeAnnualAverage(t *testing.T) {
	cases := map[string]string{
		"":       "",
		"abc":    "",
		"9":      "9",
		"12":     "12",
		"125":    "12.5",
		"1575":   "15.75",
		"15.75":  "15.75",
		"157599": "15.75",
		"2500":   "20.00",
		"25":     "20.00",
		"2000":   "20.00",
	}
	for in, want := range cases {
		require.Equal(t, want, SanitizeAnnualAverage(in), "in=%q", in)
	}
}

func TestSanitizeAnnualCredits(t *testing.T) {
	cases := map[string]string{
		"":                      "",
		"x":                     "",
		"05":                    "5",
		"30":                    "30",
		"45":                    "30",
		"2a4":                   "24",
		"999999999999999999999": "30",
	}
	for in, want := range cases {
		require.Equal(t, want, SanitizeAnnualCredits(in), "in=%q", in)
	}
}

func TestSanitizeFormFields(t *testing.T) {
	require.Equal(t, "20", SanitizeGradeInput("35"))
	require.Equal(t, "12.", SanitizeGradeInput("12."))
	require.Equal(t, "", SanitizeGradeInput(""))
	require.Equal(t, "10", SanitizeBoundedInput("12"))
	require.Equal(t, "4", SanitizeBoundedInput("4"))
	require.Equal(t, "99", SanitizePercentInput("9a9x7"))
	require.Equal(t, "5", SanitizePercentInput("5%"))
}

func TestParseAnnualFields(t *testing.T) {
	v, ok := ParseAnnualAverage("15.75")
	require.True(t, ok)
	require.Equal(t, 15.75, v)

	_, ok = ParseAnnualAverage("")
	require.False(t, ok)

	c, ok := ParseAnnualCredits("30")
	require.True(t, ok)
	require.Equal(t, 30.0, c)

	_, ok = ParseAnnualCredits("31")
	require.False(t, ok)
}
