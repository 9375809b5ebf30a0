package grading

import (
	"errors"
	"strconv"
	"strings"
)

// The sanitizers below clamp form strings while the user types. They keep
// intermediate states such as "12." intact and only rewrite values that are
// already out of range.

// SanitizeGradeInput caps a grade field at "20".
func SanitizeGradeInput(s string) string {
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && v > MaxGrade {
		return "20"
	}
	return s
}

// SanitizeBoundedInput caps a coefficient or credits field at "10".
func SanitizeBoundedInput(s string) string {
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && v > MaxModuleFactor {
		return "10"
	}
	return s
}

// SanitizePercentInput keeps at most two digits, so custom weights stay in
// 0..99.
func SanitizePercentInput(s string) string {
	d := digitsOnly(s)
	if len(d) > 2 {
		d = d[:2]
	}
	return d
}

// SanitizeAnnualAverage turns typed digits into a "dd.dd" average: "1575"
// becomes "15.75", anything above 20 becomes "20.00".
func SanitizeAnnualAverage(s string) string {
	d := digitsOnly(s)
	if d == "" {
		return ""
	}
	if len(d) > 4 {
		d = d[:4]
	}

	formatted := d
	if len(d) > 2 {
		formatted = d[:2] + "." + d[2:]
	}
	if v, err := strconv.ParseFloat(formatted, 64); err == nil && v > MaxGrade {
		return "20.00"
	}
	return formatted
}

// SanitizeAnnualCredits keeps an integer in 0..30, dropping leading zeros.
func SanitizeAnnualCredits(s string) string {
	d := digitsOnly(s)
	if d == "" {
		return ""
	}
	n, err := strconv.Atoi(d)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return "30"
		}
		return ""
	}
	if n > int(SemesterCredits) {
		return "30"
	}
	return strconv.Itoa(n)
}

// ParseAnnualAverage parses a sanitized average field; ok is false for empty
// or out-of-range text.
func ParseAnnualAverage(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !inRange(v, MinGrade, MaxGrade) {
		return 0, false
	}
	return v, true
}

// ParseAnnualCredits parses a sanitized credits field.
func ParseAnnualCredits(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !inRange(v, 0, SemesterCredits) {
		return 0, false
	}
	return v, true
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
