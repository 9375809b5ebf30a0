// Package statement renders the semester grade statement as a PNG and hands
// copies to optional sinks.
package statement

import (
	"errors"
	"time"

	"github.com/yungbote/gradecalc/internal/grading"
	"github.com/yungbote/gradecalc/internal/i18n"
	"github.com/yungbote/gradecalc/internal/state"
)

var ErrNoStatementData = errors.New("no semester data for statement")

// Statement is everything drawn on the image.
type Statement struct {
	Language i18n.Language          `json:"language"`
	Theme    state.Theme            `json:"theme"`
	Date     time.Time              `json:"date"`
	Modules  []grading.Module       `json:"modules"`
	Result   grading.SemesterResult `json:"result"`
}

// FromState builds the statement for the saved modules of st.
func FromState(st state.State, now time.Time) (Statement, error) {
	if len(st.Modules) == 0 {
		return Statement{}, ErrNoStatementData
	}
	res, err := st.Semester()
	if err != nil {
		return Statement{}, err
	}
	return Statement{
		Language: st.Language,
		Theme:    st.Theme,
		Date:     now,
		Modules:  append([]grading.Module{}, st.Modules...),
		Result:   res,
	}, nil
}

// FileName is the download name, Statement_YYYY-MM-DD.png, in UTC.
func (s Statement) FileName() string {
	return "Statement_" + s.Date.UTC().Format("2006-01-02") + ".png"
}
