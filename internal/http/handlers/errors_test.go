package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/yungbote/gradecalc/internal/feedback"
	"github.com/yungbote/gradecalc/internal/grading"
	"github.com/yungbote/gradecalc/internal/platform/apierr"
	"github.com/yungbote/gradecalc/internal/state"
	"github.com/yungbote/gradecalc/internal/statement"
)

func TestToAPIError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{state.ErrSchemeChangeUnconfirmed, http.StatusConflict, "confirm_change_calc_method"},
		{state.ErrThresholdChangeUnconfirmed, http.StatusConflict, "confirm_change_credits_req"},
		{fmt.Errorf("%w: %q", state.ErrModuleNotFound, "x"), http.StatusNotFound, "error_module_not_found"},
		{fmt.Errorf("%w: custom", grading.ErrSchemeNotFound), http.StatusNotFound, "error_calc_method_not_found"},
		{grading.ErrNoValidComponent, http.StatusUnprocessableEntity, "error_grade_invalid"},
		{grading.ErrEmptyModuleSet, http.StatusUnprocessableEntity, "error_no_modules"},
		{state.ErrInvalidTheme, http.StatusBadRequest, "invalid_request"},
		{statement.ErrNoStatementData, http.StatusUnprocessableEntity, "no_data_for_statement"},
		{feedback.ErrEmptyFeedback, http.StatusUnprocessableEntity, "error_feedback_empty"},
		{apierr.BadGateway("feedback_sent_error", errors.New("x")), http.StatusBadGateway, "feedback_sent_error"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		got := toAPIError(tc.err)
		if got.Status != tc.status || got.Code != tc.code {
			t.Fatalf("%v: got %d %q want %d %q", tc.err, got.Status, got.Code, tc.status, tc.code)
		}
	}
}

func TestMessageArgs(t *testing.T) {
	if got := messageArgs("error_max_custom_methods"); len(got) != 1 || got[0] != grading.MaxCustomSchemes {
		t.Fatalf("args=%v", got)
	}
	if got := messageArgs("error_grade_invalid"); got != nil {
		t.Fatalf("args=%v", got)
	}
}
