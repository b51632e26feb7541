package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"hospital-management-server/internal/scheduling"
)

func TestRespondSchedulingError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"schedule conflict", &scheduling.ScheduleConflictError{}, http.StatusConflict},
		{"slot conflict", &scheduling.SlotConflictError{StartTime: "09:00", EndTime: "09:30"}, http.StatusConflict},
		{"invalid time range", scheduling.ErrInvalidTimeRange, http.StatusBadRequest},
		{"window rule", scheduling.ErrWindowRule, http.StatusBadRequest},
		{"referral required", scheduling.ErrReferralRequired, http.StatusForbidden},
		{"patient blocked", scheduling.ErrPatientBlocked, http.StatusForbidden},
		{"cancel too late", scheduling.ErrCancelTooLate, http.StatusForbidden},
		{"terminal status", scheduling.ErrTerminalStatus, http.StatusForbidden},
		{"not found", scheduling.ErrNotFound, http.StatusNotFound},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			respondSchedulingError(c, tc.err)
			assert.Equal(t, tc.want, recorder.Code)
		})
	}
}
