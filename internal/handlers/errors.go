package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hospital-management-server/internal/scheduling"
	"hospital-management-server/internal/utils"
)

// respondSchedulingError maps the scheduling core's typed errors onto HTTP
// responses. Anything it does not recognize is an infrastructure failure.
func respondSchedulingError(c *gin.Context, err error) {
	var scheduleConflict *scheduling.ScheduleConflictError
	var slotConflict *scheduling.SlotConflictError

	switch {
	case errors.As(err, &scheduleConflict):
		utils.Conflict(c, scheduleConflict.Error())
	case errors.As(err, &slotConflict):
		utils.Conflict(c, slotConflict.Error())
	case errors.Is(err, scheduling.ErrInvalidTimeRange),
		errors.Is(err, scheduling.ErrWindowRule):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, scheduling.ErrReferralRequired),
		errors.Is(err, scheduling.ErrPatientBlocked),
		errors.Is(err, scheduling.ErrCancelTooLate),
		errors.Is(err, scheduling.ErrTerminalStatus):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, scheduling.ErrNotFound):
		utils.NotFound(c, err.Error())
	default:
		utils.InternalServerError(c, "Unexpected error: "+err.Error())
	}
}
