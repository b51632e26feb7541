package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/scheduling"
	"hospital-management-server/internal/utils"
)

// AvailabilityHandler manages a physician's availability windows.
type AvailabilityHandler struct {
	DB      *gorm.DB
	Service *scheduling.AvailabilityService
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{DB: db, Service: scheduling.NewAvailabilityService(db)}
}

// physicianForUser resolves the physician profile behind the authenticated
// user. Windows are always managed by their owner.
func (h *AvailabilityHandler) physicianForUser(c *gin.Context) (*models.Physician, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	var physician models.Physician
	if err := h.DB.First(&physician, "user_id = ?", userID).Error; err != nil {
		utils.Forbidden(c, "No physician profile is associated with this account")
		return nil, false
	}
	return &physician, true
}

// CreateWindowRequest represents the request body for creating an
// availability window. Exactly one of weekday and specialDate must be set.
type CreateWindowRequest struct {
	Weekday     *int   `json:"weekday" binding:"omitempty,min=0,max=6"`
	SpecialDate string `json:"specialDate"` // YYYY-MM-DD
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	Shift       string `json:"shift" binding:"required,oneof=morning afternoon night oncall"`
}

// CreateWindow handles creating an availability window for the
// authenticated physician.
func (h *AvailabilityHandler) CreateWindow(c *gin.Context) {
	physician, ok := h.physicianForUser(c)
	if !ok {
		return
	}

	var req CreateWindowRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var specialDate *time.Time
	if req.SpecialDate != "" {
		parsed, err := utils.ParseDate(req.SpecialDate)
		if err != nil {
			utils.BadRequest(c, "Invalid specialDate, want YYYY-MM-DD")
			return
		}
		specialDate = &parsed
	}

	window, err := h.Service.CreateWindow(scheduling.WindowInput{
		PhysicianID: physician.ID,
		Weekday:     req.Weekday,
		SpecialDate: specialDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Shift:       models.ShiftLabel(req.Shift),
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Created(c, "Availability window created", window)
}

// ListWindows returns all of the authenticated physician's windows.
func (h *AvailabilityHandler) ListWindows(c *gin.Context) {
	physician, ok := h.physicianForUser(c)
	if !ok {
		return
	}

	windows, err := h.Service.ListWindows(physician.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch windows: "+err.Error())
		return
	}
	utils.Success(c, "Availability windows fetched", windows)
}

// ListPhysicianWindows returns another physician's effective windows for a
// date. Admissions staff use it when booking on a patient's behalf.
func (h *AvailabilityHandler) ListPhysicianWindows(c *gin.Context) {
	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		utils.BadRequest(c, "Invalid or missing date, want YYYY-MM-DD")
		return
	}

	windows, err := h.Service.EffectiveWindows(c.Param("physicianId"), date)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Effective windows fetched", windows)
}

// DeactivateWindow soft-deletes one of the physician's windows. Repeating
// the call is a no-op.
func (h *AvailabilityHandler) DeactivateWindow(c *gin.Context) {
	physician, ok := h.physicianForUser(c)
	if !ok {
		return
	}

	if err := h.Service.DeactivateWindow(c.Param("id"), physician.ID); err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Availability window deactivated", nil)
}

// ReactivateWindow re-enables a window after re-checking the overlap
// invariant.
func (h *AvailabilityHandler) ReactivateWindow(c *gin.Context) {
	physician, ok := h.physicianForUser(c)
	if !ok {
		return
	}

	if err := h.Service.ReactivateWindow(c.Param("id"), physician.ID); err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Availability window reactivated", nil)
}
