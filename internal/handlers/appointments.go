package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/config"
	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/scheduling"
	"hospital-management-server/internal/utils"
)

// AppointmentHandler handles slot listing and appointment lifecycle requests.
type AppointmentHandler struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Slots  *scheduling.SlotGenerator
	Booker *scheduling.Booker
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, cfg *config.Config, booker *scheduling.Booker) *AppointmentHandler {
	return &AppointmentHandler{
		DB:     db,
		Cfg:    cfg,
		Slots:  scheduling.NewSlotGenerator(db),
		Booker: booker,
	}
}

// GetOpenSlots returns the bookable slots for a physician and date. The
// result is advisory: booking re-validates the chosen slot.
func (h *AppointmentHandler) GetOpenSlots(c *gin.Context) {
	physicianID := c.Query("physicianId")
	if physicianID == "" {
		utils.BadRequest(c, "physicianId is required")
		return
	}
	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		utils.BadRequest(c, "Invalid or missing date, want YYYY-MM-DD")
		return
	}

	granularity := h.Cfg.SlotMinutes
	if raw := c.Query("granularity"); raw != "" {
		granularity, err = strconv.Atoi(raw)
		if err != nil || granularity <= 0 {
			utils.BadRequest(c, "granularity must be a positive number of minutes")
			return
		}
	}

	slots, err := h.Slots.GenerateSlots(physicianID, date, granularity)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Open slots fetched", slots)
}

// BookAppointmentRequest represents the request body for booking.
type BookAppointmentRequest struct {
	PatientID   string  `json:"patientId"` // ignored for patient self-service
	PhysicianID string  `json:"physicianId" binding:"required,uuid"`
	RoomID      string  `json:"roomId"`
	Date        string  `json:"date" binding:"required"`
	StartTime   string  `json:"startTime" binding:"required"`
	EndTime     string  `json:"endTime" binding:"required"`
	Reason      string  `json:"reason" binding:"required"`
	ReferralID  *string `json:"referralId"`
}

// BookAppointment books a slot. Patients book for themselves (status
// requested); admissions staff book on a patient's behalf (status
// confirmed). The booking guard owns all conflict and referral checks.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.BadRequest(c, "Invalid date, want YYYY-MM-DD")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	var patientID string
	var source scheduling.BookingSource
	switch role {
	case models.RolePatient:
		var patient models.Patient
		if err := h.DB.First(&patient, "user_id = ?", userID).Error; err != nil {
			utils.Forbidden(c, "No patient profile is associated with this account")
			return
		}
		patientID = patient.ID
		source = scheduling.SourcePatient
	case models.RoleAdmissions, models.RoleAdmin:
		if req.PatientID == "" {
			utils.BadRequest(c, "patientId is required when booking on a patient's behalf")
			return
		}
		patientID = req.PatientID
		source = scheduling.SourceAdmissions
	default:
		utils.Forbidden(c, "Only patients and admissions staff can book appointments")
		return
	}

	appointment, err := h.Booker.Book(scheduling.BookingRequest{
		PatientID:   patientID,
		PhysicianID: req.PhysicianID,
		RoomID:      req.RoomID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Reason:      req.Reason,
		ReferralID:  req.ReferralID,
		BookedByID:  userID,
		Source:      source,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Created(c, "Appointment booked successfully", appointment)
}

// GetAppointmentsForUser handles fetching appointments for the logged-in
// user. Patients see their own, physicians see their schedule, staff see all.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Patient.User").Preload("Physician.User").Preload("Room").
		Order("date asc, start_time asc")
	if date := c.Query("date"); date != "" {
		parsed, err := utils.ParseDate(date)
		if err != nil {
			utils.BadRequest(c, "Invalid date filter, want YYYY-MM-DD")
			return
		}
		query = query.Where("date = ?", parsed)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	var err error
	switch role {
	case models.RolePatient:
		var patient models.Patient
		if err := h.DB.First(&patient, "user_id = ?", userID).Error; err != nil {
			utils.Forbidden(c, "No patient profile is associated with this account")
			return
		}
		err = query.Where("patient_id = ?", patient.ID).Find(&appointments).Error
	case models.RolePhysician:
		var physician models.Physician
		if err := h.DB.First(&physician, "user_id = ?", userID).Error; err != nil {
			utils.Forbidden(c, "No physician profile is associated with this account")
			return
		}
		err = query.Where("physician_id = ?", physician.ID).Find(&appointments).Error
	case models.RoleAdmin, models.RoleAdmissions:
		err = query.Find(&appointments).Error
	default:
		utils.Forbidden(c, "Your role cannot list appointments")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment. Accessible by
// the involved patient or physician, or staff.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}
	if !h.callerInvolved(c, appointment) {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}
	utils.Success(c, "Appointment fetched successfully", appointment)
}

// CancelAppointment cancels an appointment. Patients may cancel their own;
// staff may cancel any. The scheduling core enforces the before-the-date
// rule and the terminal-status rule.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	role, _ := middleware.GetUserRoleFromContext(c)
	if role == models.RolePatient && !h.callerIsPatient(c, appointment) {
		utils.Forbidden(c, "Patients can only cancel their own appointments")
		return
	}
	if role == models.RolePhysician && !h.callerIsPhysician(c, appointment) {
		utils.Forbidden(c, "Physicians can only cancel their own appointments")
		return
	}

	cancelled, err := h.Booker.Cancel(appointment.ID, time.Now())
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointment cancelled", cancelled)
}

// ConfirmAppointment promotes a requested appointment to confirmed
// (admissions staff).
func (h *AppointmentHandler) ConfirmAppointment(c *gin.Context) {
	confirmed, err := h.Booker.Confirm(c.Param("id"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointment confirmed", confirmed)
}

// AttendanceRequest represents the request body for recording attendance.
type AttendanceRequest struct {
	Attended      *bool  `json:"attended" binding:"required"`
	Justified     bool   `json:"justified"`
	AbsenceReason string `json:"absenceReason"`
}

// RecordAttendance marks whether the patient showed up; only the involved
// physician can record it.
func (h *AppointmentHandler) RecordAttendance(c *gin.Context) {
	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}
	if !h.callerIsPhysician(c, appointment) {
		utils.Forbidden(c, "Only the appointment's physician can record attendance")
		return
	}

	var req AttendanceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	updated, err := h.Booker.MarkAttendance(appointment.ID, scheduling.AttendanceInput{
		Attended:      *req.Attended,
		Justified:     req.Justified,
		AbsenceReason: req.AbsenceReason,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Attendance recorded", updated)
}

func (h *AppointmentHandler) loadAppointment(c *gin.Context) (*models.Appointment, bool) {
	var appointment models.Appointment
	err := h.DB.Preload("Patient.User").Preload("Physician.User").Preload("Room").
		First(&appointment, "id = ?", c.Param("id")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &appointment, true
}

func (h *AppointmentHandler) callerInvolved(c *gin.Context, appointment *models.Appointment) bool {
	role, _ := middleware.GetUserRoleFromContext(c)
	if role == models.RoleAdmin || role == models.RoleAdmissions {
		return true
	}
	return h.callerIsPatient(c, appointment) || h.callerIsPhysician(c, appointment)
}

func (h *AppointmentHandler) callerIsPatient(c *gin.Context, appointment *models.Appointment) bool {
	userID, _ := middleware.GetUserIDFromContext(c)
	return appointment.Patient.UserID == userID
}

func (h *AppointmentHandler) callerIsPhysician(c *gin.Context, appointment *models.Appointment) bool {
	userID, _ := middleware.GetUserIDFromContext(c)
	return appointment.Physician.UserID == userID
}
