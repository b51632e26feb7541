package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"
)

// TreatmentHandler handles multi-session treatment plans.
type TreatmentHandler struct {
	DB *gorm.DB
}

// NewTreatmentHandler creates a new TreatmentHandler.
func NewTreatmentHandler(db *gorm.DB) *TreatmentHandler {
	return &TreatmentHandler{DB: db}
}

// CreateTreatmentRequest represents the request body for prescribing a
// treatment plan.
type CreateTreatmentRequest struct {
	PatientID     string `json:"patientId" binding:"required,uuid"`
	Diagnosis     string `json:"diagnosis" binding:"required"`
	SessionCount  uint   `json:"sessionCount" binding:"required,min=1"`
	FrequencyDays uint   `json:"frequencyDays" binding:"required,min=1"`
	StartDate     string `json:"startDate" binding:"required"`
	Notes         string `json:"notes"`
}

// CreateTreatment prescribes a treatment plan and synthesizes its numbered
// sessions, spaced frequencyDays apart from the start date.
func (h *TreatmentHandler) CreateTreatment(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	var physician models.Physician
	if err := h.DB.First(&physician, "user_id = ?", userID).Error; err != nil {
		utils.Forbidden(c, "No physician profile is associated with this account")
		return
	}

	var req CreateTreatmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		utils.BadRequest(c, "Invalid startDate, want YYYY-MM-DD")
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}

	plan := models.TreatmentPlan{
		PatientID:     patient.ID,
		PhysicianID:   physician.ID,
		Diagnosis:     req.Diagnosis,
		SessionCount:  req.SessionCount,
		FrequencyDays: req.FrequencyDays,
		StartDate:     startDate,
		Status:        models.TreatmentActive,
		Notes:         req.Notes,
	}
	plan.EstimatedEndDate = plan.EstimateEndDate()

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}
		for i := uint(0); i < req.SessionCount; i++ {
			session := models.TreatmentSession{
				TreatmentPlanID: plan.ID,
				Number:          i + 1,
				ScheduledFor:    startDate.AddDate(0, 0, int(i*req.FrequencyDays)),
				Status:          models.SessionPending,
			}
			if err := tx.Create(&session).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create treatment plan: "+err.Error())
		return
	}

	if err := h.DB.Preload("Sessions").First(&plan, "id = ?", plan.ID).Error; err != nil {
		utils.InternalServerError(c, "Failed to reload treatment plan: "+err.Error())
		return
	}
	utils.Created(c, "Treatment plan created successfully", plan)
}

// GetTreatmentsForUser lists treatment plans: patients see their own,
// physicians the ones they prescribed.
func (h *TreatmentHandler) GetTreatmentsForUser(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Sessions").Order("created_at desc")

	var plans []models.TreatmentPlan
	var err error
	switch role {
	case models.RolePatient:
		var patient models.Patient
		if err := h.DB.First(&patient, "user_id = ?", userID).Error; err != nil {
			utils.Forbidden(c, "No patient profile is associated with this account")
			return
		}
		err = query.Where("patient_id = ?", patient.ID).Find(&plans).Error
	case models.RolePhysician:
		var physician models.Physician
		if err := h.DB.First(&physician, "user_id = ?", userID).Error; err != nil {
			utils.Forbidden(c, "No physician profile is associated with this account")
			return
		}
		err = query.Where("physician_id = ?", physician.ID).Find(&plans).Error
	case models.RoleAdmin:
		err = query.Find(&plans).Error
	default:
		utils.Forbidden(c, "Your role cannot list treatment plans")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch treatment plans: "+err.Error())
		return
	}
	utils.Success(c, "Treatment plans fetched successfully", plans)
}

// CompleteSessionRequest represents the request body for completing a session.
type CompleteSessionRequest struct {
	Observations string `json:"observations"`
	Evolution    string `json:"evolution"`
}

// CompleteSession marks a session as done and advances its plan; the plan
// finishes once every session is completed.
func (h *TreatmentHandler) CompleteSession(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	var physician models.Physician
	if err := h.DB.First(&physician, "user_id = ?", userID).Error; err != nil {
		utils.Forbidden(c, "No physician profile is associated with this account")
		return
	}

	var req CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var session models.TreatmentSession
	err := h.DB.Preload("TreatmentPlan").First(&session, "id = ?", c.Param("sessionId")).Error
	if err != nil {
		utils.NotFound(c, "Treatment session not found")
		return
	}
	if session.TreatmentPlan.PhysicianID != physician.ID {
		utils.Forbidden(c, "Only the prescribing physician can complete sessions")
		return
	}
	if session.Status != models.SessionPending {
		utils.BadRequest(c, "Session is not pending")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC().Truncate(24 * time.Hour)
		updates := map[string]interface{}{
			"status":       models.SessionCompleted,
			"completed_on": now,
			"observations": req.Observations,
			"evolution":    req.Evolution,
		}
		if err := tx.Model(&session).Updates(updates).Error; err != nil {
			return err
		}

		completed := session.TreatmentPlan.SessionsCompleted + 1
		planUpdates := map[string]interface{}{"sessions_completed": completed}
		if completed >= session.TreatmentPlan.SessionCount {
			planUpdates["status"] = models.TreatmentFinished
		}
		return tx.Model(&session.TreatmentPlan).Updates(planUpdates).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to complete session: "+err.Error())
		return
	}

	if err := h.DB.Preload("TreatmentPlan").First(&session, "id = ?", session.ID).Error; err != nil {
		utils.InternalServerError(c, "Failed to reload session: "+err.Error())
		return
	}
	utils.Success(c, "Session completed", session)
}
