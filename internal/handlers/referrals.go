package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/notify"
	"hospital-management-server/internal/utils"
)

// ReferralHandler handles issuing and listing referrals.
type ReferralHandler struct {
	DB       *gorm.DB
	Notifier *notify.Recorder
}

// NewReferralHandler creates a new ReferralHandler.
func NewReferralHandler(db *gorm.DB, notifier *notify.Recorder) *ReferralHandler {
	return &ReferralHandler{DB: db, Notifier: notifier}
}

// CreateReferralRequest represents the request body for issuing a referral.
type CreateReferralRequest struct {
	PatientID    string `json:"patientId" binding:"required,uuid"`
	SpecialtyID  string `json:"specialtyId" binding:"required,uuid"`
	Motive       string `json:"motive" binding:"required"`
	ValidityDays uint   `json:"validityDays"`
}

// CreateReferral issues a referral from the authenticated physician to a
// destination specialty.
func (h *ReferralHandler) CreateReferral(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	var physician models.Physician
	if err := h.DB.Preload("User").First(&physician, "user_id = ?", userID).Error; err != nil {
		utils.Forbidden(c, "No physician profile is associated with this account")
		return
	}

	var req CreateReferralRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.Preload("User").First(&patient, "id = ?", req.PatientID).Error; err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}
	var specialty models.Specialty
	if err := h.DB.First(&specialty, "id = ?", req.SpecialtyID).Error; err != nil {
		utils.NotFound(c, "Specialty not found")
		return
	}

	validity := req.ValidityDays
	if validity == 0 {
		validity = 30
	}

	referral := models.Referral{
		PatientID:    patient.ID,
		PhysicianID:  physician.ID,
		SpecialtyID:  specialty.ID,
		IssuedOn:     time.Now().UTC().Truncate(24 * time.Hour),
		ValidityDays: validity,
		Status:       models.ReferralPending,
		Motive:       req.Motive,
	}
	if err := h.DB.Create(&referral).Error; err != nil {
		utils.InternalServerError(c, "Failed to create referral: "+err.Error())
		return
	}

	h.Notifier.Notify(patient.UserID,
		fmt.Sprintf("Dr. %s referred you to %s. The referral is valid until %s.",
			physician.User.FullName(), specialty.Name, referral.ExpiresOn().Format("02/01/2006")),
		models.NotifyInformation, true, "referral", referral.ID)

	utils.Created(c, "Referral created successfully", referral)
}

// GetReferralsForUser lists referrals: patients see their own, physicians
// the ones they issued, staff all of them.
func (h *ReferralHandler) GetReferralsForUser(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Specialty").Preload("Patient.User").Order("issued_on desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var referrals []models.Referral
	var err error
	switch role {
	case models.RolePatient:
		var patient models.Patient
		if err := h.DB.First(&patient, "user_id = ?", userID).Error; err != nil {
			utils.Forbidden(c, "No patient profile is associated with this account")
			return
		}
		err = query.Where("patient_id = ?", patient.ID).Find(&referrals).Error
	case models.RolePhysician:
		var physician models.Physician
		if err := h.DB.First(&physician, "user_id = ?", userID).Error; err != nil {
			utils.Forbidden(c, "No physician profile is associated with this account")
			return
		}
		err = query.Where("physician_id = ?", physician.ID).Find(&referrals).Error
	case models.RoleAdmin, models.RoleAdmissions:
		err = query.Find(&referrals).Error
	default:
		utils.Forbidden(c, "Your role cannot list referrals")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch referrals: "+err.Error())
		return
	}
	utils.Success(c, "Referrals fetched successfully", referrals)
}
