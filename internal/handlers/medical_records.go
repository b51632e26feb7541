package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"
)

// MedicalRecordHandler handles clinical history entries.
type MedicalRecordHandler struct {
	DB *gorm.DB
}

// NewMedicalRecordHandler creates a new MedicalRecordHandler.
func NewMedicalRecordHandler(db *gorm.DB) *MedicalRecordHandler {
	return &MedicalRecordHandler{DB: db}
}

// CreateMedicalRecordRequest represents the request body for a new record.
type CreateMedicalRecordRequest struct {
	PatientID    string `json:"patientId" binding:"required,uuid"`
	RecordDate   string `json:"recordDate" binding:"required"`
	Diagnosis    string `json:"diagnosis" binding:"required"`
	Treatment    string `json:"treatment"`
	Observations string `json:"observations"`
}

// CreateMedicalRecord lets a physician write an entry into a patient's
// clinical history.
func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	var physician models.Physician
	if err := h.DB.First(&physician, "user_id = ?", userID).Error; err != nil {
		utils.Forbidden(c, "No physician profile is associated with this account")
		return
	}

	var req CreateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	recordDate, err := utils.ParseDate(req.RecordDate)
	if err != nil {
		utils.BadRequest(c, "Invalid recordDate, want YYYY-MM-DD")
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}

	record := models.MedicalRecord{
		PatientID:    patient.ID,
		PhysicianID:  physician.ID,
		RecordDate:   recordDate,
		Diagnosis:    req.Diagnosis,
		Treatment:    req.Treatment,
		Observations: req.Observations,
	}
	if err := h.DB.Create(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medical record: "+err.Error())
		return
	}
	utils.Created(c, "Medical record created successfully", record)
}

// GetMedicalRecords lists history entries: patients see their own, physicians
// and admins can inspect a patient via ?patientId=.
func (h *MedicalRecordHandler) GetMedicalRecords(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	var patientID string
	switch role {
	case models.RolePatient:
		var patient models.Patient
		if err := h.DB.First(&patient, "user_id = ?", userID).Error; err != nil {
			utils.Forbidden(c, "No patient profile is associated with this account")
			return
		}
		patientID = patient.ID
	case models.RolePhysician, models.RoleAdmin:
		patientID = c.Query("patientId")
		if patientID == "" {
			utils.BadRequest(c, "patientId query parameter is required")
			return
		}
	default:
		utils.Forbidden(c, "Your role cannot read medical records")
		return
	}

	var records []models.MedicalRecord
	err := h.DB.Where("patient_id = ?", patientID).
		Order("record_date desc").
		Find(&records).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch medical records: "+err.Error())
		return
	}
	utils.Success(c, "Medical records fetched successfully", records)
}
