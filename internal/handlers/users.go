package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"
)

// UserHandler handles user-related requests (typically admin operations).
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// CreateUserRequest represents the request body for creating a user by an admin.
type CreateUserRequest struct {
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	DocumentNumber string `json:"documentNumber" binding:"required,len=8,numeric"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           string `json:"role" binding:"required,oneof=admin physician patient admissions pharmacist"`

	// Role-specific profile fields
	LicenseCode string `json:"licenseCode"` // physicians
	SpecialtyID string `json:"specialtyId"` // physicians
}

// CreateUser handles creating a new user (admin). Physician and patient
// profiles are created alongside the account.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	role := models.Role(req.Role)
	if role == models.RolePhysician && (req.LicenseCode == "" || req.SpecialtyID == "") {
		utils.BadRequest(c, "Physician accounts require licenseCode and specialtyId")
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ? OR document_number = ?", req.Email, req.DocumentNumber).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "A user with this email or document number already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DocumentNumber: req.DocumentNumber,
		Email:          req.Email,
		Role:           role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		switch role {
		case models.RolePhysician:
			var specialty models.Specialty
			if err := tx.First(&specialty, "id = ?", req.SpecialtyID).Error; err != nil {
				return err
			}
			physician := models.Physician{
				UserID:      user.ID,
				LicenseCode: req.LicenseCode,
				SpecialtyID: specialty.ID,
			}
			return tx.Create(&physician).Error
		case models.RolePatient:
			patient := models.Patient{UserID: user.ID, BookingStanding: models.StandingActive}
			return tx.Create(&patient).Error
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	utils.Created(c, "User created successfully", user.Sanitize())
}

// GetUsers handles fetching all users (admin).
func (h *UserHandler) GetUsers(c *gin.Context) {
	query := h.DB
	if role := c.Query("role"); role != "" {
		if !models.Role(role).IsValid() {
			utils.BadRequest(c, "Unknown role filter: "+role)
			return
		}
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(users))
	for i, u := range users {
		sanitized[i] = u.Sanitize()
	}
	utils.Success(c, "Users fetched successfully", sanitized)
}

// GetUserByID handles fetching a single user by ID (admin).
func (h *UserHandler) GetUserByID(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// UpdateUserRequest represents the request body for updating a user by an admin.
type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
}

// UpdateUser handles updating a user by ID (admin).
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil { // partial update
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" && req.Email != user.Email {
		var existingUser models.User
		if err := h.DB.Where("email = ? AND id != ?", req.Email, user.ID).First(&existingUser).Error; err == nil {
			utils.BadRequest(c, "New email is already in use")
			return
		} else if err != gorm.ErrRecordNotFound {
			utils.InternalServerError(c, "Database error checking email: "+err.Error())
			return
		}
		user.Email = req.Email
	}
	if req.Role != "" {
		role := models.Role(req.Role)
		if !role.IsValid() {
			utils.BadRequest(c, "Unknown role: "+req.Role)
			return
		}
		user.Role = role
	}

	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user: "+err.Error())
		return
	}
	utils.Success(c, "User updated successfully", user.Sanitize())
}

// DeleteUser handles deleting a user by ID (admin).
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&models.User{}, "id = ?", userID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete user: "+err.Error())
		return
	}
	utils.Success(c, "User deleted successfully", nil)
}

// GetPhysicians returns the physician directory, optionally filtered by
// specialty. Patients use it to pick a physician when booking.
func (h *UserHandler) GetPhysicians(c *gin.Context) {
	query := h.DB.Preload("User").Preload("Specialty")
	if specialtyID := c.Query("specialtyId"); specialtyID != "" {
		query = query.Where("specialty_id = ?", specialtyID)
	}

	var physicians []models.Physician
	if err := query.Find(&physicians).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch physicians: "+err.Error())
		return
	}
	utils.Success(c, "Physicians fetched successfully", physicians)
}
