package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"
)

// CatalogHandler manages the specialty and room catalogs (admin-maintained,
// read by everyone involved in booking).
type CatalogHandler struct {
	DB *gorm.DB
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{DB: db}
}

// CreateSpecialtyRequest represents the request body for creating a specialty.
type CreateSpecialtyRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	DirectAccess bool   `json:"directAccess"`
}

// CreateSpecialty creates a specialty (admin).
func (h *CatalogHandler) CreateSpecialty(c *gin.Context) {
	var req CreateSpecialtyRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	specialty := models.Specialty{
		Name:         req.Name,
		Description:  req.Description,
		DirectAccess: req.DirectAccess,
	}
	if err := h.DB.Create(&specialty).Error; err != nil {
		utils.InternalServerError(c, "Failed to create specialty: "+err.Error())
		return
	}
	utils.Created(c, "Specialty created successfully", specialty)
}

// GetSpecialties lists all specialties.
func (h *CatalogHandler) GetSpecialties(c *gin.Context) {
	var specialties []models.Specialty
	if err := h.DB.Order("name asc").Find(&specialties).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch specialties: "+err.Error())
		return
	}
	utils.Success(c, "Specialties fetched successfully", specialties)
}

// UpdateSpecialtyRequest represents the request body for updating a specialty.
type UpdateSpecialtyRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DirectAccess *bool  `json:"directAccess"`
}

// UpdateSpecialty updates a specialty (admin). Flipping DirectAccess changes
// whether future bookings need a referral; existing appointments are
// untouched.
func (h *CatalogHandler) UpdateSpecialty(c *gin.Context) {
	var specialty models.Specialty
	if err := h.DB.First(&specialty, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Specialty not found")
		return
	}

	var req UpdateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Name != "" {
		specialty.Name = req.Name
	}
	if req.Description != "" {
		specialty.Description = req.Description
	}
	if req.DirectAccess != nil {
		specialty.DirectAccess = *req.DirectAccess
	}

	if err := h.DB.Save(&specialty).Error; err != nil {
		utils.InternalServerError(c, "Failed to update specialty: "+err.Error())
		return
	}
	utils.Success(c, "Specialty updated successfully", specialty)
}

// CreateRoomRequest represents the request body for creating a room.
type CreateRoomRequest struct {
	Code  string `json:"code" binding:"required"`
	Floor string `json:"floor"`
	Area  string `json:"area"`
}

// CreateRoom creates a consultation room (admin).
func (h *CatalogHandler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	room := models.Room{Code: req.Code, Floor: req.Floor, Area: req.Area}
	if err := h.DB.Create(&room).Error; err != nil {
		utils.InternalServerError(c, "Failed to create room: "+err.Error())
		return
	}
	utils.Created(c, "Room created successfully", room)
}

// GetRooms lists all rooms ordered by code, matching the room assignment
// policy's ordering.
func (h *CatalogHandler) GetRooms(c *gin.Context) {
	var rooms []models.Room
	if err := h.DB.Order("code asc").Find(&rooms).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch rooms: "+err.Error())
		return
	}
	utils.Success(c, "Rooms fetched successfully", rooms)
}
