package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/models"
)

type VehicleHandler struct{}

func NewVehicleHandler() *VehicleHandler { return &VehicleHandler{} }

// GET /api/admin/vehicles?skip=&limit=
func (h *VehicleHandler) List(c echo.Context) error {
	offset, limit := listParams(c)
	var rows []models.Vehicle
	if err := database.DB.Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type vehicleReq struct {
	PlateNumber  string            `json:"plate_number"`
	PlateClass   models.PlateClass `json:"plate_class"`
	CarType      string            `json:"car_type"`
	Color        string            `json:"color"`
	ParkingSpot  *int              `json:"parking_spot"`
	EmployeeID   *uint             `json:"employee_id"`
	IsAuthorized *bool             `json:"is_authorized"`
}

func validPlateClass(p models.PlateClass) bool {
	return p == models.PlateTN || p == models.PlateRS || p == models.PlateEtat
}

// POST /api/admin/vehicles
// Plate numbers come from the OCR system and must be unique.
func (h *VehicleHandler) Create(c echo.Context) error {
	var req vehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.PlateNumber == "" || !validPlateClass(req.PlateClass) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var dup models.Vehicle
	if err := database.DB.Where("plate_number = ?", req.PlateNumber).First(&dup).Error; err == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "PLATE_EXISTS"})
	}

	rec := models.Vehicle{
		PlateNumber:  req.PlateNumber,
		PlateClass:   req.PlateClass,
		CarType:      req.CarType,
		Color:        req.Color,
		ParkingSpot:  req.ParkingSpot,
		EmployeeID:   req.EmployeeID,
		IsAuthorized: true,
	}
	if req.IsAuthorized != nil {
		rec.IsAuthorized = *req.IsAuthorized
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

// GET /api/admin/vehicles/:id
func (h *VehicleHandler) Get(c echo.Context) error {
	var rec models.Vehicle
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

// PUT /api/admin/vehicles/:id
func (h *VehicleHandler) Update(c echo.Context) error {
	var rec models.Vehicle
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var req vehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.PlateNumber != "" {
		rec.PlateNumber = req.PlateNumber
	}
	if req.PlateClass != "" {
		if !validPlateClass(req.PlateClass) {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PLATE_CLASS"})
		}
		rec.PlateClass = req.PlateClass
	}
	if req.CarType != "" {
		rec.CarType = req.CarType
	}
	if req.Color != "" {
		rec.Color = req.Color
	}
	if req.ParkingSpot != nil {
		rec.ParkingSpot = req.ParkingSpot
	}
	if req.EmployeeID != nil {
		rec.EmployeeID = req.EmployeeID
	}
	if req.IsAuthorized != nil {
		rec.IsAuthorized = *req.IsAuthorized
	}

	if err := database.DB.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /api/admin/vehicles/:id
func (h *VehicleHandler) Delete(c echo.Context) error {
	var rec models.Vehicle
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	if err := database.DB.Delete(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
