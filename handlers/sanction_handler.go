package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/models"
)

type SanctionHandler struct{}

func NewSanctionHandler() *SanctionHandler { return &SanctionHandler{} }

type sanctionReq struct {
	VehicleID uint   `json:"vehicle_id"`
	Reason    string `json:"reason"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// POST /api/admin/sanctions
// A manual sanction also revokes the vehicle's authorization.
func (h *SanctionHandler) Create(c echo.Context) error {
	var req sanctionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.VehicleID == 0 || req.Reason == "" || !validDate(req.StartDate) ||
		!validDate(req.EndDate) || req.EndDate < req.StartDate {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var vehicle models.Vehicle
	if err := database.DB.First(&vehicle, req.VehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "VEHICLE_NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	rec := models.Sanction{
		VehicleID: req.VehicleID,
		Reason:    req.Reason,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	if err := database.DB.Model(&vehicle).Update("is_authorized", false).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

// GET /api/admin/sanctions?skip=&limit=
func (h *SanctionHandler) List(c echo.Context) error {
	offset, limit := listParams(c)
	var rows []models.Sanction
	if err := database.DB.Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}
