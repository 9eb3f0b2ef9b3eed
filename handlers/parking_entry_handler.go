package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/models"
	"github.com/sahar-naoui/version2/services"
)

type ParkingEntryHandler struct {
	Alerts *services.AlertService
}

func NewParkingEntryHandler(alerts *services.AlertService) *ParkingEntryHandler {
	return &ParkingEntryHandler{Alerts: alerts}
}

type parkingEntryReq struct {
	PlateNumber    string            `json:"plate_number"`
	EntryTime      time.Time         `json:"entry_time"`
	CameraLocation string            `json:"camera_location"`
	DetectedClass  models.PlateClass `json:"detected_class"`
	Confidence     float64           `json:"confidence"`
}

// POST /api/parking/entries
// Called by the OCR system at the gate. Deauthorized vehicles are rejected
// and get an UNAUTHORIZED alert; accepted entries run both presence monitors.
func (h *ParkingEntryHandler) Create(c echo.Context) error {
	var req parkingEntryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.PlateNumber == "" || req.EntryTime.IsZero() {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var vehicle models.Vehicle
	err := database.DB.Where("plate_number = ?", req.PlateNumber).First(&vehicle).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	if err == nil && !vehicle.IsAuthorized {
		if vehicle.EmployeeID != nil {
			vehID := vehicle.ID
			alert := models.Alert{
				EmployeeID: vehicle.EmployeeID,
				VehicleID:  &vehID,
				AlertType:  models.AlertUnauthorized,
				Message:    "Entry attempt with unauthorized vehicle: " + req.PlateNumber,
			}
			if err := database.DB.Create(&alert).Error; err != nil {
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
		}
		return c.JSON(http.StatusForbidden, map[string]any{"error": "VEHICLE_NOT_AUTHORIZED"})
	}

	rec := models.ParkingEntry{
		PlateNumber:    req.PlateNumber,
		EntryTime:      req.EntryTime,
		CameraLocation: req.CameraLocation,
		DetectedClass:  req.DetectedClass,
		Confidence:     req.Confidence,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	// each detection event doubles as an evaluation tick; the entry is
	// already stored, so a failed tick only delays alerts to the next one
	if err := h.Alerts.CheckAndSendAbsenceAlerts(); err != nil {
		log.Printf("absence alert check failed: %v", err)
	}
	if err := h.Alerts.CheckNightVehiclePresence(); err != nil {
		log.Printf("night presence check failed: %v", err)
	}

	return c.JSON(http.StatusCreated, rec)
}

// GET /api/admin/parking-entries?skip=&limit=&plate=
func (h *ParkingEntryHandler) List(c echo.Context) error {
	offset, limit := listParams(c)
	tx := database.DB.Model(&models.ParkingEntry{})
	if plate := c.QueryParam("plate"); plate != "" {
		tx = tx.Where("plate_number = ?", plate)
	}
	var rows []models.ParkingEntry
	if err := tx.Order("entry_time DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}
