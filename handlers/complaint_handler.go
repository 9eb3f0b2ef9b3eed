package handlers

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sahar-naoui/version2/config"
	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/models"
	"github.com/sahar-naoui/version2/services"
)

type ComplaintHandler struct {
	UploadDir string
	Alerts    *services.AlertService
}

func NewComplaintHandler(cfg *config.Config, alerts *services.AlertService) *ComplaintHandler {
	return &ComplaintHandler{UploadDir: cfg.UploadDir, Alerts: alerts}
}

// POST /api/employee/complaints (multipart: parking_spot, accused_vehicle_plate, photo)
// Creating a complaint feeds the escalation engine immediately.
func (h *ComplaintHandler) Create(c echo.Context) error {
	empID := employeeID(c)
	if empID == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "NO_EMPLOYEE_LINK"})
	}

	spot := atoiOr(c.FormValue("parking_spot"), 0)
	if spot <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PARKING_SPOT"})
	}

	plate := c.FormValue("accused_vehicle_plate")
	var accusedID *uint
	if plate != "" {
		var v models.Vehicle
		if err := database.DB.Where("plate_number = ?", plate).First(&v).Error; err == nil {
			accusedID = &v.ID
		}
	}

	photoPath := ""
	if file, err := c.FormFile("photo"); err == nil {
		photoPath, err = saveUpload(file, filepath.Join(h.UploadDir, "complaints"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "UPLOAD_FAILED"})
		}
	}

	rec := models.Complaint{
		ComplainantEmployeeID: *empID,
		AccusedVehicleID:      accusedID,
		AccusedVehiclePlate:   plate,
		ParkingSpot:           spot,
		PhotoPath:             photoPath,
		Status:                models.ComplaintOpen,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	// the complaint is already stored; a failed escalation run is retried
	// on the next status update
	if err := h.Alerts.ProcessComplaintAlert(&rec); err != nil {
		log.Printf("complaint %d escalation failed: %v", rec.ID, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// GET /api/admin/complaints?skip=&limit=
func (h *ComplaintHandler) List(c echo.Context) error {
	offset, limit := listParams(c)
	var rows []models.Complaint
	if err := database.DB.Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// PUT /api/admin/complaints/:id  { "status": ... }
// A status update re-runs the escalation engine for the complaint.
func (h *ComplaintHandler) Update(c echo.Context) error {
	var rec models.Complaint
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var req struct {
		Status models.ComplaintStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	if req.Status != "" {
		if req.Status != models.ComplaintOpen && req.Status != models.ComplaintWarningSent &&
			req.Status != models.ComplaintBanned {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_STATUS"})
		}
		rec.Status = req.Status
		if err := database.DB.Save(&rec).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}
		if err := h.Alerts.ProcessComplaintAlert(&rec); err != nil {
			log.Printf("complaint %d escalation failed: %v", rec.ID, err)
		}
	}
	return c.JSON(http.StatusOK, rec)
}
