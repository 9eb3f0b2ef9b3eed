package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sahar-naoui/version2/config"
	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/models"
)

type AbsenceHandler struct {
	UploadDir string
}

func NewAbsenceHandler(cfg *config.Config) *AbsenceHandler {
	return &AbsenceHandler{UploadDir: cfg.UploadDir}
}

// GET /api/employee/absences
func (h *AbsenceHandler) ListMine(c echo.Context) error {
	empID := employeeID(c)
	if empID == nil {
		return c.JSON(http.StatusOK, []models.Absence{})
	}
	var rows []models.Absence
	if err := database.DB.Where("employee_id = ?", *empID).
		Order("created_at DESC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// POST /api/employee/absences (multipart: start_date, end_date, start_time,
// end_time, justification, document)
func (h *AbsenceHandler) Create(c echo.Context) error {
	empID := employeeID(c)
	if empID == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "NO_EMPLOYEE_LINK"})
	}

	startDate := c.FormValue("start_date")
	endDate := c.FormValue("end_date")
	if !validDate(startDate) || !validDate(endDate) || endDate < startDate {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE_RANGE"})
	}
	startTime := c.FormValue("start_time")
	endTime := c.FormValue("end_time")
	if !validClock(startTime) || !validClock(endTime) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_TIME"})
	}

	documentPath := ""
	if file, err := c.FormFile("document"); err == nil {
		documentPath, err = saveUpload(file, filepath.Join(h.UploadDir, "absences"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "UPLOAD_FAILED"})
		}
	}

	rec := models.Absence{
		EmployeeID:    *empID,
		StartDate:     startDate,
		EndDate:       endDate,
		StartTime:     startTime,
		EndTime:       endTime,
		Justification: c.FormValue("justification"),
		DocumentPath:  documentPath,
		Status:        models.AbsencePending,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

// GET /api/admin/absences?skip=&limit=&status=
func (h *AbsenceHandler) List(c echo.Context) error {
	offset, limit := listParams(c)
	tx := database.DB.Model(&models.Absence{})
	if status := c.QueryParam("status"); status != "" {
		tx = tx.Where("status = ?", status)
	}
	var rows []models.Absence
	if err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// PUT /api/admin/absences/:id/verify  { "status": "APPROVED" | "REJECTED" }
func (h *AbsenceHandler) Verify(c echo.Context) error {
	var rec models.Absence
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var req struct {
		Status models.AbsenceStatus `json:"status" form:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.Status != models.AbsenceApproved && req.Status != models.AbsenceRejected {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_STATUS"})
	}

	rec.Status = req.Status
	if err := database.DB.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}
