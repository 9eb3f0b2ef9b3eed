package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/models"
)

type ScheduleHandler struct{}

func NewScheduleHandler() *ScheduleHandler { return &ScheduleHandler{} }

// GET /api/public/work-schedules?employee_id=
// Also mounted under /api/admin/work-schedules.
func (h *ScheduleHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.WorkSchedule{})
	if emp := c.QueryParam("employee_id"); emp != "" {
		tx = tx.Where("employee_id = ?", emp)
	}
	var rows []models.WorkSchedule
	if err := tx.Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type scheduleReq struct {
	EmployeeID uint             `json:"employee_id"`
	DayOfWeek  models.DayOfWeek `json:"day_of_week"`
	StartTime  string           `json:"start_time"`
	EndTime    string           `json:"end_time"`
}

func validDay(d models.DayOfWeek) bool {
	switch d {
	case models.Monday, models.Tuesday, models.Wednesday, models.Thursday,
		models.Friday, models.Saturday, models.Sunday:
		return true
	}
	return false
}

func validClock(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// POST /api/admin/work-schedules
func (h *ScheduleHandler) Create(c echo.Context) error {
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.EmployeeID == 0 || !validDay(req.DayOfWeek) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if !validClock(req.StartTime) || !validClock(req.EndTime) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_TIME"})
	}

	rec := models.WorkSchedule{
		EmployeeID: req.EmployeeID,
		DayOfWeek:  req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

// PUT /api/admin/work-schedules/:id
func (h *ScheduleHandler) Update(c echo.Context) error {
	var rec models.WorkSchedule
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if !validClock(req.StartTime) || !validClock(req.EndTime) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_TIME"})
	}
	if req.StartTime != "" {
		rec.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		rec.EndTime = req.EndTime
	}

	if err := database.DB.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /api/admin/work-schedules/:id
func (h *ScheduleHandler) Delete(c echo.Context) error {
	var rec models.WorkSchedule
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
