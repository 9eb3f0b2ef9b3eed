package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/models"
	"github.com/sahar-naoui/version2/services"
)

type AlertHandler struct {
	Alerts *services.AlertService
}

func NewAlertHandler(alerts *services.AlertService) *AlertHandler {
	return &AlertHandler{Alerts: alerts}
}

// GET /api/employee/alerts
func (h *AlertHandler) ListMine(c echo.Context) error {
	empID := employeeID(c)
	if empID == nil {
		return c.JSON(http.StatusOK, []models.Alert{})
	}
	var rows []models.Alert
	if err := database.DB.Where("employee_id = ?", *empID).
		Order("created_at DESC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/admin/alerts?skip=&limit=
func (h *AlertHandler) List(c echo.Context) error {
	offset, limit := listParams(c)
	var rows []models.Alert
	if err := database.DB.Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /api/admin/check-alerts
// Manual trigger for both presence monitors.
func (h *AlertHandler) Check(c echo.Context) error {
	if err := h.Alerts.CheckAndSendAbsenceAlerts(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
	if err := h.Alerts.CheckNightVehiclePresence(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "alert check completed"})
}
