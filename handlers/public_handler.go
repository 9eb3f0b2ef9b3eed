package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sahar-naoui/version2/config"
	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/models"
)

type PublicHandler struct {
	CompanyPhone string
}

func NewPublicHandler(cfg *config.Config) *PublicHandler {
	return &PublicHandler{CompanyPhone: cfg.CompanyPhone}
}

// GET /api/public/steg-phone
func (h *PublicHandler) Phone(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"phone_number": h.CompanyPhone})
}

// GET /api/employee/parking-spot
// Spot number of the first vehicle registered to the logged-in employee.
func (h *PublicHandler) MyParkingSpot(c echo.Context) error {
	empID := employeeID(c)
	if empID == nil {
		return c.JSON(http.StatusOK, nil)
	}
	var v models.Vehicle
	if err := database.DB.Where("employee_id = ?", *empID).First(&v).Error; err != nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, v.ParkingSpot)
}
