package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/models"
)

type EmployeeHandler struct{}

func NewEmployeeHandler() *EmployeeHandler { return &EmployeeHandler{} }

// GET /api/admin/employees?skip=&limit=
func (h *EmployeeHandler) List(c echo.Context) error {
	offset, limit := listParams(c)
	var rows []models.Employee
	if err := database.DB.Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type employeeReq struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	WorkType  models.WorkType `json:"work_type"`
	IsActive  *bool           `json:"is_active"`
}

func validWorkType(w models.WorkType) bool {
	return w == models.WorkDay || w == models.WorkNight || w == models.WorkBoth
}

// POST /api/admin/employees
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req employeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.FirstName == "" || req.LastName == "" || !validWorkType(req.WorkType) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	rec := models.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		WorkType:  req.WorkType,
		IsActive:  true,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

// GET /api/admin/employees/:id
func (h *EmployeeHandler) Get(c echo.Context) error {
	var rec models.Employee
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

// PUT /api/admin/employees/:id
func (h *EmployeeHandler) Update(c echo.Context) error {
	var rec models.Employee
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var req employeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.FirstName != "" {
		rec.FirstName = req.FirstName
	}
	if req.LastName != "" {
		rec.LastName = req.LastName
	}
	if req.Phone != "" {
		rec.Phone = req.Phone
	}
	if req.Email != "" {
		rec.Email = req.Email
	}
	if req.WorkType != "" {
		if !validWorkType(req.WorkType) {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_WORK_TYPE"})
		}
		rec.WorkType = req.WorkType
	}
	if req.IsActive != nil {
		rec.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /api/admin/employees/:id
func (h *EmployeeHandler) Delete(c echo.Context) error {
	var rec models.Employee
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
