package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/models"
)

// UserHandler covers profile administration and HR account management.
type UserHandler struct{}

func NewUserHandler() *UserHandler { return &UserHandler{} }

// GET /api/admin/profiles?skip=&limit=
func (h *UserHandler) List(c echo.Context) error {
	offset, limit := listParams(c)
	var rows []models.User
	if err := database.DB.Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type userUpdateReq struct {
	Email      string      `json:"email"`
	FullName   string      `json:"full_name"`
	Password   string      `json:"password"`
	Role       models.Role `json:"role"`
	IsActive   *bool       `json:"is_active"`
	EmployeeID *uint       `json:"employee_id"`
}

// PUT /api/admin/profiles/:id
func (h *UserHandler) Update(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var req userUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	if req.Email != "" {
		u.Email = strings.TrimSpace(strings.ToLower(req.Email))
	}
	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
		}
		u.Password = string(hash)
	}
	if req.Role != "" {
		if req.Role != models.RoleAdmin && req.Role != models.RoleHR && req.Role != models.RoleEmployee {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ROLE"})
		}
		u.Role = req.Role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.EmployeeID != nil {
		u.EmployeeID = req.EmployeeID
	}

	if err := database.DB.Save(&u).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, u)
}

// GET /api/admin/hr?skip=&limit=
func (h *UserHandler) ListHR(c echo.Context) error {
	offset, limit := listParams(c)
	var rows []models.User
	if err := database.DB.Where("role = ?", models.RoleHR).
		Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type hrCreateReq struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	EmployeeID *uint  `json:"employee_id"`
}

// POST /api/admin/hr
func (h *UserHandler) CreateHR(c echo.Context) error {
	var req hrCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if username == "" || email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var dup models.User
	if err := database.DB.Where("username = ?", username).First(&dup).Error; err == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "USERNAME_EXISTS"})
	}
	if err := database.DB.Where("email = ?", email).First(&dup).Error; err == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "EMAIL_EXISTS"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
	}

	u := models.User{
		Username:   username,
		Email:      email,
		Password:   string(hash),
		FullName:   req.FullName,
		Role:       models.RoleHR,
		EmployeeID: req.EmployeeID,
		IsActive:   true,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, u)
}
