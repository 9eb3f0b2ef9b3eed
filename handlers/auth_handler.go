package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sahar-naoui/version2/config"
	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/models"
)

type AuthHandler struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  time.Duration(cfg.TokenTTLMin) * time.Minute,
	}
}

func (h *AuthHandler) signJWT(u *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":         u.ID,
		"role":        u.Role,
		"employee_id": u.EmployeeID,
		"exp":         time.Now().Add(h.TokenTTL).Unix(),
		"iat":         time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

type LoginReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type RegisterReq struct {
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	Password   string      `json:"password"`
	FullName   string      `json:"full_name"`
	Role       models.Role `json:"role"`
	EmployeeID *uint       `json:"employee_id"`
}

// POST /api/auth/login
// On an empty users table the first login bootstraps a default admin account.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var u models.User
	err := database.DB.Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var count int64
		if err := database.DB.Model(&models.User{}).Count(&count).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": err.Error()})
		}
		if count > 0 {
			return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
		}
		u, err = h.bootstrapAdmin()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": err.Error()})
		}
	} else if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	if !u.IsActive {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "ACCOUNT_DISABLED"})
	}

	token, err := h.signJWT(&u)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"access_token": token, "token_type": "bearer"})
}

func (h *AuthHandler) bootstrapAdmin() (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{
		Username: "admin",
		Email:    "admin@steg.tn",
		Password: string(hash),
		FullName: "Administrator",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		return models.User{}, err
	}
	return u, nil
}

// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if username == "" || email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}
	if role != models.RoleAdmin && role != models.RoleHR && role != models.RoleEmployee {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_ROLE"})
	}

	var dup models.User
	if err := database.DB.Where("username = ?", username).First(&dup).Error; err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "USERNAME_EXISTS"})
	}
	if err := database.DB.Where("email = ?", email).First(&dup).Error; err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "EMAIL_EXISTS"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
	}

	u := models.User{
		Username:   username,
		Email:      email,
		Password:   string(hash),
		FullName:   req.FullName,
		Role:       role,
		EmployeeID: req.EmployeeID,
		IsActive:   true,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, u)
}

// GET /api/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	uid, _ := c.Get("user_id").(uint)
	var u models.User
	if err := database.DB.First(&u, uid).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, u)
}

type ProfileUpdateReq struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	uid, _ := c.Get("user_id").(uint)
	var u models.User
	if err := database.DB.First(&u, uid).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}

	var req ProfileUpdateReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	if req.Email != "" {
		email := strings.TrimSpace(strings.ToLower(req.Email))
		var dup models.User
		if err := database.DB.Where("email = ? AND id <> ?", email, u.ID).First(&dup).Error; err == nil {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "EMAIL_EXISTS"})
		}
		u.Email = email
	}
	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
		}
		u.Password = string(hash)
	}

	if err := database.DB.Save(&u).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, u)
}
