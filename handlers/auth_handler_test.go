package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sahar-naoui/version2/config"
	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
}

func postJSON(t *testing.T, h echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestLoginBootstrapsAdminOnEmptyDatabase(t *testing.T) {
	setupTestDB(t)
	h := NewAuthHandler(&config.Config{JWTSecret: "test-secret", TokenTTLMin: 30})

	rec := postJSON(t, h.Login, "/api/auth/login", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "access_token")

	var u models.User
	require.NoError(t, database.DB.Where("username = ?", "admin").First(&u).Error)
	require.Equal(t, models.RoleAdmin, u.Role)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	setupTestDB(t)
	h := NewAuthHandler(&config.Config{JWTSecret: "test-secret", TokenTTLMin: 30})

	// first login creates the admin account
	rec := postJSON(t, h.Login, "/api/auth/login", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h.Login, "/api/auth/login", `{"username":"admin","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownUserOnNonEmptyDatabase(t *testing.T) {
	setupTestDB(t)
	h := NewAuthHandler(&config.Config{JWTSecret: "test-secret", TokenTTLMin: 30})

	postJSON(t, h.Login, "/api/auth/login", `{"username":"admin","password":"admin123"}`)
	rec := postJSON(t, h.Login, "/api/auth/login", `{"username":"ghost","password":"whatever"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	setupTestDB(t)
	h := NewAuthHandler(&config.Config{JWTSecret: "test-secret", TokenTTLMin: 30})

	body := `{"username":"sami","email":"sami@steg.tn","password":"pass123"}`
	rec := postJSON(t, h.Register, "/api/auth/register", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Register, "/api/auth/register",
		`{"username":"sami","email":"other@steg.tn","password":"pass123"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	setupTestDB(t)
	h := NewAuthHandler(&config.Config{JWTSecret: "test-secret", TokenTTLMin: 30})

	rec := postJSON(t, h.Register, "/api/auth/register",
		`{"username":"eve","email":"eve@steg.tn","password":"pass123","role":"superuser"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
