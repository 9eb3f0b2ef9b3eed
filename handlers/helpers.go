package handlers

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// atoiOr converts s to int, returning def when it can't.
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// employeeID reads the employee link of the authenticated user, as attached
// by the JWT middleware. Returns nil for accounts not linked to an employee.
func employeeID(c echo.Context) *uint {
	id, _ := c.Get("employee_id").(*uint)
	return id
}

// saveUpload stores a multipart file under dir with a generated name and
// returns the stored path.
func saveUpload(file *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(file.Filename)
	path := filepath.Join(dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}

// listParams reads skip/limit query params with the API's defaults.
func listParams(c echo.Context) (offset, limit int) {
	offset = atoiOr(c.QueryParam("skip"), 0)
	limit = atoiOr(c.QueryParam("limit"), 100)
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	return offset, limit
}
