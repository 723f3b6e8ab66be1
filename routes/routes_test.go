package routes

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"shopadmin/config"
	"shopadmin/db"
	"shopadmin/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:routes_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	db.DB = gdb
	t.Cleanup(func() {
		sqlDB, _ := gdb.DB()
		sqlDB.Close()
	})

	app := fiber.New()
	SetupRoutes(app, storage.New(t.TempDir()))
	return app
}

func staffToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  float64(1),
		"username": "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(config.Get().JWTSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return doRequest(t, app, req)
}

func postForm(t *testing.T, app *fiber.App, path, token string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return doRequest(t, app, req)
}

func postMultipart(t *testing.T, app *fiber.App, path, token string, fields url.Values, fileField string, fileNames ...string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, vals := range fields {
		for _, val := range vals {
			require.NoError(t, writer.WriteField(key, val))
		}
	}
	for _, name := range fileNames {
		part, err := writer.CreateFormFile(fileField, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return doRequest(t, app, req)
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestAdminRequiresAuth(t *testing.T) {
	app := setupApp(t)

	resp := getJSON(t, app, "/categories/", "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = postForm(t, app, "/products/create", "", url.Values{})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestReadAPIRequiresNoAuth(t *testing.T) {
	app := setupApp(t)

	resp := getJSON(t, app, "/api/categories/", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRejectsBadToken(t *testing.T) {
	app := setupApp(t)

	resp := getJSON(t, app, "/categories/", "not-a-token")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
