package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"employee-directory/internal/config"
	"employee-directory/internal/database"
	"employee-directory/internal/logging"
	"employee-directory/internal/repository"
	"employee-directory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "handler-test-secret"

var testImage = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0xff}

func testConfig(secret string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			AppName:     "employee-directory-test",
			Env:         "development",
			BodyLimitMB: 4,
			CORSOrigins: "*",
		},
		JWT: config.JWTConfig{
			Secret:        secret,
			ExpireMinutes: 60,
			BcryptCost:    bcrypt.MinCost,
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *fiber.App {
	t.Helper()
	db := database.OpenTestDB(t)
	log := logging.Discard()

	auth, err := service.NewAuthService(repository.NewUserRepository(db), cfg.JWT, log)
	require.NoError(t, err)
	employees := service.NewEmployeeService(repository.NewEmployeeRepository(db), nil, log)

	return NewApp(cfg, Services{Auth: auth, Employees: employees}, log)
}

// do runs req against app without fiber's default one second test timeout.
func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func jsonRequest(method, target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withToken(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// multipartRequest encodes fields in order, then the image when non-nil.
func multipartRequest(t *testing.T, method, target string, fields [][2]string, image []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		require.NoError(t, w.WriteField(f[0], f[1]))
	}
	if image != nil {
		part, err := w.CreateFormFile(imageField, "photo.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func employeeFields(name string) [][2]string {
	return [][2]string{
		{"name", name},
		{"email", strings.ToLower(name) + "@example.com"},
		{"mobile", "5550100"},
		{"designation", "Developer"},
		{"gender", "F"},
		{"course", "BSc"},
		{"createdDate", "2024-03-01"},
	}
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

// signup registers a user and returns the issued token.
func signup(t *testing.T, app *fiber.App, username, email string) string {
	t.Helper()
	resp := do(t, app, jsonRequest(http.MethodPost, "/api/auth/signup", SignupInput{
		Username: username,
		Email:    email,
		Password: "s3cret",
	}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	require.NotEmpty(t, body["token"])
	return body["token"]
}
