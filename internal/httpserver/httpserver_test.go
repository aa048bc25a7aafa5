package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kmalyshev/shopcart/internal/hash"
	"github.com/kmalyshev/shopcart/internal/models"
	"github.com/kmalyshev/shopcart/internal/repo"
	"github.com/kmalyshev/shopcart/internal/service"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	Repo *repo.GormRepo
	Auth *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	))

	gormRepo := &repo.GormRepo{DB: db}
	jwtSecret := []byte("test-jwt-secret")

	authSvc := &service.AuthService{
		Repo:          gormRepo,
		JWTSecret:     jwtSecret,
		RefreshSecret: []byte("test-refresh-secret"),
	}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: authSvc},
		CartHandler:    &CartHTTP{Svc: &service.CartService{Repo: gormRepo}},
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{Repo: gormRepo}},
		JWTSecret:      jwtSecret,
	})

	return &testEnv{T: t, E: e, Repo: gormRepo, Auth: authSvc}
}

func (env *testEnv) doJSON(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// doRawJSON sends a preassembled body, for payloads Go types cannot
// express (e.g. fractional quantities).
func (env *testEnv) doRawJSON(method, path, token, body string) *httptest.ResponseRecorder {
	env.T.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) login(username string) string {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/api/v1/auth/register", "",
		map[string]string{"username": username, "password": "Secret123"})
	require.Equal(env.T, http.StatusCreated, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"username": username, "password": "Secret123"})
	require.Equal(env.T, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.AccessToken)
	return resp.AccessToken
}

func (env *testEnv) loginAdmin() string {
	env.T.Helper()

	pwHash, err := hash.HashPassword("Secret123")
	require.NoError(env.T, err)
	admin := models.User{Username: "admin", PasswordHash: pwHash, Role: "admin"}
	require.NoError(env.T, env.Repo.DB.Create(&admin).Error)

	rec := env.doJSON(http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"username": "admin", "password": "Secret123"})
	require.Equal(env.T, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.AccessToken
}

func (env *testEnv) seedProduct(name string, price float64) uuid.UUID {
	env.T.Helper()

	prod := models.Product{Name: name, Category: "test", Price: price}
	require.NoError(env.T, env.Repo.CreateProduct(context.Background(), &prod))
	return prod.ID
}
