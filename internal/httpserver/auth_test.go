package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_RegisterConflict(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]string{"username": "alice", "password": "Secret123"}
	rec := env.doJSON(http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuth_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/api/v1/auth/register", "",
		map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_LoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.login("alice")

	rec := env.doJSON(http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_RefreshRotation(t *testing.T) {
	env := newTestEnv(t)
	env.login("alice")

	rec := env.doJSON(http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"username": "alice", "password": "Secret123"})
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	rec = env.doJSON(http.MethodPost, "/api/v1/auth/refresh", "",
		map[string]string{"refresh_token": login.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshed struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// old token is revoked
	rec = env.doJSON(http.MethodPost, "/api/v1/auth/refresh", "",
		map[string]string{"refresh_token": login.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
