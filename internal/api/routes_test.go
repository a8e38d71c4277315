package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harshitSingh1/SentinelShe/internal/handler"
	"github.com/harshitSingh1/SentinelShe/internal/middleware"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func do(t *testing.T, h http.Handler, method, target, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func stubValidator(t *testing.T) {
	t.Helper()
	prev := middleware.TokenValidator
	middleware.TokenValidator = func(_ context.Context, token string) (*model.UserProfile, error) {
		if token != "good" {
			return nil, errors.New("unknown token")
		}
		return &model.UserProfile{ID: "u1", Name: "Alice", Role: model.RoleUser, SafetyScore: 100}, nil
	}
	t.Cleanup(func() { middleware.TokenValidator = prev })
}

func TestRootIndex(t *testing.T) {
	h := SetupRouter()
	w, env := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Name   string               `json:"name"`
		Routes []handler.RouteGroup `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "SentinelShe API", data.Name)
	require.Len(t, data.Routes, len(groups))

	names := []string{}
	for _, g := range data.Routes {
		names = append(names, g.Name)
	}
	assert.Contains(t, names, "reports")
	assert.Contains(t, names, "armory")
}

func TestFeaturedBeforeProductID(t *testing.T) {
	w, env := do(t, SetupRouter(), http.MethodGet, "/armory/products/featured", "")
	require.Equal(t, http.StatusOK, w.Code)

	var products []model.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	assert.Len(t, products, 8)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	stubValidator(t)
	h := SetupRouter()

	for _, target := range []struct{ method, path string }{
		{http.MethodPost, "/reports"},
		{http.MethodGet, "/reports/votes/me"},
		{http.MethodGet, "/users/me"},
		{http.MethodGet, "/dashboard/stats"},
	} {
		w, env := do(t, h, target.method, target.path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, target.path)
		assert.False(t, env.Success)

		w, _ = do(t, h, target.method, target.path, "bad")
		assert.Equal(t, http.StatusUnauthorized, w.Code, target.path)
	}
}

func TestAuthenticatedRequest(t *testing.T) {
	stubValidator(t)
	w, env := do(t, SetupRouter(), http.MethodGet, "/users/me", "good")
	require.Equal(t, http.StatusOK, w.Code)

	var user model.UserProfile
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "u1", user.ID)
}

func TestPublicRouteSharingProtectedPath(t *testing.T) {
	// GET /academy/quick-tips est public alors que d'autres méthodes du
	// même préfixe passent par le sous-routeur authentifié
	w, _ := do(t, SetupRouter(), http.MethodGet, "/academy/quick-tips", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := SetupRouter()

	w, env := do(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "route not found", env.Error)

	w, env = do(t, h, http.MethodDelete, "/reports", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "method not allowed", env.Error)
}

func TestMetricsEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	SetupRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
