package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/recipespace/backend/internal/api"
	"github.com/recipespace/backend/internal/service"
	"github.com/recipespace/backend/internal/testhelpers"
)

// setupAPI wires the full handler stack over an in-memory database, the same
// shape the server package assembles in production.
func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)

	storage, err := service.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	authService := service.NewAuthService(db, "api-test-secret", nil, nil)
	router := gin.New()
	api.RegisterRoutes(
		router,
		authService,
		service.NewUserService(db),
		service.NewRecipeService(db),
		service.NewFavoriteService(db),
		service.NewUploadService(storage, nil),
	)
	return router, db
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// registerAndLogin creates an account through the API and returns its token
// and user id.
func registerAndLogin(t *testing.T, router *gin.Engine, username string) (string, uint) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": username,
		"email":    fmt.Sprintf("%s@x.com", username),
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, "register: %s", w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, "login: %s", w.Body.String())

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	userID, _ := body["user_id"].(float64)
	return token, uint(userID)
}

// createRecipe posts a minimal valid recipe and returns its id.
func createRecipe(t *testing.T, router *gin.Engine, token, title string) uint {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes", token, map[string]any{
		"title":        title,
		"description":  "test description",
		"tags":         []string{"dinner"},
		"ingredients":  []string{"salt"},
		"cooking_time": 30,
		"difficulty":   2,
		"steps":        "cook it",
	})
	require.Equal(t, http.StatusCreated, w.Code, "create recipe: %s", w.Body.String())

	body := decodeBody(t, w)
	id, _ := body["id"].(float64)
	require.NotZero(t, id)
	return uint(id)
}
