package api_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserPublic(t *testing.T) {
	router, _ := setupAPI(t)
	_, userID := registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", userID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "password_hash")

	w = doJSON(t, router, http.MethodGet, "/api/v1/users/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/users/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUserStatuses(t *testing.T) {
	router, _ := setupAPI(t)
	aliceToken, aliceID := registerAndLogin(t, router, "alice")
	bobToken, _ := registerAndLogin(t, router, "bob")

	path := fmt.Sprintf("/api/v1/users/%d", aliceID)

	w := doJSON(t, router, http.MethodPatch, path, "", map[string]any{"bio": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPatch, path, bobToken, map[string]any{"bio": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPatch, path, aliceToken, map[string]any{"bio": "home cook"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "home cook", decodeBody(t, w)["bio"])

	// Renaming onto an existing username conflicts.
	w = doJSON(t, router, http.MethodPatch, path, aliceToken, map[string]any{"username": "bob"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteUserStatuses(t *testing.T) {
	router, _ := setupAPI(t)
	aliceToken, aliceID := registerAndLogin(t, router, "alice")
	bobToken, _ := registerAndLogin(t, router, "bob")

	path := fmt.Sprintf("/api/v1/users/%d", aliceID)

	w := doJSON(t, router, http.MethodDelete, path, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodDelete, path, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func doMultipart(t *testing.T, router *gin.Engine, path, token, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadAvatar(t *testing.T) {
	router, _ := setupAPI(t)
	token, userID := registerAndLogin(t, router, "alice")

	path := fmt.Sprintf("/api/v1/users/%d/avatar", userID)

	w := doMultipart(t, router, path, token, "me.png", []byte("fake image bytes"))
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	body := decodeBody(t, w)
	ref, _ := body["profile_picture"].(string)
	assert.NotEmpty(t, ref)

	w = doMultipart(t, router, path, token, "me.exe", []byte("nope"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRecipeImage(t *testing.T) {
	router, _ := setupAPI(t)
	token, _ := registerAndLogin(t, router, "alice")
	recipeID := createRecipe(t, router, token, "stew")

	w := doMultipart(t, router, fmt.Sprintf("/api/v1/recipes/%d/image", recipeID), token, "dish.jpg", []byte("fake jpeg"))
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	body := decodeBody(t, w)
	image, _ := body["image"].(string)
	assert.NotEmpty(t, image)
}
