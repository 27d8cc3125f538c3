package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-booking/repository"
)

func setupUserAPIRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	ctrl := NewUserAPIController(repository.NewUserRepo(db))
	r.GET("/api/users", ctrl.List)
	r.POST("/api/users", ctrl.Create)
	r.GET("/api/users/username/:username", ctrl.Get)
	r.PATCH("/api/users/username/:username", ctrl.Update)
	r.DELETE("/api/users/username/:username", ctrl.Delete)
	return r
}

func TestUserAPICreateAndGet(t *testing.T) {
	r := setupUserAPIRouter(setupTestDB(t))

	w := doJSON(t, r, "POST", "/api/users", map[string]interface{}{
		"username": "staffer",
		"password": "s3cret",
		"role":     "staff",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	// The hash stays server-side.
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, r, "GET", "/api/users/username/staffer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "staff", decodeData(t, w)["role"])

	// Duplicates conflict, bad roles are rejected.
	w = doJSON(t, r, "POST", "/api/users", map[string]interface{}{
		"username": "staffer", "password": "s3cret", "role": "staff",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, "POST", "/api/users", map[string]interface{}{
		"username": "chef", "password": "s3cret", "role": "chef",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserAPIUpdateRole(t *testing.T) {
	r := setupUserAPIRouter(setupTestDB(t))

	w := doJSON(t, r, "POST", "/api/users", map[string]interface{}{
		"username": "amy", "password": "hunter2", "role": "customer",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "PATCH", "/api/users/username/amy", map[string]interface{}{
		"role": "staff",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "staff", decodeData(t, w)["role"])

	w = doJSON(t, r, "PATCH", "/api/users/username/ghost", map[string]interface{}{
		"role": "staff",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserAPIDelete(t *testing.T) {
	r := setupUserAPIRouter(setupTestDB(t))

	w := doJSON(t, r, "POST", "/api/users", map[string]interface{}{
		"username": "amy", "password": "hunter2", "role": "customer",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "DELETE", "/api/users/username/amy", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, "DELETE", "/api/users/username/amy", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
