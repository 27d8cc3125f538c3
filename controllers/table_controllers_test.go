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

func setupTableRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	ctrl := NewTableAPIController(repository.NewTableRepo(db))
	r.GET("/api/tables", ctrl.List)
	r.POST("/api/tables", ctrl.Create)
	r.GET("/api/tables/:table_id", ctrl.Get)
	r.PATCH("/api/tables/:table_id", ctrl.UpdateStatus)
	r.DELETE("/api/tables/:table_id", ctrl.Delete)
	return r
}

func TestTableCreateAndList(t *testing.T) {
	r := setupTableRouter(setupTestDB(t))

	w := doJSON(t, r, "POST", "/api/tables", map[string]interface{}{
		"number": "A1",
		"seats":  4,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "available", data["status"])

	w = doJSON(t, r, "POST", "/api/tables", map[string]interface{}{
		"number": "B1",
		"seats":  6,
		"status": "occupied",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "GET", "/api/tables", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "A1")
	assert.Contains(t, w.Body.String(), "B1")

	// Status filter narrows the list.
	w = doJSON(t, r, "GET", "/api/tables?status=occupied", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "A1")
	assert.Contains(t, w.Body.String(), "B1")
}

func TestTableSeatsBounds(t *testing.T) {
	r := setupTableRouter(setupTestDB(t))

	for _, seats := range []int{1, 11} {
		w := doJSON(t, r, "POST", "/api/tables", map[string]interface{}{
			"number": "C1",
			"seats":  seats,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestTableNumberUnique(t *testing.T) {
	r := setupTableRouter(setupTestDB(t))

	w := doJSON(t, r, "POST", "/api/tables", map[string]interface{}{"number": "A1", "seats": 4})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/api/tables", map[string]interface{}{"number": "A1", "seats": 2})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTableStatusUpdateAndDelete(t *testing.T) {
	r := setupTableRouter(setupTestDB(t))

	w := doJSON(t, r, "POST", "/api/tables", map[string]interface{}{"number": "A1", "seats": 4})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "PATCH", "/api/tables/1", map[string]interface{}{"status": "occupied"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "occupied", decodeData(t, w)["status"])

	w = doJSON(t, r, "DELETE", "/api/tables/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, "GET", "/api/tables/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "DELETE", "/api/tables/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
