package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/router"
	"github.com/yeremiapane/restaurant-booking/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupIntegration(t *testing.T) (*gorm.DB, *gin.Engine) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Table{}, &models.Booking{}))
	require.NoError(t, repository.NewUserRepo(db).SeedAdmin(context.Background(), "admin1234"))
	return db, router.SetupRouter(db)
}

func loginForm(t *testing.T, r *gin.Engine, username, password string) string {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == utils.SessionCookieName && c.Value != "" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("login did not set a session cookie")
	return ""
}

// TestEndToEndBookingFlow walks the main flow:
// 1. Seeded admin logs in
// 2. Creates a booking through the web form
// 3. Sees it on /list and via /search
// 4. The open API reads, updates and deletes the same record
func TestEndToEndBookingFlow(t *testing.T) {
	_, r := setupIntegration(t)
	cookie := loginForm(t, r, "admin", "admin1234")

	// Create via web form.
	form := url.Values{
		"customer_name": {"Walk-in Amy"},
		"phone":         {"555-0101"},
		"date":          {"2024-06-01"},
		"time":          {"19:00"},
		"pax":           {"4"},
	}
	req := httptest.NewRequest("POST", "/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cookie", cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Booking created")

	// Visible on the staff list.
	req = httptest.NewRequest("GET", "/list", nil)
	req.Header.Set("Cookie", cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Walk-in Amy")

	// Found by search.
	req = httptest.NewRequest("GET", "/search?name=walk-in", nil)
	req.Header.Set("Cookie", cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Walk-in Amy")

	// The open API sees the same record.
	req = httptest.NewRequest("GET", "/api/bookings?date=2024-06-01", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Data []models.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Len(t, listResp.Data, 1)
	id := listResp.Data[0].ID
	assert.Equal(t, 4, listResp.Data[0].Pax)

	// Update through the API, then delete.
	body, _ := json.Marshal(map[string]interface{}{"status": "seated"})
	req = httptest.NewRequest("PUT", fmt.Sprintf("/api/bookings/%d", id), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/bookings/%d", id), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest("GET", fmt.Sprintf("/api/bookings/%d", id), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerJourney(t *testing.T) {
	_, r := setupIntegration(t)

	// Register a customer through the form.
	form := url.Values{
		"username": {"amy"},
		"password": {"hunter2"},
		"confirm":  {"hunter2"},
	}
	req := httptest.NewRequest("POST", "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/clist", w.Header().Get("Location"))

	cookie := ""
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.SessionCookieName && c.Value != "" {
			cookie = c.Name + "=" + c.Value
		}
	}
	require.NotEmpty(t, cookie)

	// The role gate bounces customers off the full list.
	req = httptest.NewRequest("GET", "/list", nil)
	req.Header.Set("Cookie", cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/clist", w.Header().Get("Location"))

	// The home page routes by role.
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Cookie", cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/clist", w.Header().Get("Location"))
}

func TestProtectedAPIRequiresSession(t *testing.T) {
	_, r := setupIntegration(t)

	// Admin-only surfaces reject anonymous callers with 401, not a redirect.
	for _, path := range []string{"/api/users", "/api/admin/stats", "/api/tables"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	// With the admin session they answer.
	cookie := loginForm(t, r, "admin", "admin1234")
	req := httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Cookie", cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
	// The hash never leaves the server.
	assert.NotContains(t, w.Body.String(), "password_hash")
}
