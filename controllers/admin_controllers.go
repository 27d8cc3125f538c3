package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/events"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB       *gorm.DB
	Bookings *repository.BookingRepo
}

func NewAdminController(db *gorm.DB, bookings *repository.BookingRepo) *AdminController {
	return &AdminController{DB: db, Bookings: bookings}
}

// GetDashboardStats aggregates booking and table counts for the dashboard
// and pushes the same payload to the websocket feed.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalBookings int64 `json:"total_bookings"`
		TodayBookings int64 `json:"today_bookings"`
		TodayPax      int64 `json:"today_pax"`
		BookingStats  struct {
			Confirmed int64 `json:"confirmed"`
			Seated    int64 `json:"seated"`
			Completed int64 `json:"completed"`
			Cancelled int64 `json:"cancelled"`
		} `json:"booking_stats"`
		TableStats struct {
			Available int64 `json:"available"`
			Occupied  int64 `json:"occupied"`
			Total     int64 `json:"total"`
		} `json:"table_stats"`
	}

	ac.DB.Model(&models.Booking{}).Count(&stats.TotalBookings)
	ac.DB.Model(&models.Booking{}).Where("date = ?", today).Count(&stats.TodayBookings)

	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingConfirmed).Count(&stats.BookingStats.Confirmed)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingSeated).Count(&stats.BookingStats.Seated)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingCompleted).Count(&stats.BookingStats.Completed)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingCancelled).Count(&stats.BookingStats.Cancelled)

	ac.DB.Model(&models.Booking{}).Where("date = ? AND status != ?", today, models.BookingCancelled).
		Select("COALESCE(SUM(pax), 0)").Row().Scan(&stats.TodayPax)

	ac.DB.Model(&models.Table{}).Where("status = ?", "available").Count(&stats.TableStats.Available)
	ac.DB.Model(&models.Table{}).Where("status = ?", "occupied").Count(&stats.TableStats.Occupied)
	ac.DB.Model(&models.Table{}).Count(&stats.TableStats.Total)

	events.BroadcastStats(stats)
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// ExportBookings streams the (optionally filtered) booking list as CSV.
// Accepts the same query parameters as the search endpoint.
func (ac *AdminController) ExportBookings(c *gin.Context) {
	filter := repository.BookingFilter{
		Name:   c.Query("name"),
		Phone:  c.Query("phone"),
		Date:   c.Query("date"),
		Status: c.Query("status"),
	}
	if v := c.Query("pax"); v != "" {
		if pax, err := strconv.Atoi(v); err == nil {
			filter.Pax = &pax
		}
	}

	bookings, err := ac.Bookings.List(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	filename := fmt.Sprintf("bookings-%s.csv", time.Now().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"id", "customer_name", "phone", "date", "time", "pax", "status", "notes", "created_at"})
	for _, b := range bookings {
		w.Write([]string{
			strconv.FormatUint(uint64(b.ID), 10),
			b.CustomerName,
			b.Phone,
			b.Date,
			b.Time,
			strconv.Itoa(b.Pax),
			b.Status,
			b.Notes,
			b.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
}
