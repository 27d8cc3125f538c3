package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-booking/events"
	"github.com/yeremiapane/restaurant-booking/middlewares"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/utils"
)

// maxPhotoSize caps booking photo uploads at 10MB; photos are streamed to
// disk, never held inline in the row.
const maxPhotoSize = 10 << 20

type BookingController struct {
	Bookings *repository.BookingRepo
	Tables   *repository.TableRepo
}

func NewBookingController(bookings *repository.BookingRepo, tables *repository.TableRepo) *BookingController {
	return &BookingController{Bookings: bookings, Tables: tables}
}

func parsePax(s string) int {
	pax, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || pax < 1 {
		return 1
	}
	return pax
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return uint(id), nil
}

// UploadDir is the directory booking photos are written to. The router
// serves the same directory back under /uploads/booking_photos, so the
// stored public path stays valid wherever UPLOAD_DIR points.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "public/uploads/booking_photos"
}

// savePhoto stores an uploaded photo under a generated name and returns the
// public path and MIME type. Returns empty strings when no photo was sent.
func savePhoto(c *gin.Context, file *multipart.FileHeader) (string, string, error) {
	if file == nil {
		return "", "", nil
	}
	if file.Size > maxPhotoSize {
		return "", "", fmt.Errorf("photo exceeds %d bytes", maxPhotoSize)
	}

	dir := UploadDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", err
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", "", err
	}
	return "/uploads/booking_photos/" + filename, file.Header.Get("Content-Type"), nil
}

// removePhoto deletes the stored file for a booking, if any.
func removePhoto(booking *models.Booking) {
	if booking.PhotoPath == "" {
		return
	}
	local := filepath.Join(UploadDir(), filepath.Base(booking.PhotoPath))
	if err := os.Remove(local); err != nil && !os.IsNotExist(err) {
		utils.ErrorLogger.Printf("removing photo %s: %v", local, err)
	}
}

// ListBookings renders the full list for admin/staff.
func (bc *BookingController) ListBookings(c *gin.Context) {
	bookings, err := bc.Bookings.List(c.Request.Context(), repository.BookingFilter{})
	if err != nil {
		utils.RenderError(c, http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "list.html", gin.H{
		"bookings": bookings,
		"username": c.GetString("username"),
		"role":     c.GetString("role"),
	})
}

// ListOwnBookings renders only the bookings carrying the session username.
func (bc *BookingController) ListOwnBookings(c *gin.Context) {
	bookings, err := bc.Bookings.List(c.Request.Context(), repository.BookingFilter{
		Customer: c.GetString("username"),
	})
	if err != nil {
		utils.RenderError(c, http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "clist.html", gin.H{
		"bookings": bookings,
		"username": c.GetString("username"),
		"role":     c.GetString("role"),
	})
}

func (bc *BookingController) ShowCreate(c *gin.Context) {
	tables, _ := bc.Tables.List(c.Request.Context(), "available")
	c.HTML(http.StatusOK, "create.html", gin.H{
		"tables":   tables,
		"username": c.GetString("username"),
	})
}

func (bc *BookingController) Create(c *gin.Context) {
	name := c.PostForm("customer_name")
	if name == "" {
		name = c.GetString("username")
	}
	date := c.PostForm("date")
	if !repository.ValidDate(date) {
		utils.RenderError(c, http.StatusBadRequest, fmt.Errorf("invalid date %q, want YYYY-MM-DD", date))
		return
	}

	booking := models.Booking{
		CustomerName: name,
		Phone:        c.PostForm("phone"),
		Date:         date,
		Time:         c.PostForm("time"),
		Pax:          parsePax(c.PostForm("pax")),
		Status:       c.PostForm("status"),
		Notes:        c.PostForm("notes"),
	}

	if tableID, err := strconv.ParseUint(c.PostForm("table_id"), 10, 32); err == nil && tableID > 0 {
		id := uint(tableID)
		booking.TableID = &id
	}

	if file, err := c.FormFile("photo"); err == nil {
		path, mime, err := savePhoto(c, file)
		if err != nil {
			utils.RenderError(c, http.StatusBadRequest, err)
			return
		}
		booking.PhotoPath = path
		booking.PhotoMime = mime
	}

	if err := bc.Bookings.Create(c.Request.Context(), &booking); err != nil {
		utils.RenderError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastBookingCreate(booking)
	utils.InfoLogger.Printf("Booking %d created for %s (%s %s, pax=%d)",
		booking.ID, booking.CustomerName, booking.Date, booking.Time, booking.Pax)
	utils.RenderInfo(c, "Booking created")
}

func (bc *BookingController) Details(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RenderError(c, http.StatusBadRequest, err)
		return
	}
	booking, err := bc.Bookings.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RenderError(c, http.StatusNotFound, errors.New("booking not found"))
		return
	}
	if err != nil {
		utils.RenderError(c, http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "details.html", gin.H{
		"booking":  booking,
		"username": c.GetString("username"),
		"role":     c.GetString("role"),
	})
}

// loadForModify fetches the booking and applies the single modification
// policy. Writes the error response itself and returns nil when blocked.
func (bc *BookingController) loadForModify(c *gin.Context) *models.Booking {
	id, err := parseID(c)
	if err != nil {
		utils.RenderError(c, http.StatusBadRequest, err)
		return nil
	}
	booking, err := bc.Bookings.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RenderError(c, http.StatusNotFound, errors.New("booking not found"))
		return nil
	}
	if err != nil {
		utils.RenderError(c, http.StatusInternalServerError, err)
		return nil
	}
	if !middlewares.CanModifyBooking(c.GetString("role"), c.GetString("username"), booking) {
		utils.RenderError(c, http.StatusForbidden, errors.New("you may only modify your own bookings"))
		return nil
	}
	return booking
}

func (bc *BookingController) ShowEdit(c *gin.Context) {
	booking := bc.loadForModify(c)
	if booking == nil {
		return
	}
	tables, _ := bc.Tables.List(c.Request.Context(), "")
	c.HTML(http.StatusOK, "edit.html", gin.H{
		"booking":  booking,
		"tables":   tables,
		"username": c.GetString("username"),
	})
}

// Update merges only the submitted non-empty form fields; blank inputs keep
// the stored values.
func (bc *BookingController) Update(c *gin.Context) {
	booking := bc.loadForModify(c)
	if booking == nil {
		return
	}

	fields := map[string]interface{}{}
	for form, column := range map[string]string{
		"customer_name": "customer_name",
		"phone":         "phone",
		"time":          "time",
		"status":        "status",
		"notes":         "notes",
	} {
		if v := c.PostForm(form); v != "" {
			fields[column] = v
		}
	}
	if v := c.PostForm("date"); v != "" {
		if !repository.ValidDate(v) {
			utils.RenderError(c, http.StatusBadRequest, fmt.Errorf("invalid date %q, want YYYY-MM-DD", v))
			return
		}
		fields["date"] = v
	}
	if v := c.PostForm("pax"); v != "" {
		fields["pax"] = parsePax(v)
	}
	if v := c.PostForm("table_id"); v != "" {
		if tableID, err := strconv.ParseUint(v, 10, 32); err == nil {
			fields["table_id"] = uint(tableID)
		}
	}

	updated, err := bc.Bookings.Update(c.Request.Context(), booking.ID, fields)
	if err != nil {
		utils.RenderError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastBookingUpdate(*updated)
	utils.InfoLogger.Printf("Booking %d updated by %s", updated.ID, c.GetString("username"))
	utils.RenderInfo(c, "Booking updated")
}

func (bc *BookingController) Delete(c *gin.Context) {
	booking := bc.loadForModify(c)
	if booking == nil {
		return
	}

	if _, err := bc.Bookings.Delete(c.Request.Context(), booking.ID); err != nil {
		utils.RenderError(c, http.StatusInternalServerError, err)
		return
	}
	removePhoto(booking)

	events.BroadcastBookingDelete(booking.ID)
	utils.InfoLogger.Printf("Booking %d deleted by %s", booking.ID, c.GetString("username"))
	c.Redirect(http.StatusFound, "/")
}

// Search renders the filtered list for admin/staff. Absent parameters impose
// no constraint.
func (bc *BookingController) Search(c *gin.Context) {
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

	bookings, err := bc.Bookings.List(c.Request.Context(), filter)
	if err != nil {
		utils.RenderError(c, http.StatusBadRequest, err)
		return
	}
	c.HTML(http.StatusOK, "search.html", gin.H{
		"bookings": bookings,
		"query":    c.Request.URL.Query(),
		"username": c.GetString("username"),
	})
}
