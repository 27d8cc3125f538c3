package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/events"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/utils"
)

// BookingAPIController mirrors the web CRUD as JSON under /api/bookings.
// This surface is the unauthenticated integration contract of the app.
type BookingAPIController struct {
	Bookings *repository.BookingRepo
}

func NewBookingAPIController(bookings *repository.BookingRepo) *BookingAPIController {
	return &BookingAPIController{Bookings: bookings}
}

// coercePax accepts the party size as a JSON number or a numeric string and
// falls back to 1, matching the declared coercion.
func coercePax(v interface{}) int {
	switch n := v.(type) {
	case float64:
		if n >= 1 {
			return int(n)
		}
	case string:
		return parsePax(n)
	case int:
		if n >= 1 {
			return n
		}
	}
	return 1
}

func (bac *BookingAPIController) List(c *gin.Context) {
	filter := repository.BookingFilter{
		Name:   c.Query("customerName"),
		Phone:  c.Query("phone"),
		Date:   c.Query("date"),
		Status: c.Query("status"),
	}
	if v := c.Query("pax"); v != "" {
		pax, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid pax %q", v))
			return
		}
		filter.Pax = &pax
	}

	bookings, err := bac.Bookings.List(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

func (bac *BookingAPIController) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	booking, err := bac.Bookings.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("booking not found"))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

func (bac *BookingAPIController) Create(c *gin.Context) {
	var req struct {
		CustomerName string      `json:"customerName"`
		Name         string      `json:"name"` // alias kept from older clients
		Phone        string      `json:"phone"`
		Date         string      `json:"date" binding:"required"`
		Time         string      `json:"time"`
		Pax          interface{} `json:"pax"`
		Status       string      `json:"status"`
		Notes        string      `json:"notes"`
		TableID      *uint       `json:"table_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.CustomerName == "" {
		req.CustomerName = req.Name
	}
	if req.CustomerName == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("customerName is required"))
		return
	}
	if !repository.ValidDate(req.Date) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid date %q, want YYYY-MM-DD", req.Date))
		return
	}

	booking := models.Booking{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Date:         req.Date,
		Time:         req.Time,
		Pax:          coercePax(req.Pax),
		Status:       req.Status,
		Notes:        req.Notes,
		TableID:      req.TableID,
	}
	if err := bac.Bookings.Create(c.Request.Context(), &booking); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastBookingCreate(booking)
	utils.RespondJSON(c, http.StatusCreated, "Booking created", booking)
}

// Update merges only the keys present in the body; unknown keys are ignored.
func (bac *BookingAPIController) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fields := map[string]interface{}{}
	for key, v := range body {
		switch key {
		case "customerName", "name", "customer_name", "phone", "time", "status", "notes", "date":
			s, ok := v.(string)
			if !ok {
				utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("%s must be a string", key))
				return
			}
			switch key {
			case "customerName", "name", "customer_name":
				fields["customer_name"] = s
			case "date":
				if !repository.ValidDate(s) {
					utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s))
					return
				}
				fields["date"] = s
			default:
				fields[key] = s
			}
		case "pax":
			fields["pax"] = coercePax(v)
		case "table_id":
			if n, ok := v.(float64); ok && n > 0 {
				fields["table_id"] = uint(n)
			}
		}
	}

	booking, err := bac.Bookings.Update(c.Request.Context(), id, fields)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("booking not found"))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastBookingUpdate(*booking)
	utils.RespondJSON(c, http.StatusOK, "Booking updated", booking)
}

func (bac *BookingAPIController) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bac.Bookings.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("booking not found"))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if _, err := bac.Bookings.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	removePhoto(booking)

	events.BroadcastBookingDelete(id)
	c.Status(http.StatusNoContent)
}
