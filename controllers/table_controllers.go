package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/events"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/utils"
)

// TableAPIController manages the dining tables bookings may reference.
// Double-booking a table is not prevented here; the data model carries no
// occupancy constraint.
type TableAPIController struct {
	Tables *repository.TableRepo
}

func NewTableAPIController(tables *repository.TableRepo) *TableAPIController {
	return &TableAPIController{Tables: tables}
}

func tableID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("table_id"), 10, 32)
	if err != nil {
		return 0, errors.New("invalid table id")
	}
	return uint(id), nil
}

func (tc *TableAPIController) Create(c *gin.Context) {
	var req struct {
		Number string `json:"number" binding:"required"`
		Seats  int    `json:"seats" binding:"required"`
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{Number: req.Number, Seats: req.Seats, Status: req.Status}
	err := tc.Tables.Create(c.Request.Context(), &table)
	if errors.Is(err, repository.ErrTableNumberTaken) {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	events.BroadcastTableCreate(table)
	utils.InfoLogger.Printf("Table %s created (seats=%d)", table.Number, table.Seats)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// List returns all tables, filtered by ?status= when present.
func (tc *TableAPIController) List(c *gin.Context) {
	tables, err := tc.Tables.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableAPIController) Get(c *gin.Context) {
	id, err := tableID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	table, err := tc.Tables.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

func (tc *TableAPIController) UpdateStatus(c *gin.Context) {
	id, err := tableID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.UpdateStatus(c.Request.Context(), id, body.Status)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableUpdate(*table)
	utils.InfoLogger.Printf("Table %d status changed to %s", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

func (tc *TableAPIController) Delete(c *gin.Context) {
	id, err := tableID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	affected, err := tc.Tables.Delete(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if affected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	events.BroadcastTableDelete(id)
	c.Status(http.StatusNoContent)
}
