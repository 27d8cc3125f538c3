package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/utils"
)

// UserAPIController is the admin-only user management surface. Password
// hashes never leave the server: the model serializes the hash as "-".
type UserAPIController struct {
	Users *repository.UserRepo
}

func NewUserAPIController(users *repository.UserRepo) *UserAPIController {
	return &UserAPIController{Users: users}
}

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleStaff, models.RoleCustomer:
		return true
	}
	return false
}

func (uac *UserAPIController) List(c *gin.Context) {
	users, err := uac.Users.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

func (uac *UserAPIController) Create(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=4"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !validRole(req.Role) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("role must be admin, staff or customer"))
		return
	}

	user, err := uac.Users.Create(c.Request.Context(), req.Username, req.Password, req.Role)
	if errors.Is(err, repository.ErrUsernameTaken) {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("User %s created (role=%s)", user.Username, user.Role)
	utils.RespondJSON(c, http.StatusCreated, "User created", user)
}

func (uac *UserAPIController) Get(c *gin.Context) {
	user, err := uac.Users.GetByUsername(c.Request.Context(), c.Param("username"))
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User detail", user)
}

// Update merges password and/or role; the username itself is immutable, it
// is what booking ownership hangs on.
func (uac *UserAPIController) Update(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fields := map[string]interface{}{}
	if req.Password != "" {
		if len(req.Password) < 4 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("password must be at least 4 characters"))
			return
		}
		fields["password"] = req.Password
	}
	if req.Role != "" {
		if !validRole(req.Role) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("role must be admin, staff or customer"))
			return
		}
		fields["role"] = req.Role
	}

	user, err := uac.Users.UpdateByUsername(c.Request.Context(), c.Param("username"), fields)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User updated", user)
}

func (uac *UserAPIController) Delete(c *gin.Context) {
	username := c.Param("username")
	if username == c.GetString("username") {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cannot delete your own account"))
		return
	}

	affected, err := uac.Users.DeleteByUsername(c.Request.Context(), username)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if affected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}
	c.Status(http.StatusNoContent)
}
