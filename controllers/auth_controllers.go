package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/utils"
)

type AuthController struct {
	Users *repository.UserRepo
}

func NewAuthController(users *repository.UserRepo) *AuthController {
	return &AuthController{Users: users}
}

// sessionCookieMaxAge matches the token TTL.
const sessionCookieMaxAge = 24 * 60 * 60

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(utils.SessionCookieName, token, sessionCookieMaxAge, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
}

// roleHome is where a fresh session lands: staff see everything, customers
// only their own bookings.
func roleHome(role string) string {
	if role == models.RoleAdmin || role == models.RoleStaff {
		return "/list"
	}
	return "/clist"
}

func (ac *AuthController) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := ac.Users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		// Generic error on purpose: no hint whether the username exists.
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"error": "Invalid username or password",
		})
		return
	}

	token, err := utils.GenerateSessionToken(user.ID, user.Username, user.Role)
	if err != nil {
		utils.RenderError(c, http.StatusInternalServerError, err)
		return
	}
	setSessionCookie(c, token)

	utils.InfoLogger.Printf("Login: %s (role=%s)", user.Username, user.Role)
	c.Redirect(http.StatusFound, roleHome(user.Role))
}

func (ac *AuthController) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

func (ac *AuthController) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	confirm := c.PostForm("confirm")

	fail := func(msg string) {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"error":    msg,
			"username": username,
		})
	}

	if username == "" || password == "" || confirm == "" {
		fail("All fields are required")
		return
	}
	if password != confirm {
		fail("Passwords do not match")
		return
	}
	if len(password) < 4 {
		fail("Password must be at least 4 characters")
		return
	}

	user, err := ac.Users.Create(c.Request.Context(), username, password, models.RoleCustomer)
	if errors.Is(err, repository.ErrUsernameTaken) {
		fail("Username already taken")
		return
	}
	if err != nil {
		utils.RenderError(c, http.StatusInternalServerError, err)
		return
	}

	token, err := utils.GenerateSessionToken(user.ID, user.Username, user.Role)
	if err != nil {
		utils.RenderError(c, http.StatusInternalServerError, err)
		return
	}
	setSessionCookie(c, token)

	utils.InfoLogger.Printf("New user registered: %s", user.Username)
	c.Redirect(http.StatusFound, "/clist")
}

func (ac *AuthController) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

// Home redirects by role, anonymous requests go to the login form.
func (ac *AuthController) Home(c *gin.Context) {
	role := c.GetString("role")
	if role == "" {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, roleHome(role))
}
