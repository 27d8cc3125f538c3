package router

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/controllers"
	"github.com/yeremiapane/restaurant-booking/middlewares"
	"github.com/yeremiapane/restaurant-booking/repository"
	"gorm.io/gorm"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// SetupRouter wires repositories, controllers, middleware order and the
// route table. Repositories are constructed once here and injected; nothing
// reads a global database handle.
func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// TEMPLATES_GLOB lets tests point at the templates from another cwd.
	glob := os.Getenv("TEMPLATES_GLOB")
	if glob == "" {
		glob = "templates/*.html"
	}
	r.LoadHTMLGlob(glob)

	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)
	tableRepo := repository.NewTableRepo(db)

	authCtrl := controllers.NewAuthController(userRepo)
	bookingCtrl := controllers.NewBookingController(bookingRepo, tableRepo)
	bookingAPICtrl := controllers.NewBookingAPIController(bookingRepo)
	userAPICtrl := controllers.NewUserAPIController(userRepo)
	tableAPICtrl := controllers.NewTableAPIController(tableRepo)
	adminCtrl := controllers.NewAdminController(db, bookingRepo)

	// 50 requests per second per IP across the whole app. Registered here,
	// before any route, so every handler chain includes it.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SessionMiddleware())

	// Booking photos are served from disk; only image extensions get out.
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			allowed := false
			for _, ext := range imageExtensions {
				if strings.HasSuffix(strings.ToLower(c.Request.URL.Path), ext) {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}
		c.Next()
	})
	r.Static("/uploads/booking_photos", controllers.UploadDir())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.GET("/login", authCtrl.ShowLogin)
		public.POST("/login", authCtrl.Login)
		public.GET("/register", authCtrl.ShowRegister)
		public.POST("/register", authCtrl.Register)
	}

	r.GET("/logout", authCtrl.Logout)
	r.POST("/logout", authCtrl.Logout)
	r.GET("/", authCtrl.Home)

	// ----------------------------------------------------------------
	//                      SESSION-GATED WEB ROUTES
	// ----------------------------------------------------------------
	web := r.Group("/")
	web.Use(middlewares.RequireSession())
	{
		web.GET("/clist", bookingCtrl.ListOwnBookings)
		web.GET("/create", bookingCtrl.ShowCreate)
		web.POST("/create", bookingCtrl.Create)
		web.GET("/details/:id", bookingCtrl.Details)
		web.GET("/edit/:id", bookingCtrl.ShowEdit)
		web.POST("/update/:id", bookingCtrl.Update)
		web.GET("/delete/:id", bookingCtrl.Delete)
		web.POST("/delete/:id", bookingCtrl.Delete)

		staff := web.Group("/")
		staff.Use(middlewares.RequireStaff())
		{
			staff.GET("/list", bookingCtrl.ListBookings)
			staff.GET("/search", bookingCtrl.Search)
		}
	}

	// ----------------------------------------------------------------
	//                      JSON API
	// ----------------------------------------------------------------
	// The booking API is the app's open integration surface.
	api := r.Group("/api")
	{
		api.GET("/bookings", bookingAPICtrl.List)
		api.POST("/bookings", bookingAPICtrl.Create)
		api.GET("/bookings/:id", bookingAPICtrl.Get)
		api.PUT("/bookings/:id", bookingAPICtrl.Update)
		api.DELETE("/bookings/:id", bookingAPICtrl.Delete)
	}

	users := r.Group("/api/users")
	users.Use(middlewares.RequireAPIRole()) // admin only
	{
		users.GET("", userAPICtrl.List)
		users.POST("", userAPICtrl.Create)
		users.GET("/username/:username", userAPICtrl.Get)
		users.PATCH("/username/:username", userAPICtrl.Update)
		users.DELETE("/username/:username", userAPICtrl.Delete)
	}

	tables := r.Group("/api/tables")
	tables.Use(middlewares.RequireAPIRole("staff"))
	{
		tables.GET("", tableAPICtrl.List)
		tables.POST("", tableAPICtrl.Create)
		tables.GET("/:table_id", tableAPICtrl.Get)
		tables.PATCH("/:table_id", tableAPICtrl.UpdateStatus)
		tables.DELETE("/:table_id", tableAPICtrl.Delete)
	}

	admin := r.Group("/api/admin")
	admin.Use(middlewares.RequireAPIRole())
	{
		admin.GET("/stats", adminCtrl.GetDashboardStats)
		admin.GET("/export", adminCtrl.ExportBookings)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/dashboard", controllers.DashboardFeedHandler)
	}

	return r
}
