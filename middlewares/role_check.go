package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/models"
)

// RequireStaff keeps the full booking list to admin and staff. Any other
// authenticated role is sent to its own list rather than rejected, matching
// the binary role gate of the source app.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role != models.RoleAdmin && role != models.RoleStaff {
			c.Redirect(http.StatusFound, "/clist")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CanModifyBooking is the one authorization policy every mutating booking
// handler consults: admin and staff may touch any booking, a customer only
// bookings carrying their own name.
func CanModifyBooking(role, username string, booking *models.Booking) bool {
	if role == models.RoleAdmin || role == models.RoleStaff {
		return true
	}
	return booking.CustomerName == username
}
