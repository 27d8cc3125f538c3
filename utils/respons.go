package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, gin.H{
		"status": false,
		"error":  err.Error(),
	})
}

// RenderError is the HTML counterpart of RespondError. Web routes show a
// rendered error page rather than a bare status code.
func RenderError(c *gin.Context, code int, err error) {
	c.HTML(code, "error.html", gin.H{
		"error": err.Error(),
	})
}

// RenderInfo shows the confirmation page the form flows land on.
func RenderInfo(c *gin.Context, message string) {
	c.HTML(http.StatusOK, "info.html", gin.H{
		"message": message,
	})
}
