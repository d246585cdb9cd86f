package utils

import (
	"github.com/gin-gonic/gin"
)

type successEnvelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type errorEnvelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// JSONResponse sends a structured JSON success response.
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, successEnvelope{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// JSONError sends a structured JSON error response.
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, errorEnvelope{
		Status:  status,
		Message: message,
		Error:   err.Error(),
	})
}
