// Package response holds the JSON envelope every non-list endpoint returns.
package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type ErrorEnvelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Errors    []string  `json:"errors,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(200, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(201, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func Error(c *gin.Context, httpStatus int, message string, errs ...string) {
	c.JSON(httpStatus, ErrorEnvelope{
		Success:   false,
		Message:   message,
		Errors:    errs,
		Timestamp: time.Now().UTC(),
	})
}
