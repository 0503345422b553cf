package handlers

import "github.com/gin-gonic/gin"

// Response is the envelope every endpoint answers with.
type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func SuccessResponse(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{Message: message, Data: data})
}

func ErrorResponse(c *gin.Context, code int, message string, errs interface{}) {
	c.JSON(code, Response{Message: message, Errors: errs})
}
