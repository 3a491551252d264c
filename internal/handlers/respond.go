package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// APIResponse is the uniform success envelope. Errors use the same shape without data.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func respondSuccess(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, APIResponse{StatusCode: status, Data: data, Message: message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{StatusCode: status, Message: message})
}

// respondBindError renders a request binding failure, reporting the first failing
// field when the error came from the validator.
func respondBindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		respondError(c, http.StatusBadRequest, validationMessage(ve[0]))
		return
	}
	respondError(c, http.StatusBadRequest, "Invalid request body")
}
