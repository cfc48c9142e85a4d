package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/domain"
	"invoicegen/internal/service"
)

// AuthHandler handles the combined register/login endpoint.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// fieldError is the historical auth error shape the web client renders
// inline next to the offending form field.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Auth handles POST /api/auth. A single endpoint serves both registration
// and login, switched by the isLogin flag; validation failures carry the
// form field they belong to.
func (h *AuthHandler) Auth(c *gin.Context) {
	var input service.AuthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, fieldError{Field: "email", Message: "a valid email and password are required"})
		return
	}

	var (
		output *service.AuthOutput
		err    error
	)
	if input.IsLogin {
		output, err = h.authService.Login(c.Request.Context(), input.Email, input.Password)
	} else {
		output, err = h.authService.Register(c.Request.Context(), input.Email, input.Password)
	}
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	msg := "Registered successfully"
	if input.IsLogin {
		msg = "Login successful"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": msg,
		"token":   output.Token,
		"user":    output.User,
	})
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmailNotRegistered):
		c.JSON(http.StatusBadRequest, fieldError{Field: "email", Message: "Email not registered"})
	case errors.Is(err, domain.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, fieldError{Field: "email", Message: "Email already registered"})
	case errors.Is(err, domain.ErrIncorrectPassword):
		c.JSON(http.StatusBadRequest, fieldError{Field: "password", Message: "Incorrect password"})
	default:
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] auth internal error: %v", requestID, err)
		c.JSON(http.StatusInternalServerError, fieldError{Field: "server", Message: "Server error"})
	}
}
