package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lvxn0va/legal-ease-ai/internal/middleware"
	"github.com/lvxn0va/legal-ease-ai/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type RegisterBody struct {
	FirstName string `json:"first_name" binding:"required,min=2"`
	LastName  string `json:"last_name" binding:"required,min=2"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	body := &RegisterBody{}

	if err := c.ShouldBindJSON(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	resp, err := h.authService.Register(c, body.FirstName, body.LastName, body.Email, body.Password)
	if err != nil {
		statusCode := http.StatusInternalServerError
		message := "Failed to register user"

		if strings.Contains(err.Error(), "already exists") {
			statusCode = http.StatusConflict
			message = "User already exists"
		}

		c.JSON(statusCode, gin.H{
			"error": message,
		})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

type LoginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	body := &LoginBody{}

	if err := c.ShouldBindJSON(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	resp, err := h.authService.Login(c, body.Email, body.Password)
	if err != nil {
		statusCode := http.StatusInternalServerError
		message := "Login failed"

		errMsg := err.Error()
		if strings.Contains(errMsg, "invalid email or password") {
			statusCode = http.StatusUnauthorized
			message = "Invalid email or password"
		} else if strings.Contains(errMsg, "deactivated") {
			statusCode = http.StatusForbidden
			message = "Account is deactivated"
		}

		c.JSON(statusCode, gin.H{
			"error": message,
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.authService.GetUser(c, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "User not found",
		})
		return
	}

	c.JSON(http.StatusOK, user)
}
