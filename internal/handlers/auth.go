package handlers

import (
	"log"
	"net/http"

	"github.com/finbook/finbook/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponse struct {
	Response string `json:"response"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// SignUp godoc
// @Summary Register a new user
// @Description Create a user account with a name, email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Account details"
// @Success 201
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500
// @Router /sign-up [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name, email and password are required"})
		return
	}

	_, err := h.authService.SignUp(req.Name, req.Email, req.Password)
	if err != nil {
		switch err {
		case services.ErrEmailTaken:
			c.JSON(http.StatusConflict, ErrorResponse{Error: "email already registered"})
		default:
			log.Printf("sign-up failed: %v", err)
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusCreated)
}

// SignIn godoc
// @Summary Sign in
// @Description Exchange email and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials"
// @Success 200 {object} SignInResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401
// @Failure 500
// @Router /sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and password are required"})
		return
	}

	token, err := h.authService.SignIn(req.Email, req.Password)
	if err != nil {
		switch err {
		case services.ErrInvalidCredentials:
			c.Status(http.StatusUnauthorized)
		default:
			log.Printf("sign-in failed: %v", err)
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, SignInResponse{Response: token})
}
