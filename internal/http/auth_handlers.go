package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// Auth responses use the {"success": ..., "message": ...} envelope the
// login page expects. Public user fields only; the hash never leaves the
// service.

type userView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func newUserView(u *domain.User) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerReq true "Credentials"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/register [post]
func (s *Server) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide username, email, and password"})
		return
	}
	u, err := s.auth.Register(c, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide username, email, and password"})
		case errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 6 characters long"})
		case errors.Is(err, repository.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Username or email already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during registration"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    newUserView(u),
	})
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// @Summary Log in with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginReq true "Credentials"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/login [post]
func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide username and password"})
		return
	}
	u, err := s.auth.Login(c, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide username and password"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during login"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    newUserView(u),
	})
}

// @Summary List registered accounts (public fields)
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/registered-users [get]
func (s *Server) registeredUsers(c *gin.Context) {
	users, err := s.auth.Users(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching users"})
		return
	}
	// domain.User omits the hash from JSON
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}
