package delivery

import (
	"errors"
	"net/http"
	"strconv"

	authdto "channelsync-backend/internal/auth/dto"
	"channelsync-backend/internal/auth/usecase"
	"channelsync-backend/pkg/apierr"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, logout and user management requests
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Login authenticates with email/password and establishes a session cookie
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authUsecase.Login(&req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout clears the session cookie
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1, Path: "/"})
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the user behind the current session
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.authUsecase.GetUser(userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session user no longer exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers returns a page of users
// GET /api/users?limit=50&offset=0
func (h *AuthHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, total, err := h.authUsecase.ListUsers(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
	})
}

// GetUser returns a single user
// GET /api/users/:id
func (h *AuthHandler) GetUser(c *gin.Context) {
	user, err := h.authUsecase.GetUser(c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser creates a new admin user
// POST /api/users
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req authdto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authUsecase.CreateUser(&req)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser updates an existing user
// PUT /api/users/:id
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	var req authdto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authUsecase.UpdateUser(c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, usecase.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser deletes a user; deleting the session's own account is refused
// DELETE /api/users/:id
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	sessionUserID := c.GetString("userID")

	err := h.authUsecase.DeleteUser(sessionUserID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSelfDelete):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete your own account"})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// SyncSlackUsers bulk-imports users from the Slack workspace
// POST /api/users/sync-slack
func (h *AuthHandler) SyncSlackUsers(c *gin.Context) {
	resp, err := h.authUsecase.SyncSlackUsers(c.Request.Context())
	if err != nil {
		apierr.RespondProvider(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
