package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	model "auction-house/internal/models"
	"auction-house/services/users/helpers"
	"auction-house/utils"
)

type AuthGateInterface interface {
	Register(username, password, email string) (model.User, error)
	Login(username, password string) (string, error)
	RequestReset(email string) error
	ResetPassword(token, newPassword string) error
}

type UserHandler struct {
	gate AuthGateInterface
}

func NewUserHandler(gate AuthGateInterface) *UserHandler {
	return &UserHandler{gate: gate}
}

// RegisterHandler handles POST /users/register
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	user, err := h.gate.Register(req.Username, req.Password, req.Email)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RegisterHandler: failed to register user", map[string]any{
			"username": req.Username,
			"error":    err.Error(),
		})
		return
	}

	resp := helpers.UserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "user registered successfully")
	helpers.LogSuccess("RegisterHandler", "user registered successfully", map[string]any{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

// LoginHandler handles POST /users/login
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	token, err := h.gate.Login(req.Username, req.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("LoginHandler: login failed", map[string]any{
			"username": req.Username,
			"error":    err.Error(),
		})
		return
	}

	// Token is the whole payload, outside the usual data envelope.
	c.JSON(http.StatusOK, helpers.TokenResponse{Token: token})
	helpers.LogSuccess("LoginHandler", "user logged in", map[string]any{
		"username": req.Username,
	})
}

// ProfileHandler handles GET /users/profile
func (h *UserHandler) ProfileHandler(c *gin.Context) {
	user, ok := utils.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, errors.New("no authenticated user"), "unauthorized")
		return
	}

	resp := helpers.UserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
	utils.JSONResponse(c, http.StatusOK, resp, "profile retrieved successfully")
}

// RequestResetHandler handles POST /users/request-password-reset
func (h *UserHandler) RequestResetHandler(c *gin.Context) {
	var req helpers.RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RequestResetHandler", err)
		return
	}

	if err := h.gate.RequestReset(req.Email); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RequestResetHandler: reset request failed", map[string]any{
			"email": req.Email,
			"error": err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "password reset email sent")
	helpers.LogSuccess("RequestResetHandler", "password reset email sent", map[string]any{
		"email": req.Email,
	})
}

// ResetPasswordHandler handles POST /users/reset-password/:token
func (h *UserHandler) ResetPasswordHandler(c *gin.Context) {
	var req helpers.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ResetPasswordHandler", err)
		return
	}

	token := c.Param("token")
	if err := h.gate.ResetPassword(token, req.Password); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ResetPasswordHandler: reset failed", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "password reset successful")
	helpers.LogSuccess("ResetPasswordHandler", "password reset successful", nil)
}
