package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	model "auction-house/internal/models"
	"auction-house/services/notifications/helpers"
	"auction-house/utils"
)

type NotificationServiceInterface interface {
	ListUnread(userID string) ([]model.Notification, error)
	MarkRead(userID string, ids []string) error
}

type NotificationHandler struct {
	service NotificationServiceInterface
}

func NewNotificationHandler(service NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// ListUnreadHandler handles GET /notifications
func (h *NotificationHandler) ListUnreadHandler(c *gin.Context) {
	user, ok := utils.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, errors.New("no authenticated user"), "unauthorized")
		return
	}

	notifications, err := h.service.ListUnread(user.UserID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListUnreadHandler: error retrieving notifications", map[string]any{
			"user_id": user.UserID,
			"error":   err.Error(),
		})
		return
	}

	resp := lo.Map(notifications, func(n model.Notification, _ int) helpers.NotificationResponse {
		return helpers.ToNotificationResponse(n)
	})
	utils.JSONResponse(c, http.StatusOK, resp, "notifications retrieved successfully")
}

// MarkReadHandler handles POST /notifications/mark-read
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	user, ok := utils.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, errors.New("no authenticated user"), "unauthorized")
		return
	}

	var req helpers.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "MarkReadHandler", err)
		return
	}

	if err := h.service.MarkRead(user.UserID, req.IDs); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("MarkReadHandler: failed to mark notifications", map[string]any{
			"user_id": user.UserID,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "notifications marked as read")
	helpers.LogSuccess("MarkReadHandler", "notifications marked as read", map[string]any{
		"user_id": user.UserID,
		"count":   len(req.IDs),
	})
}
