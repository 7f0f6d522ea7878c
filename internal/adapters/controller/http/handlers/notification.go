package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/planloop/planloop/internal/adapters/controller/http/middlewares"
	"github.com/planloop/planloop/internal/domain/dto"
	"github.com/planloop/planloop/internal/domain/service"
)

type NotificationHandler struct {
	notifications *service.NotificationService
	notify        *service.NotifyService
}

func NewNotificationHandler(notifications *service.NotificationService, notify *service.NotifyService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, notify: notify}
}

func (h *NotificationHandler) GetActive(c *gin.Context) {
	notifications, err := h.notifications.GetActive(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) Dismiss(c *gin.Context) {
	if err := h.notifications.Dismiss(c.Request.Context(), c.Param("id"), middlewares.UserID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) DismissAll(c *gin.Context) {
	if err := h.notifications.DismissAll(c.Request.Context(), middlewares.UserID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type broadcastRequest struct {
	Type    string `json:"type" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

// Broadcast pushes a notification to every fresh connection and reports the
// per-connection delivery attempts.
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}

	records, err := h.notify.Broadcast(c.Request.Context(), dto.Notify{
		ID:      uuid.NewString(),
		Type:    req.Type,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attempted": len(records), "records": records})
}
