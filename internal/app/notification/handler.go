package notification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	CreateNotification(c *gin.Context)
	ListNotifications(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Create notification
// @Description Publish an announcement to all users (admin only)
// @Tags Notification
// @Accept json
// @Produce json
// @Param request body CreateNotificationRequest true "Notification payload"
// @Success 201 {object} Notification
// @Failure 422 {object} ErrorResponse
// @Router /api/notifications [post]
func (h *handler) CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	notification, err := h.service.CreateNotification(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrBlankNotification) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, notification)
}

// @Summary List notifications
// @Description All published announcements, newest first
// @Tags Notification
// @Produce json
// @Success 200 {object} NotificationListResponse
// @Router /api/notifications [get]
func (h *handler) ListNotifications(c *gin.Context) {
	notifications, err := h.service.ListNotifications(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, NotificationListResponse{Notifications: notifications})
}
