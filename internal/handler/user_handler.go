package handler

import (
	"errors"
	"net/http"

	"github.com/Team-FBI/WPS/internal/dto"
	"github.com/Team-FBI/WPS/internal/models"
	"github.com/Team-FBI/WPS/internal/repository"
	"github.com/Team-FBI/WPS/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	svc              service.UserService
	notificationRepo repository.NotificationRepository
}

func NewUserHandler(svc service.UserService, notificationRepo repository.NotificationRepository) *UserHandler {
	return &UserHandler{svc: svc, notificationRepo: notificationRepo}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	users := e.Group("/api/v1/users")
	users.POST("", h.Register)
	users.GET("/:id", h.GetUser)
	users.GET("/:id/notifications", h.ListNotifications)

	e.POST("/api/v1/notifications/:id/read", h.MarkNotificationRead)
}

func (h *UserHandler) Register(c echo.Context) error {
	var req dto.RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and name are required")
	}

	user := &models.User{
		Email:  req.Email,
		Name:   req.Name,
		Avatar: req.Avatar,
	}
	if err := h.svc.Register(c.Request().Context(), user); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) ListNotifications(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	unreadOnly := c.QueryParam("unread") == "true"

	notifications, err := h.notificationRepo.FindByUser(c.Request().Context(), userID, unreadOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = dto.ToNotificationResponse(&n)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) MarkNotificationRead(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notificationRepo.MarkRead(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
