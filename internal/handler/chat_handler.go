package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Team-FBI/WPS/internal/dto"
	"github.com/Team-FBI/WPS/internal/service"
	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

func (h *ChatHandler) RegisterRoutes(e *echo.Echo) {
	reservations := e.Group("/api/v1/reservations")
	reservations.POST("/:id/messages", h.PostMessage)
	reservations.GET("/:id/messages", h.ListMessages)
}

func (h *ChatHandler) PostMessage(c echo.Context) error {
	reservationID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.PostMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.AuthorID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "author_id is required")
	}

	message, err := h.svc.PostMessage(c.Request().Context(), reservationID, req.AuthorID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmptyMessage):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotParticipant):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToMessageResponse(message))
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	reservationID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	userID, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	limit, offset := 50, 0
	if s := c.QueryParam("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = v
	}
	if s := c.QueryParam("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid offset")
		}
		offset = v
	}

	messages, err := h.svc.ListMessages(c.Request().Context(), reservationID, uint(userID), limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotParticipant):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	resp := make([]dto.MessageResponse, len(messages))
	for i, m := range messages {
		resp[i] = dto.ToMessageResponse(&m)
	}

	return c.JSON(http.StatusOK, resp)
}
