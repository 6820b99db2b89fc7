package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Team-FBI/WPS/internal/dto"
	"github.com/Team-FBI/WPS/internal/models"
	"github.com/Team-FBI/WPS/internal/service"
	"github.com/labstack/echo/v4"
)

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

type ReservationHandler struct {
	svc service.ReservationService
}

func NewReservationHandler(svc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	rooms := e.Group("/api/v1/rooms")
	rooms.POST("/:id/reservations", h.CreateReservation)
	rooms.GET("/:id/reservations", h.ListByRoom)
	rooms.POST("/:id/rating", h.RecomputeRating)

	reservations := e.Group("/api/v1/reservations")
	reservations.GET("/:id", h.GetReservation)
	reservations.DELETE("/:id", h.CancelReservation)
	reservations.POST("/:id/review", h.SubmitReview)
	reservations.POST("/:id/archive", h.ArchiveReservation)

	e.GET("/api/v1/users/:id/reservations", h.ListByUser)
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	roomID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	start, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	end, err := dto.ParseDate(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reservation, err := h.svc.CreateReservation(c.Request().Context(), service.ReservationInput{
		RoomID:      roomID,
		UserID:      req.UserID,
		StartDate:   start,
		EndDate:     end,
		Guests:      req.Guests,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrDateOrder),
			errors.Is(err, service.ErrZeroLengthStay),
			errors.Is(err, service.ErrStayLength),
			errors.Is(err, service.ErrCapacityExceeded):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDateConflict):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	reservation, err := h.svc.GetReservation(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	userID, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	reservation, err := h.svc.CancelReservation(c.Request().Context(), id, uint(userID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotReservationOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrReservationState):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) SubmitReview(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	total, err := h.svc.SubmitReview(c.Request().Context(), id, req.UserID, service.ReviewInput{
		Accuracy:      req.Accuracy,
		Location:      req.Location,
		Communication: req.Communication,
		Checkin:       req.Checkin,
		Clean:         req.Clean,
		Value:         req.Value,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotReservationOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrScoreRange):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrReservationState),
			errors.Is(err, service.ErrStayNotStarted):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ReviewResultResponse{
		ReservationID: id,
		RoomRating:    total,
	})
}

func (h *ReservationHandler) ArchiveReservation(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	reservation, err := h.svc.ArchiveReservation(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrReservationState):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) RecomputeRating(c echo.Context) error {
	roomID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	summary, err := h.svc.RecomputeRoomRating(c.Request().Context(), roomID)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToRatingResponse(summary))
}

func (h *ReservationHandler) ListByRoom(c echo.Context) error {
	roomID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var status *models.ReservationStatus
	if s := c.QueryParam("status"); s != "" {
		rs := models.ReservationStatus(s)
		status = &rs
	}

	reservations, err := h.svc.ListByRoom(c.Request().Context(), roomID, status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = dto.ToReservationResponse(&r)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) ListByUser(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	reservations, err := h.svc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = dto.ToReservationResponse(&r)
	}

	return c.JSON(http.StatusOK, resp)
}
