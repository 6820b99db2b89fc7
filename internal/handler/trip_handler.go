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

type TripHandler struct {
	svc service.TripService
}

func NewTripHandler(svc service.TripService) *TripHandler {
	return &TripHandler{svc: svc}
}

func (h *TripHandler) RegisterRoutes(e *echo.Echo) {
	trips := e.Group("/api/v1/trips")
	trips.POST("", h.CreateTrip)
	trips.GET("", h.ListTrips)
	trips.GET("/:id", h.GetTrip)
	trips.POST("/:id/schedules", h.CreateSchedule)
	trips.GET("/:id/schedules", h.ListSchedules)

	e.POST("/api/v1/schedules/:id/reservations", h.ReserveSeats)

	reservations := e.Group("/api/v1/trip-reservations")
	reservations.DELETE("/:id", h.CancelReservation)
	reservations.POST("/:id/review", h.SubmitReview)
}

func (h *TripHandler) CreateTrip(c echo.Context) error {
	var req dto.CreateTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.HostID == 0 || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "host_id and name are required")
	}

	trip := &models.Trip{
		HostID:        req.HostID,
		Name:          req.Name,
		Category:      req.Category,
		State:         req.State,
		DurationHours: req.DurationHours,
		MaxGuests:     req.MaxGuests,
		Price:         req.Price,
		Description:   req.Description,
	}
	if err := h.svc.CreateTrip(c.Request().Context(), trip); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToTripResponse(trip))
}

func (h *TripHandler) GetTrip(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	trip, err := h.svc.GetTrip(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTripNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

func (h *TripHandler) ListTrips(c echo.Context) error {
	trips, err := h.svc.ListTrips(c.Request().Context(), c.QueryParam("state"), c.QueryParam("category"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.TripResponse, len(trips))
	for i, t := range trips {
		resp[i] = dto.ToTripResponse(&t)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *TripHandler) CreateSchedule(c echo.Context) error {
	tripID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CreateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.HostID == 0 || req.Capacity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "host_id and a positive capacity are required")
	}

	schedule := &models.TripSchedule{
		TripID:   tripID,
		StartAt:  req.StartAt,
		Capacity: req.Capacity,
	}
	if err := h.svc.CreateSchedule(c.Request().Context(), req.HostID, schedule); err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotTripHost):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToScheduleResponse(schedule))
}

func (h *TripHandler) ListSchedules(c echo.Context) error {
	tripID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	schedules, err := h.svc.ListSchedules(c.Request().Context(), tripID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ScheduleResponse, len(schedules))
	for i, s := range schedules {
		resp[i] = dto.ToScheduleResponse(&s)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *TripHandler) ReserveSeats(c echo.Context) error {
	scheduleID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.ReserveSeatsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	reservation, err := h.svc.ReserveSeats(c.Request().Context(), scheduleID, req.UserID, req.Guests)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCapacityExceeded):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrScheduleClosed),
			errors.Is(err, service.ErrScheduleFull),
			errors.Is(err, service.ErrAlreadyBooked):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToTripReservationResponse(reservation))
}

func (h *TripHandler) CancelReservation(c echo.Context) error {
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

	return c.JSON(http.StatusOK, dto.ToTripReservationResponse(reservation))
}

func (h *TripHandler) SubmitReview(c echo.Context) error {
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
			errors.Is(err, service.ErrTripNotStarted):
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
