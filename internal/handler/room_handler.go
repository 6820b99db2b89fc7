package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Team-FBI/WPS/internal/dto"
	"github.com/Team-FBI/WPS/internal/models"
	"github.com/Team-FBI/WPS/internal/service"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type RoomHandler struct {
	svc service.RoomService
}

func NewRoomHandler(svc service.RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

func (h *RoomHandler) RegisterRoutes(e *echo.Echo) {
	rooms := e.Group("/api/v1/rooms")
	rooms.POST("", h.CreateRoom)
	rooms.GET("", h.SearchRooms)
	rooms.GET("/:id", h.GetRoom)
	rooms.PUT("/:id", h.UpdateRoom)
	rooms.DELETE("/:id", h.DeactivateRoom)
}

func roomFromRequest(req dto.CreateRoomRequest) (*models.Room, error) {
	var amenities datatypes.JSON
	if len(req.Amenities) > 0 {
		raw, err := json.Marshal(req.Amenities)
		if err != nil {
			return nil, err
		}
		amenities = datatypes.JSON(raw)
	}
	return &models.Room{
		HostID:      req.HostID,
		Title:       req.Title,
		Address:     req.Address,
		State:       req.State,
		Price:       req.Price,
		Capacity:    req.Capacity,
		RoomType:    req.RoomType,
		MinStay:     req.MinStay,
		MaxStay:     req.MaxStay,
		Bedrooms:    req.Bedrooms,
		Amenities:   amenities,
		Description: req.Description,
	}, nil
}

func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req dto.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.HostID == 0 || req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "host_id and title are required")
	}

	room, err := roomFromRequest(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid amenities")
	}
	if err := h.svc.CreateRoom(c.Request().Context(), room); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToRoomResponse(room))
}

func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	room, err := h.svc.GetRoom(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToRoomResponse(room))
}

func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.HostID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "host_id is required")
	}

	room, err := roomFromRequest(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid amenities")
	}
	room.ID = id
	if err := h.svc.UpdateRoom(c.Request().Context(), req.HostID, room); err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotRoomHost):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToRoomResponse(room))
}

func (h *RoomHandler) DeactivateRoom(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	hostID, err := strconv.ParseUint(c.QueryParam("host_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "host_id is required")
	}

	if err := h.svc.DeactivateRoom(c.Request().Context(), uint(hostID), id); err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotRoomHost):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *RoomHandler) SearchRooms(c echo.Context) error {
	in := service.RoomSearchInput{State: c.QueryParam("state")}

	if s := c.QueryParam("guests"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid guests")
		}
		in.Guests = v
	}
	if s := c.QueryParam("min_price"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid min_price")
		}
		in.MinPrice = v
	}
	if s := c.QueryParam("max_price"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid max_price")
		}
		in.MaxPrice = &v
	}
	if s := c.QueryParam("min_rating"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid min_rating")
		}
		in.MinRating = v
	}
	if s := c.QueryParam("check_in"); s != "" {
		t, err := dto.ParseDate(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		in.StartDate = &t
	}
	if s := c.QueryParam("check_out"); s != "" {
		t, err := dto.ParseDate(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		in.EndDate = &t
	}
	if s := c.QueryParam("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		in.Limit = v
	}
	if s := c.QueryParam("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid offset")
		}
		in.Offset = v
	}

	rooms, err := h.svc.Search(c.Request().Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDateOrder),
			errors.Is(err, service.ErrZeroLengthStay):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	resp := make([]dto.RoomResponse, len(rooms))
	for i, r := range rooms {
		resp[i] = dto.ToRoomResponse(&r)
	}

	return c.JSON(http.StatusOK, resp)
}
