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

type WishlistHandler struct {
	svc service.WishlistService
}

func NewWishlistHandler(svc service.WishlistService) *WishlistHandler {
	return &WishlistHandler{svc: svc}
}

func (h *WishlistHandler) RegisterRoutes(e *echo.Echo) {
	wishlists := e.Group("/api/v1/wishlists")
	wishlists.POST("", h.Create)
	wishlists.GET("/:id", h.Get)
	wishlists.PUT("/:id", h.Update)
	wishlists.DELETE("/:id", h.Delete)
	wishlists.PUT("/:id/rooms/:roomID", h.AddRoom)
	wishlists.DELETE("/:id/rooms/:roomID", h.RemoveRoom)
	wishlists.GET("/:id/valid-rooms", h.ValidRooms)

	e.GET("/api/v1/users/:id/wishlists", h.ListByAuthor)
}

func requesterID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	return uint(id), nil
}

func wishlistFromRequest(req dto.CreateWishlistRequest) (*models.Wishlist, error) {
	w := &models.Wishlist{
		AuthorID: req.AuthorID,
		Title:    req.Title,
		IsPublic: true,
		Adults:   req.Adults,
		Kids:     req.Kids,
		Infants:  req.Infants,
	}
	if req.IsPublic != nil {
		w.IsPublic = *req.IsPublic
	}
	if req.CheckIn != "" {
		t, err := dto.ParseDate(req.CheckIn)
		if err != nil {
			return nil, err
		}
		w.CheckIn = &t
	}
	if req.CheckOut != "" {
		t, err := dto.ParseDate(req.CheckOut)
		if err != nil {
			return nil, err
		}
		w.CheckOut = &t
	}
	return w, nil
}

func (h *WishlistHandler) Create(c echo.Context) error {
	var req dto.CreateWishlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.AuthorID == 0 || req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "author_id and title are required")
	}

	wishlist, err := wishlistFromRequest(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), wishlist); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToWishlistResponse(wishlist))
}

func (h *WishlistHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	// Anonymous readers may view public lists.
	var requester uint
	if s := c.QueryParam("user_id"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
		}
		requester = uint(v)
	}

	wishlist, err := h.svc.Get(c.Request().Context(), id, requester)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWishlistNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrWishlistPrivate):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToWishlistResponse(wishlist))
}

func (h *WishlistHandler) ListByAuthor(c echo.Context) error {
	authorID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	wishlists, err := h.svc.ListByAuthor(c.Request().Context(), authorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.WishlistResponse, len(wishlists))
	for i, w := range wishlists {
		resp[i] = dto.ToWishlistResponse(&w)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *WishlistHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CreateWishlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.AuthorID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "author_id is required")
	}

	wishlist, err := wishlistFromRequest(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	wishlist.ID = id
	if err := h.svc.Update(c.Request().Context(), req.AuthorID, wishlist); err != nil {
		return wishlistError(err)
	}

	return c.JSON(http.StatusOK, dto.ToWishlistResponse(wishlist))
}

func (h *WishlistHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	requester, err := requesterID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id, requester); err != nil {
		return wishlistError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *WishlistHandler) AddRoom(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	roomID, err := paramID(c, "roomID")
	if err != nil {
		return err
	}
	requester, err := requesterID(c)
	if err != nil {
		return err
	}

	if err := h.svc.AddRoom(c.Request().Context(), id, requester, roomID); err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return wishlistError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *WishlistHandler) RemoveRoom(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	roomID, err := paramID(c, "roomID")
	if err != nil {
		return err
	}
	requester, err := requesterID(c)
	if err != nil {
		return err
	}

	if err := h.svc.RemoveRoom(c.Request().Context(), id, requester, roomID); err != nil {
		return wishlistError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *WishlistHandler) ValidRooms(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var requester uint
	if s := c.QueryParam("user_id"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
		}
		requester = uint(v)
	}

	rooms, err := h.svc.ValidRooms(c.Request().Context(), id, requester)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDateOrder),
			errors.Is(err, service.ErrZeroLengthStay):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return wishlistError(err)
		}
	}

	resp := make([]dto.RoomResponse, len(rooms))
	for i, r := range rooms {
		resp[i] = dto.ToRoomResponse(&r)
	}

	return c.JSON(http.StatusOK, resp)
}

func wishlistError(err error) error {
	switch {
	case errors.Is(err, service.ErrWishlistNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWishlistPrivate):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotWishlistOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
