package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Team-FBI/WPS/internal/dto"
	"github.com/Team-FBI/WPS/internal/models"
	"github.com/Team-FBI/WPS/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock ReservationService ---

type mockReservationService struct {
	createFn    func(ctx context.Context, in service.ReservationInput) (*models.Reservation, error)
	reviewFn    func(ctx context.Context, reservationID, userID uint, in service.ReviewInput) (float64, error)
	cancelFn    func(ctx context.Context, reservationID, userID uint) (*models.Reservation, error)
	archiveFn   func(ctx context.Context, reservationID uint) (*models.Reservation, error)
	recomputeFn func(ctx context.Context, roomID uint) (models.RatingSummary, error)
	getFn       func(ctx context.Context, id uint) (*models.Reservation, error)
	byRoomFn    func(ctx context.Context, roomID uint, status *models.ReservationStatus) ([]models.Reservation, error)
	byUserFn    func(ctx context.Context, userID uint) ([]models.Reservation, error)
}

func (m *mockReservationService) CreateReservation(ctx context.Context, in service.ReservationInput) (*models.Reservation, error) {
	return m.createFn(ctx, in)
}
func (m *mockReservationService) SubmitReview(ctx context.Context, reservationID, userID uint, in service.ReviewInput) (float64, error) {
	return m.reviewFn(ctx, reservationID, userID, in)
}
func (m *mockReservationService) CancelReservation(ctx context.Context, reservationID, userID uint) (*models.Reservation, error) {
	return m.cancelFn(ctx, reservationID, userID)
}
func (m *mockReservationService) ArchiveReservation(ctx context.Context, reservationID uint) (*models.Reservation, error) {
	return m.archiveFn(ctx, reservationID)
}
func (m *mockReservationService) RecomputeRoomRating(ctx context.Context, roomID uint) (models.RatingSummary, error) {
	return m.recomputeFn(ctx, roomID)
}
func (m *mockReservationService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return m.getFn(ctx, id)
}
func (m *mockReservationService) ListByRoom(ctx context.Context, roomID uint, status *models.ReservationStatus) ([]models.Reservation, error) {
	return m.byRoomFn(ctx, roomID, status)
}
func (m *mockReservationService) ListByUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	return m.byUserFn(ctx, userID)
}

func newReservationContext(method, target, body, roomID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(roomID)
	return c, rec
}

// --- Tests ---

func TestCreateReservation_Handler_Success(t *testing.T) {
	svc := &mockReservationService{
		createFn: func(ctx context.Context, in service.ReservationInput) (*models.Reservation, error) {
			return &models.Reservation{
				ID:            1,
				RoomID:        in.RoomID,
				UserID:        in.UserID,
				ReferenceCode: "7a1e2e4e-0000-0000-0000-000000000001",
				StartDate:     in.StartDate,
				EndDate:       in.EndDate,
				Guests:        in.Guests,
				Status:        models.StatusActive,
				CreatedAt:     time.Now(),
			}, nil
		},
	}

	body := `{"user_id":7,"start_date":"2026-07-01","end_date":"2026-07-04","guests":2}`
	c, rec := newReservationContext(http.MethodPost, "/api/v1/rooms/3/reservations", body, "3")

	h := NewReservationHandler(svc)
	err := h.CreateReservation(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.ReservationResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(3), resp.RoomID)
	assert.Equal(t, uint(7), resp.UserID)
	assert.Equal(t, models.StatusActive, resp.Status)
	assert.Equal(t, 3, resp.Nights)
}

func TestCreateReservation_Handler_DateConflict(t *testing.T) {
	svc := &mockReservationService{
		createFn: func(ctx context.Context, in service.ReservationInput) (*models.Reservation, error) {
			return nil, service.ErrDateConflict
		},
	}

	body := `{"user_id":7,"start_date":"2026-07-01","end_date":"2026-07-04"}`
	c, _ := newReservationContext(http.MethodPost, "/api/v1/rooms/3/reservations", body, "3")

	h := NewReservationHandler(svc)
	err := h.CreateReservation(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestCreateReservation_Handler_BadDate(t *testing.T) {
	body := `{"user_id":7,"start_date":"July 1st","end_date":"2026-07-04"}`
	c, _ := newReservationContext(http.MethodPost, "/api/v1/rooms/3/reservations", body, "3")

	h := NewReservationHandler(&mockReservationService{})
	err := h.CreateReservation(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateReservation_Handler_MissingUser(t *testing.T) {
	body := `{"start_date":"2026-07-01","end_date":"2026-07-04"}`
	c, _ := newReservationContext(http.MethodPost, "/api/v1/rooms/3/reservations", body, "3")

	h := NewReservationHandler(&mockReservationService{})
	err := h.CreateReservation(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateReservation_Handler_StayTooShort(t *testing.T) {
	svc := &mockReservationService{
		createFn: func(ctx context.Context, in service.ReservationInput) (*models.Reservation, error) {
			return nil, service.ErrStayLength
		},
	}

	body := `{"user_id":7,"start_date":"2026-07-01","end_date":"2026-07-02"}`
	c, _ := newReservationContext(http.MethodPost, "/api/v1/rooms/3/reservations", body, "3")

	h := NewReservationHandler(svc)
	err := h.CreateReservation(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestSubmitReview_Handler_Success(t *testing.T) {
	svc := &mockReservationService{
		reviewFn: func(ctx context.Context, reservationID, userID uint, in service.ReviewInput) (float64, error) {
			assert.Equal(t, uint(9), reservationID)
			assert.Equal(t, uint(7), userID)
			return 4.33, nil
		},
	}

	body := `{"user_id":7,"accuracy":5,"location":4,"communication":5,"checkin":3,"clean":4,"value":5}`
	c, rec := newReservationContext(http.MethodPost, "/api/v1/reservations/9/review", body, "9")

	h := NewReservationHandler(svc)
	err := h.SubmitReview(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ReviewResultResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(9), resp.ReservationID)
	assert.Equal(t, 4.33, resp.RoomRating)
}

func TestSubmitReview_Handler_NotOwner(t *testing.T) {
	svc := &mockReservationService{
		reviewFn: func(ctx context.Context, reservationID, userID uint, in service.ReviewInput) (float64, error) {
			return 0, service.ErrNotReservationOwner
		},
	}

	body := `{"user_id":8,"accuracy":5,"location":4,"communication":5,"checkin":3,"clean":4,"value":5}`
	c, _ := newReservationContext(http.MethodPost, "/api/v1/reservations/9/review", body, "9")

	h := NewReservationHandler(svc)
	err := h.SubmitReview(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestSubmitReview_Handler_StayNotStarted(t *testing.T) {
	svc := &mockReservationService{
		reviewFn: func(ctx context.Context, reservationID, userID uint, in service.ReviewInput) (float64, error) {
			return 0, service.ErrStayNotStarted
		},
	}

	body := `{"user_id":7,"accuracy":5,"location":4,"communication":5,"checkin":3,"clean":4,"value":5}`
	c, _ := newReservationContext(http.MethodPost, "/api/v1/reservations/9/review", body, "9")

	h := NewReservationHandler(svc)
	err := h.SubmitReview(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestCancelReservation_Handler_Success(t *testing.T) {
	svc := &mockReservationService{
		cancelFn: func(ctx context.Context, reservationID, userID uint) (*models.Reservation, error) {
			return &models.Reservation{
				ID:        reservationID,
				UserID:    userID,
				StartDate: date(2026, 7, 1),
				EndDate:   date(2026, 7, 4),
				Status:    models.StatusCancelled,
			}, nil
		},
	}

	c, rec := newReservationContext(http.MethodDelete, "/api/v1/reservations/9?user_id=7", "", "9")

	h := NewReservationHandler(svc)
	err := h.CancelReservation(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ReservationResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusCancelled, resp.Status)
}

func TestCancelReservation_Handler_WrongState(t *testing.T) {
	svc := &mockReservationService{
		cancelFn: func(ctx context.Context, reservationID, userID uint) (*models.Reservation, error) {
			return nil, service.ErrReservationState
		},
	}

	c, _ := newReservationContext(http.MethodDelete, "/api/v1/reservations/9?user_id=7", "", "9")

	h := NewReservationHandler(svc)
	err := h.CancelReservation(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestRecomputeRating_Handler(t *testing.T) {
	svc := &mockReservationService{
		recomputeFn: func(ctx context.Context, roomID uint) (models.RatingSummary, error) {
			return models.RatingSummary{Accuracy: 4.5, Total: 4.28}, nil
		},
	}

	c, rec := newReservationContext(http.MethodPost, "/api/v1/rooms/3/rating", "", "3")

	h := NewReservationHandler(svc)
	err := h.RecomputeRating(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.RatingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4.28, resp.Total)
}

func TestListByRoom_Handler_StatusFilter(t *testing.T) {
	svc := &mockReservationService{
		byRoomFn: func(ctx context.Context, roomID uint, status *models.ReservationStatus) ([]models.Reservation, error) {
			if assert.NotNil(t, status) {
				assert.Equal(t, models.StatusActive, *status)
			}
			return []models.Reservation{
				{ID: 1, RoomID: roomID, StartDate: date(2026, 7, 1), EndDate: date(2026, 7, 4), Status: models.StatusActive},
			}, nil
		},
	}

	c, rec := newReservationContext(http.MethodGet, "/api/v1/rooms/3/reservations?status=active", "", "3")

	h := NewReservationHandler(svc)
	err := h.ListByRoom(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.ReservationResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "2026-07-01", resp[0].StartDate)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
