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

type mockTripService struct {
	createTripFn     func(ctx context.Context, trip *models.Trip) error
	getTripFn        func(ctx context.Context, id uint) (*models.Trip, error)
	listTripsFn      func(ctx context.Context, state, category string) ([]models.Trip, error)
	createScheduleFn func(ctx context.Context, hostID uint, schedule *models.TripSchedule) error
	listSchedulesFn  func(ctx context.Context, tripID uint) ([]models.TripSchedule, error)
	reserveFn        func(ctx context.Context, scheduleID, userID uint, guests int) (*models.TripReservation, error)
	cancelFn         func(ctx context.Context, reservationID, userID uint) (*models.TripReservation, error)
	reviewFn         func(ctx context.Context, reservationID, userID uint, in service.ReviewInput) (float64, error)
}

func (m *mockTripService) CreateTrip(ctx context.Context, trip *models.Trip) error {
	return m.createTripFn(ctx, trip)
}
func (m *mockTripService) GetTrip(ctx context.Context, id uint) (*models.Trip, error) {
	return m.getTripFn(ctx, id)
}
func (m *mockTripService) ListTrips(ctx context.Context, state, category string) ([]models.Trip, error) {
	return m.listTripsFn(ctx, state, category)
}
func (m *mockTripService) CreateSchedule(ctx context.Context, hostID uint, schedule *models.TripSchedule) error {
	return m.createScheduleFn(ctx, hostID, schedule)
}
func (m *mockTripService) ListSchedules(ctx context.Context, tripID uint) ([]models.TripSchedule, error) {
	return m.listSchedulesFn(ctx, tripID)
}
func (m *mockTripService) ReserveSeats(ctx context.Context, scheduleID, userID uint, guests int) (*models.TripReservation, error) {
	return m.reserveFn(ctx, scheduleID, userID, guests)
}
func (m *mockTripService) CancelReservation(ctx context.Context, reservationID, userID uint) (*models.TripReservation, error) {
	return m.cancelFn(ctx, reservationID, userID)
}
func (m *mockTripService) SubmitReview(ctx context.Context, reservationID, userID uint, in service.ReviewInput) (float64, error) {
	return m.reviewFn(ctx, reservationID, userID, in)
}

func newTripContext(method, target, body, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestReserveSeats_Handler_Success(t *testing.T) {
	svc := &mockTripService{
		reserveFn: func(ctx context.Context, scheduleID, userID uint, guests int) (*models.TripReservation, error) {
			return &models.TripReservation{
				ID:         4,
				ScheduleID: scheduleID,
				TripID:     2,
				UserID:     userID,
				Guests:     guests,
				Status:     models.StatusActive,
				CreatedAt:  time.Now(),
			}, nil
		},
	}

	body := `{"user_id":7,"guests":2}`
	c, rec := newTripContext(http.MethodPost, "/api/v1/schedules/5/reservations", body, "5")

	h := NewTripHandler(svc)
	err := h.ReserveSeats(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.TripReservationResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(5), resp.ScheduleID)
	assert.Equal(t, 2, resp.Guests)
	assert.Equal(t, models.StatusActive, resp.Status)
}

func TestReserveSeats_Handler_ScheduleFull(t *testing.T) {
	svc := &mockTripService{
		reserveFn: func(ctx context.Context, scheduleID, userID uint, guests int) (*models.TripReservation, error) {
			return nil, service.ErrScheduleFull
		},
	}

	body := `{"user_id":7,"guests":2}`
	c, _ := newTripContext(http.MethodPost, "/api/v1/schedules/5/reservations", body, "5")

	h := NewTripHandler(svc)
	err := h.ReserveSeats(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestReserveSeats_Handler_AlreadyBooked(t *testing.T) {
	svc := &mockTripService{
		reserveFn: func(ctx context.Context, scheduleID, userID uint, guests int) (*models.TripReservation, error) {
			return nil, service.ErrAlreadyBooked
		},
	}

	body := `{"user_id":7,"guests":1}`
	c, _ := newTripContext(http.MethodPost, "/api/v1/schedules/5/reservations", body, "5")

	h := NewTripHandler(svc)
	err := h.ReserveSeats(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestListSchedules_Handler_SeatsAvailable(t *testing.T) {
	svc := &mockTripService{
		listSchedulesFn: func(ctx context.Context, tripID uint) ([]models.TripSchedule, error) {
			return []models.TripSchedule{
				{ID: 1, TripID: tripID, Capacity: 8, GuestCount: 5, Active: true},
			}, nil
		},
	}

	c, rec := newTripContext(http.MethodGet, "/api/v1/trips/2/schedules", "", "2")

	h := NewTripHandler(svc)
	err := h.ListSchedules(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.ScheduleResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, 3, resp[0].SeatsAvailable)
}

func TestTripSubmitReview_Handler_NotStarted(t *testing.T) {
	svc := &mockTripService{
		reviewFn: func(ctx context.Context, reservationID, userID uint, in service.ReviewInput) (float64, error) {
			return 0, service.ErrTripNotStarted
		},
	}

	body := `{"user_id":7,"accuracy":5,"location":4,"communication":5,"checkin":3,"clean":4,"value":5}`
	c, _ := newTripContext(http.MethodPost, "/api/v1/trip-reservations/4/review", body, "4")

	h := NewTripHandler(svc)
	err := h.SubmitReview(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}
