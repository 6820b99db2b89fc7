//go:build integration

package service_test

import (
	"sync"
	"testing"
	"time"

	"github.com/Team-FBI/WPS/internal/models"
	"github.com/Team-FBI/WPS/internal/repository"
	"github.com/Team-FBI/WPS/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTripService() service.TripService {
	return service.NewTripService(repository.NewTripRepository(testDB), nil)
}

func createTestTrip(t *testing.T, hostID uint) *models.Trip {
	t.Helper()
	trip := &models.Trip{HostID: hostID, Name: "Old town walking tour", MaxGuests: 6, Price: 25, Active: true}
	require.NoError(t, testDB.Create(trip).Error)
	return trip
}

func createPastSchedule(t *testing.T, tripID uint, guestCount int) *models.TripSchedule {
	t.Helper()
	schedule := &models.TripSchedule{
		TripID:     tripID,
		StartAt:    time.Now().Add(-48 * time.Hour),
		Capacity:   6,
		GuestCount: guestCount,
		Active:     true,
	}
	require.NoError(t, testDB.Create(schedule).Error)
	return schedule
}

func createActiveTripReservation(t *testing.T, trip *models.Trip, schedule *models.TripSchedule, userID uint, guests int) *models.TripReservation {
	t.Helper()
	reservation := &models.TripReservation{
		ScheduleID: schedule.ID,
		TripID:     trip.ID,
		UserID:     userID,
		Guests:     guests,
		Status:     models.StatusActive,
	}
	require.NoError(t, testDB.Create(reservation).Error)
	return reservation
}

// Two concurrent submits on the same reservation; only one review may land.
func TestConcurrentTripDoubleReview(t *testing.T) {
	cleanTables()
	host := createTestUser(t, "host@example.com")
	guest := createTestUser(t, "tripper@example.com")
	trip := createTestTrip(t, host.ID)
	schedule := createPastSchedule(t, trip.ID, 1)
	reservation := createActiveTripReservation(t, trip, schedule, guest.ID, 1)

	svc := newTripService()
	review := service.ReviewInput{Accuracy: 5, Location: 4, Communication: 5, Checkin: 4, Clean: 5, Value: 4}

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.SubmitReview(t.Context(), reservation.ID, guest.ID, review)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	reviewed, rejected := 0, 0
	for err := range errs {
		if err == nil {
			reviewed++
			continue
		}
		assert.ErrorIs(t, err, service.ErrReservationState)
		rejected++
	}
	assert.Equal(t, 1, reviewed)
	assert.Equal(t, 1, rejected)

	var scored []models.TripReservation
	require.NoError(t, testDB.Where("trip_id = ? AND status = ?", trip.ID, models.StatusReviewed).Find(&scored).Error)
	assert.Len(t, scored, 1)

	var updated models.Trip
	require.NoError(t, testDB.First(&updated, trip.ID).Error)
	assert.InDelta(t, review.Average(), updated.RatingScore, 0.001)
}

// Two concurrent cancels on the same reservation; seats come back once.
func TestConcurrentTripDoubleCancel(t *testing.T) {
	cleanTables()
	host := createTestUser(t, "host@example.com")
	guest := createTestUser(t, "tripper@example.com")
	trip := createTestTrip(t, host.ID)
	schedule := createPastSchedule(t, trip.ID, 2)
	reservation := createActiveTripReservation(t, trip, schedule, guest.ID, 2)

	svc := newTripService()

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.CancelReservation(t.Context(), reservation.ID, guest.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	cancelled, rejected := 0, 0
	for err := range errs {
		if err == nil {
			cancelled++
			continue
		}
		assert.ErrorIs(t, err, service.ErrReservationState)
		rejected++
	}
	assert.Equal(t, 1, cancelled)
	assert.Equal(t, 1, rejected)

	var updated models.TripSchedule
	require.NoError(t, testDB.First(&updated, schedule.ID).Error)
	assert.Equal(t, 0, updated.GuestCount)
}

// Concurrent reviews on two reservations of the same trip both land, and
// the final rating is the mean over both score sets.
func TestConcurrentTripReviewsSameTrip(t *testing.T) {
	cleanTables()
	host := createTestUser(t, "host@example.com")
	first := createTestUser(t, "tripper-a@example.com")
	second := createTestUser(t, "tripper-b@example.com")
	trip := createTestTrip(t, host.ID)

	resA := createActiveTripReservation(t, trip, createPastSchedule(t, trip.ID, 1), first.ID, 1)
	resB := createActiveTripReservation(t, trip, createPastSchedule(t, trip.ID, 1), second.ID, 1)

	svc := newTripService()

	type submit struct {
		reservationID uint
		userID        uint
		review        service.ReviewInput
	}
	submits := []submit{
		{resA.ID, first.ID, service.ReviewInput{Accuracy: 5, Location: 5, Communication: 5, Checkin: 5, Clean: 5, Value: 5}},
		{resB.ID, second.ID, service.ReviewInput{Accuracy: 4, Location: 4, Communication: 4, Checkin: 4, Clean: 4, Value: 4}},
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(submits))
	wg.Add(len(submits))
	for _, sub := range submits {
		go func(sub submit) {
			defer wg.Done()
			_, err := svc.SubmitReview(t.Context(), sub.reservationID, sub.userID, sub.review)
			errs <- err
		}(sub)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	var updated models.Trip
	require.NoError(t, testDB.First(&updated, trip.ID).Error)
	assert.InDelta(t, 4.5, updated.RatingScore, 0.001)
}
