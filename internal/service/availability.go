package service

import (
	"errors"
	"time"
)

var (
	ErrDateOrder        = errors.New("start date is after end date")
	ErrZeroLengthStay   = errors.New("start and end date are equal, stay at least one night")
	ErrStayLength       = errors.New("stay length is outside the allowed bounds")
	ErrCapacityExceeded = errors.New("guest count exceeds capacity")
	ErrDateConflict     = errors.New("dates overlap an existing reservation")
)

// ValidateStayDates checks the ordering of a candidate [start, end) range.
// A start strictly after end and a zero-length stay are distinct failures
// so callers can surface different messages.
func ValidateStayDates(start, end time.Time) error {
	if start.After(end) {
		return ErrDateOrder
	}
	if !start.Before(end) {
		return ErrZeroLengthStay
	}
	return nil
}

// StayNights returns the number of nights in [start, end). Both arguments
// are expected to be date-only (midnight) values.
func StayNights(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// ValidateStayLength checks nights against a room's stay policy. Bounds
// are inclusive; maxStay 0 means unlimited.
func ValidateStayLength(nights, minStay, maxStay int) error {
	if nights < minStay {
		return ErrStayLength
	}
	if maxStay > 0 && nights > maxStay {
		return ErrStayLength
	}
	return nil
}

// ValidateGuests checks a party size against capacity. Capacity 0 means
// no limit, mirroring the MaxStay sentinel.
func ValidateGuests(guests, capacity int) error {
	if capacity > 0 && guests > capacity {
		return ErrCapacityExceeded
	}
	return nil
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. Ranges that merely touch (one ends where the
// other starts) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
