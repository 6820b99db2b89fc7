package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateStayDates(t *testing.T) {
	assert.NoError(t, ValidateStayDates(date(2026, 7, 1), date(2026, 7, 4)))
	assert.ErrorIs(t, ValidateStayDates(date(2026, 7, 4), date(2026, 7, 1)), ErrDateOrder)
	assert.ErrorIs(t, ValidateStayDates(date(2026, 7, 1), date(2026, 7, 1)), ErrZeroLengthStay)
}

func TestStayNights(t *testing.T) {
	assert.Equal(t, 1, StayNights(date(2026, 7, 1), date(2026, 7, 2)))
	assert.Equal(t, 3, StayNights(date(2026, 7, 1), date(2026, 7, 4)))
	// Spans a month boundary.
	assert.Equal(t, 4, StayNights(date(2026, 7, 30), date(2026, 8, 3)))
}

func TestValidateStayLength(t *testing.T) {
	assert.NoError(t, ValidateStayLength(3, 1, 7))
	// Bounds are inclusive on both ends.
	assert.NoError(t, ValidateStayLength(1, 1, 7))
	assert.NoError(t, ValidateStayLength(7, 1, 7))
	assert.ErrorIs(t, ValidateStayLength(0, 1, 7), ErrStayLength)
	assert.ErrorIs(t, ValidateStayLength(8, 1, 7), ErrStayLength)
	// MaxStay 0 means no upper bound.
	assert.NoError(t, ValidateStayLength(365, 1, 0))
}

func TestValidateGuests(t *testing.T) {
	assert.NoError(t, ValidateGuests(2, 4))
	assert.NoError(t, ValidateGuests(4, 4))
	assert.ErrorIs(t, ValidateGuests(5, 4), ErrCapacityExceeded)
	// Capacity 0 means no limit.
	assert.NoError(t, ValidateGuests(20, 0))
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{
			name:   "disjoint",
			aStart: date(2026, 7, 1), aEnd: date(2026, 7, 3),
			bStart: date(2026, 7, 10), bEnd: date(2026, 7, 12),
			want: false,
		},
		{
			name:   "back to back checkout day reused",
			aStart: date(2026, 7, 1), aEnd: date(2026, 7, 3),
			bStart: date(2026, 7, 3), bEnd: date(2026, 7, 5),
			want: false,
		},
		{
			name:   "one night shared",
			aStart: date(2026, 7, 1), aEnd: date(2026, 7, 4),
			bStart: date(2026, 7, 3), bEnd: date(2026, 7, 6),
			want: true,
		},
		{
			name:   "containment",
			aStart: date(2026, 7, 1), aEnd: date(2026, 7, 10),
			bStart: date(2026, 7, 3), bEnd: date(2026, 7, 5),
			want: true,
		},
		{
			name:   "identical ranges",
			aStart: date(2026, 7, 1), aEnd: date(2026, 7, 4),
			bStart: date(2026, 7, 1), bEnd: date(2026, 7, 4),
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}
