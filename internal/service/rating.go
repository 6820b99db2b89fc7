package service

import (
	"errors"
	"math"

	"github.com/Team-FBI/WPS/internal/models"
)

var ErrScoreRange = errors.New("scores must be six integers between 0 and 5")

const MaxScore = 5

// ReviewInput carries the six category scores of one submitted review.
// All categories are required; partial reviews are rejected at Validate.
type ReviewInput struct {
	Accuracy      int
	Location      int
	Communication int
	Checkin       int
	Clean         int
	Value         int
}

func (in ReviewInput) values() [6]int {
	return [6]int{in.Accuracy, in.Location, in.Communication, in.Checkin, in.Clean, in.Value}
}

func (in ReviewInput) Validate() error {
	for _, v := range in.values() {
		if v < 0 || v > MaxScore {
			return ErrScoreRange
		}
	}
	return nil
}

// Average is the flat mean of the six scores, stored per reservation.
func (in ReviewInput) Average() float64 {
	sum := 0
	for _, v := range in.values() {
		sum += v
	}
	return Round2(float64(sum) / 6)
}

// Scores converts the input to the nullable model representation.
func (in ReviewInput) Scores() models.ReviewScores {
	v := in.values()
	return models.ReviewScores{
		AccuracyScore:      &v[0],
		LocationScore:      &v[1],
		CommunicationScore: &v[2],
		CheckinScore:       &v[3],
		CleanScore:         &v[4],
		ValueScore:         &v[5],
	}
}

// AggregateScores recomputes a resource's rating from its scored
// reservations. Each category is averaged over the reservations that carry
// it, and Total is the unweighted mean of those per-category means, so a
// category with more samples never dominates. With no scored reservations
// every field is 0: "not yet rated" is a valid state, not an error.
// The computation is a pure function of its input and therefore idempotent.
func AggregateScores(scores []models.ReviewScores) models.RatingSummary {
	var sums, counts [6]float64

	for _, s := range scores {
		if !s.Scored() {
			continue
		}
		vals, ok := s.Values()
		for i := range vals {
			if ok[i] {
				sums[i] += float64(vals[i])
				counts[i]++
			}
		}
	}

	var means [6]float64
	var total float64
	populated := 0
	for i := range sums {
		if counts[i] == 0 {
			continue
		}
		m := sums[i] / counts[i]
		means[i] = m
		total += m
		populated++
	}
	if populated > 0 {
		total /= float64(populated)
	}

	return models.RatingSummary{
		Accuracy:      Round2(means[0]),
		Location:      Round2(means[1]),
		Communication: Round2(means[2]),
		Checkin:       Round2(means[3]),
		Clean:         Round2(means[4]),
		Value:         Round2(means[5]),
		Total:         Round2(total),
	}
}

// Round2 rounds to two decimals using round-half-to-even.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
