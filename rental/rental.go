package rental

import (
	"errors"
	"math"
	"time"

	"vroomly/dates"
	"vroomly/models"
)

// ErrReturnBeforePickup rejects an extension whose new return date does not
// fall after the booking's pickup date.
var ErrReturnBeforePickup = errors.New("return date must be after pickup date")

// Quote is the price of a prospective rental. A zero Quote means "no valid
// quote yet": the user has not picked a return date after the pickup date.
// That is an ordinary state of the booking form, not an error.
type Quote struct {
	Days  int     `json:"days"`
	Total float64 `json:"total"`
}

// Compute prices a rental between two calendar dates at the given daily
// rate. Day boundaries use calendar-date subtraction, so any partial day
// rounds up to a whole one.
func Compute(pickup, ret time.Time, dailyRate float64) Quote {
	if !ret.After(pickup) {
		return Quote{}
	}
	days := int(math.Ceil(ret.Sub(pickup).Hours() / 24))
	return Quote{Days: days, Total: float64(days) * dailyRate}
}

// ComputeStrings prices a rental given the app's "DD-MM-YYYY" date strings.
func ComputeStrings(pickupStr, returnStr string, dailyRate float64) (Quote, error) {
	pickup, err := dates.Parse(pickupStr)
	if err != nil {
		return Quote{}, err
	}
	ret, err := dates.Parse(returnStr)
	if err != nil {
		return Quote{}, err
	}
	return Compute(pickup, ret, dailyRate), nil
}

// DailyRate reconstructs the daily rate of an existing booking. Records
// written before the rate was stored carry only the total, so fall back to
// deriving it; repeated extensions on such records can accumulate float
// error, which is why new records store the rate.
func DailyRate(rec models.Booking) float64 {
	if rec.DailyRate > 0 {
		return rec.DailyRate
	}
	if rec.DaysDifference <= 0 {
		return 0
	}
	return rec.TotalAmount / float64(rec.DaysDifference)
}

// ReQuoteForExtension prices an existing booking against a new return date,
// keeping the booking's original daily rate.
func ReQuoteForExtension(rec models.Booking, newReturn time.Time) (Quote, error) {
	pickup, err := dates.Parse(rec.PickupDate)
	if err != nil {
		return Quote{}, err
	}
	if !newReturn.After(pickup) {
		return Quote{}, ErrReturnBeforePickup
	}
	return Compute(pickup, newReturn, DailyRate(rec)), nil
}
