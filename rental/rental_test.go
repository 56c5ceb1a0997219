package rental

import (
	"errors"
	"math"
	"testing"
	"time"

	"vroomly/dates"
	"vroomly/models"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dates.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestComputeMonthLongRental(t *testing.T) {
	// 01-06-2024 to 01-07-2024 at 150/day
	q := Compute(mustParse(t, "01-06-2024"), mustParse(t, "01-07-2024"), 150)
	if q.Days != 30 {
		t.Fatalf("days: got %d, want 30", q.Days)
	}
	if q.Total != 4500 {
		t.Fatalf("total: got %v, want 4500", q.Total)
	}
}

func TestComputeSingleDay(t *testing.T) {
	q := Compute(mustParse(t, "01-06-2024"), mustParse(t, "02-06-2024"), 140)
	if q.Days != 1 || q.Total != 140 {
		t.Fatalf("got %+v", q)
	}
}

func TestComputeReturnNotAfterPickup(t *testing.T) {
	pickup := mustParse(t, "10-06-2024")
	for _, ret := range []string{"10-06-2024", "09-06-2024", "01-01-2020"} {
		q := Compute(pickup, mustParse(t, ret), 300)
		if q.Days != 0 || q.Total != 0 {
			t.Fatalf("return %s: expected zero quote, got %+v", ret, q)
		}
	}
}

func TestComputeRateReconstructs(t *testing.T) {
	rate := 179.99
	q := Compute(mustParse(t, "03-06-2024"), mustParse(t, "17-06-2024"), rate)
	if q.Days == 0 {
		t.Fatal("expected a quote")
	}
	if got := q.Total / float64(q.Days); math.Abs(got-rate) > 1e-9 {
		t.Fatalf("total/days = %v, want %v", got, rate)
	}
}

func TestComputeStrings(t *testing.T) {
	q, err := ComputeStrings("01-06-2024", "01-07-2024", 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Days != 30 || q.Total != 4500 {
		t.Fatalf("got %+v", q)
	}
}

func TestComputeStringsInvalidDate(t *testing.T) {
	if _, err := ComputeStrings("junk", "01-07-2024", 150); !errors.Is(err, dates.ErrInvalidDate) {
		t.Fatalf("got %v", err)
	}
	if _, err := ComputeStrings("01-06-2024", "31-02-2024", 150); !errors.Is(err, dates.ErrInvalidDate) {
		t.Fatalf("got %v", err)
	}
}

func TestReQuoteForExtension(t *testing.T) {
	// booked 5 days at 300/day, extend by 2 days
	rec := models.Booking{
		PickupDate:     "01-06-2024",
		ReturnDate:     "06-06-2024",
		DaysDifference: 5,
		TotalAmount:    1500,
	}
	q, err := ReQuoteForExtension(rec, mustParse(t, "08-06-2024"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Days != 7 {
		t.Fatalf("days: got %d, want 7", q.Days)
	}
	if q.Total != 2100 {
		t.Fatalf("total: got %v, want 2100", q.Total)
	}
	if rate := q.Total / float64(q.Days); rate != 300 {
		t.Fatalf("derived rate drifted: %v", rate)
	}
}

func TestReQuoteUsesStoredRate(t *testing.T) {
	rec := models.Booking{
		PickupDate:     "01-06-2024",
		DaysDifference: 3,
		TotalAmount:    540.0000001, // stale total, stored rate wins
		DailyRate:      180,
	}
	q, err := ReQuoteForExtension(rec, mustParse(t, "11-06-2024"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Days != 10 || q.Total != 1800 {
		t.Fatalf("got %+v", q)
	}
}

func TestReQuoteRejectsReturnBeforePickup(t *testing.T) {
	rec := models.Booking{
		PickupDate:     "10-06-2024",
		DaysDifference: 4,
		TotalAmount:    600,
	}
	for _, ret := range []string{"10-06-2024", "01-06-2024"} {
		if _, err := ReQuoteForExtension(rec, mustParse(t, ret)); !errors.Is(err, ErrReturnBeforePickup) {
			t.Fatalf("return %s: got %v", ret, err)
		}
	}
}

func TestDailyRateFallback(t *testing.T) {
	rec := models.Booking{DaysDifference: 5, TotalAmount: 1500}
	if got := DailyRate(rec); got != 300 {
		t.Fatalf("got %v", got)
	}
	if got := DailyRate(models.Booking{}); got != 0 {
		t.Fatalf("got %v", got)
	}
}
