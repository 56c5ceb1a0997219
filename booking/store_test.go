package booking

import (
	"context"
	"errors"
	"testing"

	"vroomly/models"
	"vroomly/rental"
)

// fakeKV is an in-memory stand-in for the redis store.
type fakeKV struct {
	data   map[string]string
	writes int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	return f.data[key], nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.writes++
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func testBooking(id string) models.Booking {
	return models.Booking{
		ID:             id,
		UserID:         "u1",
		CarID:          "car_1",
		CarName:        "BMW X5",
		CarType:        "SUV",
		CarYear:        "2006",
		PickupDate:     "01-06-2024",
		ReturnDate:     "06-06-2024",
		DaysDifference: 5,
		TotalAmount:    1500,
		DailyRate:      300,
		BookingDate:    "2024-05-20T10:00:00Z",
		Status:         models.StatusConfirmed,
	}
}

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeKV())

	if err := store.Create(ctx, testBooking("booking_1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create(ctx, testBooking("booking_2")); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := store.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(list))
	}
	// insertion order preserved
	if list[0].ID != "booking_1" || list[1].ID != "booking_2" {
		t.Fatalf("order broke: %s, %s", list[0].ID, list[1].ID)
	}
}

func TestListEmpty(t *testing.T) {
	store := NewStore(newFakeKV())
	list, err := store.List(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty, got %d", len(list))
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := NewStore(kv)
	if err := store.Create(ctx, testBooking("booking_1")); err != nil {
		t.Fatal(err)
	}
	before := kv.data[bookingsKey("u1")]
	writesBefore := kv.writes

	status := models.StatusCancelled
	if err := store.Update(ctx, "u1", "booking_missing", Patch{Status: &status}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if kv.data[bookingsKey("u1")] != before {
		t.Fatal("collection changed for an unknown id")
	}
	if kv.writes != writesBefore {
		t.Fatal("unknown id should not write through")
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeKV())
	if err := store.Create(ctx, testBooking("booking_1")); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := store.Cancel(ctx, "u1", "booking_1"); err != nil {
			t.Fatalf("cancel #%d: %v", i+1, err)
		}
	}

	rec, err := store.Get(ctx, "u1", "booking_1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Status != models.StatusCancelled {
		t.Fatalf("status: %s", rec.Status)
	}
	want := testBooking("booking_1")
	if rec.ReturnDate != want.ReturnDate || rec.TotalAmount != want.TotalAmount || rec.DaysDifference != want.DaysDifference {
		t.Fatalf("cancel touched other fields: %+v", rec)
	}
}

func TestExtend(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeKV())
	if err := store.Create(ctx, testBooking("booking_1")); err != nil {
		t.Fatal(err)
	}

	// 5 days at 300 extended by 2 days
	rec, err := store.Extend(ctx, "u1", "booking_1", "08-06-2024")
	if err != nil {
		t.Fatalf("extend: %v", err)
	}
	if rec.DaysDifference != 7 || rec.TotalAmount != 2100 {
		t.Fatalf("got days=%d total=%v", rec.DaysDifference, rec.TotalAmount)
	}
	if rec.ReturnDate != "08-06-2024" {
		t.Fatalf("return date: %s", rec.ReturnDate)
	}

	// everything else is untouched, in the persisted copy too
	stored, err := store.Get(ctx, "u1", "booking_1")
	if err != nil {
		t.Fatal(err)
	}
	want := testBooking("booking_1")
	if stored.ID != want.ID || stored.CarID != want.CarID ||
		stored.PickupDate != want.PickupDate || stored.BookingDate != want.BookingDate {
		t.Fatalf("extend mutated immutable fields: %+v", stored)
	}
	if stored.DaysDifference != 7 || stored.TotalAmount != 2100 {
		t.Fatalf("extend not persisted: %+v", stored)
	}
	if got := stored.TotalAmount / float64(stored.DaysDifference); got != 300 {
		t.Fatalf("daily rate drifted to %v", got)
	}
}

func TestExtendRejectsBadDates(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeKV())
	if err := store.Create(ctx, testBooking("booking_1")); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Extend(ctx, "u1", "booking_1", "01-06-2024"); !errors.Is(err, rental.ErrReturnBeforePickup) {
		t.Fatalf("same-day return: got %v", err)
	}
	if _, err := store.Extend(ctx, "u1", "booking_1", "not-a-date"); err == nil {
		t.Fatal("expected error for malformed date")
	}

	// the record is unchanged after the rejections
	rec, _ := store.Get(ctx, "u1", "booking_1")
	if rec.DaysDifference != 5 || rec.TotalAmount != 1500 {
		t.Fatalf("rejected extend leaked a partial update: %+v", rec)
	}
}

func TestExtendCancelledRejected(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeKV())
	if err := store.Create(ctx, testBooking("booking_1")); err != nil {
		t.Fatal(err)
	}
	if err := store.Cancel(ctx, "u1", "booking_1"); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Extend(ctx, "u1", "booking_1", "10-06-2024"); !errors.Is(err, ErrCancelled) {
		t.Fatalf("got %v", err)
	}
}

func TestExtendUnknownID(t *testing.T) {
	store := NewStore(newFakeKV())
	if _, err := store.Extend(context.Background(), "u1", "booking_ghost", "10-06-2024"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeKV())

	rec := testBooking("booking_1")
	if err := store.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}
	other := testBooking("booking_2")
	other.UserID = "u2"
	if err := store.Create(ctx, other); err != nil {
		t.Fatal(err)
	}

	list, _ := store.List(ctx, "u1")
	if len(list) != 1 || list[0].ID != "booking_1" {
		t.Fatalf("u1 sees %d bookings", len(list))
	}
	if _, err := store.Get(ctx, "u1", "booking_2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-user read: %v", err)
	}
}
