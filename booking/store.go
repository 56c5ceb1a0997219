package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"vroomly/dates"
	"vroomly/models"
	"vroomly/rental"
)

var (
	ErrNotFound  = errors.New("booking not found")
	ErrCancelled = errors.New("booking is cancelled")
)

// KV is the persistence collaborator: a key-value store holding each
// user's bookings as one JSON array. Every operation is a whole-collection
// read/modify/write; there are no partial or indexed updates.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

func bookingsKey(userID string) string {
	return "bookings:" + userID
}

// List returns the user's bookings in insertion order. A missing key is an
// empty collection, not an error.
func (s *Store) List(ctx context.Context, userID string) ([]models.Booking, error) {
	raw, err := s.kv.Get(ctx, bookingsKey(userID))
	if err != nil {
		return nil, fmt.Errorf("read bookings: %w", err)
	}
	if raw == "" {
		return []models.Booking{}, nil
	}
	var list []models.Booking
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return list, nil
}

func (s *Store) save(ctx context.Context, userID string, list []models.Booking) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	if err := s.kv.Set(ctx, bookingsKey(userID), string(data)); err != nil {
		return fmt.Errorf("write bookings: %w", err)
	}
	return nil
}

// Create appends the record and persists the whole collection immediately.
func (s *Store) Create(ctx context.Context, rec models.Booking) error {
	list, err := s.List(ctx, rec.UserID)
	if err != nil {
		return err
	}
	return s.save(ctx, rec.UserID, append(list, rec))
}

// Get looks a booking up by id.
func (s *Store) Get(ctx context.Context, userID, id string) (models.Booking, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return models.Booking{}, err
	}
	for _, rec := range list {
		if rec.ID == id {
			return rec, nil
		}
	}
	return models.Booking{}, ErrNotFound
}

// Patch carries the fields Update may replace. Nil fields are untouched.
type Patch struct {
	ReturnDate     *string
	DaysDifference *int
	TotalAmount    *float64
	Status         *string
}

// Update replaces the matching record's fields from patch and persists the
// whole collection. An unknown id is a silent no-op.
func (s *Store) Update(ctx context.Context, userID, id string, patch Patch) error {
	list, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	changed := false
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if patch.ReturnDate != nil {
			list[i].ReturnDate = *patch.ReturnDate
		}
		if patch.DaysDifference != nil {
			list[i].DaysDifference = *patch.DaysDifference
		}
		if patch.TotalAmount != nil {
			list[i].TotalAmount = *patch.TotalAmount
		}
		if patch.Status != nil {
			list[i].Status = *patch.Status
		}
		changed = true
		break
	}
	if !changed {
		return nil
	}
	return s.save(ctx, userID, list)
}

// Cancel marks the booking cancelled. Cancelling an already cancelled
// booking changes nothing; cancelled is terminal.
func (s *Store) Cancel(ctx context.Context, userID, id string) error {
	status := models.StatusCancelled
	return s.Update(ctx, userID, id, Patch{Status: &status})
}

// Extend moves the booking's return date and reprices it at its original
// daily rate. ReturnDate, DaysDifference and TotalAmount change as one
// unit; pickup date, car snapshot and booking date never do. Cancelled
// bookings cannot be extended.
func (s *Store) Extend(ctx context.Context, userID, id, newReturnDate string) (models.Booking, error) {
	rec, err := s.Get(ctx, userID, id)
	if err != nil {
		return models.Booking{}, err
	}
	if rec.Status == models.StatusCancelled {
		return models.Booking{}, ErrCancelled
	}
	newReturn, err := dates.Parse(newReturnDate)
	if err != nil {
		return models.Booking{}, err
	}
	quote, err := rental.ReQuoteForExtension(rec, newReturn)
	if err != nil {
		return models.Booking{}, err
	}
	ret := dates.Format(newReturn)
	err = s.Update(ctx, userID, id, Patch{
		ReturnDate:     &ret,
		DaysDifference: &quote.Days,
		TotalAmount:    &quote.Total,
	})
	if err != nil {
		return models.Booking{}, err
	}
	rec.ReturnDate = ret
	rec.DaysDifference = quote.Days
	rec.TotalAmount = quote.Total
	return rec, nil
}
