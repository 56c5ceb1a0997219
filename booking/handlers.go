package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"vroomly/db"
	"vroomly/dates"
	"vroomly/globals"
	"vroomly/models"
	"vroomly/rdx"
	"vroomly/rental"
	"vroomly/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Service handles the booking lifecycle: create, list, extend, cancel.
type Service struct {
	store *Store
	hub   *Hub
}

func NewService(store *Store, hub *Hub) *Service {
	return &Service{store: store, hub: hub}
}

func clientKey(r *http.Request) string {
	if userID, ok := r.Context().Value(globals.UserIDKey).(string); ok && userID != "" {
		return userID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// requireSession resolves the logged-in user. On failure it parks a
// one-shot message for the client's next page load, matching the redirect
// behavior of the bookings page.
func (s *Service) requireSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	if userID == "" || !rdx.HasSession(r.Context(), userID) {
		if err := rdx.SetAuthMessage(r.Context(), clientKey(r), "Please login to see your bookings"); err != nil {
			log.Printf("auth message not stored: %v", err)
		}
		utils.RespondWithError(w, http.StatusUnauthorized, "Please login to see your bookings")
		return "", false
	}
	return userID, true
}

type createRequest struct {
	CarID      string `json:"carId"`
	PickupDate string `json:"pickupDate"`
	ReturnDate string `json:"returnDate"`
}

// CreateBooking confirms a rental: it re-quotes server-side from the car's
// current daily rate, snapshots the vehicle into the record, and appends it
// to the user's collection.
func (s *Service) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.CarID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Car ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var car models.Car
	if err := db.CarsCollection.FindOne(ctx, bson.M{"carid": req.CarID}).Decode(&car); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Car not found")
		return
	}

	quote, err := rental.ComputeStrings(req.PickupDate, req.ReturnDate, car.Price)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date format. Use DD-MM-YYYY")
		return
	}
	if quote.Days <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Please select valid pickup and return dates")
		return
	}

	pickup, _ := dates.Parse(req.PickupDate)
	ret, _ := dates.Parse(req.ReturnDate)

	rec := models.Booking{
		ID:             fmt.Sprintf("booking_%d", time.Now().UnixMilli()),
		UserID:         userID,
		CarID:          car.CarID,
		CarName:        car.Name,
		CarType:        car.Type,
		CarYear:        car.Year,
		CarImage:       car.Image,
		PickupDate:     dates.Format(pickup),
		ReturnDate:     dates.Format(ret),
		DaysDifference: quote.Days,
		TotalAmount:    quote.Total,
		DailyRate:      car.Price,
		BookingDate:    time.Now().UTC().Format(time.RFC3339),
		Status:         models.StatusConfirmed,
	}

	if err := s.store.Create(ctx, rec); err != nil {
		log.Printf("booking create failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save booking")
		return
	}

	s.hub.Broadcast(userID, Event{Type: "created", BookingID: rec.ID})
	utils.SendResponse(w, http.StatusCreated, rec, "Booking confirmed! Your booking ID is "+rec.ID, nil)
}

// GetBookings lists the user's bookings in booking order.
func (s *Service) GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	list, err := s.store.List(r.Context(), userID)
	if err != nil {
		log.Printf("booking list failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

type extendRequest struct {
	ReturnDate string `json:"returnDate"`
}

// ExtendBooking moves a booking's return date forward and recalculates the
// total at the booking's original daily rate.
func (s *Service) ExtendBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	bookingID := ps.ByName("bookingid")

	var req extendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ReturnDate == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "New return date is required")
		return
	}

	rec, err := s.store.Extend(r.Context(), userID, bookingID, req.ReturnDate)
	switch {
	case err == nil:
	case err == ErrNotFound:
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	case err == ErrCancelled:
		utils.RespondWithError(w, http.StatusConflict, "Cancelled bookings cannot be extended")
		return
	case err == dates.ErrInvalidDate:
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date format. Use DD-MM-YYYY")
		return
	case err == rental.ErrReturnBeforePickup:
		utils.RespondWithError(w, http.StatusBadRequest, "Return date must be after pickup date")
		return
	default:
		log.Printf("booking extend failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	s.hub.Broadcast(userID, Event{Type: "extended", BookingID: rec.ID})
	utils.SendResponse(w, http.StatusOK, rec, "Booking extended", nil)
}

// CancelBooking marks a booking cancelled. Cancelling twice is harmless,
// and an unknown id leaves the collection untouched.
func (s *Service) CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	bookingID := ps.ByName("bookingid")

	if err := s.store.Cancel(r.Context(), userID, bookingID); err != nil {
		log.Printf("booking cancel failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel booking")
		return
	}

	s.hub.Broadcast(userID, Event{Type: "cancelled", BookingID: bookingID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "id": bookingID, "status": models.StatusCancelled})
}
