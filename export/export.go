package export

import (
	"fmt"
	"strings"
	"time"

	"vroomly/dates"
	"vroomly/models"
	"vroomly/rental"
)

// A Document is the technology-independent shape of an exportable booking:
// ordered sections of labeled fields. Any rendering backend (PDF, share
// text, print) can consume it without re-deriving booking fields.
type Document struct {
	Brand     string
	Tagline   string
	Generated string
	Sections  []Section
}

type Section struct {
	Title  string
	Fields []Field
	Items  []string // bullet list, used by the terms section
}

type Field struct {
	Label string
	Value string
}

func statusText(status string) string {
	switch status {
	case models.StatusConfirmed:
		return "Confirmed"
	case models.StatusPending:
		return "Pending"
	case models.StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

func formatBookingDate(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Format("January 2, 2006 03:04 PM")
}

// ToDocument lays a booking out as the fixed section sequence of the
// booking-details export: branding, booking id, car details, rental
// period, pricing breakdown, booking metadata, terms, contact info.
func ToDocument(rec models.Booking) Document {
	rate := rental.DailyRate(rec)
	return Document{
		Brand:     "VROOMLY",
		Tagline:   "Car Rental Booking Details",
		Generated: "Generated on " + time.Now().Format("1/2/2006"),
		Sections: []Section{
			{
				Title: "Booking ID: " + rec.ID,
				Fields: []Field{
					{Label: "Status", Value: statusText(rec.Status)},
				},
			},
			{
				Title: "Car Details",
				Fields: []Field{
					{Label: "Name", Value: rec.CarName},
					{Label: "Type", Value: rec.CarType},
					{Label: "Year", Value: rec.CarYear},
				},
			},
			{
				Title: "Rental Period",
				Fields: []Field{
					{Label: "Pickup", Value: dates.DisplayString(rec.PickupDate)},
					{Label: "Return", Value: dates.DisplayString(rec.ReturnDate)},
					{Label: "Duration", Value: fmt.Sprintf("%d days", rec.DaysDifference)},
					{Label: "Daily Rate", Value: fmt.Sprintf("$%.2f/day", rate)},
				},
			},
			{
				Title: "Pricing Breakdown",
				Fields: []Field{
					{Label: "Daily Rate", Value: fmt.Sprintf("$%.2f", rate)},
					{Label: "Number of Days", Value: fmt.Sprintf("%d", rec.DaysDifference)},
					{Label: "Total Amount", Value: fmt.Sprintf("$%.2f", rec.TotalAmount)},
				},
			},
			{
				Title: "Booking Information",
				Fields: []Field{
					{Label: "Booking Date", Value: formatBookingDate(rec.BookingDate)},
					{Label: "Status", Value: statusText(rec.Status)},
				},
			},
			{
				Title: "Important Information",
				Items: []string{
					"Valid driver's license required for pickup",
					"Credit card authorization required",
					"Free cancellation up to 24 hours before pickup",
					"Fuel must be returned at same level",
					"Insurance coverage included",
				},
			},
			{
				Title: "Contact Information",
				Fields: []Field{
					{Label: "Phone", Value: "(555) 123-4567"},
					{Label: "Email", Value: "support@vroomly.com"},
					{Label: "Support", Value: "24/7 Customer Support"},
				},
			},
		},
	}
}

// ToShareText builds the one-line summary used as the share/clipboard
// fallback.
func ToShareText(rec models.Booking) string {
	return fmt.Sprintf("My car rental booking: %s for %d days. Total: $%.0f",
		rec.CarName, rec.DaysDifference, rec.TotalAmount)
}

// ToShareMessage builds the longer share-sheet text with the rental period
// spelled out.
func ToShareMessage(rec models.Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I've booked a %s for %d days from %s to %s. Total: $%.0f",
		rec.CarName, rec.DaysDifference,
		dates.DisplayString(rec.PickupDate), dates.DisplayString(rec.ReturnDate),
		rec.TotalAmount)
	return b.String()
}

// Filename is the artifact name for a booking's exported PDF.
func Filename(rec models.Booking) string {
	return "booking-" + rec.ID + ".pdf"
}
