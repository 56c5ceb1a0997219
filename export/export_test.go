package export

import (
	"strings"
	"testing"

	"vroomly/models"
)

func sampleBooking() models.Booking {
	return models.Booking{
		ID:             "booking_1717230000000",
		UserID:         "u1",
		CarID:          "car_1",
		CarName:        "BMW X5",
		CarType:        "SUV",
		CarYear:        "2006",
		PickupDate:     "01-06-2024",
		ReturnDate:     "01-07-2024",
		DaysDifference: 30,
		TotalAmount:    9000,
		DailyRate:      300,
		BookingDate:    "2024-06-01T09:30:00Z",
		Status:         models.StatusConfirmed,
	}
}

func findSection(t *testing.T, doc Document, title string) Section {
	t.Helper()
	for _, s := range doc.Sections {
		if strings.HasPrefix(s.Title, title) {
			return s
		}
	}
	t.Fatalf("section %q missing", title)
	return Section{}
}

func fieldValue(t *testing.T, s Section, label string) string {
	t.Helper()
	for _, f := range s.Fields {
		if f.Label == label {
			return f.Value
		}
	}
	t.Fatalf("field %q missing in %q", label, s.Title)
	return ""
}

func TestToDocumentLayout(t *testing.T) {
	doc := ToDocument(sampleBooking())

	if doc.Brand != "VROOMLY" {
		t.Fatalf("brand: %q", doc.Brand)
	}
	wantOrder := []string{
		"Booking ID:",
		"Car Details",
		"Rental Period",
		"Pricing Breakdown",
		"Booking Information",
		"Important Information",
		"Contact Information",
	}
	if len(doc.Sections) != len(wantOrder) {
		t.Fatalf("expected %d sections, got %d", len(wantOrder), len(doc.Sections))
	}
	for i, prefix := range wantOrder {
		if !strings.HasPrefix(doc.Sections[i].Title, prefix) {
			t.Fatalf("section %d: got %q, want prefix %q", i, doc.Sections[i].Title, prefix)
		}
	}
}

func TestToDocumentValues(t *testing.T) {
	doc := ToDocument(sampleBooking())

	car := findSection(t, doc, "Car Details")
	if got := fieldValue(t, car, "Name"); got != "BMW X5" {
		t.Fatalf("car name: %q", got)
	}

	period := findSection(t, doc, "Rental Period")
	if got := fieldValue(t, period, "Pickup"); got != "Saturday, June 1, 2024" {
		t.Fatalf("pickup: %q", got)
	}
	if got := fieldValue(t, period, "Duration"); got != "30 days" {
		t.Fatalf("duration: %q", got)
	}
	if got := fieldValue(t, period, "Daily Rate"); got != "$300.00/day" {
		t.Fatalf("rate: %q", got)
	}

	pricing := findSection(t, doc, "Pricing Breakdown")
	if got := fieldValue(t, pricing, "Total Amount"); got != "$9000.00" {
		t.Fatalf("total: %q", got)
	}
}

func TestToDocumentDerivesRateWhenNotStored(t *testing.T) {
	rec := sampleBooking()
	rec.DailyRate = 0
	doc := ToDocument(rec)
	pricing := findSection(t, doc, "Pricing Breakdown")
	if got := fieldValue(t, pricing, "Daily Rate"); got != "$300.00" {
		t.Fatalf("derived rate: %q", got)
	}
}

func TestStatusText(t *testing.T) {
	cases := map[string]string{
		models.StatusConfirmed: "Confirmed",
		models.StatusPending:   "Pending",
		models.StatusCancelled: "Cancelled",
		"whatever":             "Unknown",
	}
	for status, want := range cases {
		rec := sampleBooking()
		rec.Status = status
		doc := ToDocument(rec)
		got := fieldValue(t, doc.Sections[0], "Status")
		if got != want {
			t.Errorf("status %q: got %q, want %q", status, got, want)
		}
	}
}

func TestToShareText(t *testing.T) {
	got := ToShareText(sampleBooking())
	want := "My car rental booking: BMW X5 for 30 days. Total: $9000"
	if got != want {
		t.Fatalf("got %q", got)
	}
}

func TestToShareMessage(t *testing.T) {
	got := ToShareMessage(sampleBooking())
	if !strings.Contains(got, "BMW X5") || !strings.Contains(got, "30 days") ||
		!strings.Contains(got, "Saturday, June 1, 2024") || !strings.Contains(got, "$9000") {
		t.Fatalf("got %q", got)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(sampleBooking()); got != "booking-booking_1717230000000.pdf" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderPDF(t *testing.T) {
	pdfBytes, err := RenderPDF(ToDocument(sampleBooking()), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(pdfBytes) == 0 || !strings.HasPrefix(string(pdfBytes[:5]), "%PDF-") {
		t.Fatal("output is not a PDF")
	}
}

func TestQRPayloadSigned(t *testing.T) {
	payload := QRPayload("booking_1", "u1")
	parts := strings.Split(payload, "|")
	if len(parts) != 4 {
		t.Fatalf("payload shape: %q", payload)
	}
	if parts[0] != "booking_1" || parts[1] != "u1" {
		t.Fatalf("payload content: %q", payload)
	}
	if parts[3] == "" {
		t.Fatal("missing signature")
	}
}
