package export

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"vroomly/booking"
	"vroomly/globals"
	"vroomly/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

var hmacSecret = []byte(envOr("EXPORT_HMAC_SECRET", "vroomly-export-secret"))

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// QRPayload returns a signed payload string: bookingID|userID|timestamp|signature.
// The desk scanner verifies the signature before honoring the document.
func QRPayload(bookingID, userID string) string {
	data := fmt.Sprintf("%s|%s|%d", bookingID, userID, time.Now().Unix())
	h := hmac.New(sha256.New, hmacSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// RenderPDF rasterizes a Document into an A4 PDF, optionally stamping a QR
// code in the top-right corner.
func RenderPDF(doc Document, qrPNG []byte) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Branding header
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(59, 130, 246)
	pdf.CellFormat(0, 12, doc.Brand, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 6, doc.Tagline, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(153, 153, 153)
	pdf.CellFormat(0, 5, doc.Generated, "B", 1, "C", false, 0, "")
	pdf.Ln(4)

	if qrPNG != nil {
		imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("qr", 160, 40, 30, 30, false, imgOpts, 0, "")
	}

	for _, section := range doc.Sections {
		pdf.SetFont("Arial", "B", 13)
		pdf.SetTextColor(51, 51, 51)
		pdf.CellFormat(0, 9, section.Title, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		for _, f := range section.Fields {
			pdf.CellFormat(0, 7, fmt.Sprintf("%s: %s", f.Label, f.Value), "", 1, "L", false, 0, "")
		}
		for _, item := range section.Items {
			pdf.CellFormat(0, 7, "- "+item, "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Service serves booking exports: the downloadable PDF and the share text.
type Service struct {
	store *booking.Store
}

func NewService(store *booking.Store) *Service {
	return &Service{store: store}
}

// PrintBookingPDF streams booking-<id>.pdf as an attachment. Any failure
// surfaces as a single generic error.
func (s *Service) PrintBookingPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	bookingID := ps.ByName("bookingid")

	rec, err := s.store.Get(r.Context(), userID, bookingID)
	if err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}

	qrPNG, err := qrcode.Encode(QRPayload(rec.ID, userID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	pdfBytes, err := RenderPDF(ToDocument(rec), qrPNG)
	if err != nil {
		log.Printf("pdf render failed for %s: %v", rec.ID, err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+Filename(rec))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

// ShareBooking returns the share-sheet payload for a booking.
func (s *Service) ShareBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rec, err := s.store.Get(r.Context(), userID, ps.ByName("bookingid"))
	if err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"title": "My Car Rental Booking",
		"text":  ToShareMessage(rec),
		"short": ToShareText(rec),
	})
}
