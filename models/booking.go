package models

// Booking statuses. Nothing in the flows produces "pending" today; the
// value is recognized so older or imported records still display.
const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// Booking is one confirmed rental. Car fields are a denormalized snapshot
// of the vehicle at booking time and never change afterwards. PickupDate
// and ReturnDate are "DD-MM-YYYY" strings; only ReturnDate may change, via
// the extend flow, together with DaysDifference and TotalAmount.
type Booking struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	CarID          string  `json:"carId"`
	CarName        string  `json:"carName"`
	CarType        string  `json:"carType"`
	CarYear        string  `json:"carYear"`
	CarImage       string  `json:"carImage"`
	PickupDate     string  `json:"pickupDate"`
	ReturnDate     string  `json:"returnDate"`
	DaysDifference int     `json:"daysDifference"`
	TotalAmount    float64 `json:"totalAmount"`
	DailyRate      float64 `json:"dailyRate,omitempty"`
	BookingDate    string  `json:"bookingDate"` // RFC3339 creation timestamp
	Status         string  `json:"status"`
}
