package routes

import (
	"net/http"

	"vroomly/auth"
	"vroomly/booking"
	"vroomly/cars"
	"vroomly/export"
	"vroomly/middleware"
	"vroomly/ratelim"
	"vroomly/rdx"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/carpic/*filepath", http.Dir("static/carpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.GET("/api/session/message", middleware.OptionalAuth(auth.SessionMessage))
}

func AddCarRoutes(router *httprouter.Router) {
	router.GET("/api/cars", cars.GetCars)
	router.GET("/api/cars/:carid", cars.GetCar)
	router.GET("/api/cars/:carid/quote", cars.GetQuote)
	router.POST("/api/cars", middleware.Authenticate(cars.CreateCar))
}

// AddBookingRoutes wires the booking lifecycle, its export endpoints, and
// the events socket. Booking routes use OptionalAuth so the handlers can
// park the "please login" message for anonymous visitors instead of
// rejecting them with a bare 401.
func AddBookingRoutes(router *httprouter.Router) {
	store := booking.NewStore(rdx.NewStore())
	hub := booking.NewHub()
	svc := booking.NewService(store, hub)
	exports := export.NewService(store)

	router.POST("/api/bookings", middleware.OptionalAuth(svc.CreateBooking))
	router.GET("/api/bookings", middleware.OptionalAuth(svc.GetBookings))
	router.PUT("/api/bookings/:bookingid/extend", middleware.OptionalAuth(svc.ExtendBooking))
	router.PUT("/api/bookings/:bookingid/cancel", middleware.OptionalAuth(svc.CancelBooking))

	router.GET("/api/bookings/:bookingid/pdf", middleware.Authenticate(exports.PrintBookingPDF))
	router.GET("/api/bookings/:bookingid/share", middleware.Authenticate(exports.ShareBooking))

	router.GET("/ws/bookings", middleware.Authenticate(hub.HandleWS))
}
