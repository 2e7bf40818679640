package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"boveda/internal/repository"
	"boveda/internal/service"

	"boveda/internal/api"
	"boveda/internal/auth"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	tzName := os.Getenv("CALENDAR_TZ")
	if tzName == "" {
		tzName = "UTC"
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Fatalf("Invalid CALENDAR_TZ %q: %v", tzName, err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	jobRepo := repository.NewJobRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)

	sender := service.NewSenderService(loc)
	availabilitySvc := service.NewAvailabilityService(bookingRepo, loc)
	bookingSvc := service.NewBookingService(bookingRepo, sender, loc)
	jobSvc := service.NewJobService(jobRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)

	calendarHandler := api.NewCalendarHandler(availabilitySvc, bookingSvc)
	adminHandler := api.NewAdminHandler(bookingRepo)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/health", api.HealthCheck).Methods("GET")
	r.HandleFunc("/calendar/availability", calendarHandler.GetAvailability).Methods("GET")
	r.HandleFunc("/calendar/book", calendarHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/bookings/{id}", adminHandler.CancelBooking).Methods("DELETE")
	admin.HandleFunc("/admins", adminAuthHandler.CreateAdmin).Methods("POST")

	c := cron.New()
	if _, err := c.AddFunc("@every 15m", func() {
		if err := jobSvc.UpdateFinishedBookings(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule cron job: %v", err)
	}
	c.Start()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Printf("Calendar gateway running on port %s (tz %s)", port, loc)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
