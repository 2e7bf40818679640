package main

import (
	"log"
	"net/http"
	"os"

	"boveda/internal/api"
	"boveda/internal/proxy"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	backendURL := proxy.ResolveBackendURL(os.Getenv)
	h := proxy.NewHandler(backendURL)

	r := mux.NewRouter()
	r.HandleFunc("/health", api.HealthCheck).Methods("GET")
	r.HandleFunc("/api/calendar/availability", h.Availability).Methods("GET")
	r.HandleFunc("/api/calendar/book", h.Book).Methods("POST")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	port := os.Getenv("PROXY_PORT")
	if port == "" {
		port = "3000"
	}
	log.Printf("Landing proxy running on port %s, forwarding to %s", port, backendURL)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
