package proxy

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Handler forwards the landing site's calendar requests to the backend and
// relays status and body verbatim. It performs no logic of its own: the
// backend stays the single authority on availability and conflicts.
type Handler struct {
	backendURL string
	client     *http.Client
}

func NewHandler(backendURL string) *Handler {
	return &Handler{
		backendURL: backendURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Availability proxies GET /api/calendar/availability?days=N.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	days := r.URL.Query().Get("days")
	if days == "" {
		days = "10"
	}
	endpoint := h.backendURL + "/calendar/availability?days=" + url.QueryEscape(days)

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, endpoint, nil)
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.forward(w, req, true)
}

// Book proxies POST /api/calendar/book with the JSON body untouched.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.backendURL+"/calendar/book", bytes.NewReader(body))
	if err != nil {
		h.internalError(w, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	h.forward(w, req, false)
}

func (h *Handler) forward(w http.ResponseWriter, req *http.Request, noStore bool) {
	resp, err := h.client.Do(req)
	if err != nil {
		h.backendUnreachable(w, err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.backendUnreachable(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if noStore {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(resp.StatusCode)
	w.Write(body)
}

// internalError covers failures building the upstream request, e.g. a
// malformed backend URL. The 502 body is reserved for transport failures.
func (h *Handler) internalError(w http.ResponseWriter, err error) {
	log.Printf("Proxy: error building backend request: %v", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(`{"detail":"proxy_error"}`))
}

func (h *Handler) backendUnreachable(w http.ResponseWriter, err error) {
	log.Printf("Proxy: backend unreachable: %v", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	w.Write([]byte(`{"detail":"backend_unreachable"}`))
}
