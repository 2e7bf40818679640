package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"boveda/internal/entities"
	"boveda/internal/wizard"
)

// Gateway talks to the calendar endpoints (normally through the landing-site
// proxy, so BaseURL is the proxy origin and paths carry the /api prefix).
type Gateway struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewGateway(baseURL string) *Gateway {
	return &Gateway{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Availability loads the bookable window. Called once per widget mount.
func (g *Gateway) Availability(ctx context.Context, days int) (*entities.AvailabilityResponse, error) {
	endpoint := fmt.Sprintf("%s/api/calendar/availability?days=%s", g.BaseURL, url.QueryEscape(fmt.Sprint(days)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("availability request failed with status %d", resp.StatusCode)
	}

	var availability entities.AvailabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&availability); err != nil {
		return nil, fmt.Errorf("decoding availability response: %w", err)
	}
	return &availability, nil
}

// Book submits a booking and relays the gateway's status code so the wizard
// can drive its transition table. Timestamps go out verbatim from the slot.
func (g *Gateway) Book(ctx context.Context, slot entities.Slot, contact wizard.Contact) (int, error) {
	payload := entities.BookingRequest{
		Start: slot.Start,
		End:   slot.End,
		Name:  contact.Name,
		Email: contact.Email,
		Notes: contact.Notes,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/api/calendar/book", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
