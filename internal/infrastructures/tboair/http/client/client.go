package tboair

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	derr "github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/errors"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/models"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/ports"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/infrastructures/tboair/mappers"
)

type Client struct {
	baseURL    string
	clientID   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, clientID, apiKey string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://api.tboair.example.com"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientID:   strings.TrimSpace(clientID),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SearchTrip fetches raw fare-quote data for the query and hands it to
// the normalizer. A payload without usable segment structure maps to
// ErrTripUnavailable; the normalizer itself never errors.
func (c *Client) SearchTrip(ctx context.Context, query ports.TripQuery) (*models.ParsedTrip, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, fmt.Errorf("tboair api key is empty")
	}

	reqURL, err := c.buildURL(query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Client-Id", c.clientID)
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tboair request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("tboair status: %s: %w", resp.Status, derr.ErrSourceTemporary)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tboair response: %w", err)
	}

	trip := mappers.ParseTrip(body)
	if trip == nil {
		return nil, derr.ErrTripUnavailable
	}

	return trip, nil
}

func (c *Client) buildURL(query ports.TripQuery) (string, error) {
	u, err := url.Parse(c.baseURL + "/v1/air/search")
	if err != nil {
		return "", fmt.Errorf("parse tboair base url: %w", err)
	}

	q := u.Query()
	q.Set("origin", strings.ToUpper(strings.TrimSpace(query.Origin)))
	q.Set("destination", strings.ToUpper(strings.TrimSpace(query.Destination)))
	q.Set("depart_date", strings.TrimSpace(query.DepartDate))
	if strings.TrimSpace(query.ReturnDate) != "" {
		q.Set("return_date", strings.TrimSpace(query.ReturnDate))
	}
	if query.Type != "" {
		q.Set("trip_type", string(query.Type))
	}
	adults := query.Adults
	if adults <= 0 {
		adults = 1
	}
	q.Set("adults", strconv.Itoa(adults))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
