package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"
)

// VolDataFetcher fetches closes and 30-day IV series from a REST vol-data
// vendor exposing /api/v1/closes and /api/v1/iv30.
type VolDataFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewVolDataFetcher creates a new fetcher with optional proxy support.
func NewVolDataFetcher(baseURL, apiKey, proxyURL string) *VolDataFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &VolDataFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *VolDataFetcher) Name() string { return "voldata" }

// volPoint is the expected JSON shape for both vendor endpoints.
type volPoint struct {
	Date  string  `json:"date"` // "2006-01-02"
	Close float64 `json:"close,omitempty"`
	IV30  float64 `json:"iv30,omitempty"`
}

func (f *VolDataFetcher) FetchDailyCloses(symbol string, days int) ([]ClosePoint, error) {
	endpoint := fmt.Sprintf("%s/api/v1/closes?symbol=%s&limit=%d", f.BaseURL, url.QueryEscape(symbol), days)
	raw, err := f.fetchPoints(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch closes: %w", err)
	}
	points := make([]ClosePoint, 0, len(raw))
	for _, p := range raw {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return nil, fmt.Errorf("parse close date %q: %w", p.Date, err)
		}
		points = append(points, ClosePoint{Date: date, Close: p.Close})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

func (f *VolDataFetcher) FetchIVSeries(symbol string, days int) ([]IVPoint, error) {
	endpoint := fmt.Sprintf("%s/api/v1/iv30?symbol=%s&limit=%d", f.BaseURL, url.QueryEscape(symbol), days)
	raw, err := f.fetchPoints(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch iv series: %w", err)
	}
	points := make([]IVPoint, 0, len(raw))
	for _, p := range raw {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return nil, fmt.Errorf("parse iv date %q: %w", p.Date, err)
		}
		points = append(points, IVPoint{Date: date, IV: p.IV30})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

func (f *VolDataFetcher) fetchPoints(endpoint string) ([]volPoint, error) {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	var points []volPoint
	if err := json.NewDecoder(resp.Body).Decode(&points); err != nil {
		return nil, fmt.Errorf("decode points: %w", err)
	}
	return points, nil
}
