package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"bancarella/revenue-tracker/internal/apperrors"
)

// DefaultGeocodingBaseURL is the OpenWeather direct-geocoding endpoint.
const DefaultGeocodingBaseURL = "http://api.openweathermap.org/geo/1.0/direct"

// Coordinates is a latitude/longitude pair produced by geocoding.
type Coordinates struct {
	Lat float64
	Lon float64
}

// GeocodingService resolves a free-text city name to coordinates.
type GeocodingService interface {
	ResolveCoordinates(ctx context.Context, city string) (Coordinates, error)
}

type geocodingService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGeocodingService(apiKey, baseURL string, timeout time.Duration) GeocodingService {
	return &geocodingService{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type geocodingCandidate struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// ResolveCoordinates queries the geocoding endpoint and returns the first
// candidate. Ambiguous names (duplicate cities across countries) resolve to
// whichever candidate the provider ranks first; callers cannot disambiguate.
func (s *geocodingService) ResolveCoordinates(ctx context.Context, city string) (Coordinates, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", s.baseURL, values.Encode()), nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("building geocoding request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Coordinates{}, &apperrors.ServiceUnavailableError{Service: "geocoding", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, &apperrors.ServiceUnavailableError{Service: "geocoding", StatusCode: resp.StatusCode}
	}

	var candidates []geocodingCandidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return Coordinates{}, &apperrors.ServiceUnavailableError{Service: "geocoding", Err: fmt.Errorf("malformed JSON: %w", err)}
	}

	if len(candidates) == 0 {
		return Coordinates{}, &apperrors.NotFoundError{City: city}
	}

	return Coordinates{Lat: candidates[0].Lat, Lon: candidates[0].Lon}, nil
}
