package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bancarella/revenue-tracker/internal/apperrors"
)

// DefaultTimemachineBaseURL is the OpenWeather One Call historical endpoint.
const DefaultTimemachineBaseURL = "https://api.openweathermap.org/data/3.0/onecall/timemachine"

// Snapshot is a validated historical-weather observation. All five fields
// are populated or the snapshot is never produced.
type Snapshot struct {
	Temperature float64
	FeelsLike   float64
	WindSpeed   float64
	Main        string
	Description string
}

// HistoricalWeatherService fetches the weather observed at a coordinate
// and UTC instant, in metric units. No retries, no caching.
type HistoricalWeatherService interface {
	FetchSnapshot(ctx context.Context, instant time.Time, coord Coordinates) (Snapshot, error)
}

type historicalWeatherService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewHistoricalWeatherService(apiKey, baseURL string, timeout time.Duration) HistoricalWeatherService {
	return &historicalWeatherService{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Pointer fields distinguish a missing value from a legitimate zero.
type timemachineResponse struct {
	Data []struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		WindSpeed *float64 `json:"wind_speed"`
		Weather   []struct {
			Main        *string `json:"main"`
			Description *string `json:"description"`
		} `json:"weather"`
	} `json:"data"`
}

func (s *historicalWeatherService) FetchSnapshot(ctx context.Context, instant time.Time, coord Coordinates) (Snapshot, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	values.Set("dt", strconv.FormatInt(instant.Unix(), 10))
	values.Set("appid", s.apiKey)
	values.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", s.baseURL, values.Encode()), nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("building weather request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Snapshot{}, &apperrors.ServiceUnavailableError{Service: "weather", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, &apperrors.ServiceUnavailableError{Service: "weather", StatusCode: resp.StatusCode}
	}

	var payload timemachineResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Snapshot{}, &apperrors.ServiceUnavailableError{Service: "weather", Err: fmt.Errorf("malformed JSON: %w", err)}
	}

	if len(payload.Data) == 0 {
		return Snapshot{}, &apperrors.NoDataError{Instant: instant}
	}

	point := payload.Data[0]
	if point.Temp == nil {
		return Snapshot{}, &apperrors.IncompleteDataError{Field: "temperature"}
	}
	if point.FeelsLike == nil {
		return Snapshot{}, &apperrors.IncompleteDataError{Field: "felt temperature"}
	}
	if point.WindSpeed == nil {
		return Snapshot{}, &apperrors.IncompleteDataError{Field: "wind speed"}
	}
	if len(point.Weather) == 0 || point.Weather[0].Main == nil {
		return Snapshot{}, &apperrors.IncompleteDataError{Field: "main weather"}
	}
	if point.Weather[0].Description == nil {
		return Snapshot{}, &apperrors.IncompleteDataError{Field: "weather description"}
	}

	return Snapshot{
		Temperature: *point.Temp,
		FeelsLike:   *point.FeelsLike,
		WindSpeed:   *point.WindSpeed,
		Main:        *point.Weather[0].Main,
		Description: *point.Weather[0].Description,
	}, nil
}
