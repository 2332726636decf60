package providers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"bancarella/revenue-tracker/internal/apperrors"
	"bancarella/revenue-tracker/internal/providers"
)

type WeatherServiceTestSuite struct {
	suite.Suite
	server  *httptest.Server
	payload map[string]interface{}
	status  int
	lastURL string
	service providers.HistoricalWeatherService
}

func (s *WeatherServiceTestSuite) SetupTest() {
	s.status = http.StatusOK
	s.payload = fullPayload()
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lastURL = r.URL.String()
		if s.status != http.StatusOK {
			w.WriteHeader(s.status)
			return
		}
		json.NewEncoder(w).Encode(s.payload)
	}))

	s.service = providers.NewHistoricalWeatherService("test_api_key", s.server.URL, 5*time.Second)
}

func (s *WeatherServiceTestSuite) TearDownTest() {
	s.server.Close()
}

func fullPayload() map[string]interface{} {
	return map[string]interface{}{
		"data": []map[string]interface{}{
			{
				"temp":       8.1,
				"feels_like": 6.0,
				"wind_speed": 2.3,
				"weather": []map[string]interface{}{
					{"main": "Clouds", "description": "overcast clouds"},
				},
			},
		},
	}
}

func (s *WeatherServiceTestSuite) fetch() (providers.Snapshot, error) {
	instant := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return s.service.FetchSnapshot(context.Background(), instant, providers.Coordinates{Lat: 45.52, Lon: 9.88})
}

func (s *WeatherServiceTestSuite) TestFetchSnapshot_Success() {
	snapshot, err := s.fetch()

	s.NoError(err)
	s.Equal(8.1, snapshot.Temperature)
	s.Equal(6.0, snapshot.FeelsLike)
	s.Equal(2.3, snapshot.WindSpeed)
	s.Equal("Clouds", snapshot.Main)
	s.Equal("overcast clouds", snapshot.Description)
}

func (s *WeatherServiceTestSuite) TestFetchSnapshot_RequestParameters() {
	_, err := s.fetch()
	s.NoError(err)

	s.Contains(s.lastURL, "lat=45.52")
	s.Contains(s.lastURL, "lon=9.88")
	s.Contains(s.lastURL, "dt=1740819600")
	s.Contains(s.lastURL, "units=metric")
	s.Contains(s.lastURL, "appid=test_api_key")
}

func (s *WeatherServiceTestSuite) TestFetchSnapshot_ServerError() {
	s.status = http.StatusTooManyRequests

	_, err := s.fetch()

	var unavailable *apperrors.ServiceUnavailableError
	s.ErrorAs(err, &unavailable)
	s.Equal("weather", unavailable.Service)
	s.Equal(http.StatusTooManyRequests, unavailable.StatusCode)
}

func (s *WeatherServiceTestSuite) TestFetchSnapshot_NoDataPoint() {
	s.payload = map[string]interface{}{"data": []map[string]interface{}{}}

	_, err := s.fetch()

	var noData *apperrors.NoDataError
	s.ErrorAs(err, &noData)
}

func (s *WeatherServiceTestSuite) TestFetchSnapshot_MissingFields() {
	cases := []struct {
		name  string
		strip func(point map[string]interface{})
		field string
	}{
		{"temperature", func(p map[string]interface{}) { delete(p, "temp") }, "temperature"},
		{"felt temperature", func(p map[string]interface{}) { delete(p, "feels_like") }, "felt temperature"},
		{"wind speed", func(p map[string]interface{}) { delete(p, "wind_speed") }, "wind speed"},
		{"main weather", func(p map[string]interface{}) { delete(p, "weather") }, "main weather"},
		{"weather description", func(p map[string]interface{}) {
			p["weather"] = []map[string]interface{}{{"main": "Clouds"}}
		}, "weather description"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.payload = fullPayload()
			point := s.payload["data"].([]map[string]interface{})[0]
			tc.strip(point)

			_, err := s.fetch()

			var incomplete *apperrors.IncompleteDataError
			s.ErrorAs(err, &incomplete)
			s.Equal(tc.field, incomplete.Field)
		})
	}
}

func (s *WeatherServiceTestSuite) TestFetchSnapshot_TransportFailure() {
	s.server.Close()

	_, err := s.fetch()

	var unavailable *apperrors.ServiceUnavailableError
	s.ErrorAs(err, &unavailable)
	s.Equal("weather", unavailable.Service)
}

func TestWeatherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WeatherServiceTestSuite))
}
