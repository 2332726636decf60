package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"bancarella/revenue-tracker/internal/apperrors"
	"bancarella/revenue-tracker/internal/db/revenues"
	"bancarella/revenue-tracker/internal/providers"
	"bancarella/revenue-tracker/internal/roster"
)

// DateLayout is the calendar-date wire format used throughout the tracker.
const DateLayout = "2006-01-02"

const defaultKind = "ordinary"

// InstantResolver derives the UTC weather-query instant for a date at a
// coordinate.
type InstantResolver interface {
	QueryInstant(date time.Time, lat, lon float64) time.Time
}

// RecordDayParams is a candidate revenue record before enrichment.
type RecordDayParams struct {
	Date            string
	City            string
	DeclaredRevenue float64
	Revenue         *float64
	Kind            string
	Who             *string
	Notes           *string
}

// RecordDayResult reports the persisted record id. Warning carries
// caller-visible advisories (e.g. a date in the future) that are not
// errors.
type RecordDayResult struct {
	ID      uint
	Warning string
}

// RevenueService orchestrates geocoding, timezone resolution, weather
// enrichment and persistence for a single new record.
type RevenueService interface {
	RecordDay(ctx context.Context, params RecordDayParams) (RecordDayResult, error)
}

type revenueService struct {
	geo      providers.GeocodingService
	instants InstantResolver
	weather  providers.HistoricalWeatherService
	repo     revenues.Repository
	defaults roster.Defaults
	now      func() time.Time
}

func NewRevenueService(
	geo providers.GeocodingService,
	instants InstantResolver,
	weather providers.HistoricalWeatherService,
	repo revenues.Repository,
	defaults roster.Defaults,
) RevenueService {
	return &revenueService{
		geo:      geo,
		instants: instants,
		weather:  weather,
		repo:     repo,
		defaults: defaults,
		now:      time.Now,
	}
}

// ParseDate validates a calendar-date string.
func ParseDate(input string) (time.Time, error) {
	date, err := time.Parse(DateLayout, input)
	if err != nil {
		return time.Time{}, &apperrors.InvalidDateError{Input: input}
	}
	return date, nil
}

// RecordDay validates the candidate, rejects duplicates before any external
// call, enriches it with the weather at the city's 10:00 local time, and
// persists the merged record. Any stage failure aborts the whole operation
// with no partial write.
func (s *revenueService) RecordDay(ctx context.Context, params RecordDayParams) (RecordDayResult, error) {
	date, err := ParseDate(params.Date)
	if err != nil {
		return RecordDayResult{}, err
	}

	var warning string
	if date.After(s.now()) {
		warning = "the entered date is in the future"
	}

	exists, err := s.repo.Exists(params.Date, params.City)
	if err != nil {
		return RecordDayResult{}, err
	}
	if exists {
		return RecordDayResult{}, &apperrors.DuplicateError{Date: params.Date, City: params.City}
	}

	kind := params.Kind
	if kind == "" {
		kind = defaultKind
	}

	who := params.Who
	if who == nil {
		if name, ok := s.defaults.WhoFor(params.City, date); ok {
			who = &name
		}
	}

	coord, err := s.geo.ResolveCoordinates(ctx, params.City)
	if err != nil {
		return RecordDayResult{}, err
	}

	instant := s.instants.QueryInstant(date, coord.Lat, coord.Lon)

	snapshot, err := s.weather.FetchSnapshot(ctx, instant, coord)
	if err != nil {
		return RecordDayResult{}, err
	}

	record := &revenues.Record{
		Date:               params.Date,
		City:               params.City,
		Revenue:            params.Revenue,
		DeclaredRevenue:    params.DeclaredRevenue,
		Kind:               kind,
		Who:                who,
		Temperature:        snapshot.Temperature,
		TemperatureFelt:    snapshot.FeelsLike,
		WindSpeed:          snapshot.WindSpeed,
		MainWeather:        snapshot.Main,
		WeatherDescription: snapshot.Description,
		Notes:              params.Notes,
	}

	// The insert re-checks uniqueness through the storage constraint, so a
	// concurrent writer racing past the Exists check still gets rejected.
	id, err := s.repo.Insert(record)
	if err != nil {
		return RecordDayResult{}, err
	}

	log.Info().
		Uint("id", id).
		Str("date", params.Date).
		Str("city", params.City).
		Str("main_weather", snapshot.Main).
		Msg("revenue record created")

	return RecordDayResult{ID: id, Warning: warning}, nil
}
