// Package localtime derives the UTC instant corresponding to a fixed local
// reference time at a coordinate, for anchoring historical-weather queries.
package localtime

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/ringsaturn/tzf"
)

// Reference wall-clock time used as the weather query anchor. A fixed local
// morning time gives a comparable anchor across cities regardless of offset.
const (
	ReferenceHour   = 10
	ReferenceMinute = 0
)

type timezoneFinder interface {
	GetTimezoneName(lng, lat float64) string
}

// Resolver maps (date, coordinate) pairs to absolute UTC instants. The
// underlying polygon index is loaded once at construction; Resolver is
// read-only afterwards.
type Resolver struct {
	finder timezoneFinder
}

func NewResolver() (*Resolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("loading timezone index: %w", err)
	}
	return &Resolver{finder: finder}, nil
}

// QueryInstant returns the UTC instant of the reference local time (10:00)
// on the given date at the coordinate.
func (r *Resolver) QueryInstant(date time.Time, lat, lon float64) time.Time {
	return r.QueryInstantAt(date, lat, lon, ReferenceHour, ReferenceMinute)
}

// QueryInstantAt is QueryInstant with an explicit wall-clock time. When no
// timezone resolves for the coordinate (open ocean) it falls back to UTC
// rather than failing.
func (r *Resolver) QueryInstantAt(date time.Time, lat, lon float64, hour, minute int) time.Time {
	loc := time.UTC
	if name := r.finder.GetTimezoneName(lon, lat); name != "" {
		if l, err := time.LoadLocation(name); err == nil {
			loc = l
		}
	}

	local := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
	return local.UTC()
}
