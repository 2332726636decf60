// Package roster resolves a default attendant for a market day from a
// static city + weekday table.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Wildcard matches any weekday within a city's rules.
const Wildcard = "*"

// Defaults maps a normalized city name to weekday-name rules. Loaded once
// at startup and read-only afterwards.
type Defaults map[string]map[string]string

// Load reads the defaults table from a JSON file. A missing file yields an
// empty table, not an error.
func Load(path string) (Defaults, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults{}, nil
		}
		return nil, fmt.Errorf("reading who defaults: %w", err)
	}

	var defaults Defaults
	if err := json.Unmarshal(raw, &defaults); err != nil {
		return nil, fmt.Errorf("parsing who defaults: %w", err)
	}
	return defaults, nil
}

// WhoFor looks up the attendant for a city and date: city rules by weekday
// name first, then the city's wildcard entry. The second return reports
// whether any rule matched.
func (d Defaults) WhoFor(city string, date time.Time) (string, bool) {
	rules, ok := d[normalizeCity(city)]
	if !ok {
		return "", false
	}

	if who, ok := rules[date.Weekday().String()]; ok {
		return who, true
	}
	if who, ok := rules[Wildcard]; ok {
		return who, true
	}
	return "", false
}

func normalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
