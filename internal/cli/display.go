package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"bancarella/revenue-tracker/internal/apperrors"
	"bancarella/revenue-tracker/internal/db/revenues"
)

func renderTable(w io.Writer, records []revenues.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No revenues found.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"ID", "Date", "City", "Declared", "Revenue", "Kind", "Who",
		"Temp", "Felt", "Wind", "Weather", "Description", "Notes",
	})

	for _, r := range records {
		table.Append([]string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Date,
			r.City,
			formatAmount(r.DeclaredRevenue),
			formatOptionalAmount(r.Revenue),
			r.Kind,
			formatOptional(r.Who),
			formatAmount(r.Temperature),
			formatAmount(r.TemperatureFelt),
			formatAmount(r.WindSpeed),
			r.MainWeather,
			r.WeatherDescription,
			formatOptional(r.Notes),
		})
	}

	table.Render()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatOptionalAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return formatAmount(*v)
}

func formatOptional(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// errorMessage maps each failure kind of the pipeline to a distinct
// human-readable message.
func errorMessage(err error) string {
	var invalidDate *apperrors.InvalidDateError
	var notFound *apperrors.NotFoundError
	var unavailable *apperrors.ServiceUnavailableError
	var noData *apperrors.NoDataError
	var incomplete *apperrors.IncompleteDataError
	var duplicate *apperrors.DuplicateError

	switch {
	case errors.As(err, &invalidDate):
		return "Invalid date format. Please enter in YYYY-MM-DD format."
	case errors.As(err, &notFound):
		return fmt.Sprintf("Impossible to find coordinates for city '%s'.", notFound.City)
	case errors.As(err, &unavailable):
		return fmt.Sprintf("The %s service is unavailable right now. Please try again later.", unavailable.Service)
	case errors.As(err, &noData):
		return "Weather data not available for the requested date."
	case errors.As(err, &incomplete):
		return fmt.Sprintf("Weather data is incomplete: missing %s.", incomplete.Field)
	case errors.As(err, &duplicate):
		return fmt.Sprintf("Record for date %s and city '%s' already exists.", duplicate.Date, duplicate.City)
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}
