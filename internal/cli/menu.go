// Package cli owns the interactive menu and all user-facing presentation.
// The core pipeline returns typed failures; this package maps each kind to
// a distinct human-readable message.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"bancarella/revenue-tracker/internal/db/revenues"
	"bancarella/revenue-tracker/internal/service"
)

type Menu struct {
	revenueService service.RevenueService
	repo           revenues.Repository
	timeout        time.Duration
	in             *bufio.Reader
	out            io.Writer
}

func NewMenu(revenueService service.RevenueService, repo revenues.Repository, timeout time.Duration, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		revenueService: revenueService,
		repo:           repo,
		timeout:        timeout,
		in:             bufio.NewReader(in),
		out:            out,
	}
}

// Run loops over the main menu until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) {
	for {
		fmt.Fprintln(m.out, "1. Add revenue")
		fmt.Fprintln(m.out, "2. Visualize revenues")
		fmt.Fprintln(m.out, "3. Manage revenues")
		fmt.Fprintln(m.out, "4. Exit")

		choice, err := m.prompt("\nPlease select an option: ")
		if err != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		default:
		}

		switch choice {
		case "1":
			m.addRevenue(ctx)
		case "2":
			m.visualizeMenu()
		case "3":
			m.manageMenu()
		case "4":
			fmt.Fprintln(m.out, "\nExiting the application.")
			return
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
		fmt.Fprintln(m.out)
	}
}

func (m *Menu) addRevenue(ctx context.Context) {
	date, err := m.prompt("Enter the date (YYYY-MM-DD): ")
	if err != nil {
		return
	}
	if _, parseErr := service.ParseDate(date); parseErr != nil {
		fmt.Fprintln(m.out, "\nInvalid date format. Please enter in YYYY-MM-DD format.")
		return
	}

	city, err := m.prompt("Enter the city: ")
	if err != nil {
		return
	}

	declared, ok := m.promptFloat("Enter the declared revenue: ")
	if !ok {
		return
	}
	revenue := m.promptOptionalFloat("Enter total revenue (default=Null): ")
	kind, _ := m.prompt("Enter the kind of day (default=ordinary): ")
	who := m.promptOptional("Enter who was at the market (format=X,Y,...): ")
	notes := m.promptOptional("Enter any additional notes: ")

	callCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	result, err := m.revenueService.RecordDay(callCtx, service.RecordDayParams{
		Date:            date,
		City:            city,
		DeclaredRevenue: declared,
		Revenue:         revenue,
		Kind:            kind,
		Who:             who,
		Notes:           notes,
	})
	if err != nil {
		log.Debug().Err(err).Str("city", city).Msg("record day failed")
		fmt.Fprintf(m.out, "\n%s\n", errorMessage(err))
		return
	}

	if result.Warning != "" {
		fmt.Fprintf(m.out, "\nWARNING: %s\n", result.Warning)
	}
	fmt.Fprintf(m.out, "\nSaved record #%d: %s, %s, %.2f EUR\n", result.ID, date, city, declared)
}

func (m *Menu) visualizeMenu() {
	fmt.Fprintln(m.out, "1. Visualize last 5 revenues")
	fmt.Fprintln(m.out, "2. Visualize revenue by date")
	fmt.Fprintln(m.out, "3. Visualize all revenues")
	fmt.Fprintln(m.out, "4. Back")

	choice, err := m.prompt("\nPlease select an option: ")
	if err != nil {
		return
	}

	switch choice {
	case "1":
		records, err := m.repo.GetLast(5)
		m.showRecords(records, err)
	case "2":
		date, err := m.prompt("Enter the date (YYYY-MM-DD) to visualize: ")
		if err != nil {
			return
		}
		if _, parseErr := service.ParseDate(date); parseErr != nil {
			fmt.Fprintln(m.out, "\nInvalid date format. Please enter in YYYY-MM-DD format.")
			return
		}
		records, err := m.repo.GetByDate(date)
		m.showRecords(records, err)
	case "3":
		records, err := m.repo.GetAll()
		m.showRecords(records, err)
	case "4":
		return
	default:
		fmt.Fprintln(m.out, "\nInvalid choice.")
	}
}

func (m *Menu) manageMenu() {
	fmt.Fprintln(m.out, "1. Delete revenue by date")
	fmt.Fprintln(m.out, "2. Delete revenue by ID")
	fmt.Fprintln(m.out, "3. Delete all revenues")
	fmt.Fprintln(m.out, "4. Back")

	choice, err := m.prompt("\nPlease select an option: ")
	if err != nil {
		return
	}

	switch choice {
	case "1":
		date, err := m.prompt("Enter the date (YYYY-MM-DD) of the revenue to delete: ")
		if err != nil {
			return
		}
		city, err := m.prompt("Enter the city of the revenue to delete: ")
		if err != nil {
			return
		}
		if _, parseErr := service.ParseDate(date); parseErr != nil {
			fmt.Fprintln(m.out, "\nInvalid date format. Please enter in YYYY-MM-DD format.")
			return
		}
		count, err := m.repo.DeleteByDateCity(date, city)
		if err != nil {
			log.Error().Err(err).Msg("delete by date and city failed")
			fmt.Fprintln(m.out, "\nFailed to delete the record.")
			return
		}
		if count == 0 {
			fmt.Fprintf(m.out, "\nNo revenue found for %s in %s.\n", date, city)
		} else {
			fmt.Fprintf(m.out, "\nRevenue on %s in %s has been deleted.\n", date, city)
		}
	case "2":
		idInput, err := m.prompt("Enter the ID of the revenue to delete: ")
		if err != nil {
			return
		}
		id, convErr := strconv.ParseUint(idInput, 10, 64)
		if convErr != nil {
			fmt.Fprintln(m.out, "\nInvalid ID. Please enter a valid ID.")
			return
		}
		count, err := m.repo.DeleteByID(uint(id))
		if err != nil {
			log.Error().Err(err).Msg("delete by id failed")
			fmt.Fprintln(m.out, "\nFailed to delete the record.")
			return
		}
		if count == 0 {
			fmt.Fprintf(m.out, "\nNo revenue found with ID %d.\n", id)
		} else {
			fmt.Fprintf(m.out, "\nRevenue with ID %d has been deleted.\n", id)
		}
	case "3":
		confirm, err := m.prompt("Are you sure you want to delete all revenues? (yes/no): ")
		if err != nil {
			return
		}
		if strings.ToLower(confirm) != "yes" {
			fmt.Fprintln(m.out, "\nOperation cancelled.")
			return
		}
		if err := m.repo.ClearAll(); err != nil {
			log.Error().Err(err).Msg("clear all failed")
			fmt.Fprintln(m.out, "\nFailed to delete the revenues.")
			return
		}
		fmt.Fprintln(m.out, "\nAll revenues have been deleted.")
	case "4":
		return
	default:
		fmt.Fprintln(m.out, "\nInvalid choice.")
	}
}

func (m *Menu) showRecords(records []revenues.Record, err error) {
	if err != nil {
		log.Error().Err(err).Msg("failed to read revenues")
		fmt.Fprintln(m.out, "\nFailed to read the revenues.")
		return
	}
	fmt.Fprintln(m.out)
	renderTable(m.out, records)
}

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) promptOptional(label string) *string {
	value, err := m.prompt(label)
	if err != nil || value == "" {
		return nil
	}
	return &value
}

func (m *Menu) promptFloat(label string) (float64, bool) {
	value, err := m.prompt(label)
	if err != nil {
		return 0, false
	}
	parsed, convErr := strconv.ParseFloat(value, 64)
	if convErr != nil {
		fmt.Fprintln(m.out, "\nInvalid amount. Please enter a number.")
		return 0, false
	}
	return parsed, true
}

func (m *Menu) promptOptionalFloat(label string) *float64 {
	value, err := m.prompt(label)
	if err != nil || value == "" {
		return nil
	}
	parsed, convErr := strconv.ParseFloat(value, 64)
	if convErr != nil {
		return nil
	}
	return &parsed
}
