package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMenu_Exit(t *testing.T) {
	var out bytes.Buffer
	menu := NewMenu(nil, nil, time.Second, strings.NewReader("4\n"), &out)

	menu.Run(context.Background())

	assert.Contains(t, out.String(), "Exiting the application.")
}

func TestMenu_StopsOnEndOfInput(t *testing.T) {
	var out bytes.Buffer
	menu := NewMenu(nil, nil, time.Second, strings.NewReader(""), &out)

	menu.Run(context.Background())

	assert.Contains(t, out.String(), "1. Add revenue")
}

func TestMenu_InvalidChoice(t *testing.T) {
	var out bytes.Buffer
	menu := NewMenu(nil, nil, time.Second, strings.NewReader("9\n4\n"), &out)

	menu.Run(context.Background())

	assert.Contains(t, out.String(), "Invalid choice. Please try again.")
}

func TestMenu_AddRevenueRejectsBadDateBeforeService(t *testing.T) {
	var out bytes.Buffer
	// Service and repo are nil: a date this malformed must never reach them.
	menu := NewMenu(nil, nil, time.Second, strings.NewReader("1\n2025-13-40\n4\n"), &out)

	menu.Run(context.Background())

	assert.Contains(t, out.String(), "Invalid date format. Please enter in YYYY-MM-DD format.")
}
