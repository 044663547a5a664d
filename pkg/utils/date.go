package utils

import (
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the calendar-date format accepted by the reporting API.
const DateLayout = time.DateOnly

// ParseDate parses a YYYY-MM-DD date. An empty string yields the zero time.
func ParseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}

	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid date %q", dateStr)
	}

	return date, nil
}

// ValidateDateRange fails when end precedes start.
func ValidateDateRange(start, end string) error {
	startDate, err := ParseDate(start)
	if err != nil {
		return err
	}

	endDate, err := ParseDate(end)
	if err != nil {
		return err
	}

	if endDate.Before(startDate) {
		return errors.Errorf("endDate %s is before startDate %s", end, start)
	}

	return nil
}
