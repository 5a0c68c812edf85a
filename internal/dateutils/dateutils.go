// Package dateutils provides common date operations used throughout the
// application.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date format constants.
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutYearMonth = "2006-01"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutSlash     = "02/01/2006"
)

// CommonFormats is the list of layouts to try when parsing upstream dates.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutSlash,
	"02-01-2006",
	"2006/01/02",
	"2-Jan-2006",
	"Jan 2, 2006",
}

// MonthToken pairs a lower-case month name or abbreviation with its
// two-digit month number. The list is ordered, full names before
// abbreviations, so callers scanning it get the same match every time.
type MonthToken struct {
	Name   string
	Number string
}

var MonthTokens = []MonthToken{
	{"january", "01"}, {"february", "02"}, {"march", "03"}, {"april", "04"},
	{"may", "05"}, {"june", "06"}, {"july", "07"}, {"august", "08"},
	{"september", "09"}, {"october", "10"}, {"november", "11"}, {"december", "12"},
	{"jan", "01"}, {"feb", "02"}, {"mar", "03"}, {"apr", "04"},
	{"jun", "06"}, {"jul", "07"}, {"aug", "08"}, {"sep", "09"},
	{"oct", "10"}, {"nov", "11"}, {"dec", "12"},
}

// ParseDate attempts to parse a date string using each of CommonFormats.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := strings.TrimSpace(dateStr)
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISO normalizes a date string to YYYY-MM-DD.
func ToISO(dateStr string) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayoutISO), nil
}

// MonthName returns the English month name for a two-digit month number,
// or the input unchanged when it is not a valid month.
func MonthName(monthNum string) string {
	t, err := time.Parse("01", monthNum)
	if err != nil {
		return monthNum
	}
	return t.Format("January")
}

// ElapsedDays returns the inclusive day span between two ISO dates. A span
// within a single day counts as one day; the result is never less than
// one, even for unparsable input, so it is safe as a divisor.
func ElapsedDays(startISO, endISO string) int {
	start, err := time.Parse(DateLayoutISO, startISO)
	if err != nil {
		return 1
	}
	end, err := time.Parse(DateLayoutISO, endISO)
	if err != nil {
		return 1
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}
