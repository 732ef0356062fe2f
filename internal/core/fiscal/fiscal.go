// Package fiscal computes fiscal-year labels used to partition document
// numbering sequences.
package fiscal

import (
	"fmt"
	"time"
)

// Label returns the fiscal-year label for a date given the month the fiscal
// year starts in. The label is the two-digit start and end years concatenated
// with no separator: April 2024 with an April start yields "2425", and
// January 2025 still belongs to "2425".
//
// The label doubles as the sequence partition key, so its format must stay
// stable across releases.
func Label(date time.Time, start time.Month) string {
	y := date.Year() % 100
	if date.Month() >= start {
		return fmt.Sprintf("%02d%02d", y, (y+1)%100)
	}
	return fmt.Sprintf("%02d%02d", (y+99)%100, y)
}

// YearLabel returns the label for the Indian fiscal year (April through March).
func YearLabel(date time.Time) string {
	return Label(date, time.April)
}

// CalendarLabel returns the label for a January-start fiscal year.
func CalendarLabel(date time.Time) string {
	return Label(date, time.January)
}
