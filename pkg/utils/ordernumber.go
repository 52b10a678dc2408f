package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Order numbers are <YYYYMMDD>-<N>, N being the order's position within
// its calendar day. Historical rows may still carry the legacy
// ORD-<yyyyMMddHHmmss>-<random> format, which stays valid for lookups.

const orderDateLayout = "20060102"

var legacyOrderNumberRe = regexp.MustCompile(`^ORD-\d{14}-\d{4}$`)

// FormatOrderNumber builds the order number for the seq-th order of the
// given day.
func FormatOrderNumber(day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%d", day.Format(orderDateLayout), seq)
}

// OrderSequenceDate returns the YYYYMMDD key used by the per-day sequence
// counter.
func OrderSequenceDate(day time.Time) string {
	return day.Format(orderDateLayout)
}

// ParseOrderNumber splits a date-sequence order number into its day and
// sequence parts. Legacy numbers do not parse.
func ParseOrderNumber(orderNumber string) (time.Time, int64, error) {
	parts := strings.SplitN(orderNumber, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("malformed order number %q", orderNumber)
	}
	day, err := time.Parse(orderDateLayout, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("malformed order number %q: %w", orderNumber, err)
	}
	seq, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || seq < 1 {
		return time.Time{}, 0, fmt.Errorf("malformed order number %q", orderNumber)
	}
	return day, seq, nil
}

// IsLegacyOrderNumber reports whether the number uses the retired
// ORD-<timestamp>-<random> format.
func IsLegacyOrderNumber(orderNumber string) bool {
	return legacyOrderNumberRe.MatchString(orderNumber)
}
