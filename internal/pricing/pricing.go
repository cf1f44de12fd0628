package pricing

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for rental dates.
const DateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a time.Time at UTC
// midnight.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", dateStr)
	}
	return t, nil
}

// ChargeableDays returns the number of billable days for an inclusive date
// range. A same-day rental is billed as one day; otherwise the count is the
// calendar-day difference between end and start.
func ChargeableDays(start, end time.Time) int32 {
	days := int32(end.Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}

// RentalTotalCents computes the total price for a camera over the given
// number of days.
func RentalTotalCents(pricePerDayCents, days int32) int32 {
	return pricePerDayCents * days
}

// Overlaps reports whether two inclusive date ranges share at least one
// calendar day. A range ending on day D overlaps a range starting on day D:
// a physical camera cannot be handed over and picked up the same day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
