package fields

import "time"

const dateLayout = "02/01/2006"

// ParseDate parses a calendar date in dd/mm/yyyy form. No other format is
// accepted; the time portion of the result is always midnight UTC.
func ParseDate(s string) (time.Time, error) {
	v := Normalize(s)
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: v}
	}
	return t, nil
}
