package dataset

import (
	"fmt"
	"time"
)

const (
	// dateLayout is the source file's date format. The UCI file writes
	// days and months without zero padding (16/12/2006, 1/2/2007), so the
	// layout must be non-padded; it accepts padded values too.
	dateLayout = "2/1/2006"
	// rangeLayout is the format accepted on the command line and in config.
	rangeLayout = "2006-01-02"
)

// DateRange is an inclusive pair of calendar dates. Time components are
// ignored; a range covers whole days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseRange builds a DateRange from two YYYY-MM-DD strings.
func ParseRange(from, to string) (DateRange, error) {
	start, err := time.Parse(rangeLayout, from)
	if err != nil {
		return DateRange{}, fmt.Errorf("parsing range start %q: %w", from, err)
	}
	end, err := time.Parse(rangeLayout, to)
	if err != nil {
		return DateRange{}, fmt.Errorf("parsing range end %q: %w", to, err)
	}
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("range end %s is before start %s", to, from)
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether the calendar date of t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format(rangeLayout), r.End.Format(rangeLayout))
}
