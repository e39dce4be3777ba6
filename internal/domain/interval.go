package domain

import (
	"fmt"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval and checks Start < End.
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("%w: interval start %s must be before end %s",
			ErrValidation, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints do not overlap: [09:00,10:00) and [10:00,11:00) are disjoint.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether other lies fully inside i.
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Minutes returns the interval length in whole minutes.
func (i Interval) Minutes() int {
	return int(i.End.Sub(i.Start) / time.Minute)
}

// AddMinutes shifts t by the given number of minutes in wall-clock terms of t's location.
// DST transitions are not compensated.
func AddMinutes(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}

// BusyInterval is a period during which a staff member is already committed.
type BusyInterval struct {
	StaffID int64
	Interval
}

// GroupBusyByStaff indexes busy intervals by staff id.
func GroupBusyByStaff(busy []BusyInterval) map[int64][]Interval {
	result := make(map[int64][]Interval)
	for _, b := range busy {
		result[b.StaffID] = append(result[b.StaffID], b.Interval)
	}
	return result
}
