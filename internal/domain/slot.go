package domain

import "time"

// Slot represents a candidate bookable window and the staff free during it.
// A slot with no free staff is unavailable but may still be shown.
type Slot struct {
	Start        time.Time
	End          time.Time
	FreeStaffIDs []int64
}

// IsAvailable returns true if at least one staff member is free
func (s *Slot) IsAvailable() bool {
	return len(s.FreeStaffIDs) > 0
}

// IsFreeFor returns true if staffID is in the free set
func (s *Slot) IsFreeFor(staffID int64) bool {
	for _, id := range s.FreeStaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}

// Interval returns the slot window
func (s *Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}
