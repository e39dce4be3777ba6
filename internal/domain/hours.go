package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// OperatingHoursRule represents opening hours of a branch.
// Supports a fallback hierarchy:
// 1. Weekday rule (branch_id, weekday)
// 2. Branch default (branch_id, NULL)
// 3. Hard-coded FallbackOpenTime..FallbackCloseTime
type OperatingHoursRule struct {
	ID        int64
	BranchID  int64
	Weekday   *int // 0=Sunday..6=Saturday, NULL = default rule
	Open      types.TimeString
	Close     types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDefault returns true if the rule applies to any weekday without its own rule
func (r *OperatingHoursRule) IsDefault() bool {
	return r.Weekday == nil
}

// Validate checks the weekday range and open < close
func (r *OperatingHoursRule) Validate() error {
	if r.Weekday != nil && (*r.Weekday < 0 || *r.Weekday > 6) {
		return fmt.Errorf("%w: weekday must be in 0..6, got %d", ErrValidation, *r.Weekday)
	}
	if err := r.Open.Validate(); err != nil {
		return fmt.Errorf("%w: open: %v", ErrValidation, err)
	}
	if err := r.Close.Validate(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrValidation, err)
	}
	if !r.Open.IsBefore(r.Close) {
		return fmt.Errorf("%w: open %s must be before close %s", ErrValidation, r.Open, r.Close)
	}
	return nil
}

// Window returns the opening interval on the calendar day of date, in date's location.
func (r *OperatingHoursRule) Window(date time.Time) (Interval, error) {
	start, err := r.Open.OnDate(date)
	if err != nil {
		return Interval{}, err
	}
	end, err := r.Close.OnDate(date)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// FallbackHours returns the hard-coded 09:00-18:00 rule.
func FallbackHours(branchID int64) OperatingHoursRule {
	return OperatingHoursRule{
		BranchID: branchID,
		Open:     FallbackOpenTime,
		Close:    FallbackCloseTime,
	}
}

// ResolveHours picks the rule for weekday: the weekday rule, then the default rule,
// then the hard-coded fallback.
func ResolveHours(branchID int64, rules []OperatingHoursRule, weekday time.Weekday) OperatingHoursRule {
	var def *OperatingHoursRule
	for i := range rules {
		rule := &rules[i]
		if rule.Weekday != nil && *rule.Weekday == int(weekday) {
			return *rule
		}
		if rule.IsDefault() && def == nil {
			def = rule
		}
	}
	if def != nil {
		return *def
	}
	return FallbackHours(branchID)
}
