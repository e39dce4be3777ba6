package domain

import "time"

// Service represents a bookable catalog service of a branch
type Service struct {
	ID              int64
	BranchID        int64
	Name            string
	DurationMinutes int
	PriceMinor      int64
	Active          bool
	DeletedAt       *time.Time
}

// IsBookable returns true if the service is active and not soft-deleted
func (s *Service) IsBookable() bool {
	return s.Active && s.DeletedAt == nil
}

// Product represents a retail product of a branch
type Product struct {
	ID         int64
	BranchID   int64
	Name       string
	PriceMinor int64
	Active     bool
	DeletedAt  *time.Time
}

// IsSellable returns true if the product is active and not soft-deleted
func (p *Product) IsSellable() bool {
	return p.Active && p.DeletedAt == nil
}

// Staff represents a staff member working at a branch
type Staff struct {
	ID                    int64
	BranchID              int64
	Name                  string
	CommissionBasisPoints *int // NULL = DefaultCommissionBasisPoints
	Active                bool
}

// CommissionRate returns the staff commission in basis points with the default fallback
func (s *Staff) CommissionRate() int {
	if s.CommissionBasisPoints == nil {
		return DefaultCommissionBasisPoints
	}
	return *s.CommissionBasisPoints
}
