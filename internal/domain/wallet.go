package domain

import "time"

// WalletEntryKind is the type of a staff wallet ledger entry
type WalletEntryKind string

const (
	WalletEarning    WalletEntryKind = "earning"
	WalletPayout     WalletEntryKind = "payout"
	WalletAdjustment WalletEntryKind = "adjustment"
)

// WalletEntry is an append-only staff ledger record. Balance is the running sum.
type WalletEntry struct {
	ID          int64
	StaffID     int64
	OrderID     *int64
	AmountMinor int64
	Kind        WalletEntryKind
	CreatedAt   time.Time
}

// LoyaltyCard accumulates points and stamps of a client at a branch
type LoyaltyCard struct {
	ClientID  int64
	BranchID  int64
	Points    int64
	Stamps    int64
	UpdatedAt time.Time
}

// Settlement is the recorded outcome of completing an order.
// Stored once per order so repeated completions return the same figures.
type Settlement struct {
	OrderID               int64
	StaffID               *int64
	EarningMinor          int64
	LoyaltyPointsAdded    int64
	LoyaltyStampsAdded    int64
	CommissionBasisPoints int
	CreatedAt             time.Time
}
