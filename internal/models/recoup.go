package models

// LiabilityStatus is the lifecycle state of an advance or recoupable cost.
type LiabilityStatus string

const (
	LiabilityOpen   LiabilityStatus = "open"
	LiabilityClosed LiabilityStatus = "closed"
)

// Valid reports whether s is a known liability status.
func (s LiabilityStatus) Valid() bool {
	return s == LiabilityOpen || s == LiabilityClosed
}

// Advance is money paid to an artist up front, recouped from later earnings.
//
// Created with RemainingUSD equal to AmountUSD. The balance engine never
// decrements RemainingUSD; admins adjust it explicitly.
type Advance struct {
	// ID is the unique identifier for the advance (UUID format).
	ID string

	// ArtistID is the artist the advance was paid to.
	ArtistID string

	// AmountUSD is the original advance amount.
	AmountUSD float64

	// RemainingUSD is the unrecouped balance.
	RemainingUSD float64

	// Status is open while the advance still offsets earnings.
	Status LiabilityStatus

	// Note is an optional description for the advance.
	Note string

	// CreatedAt is the Unix timestamp when the advance was recorded.
	CreatedAt int64
}

// RecoupCost is a chargeable cost (mastering, marketing, video budget...)
// that may be recouped from an artist's earnings.
type RecoupCost struct {
	// ID is the unique identifier for the cost (UUID format).
	ID string

	// ArtistID is the artist the cost is charged against.
	ArtistID string

	// Description says what the money was spent on.
	Description string

	// AmountUSD is the original cost amount.
	AmountUSD float64

	// RemainingUSD is the unrecouped balance.
	RemainingUSD float64

	// Status is open while the cost still offsets earnings.
	Status LiabilityStatus

	// Recoupable gates whether this cost counts against earnings at all.
	// Non-recoupable costs are tracked for reporting only.
	Recoupable bool

	// CreatedAt is the Unix timestamp when the cost was recorded.
	CreatedAt int64
}
