package models

// PayoutStatus is the lifecycle state of a payout request.
type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "PENDING"
	PayoutApproved  PayoutStatus = "APPROVED"
	PayoutProcessed PayoutStatus = "PROCESSED"
	PayoutRejected  PayoutStatus = "REJECTED"
	PayoutFailed    PayoutStatus = "FAILED"
)

// Valid reports whether s is a known payout status.
func (s PayoutStatus) Valid() bool {
	switch s {
	case PayoutPending, PayoutApproved, PayoutProcessed, PayoutRejected, PayoutFailed:
		return true
	}
	return false
}

// Claimed reports whether the payout counts against the artist's available
// balance. Pending and approved payouts are promised money; processed ones
// are paid. Rejected and failed payouts release their claim.
func (s PayoutStatus) Claimed() bool {
	switch s {
	case PayoutPending, PayoutApproved, PayoutProcessed:
		return true
	}
	return false
}

// Payout is a request to move money from an artist's balance to them.
type Payout struct {
	// ID is the unique identifier for the payout (UUID format).
	ID string

	// ArtistID is the artist being paid.
	ArtistID string

	// AmountUSD is the payout amount.
	AmountUSD float64

	// Method is the payment rail ("bank", "paypal", ...).
	Method string

	// Status is the current lifecycle state.
	Status PayoutStatus

	// CreatedAt is the Unix timestamp when the payout was requested.
	CreatedAt int64
}
