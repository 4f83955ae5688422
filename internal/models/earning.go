package models

// Earning is an immutable revenue fact: one track earned some amount at one
// store during one settlement period.
type Earning struct {
	// ID is the unique identifier for the earning (UUID format).
	ID string

	// TrackID is the track the revenue belongs to.
	TrackID string

	// Period is the settlement month in "YYYY-MM" form.
	Period string

	// Store is the reporting storefront (e.g. "Spotify", "Apple Music").
	Store string

	// Amount is the gross revenue in the settlement currency.
	Amount float64

	// Currency is the ISO 4217 code of Amount. Empty means USD.
	Currency string

	// CreatedAt is the Unix timestamp when the earning was ingested.
	CreatedAt int64
}

// StatementRow is one line of a per-period artist statement: an earning
// joined with its track metadata and the artist's share of it.
type StatementRow struct {
	TrackID      string // used to look up the artist's share; not exported to CSV
	Period       string
	Store        string
	TrackTitle   string
	ISRC         string
	Currency     string
	Gross        float64 // gross revenue in the settlement currency
	SharePercent float64 // artist's summed percent on the track
	ShareUSD     float64 // artist's share converted to USD
}
