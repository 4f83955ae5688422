package models

// Artist represents a payee on the platform.
type Artist struct {
	// ID is the unique identifier for the artist (UUID format).
	ID string

	// Name is the display name of the artist.
	Name string

	// LabelID is the label roster this artist belongs to, if any.
	// Empty for independent artists.
	LabelID string

	// CreatedAt is the Unix timestamp when the artist was created.
	CreatedAt int64
}

// Track represents a recording in the catalog.
type Track struct {
	// ID is the unique identifier for the track (UUID format).
	ID string

	// Title is the track title as delivered to stores.
	Title string

	// ISRC is the International Standard Recording Code.
	ISRC string

	// CreatedAt is the Unix timestamp when the track was created.
	CreatedAt int64
}

// Split is an artist's fractional ownership claim over a track's revenue.
//
// Multiple splits may exist for the same (artist, track) pair; the balance
// engine sums them. The sum of percents across artists on one track is not
// required to equal 100 here - that is a data-entry concern upstream.
type Split struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// ArtistID is the artist who owns this share.
	ArtistID string

	// TrackID is the track this share applies to.
	TrackID string

	// Percent is the revenue share in the range 0-100. Out-of-range values
	// pass through arithmetic unchanged; validation lives upstream.
	Percent float64

	// Recoupable marks this share as subject to recoupment. If any split an
	// artist holds on a track is recoupable, the artist's entire earned
	// share on that track counts as recoupable income.
	Recoupable bool
}
