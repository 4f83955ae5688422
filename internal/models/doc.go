// Package models defines the core domain records for the royalty backend.
//
// # Collections
//
//   - Artist: a payee; belongs to at most one label
//   - Track: a recording in the catalog (title + ISRC)
//   - Split: an artist's percentage claim on a track's revenue
//   - Earning: an immutable per-track, per-period revenue fact from a store
//   - Advance / RecoupCost: open recoupable liabilities against an artist
//   - Payout: money requested by or paid to an artist
//
// # Design Principles
//
//  1. **Read-only engine**: the balance engine only reads these records;
//     liabilities are adjusted by admin actions, never auto-decremented.
//  2. **Typed statuses**: payout and liability states are named constants,
//     not free-form strings.
//  3. **Avoid circular references**: records point at each other via ID
//     strings, never pointers.
//  4. **USD at the edges**: earnings carry their settlement currency; every
//     other amount is already USD.
package models
