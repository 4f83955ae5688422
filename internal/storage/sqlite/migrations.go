package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS artists (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    label_id TEXT,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tracks (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    isrc TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS splits (
    id TEXT PRIMARY KEY,
    artist_id TEXT NOT NULL,
    track_id TEXT NOT NULL,
    percent REAL NOT NULL,
    recoupable INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (artist_id) REFERENCES artists(id) ON DELETE CASCADE,
    FOREIGN KEY (track_id) REFERENCES tracks(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS earnings (
    id TEXT PRIMARY KEY,
    track_id TEXT NOT NULL,
    period TEXT NOT NULL,
    store TEXT NOT NULL,
    amount REAL,
    currency TEXT NOT NULL DEFAULT 'USD',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (track_id) REFERENCES tracks(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS advances (
    id TEXT PRIMARY KEY,
    artist_id TEXT NOT NULL,
    amount_usd REAL NOT NULL,
    remaining_usd REAL NOT NULL,
    status TEXT NOT NULL DEFAULT 'open',
    note TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (artist_id) REFERENCES artists(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS recoup_costs (
    id TEXT PRIMARY KEY,
    artist_id TEXT NOT NULL,
    description TEXT NOT NULL,
    amount_usd REAL NOT NULL,
    remaining_usd REAL NOT NULL,
    status TEXT NOT NULL DEFAULT 'open',
    recoupable INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (artist_id) REFERENCES artists(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS payouts (
    id TEXT PRIMARY KEY,
    artist_id TEXT NOT NULL,
    amount_usd REAL NOT NULL,
    method TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'PENDING',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (artist_id) REFERENCES artists(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_artists_label_id ON artists(label_id);
CREATE INDEX IF NOT EXISTS idx_splits_artist_id ON splits(artist_id);
CREATE INDEX IF NOT EXISTS idx_splits_track_id ON splits(track_id);
CREATE INDEX IF NOT EXISTS idx_earnings_track_period ON earnings(track_id, period);
CREATE INDEX IF NOT EXISTS idx_advances_artist_id ON advances(artist_id);
CREATE INDEX IF NOT EXISTS idx_recoup_costs_artist_id ON recoup_costs(artist_id);
CREATE INDEX IF NOT EXISTS idx_payouts_artist_id ON payouts(artist_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
