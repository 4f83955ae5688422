package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kushtunes/royalty/internal/models"
	"github.com/kushtunes/royalty/internal/storage"
)

// CreateArtist persists a new artist to the database.
func (s *SQLiteStore) CreateArtist(ctx context.Context, artist *models.Artist) error {
	if artist.ID == "" {
		artist.ID = uuid.New().String()
	}
	if artist.CreatedAt == 0 {
		artist.CreatedAt = time.Now().Unix()
	}

	var labelID interface{}
	if artist.LabelID != "" {
		labelID = artist.LabelID
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO artists (id, name, label_id, created_at) VALUES (?, ?, ?, ?)",
		artist.ID, artist.Name, labelID, artist.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert artist: %w", err)
	}
	return nil
}

// GetArtist retrieves an artist by ID.
func (s *SQLiteStore) GetArtist(ctx context.Context, artistID string) (*models.Artist, error) {
	artist := &models.Artist{}
	var labelID sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, label_id, created_at FROM artists WHERE id = ?",
		artistID,
	).Scan(&artist.ID, &artist.Name, &labelID, &artist.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("artist %s: %w", artistID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artist: %w", err)
	}

	if labelID.Valid {
		artist.LabelID = labelID.String
	}
	return artist, nil
}

// ListArtistsByLabel returns the roster of a label.
func (s *SQLiteStore) ListArtistsByLabel(ctx context.Context, labelID string) ([]*models.Artist, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, label_id, created_at FROM artists WHERE label_id = ? ORDER BY name",
		labelID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists by label: %w", err)
	}
	defer rows.Close()

	var artists []*models.Artist
	for rows.Next() {
		artist := &models.Artist{}
		var label sql.NullString
		if err := rows.Scan(&artist.ID, &artist.Name, &label, &artist.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		if label.Valid {
			artist.LabelID = label.String
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate artists: %w", err)
	}
	return artists, nil
}

// CreateTrack persists a new track to the database.
func (s *SQLiteStore) CreateTrack(ctx context.Context, track *models.Track) error {
	if track.ID == "" {
		track.ID = uuid.New().String()
	}
	if track.CreatedAt == 0 {
		track.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tracks (id, title, isrc, created_at) VALUES (?, ?, ?, ?)",
		track.ID, track.Title, track.ISRC, track.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert track: %w", err)
	}
	return nil
}

// CreateSplit persists a new split row to the database.
func (s *SQLiteStore) CreateSplit(ctx context.Context, split *models.Split) error {
	if split.ID == "" {
		split.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO splits (id, artist_id, track_id, percent, recoupable) VALUES (?, ?, ?, ?, ?)",
		split.ID, split.ArtistID, split.TrackID, split.Percent, split.Recoupable,
	)
	if err != nil {
		return fmt.Errorf("failed to insert split: %w", err)
	}
	return nil
}

// ListSplitsByArtist returns every split row the artist holds.
func (s *SQLiteStore) ListSplitsByArtist(ctx context.Context, artistID string) ([]*models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, artist_id, track_id, percent, recoupable FROM splits WHERE artist_id = ?",
		artistID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer rows.Close()

	var splits []*models.Split
	for rows.Next() {
		split := &models.Split{}
		if err := rows.Scan(&split.ID, &split.ArtistID, &split.TrackID, &split.Percent, &split.Recoupable); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}
