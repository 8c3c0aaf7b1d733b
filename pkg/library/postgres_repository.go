package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores tracks and libraries in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new repository backed by pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) UpsertTrack(ctx context.Context, id string, params AddTrackParams) (*Track, error) {
	query := `
		INSERT INTO tracks (id, source, source_id, title, artist, duration_sec, cover_url, audio_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (source, source_id)
		DO UPDATE SET audio_url = COALESCE(tracks.audio_url, EXCLUDED.audio_url)
		RETURNING id, source, source_id, title, artist, duration_sec, cover_url, audio_url, created_at
	`

	var t Track
	err := r.db.QueryRow(ctx, query,
		id,
		params.Source,
		params.SourceID,
		params.Title,
		params.Artist,
		params.DurationSec,
		params.CoverURL,
		params.AudioURL,
	).Scan(
		&t.ID,
		&t.Source,
		&t.SourceID,
		&t.Title,
		&t.Artist,
		&t.DurationSec,
		&t.CoverURL,
		&t.AudioURL,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert track: %w", err)
	}
	return &t, nil
}

func (r *PostgresRepository) AddUserTrack(ctx context.Context, id, userID, trackID string) (*UserTrack, bool, error) {
	insert := `
		INSERT INTO user_tracks (id, user_id, track_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, track_id) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, insert, id, userID, trackID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to add user track: %w", err)
	}

	query := userTrackSelect + `
		WHERE ut.user_id = $1 AND ut.track_id = $2
	`
	ut, err := scanUserTrack(r.db.QueryRow(ctx, query, userID, trackID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, ErrUserTrackNotFound
		}
		return nil, false, fmt.Errorf("failed to get user track: %w", err)
	}
	return ut, tag.RowsAffected() == 1, nil
}

func (r *PostgresRepository) ListUserTracks(ctx context.Context, userID string) ([]UserTrack, error) {
	query := userTrackSelect + `
		WHERE ut.user_id = $1
		ORDER BY ut.created_at DESC, ut.id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user tracks: %w", err)
	}
	defer rows.Close()

	tracks := []UserTrack{}
	for rows.Next() {
		ut, err := scanUserTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user track: %w", err)
		}
		tracks = append(tracks, *ut)
	}
	return tracks, rows.Err()
}

const userTrackSelect = `
		SELECT ut.id, ut.user_id, ut.liked, ut.play_count, ut.offline_available, ut.created_at,
		       t.id, t.source, t.source_id, t.title, t.artist, t.duration_sec, t.cover_url, t.audio_url, t.created_at
		FROM user_tracks ut
		JOIN tracks t ON t.id = ut.track_id
`

func scanUserTrack(row pgx.Row) (*UserTrack, error) {
	var ut UserTrack
	err := row.Scan(
		&ut.ID,
		&ut.UserID,
		&ut.Liked,
		&ut.PlayCount,
		&ut.OfflineAvailable,
		&ut.CreatedAt,
		&ut.Track.ID,
		&ut.Track.Source,
		&ut.Track.SourceID,
		&ut.Track.Title,
		&ut.Track.Artist,
		&ut.Track.DurationSec,
		&ut.Track.CoverURL,
		&ut.Track.AudioURL,
		&ut.Track.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ut, nil
}
