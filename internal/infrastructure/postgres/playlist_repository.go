package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// PlaylistRepository implements repository.PlaylistRepository using PostgreSQL.
// Membership changes are single conditional statements, so concurrent adds of the
// same video cannot both succeed.
type PlaylistRepository struct {
	db DBTX
}

// NewPlaylistRepository creates a new PlaylistRepository instance.
func NewPlaylistRepository(db DBTX) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(ctx context.Context, p *model.Playlist) error {
	const query = `
		INSERT INTO playlists (id, owner_id, name, description, video_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	metrics.ObserveQuery(metrics.DBQueryInsert, metrics.TablePlaylists)
	_, err := r.db.Exec(ctx, query, p.ID, p.OwnerID, p.Name, p.Description, p.VideoIDs, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	return nil
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error) {
	const query = `
		SELECT id, owner_id, name, description, video_ids, created_at, updated_at
		FROM playlists
		WHERE id = $1
	`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TablePlaylists)
	p, err := scanPlaylist(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist by ID: %w", err)
	}

	return p, nil
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Playlist, error) {
	const query = `
		SELECT id, owner_id, name, description, video_ids, created_at, updated_at
		FROM playlists
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TablePlaylists)
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := []*model.Playlist{}
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating playlists: %w", err)
	}

	return playlists, nil
}

func (r *PlaylistRepository) UpdateDetails(ctx context.Context, p *model.Playlist) error {
	const query = `
		UPDATE playlists
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1
	`

	p.UpdatedAt = time.Now()

	metrics.ObserveQuery(metrics.DBQueryUpdate, metrics.TablePlaylists)
	tag, err := r.db.Exec(ctx, query, p.ID, p.Name, p.Description, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrPlaylistNotFound
	}

	return nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM playlists WHERE id = $1`

	metrics.ObserveQuery(metrics.DBQueryDelete, metrics.TablePlaylists)
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrPlaylistNotFound
	}

	return nil
}

// AppendVideo appends videoID only when it is not already present.
func (r *PlaylistRepository) AppendVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	const query = `
		UPDATE playlists
		SET video_ids = array_append(video_ids, $2), updated_at = $3
		WHERE id = $1 AND NOT ($2 = ANY(video_ids))
	`

	metrics.ObserveQuery(metrics.DBQueryUpdate, metrics.TablePlaylists)
	tag, err := r.db.Exec(ctx, query, playlistID, videoID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to append video to playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, playlistID)
	}

	return nil
}

// RemoveVideo removes every occurrence of videoID.
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	const query = `
		UPDATE playlists
		SET video_ids = array_remove(video_ids, $2), updated_at = $3
		WHERE id = $1
	`

	metrics.ObserveQuery(metrics.DBQueryUpdate, metrics.TablePlaylists)
	tag, err := r.db.Exec(ctx, query, playlistID, videoID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to remove video from playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrPlaylistNotFound
	}

	return nil
}

// missOrConflict distinguishes a missing playlist from a rejected duplicate append.
func (r *PlaylistRepository) missOrConflict(ctx context.Context, playlistID uuid.UUID) error {
	const query = `SELECT EXISTS (SELECT 1 FROM playlists WHERE id = $1)`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TablePlaylists)
	var exists bool
	if err := r.db.QueryRow(ctx, query, playlistID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check playlist: %w", err)
	}
	if !exists {
		return repository.ErrPlaylistNotFound
	}
	return model.ErrVideoAlreadyInPlaylist
}

func scanPlaylist(row pgx.Row) (*model.Playlist, error) {
	var p model.Playlist
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.VideoIDs, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.VideoIDs == nil {
		p.VideoIDs = []uuid.UUID{}
	}
	return &p, nil
}

var _ repository.PlaylistRepository = (*PlaylistRepository)(nil)
