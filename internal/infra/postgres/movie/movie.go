package infra_postgres_movie

import (
	"context"
	"fmt"

	"github.com/Kieransaunders/moviezang-core/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// UpsertByTMDBID inserts on first reference and short-circuits otherwise.
// DO NOTHING keeps stored metadata frozen; the RETURNING round trip only
// fires on insert, so existing rows need the follow-up lookup.
func (r *Repository) UpsertByTMDBID(ctx context.Context, mm model.MovieMeta) (uuid.UUID, error) {
	movieDB := FromDomain(mm)

	insert := `
		INSERT INTO movies (id, tmdb_id, title, overview, poster_path, release_date, genre_ids, streaming_platforms, vote_average, runtime, created_at)
		VALUES (:id, :tmdb_id, :title, :overview, :poster_path, :release_date, :genre_ids, :streaming_platforms, :vote_average, :runtime, :created_at)
		ON CONFLICT (tmdb_id) DO NOTHING
		RETURNING id
	`

	rows, err := r.db.NamedQueryContext(ctx, insert, movieDB)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert movie: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return uuid.Nil, err
		}
		return id, nil
	}

	var existingID uuid.UUID
	lookup := `SELECT id FROM movies WHERE tmdb_id = $1`
	if err := r.db.GetContext(ctx, &existingID, lookup, mm.TMDBID); err != nil {
		return uuid.Nil, fmt.Errorf("failed to resolve existing movie: %w", err)
	}
	return existingID, nil
}

// LinkMovies writes the slate junction rows, position = slice index.
func (r *Repository) LinkMovies(ctx context.Context, roomID uuid.UUID, movieIDs []uuid.UUID) error {
	if len(movieIDs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	insert := `
		INSERT INTO room_movies (id, room_id, movie_id, position)
		VALUES ($1, $2, $3, $4)
	`

	for i, movieID := range movieIDs {
		if _, err := tx.ExecContext(ctx, insert, uuid.New(), roomID, movieID, i); err != nil {
			return fmt.Errorf("failed to link movie %s: %w", movieID, err)
		}
	}

	return tx.Commit()
}

func (r *Repository) SlateSize(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(id)
		FROM room_movies
		WHERE room_id = $1
	`

	if err := r.db.GetContext(ctx, &count, query, roomID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) MoviesByRoom(ctx context.Context, roomID uuid.UUID) ([]*model.MovieMeta, error) {
	query := `
		SELECT m.id, m.tmdb_id, m.title, m.overview, m.poster_path, m.release_date, m.genre_ids, m.streaming_platforms, m.vote_average, m.runtime, m.created_at
		FROM movies m
		JOIN room_movies rm ON rm.movie_id = m.id
		WHERE rm.room_id = $1
		ORDER BY rm.position
	`

	var moviesDB []MovieDB
	if err := r.db.SelectContext(ctx, &moviesDB, query, roomID); err != nil {
		return nil, fmt.Errorf("failed to query room slate: %w", err)
	}

	movies := make([]*model.MovieMeta, len(moviesDB))
	for i, movieDB := range moviesDB {
		domainMovie := movieDB.ToDomain()
		movies[i] = &domainMovie
	}
	return movies, nil
}
