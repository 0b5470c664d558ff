package infra_postgres_results

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	infra_postgres_movie "github.com/Kieransaunders/moviezang-core/internal/infra/postgres/movie"
	"github.com/Kieransaunders/moviezang-core/internal/model"
	usecase_results "github.com/Kieransaunders/moviezang-core/internal/usecase/results"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

func (d *Driver) RoomByID(ctx context.Context, roomID uuid.UUID) (model.Room, error) {
	var room struct {
		ID              uuid.UUID `db:"id"`
		Code            string    `db:"code"`
		Category        string    `db:"category"`
		HostID          string    `db:"host_id"`
		Status          string    `db:"status"`
		MaxParticipants int       `db:"max_participants"`
		ExpiresAt       time.Time `db:"expires_at"`
		CreatedAt       time.Time `db:"created_at"`
	}

	query := `
		SELECT id, code, category, host_id, status, max_participants, expires_at, created_at
		FROM rooms
		WHERE id = $1
	`

	err := d.db.GetContext(ctx, &room, query, roomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Room{}, usecase_results.ErrResourceNotFound
		}
		return model.Room{}, err
	}

	return model.Room{
		ID:              room.ID,
		Code:            room.Code,
		Category:        room.Category,
		HostID:          room.HostID,
		Status:          room.Status,
		MaxParticipants: room.MaxParticipants,
		ExpiresAt:       room.ExpiresAt,
		CreatedAt:       room.CreatedAt,
	}, nil
}

type voteDTO struct {
	ID            uuid.UUID `db:"id"`
	RoomID        uuid.UUID `db:"room_id"`
	MovieID       uuid.UUID `db:"movie_id"`
	ParticipantID string    `db:"participant_id"`
	VoteType      string    `db:"vote_type"`
	VotedAt       time.Time `db:"voted_at"`
}

// VotesByRoom returns votes in insertion order so tie-broken rankings
// stay stable across reads.
func (d *Driver) VotesByRoom(ctx context.Context, roomID uuid.UUID) ([]model.Vote, error) {
	query := `
		SELECT id, room_id, movie_id, participant_id, vote_type, voted_at
		FROM votes
		WHERE room_id = $1
		ORDER BY voted_at, id
	`

	var dtos []voteDTO
	if err := d.db.SelectContext(ctx, &dtos, query, roomID); err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}

	votes := make([]model.Vote, len(dtos))
	for i, dto := range dtos {
		votes[i] = model.Vote{
			ID:            dto.ID,
			RoomID:        dto.RoomID,
			MovieID:       dto.MovieID,
			ParticipantID: dto.ParticipantID,
			VoteType:      dto.VoteType,
			VotedAt:       dto.VotedAt,
		}
	}
	return votes, nil
}

type participantDTO struct {
	ID                uuid.UUID  `db:"id"`
	RoomID            uuid.UUID  `db:"room_id"`
	ParticipantID     string     `db:"participant_id"`
	IsHost            bool       `db:"is_host"`
	JoinedAt          time.Time  `db:"joined_at"`
	VotingCompletedAt *time.Time `db:"voting_completed_at"`
}

func (d *Driver) Participants(ctx context.Context, roomID uuid.UUID) ([]model.RoomParticipant, error) {
	query := `
		SELECT id, room_id, participant_id, is_host, joined_at, voting_completed_at
		FROM room_participants
		WHERE room_id = $1
		ORDER BY joined_at
	`

	var dtos []participantDTO
	if err := d.db.SelectContext(ctx, &dtos, query, roomID); err != nil {
		return nil, err
	}

	participants := make([]model.RoomParticipant, len(dtos))
	for i, dto := range dtos {
		participants[i] = model.RoomParticipant{
			ID:                dto.ID,
			RoomID:            dto.RoomID,
			ParticipantID:     dto.ParticipantID,
			IsHost:            dto.IsHost,
			JoinedAt:          dto.JoinedAt,
			VotingCompletedAt: dto.VotingCompletedAt,
		}
	}
	return participants, nil
}

func (d *Driver) MoviesByIDs(ctx context.Context, IDs []uuid.UUID) ([]*model.MovieMeta, error) {
	if len(IDs) == 0 {
		return []*model.MovieMeta{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, tmdb_id, title, overview, poster_path, release_date, genre_ids, streaming_platforms, vote_average, runtime, created_at
		FROM movies
		WHERE id IN (?)
	`, IDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	query = d.db.Rebind(query)
	var moviesDB []infra_postgres_movie.MovieDB
	if err := d.db.SelectContext(ctx, &moviesDB, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query movies by ids: %w", err)
	}

	movies := make([]*model.MovieMeta, len(moviesDB))
	for i, movieDB := range moviesDB {
		domainMovie := movieDB.ToDomain()
		movies[i] = &domainMovie
	}
	return movies, nil
}
