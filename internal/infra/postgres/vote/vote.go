package infra_postgres_vote

import (
	"context"
	"database/sql"
	"time"

	"github.com/Kieransaunders/moviezang-core/internal/model"
	usecase_vote "github.com/Kieransaunders/moviezang-core/internal/usecase/vote"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	ID              uuid.UUID `db:"id"`
	Code            string    `db:"code"`
	Category        string    `db:"category"`
	HostID          string    `db:"host_id"`
	Status          string    `db:"status"`
	MaxParticipants int       `db:"max_participants"`
	ExpiresAt       time.Time `db:"expires_at"`
	CreatedAt       time.Time `db:"created_at"`
}

func (d *Driver) RoomByID(ctx context.Context, roomID uuid.UUID) (model.Room, error) {
	var room roomDTO

	query := `
		SELECT id, code, category, host_id, status, max_participants, expires_at, created_at
		FROM rooms
		WHERE id = $1
	`

	err := d.db.GetContext(ctx, &room, query, roomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Room{}, usecase_vote.ErrResourceNotFound
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

func (d *Driver) SetRoomStatus(ctx context.Context, roomID uuid.UUID, status model.RoomStatus) error {
	query := `
		UPDATE rooms
		SET status = $1
		WHERE id = $2
	`

	result, err := d.db.ExecContext(ctx, query, status, roomID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_vote.ErrResourceNotFound
	}
	return nil
}

func (d *Driver) IsParticipant(ctx context.Context, roomID uuid.UUID, participantID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM room_participants
			WHERE room_id = $1 AND participant_id = $2
		)
	`

	if err := d.db.GetContext(ctx, &exists, query, roomID, participantID); err != nil {
		return false, err
	}
	return exists, nil
}

func (d *Driver) MovieExists(ctx context.Context, movieID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM movies WHERE id = $1)`

	if err := d.db.GetContext(ctx, &exists, query, movieID); err != nil {
		return false, err
	}
	return exists, nil
}

func (d *Driver) MovieLinked(ctx context.Context, roomID, movieID uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM room_movies
			WHERE room_id = $1 AND movie_id = $2
		)
	`

	if err := d.db.GetContext(ctx, &exists, query, roomID, movieID); err != nil {
		return false, err
	}
	return exists, nil
}

// Upsert keeps exactly one row per (room, movie, participant). The
// composite unique index is the conflict target, so two racing first
// submissions collapse into insert-then-overwrite instead of surfacing
// a unique violation. xmax is nonzero only on the updated row version.
func (d *Driver) Upsert(ctx context.Context, vote model.Vote) (uuid.UUID, bool, error) {
	query := `
		INSERT INTO votes (id, room_id, movie_id, participant_id, vote_type, voted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (room_id, movie_id, participant_id)
		DO UPDATE SET vote_type = EXCLUDED.vote_type, voted_at = EXCLUDED.voted_at
		RETURNING id, (xmax <> 0) AS updated
	`

	var row struct {
		ID      uuid.UUID `db:"id"`
		Updated bool      `db:"updated"`
	}
	if err := d.db.GetContext(ctx, &row, query,
		vote.ID, vote.RoomID, vote.MovieID, vote.ParticipantID, vote.VoteType, vote.VotedAt,
	); err != nil {
		return uuid.Nil, false, err
	}
	return row.ID, row.Updated, nil
}

func (d *Driver) SetVotingCompleted(ctx context.Context, roomID uuid.UUID, participantID string, completedAt *time.Time) error {
	query := `
		UPDATE room_participants
		SET voting_completed_at = $1
		WHERE room_id = $2 AND participant_id = $3
	`

	result, err := d.db.ExecContext(ctx, query, completedAt, roomID, participantID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_vote.ErrResourceNotFound
	}
	return nil
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
