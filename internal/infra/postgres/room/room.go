package infra_postgres_room

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Kieransaunders/moviezang-core/internal/model"
	usecase_room "github.com/Kieransaunders/moviezang-core/internal/usecase/room"
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

func (r roomDTO) toDomain() model.Room {
	return model.Room{
		ID:              r.ID,
		Code:            r.Code,
		Category:        r.Category,
		HostID:          r.HostID,
		Status:          r.Status,
		MaxParticipants: r.MaxParticipants,
		ExpiresAt:       r.ExpiresAt,
		CreatedAt:       r.CreatedAt,
	}
}

type participantDTO struct {
	ID                uuid.UUID  `db:"id"`
	RoomID            uuid.UUID  `db:"room_id"`
	ParticipantID     string     `db:"participant_id"`
	IsHost            bool       `db:"is_host"`
	JoinedAt          time.Time  `db:"joined_at"`
	VotingCompletedAt *time.Time `db:"voting_completed_at"`
}

func (p participantDTO) toDomain() model.RoomParticipant {
	return model.RoomParticipant{
		ID:                p.ID,
		RoomID:            p.RoomID,
		ParticipantID:     p.ParticipantID,
		IsHost:            p.IsHost,
		JoinedAt:          p.JoinedAt,
		VotingCompletedAt: p.VotingCompletedAt,
	}
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "unique constraint") ||
		strings.Contains(err.Error(), "duplicate key")
}

func (d *Driver) CreateWithHost(ctx context.Context, room model.Room, host model.RoomParticipant) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	insertRoom := `
		INSERT INTO rooms (id, code, category, host_id, status, max_participants, expires_at, created_at)
		VALUES (:id, :code, :category, :host_id, :status, :max_participants, :expires_at, :created_at)
	`

	if _, err := tx.NamedExecContext(ctx, insertRoom, roomDTO{
		ID:              room.ID,
		Code:            room.Code,
		Category:        room.Category,
		HostID:          room.HostID,
		Status:          room.Status,
		MaxParticipants: room.MaxParticipants,
		ExpiresAt:       room.ExpiresAt,
		CreatedAt:       room.CreatedAt,
	}); err != nil {
		if isUniqueViolation(err) {
			return usecase_room.ErrCodeConflict
		}
		return err
	}

	insertHost := `
		INSERT INTO room_participants (id, room_id, participant_id, is_host, joined_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := tx.ExecContext(ctx, insertHost,
		host.ID, host.RoomID, host.ParticipantID, host.IsHost, host.JoinedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
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
			return model.Room{}, usecase_room.ErrResourceNotFound
		}
		return model.Room{}, err
	}

	return room.toDomain(), nil
}

func (d *Driver) RoomByCode(ctx context.Context, code string) (model.Room, error) {
	var room roomDTO

	query := `
        SELECT id, code, category, host_id, status, max_participants, expires_at, created_at
        FROM rooms
        WHERE code = $1
    `

	err := d.db.GetContext(ctx, &room, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Room{}, usecase_room.ErrResourceNotFound
		}
		return model.Room{}, err
	}

	return room.toDomain(), nil
}

func (d *Driver) SetStatus(ctx context.Context, roomID uuid.UUID, status model.RoomStatus) error {
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
		return usecase_room.ErrResourceNotFound
	}

	return nil
}

// AddParticipant serializes the capacity check against concurrent joins by
// locking the room row for the duration of the transaction.
func (d *Driver) AddParticipant(ctx context.Context, p model.RoomParticipant) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var maxParticipants int
	lockRoom := `
		SELECT max_participants
		FROM rooms
		WHERE id = $1
		FOR UPDATE
	`

	if err := tx.GetContext(ctx, &maxParticipants, lockRoom, p.RoomID); err != nil {
		if err == sql.ErrNoRows {
			return usecase_room.ErrResourceNotFound
		}
		return err
	}

	var exists bool
	checkMember := `
		SELECT EXISTS(
			SELECT 1 FROM room_participants
			WHERE room_id = $1 AND participant_id = $2
		)
	`

	if err := tx.GetContext(ctx, &exists, checkMember, p.RoomID, p.ParticipantID); err != nil {
		return err
	}
	if exists {
		return usecase_room.ErrAlreadyJoined
	}

	var count int
	countMembers := `
		SELECT COUNT(id)
		FROM room_participants
		WHERE room_id = $1
	`

	if err := tx.GetContext(ctx, &count, countMembers, p.RoomID); err != nil {
		return err
	}
	if count >= maxParticipants {
		return usecase_room.ErrRoomFull
	}

	insert := `
		INSERT INTO room_participants (id, room_id, participant_id, is_host, joined_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := tx.ExecContext(ctx, insert,
		p.ID, p.RoomID, p.ParticipantID, p.IsHost, p.JoinedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return usecase_room.ErrAlreadyJoined
		}
		return err
	}

	return tx.Commit()
}

func (d *Driver) RemoveParticipant(ctx context.Context, roomID uuid.UUID, participantID string) (int, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	del := `
		DELETE FROM room_participants
		WHERE room_id = $1 AND participant_id = $2
	`

	result, err := tx.ExecContext(ctx, del, roomID, participantID)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rowsAffected == 0 {
		return 0, usecase_room.ErrResourceNotFound
	}

	var remaining int
	countMembers := `
		SELECT COUNT(id)
		FROM room_participants
		WHERE room_id = $1
	`

	if err := tx.GetContext(ctx, &remaining, countMembers, roomID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return remaining, nil
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
		participants[i] = dto.toDomain()
	}
	return participants, nil
}
