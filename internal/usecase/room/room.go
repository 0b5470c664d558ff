package usecase_room

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"strconv"
	"time"

	"github.com/Kieransaunders/moviezang-core/internal/model"
	"github.com/google/uuid"
)

var (
	ErrCodeConflict     = errors.New("code conflict")
	ErrRoomsUnavailable = errors.New("unable to allocate unique code")
	ErrResourceNotFound = errors.New("no such resource")
	ErrRoomNotActive    = errors.New("room is not active")
	ErrRoomExpired      = errors.New("room expired")
	ErrAlreadyJoined    = errors.New("participant already joined")
	ErrRoomFull         = errors.New("room is full")
	ErrInternal         = errors.New("internal error")
)

//go:generate mockery --name=RoomRepository --output=./mocks/repository --filename=repository.go
type RoomRepository interface {
	// CreateWithHost inserts the room and its host membership atomically.
	// Returns ErrCodeConflict when the code is already taken.
	CreateWithHost(ctx context.Context, room model.Room, host model.RoomParticipant) error
	RoomByID(ctx context.Context, roomID uuid.UUID) (model.Room, error)
	RoomByCode(ctx context.Context, code string) (model.Room, error)
	SetStatus(ctx context.Context, roomID uuid.UUID, status model.RoomStatus) error
	// AddParticipant runs the capacity check and the insert in one
	// transaction per room. Returns ErrRoomFull or ErrAlreadyJoined.
	AddParticipant(ctx context.Context, p model.RoomParticipant) error
	// RemoveParticipant reports how many members remain after removal.
	RemoveParticipant(ctx context.Context, roomID uuid.UUID, participantID string) (int, error)
	Participants(ctx context.Context, roomID uuid.UUID) ([]model.RoomParticipant, error)
}

//go:generate mockery --name=CodeCache --output=./mocks/codecache --filename=codecache.go
type CodeCache interface {
	Contains(ctx context.Context, code string) (bool, error)
	Add(ctx context.Context, code string) error
	Remove(ctx context.Context, code string) error
}

type Usecase struct {
	roomRepository RoomRepository
	codes          CodeCache

	rng             *rand.Rand
	codeRetries     int
	defaultCapacity int
	logger          *slog.Logger
}

type Option func(*Usecase)

func WithRand(rng *rand.Rand) Option {
	return func(u *Usecase) {
		u.rng = rng
	}
}

func WithCodeRetries(n int) Option {
	return func(u *Usecase) {
		if n > 0 {
			u.codeRetries = n
		}
	}
}

func WithDefaultCapacity(n int) Option {
	return func(u *Usecase) {
		if n > 0 {
			u.defaultCapacity = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(roomRepository RoomRepository, codes CodeCache, opts ...Option) *Usecase {
	u := &Usecase{
		roomRepository:  roomRepository,
		codes:           codes,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		codeRetries:     10,
		defaultCapacity: model.DefaultMaxParticipants,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Create allocates a room with a unique 4-digit code and atomically seats
// the host as its first participant.
func (u *Usecase) Create(ctx context.Context, category string, hostID string, maxParticipants int) (model.Room, error) {
	if maxParticipants <= 0 {
		maxParticipants = u.defaultCapacity
	}

	now := time.Now()
	for attempt := 0; attempt < u.codeRetries; attempt++ {
		code := u.buildRoomCode()

		// Best-effort pre-check. The unique index stays authoritative.
		if u.codes != nil {
			if taken, err := u.codes.Contains(ctx, code); err == nil && taken {
				continue
			}
		}

		room := model.Room{
			ID:              uuid.New(),
			Code:            code,
			Category:        category,
			HostID:          hostID,
			Status:          model.StatusActive,
			MaxParticipants: maxParticipants,
			ExpiresAt:       now.Add(model.RoomTTL),
			CreatedAt:       now,
		}
		host := model.RoomParticipant{
			ID:            uuid.New(),
			RoomID:        room.ID,
			ParticipantID: hostID,
			IsHost:        true,
			JoinedAt:      now,
		}

		if err := u.roomRepository.CreateWithHost(ctx, room, host); err != nil {
			if errors.Is(err, ErrCodeConflict) {
				continue
			}
			return model.Room{}, errors.Join(ErrInternal, err)
		}

		if u.codes != nil {
			if err := u.codes.Add(ctx, code); err != nil {
				u.logger.Warn("failed to cache room code",
					slog.String("code", code),
					slog.String("error", err.Error()))
			}
		}
		return room, nil
	}

	return model.Room{}, ErrRoomsUnavailable
}

// Codes are short-lived and typed by hand, so a compact keyspace with
// bounded retry beats a counter that would leak room volume.
func (u *Usecase) buildRoomCode() string {
	return strconv.Itoa(1000 + u.rng.Intn(9000))
}

// Room returns the stored room with the lazy-expiry projection applied.
// The projection is never written back here.
func (u *Usecase) Room(ctx context.Context, roomID uuid.UUID) (model.Room, error) {
	room, err := u.roomRepository.RoomByID(ctx, roomID)
	if err != nil {
		return model.Room{}, u.classify(err)
	}
	room.Status = room.EffectiveStatus(time.Now())
	return room, nil
}

func (u *Usecase) RoomByCode(ctx context.Context, code string) (model.Room, error) {
	room, err := u.roomRepository.RoomByCode(ctx, code)
	if err != nil {
		return model.Room{}, u.classify(err)
	}
	room.Status = room.EffectiveStatus(time.Now())
	return room, nil
}

func (u *Usecase) Join(ctx context.Context, roomID uuid.UUID, participantID string) (model.Room, error) {
	room, err := u.roomRepository.RoomByID(ctx, roomID)
	if err != nil {
		return model.Room{}, u.classify(err)
	}
	if err := u.join(ctx, room, participantID); err != nil {
		return model.Room{}, err
	}
	return room, nil
}

func (u *Usecase) JoinByCode(ctx context.Context, code string, participantID string) (model.Room, error) {
	room, err := u.roomRepository.RoomByCode(ctx, code)
	if err != nil {
		return model.Room{}, u.classify(err)
	}
	if err := u.join(ctx, room, participantID); err != nil {
		return model.Room{}, err
	}
	return room, nil
}

func (u *Usecase) join(ctx context.Context, room model.Room, participantID string) error {
	now := time.Now()

	if room.Status != model.StatusActive {
		return ErrRoomNotActive
	}
	if room.ExpiresAt.Before(now) {
		// The one read path that persists expiry.
		if err := u.roomRepository.SetStatus(ctx, room.ID, model.StatusExpired); err != nil {
			return errors.Join(ErrInternal, err)
		}
		u.evictCode(ctx, room.Code)
		return ErrRoomExpired
	}

	err := u.roomRepository.AddParticipant(ctx, model.RoomParticipant{
		ID:            uuid.New(),
		RoomID:        room.ID,
		ParticipantID: participantID,
		JoinedAt:      now,
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyJoined) || errors.Is(err, ErrRoomFull) {
			return err
		}
		return u.classify(err)
	}
	return nil
}

// Leave removes the membership row. A leave that empties an active room
// marks it completed: emptied by attrition, as opposed to expired by the
// clock. Terminal statuses are never rewritten.
func (u *Usecase) Leave(ctx context.Context, roomID uuid.UUID, participantID string) error {
	remaining, err := u.roomRepository.RemoveParticipant(ctx, roomID, participantID)
	if err != nil {
		return u.classify(err)
	}

	if remaining == 0 {
		room, err := u.roomRepository.RoomByID(ctx, roomID)
		if err != nil {
			return u.classify(err)
		}
		if room.Status == model.StatusActive {
			if err := u.roomRepository.SetStatus(ctx, roomID, model.StatusCompleted); err != nil {
				return errors.Join(ErrInternal, err)
			}
			u.evictCode(ctx, room.Code)
		}
	}
	return nil
}

func (u *Usecase) Participants(ctx context.Context, roomID uuid.UUID) ([]model.RoomParticipant, error) {
	participants, err := u.roomRepository.Participants(ctx, roomID)
	if err != nil {
		return nil, u.classify(err)
	}
	return participants, nil
}

// evictCode drops a terminal room's code from the cache so allocation can
// hand it out again. Best effort, same as Add.
func (u *Usecase) evictCode(ctx context.Context, code string) {
	if u.codes == nil {
		return
	}
	if err := u.codes.Remove(ctx, code); err != nil {
		u.logger.Warn("failed to evict room code",
			slog.String("code", code),
			slog.String("error", err.Error()))
	}
}

func (u *Usecase) classify(err error) error {
	if errors.Is(err, ErrResourceNotFound) {
		return ErrResourceNotFound
	}
	return errors.Join(ErrInternal, err)
}
