package usecase_vote

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Kieransaunders/moviezang-core/internal/model"
	"github.com/google/uuid"
)

var (
	ErrResourceNotFound = errors.New("no such resource")
	ErrRoomNotActive    = errors.New("room is not active")
	ErrRoomExpired      = errors.New("room expired")
	ErrNotParticipant   = errors.New("not a participant of this room")
	ErrInvalidVoteType  = errors.New("invalid vote type")
	ErrInternal         = errors.New("internal error")
)

//go:generate mockery --name=VoteRepository --output=./mocks/repository --filename=repository.go
type VoteRepository interface {
	RoomByID(ctx context.Context, roomID uuid.UUID) (model.Room, error)
	SetRoomStatus(ctx context.Context, roomID uuid.UUID, status model.RoomStatus) error
	IsParticipant(ctx context.Context, roomID uuid.UUID, participantID string) (bool, error)
	// MovieLinked reports whether the movie belongs to the room's slate.
	// Distinguishes a missing movie row from an unlinked one.
	MovieLinked(ctx context.Context, roomID, movieID uuid.UUID) (bool, error)
	MovieExists(ctx context.Context, movieID uuid.UUID) (bool, error)
	// Upsert inserts or overwrites in place, keyed on
	// (room_id, movie_id, participant_id). Reports whether an existing
	// row was overwritten.
	Upsert(ctx context.Context, vote model.Vote) (uuid.UUID, bool, error)
	// SetVotingCompleted with a nil timestamp clears the mark.
	// Returns ErrResourceNotFound when the membership row is missing.
	SetVotingCompleted(ctx context.Context, roomID uuid.UUID, participantID string, completedAt *time.Time) error
	Participants(ctx context.Context, roomID uuid.UUID) ([]model.RoomParticipant, error)
}

type Usecase struct {
	voteRepository VoteRepository
}

func New(r VoteRepository) *Usecase {
	return &Usecase{
		voteRepository: r,
	}
}

// Submit records one participant's reaction to one movie. Resubmission
// overwrites the earlier vote; a participant never counts twice for a
// movie.
func (u *Usecase) Submit(ctx context.Context, roomID, movieID uuid.UUID, participantID string, voteType model.VoteType) (uuid.UUID, bool, error) {
	if voteType != model.VoteLike && voteType != model.VoteDislike {
		return uuid.Nil, false, fmt.Errorf("%w: %q", ErrInvalidVoteType, voteType)
	}

	room, err := u.voteRepository.RoomByID(ctx, roomID)
	if err != nil {
		return uuid.Nil, false, u.classify(err)
	}

	now := time.Now()
	if room.Status != model.StatusActive {
		return uuid.Nil, false, ErrRoomNotActive
	}
	if room.ExpiresAt.Before(now) {
		if err := u.voteRepository.SetRoomStatus(ctx, roomID, model.StatusExpired); err != nil {
			return uuid.Nil, false, errors.Join(ErrInternal, err)
		}
		return uuid.Nil, false, ErrRoomExpired
	}

	exists, err := u.voteRepository.MovieExists(ctx, movieID)
	if err != nil {
		return uuid.Nil, false, errors.Join(ErrInternal, err)
	}
	if !exists {
		return uuid.Nil, false, ErrResourceNotFound
	}

	isParticipant, err := u.voteRepository.IsParticipant(ctx, roomID, participantID)
	if err != nil {
		return uuid.Nil, false, errors.Join(ErrInternal, err)
	}
	if !isParticipant {
		return uuid.Nil, false, ErrNotParticipant
	}

	// Votes for movies outside the slate are client bugs, not data.
	linked, err := u.voteRepository.MovieLinked(ctx, roomID, movieID)
	if err != nil {
		return uuid.Nil, false, errors.Join(ErrInternal, err)
	}
	if !linked {
		return uuid.Nil, false, ErrResourceNotFound
	}

	voteID, updated, err := u.voteRepository.Upsert(ctx, model.Vote{
		ID:            uuid.New(),
		RoomID:        roomID,
		MovieID:       movieID,
		ParticipantID: participantID,
		VoteType:      voteType,
		VotedAt:       now,
	})
	if err != nil {
		return uuid.Nil, false, errors.Join(ErrInternal, err)
	}
	return voteID, updated, nil
}

// MarkComplete is an idempotent overwrite: completion is monotonic
// progress, so a retried call just refreshes the timestamp.
func (u *Usecase) MarkComplete(ctx context.Context, roomID uuid.UUID, participantID string) error {
	now := time.Now()
	if err := u.voteRepository.SetVotingCompleted(ctx, roomID, participantID, &now); err != nil {
		return u.classify(err)
	}
	return nil
}

// ResetCompletion clears the completion mark, enabling re-voting flows.
func (u *Usecase) ResetCompletion(ctx context.Context, roomID uuid.UUID, participantID string) error {
	if err := u.voteRepository.SetVotingCompleted(ctx, roomID, participantID, nil); err != nil {
		return u.classify(err)
	}
	return nil
}

type Progress struct {
	Total        int
	Completed    int
	Pending      int
	Percentage   int
	AllCompleted bool
	CompletedIDs []string
	PendingIDs   []string
}

// VotingProgress partitions the roster by completion. Pure read.
func (u *Usecase) VotingProgress(ctx context.Context, roomID uuid.UUID) (Progress, error) {
	if _, err := u.voteRepository.RoomByID(ctx, roomID); err != nil {
		return Progress{}, u.classify(err)
	}

	participants, err := u.voteRepository.Participants(ctx, roomID)
	if err != nil {
		return Progress{}, errors.Join(ErrInternal, err)
	}

	p := Progress{
		Total:        len(participants),
		CompletedIDs: make([]string, 0, len(participants)),
		PendingIDs:   make([]string, 0, len(participants)),
	}
	for _, participant := range participants {
		if participant.HasCompletedVoting() {
			p.Completed++
			p.CompletedIDs = append(p.CompletedIDs, participant.ParticipantID)
		} else {
			p.PendingIDs = append(p.PendingIDs, participant.ParticipantID)
		}
	}
	p.Pending = p.Total - p.Completed
	if p.Total > 0 {
		p.Percentage = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
		p.AllCompleted = p.Completed == p.Total
	}
	return p, nil
}

func (u *Usecase) classify(err error) error {
	if errors.Is(err, ErrResourceNotFound) {
		return ErrResourceNotFound
	}
	return errors.Join(ErrInternal, err)
}
