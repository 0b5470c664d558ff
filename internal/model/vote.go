package model

import (
	"time"

	"github.com/google/uuid"
)

type VoteType = string

const (
	VoteLike    VoteType = "like"
	VoteDislike VoteType = "dislike"
)

// Vote is keyed naturally by (RoomID, MovieID, ParticipantID).
// Resubmission overwrites VoteType and VotedAt in place, never duplicates.
type Vote struct {
	ID            uuid.UUID
	RoomID        uuid.UUID
	MovieID       uuid.UUID
	ParticipantID string
	VoteType      VoteType
	VotedAt       time.Time
}
