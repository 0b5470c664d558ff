package model

import (
	"time"

	"github.com/google/uuid"
)

type RoomStatus = string

const (
	StatusActive    RoomStatus = "active"
	StatusCompleted RoomStatus = "completed"
	StatusExpired   RoomStatus = "expired"
)

const (
	DefaultMaxParticipants = 10
	RoomTTL                = 24 * time.Hour
)

type Room struct {
	ID              uuid.UUID
	Code            string
	Category        string
	HostID          string
	Status          RoomStatus
	MaxParticipants int
	ExpiresAt       time.Time
	CreatedAt       time.Time
}

// EffectiveStatus is the read-time projection: an active room past its
// deadline reads as expired without persisting anything. Stored terminal
// statuses win over the clock.
func (r Room) EffectiveStatus(now time.Time) RoomStatus {
	if r.Status == StatusActive && r.ExpiresAt.Before(now) {
		return StatusExpired
	}
	return r.Status
}

type RoomParticipant struct {
	ID                uuid.UUID
	RoomID            uuid.UUID
	ParticipantID     string
	IsHost            bool
	JoinedAt          time.Time
	VotingCompletedAt *time.Time
}

func (p RoomParticipant) HasCompletedVoting() bool {
	return p.VotingCompletedAt != nil
}
