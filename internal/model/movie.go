package model

import (
	"time"

	"github.com/google/uuid"
)

// MovieMeta is a catalog record deduplicated globally by TMDBID.
// Rows are immutable once stored; metadata is not refreshed on re-reference.
type MovieMeta struct {
	ID                 uuid.UUID
	TMDBID             int64
	Title              string
	Overview           string
	PosterPath         string
	ReleaseDate        string
	GenreIDs           []int64
	StreamingPlatforms []byte // provider-shaped JSON, opaque to the core
	VoteAverage        float64
	Runtime            int
	CreatedAt          time.Time
}

// RoomMovie links a movie into a room's slate. Positions within one room
// are dense (0..N-1) and fixed once set.
type RoomMovie struct {
	ID       uuid.UUID
	RoomID   uuid.UUID
	MovieID  uuid.UUID
	Position int
}

// ProviderMovie is one entry of a metadata-provider page, already sorted
// by popularity on the provider side.
type ProviderMovie struct {
	TMDBID      int64
	Title       string
	Overview    string
	PosterPath  string
	ReleaseDate string
	GenreIDs    []int64
	VoteAverage float64
}
