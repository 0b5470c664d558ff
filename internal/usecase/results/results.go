package usecase_results

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/Kieransaunders/moviezang-core/internal/model"
	"github.com/google/uuid"
)

var (
	ErrResourceNotFound = errors.New("no such resource")
	ErrInternal         = errors.New("internal error")
)

//go:generate mockery --name=ResultsRepository --output=./mocks/repository --filename=repository.go
type ResultsRepository interface {
	RoomByID(ctx context.Context, roomID uuid.UUID) (model.Room, error)
	VotesByRoom(ctx context.Context, roomID uuid.UUID) ([]model.Vote, error)
	Participants(ctx context.Context, roomID uuid.UUID) ([]model.RoomParticipant, error)
	MoviesByIDs(ctx context.Context, IDs []uuid.UUID) ([]*model.MovieMeta, error)
}

// MovieResult scores a movie against the full roster: an under-voted
// movie cannot score high even with unanimous approval among its voters.
type MovieResult struct {
	Movie      *model.MovieMeta
	Likes      int
	Dislikes   int
	TotalVotes int
	// MatchScore = round(likes / roster size * 100).
	MatchScore int
	// IsMatch requires every current participant to have liked the movie.
	IsMatch bool
}

// ParticipantVote is one row of a movie's vote ledger.
type ParticipantVote struct {
	ParticipantID string
	Liked         bool
}

// DetailedMovieResult scores a movie against its own voters. This is the
// production results view.
type DetailedMovieResult struct {
	Movie      *model.MovieMeta
	Likes      int
	Dislikes   int
	TotalVotes int
	// MatchPercentage = round(likes / votes on this movie * 100).
	MatchPercentage int
	Ledger          []ParticipantVote
}

type DetailedResults struct {
	Results      []DetailedMovieResult
	Participants []model.RoomParticipant
}

type Usecase struct {
	repository ResultsRepository
}

func New(r ResultsRepository) *Usecase {
	return &Usecase{
		repository: r,
	}
}

// tally groups a room's votes by movie, preserving first-vote order so
// that equal-score ties stay stable across reads.
type tally struct {
	movieID  uuid.UUID
	likes    int
	dislikes int
	ledger   []ParticipantVote
}

func (u *Usecase) tallies(ctx context.Context, roomID uuid.UUID) ([]*tally, []model.RoomParticipant, map[uuid.UUID]*model.MovieMeta, error) {
	if _, err := u.repository.RoomByID(ctx, roomID); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, nil, nil, ErrResourceNotFound
		}
		return nil, nil, nil, errors.Join(ErrInternal, err)
	}

	votes, err := u.repository.VotesByRoom(ctx, roomID)
	if err != nil {
		return nil, nil, nil, errors.Join(ErrInternal, err)
	}
	participants, err := u.repository.Participants(ctx, roomID)
	if err != nil {
		return nil, nil, nil, errors.Join(ErrInternal, err)
	}

	byMovie := make(map[uuid.UUID]*tally)
	order := make([]*tally, 0)
	for _, v := range votes {
		t, ok := byMovie[v.MovieID]
		if !ok {
			t = &tally{movieID: v.MovieID}
			byMovie[v.MovieID] = t
			order = append(order, t)
		}
		liked := v.VoteType == model.VoteLike
		if liked {
			t.likes++
		} else {
			t.dislikes++
		}
		t.ledger = append(t.ledger, ParticipantVote{
			ParticipantID: v.ParticipantID,
			Liked:         liked,
		})
	}

	movieIDs := make([]uuid.UUID, 0, len(order))
	for _, t := range order {
		movieIDs = append(movieIDs, t.movieID)
	}
	movies, err := u.repository.MoviesByIDs(ctx, movieIDs)
	if err != nil {
		return nil, nil, nil, errors.Join(ErrInternal, err)
	}
	metaByID := make(map[uuid.UUID]*model.MovieMeta, len(movies))
	for _, m := range movies {
		metaByID[m.ID] = m
	}

	return order, participants, metaByID, nil
}

// Results ranks the voted-on movies by MatchScore descending. Movies
// nobody voted on are absent entirely.
func (u *Usecase) Results(ctx context.Context, roomID uuid.UUID) ([]MovieResult, error) {
	order, participants, metaByID, err := u.tallies(ctx, roomID)
	if err != nil {
		return nil, err
	}
	roster := len(participants)

	results := make([]MovieResult, 0, len(order))
	for _, t := range order {
		meta, ok := metaByID[t.movieID]
		if !ok {
			continue
		}
		totalVotes := t.likes + t.dislikes
		score := 0
		if roster > 0 {
			score = int(math.Round(float64(t.likes) / float64(roster) * 100))
		}
		results = append(results, MovieResult{
			Movie:      meta,
			Likes:      t.likes,
			Dislikes:   t.dislikes,
			TotalVotes: totalVotes,
			MatchScore: score,
			IsMatch:    roster > 0 && totalVotes == roster && t.likes == roster && t.dislikes == 0,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	return results, nil
}

// Detailed ranks by per-voter approval and drops movies without a single
// like. It also carries the vote ledger and the roster so callers can
// derive completion statistics themselves.
func (u *Usecase) Detailed(ctx context.Context, roomID uuid.UUID) (DetailedResults, error) {
	order, participants, metaByID, err := u.tallies(ctx, roomID)
	if err != nil {
		return DetailedResults{}, err
	}

	results := make([]DetailedMovieResult, 0, len(order))
	for _, t := range order {
		meta, ok := metaByID[t.movieID]
		if !ok || t.likes == 0 {
			continue
		}
		totalVotes := t.likes + t.dislikes
		results = append(results, DetailedMovieResult{
			Movie:           meta,
			Likes:           t.likes,
			Dislikes:        t.dislikes,
			TotalVotes:      totalVotes,
			MatchPercentage: int(math.Round(float64(t.likes) / float64(totalVotes) * 100)),
			Ledger:          t.ledger,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchPercentage != results[j].MatchPercentage {
			return results[i].MatchPercentage > results[j].MatchPercentage
		}
		return results[i].Likes > results[j].Likes
	})

	return DetailedResults{
		Results:      results,
		Participants: participants,
	}, nil
}
