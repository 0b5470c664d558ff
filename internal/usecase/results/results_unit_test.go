package usecase_results

import (
	"context"
	"testing"
	"time"

	"github.com/Kieransaunders/moviezang-core/internal/model"
	repo_mocks "github.com/Kieransaunders/moviezang-core/internal/usecase/results/mocks/repository"
	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseResultsUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	repo    *repo_mocks.ResultsRepository
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	repo := repo_mocks.NewResultsRepository(t)
	usecase := New(repo)

	return &resources{
		repo:    repo,
		usecase: usecase,
		ctx:     context.Background(),
	}
}

type fixture struct {
	roomID   uuid.UUID
	movies   []*model.MovieMeta
	roster   []model.RoomParticipant
	votes    []model.Vote
	votedAt  time.Time
	resource *resources
}

func newFixture(r *resources, movieCount int, roster ...string) *fixture {
	f := &fixture{
		roomID:   uuid.New(),
		votedAt:  time.Now(),
		resource: r,
	}
	for i := 0; i < movieCount; i++ {
		f.movies = append(f.movies, &model.MovieMeta{
			ID:     uuid.New(),
			TMDBID: int64(100 + i),
			Title:  string(rune('A' + i)),
		})
	}
	for _, p := range roster {
		f.roster = append(f.roster, model.RoomParticipant{
			ID:            uuid.New(),
			RoomID:        f.roomID,
			ParticipantID: p,
		})
	}
	return f
}

func (f *fixture) vote(movie int, participant string, voteType model.VoteType) {
	f.votedAt = f.votedAt.Add(time.Second)
	f.votes = append(f.votes, model.Vote{
		ID:            uuid.New(),
		RoomID:        f.roomID,
		MovieID:       f.movies[movie].ID,
		ParticipantID: participant,
		VoteType:      voteType,
		VotedAt:       f.votedAt,
	})
}

func (f *fixture) install() {
	r := f.resource
	r.repo.On("RoomByID", r.ctx, f.roomID).Return(model.Room{ID: f.roomID, Status: model.StatusActive}, nil).Once()
	r.repo.On("VotesByRoom", r.ctx, f.roomID).Return(f.votes, nil).Once()
	r.repo.On("Participants", r.ctx, f.roomID).Return(f.roster, nil).Once()
	r.repo.On("MoviesByIDs", r.ctx, mock.AnythingOfType("[]uuid.UUID")).Return(f.movies, nil).Once()
}

func (suite *UsecaseResultsUnitSuite) TestResults(t provider.T) {
	t.Parallel()

	t.Run("Should score against the full roster and require unanimity for a match", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		f := newFixture(r, 2, "alice", "bob", "carol")
		// Movie A: everyone liked it.
		f.vote(0, "alice", model.VoteLike)
		f.vote(0, "bob", model.VoteLike)
		f.vote(0, "carol", model.VoteLike)
		// Movie B: two likes, carol never voted.
		f.vote(1, "alice", model.VoteLike)
		f.vote(1, "bob", model.VoteLike)
		f.install()

		results, err := r.usecase.Results(r.ctx, f.roomID)

		assert.NoError(t, err)
		assert.Len(t, results, 2)

		assert.Equal(t, f.movies[0].ID, results[0].Movie.ID)
		assert.Equal(t, 100, results[0].MatchScore)
		assert.True(t, results[0].IsMatch)

		assert.Equal(t, f.movies[1].ID, results[1].Movie.ID)
		assert.Equal(t, 67, results[1].MatchScore)
		assert.False(t, results[1].IsMatch)
	})

	t.Run("Should deny a match when any vote is a dislike", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		f := newFixture(r, 1, "alice", "bob")
		f.vote(0, "alice", model.VoteLike)
		f.vote(0, "bob", model.VoteDislike)
		f.install()

		results, err := r.usecase.Results(r.ctx, f.roomID)

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, 50, results[0].MatchScore)
		assert.Equal(t, 2, results[0].TotalVotes)
		assert.False(t, results[0].IsMatch)
	})

	t.Run("Should omit movies nobody voted on", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		f := newFixture(r, 2, "alice")
		f.vote(0, "alice", model.VoteLike)
		f.install()

		results, err := r.usecase.Results(r.ctx, f.roomID)

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, f.movies[0].ID, results[0].Movie.ID)
	})

	t.Run("Should return not found for unknown room", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		roomID := uuid.New()
		r.repo.On("RoomByID", r.ctx, roomID).Return(model.Room{}, ErrResourceNotFound).Once()

		_, err := r.usecase.Results(r.ctx, roomID)

		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}

func (suite *UsecaseResultsUnitSuite) TestDetailed(t provider.T) {
	t.Parallel()

	t.Run("Should score against voters only and drop likeless movies", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		f := newFixture(r, 3, "alice", "bob", "carol", "dave")
		// Movie A: 2 of 2 voters liked it. Roster-based scoring would
		// say 50; voter-based says 100.
		f.vote(0, "alice", model.VoteLike)
		f.vote(0, "bob", model.VoteLike)
		// Movie B: 1 like, 2 dislikes.
		f.vote(1, "alice", model.VoteLike)
		f.vote(1, "bob", model.VoteDislike)
		f.vote(1, "carol", model.VoteDislike)
		// Movie C: dislikes only, filtered out.
		f.vote(2, "alice", model.VoteDislike)
		f.install()

		detailed, err := r.usecase.Detailed(r.ctx, f.roomID)

		assert.NoError(t, err)
		assert.Len(t, detailed.Results, 2)

		assert.Equal(t, f.movies[0].ID, detailed.Results[0].Movie.ID)
		assert.Equal(t, 100, detailed.Results[0].MatchPercentage)
		assert.Equal(t, []ParticipantVote{
			{ParticipantID: "alice", Liked: true},
			{ParticipantID: "bob", Liked: true},
		}, detailed.Results[0].Ledger)

		assert.Equal(t, f.movies[1].ID, detailed.Results[1].Movie.ID)
		assert.Equal(t, 33, detailed.Results[1].MatchPercentage)
		assert.Equal(t, 3, detailed.Results[1].TotalVotes)

		assert.Len(t, detailed.Participants, 4)
	})

	t.Run("Should break percentage ties by like count", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		f := newFixture(r, 2, "alice", "bob", "carol")
		// Both movies score 100, movie B has more likes.
		f.vote(0, "alice", model.VoteLike)
		f.vote(1, "alice", model.VoteLike)
		f.vote(1, "bob", model.VoteLike)
		f.install()

		detailed, err := r.usecase.Detailed(r.ctx, f.roomID)

		assert.NoError(t, err)
		assert.Len(t, detailed.Results, 2)
		assert.Equal(t, f.movies[1].ID, detailed.Results[0].Movie.ID)
		assert.Equal(t, f.movies[0].ID, detailed.Results[1].Movie.ID)
	})

	t.Run("Should diverge from roster-based scoring on partial turnout", func(t provider.T) {
		t.Parallel()

		build := func(r *resources) *fixture {
			f := newFixture(r, 1, "alice", "bob", "carol", "dave")
			f.vote(0, "alice", model.VoteLike)
			f.vote(0, "bob", model.VoteLike)
			return f
		}

		r1 := initResources(t)
		f1 := build(r1)
		f1.install()
		results, err := r1.usecase.Results(r1.ctx, f1.roomID)
		assert.NoError(t, err)
		assert.Equal(t, 50, results[0].MatchScore)

		r2 := initResources(t)
		f2 := build(r2)
		f2.install()
		detailed, err := r2.usecase.Detailed(r2.ctx, f2.roomID)
		assert.NoError(t, err)
		assert.Equal(t, 100, detailed.Results[0].MatchPercentage)
	})
}

func TestResultsUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseResultsUnitSuite))
}
