package infra_postgres_vote

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Kieransaunders/moviezang-core/internal/model"
	usecase_vote "github.com/Kieransaunders/moviezang-core/internal/usecase/vote"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type VoteInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db     *sqlx.DB
	mock   sqlmock.Sqlmock
	driver *Driver
	ctx    context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	driver := New(sqlxDB)

	return &resources{
		db:     sqlxDB,
		mock:   mock,
		driver: driver,
		ctx:    context.Background(),
	}
}

func validVote() model.Vote {
	return model.Vote{
		ID:            uuid.New(),
		RoomID:        uuid.New(),
		MovieID:       uuid.New(),
		ParticipantID: "alice",
		VoteType:      model.VoteLike,
		VotedAt:       time.Now(),
	}
}

func (suite *VoteInfraUnitSuite) TestUpsert(t provider.T) {
	t.Parallel()

	t.Run("Should insert when no previous vote exists", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		vote := validVote()
		r.mock.ExpectQuery("INSERT INTO votes").
			WithArgs(vote.ID, vote.RoomID, vote.MovieID, vote.ParticipantID, vote.VoteType, vote.VotedAt).
			WillReturnRows(sqlmock.NewRows([]string{"id", "updated"}).AddRow(vote.ID, false))

		voteID, updated, err := r.driver.Upsert(r.ctx, vote)

		assert.NoError(t, err)
		assert.Equal(t, vote.ID, voteID)
		assert.False(t, updated)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should overwrite the existing row in place", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		vote := validVote()
		existingID := uuid.New()
		r.mock.ExpectQuery("INSERT INTO votes").
			WithArgs(vote.ID, vote.RoomID, vote.MovieID, vote.ParticipantID, vote.VoteType, vote.VotedAt).
			WillReturnRows(sqlmock.NewRows([]string{"id", "updated"}).AddRow(existingID, true))

		voteID, updated, err := r.driver.Upsert(r.ctx, vote)

		assert.NoError(t, err)
		assert.Equal(t, existingID, voteID)
		assert.True(t, updated)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (suite *VoteInfraUnitSuite) TestSetVotingCompleted(t provider.T) {
	t.Parallel()

	t.Run("Should stamp completion", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		roomID := uuid.New()
		now := time.Now()
		r.mock.ExpectExec("UPDATE room_participants").
			WithArgs(&now, roomID, "alice").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := r.driver.SetVotingCompleted(r.ctx, roomID, "alice", &now)

		assert.NoError(t, err)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should map missing membership to not found", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		roomID := uuid.New()
		now := time.Now()
		r.mock.ExpectExec("UPDATE room_participants").
			WithArgs(&now, roomID, "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := r.driver.SetVotingCompleted(r.ctx, roomID, "ghost", &now)

		assert.ErrorIs(t, err, usecase_vote.ErrResourceNotFound)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (suite *VoteInfraUnitSuite) TestRoomByID(t provider.T) {
	t.Parallel()

	t.Run("Should map missing room to not found", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		roomID := uuid.New()
		r.mock.ExpectQuery("SELECT id, code, category").
			WithArgs(roomID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := r.driver.RoomByID(r.ctx, roomID)

		assert.ErrorIs(t, err, usecase_vote.ErrResourceNotFound)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func TestVoteInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(VoteInfraUnitSuite))
}
