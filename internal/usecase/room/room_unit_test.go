package usecase_room

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/Kieransaunders/moviezang-core/internal/model"
	codecache_mocks "github.com/Kieransaunders/moviezang-core/internal/usecase/room/mocks/codecache"
	repo_mocks "github.com/Kieransaunders/moviezang-core/internal/usecase/room/mocks/repository"
	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseRoomUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase  *Usecase
	roomRepo *repo_mocks.RoomRepository
	codes    *codecache_mocks.CodeCache
	ctx      context.Context
}

func initResources(t provider.T) *resources {
	roomRepo := repo_mocks.NewRoomRepository(t)
	codes := codecache_mocks.NewCodeCache(t)
	usecase := New(roomRepo, codes, WithRand(rand.New(rand.NewSource(42))))

	return &resources{
		roomRepo: roomRepo,
		codes:    codes,
		usecase:  usecase,
		ctx:      context.Background(),
	}
}

func activeRoom() model.Room {
	now := time.Now()
	return model.Room{
		ID:              uuid.New(),
		Code:            "4821",
		Category:        "popular",
		HostID:          "host",
		Status:          model.StatusActive,
		MaxParticipants: model.DefaultMaxParticipants,
		ExpiresAt:       now.Add(model.RoomTTL),
		CreatedAt:       now,
	}
}

func (suite *UsecaseRoomUnitSuite) TestCreate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		expectError   bool
		expectedError error
	}{
		{
			name: "Should create room with host seated",
			setupMocks: func(r *resources) {
				r.codes.On("Contains", r.ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
				r.roomRepo.On("CreateWithHost", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.RoomParticipant")).
					Return(nil).Once()
				r.codes.On("Add", r.ctx, mock.AnythingOfType("string")).Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Should retry on code conflict and then succeed",
			setupMocks: func(r *resources) {
				r.codes.On("Contains", r.ctx, mock.AnythingOfType("string")).Return(false, nil).Twice()
				r.roomRepo.On("CreateWithHost", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.RoomParticipant")).
					Return(ErrCodeConflict).Once()
				r.roomRepo.On("CreateWithHost", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.RoomParticipant")).
					Return(nil).Once()
				r.codes.On("Add", r.ctx, mock.AnythingOfType("string")).Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Should give up after exhausting code retries",
			setupMocks: func(r *resources) {
				r.codes.On("Contains", r.ctx, mock.AnythingOfType("string")).Return(false, nil).Times(10)
				r.roomRepo.On("CreateWithHost", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.RoomParticipant")).
					Return(ErrCodeConflict).Times(10)
			},
			expectError:   true,
			expectedError: ErrRoomsUnavailable,
		},
		{
			name: "Should skip codes found in the cache without touching the repository",
			setupMocks: func(r *resources) {
				r.codes.On("Contains", r.ctx, mock.AnythingOfType("string")).Return(true, nil).Once()
				r.codes.On("Contains", r.ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
				r.roomRepo.On("CreateWithHost", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.RoomParticipant")).
					Return(nil).Once()
				r.codes.On("Add", r.ctx, mock.AnythingOfType("string")).Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Should return internal error when repository fails hard",
			setupMocks: func(r *resources) {
				r.codes.On("Contains", r.ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
				r.roomRepo.On("CreateWithHost", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.RoomParticipant")).
					Return(errors.New("db down")).Once()
			},
			expectError:   true,
			expectedError: ErrInternal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			room, err := r.usecase.Create(r.ctx, "popular", "host", 0)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Len(t, room.Code, 4)
				assert.GreaterOrEqual(t, room.Code, "1000")
				assert.LessOrEqual(t, room.Code, "9999")
				assert.Equal(t, model.StatusActive, room.Status)
				assert.Equal(t, model.DefaultMaxParticipants, room.MaxParticipants)
				assert.Equal(t, "host", room.HostID)
			}
			r.roomRepo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseRoomUnitSuite) TestRoomLazyExpiry(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		storedRoom     func() model.Room
		expectedStatus model.RoomStatus
	}{
		{
			name:           "Should read active room as active",
			storedRoom:     activeRoom,
			expectedStatus: model.StatusActive,
		},
		{
			name: "Should project past-deadline active room as expired",
			storedRoom: func() model.Room {
				room := activeRoom()
				room.ExpiresAt = time.Now().Add(-time.Minute)
				return room
			},
			expectedStatus: model.StatusExpired,
		},
		{
			name: "Should keep stored terminal status over the clock",
			storedRoom: func() model.Room {
				room := activeRoom()
				room.Status = model.StatusCompleted
				room.ExpiresAt = time.Now().Add(-time.Minute)
				return room
			},
			expectedStatus: model.StatusCompleted,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			stored := tc.storedRoom()
			r.roomRepo.On("RoomByID", r.ctx, stored.ID).Return(stored, nil).Once()

			room, err := r.usecase.Room(r.ctx, stored.ID)

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, room.Status)
			r.roomRepo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseRoomUnitSuite) TestRoomByCode(t provider.T) {
	t.Parallel()

	t.Run("Should return not found for unknown code", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		r.roomRepo.On("RoomByCode", r.ctx, "0000").Return(model.Room{}, ErrResourceNotFound).Once()

		_, err := r.usecase.RoomByCode(r.ctx, "0000")

		assert.ErrorIs(t, err, ErrResourceNotFound)
		r.roomRepo.AssertExpectations(t)
	})
}

func (suite *UsecaseRoomUnitSuite) TestJoin(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources, room model.Room)
		storedRoom    func() model.Room
		expectedError error
	}{
		{
			name:       "Should join active room",
			storedRoom: activeRoom,
			setupMocks: func(r *resources, room model.Room) {
				r.roomRepo.On("RoomByID", r.ctx, room.ID).Return(room, nil).Once()
				r.roomRepo.On("AddParticipant", r.ctx, mock.AnythingOfType("model.RoomParticipant")).Return(nil).Once()
			},
		},
		{
			name: "Should reject join into completed room",
			storedRoom: func() model.Room {
				room := activeRoom()
				room.Status = model.StatusCompleted
				return room
			},
			setupMocks: func(r *resources, room model.Room) {
				r.roomRepo.On("RoomByID", r.ctx, room.ID).Return(room, nil).Once()
			},
			expectedError: ErrRoomNotActive,
		},
		{
			name: "Should persist expiry when joining past the deadline",
			storedRoom: func() model.Room {
				room := activeRoom()
				room.ExpiresAt = time.Now().Add(-time.Minute)
				return room
			},
			setupMocks: func(r *resources, room model.Room) {
				r.roomRepo.On("RoomByID", r.ctx, room.ID).Return(room, nil).Once()
				r.roomRepo.On("SetStatus", r.ctx, room.ID, model.StatusExpired).Return(nil).Once()
				r.codes.On("Remove", r.ctx, room.Code).Return(nil).Once()
			},
			expectedError: ErrRoomExpired,
		},
		{
			name:       "Should pass through duplicate-join error",
			storedRoom: activeRoom,
			setupMocks: func(r *resources, room model.Room) {
				r.roomRepo.On("RoomByID", r.ctx, room.ID).Return(room, nil).Once()
				r.roomRepo.On("AddParticipant", r.ctx, mock.AnythingOfType("model.RoomParticipant")).Return(ErrAlreadyJoined).Once()
			},
			expectedError: ErrAlreadyJoined,
		},
		{
			name:       "Should pass through capacity error",
			storedRoom: activeRoom,
			setupMocks: func(r *resources, room model.Room) {
				r.roomRepo.On("RoomByID", r.ctx, room.ID).Return(room, nil).Once()
				r.roomRepo.On("AddParticipant", r.ctx, mock.AnythingOfType("model.RoomParticipant")).Return(ErrRoomFull).Once()
			},
			expectedError: ErrRoomFull,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			stored := tc.storedRoom()
			tc.setupMocks(r, stored)

			room, err := r.usecase.Join(r.ctx, stored.ID, "guest")

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored.ID, room.ID)
			}
			r.roomRepo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseRoomUnitSuite) TestJoinByCode(t provider.T) {
	t.Parallel()

	t.Run("Should resolve code before joining", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		stored := activeRoom()
		r.roomRepo.On("RoomByCode", r.ctx, stored.Code).Return(stored, nil).Once()
		r.roomRepo.On("AddParticipant", r.ctx, mock.AnythingOfType("model.RoomParticipant")).Return(nil).Once()

		room, err := r.usecase.JoinByCode(r.ctx, stored.Code, "guest")

		assert.NoError(t, err)
		assert.Equal(t, stored.ID, room.ID)
		r.roomRepo.AssertExpectations(t)
	})
}

func (suite *UsecaseRoomUnitSuite) TestLeave(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		setupMocks func(r *resources, room model.Room)
	}{
		{
			name: "Should only remove membership while others remain",
			setupMocks: func(r *resources, room model.Room) {
				r.roomRepo.On("RemoveParticipant", r.ctx, room.ID, "guest").Return(2, nil).Once()
			},
		},
		{
			name: "Should complete the room and drop its code on last leave",
			setupMocks: func(r *resources, room model.Room) {
				r.roomRepo.On("RemoveParticipant", r.ctx, room.ID, "guest").Return(0, nil).Once()
				r.roomRepo.On("RoomByID", r.ctx, room.ID).Return(room, nil).Once()
				r.roomRepo.On("SetStatus", r.ctx, room.ID, model.StatusCompleted).Return(nil).Once()
				r.codes.On("Remove", r.ctx, room.Code).Return(nil).Once()
			},
		},
		{
			name: "Should keep a terminal status when the emptied room already expired",
			setupMocks: func(r *resources, room model.Room) {
				expired := room
				expired.Status = model.StatusExpired
				r.roomRepo.On("RemoveParticipant", r.ctx, room.ID, "guest").Return(0, nil).Once()
				r.roomRepo.On("RoomByID", r.ctx, room.ID).Return(expired, nil).Once()
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			room := activeRoom()
			tc.setupMocks(r, room)

			err := r.usecase.Leave(r.ctx, room.ID, "guest")

			assert.NoError(t, err)
			r.roomRepo.AssertExpectations(t)
		})
	}

	t.Run("Should return not found when membership is missing", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		roomID := uuid.New()
		r.roomRepo.On("RemoveParticipant", r.ctx, roomID, "ghost").Return(0, ErrResourceNotFound).Once()

		err := r.usecase.Leave(r.ctx, roomID, "ghost")

		assert.ErrorIs(t, err, ErrResourceNotFound)
		r.roomRepo.AssertExpectations(t)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseRoomUnitSuite))
}
