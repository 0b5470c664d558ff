package usecase_setup

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Kieransaunders/moviezang-core/internal/model"
	catalog_mocks "github.com/Kieransaunders/moviezang-core/internal/usecase/setup/mocks/catalog"
	provider_mocks "github.com/Kieransaunders/moviezang-core/internal/usecase/setup/mocks/provider"
	reader_mocks "github.com/Kieransaunders/moviezang-core/internal/usecase/setup/mocks/reader"
	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseSetupUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase  *Usecase
	provider *provider_mocks.MovieProvider
	catalog  *catalog_mocks.CatalogRepository
	reader   *reader_mocks.MovieReader
	ctx      context.Context
}

func initResources(t provider.T) *resources {
	movieProvider := provider_mocks.NewMovieProvider(t)
	catalog := catalog_mocks.NewCatalogRepository(t)
	reader := reader_mocks.NewMovieReader(t)
	usecase := New(movieProvider, catalog, reader)

	return &resources{
		provider: movieProvider,
		catalog:  catalog,
		reader:   reader,
		usecase:  usecase,
		ctx:      context.Background(),
	}
}

func providerPage(n int) []model.ProviderMovie {
	page := make([]model.ProviderMovie, n)
	for i := range page {
		page[i] = model.ProviderMovie{
			TMDBID:      int64(100 + i),
			Title:       fmt.Sprintf("Movie %d", i),
			GenreIDs:    []int64{28},
			VoteAverage: 7.1,
		}
	}
	return page
}

func (suite *UsecaseSetupUnitSuite) TestPopulate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		category      string
		setupMocks    func(r *resources, roomID uuid.UUID)
		expectedLen   int
		expectedError error
	}{
		{
			name:     "Should link a full page for a known genre",
			category: "action",
			setupMocks: func(r *resources, roomID uuid.UUID) {
				r.catalog.On("SlateSize", r.ctx, roomID).Return(0, nil).Once()
				r.provider.On("DiscoverMovies", r.ctx, int64(28), 1).Return(providerPage(SlateSize), nil).Once()
				r.catalog.On("UpsertByTMDBID", r.ctx, mock.AnythingOfType("model.MovieMeta")).
					Return(uuid.New(), nil).Times(SlateSize)
				r.catalog.On("LinkMovies", r.ctx, roomID, mock.AnythingOfType("[]uuid.UUID")).Return(nil).Once()
			},
			expectedLen: SlateSize,
		},
		{
			name:     "Should truncate an oversized provider page",
			category: "popular",
			setupMocks: func(r *resources, roomID uuid.UUID) {
				r.catalog.On("SlateSize", r.ctx, roomID).Return(0, nil).Once()
				r.provider.On("DiscoverMovies", r.ctx, int64(0), 1).Return(providerPage(SlateSize+5), nil).Once()
				r.catalog.On("UpsertByTMDBID", r.ctx, mock.AnythingOfType("model.MovieMeta")).
					Return(uuid.New(), nil).Times(SlateSize)
				r.catalog.On("LinkMovies", r.ctx, roomID, mock.AnythingOfType("[]uuid.UUID")).Return(nil).Once()
			},
			expectedLen: SlateSize,
		},
		{
			name:     "Should skip records the catalog rejects",
			category: "popular",
			setupMocks: func(r *resources, roomID uuid.UUID) {
				r.catalog.On("SlateSize", r.ctx, roomID).Return(0, nil).Once()
				r.provider.On("DiscoverMovies", r.ctx, int64(0), 1).Return(providerPage(3), nil).Once()
				r.catalog.On("UpsertByTMDBID", r.ctx, mock.AnythingOfType("model.MovieMeta")).
					Return(uuid.New(), nil).Once()
				r.catalog.On("UpsertByTMDBID", r.ctx, mock.AnythingOfType("model.MovieMeta")).
					Return(uuid.Nil, errors.New("bad record")).Once()
				r.catalog.On("UpsertByTMDBID", r.ctx, mock.AnythingOfType("model.MovieMeta")).
					Return(uuid.New(), nil).Once()
				r.catalog.On("LinkMovies", r.ctx, roomID, mock.AnythingOfType("[]uuid.UUID")).Return(nil).Once()
			},
			expectedLen: 2,
		},
		{
			name:          "Should reject unknown category without touching anything",
			category:      "telenovela",
			setupMocks:    func(r *resources, roomID uuid.UUID) {},
			expectedError: ErrUnknownCategory,
		},
		{
			name:     "Should refuse to repopulate a room",
			category: "popular",
			setupMocks: func(r *resources, roomID uuid.UUID) {
				r.catalog.On("SlateSize", r.ctx, roomID).Return(SlateSize, nil).Once()
			},
			expectedError: ErrAlreadyPopulated,
		},
		{
			name:     "Should surface provider failure",
			category: "popular",
			setupMocks: func(r *resources, roomID uuid.UUID) {
				r.catalog.On("SlateSize", r.ctx, roomID).Return(0, nil).Once()
				r.provider.On("DiscoverMovies", r.ctx, int64(0), 1).
					Return(nil, errors.New("upstream 500")).Once()
			},
			expectedError: ErrProviderFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			roomID := uuid.New()
			tc.setupMocks(r, roomID)

			movieIDs, err := r.usecase.Populate(r.ctx, roomID, tc.category)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, movieIDs)
			} else {
				assert.NoError(t, err)
				assert.Len(t, movieIDs, tc.expectedLen)
			}
			r.catalog.AssertExpectations(t)
			r.provider.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseSetupUnitSuite) TestSlate(t provider.T) {
	t.Parallel()

	t.Run("Should return movies in presentation order", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		roomID := uuid.New()
		slate := []*model.MovieMeta{
			{ID: uuid.New(), Title: "First"},
			{ID: uuid.New(), Title: "Second"},
		}
		r.reader.On("MoviesByRoom", r.ctx, roomID).Return(slate, nil).Once()

		movies, err := r.usecase.Slate(r.ctx, roomID)

		assert.NoError(t, err)
		assert.Equal(t, slate, movies)
		r.reader.AssertExpectations(t)
	})
}

func TestSetupUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseSetupUnitSuite))
}
