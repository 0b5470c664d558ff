package usecase_setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kieransaunders/moviezang-core/internal/model"
	"github.com/google/uuid"
)

var (
	ErrUnknownCategory  = errors.New("unknown category")
	ErrAlreadyPopulated = errors.New("room already populated")
	ErrProviderFailed   = errors.New("metadata provider failed")
	ErrResourceNotFound = errors.New("no such resource")
	ErrInternal         = errors.New("internal error")
)

// SlateSize is how many candidates a room gets from one provider page.
const SlateSize = 25

//go:generate mockery --name=MovieProvider --output=./mocks/provider --filename=provider.go
type MovieProvider interface {
	// DiscoverMovies returns one page sorted by popularity descending.
	// genreID 0 means no filter.
	DiscoverMovies(ctx context.Context, genreID int64, page int) ([]model.ProviderMovie, error)
}

//go:generate mockery --name=CatalogRepository --output=./mocks/catalog --filename=catalog.go
type CatalogRepository interface {
	// UpsertByTMDBID stores the movie on first reference and returns the
	// existing row's ID otherwise. Metadata is never refreshed.
	UpsertByTMDBID(ctx context.Context, mm model.MovieMeta) (uuid.UUID, error)
	// LinkMovies writes RoomMovie rows with position = slice index.
	LinkMovies(ctx context.Context, roomID uuid.UUID, movieIDs []uuid.UUID) error
	SlateSize(ctx context.Context, roomID uuid.UUID) (int, error)
}

//go:generate mockery --name=MovieReader --output=./mocks/reader --filename=reader.go
type MovieReader interface {
	// MoviesByRoom returns the slate in presentation order.
	MoviesByRoom(ctx context.Context, roomID uuid.UUID) ([]*model.MovieMeta, error)
}

type Usecase struct {
	provider MovieProvider
	catalog  CatalogRepository
	movies   MovieReader
	logger   *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(provider MovieProvider, catalog CatalogRepository, movies MovieReader, opts ...Option) *Usecase {
	u := &Usecase{
		provider: provider,
		catalog:  catalog,
		movies:   movies,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Populate fetches a slate for the room's category and links it in fetch
// order. Individual bad records are skipped, not fatal: a room with a
// short slate still works, a room with none does not.
func (u *Usecase) Populate(ctx context.Context, roomID uuid.UUID, category string) ([]uuid.UUID, error) {
	if !model.KnownCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	linked, err := u.catalog.SlateSize(ctx, roomID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	if linked > 0 {
		return nil, ErrAlreadyPopulated
	}

	genreID := model.CategoryGenres[category] // zero for "popular"
	candidates, err := u.provider.DiscoverMovies(ctx, genreID, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderFailed, err)
	}
	if len(candidates) > SlateSize {
		candidates = candidates[:SlateSize]
	}

	now := time.Now()
	movieIDs := make([]uuid.UUID, 0, len(candidates))
	for _, c := range candidates {
		movieID, err := u.catalog.UpsertByTMDBID(ctx, model.MovieMeta{
			ID:          uuid.New(),
			TMDBID:      c.TMDBID,
			Title:       c.Title,
			Overview:    c.Overview,
			PosterPath:  c.PosterPath,
			ReleaseDate: c.ReleaseDate,
			GenreIDs:    c.GenreIDs,
			VoteAverage: c.VoteAverage,
			CreatedAt:   now,
		})
		if err != nil {
			u.logger.Warn("skipping movie",
				slog.Int64("tmdb_id", c.TMDBID),
				slog.String("title", c.Title),
				slog.String("error", err.Error()))
			continue
		}
		movieIDs = append(movieIDs, movieID)
	}

	if err := u.catalog.LinkMovies(ctx, roomID, movieIDs); err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return movieIDs, nil
}

// Slate returns the room's linked movies in presentation order.
func (u *Usecase) Slate(ctx context.Context, roomID uuid.UUID) ([]*model.MovieMeta, error) {
	movies, err := u.movies.MoviesByRoom(ctx, roomID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return movies, nil
}
