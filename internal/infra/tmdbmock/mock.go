package tmdbmock

import (
	"context"
	"fmt"

	"github.com/Kieransaunders/moviezang-core/internal/model"
)

// Provider serves a deterministic catalog for local runs without a TMDB
// API key, the same way the app falls back when credentials are absent.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) DiscoverMovies(ctx context.Context, genreID int64, page int) ([]model.ProviderMovie, error) {
	movies := make([]model.ProviderMovie, 0, 30)
	for i := 0; i < 30; i++ {
		n := int64((page-1)*30 + i + 1)
		genres := []int64{18}
		if genreID != 0 {
			genres = []int64{genreID}
		}
		movies = append(movies, model.ProviderMovie{
			TMDBID:      genreID*100000 + n,
			Title:       fmt.Sprintf("Sample Movie %d", n),
			Overview:    fmt.Sprintf("Placeholder overview for sample movie %d.", n),
			PosterPath:  fmt.Sprintf("/sample-%d.jpg", n),
			ReleaseDate: "2024-01-01",
			GenreIDs:    genres,
			VoteAverage: 6.5,
		})
	}
	return movies, nil
}
