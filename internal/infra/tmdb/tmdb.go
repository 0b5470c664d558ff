package infra_tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Kieransaunders/moviezang-core/internal/config"
	"github.com/Kieransaunders/moviezang-core/internal/model"
)

// Client fetches discover pages from the TMDB REST API. Pages come back
// sorted by popularity descending; the core never re-sorts them.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(cfg config.TMDB) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type discoverResponse struct {
	Page    int `json:"page"`
	Results []struct {
		ID          int64   `json:"id"`
		Title       string  `json:"title"`
		Overview    string  `json:"overview"`
		PosterPath  string  `json:"poster_path"`
		ReleaseDate string  `json:"release_date"`
		GenreIDs    []int64 `json:"genre_ids"`
		VoteAverage float64 `json:"vote_average"`
	} `json:"results"`
}

func (c *Client) DiscoverMovies(ctx context.Context, genreID int64, page int) ([]model.ProviderMovie, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("sort_by", "popularity.desc")
	q.Set("page", strconv.Itoa(page))
	q.Set("include_adult", "false")
	if genreID != 0 {
		q.Set("with_genres", strconv.FormatInt(genreID, 10))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/discover/movie?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tmdb responded %d", resp.StatusCode)
	}

	var body discoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("tmdb response malformed: %w", err)
	}

	movies := make([]model.ProviderMovie, 0, len(body.Results))
	for _, r := range body.Results {
		movies = append(movies, model.ProviderMovie{
			TMDBID:      r.ID,
			Title:       r.Title,
			Overview:    r.Overview,
			PosterPath:  r.PosterPath,
			ReleaseDate: r.ReleaseDate,
			GenreIDs:    r.GenreIDs,
			VoteAverage: r.VoteAverage,
		})
	}
	return movies, nil
}
