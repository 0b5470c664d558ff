package infra_postgres_movie

import (
	"time"

	"github.com/Kieransaunders/moviezang-core/internal/model"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type MovieDB struct {
	ID                 uuid.UUID     `db:"id"`
	TMDBID             int64         `db:"tmdb_id"`
	Title              string        `db:"title"`
	Overview           string        `db:"overview"`
	PosterPath         string        `db:"poster_path"`
	ReleaseDate        string        `db:"release_date"`
	GenreIDs           pq.Int64Array `db:"genre_ids"`
	StreamingPlatforms []byte        `db:"streaming_platforms"`
	VoteAverage        float64       `db:"vote_average"`
	Runtime            int           `db:"runtime"`
	CreatedAt          time.Time     `db:"created_at"`
}

func (m *MovieDB) ToDomain() model.MovieMeta {
	return model.MovieMeta{
		ID:                 m.ID,
		TMDBID:             m.TMDBID,
		Title:              m.Title,
		Overview:           m.Overview,
		PosterPath:         m.PosterPath,
		ReleaseDate:        m.ReleaseDate,
		GenreIDs:           []int64(m.GenreIDs),
		StreamingPlatforms: m.StreamingPlatforms,
		VoteAverage:        m.VoteAverage,
		Runtime:            m.Runtime,
		CreatedAt:          m.CreatedAt,
	}
}

func FromDomain(mm model.MovieMeta) MovieDB {
	return MovieDB{
		ID:                 mm.ID,
		TMDBID:             mm.TMDBID,
		Title:              mm.Title,
		Overview:           mm.Overview,
		PosterPath:         mm.PosterPath,
		ReleaseDate:        mm.ReleaseDate,
		GenreIDs:           pq.Int64Array(mm.GenreIDs),
		StreamingPlatforms: mm.StreamingPlatforms,
		VoteAverage:        mm.VoteAverage,
		Runtime:            mm.Runtime,
		CreatedAt:          mm.CreatedAt,
	}
}
