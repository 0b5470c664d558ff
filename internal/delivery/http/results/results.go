package http_results

import (
	"errors"
	"log/slog"
	"net/http"

	http_common "github.com/Kieransaunders/moviezang-core/internal/delivery/http/common"
	usecase_results "github.com/Kieransaunders/moviezang-core/internal/usecase/results"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	uc *usecase_results.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_results.Usecase, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	results := router.Group("rooms/:room_id/results")
	results.GET("", c.results)
	results.GET("/detailed", c.detailed)
}

type MovieDTO struct {
	ID          string  `json:"id"`
	TMDBID      int64   `json:"tmdb_id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

type MovieResultDTO struct {
	MovieDTO
	Likes      int  `json:"likes"`
	Dislikes   int  `json:"dislikes"`
	TotalVotes int  `json:"total_votes"`
	MatchScore int  `json:"match_score"`
	IsMatch    bool `json:"is_match"`
}

type ResultsResponseDTO struct {
	Results []MovieResultDTO `json:"results"`
}

// Results возвращает рейтинг фильмов относительно всей комнаты
// @Summary Результаты голосования
// @Description Доля лайков считается от общего числа участников комнаты
// @Tags Results
// @Produce json
// @Param room_id path string true "Идентификатор комнаты"
// @Success 200 {object} ResultsResponseDTO "Результаты"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/{room_id}/results [get]
func (c *Controller) results(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	results, err := c.uc.Results(ctx, roomID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	dtos := make([]MovieResultDTO, len(results))
	for i, r := range results {
		dtos[i] = MovieResultDTO{
			MovieDTO:   toMovieDTO(r.Movie.ID.String(), r.Movie.TMDBID, r.Movie.Title, r.Movie.Overview, r.Movie.PosterPath, r.Movie.ReleaseDate, r.Movie.VoteAverage),
			Likes:      r.Likes,
			Dislikes:   r.Dislikes,
			TotalVotes: r.TotalVotes,
			MatchScore: r.MatchScore,
			IsMatch:    r.IsMatch,
		}
	}
	ctx.JSON(http.StatusOK, ResultsResponseDTO{Results: dtos})
}

type ParticipantVoteDTO struct {
	ParticipantID string `json:"participant_id"`
	Liked         bool   `json:"liked"`
}

type DetailedMovieResultDTO struct {
	MovieDTO
	Likes           int                  `json:"likes"`
	Dislikes        int                  `json:"dislikes"`
	TotalVotes      int                  `json:"total_votes"`
	MatchPercentage int                  `json:"match_percentage"`
	Votes           []ParticipantVoteDTO `json:"votes"`
}

type RosterEntryDTO struct {
	ParticipantID     string `json:"participant_id"`
	IsHost            bool   `json:"is_host"`
	VotingCompletedAt *int64 `json:"voting_completed_at,omitempty"`
}

type DetailedResultsResponseDTO struct {
	Results      []DetailedMovieResultDTO `json:"results"`
	Participants []RosterEntryDTO         `json:"participants"`
}

// Detailed возвращает продакшн-представление результатов
// @Summary Детальные результаты голосования
// @Description Доля лайков считается от числа проголосовавших за фильм; фильмы без лайков скрыты
// @Tags Results
// @Produce json
// @Param room_id path string true "Идентификатор комнаты"
// @Success 200 {object} DetailedResultsResponseDTO "Результаты с реестром голосов"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/{room_id}/results/detailed [get]
func (c *Controller) detailed(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	detailed, err := c.uc.Detailed(ctx, roomID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	results := make([]DetailedMovieResultDTO, len(detailed.Results))
	for i, r := range detailed.Results {
		votes := make([]ParticipantVoteDTO, len(r.Ledger))
		for j, v := range r.Ledger {
			votes[j] = ParticipantVoteDTO{
				ParticipantID: v.ParticipantID,
				Liked:         v.Liked,
			}
		}
		results[i] = DetailedMovieResultDTO{
			MovieDTO:        toMovieDTO(r.Movie.ID.String(), r.Movie.TMDBID, r.Movie.Title, r.Movie.Overview, r.Movie.PosterPath, r.Movie.ReleaseDate, r.Movie.VoteAverage),
			Likes:           r.Likes,
			Dislikes:        r.Dislikes,
			TotalVotes:      r.TotalVotes,
			MatchPercentage: r.MatchPercentage,
			Votes:           votes,
		}
	}

	participants := make([]RosterEntryDTO, len(detailed.Participants))
	for i, p := range detailed.Participants {
		entry := RosterEntryDTO{
			ParticipantID: p.ParticipantID,
			IsHost:        p.IsHost,
		}
		if p.VotingCompletedAt != nil {
			completedAt := p.VotingCompletedAt.Unix()
			entry.VotingCompletedAt = &completedAt
		}
		participants[i] = entry
	}

	ctx.JSON(http.StatusOK, DetailedResultsResponseDTO{
		Results:      results,
		Participants: participants,
	})
}

func toMovieDTO(id string, tmdbID int64, title, overview, posterPath, releaseDate string, voteAverage float64) MovieDTO {
	return MovieDTO{
		ID:          id,
		TMDBID:      tmdbID,
		Title:       title,
		Overview:    overview,
		PosterPath:  posterPath,
		ReleaseDate: releaseDate,
		VoteAverage: voteAverage,
	}
}

func (c *Controller) parseRoomID(ctx *gin.Context) (uuid.UUID, bool) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid room id",
		})
		return uuid.Nil, false
	}
	return roomID, true
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	if errors.Is(err, usecase_results.ErrResourceNotFound) {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
		return
	}
	c.logger.Error("failed to get results", slog.String("error", err.Error()))
	ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
		Message: "internal error",
	})
}
