package http_voting

import (
	"errors"
	"log/slog"
	"net/http"

	http_common "github.com/Kieransaunders/moviezang-core/internal/delivery/http/common"
	ws_room "github.com/Kieransaunders/moviezang-core/internal/delivery/ws/room"
	usecase_vote "github.com/Kieransaunders/moviezang-core/internal/usecase/vote"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	uc  *usecase_vote.Usecase
	hub *ws_room.Hub

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_vote.Usecase, hub *ws_room.Hub, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		hub:    hub,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	voting := router.Group("rooms/:room_id/voting")
	voting.POST("/votes", c.vote)
	voting.POST("/complete", c.complete)
	voting.POST("/reset", c.reset)
	voting.GET("/progress", c.progress)
}

type VoteRequestDTO struct {
	ParticipantID string `json:"participant_id" binding:"required"`
	MovieID       string `json:"movie_id" binding:"required"`
	VoteType      string `json:"vote_type" binding:"required" enums:"like,dislike"`
}

type VoteResponseDTO struct {
	VoteID  string `json:"vote_id"`
	Updated bool   `json:"updated"`
}

// Vote регистрирует голос участника за фильм
// @Summary Голосование за фильм
// @Description Записывает лайк или дизлайк; повторная отправка перезаписывает голос
// @Tags Voting
// @Accept json
// @Produce json
// @Param room_id path string true "Идентификатор комнаты"
// @Param request body VoteRequestDTO true "Голос"
// @Success 200 {object} VoteResponseDTO "Голос принят"
// @Failure 400 {object} http_common.ErrorResponse "Некорректный запрос"
// @Failure 403 {object} http_common.ErrorResponse "Пользователь не является участником комнаты"
// @Failure 404 {object} http_common.ErrorResponse "Комната или фильм не найдены"
// @Failure 410 {object} http_common.ErrorResponse "Комната истекла или неактивна"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/{room_id}/voting/votes [post]
func (c *Controller) vote(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid movie id format",
		})
		return
	}

	voteID, updated, err := c.uc.Submit(ctx, roomID, movieID, req.ParticipantID, req.VoteType)
	if err != nil {
		c.respondVoteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, VoteResponseDTO{
		VoteID:  voteID.String(),
		Updated: updated,
	})
}

type CompletionRequestDTO struct {
	ParticipantID string `json:"participant_id" binding:"required"`
}

// Complete отмечает, что участник проголосовал за всю подборку
// @Summary Завершение голосования участником
// @Description Идемпотентно: повторный вызов обновляет отметку времени
// @Tags Voting
// @Accept json
// @Param room_id path string true "Идентификатор комнаты"
// @Param request body CompletionRequestDTO true "Имя участника"
// @Success 200 "Завершение отмечено"
// @Failure 400 {object} http_common.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} http_common.ErrorResponse "Комната или участник не найдены"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/{room_id}/voting/complete [post]
func (c *Controller) complete(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	var req CompletionRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	if err := c.uc.MarkComplete(ctx, roomID, req.ParticipantID); err != nil {
		c.respondVoteError(ctx, err)
		return
	}

	progress, err := c.uc.VotingProgress(ctx, roomID)
	if err != nil {
		c.respondVoteError(ctx, err)
		return
	}

	c.hub.NotifyVotingProgress(roomID.String(), progress)
	if progress.AllCompleted {
		c.hub.NotifyVotingFinished(roomID.String())
	}

	ctx.Status(http.StatusOK)
}

// Reset снимает отметку о завершении голосования
// @Summary Сброс завершения голосования
// @Tags Voting
// @Accept json
// @Param room_id path string true "Идентификатор комнаты"
// @Param request body CompletionRequestDTO true "Имя участника"
// @Success 200 "Отметка снята"
// @Failure 400 {object} http_common.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} http_common.ErrorResponse "Комната или участник не найдены"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/{room_id}/voting/reset [post]
func (c *Controller) reset(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	var req CompletionRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	if err := c.uc.ResetCompletion(ctx, roomID, req.ParticipantID); err != nil {
		c.respondVoteError(ctx, err)
		return
	}

	progress, err := c.uc.VotingProgress(ctx, roomID)
	if err != nil {
		c.respondVoteError(ctx, err)
		return
	}
	c.hub.NotifyVotingProgress(roomID.String(), progress)

	ctx.Status(http.StatusOK)
}

type ProgressResponseDTO struct {
	Total        int      `json:"total"`
	Completed    int      `json:"completed"`
	Pending      int      `json:"pending"`
	Percentage   int      `json:"percentage"`
	AllCompleted bool     `json:"all_completed"`
	CompletedIDs []string `json:"completed_ids"`
	PendingIDs   []string `json:"pending_ids"`
}

// Progress возвращает статистику завершения голосования
// @Summary Прогресс голосования
// @Tags Voting
// @Produce json
// @Param room_id path string true "Идентификатор комнаты"
// @Success 200 {object} ProgressResponseDTO "Прогресс"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/{room_id}/voting/progress [get]
func (c *Controller) progress(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	progress, err := c.uc.VotingProgress(ctx, roomID)
	if err != nil {
		c.respondVoteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ProgressResponseDTO{
		Total:        progress.Total,
		Completed:    progress.Completed,
		Pending:      progress.Pending,
		Percentage:   progress.Percentage,
		AllCompleted: progress.AllCompleted,
		CompletedIDs: progress.CompletedIDs,
		PendingIDs:   progress.PendingIDs,
	})
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

func (c *Controller) respondVoteError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase_vote.ErrResourceNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
	case errors.Is(err, usecase_vote.ErrNotParticipant):
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
			Message: "user is not a participant of this room",
		})
	case errors.Is(err, usecase_vote.ErrRoomExpired):
		ctx.JSON(http.StatusGone, http_common.ErrorResponse{
			Message: "room expired",
		})
	case errors.Is(err, usecase_vote.ErrRoomNotActive):
		ctx.JSON(http.StatusGone, http_common.ErrorResponse{
			Message: "room is not active",
		})
	case errors.Is(err, usecase_vote.ErrInvalidVoteType):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "vote type must be like or dislike",
		})
	default:
		c.logger.Error("voting operation failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}
