package http_room

import (
	"errors"
	"log/slog"
	"net/http"

	http_common "github.com/Kieransaunders/moviezang-core/internal/delivery/http/common"
	ws_room "github.com/Kieransaunders/moviezang-core/internal/delivery/ws/room"
	"github.com/Kieransaunders/moviezang-core/internal/model"
	usecase_room "github.com/Kieransaunders/moviezang-core/internal/usecase/room"
	usecase_setup "github.com/Kieransaunders/moviezang-core/internal/usecase/setup"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	rooms *usecase_room.Usecase
	setup *usecase_setup.Usecase
	hub   *ws_room.Hub

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(rooms *usecase_room.Usecase, setup *usecase_setup.Usecase, hub *ws_room.Hub, opts ...ControllerOption) *Controller {
	c := &Controller{
		rooms:  rooms,
		setup:  setup,
		hub:    hub,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	{
		rooms.POST("", c.create)
		rooms.GET("/:room_id", c.get)
		rooms.GET("/code/:code", c.getByCode)
		rooms.POST("/:room_id/participants", c.join)
		rooms.POST("/code/:code/participants", c.joinByCode)
		rooms.DELETE("/:room_id/participants/:participant_id", c.leave)
		rooms.GET("/:room_id/participants", c.participants)
		rooms.POST("/:room_id/movies", c.populate)
		rooms.GET("/:room_id/movies", c.slate)
	}
}

// CreateRoomRequestDTO carries the host's opaque display name; there is
// no account system behind it.
type CreateRoomRequestDTO struct {
	Category        string `json:"category" binding:"required"`
	HostID          string `json:"host_id" binding:"required"`
	MaxParticipants int    `json:"max_participants"`
}

type CreateRoomResponseDTO struct {
	RoomID string `json:"room_id"`
	Code   string `json:"code"`
}

// Create создает новую комнату с уникальным кодом
// @Summary Создание комнаты
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body CreateRoomRequestDTO true "Данные комнаты"
// @Success 201 {object} CreateRoomResponseDTO "Комната успешно создана"
// @Failure 400 {object} http_common.ErrorResponse "Неверный формат запроса"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Failure 503 {object} http_common.ErrorResponse "Коды исчерпаны"
// @Router /rooms [post]
func (c *Controller) create(ctx *gin.Context) {
	var req CreateRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	room, err := c.rooms.Create(ctx, req.Category, req.HostID, req.MaxParticipants)
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		if errors.Is(err, usecase_room.ErrRoomsUnavailable) {
			ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
				Message: "unable to allocate unique code",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusCreated, CreateRoomResponseDTO{
		RoomID: room.ID.String(),
		Code:   room.Code,
	})
}

type RoomResponseDTO struct {
	RoomID          string `json:"room_id"`
	Code            string `json:"code"`
	Category        string `json:"category"`
	HostID          string `json:"host_id"`
	Status          string `json:"status"`
	MaxParticipants int    `json:"max_participants"`
	ExpiresAt       int64  `json:"expires_at"`
	CreatedAt       int64  `json:"created_at"`
}

// Get возвращает комнату по идентификатору
// @Summary Получение комнаты
// @Tags Rooms
// @Param room_id path string true "Идентификатор комнаты"
// @Success 200 {object} RoomResponseDTO "Комната"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/{room_id} [get]
func (c *Controller) get(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	room, err := c.rooms.Room(ctx, roomID)
	if err != nil {
		c.respondRoomError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toRoomResponse(room))
}

// GetByCode возвращает комнату по 4-значному коду
// @Summary Получение комнаты по коду
// @Tags Rooms
// @Param code path string true "Код комнаты"
// @Success 200 {object} RoomResponseDTO "Комната"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/code/{code} [get]
func (c *Controller) getByCode(ctx *gin.Context) {
	code := ctx.Param("code")

	room, err := c.rooms.RoomByCode(ctx, code)
	if err != nil {
		c.respondRoomError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toRoomResponse(room))
}

type JoinRequestDTO struct {
	ParticipantID string `json:"participant_id" binding:"required"`
}

// Join добавляет участника в комнату
// @Summary Участие в комнате
// @Tags Rooms
// @Accept json
// @Param room_id path string true "Идентификатор комнаты"
// @Param request body JoinRequestDTO true "Имя участника"
// @Success 201 "Участник успешно добавлен"
// @Failure 400 {object} http_common.ErrorResponse "Неверный формат запроса"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 409 {object} http_common.ErrorResponse "Комната заполнена или участник уже в комнате"
// @Failure 410 {object} http_common.ErrorResponse "Комната истекла или неактивна"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/{room_id}/participants [post]
func (c *Controller) join(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	var req JoinRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	room, err := c.rooms.Join(ctx, roomID, req.ParticipantID)
	if err != nil {
		c.respondJoinError(ctx, err)
		return
	}

	c.hub.NotifyParticipantJoined(room.ID.String(), req.ParticipantID)
	ctx.Status(http.StatusCreated)
}

// JoinByCode добавляет участника в комнату по коду
// @Summary Участие в комнате по коду
// @Tags Rooms
// @Accept json
// @Param code path string true "Код комнаты"
// @Param request body JoinRequestDTO true "Имя участника"
// @Success 201 "Участник успешно добавлен"
// @Failure 400 {object} http_common.ErrorResponse "Неверный формат запроса"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 409 {object} http_common.ErrorResponse "Комната заполнена или участник уже в комнате"
// @Failure 410 {object} http_common.ErrorResponse "Комната истекла или неактивна"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/code/{code}/participants [post]
func (c *Controller) joinByCode(ctx *gin.Context) {
	code := ctx.Param("code")

	var req JoinRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	room, err := c.rooms.JoinByCode(ctx, code, req.ParticipantID)
	if err != nil {
		c.respondJoinError(ctx, err)
		return
	}

	c.hub.NotifyParticipantJoined(room.ID.String(), req.ParticipantID)
	ctx.Status(http.StatusCreated)
}

// Leave удаляет участника из комнаты
// @Summary Выход из комнаты
// @Tags Rooms
// @Param room_id path string true "Идентификатор комнаты"
// @Param participant_id path string true "Имя участника"
// @Success 204 "Участник удален"
// @Failure 404 {object} http_common.ErrorResponse "Комната или участник не найдены"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/{room_id}/participants/{participant_id} [delete]
func (c *Controller) leave(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}
	participantID := ctx.Param("participant_id")

	if err := c.rooms.Leave(ctx, roomID, participantID); err != nil {
		c.respondRoomError(ctx, err)
		return
	}

	c.hub.NotifyParticipantLeft(roomID.String(), participantID)
	ctx.Status(http.StatusNoContent)
}

type ParticipantDTO struct {
	ParticipantID     string `json:"participant_id"`
	IsHost            bool   `json:"is_host"`
	JoinedAt          int64  `json:"joined_at"`
	VotingCompletedAt *int64 `json:"voting_completed_at,omitempty"`
}

type ParticipantsResponseDTO struct {
	Participants []ParticipantDTO `json:"participants"`
}

// Participants возвращает список участников комнаты
// @Summary Список участников
// @Tags Rooms
// @Param room_id path string true "Идентификатор комнаты"
// @Success 200 {object} ParticipantsResponseDTO "Участники"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/{room_id}/participants [get]
func (c *Controller) participants(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	participants, err := c.rooms.Participants(ctx, roomID)
	if err != nil {
		c.respondRoomError(ctx, err)
		return
	}

	dtos := make([]ParticipantDTO, len(participants))
	for i, p := range participants {
		dto := ParticipantDTO{
			ParticipantID: p.ParticipantID,
			IsHost:        p.IsHost,
			JoinedAt:      p.JoinedAt.Unix(),
		}
		if p.VotingCompletedAt != nil {
			completedAt := p.VotingCompletedAt.Unix()
			dto.VotingCompletedAt = &completedAt
		}
		dtos[i] = dto
	}

	ctx.JSON(http.StatusOK, ParticipantsResponseDTO{Participants: dtos})
}

type PopulateResponseDTO struct {
	MovieIDs []string `json:"movie_ids"`
}

// Populate наполняет комнату подборкой фильмов по её категории
// @Summary Наполнение комнаты фильмами
// @Tags Rooms
// @Param room_id path string true "Идентификатор комнаты"
// @Success 201 {object} PopulateResponseDTO "Подборка создана"
// @Failure 400 {object} http_common.ErrorResponse "Неизвестная категория"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 409 {object} http_common.ErrorResponse "Комната уже наполнена"
// @Failure 502 {object} http_common.ErrorResponse "Провайдер метаданных недоступен"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/{room_id}/movies [post]
func (c *Controller) populate(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	room, err := c.rooms.Room(ctx, roomID)
	if err != nil {
		c.respondRoomError(ctx, err)
		return
	}

	movieIDs, err := c.setup.Populate(ctx, roomID, room.Category)
	if err != nil {
		c.logger.Error("failed to populate room",
			slog.String("room_id", roomID.String()),
			slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_setup.ErrUnknownCategory):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "unknown category",
			})
		case errors.Is(err, usecase_setup.ErrAlreadyPopulated):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "room already populated",
			})
		case errors.Is(err, usecase_setup.ErrProviderFailed):
			ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
				Message: "metadata provider unavailable",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ids := make([]string, len(movieIDs))
	for i, id := range movieIDs {
		ids[i] = id.String()
	}
	ctx.JSON(http.StatusCreated, PopulateResponseDTO{MovieIDs: ids})
}

type MovieDTO struct {
	ID          string  `json:"id"`
	TMDBID      int64   `json:"tmdb_id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	GenreIDs    []int64 `json:"genre_ids"`
	VoteAverage float64 `json:"vote_average"`
	Runtime     int     `json:"runtime"`
}

type SlateResponseDTO struct {
	Movies []MovieDTO `json:"movies"`
}

// Slate возвращает подборку комнаты в порядке показа
// @Summary Подборка фильмов комнаты
// @Tags Rooms
// @Param room_id path string true "Идентификатор комнаты"
// @Success 200 {object} SlateResponseDTO "Подборка"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms/{room_id}/movies [get]
func (c *Controller) slate(ctx *gin.Context) {
	roomID, ok := c.parseRoomID(ctx)
	if !ok {
		return
	}

	if _, err := c.rooms.Room(ctx, roomID); err != nil {
		c.respondRoomError(ctx, err)
		return
	}

	movies, err := c.setup.Slate(ctx, roomID)
	if err != nil {
		c.logger.Error("failed to load slate",
			slog.String("room_id", roomID.String()),
			slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	dtos := make([]MovieDTO, len(movies))
	for i, m := range movies {
		dtos[i] = MovieDTO{
			ID:          m.ID.String(),
			TMDBID:      m.TMDBID,
			Title:       m.Title,
			Overview:    m.Overview,
			PosterPath:  m.PosterPath,
			ReleaseDate: m.ReleaseDate,
			GenreIDs:    m.GenreIDs,
			VoteAverage: m.VoteAverage,
			Runtime:     m.Runtime,
		}
	}
	ctx.JSON(http.StatusOK, SlateResponseDTO{Movies: dtos})
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

func (c *Controller) respondRoomError(ctx *gin.Context, err error) {
	if errors.Is(err, usecase_room.ErrResourceNotFound) {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
		return
	}
	c.logger.Error("room operation failed", slog.String("error", err.Error()))
	ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
		Message: "internal error",
	})
}

func (c *Controller) respondJoinError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase_room.ErrResourceNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
	case errors.Is(err, usecase_room.ErrRoomExpired):
		ctx.JSON(http.StatusGone, http_common.ErrorResponse{
			Message: "room expired",
		})
	case errors.Is(err, usecase_room.ErrRoomNotActive):
		ctx.JSON(http.StatusGone, http_common.ErrorResponse{
			Message: "room is not active",
		})
	case errors.Is(err, usecase_room.ErrAlreadyJoined):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
			Message: "participant already joined",
		})
	case errors.Is(err, usecase_room.ErrRoomFull):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
			Message: "room is full",
		})
	default:
		c.logger.Error("failed to join room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}

func toRoomResponse(room model.Room) RoomResponseDTO {
	return RoomResponseDTO{
		RoomID:          room.ID.String(),
		Code:            room.Code,
		Category:        room.Category,
		HostID:          room.HostID,
		Status:          room.Status,
		MaxParticipants: room.MaxParticipants,
		ExpiresAt:       room.ExpiresAt.Unix(),
		CreatedAt:       room.CreatedAt.Unix(),
	}
}
