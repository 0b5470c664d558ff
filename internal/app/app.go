package app

import (
	"github.com/Kieransaunders/moviezang-core/internal/config"
	http_init "github.com/Kieransaunders/moviezang-core/internal/delivery/http/init"
	http_results "github.com/Kieransaunders/moviezang-core/internal/delivery/http/results"
	http_room "github.com/Kieransaunders/moviezang-core/internal/delivery/http/room"
	http_swagger "github.com/Kieransaunders/moviezang-core/internal/delivery/http/swagger"
	http_voting "github.com/Kieransaunders/moviezang-core/internal/delivery/http/voting"
	ws_room "github.com/Kieransaunders/moviezang-core/internal/delivery/ws/room"
	infra_pg_init "github.com/Kieransaunders/moviezang-core/internal/infra/postgres/init"
	infra_postgres_movie "github.com/Kieransaunders/moviezang-core/internal/infra/postgres/movie"
	infra_postgres_results "github.com/Kieransaunders/moviezang-core/internal/infra/postgres/results"
	infra_postgres_room "github.com/Kieransaunders/moviezang-core/internal/infra/postgres/room"
	infra_postgres_vote "github.com/Kieransaunders/moviezang-core/internal/infra/postgres/vote"
	infra_redis_codecache "github.com/Kieransaunders/moviezang-core/internal/infra/redis/codecache"
	infra_redis_init "github.com/Kieransaunders/moviezang-core/internal/infra/redis/init"
	infra_tmdb "github.com/Kieransaunders/moviezang-core/internal/infra/tmdb"
	"github.com/Kieransaunders/moviezang-core/internal/infra/tmdbmock"
	usecase_results "github.com/Kieransaunders/moviezang-core/internal/usecase/results"
	usecase_room "github.com/Kieransaunders/moviezang-core/internal/usecase/room"
	usecase_setup "github.com/Kieransaunders/moviezang-core/internal/usecase/setup"
	usecase_vote "github.com/Kieransaunders/moviezang-core/internal/usecase/vote"
)

func Go(cfg *config.Config) {
	const (
		codeSetKey = "room_code"
	)

	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	var movieProvider usecase_setup.MovieProvider
	if cfg.TMDB.APIKey == "" {
		movieProvider = tmdbmock.New()
	} else {
		movieProvider = infra_tmdb.New(cfg.TMDB)
	}

	codeCache := infra_redis_codecache.New(redisConn, codeSetKey)
	roomRepository := infra_postgres_room.New(pgConn)
	movieRepository := infra_postgres_movie.New(pgConn)
	voteRepository := infra_postgres_vote.New(pgConn)
	resultsRepository := infra_postgres_results.New(pgConn)

	roomUC := usecase_room.New(roomRepository, codeCache,
		usecase_room.WithCodeRetries(cfg.Room.CodeRetries),
		usecase_room.WithDefaultCapacity(cfg.Room.MaxParticipants))
	setupUC := usecase_setup.New(movieProvider, movieRepository, movieRepository)
	voteUC := usecase_vote.New(voteRepository)
	resultsUC := usecase_results.New(resultsRepository)

	hub := ws_room.NewHub()
	go hub.Run()

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_swagger.New())
	controllerPool.Add(http_room.New(roomUC, setupUC, hub))
	controllerPool.Add(http_voting.New(voteUC, hub))
	controllerPool.Add(http_results.New(resultsUC))
	controllerPool.Add(ws_room.NewController(hub))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
