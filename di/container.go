package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"places-exporter/api"
	"places-exporter/api/googleplaces"
	"places-exporter/config"
	"places-exporter/dao/redis"
	"places-exporter/db"
	"places-exporter/server"
	"places-exporter/server/handlers"
	services "places-exporter/service"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient      db.RedisClient
	RedisPlaceDao    *redis.RedisPlaceDAO
	PlacesAPI        googleplaces.PlacesAPI
	ExportService    *services.ExportService
	SessionService   *services.SessionService
	SessionHandler   *handlers.SessionHandler
	MuxRouter        *mux.Router
	Router           *server.Router
	PlacesHttpServer *server.PlacesHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(cfg *config.Config, apiKey string) (*Container, error) {
	slog.Info("[Container] initializing", "mock_api", cfg.Places.Mock, "redis", cfg.Redis.Enabled, "server", cfg.Server.Enabled)
	ctx := context.Background()

	// Redis backs the place archive; without it the archive lives in memory
	var redisClient db.RedisClient
	if cfg.Redis.Enabled {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		geoClient, err := db.NewGeoRedisClient(ctx, redisInternalClient)
		if err != nil {
			redisInternalClient.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		redisClient = geoClient
	} else {
		redisClient = db.NewMockRedisClient(ctx)
	}

	redisPlaceDao := redis.NewRedisPlaceDAO(redisClient)
	if ids, err := redisPlaceDao.ListAllPlaceIDs(); err != nil {
		slog.Warn("[Container] could not count archived places", "err", err)
	} else {
		slog.Info("[Container] place archive ready", "places", len(ids))
	}

	var placesAPI googleplaces.PlacesAPI
	if cfg.Places.Mock {
		slog.Info("[Container] using mock places api")
		placesAPI = googleplaces.NewPlacesApiClientMock(
			config.GetResourcePath(config.TEXT_SEARCH_RESPONSE_RESOURCE),
			config.GetResourcePath(config.NEARBY_SEARCH_RESPONSE_RESOURCE),
		)
	} else {
		httpClient := api.NewHTTPClient(cfg.Places.BaseURL, time.Duration(cfg.Places.TimeoutSeconds)*time.Second)
		placesAPI = googleplaces.NewPlacesApiClient(httpClient)
	}
	placesAPI.SetCredentials(apiKey)

	exportService := services.NewExportService(cfg.Export.Dir)
	sessionService := services.NewSessionService(placesAPI, exportService, redisPlaceDao)
	sessionHandler := handlers.NewSessionHandler(sessionService)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(sessionHandler, muxRouter)
	placesHttpServer := server.NewPlacesHttpServer(cfg.Server.Addr, router, muxRouter)

	return &Container{
		RedisClient:      redisClient,
		RedisPlaceDao:    redisPlaceDao,
		PlacesAPI:        placesAPI,
		ExportService:    exportService,
		SessionService:   sessionService,
		SessionHandler:   sessionHandler,
		MuxRouter:        muxRouter,
		Router:           router,
		PlacesHttpServer: placesHttpServer,
	}, nil
}
