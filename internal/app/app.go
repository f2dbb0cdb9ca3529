package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"CourseHub/internal/app/server"
	"CourseHub/internal/config"
	delivery "CourseHub/internal/delivery/http"
	"CourseHub/internal/service"
	"CourseHub/internal/service/auth"
	"CourseHub/internal/service/catalog"
	"CourseHub/internal/storage/elastic"
	"CourseHub/internal/storage/minio_storage"
	"CourseHub/internal/storage/postgres"
	"CourseHub/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("starting course catalog", "env", cfg.Env, "address", cfg.HTTPServer.Address())

	if cfg.JWT.SecretKey == "" {
		log.Fatal("JWT secret is not set")
	}

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	lessonRepo := postgres.NewLessonPostgres(pg.Pool)
	userRepo := postgres.NewUserPostgres(pg.Pool)

	iconRepo := buildIconStorage(cfg, log)
	searchRepo := buildSearchRepo(cfg, log)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, "course-catalog", cfg.JWT.TokenTTL)
	u := service.Collection{
		AuthService:   auth.NewAuthService(log, jwtManager, userRepo),
		CourseService: catalog.NewCourseService(log, courseRepo, lessonRepo, iconRepo, searchRepo),
		LessonService: catalog.NewLessonService(log, lessonRepo),
	}

	r := delivery.InitRoutes(log, u)

	srv := server.New(cfg.HTTPServer.Address(), cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	log.Info("server is running", "address", cfg.HTTPServer.Address())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("shutdown signal received", "signal", s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server stopped", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("error during shutdown", err)
	}
}

// buildIconStorage connects to minio when credentials are configured. The
// icon upload feature stays off otherwise.
func buildIconStorage(cfg *config.Config, log logger.Log) catalog.IconRepo {
	if cfg.Minio.AccessKey == "" {
		log.Warn("minio is not configured, icon uploads disabled")
		return nil
	}
	ms, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	icons, err := minio_storage.NewIconStorage(ms, cfg.Minio.IconBucket, cfg.Minio.PresignTTL)
	if err != nil {
		log.FatalErr("error preparing icon bucket", err)
	}
	return icons
}

// buildSearchRepo connects to elasticsearch when hosts are configured. The
// search endpoint returns empty results otherwise.
func buildSearchRepo(cfg *config.Config, log logger.Log) catalog.SearchRepo {
	if len(cfg.ES.Hosts) == 0 {
		log.Warn("elasticsearch is not configured, course search disabled")
		return nil
	}
	client, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	searchRepo := elastic.NewCourseSearchRepo(client, cfg.ES.Index)
	if err := searchRepo.CreateIndexIfNotExist(context.Background()); err != nil {
		log.FatalErr("error creating course index", err)
	}
	return searchRepo
}
