package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/photoproof/photoproof-api/internal/config"
	"github.com/photoproof/photoproof-api/internal/domain/auth"
	"github.com/photoproof/photoproof-api/internal/domain/batch"
	"github.com/photoproof/photoproof-api/internal/domain/category"
	"github.com/photoproof/photoproof-api/internal/domain/client"
	"github.com/photoproof/photoproof-api/internal/domain/comment"
	"github.com/photoproof/photoproof-api/internal/domain/image"
	"github.com/photoproof/photoproof-api/internal/domain/project"
	"github.com/photoproof/photoproof-api/internal/domain/stats"
	"github.com/photoproof/photoproof-api/internal/domain/studio"
	"github.com/photoproof/photoproof-api/internal/domain/tag"
	"github.com/photoproof/photoproof-api/internal/domain/upload"
	"github.com/photoproof/photoproof-api/internal/domain/user"
	"github.com/photoproof/photoproof-api/internal/middleware"
	"github.com/photoproof/photoproof-api/internal/pkg/database"
	"github.com/photoproof/photoproof-api/internal/pkg/imaging"
	"github.com/photoproof/photoproof-api/internal/pkg/jwt"
	"github.com/photoproof/photoproof-api/internal/pkg/logger"
	"github.com/photoproof/photoproof-api/internal/pkg/response"
	"github.com/photoproof/photoproof-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting PhotoProof API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Storage backend ----------
	var store storage.Storage
	var localStore *storage.LocalStorage
	if cfg.StorageBackend == "s3" {
		store, err = storage.NewS3Storage(storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			AccessKeySecret: cfg.S3AccessKeySecret,
			BucketName:      cfg.S3BucketName,
			Region:          cfg.S3Region,
			PublicURL:       cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 storage")
		}
	} else {
		localStore, err = storage.NewLocalStorage(cfg.UploadsDir, cfg.PublicFilesURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create local storage")
		}
		store = localStore
	}

	processor := imaging.NewProcessor(imaging.DefaultConfig())

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	studioRepo := studio.NewRepository(db)
	clientRepo := client.NewRepository(db)
	tagRepo := tag.NewRepository(db)
	projectRepo := project.NewRepository(db)
	categoryRepo := category.NewRepository(db)
	imageRepo := image.NewRepository(db)
	commentRepo := comment.NewRepository(db)
	statsRepo := stats.NewRepository(db)

	// ---------- Services ----------
	var tokenStore auth.TokenStore
	if redisClient != nil {
		tokenStore = auth.NewRedisTokenStore(redisClient)
	}
	authService := auth.NewService(userRepo, studioRepo, jwtService, tokenStore)
	studioService := studio.NewService(studioRepo)
	clientService := client.NewService(clientRepo)
	imageService := image.NewService(imageRepo, tagRepo, store, cfg.MaxPageSize)
	categoryService := category.NewService(categoryRepo)
	projectService := project.NewService(projectRepo, clientRepo, categoryRepo, imageService)
	commentService := comment.NewService(commentRepo)
	uploadService := upload.NewService(projectRepo, categoryRepo, imageRepo, imageService, store, processor)
	batchService := batch.NewService(imageRepo, commentRepo, tagRepo, projectRepo)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	studioHandler := studio.NewHandler(studioService)
	clientHandler := client.NewHandler(clientService)
	projectHandler := project.NewHandler(projectService)
	categoryHandler := category.NewHandler(categoryService)
	imageHandler := image.NewHandler(imageService)
	commentHandler := comment.NewHandler(commentService)
	uploadHandler := upload.NewHandler(uploadService, cfg.MaxUploadBytes)
	batchHandler := batch.NewHandler(batchService)
	tagHandler := tag.NewHandler(tagRepo)
	statsHandler := stats.NewHandler(statsRepo)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/studios", studioHandler.Routes(authMiddleware, statsHandler.Dashboard))
		r.Mount("/clients", clientHandler.Routes(authMiddleware))
		r.Mount("/projects", projectHandler.Routes(
			authMiddleware,
			categoryHandler.Routes(),
			imageHandler.Routes(),
			statsHandler.ProjectStats,
		))
		r.Route("/images/{imageID}/comments", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Mount("/", commentHandler.Routes())
		})
		r.Mount("/uploads", uploadHandler.Routes(authMiddleware))
		r.Mount("/actions", batchHandler.Routes(authMiddleware))
		r.Mount("/tags", tagHandler.Routes(authMiddleware))

		// Client gallery access by share link, no auth
		r.Get("/gallery/{accessURL}", projectHandler.GetByAccessURL)
	})

	// Uploaded content served straight off disk for the local backend;
	// the S3 backend hands out absolute URLs instead.
	if localStore != nil {
		fileServer := http.StripPrefix("/files/", http.FileServer(http.Dir(localStore.BasePath())))
		r.Get("/files/*", fileServer.ServeHTTP)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
