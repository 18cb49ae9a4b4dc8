package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/voicehire/voicehire/config"
	"github.com/voicehire/voicehire/internal/api/handlers"
	"github.com/voicehire/voicehire/internal/api/routes"
	"github.com/voicehire/voicehire/internal/auth"
	"github.com/voicehire/voicehire/internal/cache"
	"github.com/voicehire/voicehire/internal/logger"
	"github.com/voicehire/voicehire/internal/models"
	"github.com/voicehire/voicehire/internal/providers/llm"
	"github.com/voicehire/voicehire/internal/providers/stt"
	"github.com/voicehire/voicehire/internal/providers/tts"
	"github.com/voicehire/voicehire/internal/questions"
	"github.com/voicehire/voicehire/internal/repositories"
	"github.com/voicehire/voicehire/internal/services"
	"github.com/voicehire/voicehire/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.New()
	ctx := context.Background()

	db, err := config.OpenDatabase(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	rdb, err := config.NewRedis(cfg.Redis)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	var detailsCache cache.Cache
	var turnLocker cache.Locker
	if rdb != nil {
		detailsCache = cache.NewRedisCache(rdb)
		turnLocker = cache.NewRedisLocker(rdb)
	} else {
		log.Warn("redis not configured, caching and turn locking disabled")
	}

	gemini, err := llm.NewVertexGemini(ctx, cfg.Google.ProjectID, cfg.Google.Location, cfg.Google.GeminiModel)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize Vertex AI client")
	}
	defer gemini.Close()

	speech, err := stt.NewGoogleSpeech(ctx)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize Speech-to-Text client")
	}
	defer speech.Close()

	voice, err := tts.NewGoogleTTS(ctx, cfg.Google.TTSVoice)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize Text-to-Speech client")
	}
	defer voice.Close()

	var uploader storage.Uploader
	if cfg.Google.StorageBucket != "" {
		gcs, err := storage.NewGCSUploader(ctx, cfg.Google.StorageBucket)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize Cloud Storage client")
		}
		uploader = gcs
	} else {
		log.Warn("GCS bucket not configured, file archival disabled")
	}

	users := repositories.NewUserRepo(db)
	userSessions := repositories.NewUserSessionRepo(db)
	jds := repositories.NewJobDescriptionRepo(db)
	resumes := repositories.NewResumeRepo(db)
	interviews := repositories.NewInterviewRepo(db)
	interviewQuestions := repositories.NewQuestionRepo(db)
	responses := repositories.NewResponseRepo(db)

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	verifier := auth.NewGoogleVerifier(cfg.Auth.GoogleClientID)
	roles := auth.NewRoleResolver(cfg.Auth.RecruiterEmails)

	generator := questions.NewGenerator(gemini, log)
	analyzer := questions.NewAnalyzer(gemini, log)

	authService := services.NewAuthService(users, userSessions, verifier, roles, tokens)
	documentService := services.NewDocumentService(jds, resumes, uploader, log)
	interviewService := services.NewInterviewService(
		db, jds, resumes, interviews, interviewQuestions, responses, generator, detailsCache, log)
	turnService := services.NewTurnService(
		db, interviews, interviewQuestions, responses, speech, voice, analyzer, uploader, turnLocker, detailsCache, log)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	routes.Register(engine, routes.Deps{
		Auth:        handlers.NewAuthHandler(authService),
		Upload:      handlers.NewUploadHandler(documentService, authService, cfg.Upload.MaxFileSize, log),
		Interview:   handlers.NewInterviewHandler(interviewService),
		Turn:        handlers.NewTurnHandler(turnService, cfg.Upload.MaxFileSize, log),
		Tokens:      tokens,
		FrontendURL: cfg.Server.FrontendURL,
		Log:         log,
	})

	log.WithField("port", cfg.Server.Port).Info("starting server")
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
