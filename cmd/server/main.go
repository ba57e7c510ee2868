package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/academylabs/backend/api/handler"
	"github.com/academylabs/backend/internal/config"
	"github.com/academylabs/backend/internal/infrastructure/buffer"
	"github.com/academylabs/backend/internal/infrastructure/monitor"
	pgInfra "github.com/academylabs/backend/internal/infrastructure/postgres"
	redisInfra "github.com/academylabs/backend/internal/infrastructure/redis"
	"github.com/academylabs/backend/internal/middleware"
	"github.com/academylabs/backend/internal/revocation"
	"github.com/academylabs/backend/internal/router"
	"github.com/academylabs/backend/internal/services"
	"github.com/academylabs/backend/internal/services/lifecycle"
	"github.com/academylabs/backend/pkg/httpcontext"
	"github.com/academylabs/backend/pkg/logger"
	"github.com/academylabs/backend/pkg/token"
	"github.com/academylabs/backend/repository/postgres"
	redisRepo "github.com/academylabs/backend/repository/redis"
	authUC "github.com/academylabs/backend/usecase/auth"
	claimsUC "github.com/academylabs/backend/usecase/claims"
	courseUC "github.com/academylabs/backend/usecase/course"
	mentorUC "github.com/academylabs/backend/usecase/mentor"
	progressUC "github.com/academylabs/backend/usecase/progress"
	userUC "github.com/academylabs/backend/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.RegisterCloser("redis", redisClient)

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "progress")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.RegisterCloser("buffer", bufferStore)

	mon := monitor.New(pool, monitor.RedisPinger(redisClient), bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	identityRepo := postgres.NewIdentityRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	courseRepo := postgres.NewCourseRepository(pool)
	topicRepo := postgres.NewTopicRepository(pool)
	lessonRepo := postgres.NewLessonRepository(pool)
	progressRepo := postgres.NewProgressRepository(pool)
	creditRepo := postgres.NewCreditRepository(pool)
	mentorRepo := postgres.NewMentorApplicationRepository(pool)
	revocationRepo := redisRepo.NewRevocationRepository(redisClient, cfg.Auth.RefreshWindow)

	revocations := revocation.NewCache(revocationRepo, cfg.Auth.RevocationRefresh, zapLogger)
	revocations.Start()
	manager.Register("revocation_cache", func(ctx context.Context) error {
		revocations.Stop()
		return nil
	})

	signer := token.NewSigner(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	verifier := token.NewVerifier(cfg.Auth.Secret, revocations)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		progressRepo,
		creditRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	authUseCase := authUC.New(identityRepo, signer, verifier, cfg.Auth.RefreshWindow, zapLogger)
	claimsUseCase := claimsUC.New(identityRepo, revocationRepo, revocations, zapLogger)
	courseUseCase := courseUC.New(courseRepo, topicRepo, lessonRepo, zapLogger)
	progressUseCase := progressUC.New(lessonRepo, progressRepo, creditRepo, bufferBridge, zapLogger)
	mentorUseCase := mentorUC.New(mentorRepo, userRepo, zapLogger)
	userUseCase := userUC.New(userRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	cookie := apiHandler.CookieConfig{
		Name:   cfg.Auth.CookieName,
		TTL:    cfg.Auth.TokenTTL,
		Secure: cfg.Auth.SecureCookies,
	}

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, cookie, ctxAdapter, zapLogger),
		Claims:   apiHandler.NewClaimsHandler(claimsUseCase, ctxAdapter, zapLogger),
		Course:   apiHandler.NewCourseHandler(courseUseCase, ctxAdapter, zapLogger),
		Progress: apiHandler.NewProgressHandler(progressUseCase, ctxAdapter, zapLogger),
		Mentor:   apiHandler.NewMentorHandler(mentorUseCase, ctxAdapter, zapLogger),
		User:     apiHandler.NewUserHandler(userUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
		Pages:    apiHandler.NewPagesHandler(ctxAdapter, zapLogger),
	}

	mw := router.Middleware{
		RequireRoles: func(roles ...string) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
			return middleware.RequireRoles(cfg.Auth.CookieName, verifier, userRepo, ctxAdapter, zapLogger, roles...)
		},
		SuperAdmin: middleware.RequireSuperAdmin(cfg.Auth.CookieName, verifier, zapLogger),
		AdminClaim: middleware.RequireAdminClaim(cfg.Auth.CookieName, verifier, zapLogger),
	}

	r := router.New(handlers, mw)

	gate := middleware.AdminGate(middleware.GateConfig{
		PagePrefix:  cfg.Auth.AdminPrefix,
		APIPrefix:   cfg.Auth.AdminAPIPrefix,
		LoginPath:   cfg.Auth.LoginPath,
		PublicPaths: cfg.Auth.PublicPaths,
		CookieName:  cfg.Auth.CookieName,
	}, verifier, zapLogger)

	server := &fasthttp.Server{
		Handler:      gate(r.Handler),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()
	zapLogger.Info("shutdown signal received")

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
