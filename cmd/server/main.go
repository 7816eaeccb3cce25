package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/skillswap/backend/api/handler"
	"github.com/skillswap/backend/internal/config"
	"github.com/skillswap/backend/internal/infrastructure/monitor"
	"github.com/skillswap/backend/internal/infrastructure/outbox"
	pgInfra "github.com/skillswap/backend/internal/infrastructure/postgres"
	redisInfra "github.com/skillswap/backend/internal/infrastructure/redis"
	"github.com/skillswap/backend/internal/middleware"
	"github.com/skillswap/backend/internal/router"
	"github.com/skillswap/backend/internal/services"
	"github.com/skillswap/backend/internal/services/lifecycle"
	"github.com/skillswap/backend/pkg/httpcontext"
	"github.com/skillswap/backend/pkg/logger"
	"github.com/skillswap/backend/pkg/mailer"
	"github.com/skillswap/backend/pkg/token"
	"github.com/skillswap/backend/repository/postgres"
	redisRepo "github.com/skillswap/backend/repository/redis"
	adminUC "github.com/skillswap/backend/usecase/admin"
	authUC "github.com/skillswap/backend/usecase/auth"
	directoryUC "github.com/skillswap/backend/usecase/directory"
	profileUC "github.com/skillswap/backend/usecase/profile"
	swapUC "github.com/skillswap/backend/usecase/swap"
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

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

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
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	outboxStore, err := outbox.Open(cfg.Outbox.Path, "mail")
	if err != nil {
		zapLogger.Fatal("failed to open mail outbox", zap.Error(err))
	}
	manager.Register("outbox", func(ctx context.Context) error {
		return outboxStore.Close()
	})

	mon := monitor.New(pool, redisClient, outboxStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	announcementRepo := postgres.NewAnnouncementRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Tokens.RefreshTTL)

	smtpMailer := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	dispatcher := services.NewMailDispatcher(
		outboxStore,
		mon,
		smtpMailer,
		zapLogger,
		services.DispatcherConfig{
			Interval:   cfg.Outbox.DrainInterval,
			BatchSize:  50,
			MaxRetries: cfg.Outbox.MaxRetry,
			Retention:  time.Duration(cfg.Outbox.RetentionHours) * time.Hour,
		},
	)
	dispatcher.Start()
	manager.Register("mail_dispatcher", func(ctx context.Context) error {
		dispatcher.Stop(ctx)
		return nil
	})

	tokenManager := token.NewManager(token.Config{
		AccessSecret:  cfg.Tokens.AccessSecret,
		RefreshSecret: cfg.Tokens.RefreshSecret,
		ResetSecret:   cfg.Tokens.ResetSecret,
		AccessTTL:     cfg.Tokens.AccessTTL,
		RefreshTTL:    cfg.Tokens.RefreshTTL,
		ResetTTL:      cfg.Tokens.ResetTTL,
		Issuer:        cfg.Tokens.Issuer,
	})

	authUseCase := authUC.New(userRepo, sessionRepo, tokenManager, dispatcher, cfg.ResetURLBase, zapLogger)
	profileUseCase := profileUC.New(userRepo, zapLogger)
	swapUseCase := swapUC.New(userRepo, zapLogger)
	directoryUseCase := directoryUC.New(userRepo, zapLogger)
	adminUseCase := adminUC.New(userRepo, announcementRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:      apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Profile:   apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Swap:      apiHandler.NewSwapHandler(swapUseCase, ctxAdapter, zapLogger),
		Directory: apiHandler.NewDirectoryHandler(directoryUseCase, ctxAdapter, zapLogger),
		Admin:     apiHandler.NewAdminHandler(adminUseCase, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.NewAuth(tokenManager, userRepo, cfg.Context.RequestTimeout, zapLogger)

	limiterStore := middleware.NewLimiterStore(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	manager.Register("rate_limiter", func(ctx context.Context) error {
		limiterStore.Stop()
		return nil
	})

	r := router.New(handlers, router.Middleware{
		Authenticate: authMiddleware.Authenticate,
		RequireAdmin: authMiddleware.RequireAdmin,
		RateLimit:    middleware.RateLimit(limiterStore, zapLogger),
	})

	server := &fasthttp.Server{
		Handler:      r.Handler,
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

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
