package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-accounts-api/config"
	"user-accounts-api/internal/application/ports"
	"user-accounts-api/internal/application/services"
	"user-accounts-api/internal/infrastructure/db/postgres"
	"user-accounts-api/internal/infrastructure/db/postgres/session"
	"user-accounts-api/internal/infrastructure/db/postgres/user"
	"user-accounts-api/internal/infrastructure/jwt"
	"user-accounts-api/internal/infrastructure/metrics"
	"user-accounts-api/internal/infrastructure/mq"
	rdb "user-accounts-api/internal/infrastructure/redis"
	"user-accounts-api/internal/interface/api/rest"
	"user-accounts-api/internal/interface/api/rest/middleware"
	"user-accounts-api/pkg/rmqconsumer"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	redis      *redis.Client
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Warn("no .env file, reading the environment only", zap.Error(err))
	}
	cfg := config.Load()
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		return nil, fmt.Errorf("db config: %w", err)
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err = postgres.EnsureSchema(ctx, logger, dbPool); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	// redis
	redisClient, err := rdb.New(ctx, logger, cfg.Redis)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	app := &App{
		logger:   logger,
		cfg:      cfg,
		db:       dbPool,
		redis:    redisClient,
		httpSrv:  httpSrv,
		router:   r,
		mCounter: mCounter,
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("rabbitmq config: %w", err)
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		app.Close()
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	app.mq = rbMQ
	if err = rbMQ.Init(); err != nil {
		app.Close()
		return nil, fmt.Errorf("init rabbitmq: %w", err)
	}

	// rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger)
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		app.Close()
		return nil, fmt.Errorf("connect rabbitmq consumer: %w", err)
	}
	app.mqConsumer = rmqConsumer
	if err = rmqConsumer.Init(); err != nil {
		app.Close()
		return nil, fmt.Errorf("init rabbitmq consumer: %w", err)
	}

	return app, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.mqConsumer != nil {
		a.mqConsumer.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run launches the http server and the mq workers under one context and
// stops them together on SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server %s error: %w", a.cfg.App.Name, err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	userRepo := user.NewRepository(a.db)
	sessionRepo := session.NewRepository(a.db)

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	denylist := rdb.NewDenylist(a.redis, a.cfg.Redis.Prefix)
	authService := services.NewAuthService(userRepo, sessionRepo, jwtService, denylist, a.mCounter, a.cfg.App.JWTTTL)
	userService := services.NewUserService(userRepo, a.mq, a.mCounter, a.cfg.App.BcryptCost)

	// controllers
	rest.NewAuthController(a.router, a.logger, userService, authService, jwtService)
	rest.NewUserController(a.router, userService, a.logger, jwtService, denylist)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
