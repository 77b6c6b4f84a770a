package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/galaxy-cinema-booking/internal/config"
	"github.com/iliyamo/galaxy-cinema-booking/internal/database"
	"github.com/iliyamo/galaxy-cinema-booking/internal/handler"
	"github.com/iliyamo/galaxy-cinema-booking/internal/logger"
	"github.com/iliyamo/galaxy-cinema-booking/internal/middleware"
	"github.com/iliyamo/galaxy-cinema-booking/internal/queue"
	"github.com/iliyamo/galaxy-cinema-booking/internal/repository"
	"github.com/iliyamo/galaxy-cinema-booking/internal/router"
	"github.com/iliyamo/galaxy-cinema-booking/internal/service"
	"github.com/iliyamo/galaxy-cinema-booking/internal/session"
	"github.com/iliyamo/galaxy-cinema-booking/internal/ticket"
)

type stores struct {
	slots    repository.SlotStore
	bookings repository.BookingStore
	close    func()
}

func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	if cfg.StoreDriver == config.DriverMySQL {
		db, err := database.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return stores{}, err
		}
		if err := database.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return stores{}, err
		}
		return stores{
			slots:    repository.NewSQLSlotRepo(db),
			bookings: repository.NewSQLBookingRepo(db),
			close:    closeSQL(db),
		}, nil
	}

	client, db, err := database.OpenMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return stores{}, err
	}
	closeFn := closeMongo(client)
	slots, err := repository.NewMongoSlotRepo(ctx, db)
	if err != nil {
		closeFn()
		return stores{}, err
	}
	bookings, err := repository.NewMongoBookingRepo(ctx, db)
	if err != nil {
		closeFn()
		return stores{}, err
	}
	return stores{slots: slots, bookings: bookings, close: closeFn}, nil
}

func closeSQL(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("mysql close")
		}
	}
}

func closeMongo(client *mongo.Client) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}
}

func main() {
	cfg := config.Load()

	closeLog, err := logger.Setup(cfg.LogLevel, cfg.IsDev(), cfg.LogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("logger setup failed")
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("storage unavailable")
	}
	defer st.close()
	log.Info().Str("driver", cfg.StoreDriver).Msg("storage ready")

	rdb := config.NewRedisClient()
	var sessions session.Store
	if rdb != nil {
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
	} else {
		log.Warn().Msg("redis unavailable: sessions kept in memory, cache and rate limit disabled")
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	slots := service.NewSlotDirectory(st.slots, cache.Purge)
	if _, err := slots.EnsureSeeded(ctx); err != nil {
		log.Warn().Err(err).Msg("initial seed failed")
	}

	var pub service.EventPublisher
	if cfg.QueueEnabled {
		pub = queue.NewPublisher(cfg.RabbitMQURL)
		go func() {
			if err := queue.NewConsumer(cfg.RabbitMQURL, "").Run(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("booking consumer stopped")
			}
		}()
	}
	bookings := service.NewBookingService(st.bookings, pub)
	flow := service.NewBookingFlow(sessions, slots, bookings, ticket.NewGenerator(cfg.VenueName))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestLogger(), middleware.Recover())

	router.Register(e, router.Deps{
		Movies:      handler.NewMovieHandler(slots),
		Bookings:    handler.NewBookingHandler(bookings),
		Sessions:    handler.NewSessionHandler(flow),
		Auth:        handler.NewAuthHandler(cfg),
		Cache:       cache,
		RateLimit:   rateLimit(rdb),
		AdminSecret: cfg.AdminJWTSecret,
	})
	if !cfg.AdminEnabled() {
		log.Warn().Msg("ADMIN_JWT_SECRET not set: admin routes are open")
	}

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("HTTP server listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		os.Exit(1)
	}
}

func rateLimit(rdb *redis.Client) echo.MiddlewareFunc {
	if rdb == nil {
		return nil
	}
	return middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
}
