package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/hangar-scheduler/internal/audit"
	"github.com/BruksfildServices01/hangar-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/hangar-scheduler/internal/db"
	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/logger"
	"github.com/BruksfildServices01/hangar-scheduler/internal/routes"
	"github.com/BruksfildServices01/hangar-scheduler/internal/slotlock"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// .env é opcional (desenvolvimento local)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}

	// ======================================================
	// Trava curta de horário (Redis opcional)
	// ======================================================
	var locker domain.SlotLocker = slotlock.Noop{}
	if cfg.RedisAddr != "" {
		client, err := slotlock.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer client.Close()
		locker = slotlock.NewRedisLocker(client, cfg.SlotHoldTTL)
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.SlotHoldTTL).Msg("slot hold enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set; slot hold disabled")
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), cfg.AuditQueueSize)
	defer auditDispatcher.Close()

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, locker, auditDispatcher)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}
