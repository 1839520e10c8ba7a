package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/config"
	"github.com/ROHITHC1526/CyberGuardBOT/internal/crypto"
	"github.com/ROHITHC1526/CyberGuardBOT/internal/handler"
	"github.com/ROHITHC1526/CyberGuardBOT/internal/logger"
	"github.com/ROHITHC1526/CyberGuardBOT/internal/notifier"
	"github.com/ROHITHC1526/CyberGuardBOT/internal/repository"
	"github.com/ROHITHC1526/CyberGuardBOT/internal/scorer_client"
	"github.com/ROHITHC1526/CyberGuardBOT/internal/server"
	"github.com/ROHITHC1526/CyberGuardBOT/internal/service"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.App.Env)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync() // Flushes buffer, if any
	}()

	// Address sealing is optional
	var sealer repository.AddressSealer
	if cfg.Security.AddressKey != "" {
		s, err := crypto.NewAddressSealer(cfg.Security.AddressKey, cfg.Security.AddressSalt)
		if err != nil {
			log.Fatal("Failed to initialize address sealer", zap.Error(err))
		}
		sealer = s
		log.Info("Source addresses will be encrypted at rest")
	}

	// A missing database is logged, not fatal: analysis keeps working with
	// ephemeral results and the read paths report the failure.
	var messageRepo repository.MessageRepository
	db, err := repository.Open(cfg.Database.Driver, cfg.Database.URL, log)
	if err == nil {
		if err = repository.MigrateDB(db, cfg.Database.Driver, log); err != nil {
			db.Close()
		}
	}
	if err != nil {
		log.Error("Database unavailable, continuing without persistence", zap.Error(err))
		messageRepo = repository.NewUnavailableRepository(err)
	} else {
		defer db.Close()
		messageRepo = repository.NewMessageRepository(db, sealer, log)
	}

	scorerClient := scorer_client.NewClient(cfg.Scorer.URL, log)

	dispatcher := newAlertDispatcher(cfg, log)

	var alerter service.ScamAlerter
	if dispatcher != nil {
		alerter = dispatcher
	}

	dev := cfg.IsDevelopment()
	handlers := server.Handlers{
		Analysis: handler.NewAnalysisHandler(service.NewAnalyzer(scorerClient, messageRepo, alerter, cfg.Scorer.Timeout, log), log, dev),
		Messages: handler.NewMessagesHandler(service.NewHistoryService(messageRepo, log), log, dev),
		Stats:    handler.NewStatsHandler(service.NewStatsService(messageRepo, log), log, dev),
		Health:   handler.NewHealthHandler(messageRepo, scorerClient, log),
	}

	srv, err := server.NewServer(cfg, handlers, log)
	if err != nil {
		log.Fatal("Failed to create server", zap.Error(err))
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("CyberGuard backend starting",
		zap.String("env", cfg.App.Env),
		zap.String("scorer_url", cfg.Scorer.URL),
		zap.String("database_driver", cfg.Database.Driver))

	if err := srv.Run(ctx); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
	}

	if dispatcher != nil {
		drainCtx, drainCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := dispatcher.Close(drainCtx); err != nil {
			log.Warn("Alert dispatcher did not drain", zap.Error(err))
		}
		drainCancel()
	}

	log.Info("Application stopped.")
}

// newAlertDispatcher builds the configured alert sinks. Sinks that fail to
// initialize are skipped; nil is returned when none remain.
func newAlertDispatcher(cfg *config.Config, log *zap.Logger) *notifier.Dispatcher {
	if !cfg.Alerts.Enabled {
		log.Info("Scam alerts are disabled")
		return nil
	}

	var sinks []notifier.Sink
	if cfg.Alerts.Telegram.Token != "" && cfg.Alerts.Telegram.ChatID != 0 {
		tg, err := notifier.NewTelegramNotifier(cfg.Alerts.Telegram.Token, cfg.Alerts.Telegram.ChatID, log)
		if err != nil {
			log.Warn("Failed to initialize Telegram alerts, continuing without them", zap.Error(err))
		} else {
			sinks = append(sinks, tg)
		}
	}
	if cfg.Alerts.AMQP.URL != "" {
		pub, err := notifier.DialAMQP(cfg.Alerts.AMQP.URL, log)
		if err != nil {
			log.Warn("Failed to initialize AMQP alerts, continuing without them", zap.Error(err))
		} else {
			sinks = append(sinks, pub)
		}
	}

	if len(sinks) == 0 {
		log.Warn("Scam alerts enabled but no sink is configured")
		return nil
	}
	return notifier.NewDispatcher(sinks, cfg.Alerts.MinProbability, cfg.Alerts.QueueSize, log)
}
