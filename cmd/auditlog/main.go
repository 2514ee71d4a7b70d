package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-split-bill.git/internal/audit"
	"github.com/ariefcatur/go-split-bill.git/internal/config"
	kafkax "github.com/ariefcatur/go-split-bill.git/internal/kafka"
	"github.com/ariefcatur/go-split-bill.git/internal/redisx"
	"github.com/ariefcatur/go-split-bill.git/internal/rooms"
	"github.com/ariefcatur/go-split-bill.git/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis buat dedup event_id
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	rec := &audit.Recorder{Redis: rdb, Log: log}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.AuditGroup, rooms.TopicRoomEvents, cfg.AuditWorkers, log)

	go func() {
		log.WithFields(logrus.Fields{
			"group":   cfg.AuditGroup,
			"topic":   rooms.TopicRoomEvents,
			"workers": cfg.AuditWorkers,
		}).Info("auditlog consumer started")
		if err := cons.Start(ctx, rec.HandleRoomEvent); err != nil {
			log.WithError(err).Error("consumer exit")
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Info("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}
