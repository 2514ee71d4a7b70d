package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-split-bill.git/internal/audit"
	"github.com/ariefcatur/go-split-bill.git/internal/config"
	"github.com/ariefcatur/go-split-bill.git/internal/httpx"
	"github.com/ariefcatur/go-split-bill.git/internal/ingest"
	kafkax "github.com/ariefcatur/go-split-bill.git/internal/kafka"
	"github.com/ariefcatur/go-split-bill.git/internal/redisx"
	"github.com/ariefcatur/go-split-bill.git/internal/rooms"
	"github.com/ariefcatur/go-split-bill.git/internal/ws"
	"github.com/ariefcatur/go-split-bill.git/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis (cache snapshot + dedup auditlog)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer untuk audit event; opsional
	var prod *kafkax.Producer
	if cfg.KafkaEnabled {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, rooms.TopicRoomEvents, 1024, log)
		prod.Start(ctx)
	}
	auditor := &audit.Publisher{Producer: prod, Service: cfg.ServiceName}

	// Hub + registry: hub jadi Broadcaster-nya registry, auditor ikut
	// dipanggil dari critical section room supaya urutan event = urutan mutasi
	hub := ws.NewHub(log, &redisx.SnapshotCache{RDB: rdb, Log: log})
	registry := rooms.NewRegistry(hub, auditor)

	// HTTP + websocket
	api := httpx.NewRouter()
	rh := &httpx.RoomsHandler{
		Registry: registry,
		Parser:   ingest.LineParser{},
		Redis:    rdb,
		Log:      log,
	}
	rh.Register(api)

	wsh := &ws.Handler{
		Dispatcher: &ws.Dispatcher{
			Registry: registry,
			Hub:      hub,
			Log:      log,
		},
		Log: log,
	}
	router := httpx.Mount(wsh, api)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	if prod != nil {
		prod.Close()      // tutup inbox -> flush & close writer
		prod.WaitClosed() // drain
	}
	cancel()
}
