package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "split_ws_active_sessions",
		Help: "Jumlah koneksi websocket yang sedang hidup.",
	})

	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "split_rooms_created_total",
		Help: "Total room yang dibuat (create eksplisit + auto-create saat join).",
	})

	Broadcasts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "split_broadcasts_total",
		Help: "Total broadcast per tipe event.",
	}, []string{"event"})

	IngestedItems = promauto.NewCounter(prometheus.CounterOpts{
		Name: "split_ingested_items_total",
		Help: "Total item hasil parsing struk yang masuk catalog.",
	})

	CommandErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "split_command_errors_total",
		Help: "Total command websocket yang ditolak, per kode error.",
	}, []string{"code"})
)
