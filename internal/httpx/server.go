package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Mount menggabungkan rute websocket dan router REST di satu mux.
// /ws sengaja dipasang di root tanpa middleware: koneksinya di-hijack dan
// hidup jauh melewati Timeout, dan Logger-nya cuma akan menulis entry
// palsu setelah hijack.
func Mount(wsHandler http.Handler, api *chi.Mux) *chi.Mux {
	root := chi.NewRouter()
	root.Method(http.MethodGet, "/ws", wsHandler)
	root.Mount("/", api)
	return root
}
