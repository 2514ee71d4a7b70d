package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ariefcatur/go-split-bill.git/internal/ingest"
	"github.com/ariefcatur/go-split-bill.git/internal/metrics"
	"github.com/ariefcatur/go-split-bill.git/internal/redisx"
	"github.com/ariefcatur/go-split-bill.git/internal/rooms"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RoomsHandler melayani sisi request/response: bikin room, snapshot, dan
// boundary ingestion struk. Mutasi realtime lain lewat websocket.
type RoomsHandler struct {
	Registry *rooms.Registry
	Parser   ingest.Parser
	Redis    *redis.Client // boleh nil: cache mati, registry tetap sumber kebenaran
	Log      *logrus.Logger
}

type createRoomResp struct {
	RoomCode string `json:"room_code"`
}

type ingestReq struct {
	Text string `json:"text"`
}

type ingestResp struct {
	RoomCode string       `json:"room_code"`
	Added    int          `json:"added"`
	Items    []rooms.Item `json:"items"`
}

func (h *RoomsHandler) Register(r *chi.Mux) {
	r.Post("/rooms", h.createRoom)
	r.Get("/rooms/{code}", h.getRoom)
	r.Post("/rooms/{code}/ingest", h.ingestReceipt)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *RoomsHandler) createRoom(w http.ResponseWriter, r *http.Request) {
	code, err := rooms.NewCode()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "code generation failed"})
		return
	}
	if h.Registry.Create(code) {
		metrics.RoomsCreated.Inc()
	}
	writeJSON(w, http.StatusCreated, createRoomResp{RoomCode: code})
}

func (h *RoomsHandler) getRoom(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) coba cache
	key := fmt.Sprintf(redisx.KeyRoomSnapshot, code)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	// 2) fallback registry
	room, err := h.Registry.Get(code)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "room not found"})
		return
	}
	snap := room.Snapshot()
	b, _ := json.Marshal(snap)
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, b, redisx.TTLSnapshotCache).Err()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *RoomsHandler) ingestReceipt(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req ingestReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	room, err := h.Registry.Get(code)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "room not found"})
		return
	}

	items, err := h.Parser.Parse(req.Text)
	if err != nil {
		// Tidak ada item valid = ingestion failure; tidak ada yang
		// di-commit, room lain tidak perlu tahu.
		if errors.Is(err, ingest.ErrNoItems) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		h.Log.WithError(err).Warn("receipt parse failed")
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "receipt parse failed"})
		return
	}

	// Item hasil ingest diperlakukan persis seperti entry manual:
	// satu AddItem (plus broadcast) per item.
	for _, it := range items {
		room.AddItem(it)
	}
	metrics.IngestedItems.Add(float64(len(items)))

	writeJSON(w, http.StatusAccepted, ingestResp{RoomCode: code, Added: len(items), Items: items})
}
