package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"hudsmenu-backend/lib/telemetry"
	"hudsmenu-backend/services/menu"
	"hudsmenu-backend/services/menu/history"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

var tracer = telemetry.Tracer("hudsmenu.services.menu.server")

type Handler struct {
	svc menu.Service
}

func NewHandler(svc menu.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.getDashboard).Methods("GET")
	r.HandleFunc("/api/week", h.getWeek).Methods("GET")
	r.HandleFunc("/api/today", h.getToday).Methods("GET")
	r.HandleFunc("/api/refresh", h.postRefresh).Methods("POST")
	r.HandleFunc("/api/health", h.getHealth).Methods("GET")
	r.HandleFunc("/api/history", h.getHistory).Methods("GET")
}

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return cors.Default().Handler(r)
}

func writeJson(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func (h *Handler) getWeek(w http.ResponseWriter, r *http.Request) {
	doc, _, err := h.svc.Week(r.Context())
	if err != nil {
		writeJson(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJson(w, http.StatusOK, doc)
}

func (h *Handler) getToday(w http.ResponseWriter, r *http.Request) {
	day, err := h.svc.Today(r.Context())
	if err != nil {
		writeJson(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJson(w, http.StatusOK, day)
}

// postRefresh runs a synchronous refresh. A scrape failure is reported
// in the status body, not as a 5xx: the dashboard keeps serving the last
// good document either way.
func (h *Handler) postRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "postRefresh")
	defer span.End()

	status := h.svc.Refresh(ctx)
	writeJson(w, http.StatusOK, status)
}

func (h *Handler) getHealth(w http.ResponseWriter, r *http.Request) {
	_, status, err := h.svc.Week(r.Context())
	if err != nil {
		writeJson(w, http.StatusInternalServerError, map[string]bool{"ok": false})
		return
	}
	writeJson(w, http.StatusOK, map[string]bool{"ok": status.Success})
}

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	attempts, err := h.svc.History(r.Context(), limit)
	if err != nil {
		writeJson(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if attempts == nil {
		attempts = []history.Attempt{}
	}
	writeJson(w, http.StatusOK, attempts)
}
