package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vuchint-sutapalli/pictionary/internal/hub"
	"github.com/vuchint-sutapalli/pictionary/internal/ws"
)

func SetupRoutes(h *hub.Hub, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Get("/healthz", Healthz)
	r.Get("/rooms", ListRooms(h))
	r.Get("/ws", ws.Handler(h, log))
	return r
}
