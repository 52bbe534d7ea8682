package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/casenight/casenight-backend/internal/coordinator"
	"github.com/casenight/casenight-backend/internal/transport"
)

func SetupRoutes(h *transport.Hub, coord *coordinator.Coordinator, staticDir string, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get("/ws", transport.Handler(h, coord, log))
	// Client assets; everything stateful goes over the websocket.
	r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	return r
}
