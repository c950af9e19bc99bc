package http

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the cart API. observer may be nil.
func NewRouter(h *CartHandler, log logger.Logger, observer RequestObserver) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(Tracing)
	mux.Use(RequestLogger(log))
	mux.Use(chimiddleware.Recoverer)
	if observer != nil {
		mux.Use(Metrics(observer))
	}

	mux.Get("/healthz", HandleHealth)

	mux.Route("/api/cart", func(r chi.Router) {
		r.Use(RequireSession)

		r.Get("/", h.HandleGetCart)
		r.Post("/items/{entryID}/increment", h.HandleIncrementItem)
		r.Post("/items/{entryID}/decrement", h.HandleDecrementItem)
		r.Delete("/items/{entryID}", h.HandleRemoveItem)
		r.Post("/checkout", h.HandleCheckout)
		r.Get("/checkouts", h.HandleListCheckouts)
	})

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
	})
	return mux
}
