package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/i18n"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/go-chi/chi/v5"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

type CartHandler struct {
	cart       service.CartService
	checkout   service.CheckoutService
	translator *i18n.Translator
	log        logger.Logger
}

func NewCartHandler(cart service.CartService, checkout service.CheckoutService, translator *i18n.Translator, log logger.Logger) *CartHandler {
	return &CartHandler{
		cart:       cart,
		checkout:   checkout,
		translator: translator,
		log:        log,
	}
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type errorResponse struct {
	Error         string `json:"error"`
	AttemptID     string `json:"attempt_id,omitempty"`
	GroupName     string `json:"group_name,omitempty"`
	RequiredCount *int   `json:"required_count,omitempty"`
	CurrentCount  *int   `json:"current_count,omitempty"`
	CartEntryID   string `json:"cart_entry_id,omitempty"`
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := SessionIDFromContext(r.Context())
	view, err := h.cart.GetCart(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CartHandler) HandleIncrementItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := SessionIDFromContext(r.Context())
	entryID := chi.URLParam(r, "entryID")

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warnf("Invalid request body for IncrementItem: %v", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	view, err := h.cart.IncrementItem(r.Context(), sessionID, entryID, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CartHandler) HandleDecrementItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := SessionIDFromContext(r.Context())
	entryID := chi.URLParam(r, "entryID")

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warnf("Invalid request body for DecrementItem: %v", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	view, err := h.cart.DecrementItem(r.Context(), sessionID, entryID, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := SessionIDFromContext(r.Context())
	view, err := h.cart.RemoveItem(r.Context(), sessionID, chi.URLParam(r, "entryID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CartHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := SessionIDFromContext(r.Context())
	res, err := h.checkout.Checkout(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *CartHandler) HandleListCheckouts(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := SessionIDFromContext(r.Context())
	params := repository.ListCheckoutAttemptsParams{
		SessionID: sessionID,
		Outcome:   r.URL.Query().Get("outcome"),
		Page:      queryInt(r, "page", defaultPage),
		PageSize:  queryInt(r, "page_size", defaultPageSize),
	}

	res, err := h.checkout.ListAttempts(r.Context(), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CartHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	p := h.translator.Printer(r.Header.Get("Accept-Language"))

	var validation *service.ValidationFailure
	var mutation *service.MutationFailure
	switch {
	case errors.As(err, &validation):
		res := validation.Result
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:         p.Sprintf(i18n.KeyBundleIncomplete, res.GroupName, res.RequiredCount, res.CurrentCount),
			AttemptID:     validation.AttemptID,
			GroupName:     res.GroupName,
			RequiredCount: &res.RequiredCount,
			CurrentCount:  &res.CurrentCount,
		})
	case errors.As(err, &mutation):
		msg := mutation.Message
		if msg == "" {
			msg = p.Sprintf(i18n.KeyMutationFailed)
		}
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: msg, CartEntryID: mutation.CartEntryID})
	case errors.Is(err, service.ErrLookupFailure):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: p.Sprintf(i18n.KeyLookupRetry)})
	case errors.Is(err, service.ErrCheckoutInProgress):
		writeJSON(w, http.StatusConflict, errorResponse{Error: p.Sprintf(i18n.KeyCheckoutBusy)})
	case errors.Is(err, service.ErrEmptyCart):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: p.Sprintf(i18n.KeyEmptyCart)})
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "cart not found"})
	case errors.Is(err, repository.ErrBackendUnavailable):
		h.log.Errorf("Commerce backend unavailable: %v", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "commerce backend unavailable"})
	default:
		h.log.Errorf("Unhandled error on %s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
