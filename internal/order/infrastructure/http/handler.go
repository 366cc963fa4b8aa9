package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/microshop/order-service/internal/order/application"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("order-http"),
	}
}

type placeOrderReq struct {
	Items []lineItemDTO `json:"items"`
}

type lineItemDTO struct {
	SKUCode    string `json:"skuCode"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}

type placeOrderResp struct {
	OrderNumber string `json:"orderNumber"`
	Message     string `json:"message"`
}

type errorResp struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/orders", h.placeOrder)
	r.Get("/api/orders/{orderNumber}", h.getOrder)
	return r
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PlaceOrder")
	defer span.End()

	var req placeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	items := make([]application.LineItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, application.LineItemInput{
			SKUCode:    item.SKUCode,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
		})
	}

	orderNumber, err := h.service.PlaceOrder(ctx, items)
	if err != nil {
		h.log.WarnContext(ctx, "order not placed", "err", err)
		writePlacementError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, placeOrderResp{
		OrderNumber: orderNumber,
		Message:     "Your order has been placed",
	})
}

// writePlacementError maps the service taxonomy onto status codes: rejection
// is a business answer, transport trouble is retryable, a failed write is ours.
func writePlacementError(w http.ResponseWriter, err error) {
	var availErr *application.AvailabilityError
	var storeErr *application.StorageError

	switch {
	case errors.Is(err, application.ErrOutOfStock):
		writeError(w, http.StatusConflict, "out_of_stock", "Product is out of stock")
	case errors.As(err, &availErr):
		writeError(w, http.StatusServiceUnavailable, "inventory_unavailable", "inventory check failed, retry later")
	case errors.As(err, &storeErr):
		writeError(w, http.StatusInternalServerError, "storage_failure", "order was not placed, safe to retry")
	default:
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
	}
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")
	if orderNumber == "" {
		writeError(w, http.StatusBadRequest, "order_number_required", "")
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderNumber)
	if err != nil {
		writeError(w, http.StatusNotFound, "order_not_found", err.Error())
		return
	}

	items := make([]lineItemDTO, len(order.Items))
	for i, item := range order.Items {
		items[i] = lineItemDTO{SKUCode: item.SKUCode, Quantity: item.Quantity, PriceCents: item.PriceCents}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"orderNumber": order.OrderNumber,
		"items":       items,
		"createdAt":   order.CreatedAt,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResp{Error: code, Message: msg})
}
