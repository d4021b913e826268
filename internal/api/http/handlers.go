package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"restaurant-api/internal/domain"
	"restaurant-api/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type Handler struct {
	Dishes service.DishServiceInterface
	Orders service.OrderServiceInterface
	Stats  service.StatsServiceInterface
}

func NewHandler(dishSvc service.DishServiceInterface, orderSvc service.OrderServiceInterface, statsSvc service.StatsServiceInterface) *Handler {
	return &Handler{
		Dishes: dishSvc,
		Orders: orderSvc,
		Stats:  statsSvc,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/dishes", h.createDish).Methods("POST")
	r.HandleFunc("/dishes", h.getDishes).Methods("GET")
	r.HandleFunc("/dishes/{id}", h.getDish).Methods("GET")
	r.HandleFunc("/dishes/{id}", h.updateDish).Methods("PUT")
	r.HandleFunc("/dishes/{id}", h.deleteDish).Methods("DELETE")

	// Fixed paths before the {id} routes.
	r.HandleFunc("/orders/profit", h.getProfit).Methods("GET")
	r.HandleFunc("/orders/most-popular-dish", h.getMostPopularDish).Methods("GET")

	r.HandleFunc("/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/orders/{id}", h.updateOrder).Methods("PUT")
	r.HandleFunc("/orders/{id}", h.deleteOrder).Methods("DELETE")
	r.HandleFunc("/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
}

type dishPayload struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

type orderPayload struct {
	CustomerName  string            `json:"customerName"`
	DishesInOrder map[uuid.UUID]int `json:"dishesInOrder"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &notFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &validation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, domain.Invalid("invalid id")
	}
	return id, nil
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "restaurant-api",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	var payload dishPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	dish := domain.Dish{
		Name:        payload.Name,
		Price:       payload.Price,
		Description: payload.Description,
	}
	if err := h.Dishes.Create(r.Context(), &dish); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dish)
}

func (h *Handler) getDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.Dishes.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (h *Handler) getDish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	dish, err := h.Dishes.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *Handler) updateDish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload dishPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	dish := domain.Dish{
		ID:          id,
		Name:        payload.Name,
		Price:       payload.Price,
		Description: payload.Description,
	}
	if err := h.Dishes.Update(r.Context(), &dish); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *Handler) deleteDish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Dishes.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var payload orderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Orders.Create(r.Context(), payload.CustomerName, payload.DishesInOrder)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	order, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload orderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Orders.Update(r.Context(), id, payload.CustomerName, payload.DishesInOrder)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Orders.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getProfit(w http.ResponseWriter, r *http.Request) {
	profit, err := h.Stats.CalculateProfit(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profit)
}

func (h *Handler) getMostPopularDish(w http.ResponseWriter, r *http.Request) {
	dish, err := h.Stats.MostPopularDish(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	qrCode, err := h.Orders.ReceiptQR(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}
