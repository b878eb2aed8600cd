package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	validator "github.com/go-playground/validator/v10"

	"github.com/quickbites/storefront/internal/core/domain"
	"github.com/quickbites/storefront/internal/core/service"
	"github.com/quickbites/storefront/internal/port"
)

type HTTPHandler struct {
	session  *service.SessionService
	checkout *service.CheckoutService
	gate     *service.AdminGate
	db       port.DatabaseRepository
	cache    port.CacheRepository
	validate *validator.Validate
}

func NewHTTPHandler(
	session *service.SessionService,
	checkout *service.CheckoutService,
	gate *service.AdminGate,
	db port.DatabaseRepository,
	cache port.CacheRepository,
) *HTTPHandler {
	return &HTTPHandler{
		session:  session,
		checkout: checkout,
		gate:     gate,
		db:       db,
		cache:    cache,
		validate: validator.New(),
	}
}

// Routes builds the HTTP surface.
func (h *HTTPHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", h.Menu)

		r.Post("/session/login", h.Login)
		r.Post("/session/logout", h.Logout)
		r.Get("/session", h.CurrentUser)

		r.Get("/cart", h.Cart)
		r.Post("/cart/items", h.AddToCart)
		r.Patch("/cart/items/{itemID}", h.UpdateCartItem)

		r.Post("/checkout", h.Checkout)
		r.Get("/orders/last", h.LastOrder)

		r.Post("/admin/tap", h.AdminTap)
		r.Post("/admin/verify", h.AdminVerify)
	})

	return r
}

type LoginRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

type AddItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type CheckoutRequest struct {
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
}

type VerifyPINRequest struct {
	PIN string `json:"pin" validate:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CartResponse struct {
	Items []domain.CartItem `json:"items"`
	Quote domain.Quote      `json:"quote"`
}

type TapResponse struct {
	ShowPrompt bool `json:"show_prompt"`
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) Menu(w http.ResponseWriter, r *http.Request) {
	items, err := h.db.Menu(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to load menu"})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.bind(w, r, &req) {
		return
	}

	profile := domain.UserProfile{Name: req.Name, Phone: req.Phone}
	if err := h.session.Login(r.Context(), profile); err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "login failed"})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "logout failed"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.session.CurrentUser(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to load session"})
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not logged in"})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *HTTPHandler) Cart(w http.ResponseWriter, r *http.Request) {
	items := h.session.Cart().Items()

	quote, err := h.checkout.Quote(r.Context(), items)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to price cart"})
		return
	}
	writeJSON(w, http.StatusOK, CartResponse{Items: items, Quote: quote})
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !h.bind(w, r, &req) {
		return
	}

	item, err := h.db.MenuItem(r.Context(), req.ItemID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to load menu item"})
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "unknown menu item"})
		return
	}

	h.session.Cart().Add(*item)
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if !h.bind(w, r, &req) {
		return
	}

	h.session.Cart().UpdateQuantity(chi.URLParam(r, "itemID"), req.Delta)
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !h.bind(w, r, &req) {
		return
	}

	details := domain.UserDetails{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}

	order, err := h.checkout.PlaceOrder(r.Context(), h.session.Cart(), details, req.PaymentID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "cart is empty"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to place order"})
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *HTTPHandler) LastOrder(w http.ResponseWriter, r *http.Request) {
	items, err := h.cache.LastOrder(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to load last order"})
		return
	}
	if items == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "no previous order"})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *HTTPHandler) AdminTap(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TapResponse{ShowPrompt: h.gate.Tap()})
}

func (h *HTTPHandler) AdminVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyPINRequest
	if !h.bind(w, r, &req) {
		return
	}

	if err := h.gate.VerifyPIN(r.Context(), req.PIN); err != nil {
		if errors.Is(err, service.ErrInvalidPIN) {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid pin"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "verification failed"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// bind decodes the JSON body into out and validates it, writing a 400 on
// failure.
func (h *HTTPHandler) bind(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}
	if err := h.validate.Struct(out); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
