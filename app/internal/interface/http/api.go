package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	domcart "example.com/rocketshoes/app/internal/domain/cart"
	"example.com/rocketshoes/app/internal/infra/notify"
	"example.com/rocketshoes/app/internal/infra/security"
)

type CartStore interface {
	Cart() domcart.Cart
	AddProduct(ctx context.Context, productID int64) error
	RemoveProduct(ctx context.Context, productID int64) error
	UpdateProductAmount(ctx context.Context, productID, amount int64) error
}

type NotificationFeed interface {
	Drain() []notify.Entry
}

type TokenService interface {
	ParseToken(token string) (*security.Claims, error)
}

type API struct {
	cart      CartStore
	feed      NotificationFeed
	tokenSvc  TokenService
	log       logrus.FieldLogger
	validator *validator.Validate
}

type Dependencies struct {
	CartStore        CartStore
	NotificationFeed NotificationFeed
	// TokenService is optional; nil leaves the API unauthenticated.
	TokenService TokenService
	Logger       logrus.FieldLogger
}

func NewAPI(deps Dependencies) *API {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &API{
		cart:      deps.CartStore,
		feed:      deps.NotificationFeed,
		tokenSvc:  deps.TokenService,
		log:       log,
		validator: validator.New(),
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestLogger(&logFormatter{log: a.log}))
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		if a.tokenSvc != nil {
			r.Use(a.authMiddleware)
		}
		r.Get("/cart", a.handleGetCart)
		r.Post("/cart/items", a.handleAddCartItem)
		r.Put("/cart/items/{id}", a.handleUpdateCartItem)
		r.Delete("/cart/items/{id}", a.handleRemoveCartItem)
		r.Get("/notifications", a.handleDrainNotifications)
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func mapCart(c domcart.Cart) map[string]any {
	items := make([]map[string]any, 0, len(c))
	for _, item := range c {
		items = append(items, map[string]any{
			"id":     item.ID,
			"title":  item.Title,
			"price":  item.Price,
			"image":  item.Image,
			"amount": item.Amount,
		})
	}
	return map[string]any{
		"items": items,
	}
}

// handleDomainError writes the failure together with the message the store
// reported, so a UI without a notification poller can still show it.
func handleDomainError(w http.ResponseWriter, err error, msg domcart.Message) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domcart.ErrOutOfStock):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domcart.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domcart.ErrOperationFailed):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Message: string(msg)})
}
