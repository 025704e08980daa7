package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domcart "example.com/rocketshoes/app/internal/domain/cart"
	domproduct "example.com/rocketshoes/app/internal/domain/product"
)

type CartRepository interface {
	domcart.Repository
}

type ProductCatalog interface {
	domproduct.Catalog
}

type StockOracle interface {
	domproduct.StockOracle
}

// Store owns one cart. Mutations run one at a time and write through to
// the repository before the in-memory cart is swapped.
type Store struct {
	repo     CartRepository
	catalog  ProductCatalog
	stock    StockOracle
	notifier domcart.Notifier
	log      logrus.FieldLogger
	tracer   trace.Tracer

	opMu sync.Mutex

	mu   sync.RWMutex
	cart domcart.Cart
}

type Option func(*Store)

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) { s.log = l }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Store) { s.tracer = t }
}

// NewStore loads the persisted cart and returns a ready store.
func NewStore(ctx context.Context, repo CartRepository, catalog ProductCatalog, stock StockOracle, notifier domcart.Notifier, opts ...Option) (*Store, error) {
	s := &Store{
		repo:     repo,
		catalog:  catalog,
		stock:    stock,
		notifier: notifier,
		log:      logrus.StandardLogger(),
		tracer:   otel.Tracer("example.com/rocketshoes/cart"),
	}
	for _, opt := range opts {
		opt(s)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if loaded == nil {
		loaded = domcart.Cart{}
	}
	s.cart = loaded
	s.log.WithField("items", len(loaded)).Info("cart loaded")
	return s, nil
}

// Cart returns a copy of the last committed cart.
func (s *Store) Cart() domcart.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

func (s *Store) AddProduct(ctx context.Context, productID int64) (err error) {
	ctx, done := s.begin(ctx, "AddProduct", productID)
	defer func() { done(err) }()

	current := s.Cart()
	existing, inCart := current.Find(productID)
	desired := existing.Amount + 1

	stock, err := s.stock.GetStock(ctx, productID)
	if err != nil {
		return s.fail(ctx, domcart.MessageAddFailed, domcart.ErrOperationFailed, err)
	}
	if desired > stock.Amount {
		return s.fail(ctx, domcart.MessageOutOfStock, domcart.ErrOutOfStock, nil)
	}

	var next domcart.Cart
	if inCart {
		next = current.WithAmount(productID, desired)
	} else {
		p, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return s.fail(ctx, domcart.MessageAddFailed, domcart.ErrOperationFailed, err)
		}
		next = current.Append(*p, 1)
	}

	if err := s.commit(ctx, next); err != nil {
		return s.fail(ctx, domcart.MessageAddFailed, domcart.ErrOperationFailed, err)
	}
	return nil
}

func (s *Store) RemoveProduct(ctx context.Context, productID int64) (err error) {
	ctx, done := s.begin(ctx, "RemoveProduct", productID)
	defer func() { done(err) }()

	current := s.Cart()
	if current.Index(productID) < 0 {
		return s.fail(ctx, domcart.MessageRemoveFailed, domcart.ErrNotFound, nil)
	}

	if err := s.commit(ctx, current.Without(productID)); err != nil {
		return s.fail(ctx, domcart.MessageRemoveFailed, domcart.ErrOperationFailed, err)
	}
	return nil
}

// UpdateProductAmount sets the amount of a cart item. Non-positive amounts
// are ignored without a report.
func (s *Store) UpdateProductAmount(ctx context.Context, productID, amount int64) (err error) {
	if amount <= 0 {
		return nil
	}

	ctx, done := s.begin(ctx, "UpdateProductAmount", productID)
	defer func() { done(err) }()

	stock, err := s.stock.GetStock(ctx, productID)
	if err != nil {
		return s.fail(ctx, domcart.MessageUpdateFailed, domcart.ErrOperationFailed, err)
	}
	if amount > stock.Amount {
		return s.fail(ctx, domcart.MessageOutOfStock, domcart.ErrOutOfStock, nil)
	}

	if err := s.commit(ctx, s.Cart().WithAmount(productID, amount)); err != nil {
		return s.fail(ctx, domcart.MessageUpdateFailed, domcart.ErrOperationFailed, err)
	}
	return nil
}

// begin serializes the operation and opens its span. The returned func
// must be deferred to release both.
func (s *Store) begin(ctx context.Context, op string, productID int64) (context.Context, func(error)) {
	s.opMu.Lock()

	ctx, span := s.tracer.Start(ctx, "cart."+op, trace.WithAttributes(attribute.Int64("product.id", productID)))
	log := s.log.WithFields(logrus.Fields{
		"op":         op,
		"op_id":      uuid.NewString(),
		"product_id": productID,
	})
	ctx = context.WithValue(ctx, loggerKey{}, log)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			log.Info("cart updated")
		}
		span.End()
		s.opMu.Unlock()
	}
}

func (s *Store) commit(ctx context.Context, next domcart.Cart) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.mu.Lock()
	s.cart = next
	s.mu.Unlock()
	return nil
}

func (s *Store) fail(ctx context.Context, msg domcart.Message, kind error, cause error) error {
	s.notifier.Report(ctx, msg)

	log := loggerFrom(ctx, s.log)
	if cause != nil {
		log.WithError(cause).Warn(string(msg))
		return fmt.Errorf("%w: %w", kind, cause)
	}
	log.Warn(string(msg))
	return kind
}

type loggerKey struct{}

func loggerFrom(ctx context.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
	if l, ok := ctx.Value(loggerKey{}).(logrus.FieldLogger); ok {
		return l
	}
	return fallback
}

// MessageFor maps an operation error to the message the store reported.
func MessageFor(err error, fallback domcart.Message) domcart.Message {
	switch {
	case errors.Is(err, domcart.ErrOutOfStock):
		return domcart.MessageOutOfStock
	case errors.Is(err, domcart.ErrNotFound):
		return domcart.MessageRemoveFailed
	default:
		return fallback
	}
}
