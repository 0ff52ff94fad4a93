package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/respawnadega/storefront/internal/domain/cart"
	"github.com/respawnadega/storefront/internal/domain/catalog"
	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/respawnadega/storefront/internal/domain/shared/valueobject"
	"github.com/respawnadega/storefront/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultMaxSessions bounds how many session stores are kept in memory
const DefaultMaxSessions = 10000

// ProductFinder resolves the catalog product snapshotted into a cart line
type ProductFinder interface {
	FindProduct(ctx context.Context, key string) (*catalog.Product, error)
}

// Service handles cart operations for many sessions. Storage holds the
// authoritative cart; each session has one Store at a time in this process,
// which serializes its actions and re-reads storage before applying one.
type Service struct {
	mu          sync.Mutex
	stores      map[string]*sessionEntry
	order       []string
	maxSessions int

	reducer  cart.Reducer
	storage  cart.Storage
	products ProductFinder
	logger   *zap.Logger
	metrics  *telemetry.Metrics
}

// ServiceOption configures the cart Service
type ServiceOption func(*Service)

// WithRequireInStock toggles the guard that refuses unavailable products
func WithRequireInStock(require bool) ServiceOption {
	return func(s *Service) {
		s.reducer = cart.NewReducer(require)
	}
}

// WithMaxSessions sets how many stores stay open before the oldest idle one
// is released. Stores in use are never released.
func WithMaxSessions(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// NewService creates a new cart Service
func NewService(storage cart.Storage, products ProductFinder, logger *zap.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		stores:      make(map[string]*sessionEntry),
		maxSessions: DefaultMaxSessions,
		reducer:     cart.NewReducer(true),
		storage:     storage,
		products:    products,
		logger:      logger.Named("cart"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetMetrics sets the business metrics recorder
func (s *Service) SetMetrics(m *telemetry.Metrics) {
	s.metrics = m
}

type sessionEntry struct {
	store *Store
	refs  int
}

// acquire returns the store of sessionID and pins it until release. The
// store is created without I/O; its records are read under the store lock.
func (s *Service) acquire(sessionID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.stores[sessionID]
	if !ok {
		entry = &sessionEntry{store: newStore(sessionID, s.reducer, s.storage, s.logger)}
		s.stores[sessionID] = entry
		s.order = append(s.order, sessionID)
	}
	entry.refs++
	return entry.store
}

func (s *Service) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.stores[sessionID]; ok {
		entry.refs--
	}
	s.evictIdle()
}

// evictIdle drops the oldest unpinned stores while over the bound
func (s *Service) evictIdle() {
	excess := len(s.order) - s.maxSessions
	if excess <= 0 {
		return
	}
	kept := s.order[:0]
	for _, id := range s.order {
		if excess > 0 && s.stores[id].refs == 0 {
			delete(s.stores, id)
			excess--
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
}

// Snapshot returns the current state of a session's cart
func (s *Service) Snapshot(ctx context.Context, sessionID string) cart.State {
	st := s.acquire(sessionID)
	defer s.release(sessionID)
	return st.Load(ctx)
}

// Get returns the cart of a session
func (s *Service) Get(ctx context.Context, sessionID string) CartResponse {
	return ToCartResponse(sessionID, s.Snapshot(ctx, sessionID))
}

// AddItem snapshots the catalog product and adds it to the cart. A zero
// quantity means one unit.
func (s *Service) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*CartResponse, error) {
	product, err := s.products.FindProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	return s.dispatch(ctx, sessionID, cart.AddItem{Product: *product, Quantity: quantity})
}

// UpdateItem sets the quantity of a line; zero or less removes it
func (s *Service) UpdateItem(ctx context.Context, sessionID, productID string, quantity int) (*CartResponse, error) {
	return s.dispatch(ctx, sessionID, cart.UpdateQuantity{ProductID: productID, Quantity: quantity})
}

// RemoveItem deletes a line from the cart
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*CartResponse, error) {
	return s.dispatch(ctx, sessionID, cart.RemoveItem{ProductID: productID})
}

// Clear empties the cart and keeps customer info
func (s *Service) Clear(ctx context.Context, sessionID string) (*CartResponse, error) {
	return s.dispatch(ctx, sessionID, cart.ClearCart{})
}

// Toggle flips the cart drawer visibility
func (s *Service) Toggle(ctx context.Context, sessionID string) (*CartResponse, error) {
	return s.dispatch(ctx, sessionID, cart.ToggleCart{})
}

// SetCustomer validates the address form and replaces the customer info
func (s *Service) SetCustomer(ctx context.Context, sessionID string, req CustomerRequest) (*CartResponse, error) {
	info, err := req.toCustomerInfo()
	if err != nil {
		return nil, err
	}
	return s.dispatch(ctx, sessionID, cart.SetCustomerInfo{Info: info})
}

// ClearCustomer removes the stored customer info
func (s *Service) ClearCustomer(ctx context.Context, sessionID string) (*CartResponse, error) {
	return s.dispatch(ctx, sessionID, cart.SetCustomerInfo{Info: nil})
}

func (s *Service) dispatch(ctx context.Context, sessionID string, action cart.Action) (*CartResponse, error) {
	st := s.acquire(sessionID)
	state, err := st.Dispatch(ctx, action)
	s.release(sessionID)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			s.metrics.RecordCartRejection(ctx, string(action.Type()), domainErr.Code)
		}
		return nil, err
	}
	s.metrics.RecordCartAction(ctx, string(action.Type()))
	resp := ToCartResponse(sessionID, state)
	return &resp, nil
}

func (r CustomerRequest) toCustomerInfo() (*cart.CustomerInfo, error) {
	a := r.Address
	addr, err := valueobject.NewDeliveryAddress(a.Street, a.Number, a.Neighborhood, a.City, a.State, a.ZipCode,
		valueobject.WithComplement(a.Complement),
		valueobject.WithReference(a.Reference),
	)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	return cart.NewCustomerInfo(r.Name, r.Phone, addr)
}
