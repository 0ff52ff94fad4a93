package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/respawnadega/storefront/internal/domain/cart"
	"github.com/respawnadega/storefront/internal/domain/shared"
	"go.uber.org/zap"
)

// Store owns the cart state of one session. Actions are applied one at a
// time and every change to items or customer info is written through to
// storage before Dispatch returns.
type Store struct {
	mu        sync.Mutex
	sessionID string
	state     cart.State
	reducer   cart.Reducer
	storage   cart.Storage
	logger    *zap.Logger
}

// OpenStore creates the store for sessionID and rehydrates it from storage.
// Unreadable or corrupt records are logged and treated as absent.
func OpenStore(ctx context.Context, sessionID string, reducer cart.Reducer, storage cart.Storage, logger *zap.Logger) *Store {
	s := newStore(sessionID, reducer, storage, logger)
	s.reload(ctx)
	return s
}

func newStore(sessionID string, reducer cart.Reducer, storage cart.Storage, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		sessionID: sessionID,
		reducer:   reducer,
		storage:   storage,
		logger:    logger.With(zap.String("cart_session", sessionID)),
	}
}

// SessionID returns the session the store belongs to
func (s *Store) SessionID() string {
	return s.sessionID
}

// Load re-reads the persisted records and returns the resulting state.
// Another writer sharing the storage may have changed them since the last
// call.
func (s *Store) Load(ctx context.Context) cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload(ctx)
	return s.state.Clone()
}

// State returns a copy of the last known state without touching storage
func (s *Store) State() cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch applies action to the persisted state and returns the result.
// The records are re-read first, so the action never overwrites a change
// written through another store. A rejected action leaves the state
// unchanged and returns the current state along with the error.
func (s *Store) Dispatch(ctx context.Context, action cart.Action) (cart.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reload(ctx)
	next, err := s.reducer.Reduce(s.state, action)
	if err != nil {
		return s.state.Clone(), err
	}
	s.state = next

	if cart.ChangesPersistentState(action) {
		s.persist(ctx)
	}
	return s.state.Clone(), nil
}

// persist writes both records. Failures are logged and the in-memory
// transition stands.
func (s *Store) persist(ctx context.Context) {
	items, err := cart.EncodeItems(s.state.Items)
	if err != nil {
		s.logger.Error("Failed to encode cart items", zap.Error(err))
	} else if err := s.storage.Write(ctx, s.sessionID, cart.StorageKeyItems, items); err != nil {
		s.logger.Error("Failed to persist cart items", zap.Error(err))
	}

	if s.state.Customer == nil {
		if err := s.storage.Delete(ctx, s.sessionID, cart.StorageKeyCustomer); err != nil && !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to delete customer info", zap.Error(err))
		}
		return
	}

	customer, err := cart.EncodeCustomer(s.state.Customer)
	if err != nil {
		s.logger.Error("Failed to encode customer info", zap.Error(err))
		return
	}
	if err := s.storage.Write(ctx, s.sessionID, cart.StorageKeyCustomer, customer); err != nil {
		s.logger.Error("Failed to persist customer info", zap.Error(err))
	}
}

// reload replaces items and customer info with the stored records. A record
// that cannot be read keeps its in-memory value; the visibility flag is
// never stored and survives.
func (s *Store) reload(ctx context.Context) {
	load := cart.LoadCart{Items: s.state.Items, Customer: s.state.Customer}
	if items, ok := s.loadItems(ctx); ok {
		load.Items = items
	}
	if customer, ok := s.loadCustomer(ctx); ok {
		load.Customer = customer
	}

	// LoadCart cannot fail, the reducer only normalizes.
	state, err := s.reducer.Reduce(s.state, load)
	if err != nil {
		s.logger.Warn("Failed to rehydrate cart", zap.Error(err))
		return
	}
	s.state = state
}

func (s *Store) loadItems(ctx context.Context) ([]cart.Item, bool) {
	data, err := s.storage.Read(ctx, s.sessionID, cart.StorageKeyItems)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, true
		}
		s.logger.Warn("Failed to read stored cart", zap.Error(err))
		return nil, false
	}
	items, err := cart.DecodeItems(data)
	if err != nil {
		s.logger.Warn("Stored cart is unreadable, starting empty", zap.Error(err))
		return nil, true
	}
	return items, true
}

func (s *Store) loadCustomer(ctx context.Context) (*cart.CustomerInfo, bool) {
	data, err := s.storage.Read(ctx, s.sessionID, cart.StorageKeyCustomer)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, true
		}
		s.logger.Warn("Failed to read stored customer info", zap.Error(err))
		return nil, false
	}
	info, err := cart.DecodeCustomer(data)
	if err != nil {
		s.logger.Warn("Stored customer info is unreadable, ignoring it", zap.Error(err))
		return nil, true
	}
	return info, true
}
