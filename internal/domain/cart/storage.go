package cart

import "context"

// Fixed record keys under which a session's cart is persisted
const (
	StorageKeyItems    = "respawn-adega-cart"
	StorageKeyCustomer = "respawn-adega-customer"
)

// Storage persists raw cart records keyed by session and record key.
// Read returns shared.ErrNotFound when no record exists.
type Storage interface {
	Read(ctx context.Context, sessionID, key string) ([]byte, error)
	Write(ctx context.Context, sessionID, key string, data []byte) error
	Delete(ctx context.Context, sessionID, key string) error
}
