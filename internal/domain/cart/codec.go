package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SchemaVersion is the version written into every persisted record.
// Records without a version field predate versioning and decode as 0.
const SchemaVersion = 1

type itemsEnvelope struct {
	Version int    `json:"version"`
	Items   []Item `json:"items"`
}

type customerEnvelope struct {
	Version  int           `json:"version"`
	Customer *CustomerInfo `json:"customer"`
}

// EncodeItems serializes cart lines into a versioned record
func EncodeItems(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(itemsEnvelope{Version: SchemaVersion, Items: items})
}

// DecodeItems parses a persisted items record. A bare JSON array is read as
// the unversioned legacy layout. The result is normalized so duplicate ids
// are merged and non-positive lines dropped.
func DecodeItems(data []byte) ([]Item, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty cart record")
	}

	if data[0] == '[' {
		var legacy []Item
		if err := json.Unmarshal(data, &legacy); err != nil {
			return nil, fmt.Errorf("decode legacy cart record: %w", err)
		}
		return normalizeItems(legacy), nil
	}

	var env struct {
		Version *int   `json:"version"`
		Items   []Item `json:"items"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode cart record: %w", err)
	}
	if env.Version == nil {
		return nil, fmt.Errorf("cart record has no version")
	}
	if *env.Version != SchemaVersion {
		return nil, fmt.Errorf("unsupported cart record version %d", *env.Version)
	}
	return normalizeItems(env.Items), nil
}

// EncodeCustomer serializes customer info into a versioned record
func EncodeCustomer(info *CustomerInfo) ([]byte, error) {
	if info == nil {
		return nil, fmt.Errorf("no customer info to encode")
	}
	return json.Marshal(customerEnvelope{Version: SchemaVersion, Customer: info})
}

// DecodeCustomer parses a persisted customer record. An object without a
// version field is read as the legacy bare CustomerInfo layout.
func DecodeCustomer(data []byte) (*CustomerInfo, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty customer record")
	}

	var env struct {
		Version  *int            `json:"version"`
		Customer json.RawMessage `json:"customer"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode customer record: %w", err)
	}

	raw := env.Customer
	switch {
	case env.Version == nil:
		raw = data
	case *env.Version != SchemaVersion:
		return nil, fmt.Errorf("unsupported customer record version %d", *env.Version)
	}

	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var info CustomerInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("decode customer info: %w", err)
	}
	return &info, nil
}
