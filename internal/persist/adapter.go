// Package persist serializes state slices to and from the blob store.
//
// The adapter never returns storage or encoding errors to its caller: Save and
// Clear report success as a bool, and Load falls back to the supplied default.
// Every swallowed failure is logged.
package persist

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/rcliao/calmish/internal/store"
)

// DefaultPrefix namespaces every key written by the adapter.
const DefaultPrefix = "calmish"

// Adapter wraps a store.Store with JSON encoding and key namespacing.
type Adapter struct {
	store  store.Store
	prefix string
	logger *zap.Logger
}

// NewAdapter creates an Adapter. An empty prefix selects DefaultPrefix.
func NewAdapter(s store.Store, prefix string, logger *zap.Logger) *Adapter {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		store:  s,
		prefix: prefix,
		logger: logger.With(zap.String("component", "persist")),
	}
}

// Key returns the namespaced storage key for domain.
func (a *Adapter) Key(domain string) string {
	return a.prefix + "_" + domain
}

// Prefix returns the key namespace.
func (a *Adapter) Prefix() string {
	return a.prefix
}

// Save encodes value and writes it under domain's key.
func (a *Adapter) Save(ctx context.Context, domain string, value any) bool {
	b, err := json.Marshal(value)
	if err != nil {
		a.logger.Error("encode slice", zap.String("domain", domain), zap.Error(err))
		return false
	}
	if err := a.store.Put(ctx, a.Key(domain), string(b)); err != nil {
		a.logger.Error("save slice", zap.String("domain", domain), zap.Error(err))
		return false
	}
	return true
}

// Clear removes domain's key.
func (a *Adapter) Clear(ctx context.Context, domain string) bool {
	if err := a.store.Delete(ctx, a.Key(domain)); err != nil {
		a.logger.Error("clear slice", zap.String("domain", domain), zap.Error(err))
		return false
	}
	return true
}

// Load reads domain's blob and decodes it over a copy of def, so fields the
// blob does not mention keep their default values. It returns def unchanged
// when the key is absent, the blob does not parse, or the store fails.
// ok reports whether a stored blob was actually applied.
func Load[T any](ctx context.Context, a *Adapter, domain string, def T) (value T, ok bool) {
	blob, err := a.store.Get(ctx, a.Key(domain))
	if errors.Is(err, store.ErrNotFound) {
		return def, false
	}
	if err != nil {
		a.logger.Warn("load slice", zap.String("domain", domain), zap.Error(err))
		return def, false
	}

	// Decoding into def directly would write through its maps and pointers.
	merged, err := deepCopy(def)
	if err != nil {
		a.logger.Error("copy default", zap.String("domain", domain), zap.Error(err))
		return def, false
	}
	if err := json.Unmarshal([]byte(blob), &merged); err != nil {
		a.logger.Warn("corrupt slice, using default", zap.String("domain", domain), zap.Error(err))
		return def, false
	}
	return merged, true
}

func deepCopy[T any](v T) (T, error) {
	var out T
	b, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(b, &out)
	return out, err
}
