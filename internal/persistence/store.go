package persistence

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get for keys with no stored value.
var ErrKeyNotFound = errors.New("key not found")

// Store is the client-state contract: a flat, string-valued key-value space.
// Everything stored through it is an advisory cache rederivable from the
// token and server responses, except the display preference.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// namespaced prefixes every key, giving each browser session an isolated
// keyspace on a shared backend.
type namespaced struct {
	inner  Store
	prefix string
}

// Namespace wraps a store so all keys carry the given prefix.
func Namespace(inner Store, prefix string) Store {
	return &namespaced{inner: inner, prefix: prefix}
}

func (n *namespaced) Get(ctx context.Context, key string) (string, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}

func (n *namespaced) Ping(ctx context.Context) error {
	return n.inner.Ping(ctx)
}
