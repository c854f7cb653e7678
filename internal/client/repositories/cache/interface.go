package cache

import (
	"context"
	"net/http"
)

// Response is a stored copy of an upstream response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Storage holds named caches.
type Storage interface {
	// Match looks up key in cache name. A missing cache is a miss.
	Match(ctx context.Context, name, key string) (*Response, bool, error)
	// Put stores one response, creating the cache when needed.
	Put(ctx context.Context, name, key string, resp *Response) error
	// PutAll creates the cache and stores every entry, or nothing at all.
	PutAll(ctx context.Context, name string, entries map[string]*Response) error
	Has(ctx context.Context, name string) (bool, error)
	// Keys returns every cache name in lexical order.
	Keys(ctx context.Context) ([]string, error)
	// Delete drops a cache and all its entries. It reports whether the
	// cache existed.
	Delete(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context, name string) (int, error)
}
