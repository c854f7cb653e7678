package cache

import (
	"context"
	"net/http"
	"sort"
	"sync"
)

// MemoryStorage is a Storage backed by maps. Used by tests and by the
// offline server when no cache DB is configured.
type MemoryStorage struct {
	mu     sync.RWMutex
	caches map[string]map[string]*Response
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{caches: make(map[string]map[string]*Response)}
}

func cloneResponse(r *Response) *Response {
	h := http.Header{}
	if r.Header != nil {
		h = r.Header.Clone()
	}
	return &Response{
		Status: r.Status,
		Header: h,
		Body:   append([]byte{}, r.Body...),
	}
}

func (s *MemoryStorage) Match(ctx context.Context, name, key string) (*Response, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.caches[name][key]
	if !ok {
		return nil, false, nil
	}
	return cloneResponse(r), true, nil
}

func (s *MemoryStorage) Put(ctx context.Context, name, key string, resp *Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.caches[name]
	if !ok {
		c = make(map[string]*Response)
		s.caches[name] = c
	}
	c[key] = cloneResponse(resp)
	return nil
}

func (s *MemoryStorage) PutAll(ctx context.Context, name string, entries map[string]*Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.caches[name]
	if !ok {
		c = make(map[string]*Response, len(entries))
		s.caches[name] = c
	}
	for k, r := range entries {
		c[k] = cloneResponse(r)
	}
	return nil
}

func (s *MemoryStorage) Has(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.caches[name]
	return ok, nil
}

func (s *MemoryStorage) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.caches))
	for n := range s.caches {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.caches[name]
	delete(s.caches, name)
	return ok, nil
}

func (s *MemoryStorage) Count(ctx context.Context, name string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.caches[name]), nil
}
