package offline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/nursenotes/internal/client/repositories/cache"
	"github.com/dmitrijs2005/nursenotes/internal/logging"
	"github.com/dmitrijs2005/nursenotes/internal/netx"
)

// DefaultManifest lists the assets the app needs to start offline.
var DefaultManifest = []string{
	"/",
	"/index.html",
	"/style.css",
	"/script.js",
	"/manifest.json",
	"/icons/icon-192x192.png",
	"/icons/icon-512x512.png",
}

// Config describes one version of the offline cache.
type Config struct {
	AppName  string
	Version  int
	Origin   string
	Manifest []string
}

// CacheName returns "<app>-v<version>".
func CacheName(app string, version int) string {
	return fmt.Sprintf("%s-v%d", app, version)
}

// RequestKey identifies req inside a cache: the method and the absolute URL
// without fragment. Server-side parsing leaves a "#..." suffix in RawQuery,
// so it is cut there too.
func RequestKey(req *http.Request) string {
	u := *req.URL
	u.Fragment = ""
	u.RawFragment = ""
	u.RawQuery, _, _ = strings.Cut(u.RawQuery, "#")
	return req.Method + " " + u.String()
}

// Controller is an http.RoundTripper that answers from the current cache
// and falls through to upstream on a miss.
type Controller struct {
	cfg      Config
	origin   *url.URL
	store    cache.Storage
	upstream http.RoundTripper
	log      logging.Logger

	mu     sync.RWMutex
	active string
}

func NewController(cfg Config, store cache.Storage, upstream http.RoundTripper, log logging.Logger) (*Controller, error) {
	if cfg.Origin == "" {
		return nil, ErrNoOrigin
	}
	origin, err := url.Parse(cfg.Origin)
	if err != nil {
		return nil, fmt.Errorf("invalid origin %q: %w", cfg.Origin, err)
	}
	if origin.Scheme == "" || origin.Host == "" {
		return nil, fmt.Errorf("invalid origin %q: scheme and host are required", cfg.Origin)
	}
	if cfg.Manifest == nil {
		cfg.Manifest = DefaultManifest
	}
	if upstream == nil {
		upstream = http.DefaultTransport
	}

	return &Controller{
		cfg:      cfg,
		origin:   origin,
		store:    store,
		upstream: upstream,
		log:      log.With("module", "offline_controller"),
	}, nil
}

// CacheName is the name of the cache this controller version installs.
func (c *Controller) CacheName() string {
	return CacheName(c.cfg.AppName, c.cfg.Version)
}

// Active returns the cache currently serving requests, or "" before the
// first successful Register or Activate.
func (c *Controller) Active() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

func (c *Controller) setActive(name string) {
	c.mu.Lock()
	c.active = name
	c.mu.Unlock()
}

// URL resolves an absolute path against the origin.
func (c *Controller) URL(path string, rawQuery string) *url.URL {
	return c.origin.ResolveReference(&url.URL{Path: path, RawQuery: rawQuery})
}

// Install fetches the whole manifest and stores it under CacheName. All
// responses are collected first so a failure leaves no partial cache.
func (c *Controller) Install(ctx context.Context) error {
	name := c.CacheName()
	entries := make(map[string]*cache.Response, len(c.cfg.Manifest))

	for _, p := range c.cfg.Manifest {
		u := c.URL(p, "")
		resp, body, err := netx.Fetch(ctx, c.upstream, u.String())
		if err != nil {
			c.log.Warn(ctx, "install fetch failed", "cache", name, "path", p, "error", err)
			return fmt.Errorf("%w: %s: %w", ErrInstallFailed, p, err)
		}
		entries[http.MethodGet+" "+u.String()] = &cache.Response{
			Status: resp.StatusCode,
			Header: resp.Header.Clone(),
			Body:   body,
		}
	}

	if err := c.store.PutAll(ctx, name, entries); err != nil {
		return fmt.Errorf("%w: %w", ErrInstallFailed, err)
	}

	c.log.Info(ctx, "cache installed", "cache", name, "entries", len(entries))
	return nil
}

// Activate makes CacheName current and deletes every other cache. It
// returns the deleted names.
func (c *Controller) Activate(ctx context.Context) ([]string, error) {
	current := c.CacheName()

	names, err := c.store.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list caches: %w", err)
	}

	c.setActive(current)

	var deleted []string
	for _, n := range names {
		if n == current {
			continue
		}
		ok, err := c.store.Delete(ctx, n)
		if err != nil {
			return deleted, fmt.Errorf("failed to delete cache %s: %w", n, err)
		}
		if ok {
			deleted = append(deleted, n)
		}
	}

	c.log.Info(ctx, "cache activated", "cache", current, "deleted", deleted)
	return deleted, nil
}

// Register installs the current version unless it is already present and
// then activates it. When the install fails, the newest older version of
// this app, if any, keeps serving and the install error is returned.
func (c *Controller) Register(ctx context.Context) error {
	has, err := c.store.Has(ctx, c.CacheName())
	if err != nil {
		return err
	}

	if !has {
		if err := c.Install(ctx); err != nil {
			if prev := c.previousVersion(ctx); prev != "" {
				c.setActive(prev)
				c.log.Warn(ctx, "install failed, previous version keeps serving", "cache", prev)
			}
			return err
		}
	}

	_, err = c.Activate(ctx)
	return err
}

// previousVersion returns the cache of this app with the highest version
// below the current one.
func (c *Controller) previousVersion(ctx context.Context) string {
	names, err := c.store.Keys(ctx)
	if err != nil {
		c.log.Warn(ctx, "failed to list caches", "error", err)
		return ""
	}

	prefix := c.cfg.AppName + "-v"
	best, bestVersion := "", -1
	for _, n := range names {
		v, err := strconv.Atoi(strings.TrimPrefix(n, prefix))
		if !strings.HasPrefix(n, prefix) || err != nil {
			continue
		}
		if v < c.cfg.Version && v > bestVersion {
			best, bestVersion = n, v
		}
	}
	return best
}

// RoundTrip implements http.RoundTripper.
func (c *Controller) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	name := c.Active()
	key := RequestKey(req)

	if name != "" {
		stored, ok, err := c.store.Match(ctx, name, key)
		switch {
		case err != nil:
			c.log.Warn(ctx, "cache lookup failed", "cache", name, "key", key, "error", err)
		case ok:
			c.log.Debug(ctx, "cache hit", "key", key)
			return toHTTPResponse(req, stored), nil
		}
	}

	resp, err := c.upstream.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if name == "" || !c.cacheable(req, resp) {
		return resp, nil
	}

	body, err := netx.DrainBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	stored := &cache.Response{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: body}
	// the caller may hang up as soon as it has the response
	if err := c.store.Put(context.WithoutCancel(ctx), name, key, stored); err != nil {
		c.log.Warn(ctx, "failed to cache response", "cache", name, "key", key, "error", err)
	}
	return resp, nil
}

func (c *Controller) cacheable(req *http.Request, resp *http.Response) bool {
	if req.Method != http.MethodGet || resp.StatusCode != http.StatusOK {
		return false
	}
	if !netx.SameOrigin(req.URL, c.origin) {
		return false
	}
	if resp.Request != nil && resp.Request.URL != nil && resp.Request.URL.String() != req.URL.String() {
		return false
	}
	return true
}

func toHTTPResponse(req *http.Request, r *cache.Response) *http.Response {
	header := r.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", r.Status, http.StatusText(r.Status)),
		StatusCode:    r.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(r.Body)),
		ContentLength: int64(len(r.Body)),
		Request:       req,
	}
}
