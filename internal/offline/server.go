package offline

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/nursenotes/internal/logging"
	"github.com/gin-gonic/gin"
)

// StatusPath reports the active cache and its size.
const StatusPath = "/_offline/status"

// hop-by-hop headers are not forwarded
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Connection",
	"Transfer-Encoding",
	"Upgrade",
	"Te",
	"Trailer",
}

type statusResponse struct {
	Cache   string `json:"cache"`
	Entries int    `json:"entries"`
}

// Server exposes a Controller over HTTP. Every request except StatusPath is
// rewritten to the origin and sent through the controller.
type Server struct {
	address    string
	controller *Controller
	logger     logging.Logger
	engine     *gin.Engine
}

func NewServer(address string, c *Controller, l logging.Logger) *Server {
	s := &Server{
		address:    address,
		controller: c,
		logger:     l.With("module", "offline_server"),
	}
	s.engine = s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.GET(StatusPath, s.status)
	r.NoRoute(s.proxy)
	return r
}

// Handler returns the gin engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) status(c *gin.Context) {
	name := s.controller.Active()
	var n int
	if name != "" {
		var err error
		n, err = s.controller.store.Count(c.Request.Context(), name)
		if err != nil {
			s.logger.Error(c.Request.Context(), "failed to count cache entries", "cache", name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, statusResponse{Cache: name, Entries: n})
}

func (s *Server) proxy(c *gin.Context) {
	ctx := c.Request.Context()
	target := s.controller.URL(c.Request.URL.Path, c.Request.URL.RawQuery)

	out, err := http.NewRequestWithContext(ctx, c.Request.Method, target.String(), c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	out.Header = c.Request.Header.Clone()
	for _, h := range hopHeaders {
		out.Header.Del(h)
	}
	// Cached bodies are shared by every client, so let the transport
	// negotiate compression and hand back the decoded body.
	out.Header.Del("Accept-Encoding")
	out.ContentLength = c.Request.ContentLength

	resp, err := s.controller.RoundTrip(out)
	if err != nil {
		s.logger.Warn(ctx, "upstream fetch failed", "url", target.String(), "error", err)
		c.String(http.StatusBadGateway, "upstream unavailable: %v", err)
		return
	}
	defer resp.Body.Close()

	for k, values := range resp.Header {
		for _, v := range values {
			c.Writer.Header().Add(k, v)
		}
	}
	for _, h := range hopHeaders {
		c.Writer.Header().Del(h)
	}
	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		s.logger.Warn(ctx, "failed to write response", "url", target.String(), "error", err)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping offline server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting offline server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
