package stubapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/feedkit/feedkit/logger"
	"github.com/feedkit/feedkit/posts"
)

// Config configures the stub server.
type Config struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 8941
	}
}

// Server is a gin-backed stub of the remote posts resource.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	data       posts.Posts
	log        *logger.Logger
}

// New creates a stub server seeded with data. A nil data slice uses
// SeedPosts; a nil log falls back to the global logger.
func New(cfg Config, data posts.Posts, log *logger.Logger) *Server {
	cfg.ApplyDefaults()
	if data == nil {
		data = SeedPosts()
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine: gin.New(),
		data:   data,
		log:    log.WithComponent("stubapi"),
	}
	s.engine.Use(gin.Recovery())
	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Engine returns the underlying gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) registerRoutes() {
	s.engine.GET("/posts", s.listPosts)
	s.engine.GET("/posts/:id", s.getPost)
}

// listPosts serves the seeded collection. The fail query parameter forces
// the given status code instead, for demonstrating the error channel.
func (s *Server) listPosts(c *gin.Context) {
	if failWith, ok := forcedFailure(c); ok {
		s.log.Warn("injecting failure", logger.Fields(logger.FieldStatus, failWith))
		c.JSON(failWith, gin.H{"error": "injected failure"})
		return
	}
	c.JSON(http.StatusOK, s.data)
}

func (s *Server) getPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	for _, p := range s.data {
		if p.ID == id {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
}

// forcedFailure reads a fail=<status> query parameter.
func forcedFailure(c *gin.Context) (int, bool) {
	raw := c.Query("fail")
	if raw == "" {
		return 0, false
	}
	code, err := strconv.Atoi(raw)
	if err != nil || code < 400 || code > 599 {
		return 0, false
	}
	return code, true
}

// Start binds the port and begins serving. It returns once the listener is
// bound; serving continues in a goroutine.
func (s *Server) Start(_ context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("stubapi: bind %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("stub API started", logger.Fields("addr", s.httpServer.Addr))
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
