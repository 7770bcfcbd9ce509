package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/achint227/Resume-Generator/internal/config"
	"github.com/achint227/Resume-Generator/internal/generator"
	"github.com/achint227/Resume-Generator/internal/logging"
	"github.com/achint227/Resume-Generator/internal/rendering"
	"github.com/achint227/Resume-Generator/internal/server/ratelimit"
	"github.com/achint227/Resume-Generator/internal/storage"
)

const shutdownTimeout = 30 * time.Second

// Generator produces PDFs and markup for stored résumés.
type Generator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Artifact, error)
	BuildMarkup(ctx context.Context, resumeID, template, order string) (string, error)
	ClearCache(ctx context.Context, resumeID string) error
	Templates() []rendering.TemplateInfo
}

// Deps are the collaborators the handlers call.
type Deps struct {
	Resumes   storage.ResumeRepository
	Generator Generator
	Logger    *zap.Logger
}

// Server is the HTTP REST API server.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	resumes    storage.ResumeRepository
	gen        Generator
	limiter    *ratelimit.Limiter
	logger     *zap.Logger
}

// New wires the router. cfg supplies the listener, CORS, rate limit and
// typesetter timeout settings.
func New(cfg *config.Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	useParamNames()

	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		resumes: deps.Resumes,
		gen:     deps.Generator,
		limiter: ratelimit.NewLimiter(limiterConfig(cfg.RateLimit)),
		logger:  logger,
	}

	s.engine = gin.New()
	s.engine.Use(
		logging.RequestIDMiddleware(logger),
		logging.GinMiddleware(logger),
		recovery(),
		cors(cfg.Server.AllowedOrigins),
	)
	s.routes()

	// Downloads hold the connection for a full compile.
	writeTimeout := 2*cfg.LaTeX.Timeout + 30*time.Second
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// limiterConfig throttles the routes that may start a compile.
func limiterConfig(cfg config.RateLimitConfig) ratelimit.Config {
	window := time.Minute
	return ratelimit.Config{
		Enabled:         cfg.Enabled,
		CleanupInterval: 10 * time.Minute,
		Rules: []ratelimit.Rule{
			{Method: http.MethodGet, Route: "/download/:id/:template/:order", Limit: cfg.CompilePerMinute, Window: window, Burst: cfg.Burst},
		},
	}
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/health", s.handleHealth)
	r.GET("/", s.handleRoot)
	r.GET("/templates", s.handleTemplates)

	r.GET("/resume", s.handleListResumes)
	r.POST("/resume", s.handleCreateResume)
	r.GET("/resume/:name", s.handleGetResumeByName)
	r.GET("/resume/user/:name", s.handleGetResumesByUser)
	r.PUT("/resume/:id", s.handleUpdateResume)
	r.DELETE("/resume/:id", s.handleDeleteResume)

	r.GET("/download/:id/:template/:order", rateLimit(s.limiter), s.handleDownload)
	r.GET("/copy/:id/:template/:order", s.handleCopy)
	r.DELETE("/cache", s.handleClearCache)

	r.NoRoute(func(c *gin.Context) {
		abortWithBody(c, http.StatusNotFound, ErrorBody{Code: CodeNotFound, Message: "route not found"})
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.limiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
