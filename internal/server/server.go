// Package server provides the HTTP REST API for the career platform.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-platform/internal/config"
	"github.com/jonathan/career-platform/internal/db"
	"github.com/jonathan/career-platform/internal/server/middleware"
	"github.com/jonathan/career-platform/internal/server/ratelimit"
	"github.com/jonathan/career-platform/internal/session"
	"github.com/jonathan/career-platform/internal/storage"
	"github.com/jonathan/career-platform/internal/types"
)

// DBClient is the database surface the server depends on. *db.DB satisfies
// it; tests substitute fakes.
type DBClient interface {
	CreateUser(ctx context.Context, name, email, phone string, role types.Role) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	ListUsers(ctx context.Context, limit int) ([]db.User, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	EnsureProfile(ctx context.Context, userID uuid.UUID) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch *types.ProfilePatch) (*types.Profile, error)
	SetResume(ctx context.Context, userID uuid.UUID, url, key string) error
}

// ResumeParser turns extracted resume text into structured data.
type ResumeParser interface {
	Parse(ctx context.Context, resumeText string) (*types.ParsedResume, error)
}

// Options holds the server's dependencies, constructed by the caller.
type Options struct {
	Port     string
	DB       DBClient
	CloseDB  func()
	Sessions session.Store
	Storage  storage.Store
	Parser   ResumeParser
	Password *config.PasswordConfig
	JWT      *config.JWTConfig
}

// Server is the HTTP server.
type Server struct {
	httpServer  *http.Server
	db          DBClient
	closeDB     func()
	sessions    session.Store
	storage     storage.Store
	parser      ResumeParser
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler

	// One in-flight parse per user; a re-upload or a second parse request
	// cancels the previous one.
	parseMu  sync.Mutex
	parseOps map[uuid.UUID]*parseOp
}

// parseOp tracks one in-flight resume parse.
type parseOp struct {
	cancel context.CancelFunc
}

// New assembles the server and its routes.
func New(opts Options) (*Server, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if opts.Sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if opts.Storage == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if opts.Parser == nil {
		return nil, fmt.Errorf("resume parser is required")
	}

	s := &Server{
		db:       opts.DB,
		closeDB:  opts.CloseDB,
		sessions: opts.Sessions,
		storage:  opts.Storage,
		parser:   opts.Parser,
		parseOps: make(map[uuid.UUID]*parseOp),
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	s.userService = NewUserService(opts.DB, opts.Password)
	s.jwtService = NewJWTService(opts.JWT)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	authed := http.NewServeMux()
	authed.HandleFunc("PUT /auth/password", s.handleUpdatePassword)
	authed.HandleFunc("POST /auth/upload/", s.handleResumeUpload)
	authed.HandleFunc("POST /auth/resume/parse/", s.handleResumeParse)
	authed.HandleFunc("GET /auth/resume/suggestions/", s.handleResumeSuggestions)
	authed.HandleFunc("POST /auth/resume/apply/", s.handleResumeApply)
	authed.HandleFunc("GET /auth/profile/", s.handleGetProfile)
	authed.HandleFunc("PATCH /auth/profile/", s.handlePatchProfile)
	authed.HandleFunc("GET /auth/navigation/", s.handleNavigation)
	authed.HandleFunc("GET /admin/users", s.handleAdminListUsers)

	requireAuth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	mux.Handle("/", requireAuth(authed))

	s.httpServer = &http.Server{
		Addr:         ":" + opts.Port,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // parse calls wait on the model
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start listens for requests until an interrupt, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.cancelAllParses()
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.closeDB != nil {
		s.closeDB()
	}
	log.Println("Server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	s.authHandler.UpdatePassword(w, r, userID)
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit enforces per-client limits.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID identifies the client by IP address.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
