package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/internal/user/usecase/command"
	"github.com/tair/user-service/internal/user/usecase/query"
	"github.com/tair/user-service/pkg/logger"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	// Command handlers
	createHandler *command.CreateUserHandler
	updateHandler *command.UpdateUserHandler
	deleteHandler *command.DeleteUserHandler

	// Query handlers
	getHandler  *query.GetUserHandler
	listHandler *query.ListUsersHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewUserHandler creates a new user handler with its use cases built from
// the repository. Metrics are registered on reg, so tests can pass a fresh
// registry instead of the process-wide default.
func NewUserHandler(repo domain.UserRepository, reg prometheus.Registerer) *UserHandler {
	return NewUserHandlerWithDI(
		command.NewCreateUserHandler(repo),
		command.NewUpdateUserHandler(repo),
		command.NewDeleteUserHandler(repo),
		query.NewGetUserHandler(repo),
		query.NewListUsersHandler(repo),
		reg,
	)
}

// NewUserHandlerWithDI creates a new user handler from prebuilt use cases
func NewUserHandlerWithDI(
	createHandler *command.CreateUserHandler,
	updateHandler *command.UpdateUserHandler,
	deleteHandler *command.DeleteUserHandler,
	getHandler *query.GetUserHandler,
	listHandler *query.ListUsersHandler,
	reg prometheus.Registerer,
) *UserHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_service_requests_total",
			Help: "Total number of requests to user service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_service_request_duration_seconds",
			Help:    "Duration of user service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	reg.MustRegister(requestCounter, requestLatency)

	return &UserHandler{
		createHandler:  createHandler,
		updateHandler:  updateHandler,
		deleteHandler:  deleteHandler,
		getHandler:     getHandler,
		listHandler:    listHandler,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreateUserCommand{
		Username: req.Username,
		Email:    req.Email,
	}

	user, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Str("operation", "create_user").Msg("Storage error")
		respondStatus(w, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.listHandler.Handle(r.Context(), query.ListUsersQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Str("operation", "list_users").Msg("Storage error")
		respondStatus(w, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	user, err := h.getHandler.Handle(r.Context(), query.GetUserQuery{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondStatus(w, http.StatusNotFound)
			return
		}
		logger.Error(r.Context()).Err(err).Str("operation", "get_user").Msg("Storage error")
		respondStatus(w, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateUserCommand{
		ID:       id,
		Username: req.Username,
		Email:    req.Email,
	}

	user, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondStatus(w, http.StatusNotFound)
			return
		}
		logger.Error(r.Context()).Err(err).Str("operation", "update_user").Msg("Storage error")
		respondStatus(w, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteUserCommand{ID: id}); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondStatus(w, http.StatusNotFound)
			return
		}
		logger.Error(r.Context()).Err(err).Str("operation", "delete_user").Msg("Storage error")
		respondStatus(w, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// HealthCheck handles GET /health
func (h *UserHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// parseID extracts the integer path segment; a malformed id is rejected
// before any use case runs.
func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStatus sends a bare status code. Storage errors stay opaque to the
// client; the detail only goes to the log.
func respondStatus(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/users", h.metricsMiddleware("/api/users", h.CreateUser)).Methods("POST")
	router.HandleFunc("/api/users", h.metricsMiddleware("/api/users", h.ListUsers)).Methods("GET")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", h.GetUser)).Methods("GET")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", h.UpdateUser)).Methods("PUT")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", h.DeleteUser)).Methods("DELETE")
}

// RegisterHealthCheck registers health check endpoint
func (h *UserHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.HealthCheck(db)).Methods("GET")
}
