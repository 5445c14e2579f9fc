package rest

import (
	"net/http"
	"stepsurvey/internal/config"
	"stepsurvey/internal/service"
	"stepsurvey/internal/transport/rest/handler"
	"stepsurvey/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService   *service.AuthService
	SurveyService *service.SurveyService
	Gatherer      prometheus.Gatherer
	CORS          config.CORS
	Logger        *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Initialize handlers
	surveyHandler := handler.NewSurveyHandler(c.SurveyService, logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORS))
	r.Use(middleware.WithLogging(logger))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	if c.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(c.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/info", surveyHandler.Info).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions", surveyHandler.Start).Methods("POST", "OPTIONS")

	// Session routes (require session token)
	sessionRoutes := v1.PathPrefix("/session").Subrouter()
	sessionRoutes.Use(authMW.RequireSession)

	sessionRoutes.HandleFunc("", surveyHandler.Get).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("", surveyHandler.Reset).Methods("DELETE", "OPTIONS")
	sessionRoutes.HandleFunc("/participant", surveyHandler.SetParticipant).Methods("PUT", "OPTIONS")
	sessionRoutes.HandleFunc("/answers/{questionId}", surveyHandler.Answer).Methods("PUT", "OPTIONS")
	sessionRoutes.HandleFunc("/next", surveyHandler.Next).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/back", surveyHandler.Back).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/summary", surveyHandler.Summary).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/submit", surveyHandler.Submit).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(cors config.CORS) mux.MiddlewareFunc {
	allowedOrigins := cors.AllowedOrigins
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	allowedMethods := cors.AllowedMethods
	if allowedMethods == "" {
		allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	}
	allowedHeaders := cors.AllowedHeaders
	if allowedHeaders == "" {
		allowedHeaders = "Content-Type, Authorization"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
