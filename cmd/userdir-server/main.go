package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rinhomdf/userdir/internal/config"
	"github.com/rinhomdf/userdir/internal/directory"
	"github.com/rinhomdf/userdir/internal/directory/users"
)

const version = "0.1.0"

// openapiSpec is the API contract this service implements, served back to
// clients at /openapi.yaml
//
//go:embed openapi.yaml
var openapiSpec []byte

// AppState holds all application services
type AppState struct {
	UserService users.UserService
	Logger      *zap.Logger
	Config      *config.Config
}

func main() {
	// Load configuration
	config.Load()

	// Initialize logger with config
	logger := initLogger()
	logger.Info("Configuration loaded", zap.String("source", "config.Load()"))

	// Initialize application state
	as := newAppState(logger)

	// Create HTTP server
	router := setupRouter(as)

	// Server configuration from config
	addr := fmt.Sprintf("%s:%d", config.Http().Host, config.Http().Port)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Setup graceful shutdown
	done := setupSignalHandler(server, logger)

	// Setup default data
	ctx := context.Background()
	err := directory.SetupDefaults(ctx, as.UserService)
	if err != nil {
		logger.Error("Failed to setup defaults", zap.Error(err))
		// Continue anyway - seed data is not critical for basic operation
	} else if n := len(config.Seed().Users); n > 0 {
		logger.Info("Seed data setup completed successfully", zap.Int("users", n))
	}

	// Start server
	logger.Info("Starting userdir server", zap.String("address", addr))

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

// newAppState creates and initializes the application state
func newAppState(logger *zap.Logger) *AppState {
	userStore := users.NewUserStore()
	userService := users.NewUserService(userStore)

	return &AppState{
		UserService: userService,
		Logger:      logger,
		Config:      config.Get(),
	}
}

func initLogger() *zap.Logger {
	logConfig := config.Logger()

	var config zap.Config
	if logConfig.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	// Set log level
	switch logConfig.Level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

const correlationIDHeader = "X-Correlation-ID"
const correlationIDKey = "correlation_id"

// CorrelationIDMiddleware extracts or generates a correlation ID for each
// request and echoes it back in the response headers
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(correlationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set(correlationIDKey, correlationID)
		c.Header(correlationIDHeader, correlationID)

		c.Next()
	}
}

func getCorrelationID(c *gin.Context) string {
	if id, exists := c.Get(correlationIDKey); exists {
		return id.(string)
	}
	return uuid.New().String()
}

func setupRouter(as *AppState) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add CORS middleware
	router.Use(cors.Default())

	// Add logging middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(CorrelationIDMiddleware())

	// Health endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"version":   version,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Serve the API contract this server implements
	router.GET("/openapi.yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", openapiSpec)
	})

	// User directory
	router.GET("/users", listUsers(as))
	router.POST("/users", createUser(as))
	router.GET("/users/:id", getUser(as))

	return router
}

func setupSignalHandler(server *http.Server, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		// Create context with timeout for graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Shutdown server
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		done <- struct{}{}
	}()

	return done
}

func listUsers(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := as.UserService.ListUsers(c.Request.Context())
		if err != nil {
			as.Logger.Error("Failed to list users",
				zap.String(correlationIDKey, getCorrelationID(c)),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		summaries := make([]users.UserSummary, 0, len(list))
		for _, u := range list {
			summaries = append(summaries, users.Summarize(u))
		}

		c.JSON(http.StatusOK, users.ListUsersResponse{Users: summaries})
	}
}

func createUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req users.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, users.ValidationErrorResponse{
				Errors: bindViolations(err),
			})
			return
		}

		user, err := as.UserService.CreateUser(c.Request.Context(), &req)
		if err != nil {
			if verr, ok := users.AsValidationError(err); ok {
				c.JSON(http.StatusBadRequest, users.ValidationErrorResponse{
					Errors: verr.Violations,
				})
				return
			}
			as.Logger.Error("Failed to create user",
				zap.String(correlationIDKey, getCorrelationID(c)),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		as.Logger.Info("User created",
			zap.String(correlationIDKey, getCorrelationID(c)),
			zap.Int64("user_id", user.ID),
			zap.String("email", user.Email))

		c.JSON(http.StatusCreated, users.CreateUserResponse{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Created: true,
		})
	}
}

func getUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		// a malformed id can never match a stored record, so it converges on 404
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		user, err := as.UserService.GetUserByID(c.Request.Context(), id)
		if err != nil {
			if users.IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			as.Logger.Error("Failed to get user",
				zap.String(correlationIDKey, getCorrelationID(c)),
				zap.Int64("user_id", id),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// bindViolations maps JSON decoding failures onto the validation envelope. A
// missing or unparseable body is a single "body" violation; a type mismatch
// is reported against the offending field.
func bindViolations(err error) []users.FieldViolation {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return []users.FieldViolation{
			{Field: ute.Field, Message: ute.Field + " must be a string"},
		}
	}
	if errors.Is(err, io.EOF) {
		return []users.FieldViolation{{Field: "body", Message: "body required"}}
	}
	return []users.FieldViolation{{Field: "body", Message: "body must be valid JSON"}}
}
