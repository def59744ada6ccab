package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redisv9 "github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/linkdeck-dev/linkdeck/internal/cache"
	"github.com/linkdeck-dev/linkdeck/internal/datastore"
	"github.com/linkdeck-dev/linkdeck/internal/facades"
	"github.com/linkdeck-dev/linkdeck/internal/handlers"
	"github.com/linkdeck-dev/linkdeck/internal/jwt"
	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/middlewares"
	"github.com/linkdeck-dev/linkdeck/internal/repositories"
	"github.com/linkdeck-dev/linkdeck/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything parseConfig reads from the environment.
type config struct {
	appHost   string
	appPort   string
	appEnv    string
	logLevel  string
	publicURL string

	datastoreURL   string
	datastoreToken string

	jwtSecretKey string
	jwtExpSecond int

	githubClientID     string
	githubClientSecret string
	googleClientID     string
	googleClientSecret string

	redisHost         string
	redisPort         int
	redisDB           int
	redisPassword     string
	redisPoolSize     int
	redisMinIdleConns int

	catalogCacheTTLSecond int
}

// @title linkdeck API
// @version 1.0.0
// @description Backlink platform directory with per-project submission tracking boards
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, data store, OAuth, Redis, logging, and JWT configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.appEnv = getEnv("APP_ENV", "development")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.publicURL = getEnv("APP_PUBLIC_URL", fmt.Sprintf("http://%s:%s", cfg.appHost, cfg.appPort))

	// Data store config
	cfg.datastoreURL = getEnv("DATASTORE_URL", "http://localhost:8055")
	cfg.datastoreToken = getEnv("DATASTORE_TOKEN", "")

	// JWT config
	cfg.jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "604800")); err != nil {
		return
	}

	// OAuth config
	cfg.githubClientID = getEnv("GITHUB_CLIENT_ID", "")
	cfg.githubClientSecret = getEnv("GITHUB_CLIENT_SECRET", "")
	cfg.googleClientID = getEnv("GOOGLE_CLIENT_ID", "")
	cfg.googleClientSecret = getEnv("GOOGLE_CLIENT_SECRET", "")

	// Redis config
	cfg.redisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if cfg.redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.redisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if cfg.redisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}

	// Cache config
	if cfg.catalogCacheTTLSecond, err = strconv.Atoi(getEnv("CATALOG_CACHE_TTL_SECOND", "300")); err != nil {
		return
	}

	return
}

// run initializes the logger, Redis, the data store client, and the HTTP
// server. It sets up routes, applies middleware, and handles graceful
// shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Connect to Redis
	rdb := redisv9.NewClient(&redisv9.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
		Password:     cfg.redisPassword,
		DB:           cfg.redisDB,
		PoolSize:     cfg.redisPoolSize,
		MinIdleConns: cfg.redisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Fatal("Redis connection error: ", err)
	}
	defer rdb.Close()

	// Initialize data store client
	ds := datastore.New(cfg.datastoreURL, cfg.datastoreToken)

	// Initialize JWT service
	sessions := jwt.New(cfg.jwtSecretKey, time.Duration(cfg.jwtExpSecond)*time.Second)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(ds)
	projectRepo := repositories.NewProjectRepository(ds)
	trackingRepo := repositories.NewTrackingRepository(ds)
	catalogRepo := repositories.NewCatalogRepository(ds)

	// Initialize services
	catalogCache := cache.NewCatalogCache(rdb, time.Duration(cfg.catalogCacheTTLSecond)*time.Second)
	authService := services.NewAuthService(userRepo)
	oauthService := services.NewOAuthService(userRepo, ds)
	projectService := services.NewProjectService(projectRepo)
	boardService := services.NewBoardService(projectRepo, trackingRepo)
	catalogService := services.NewCatalogService(catalogRepo, catalogCache)

	// Initialize OAuth providers
	providers := map[string]services.Provider{}
	if cfg.githubClientID != "" {
		redirectURI := cfg.publicURL + "/api/auth/callback/github"
		providers["github"] = facades.NewGitHubOAuth(cfg.githubClientID, cfg.githubClientSecret, redirectURI)
	}
	if cfg.googleClientID != "" {
		redirectURI := cfg.publicURL + "/api/auth/callback/google"
		providers["google"] = facades.NewGoogleOAuth(cfg.googleClientID, cfg.googleClientSecret, redirectURI)
	}

	secureCookies := cfg.appEnv == "production"

	// Initialize handlers
	signUpHandler := handlers.NewSignUpHandler(authService, sessions, secureCookies)
	signInHandler := handlers.NewSignInHandler(authService, sessions, secureCookies)
	logoutHandler := handlers.NewLogoutHandler(secureCookies)
	meHandler := handlers.NewMeHandler(authService)
	oauthRedirectHandler := handlers.NewOAuthRedirectHandler(providers)
	oauthCallbackHandler := handlers.NewOAuthCallbackHandler(providers, oauthService, sessions, cfg.publicURL, secureCookies)
	platformsHandler := handlers.NewPlatformsHandler(catalogService)
	categoriesHandler := handlers.NewCategoriesHandler(catalogService)
	projectListHandler := handlers.NewProjectListHandler(projectService)
	projectCreateHandler := handlers.NewProjectCreateHandler(projectService)
	projectUpdateHandler := handlers.NewProjectUpdateHandler(projectService)
	projectDeleteHandler := handlers.NewProjectDeleteHandler(projectService)
	boardListHandler := handlers.NewBoardListHandler(boardService)
	boardAddHandler := handlers.NewBoardAddHandler(boardService)
	boardUpdateHandler := handlers.NewBoardUpdateHandler(boardService)
	boardRemoveHandler := handlers.NewBoardRemoveHandler(boardService)
	healthHandler := handlers.NewHealthHandler()

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.MetricsMiddleware())

	// Public routes
	r.Get("/api/health", healthHandler)
	r.Get("/api/platforms", platformsHandler)
	r.Get("/api/categories", categoriesHandler)
	r.Post("/api/auth/sign-up", signUpHandler)
	r.Post("/api/auth/sign-in", signInHandler)
	r.Post("/api/auth/logout", logoutHandler)
	r.Get("/api/auth/{provider}", oauthRedirectHandler)
	r.Get("/api/auth/callback/{provider}", oauthCallbackHandler)

	// Protected routes with session middleware
	authMiddleware := middlewares.AuthMiddleware(sessions)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/api/auth/me", meHandler)
		r.Get("/api/projects", projectListHandler)
		r.Post("/api/projects", projectCreateHandler)
		r.Patch("/api/projects/{id}", projectUpdateHandler)
		r.Delete("/api/projects/{id}", projectDeleteHandler)
		r.Get("/api/board", boardListHandler)
		r.Post("/api/board", boardAddHandler)
		r.Patch("/api/board/{id}", boardUpdateHandler)
		r.Delete("/api/board/{id}", boardRemoveHandler)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
