package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soundscope/soundscope-api/internal/config"
	"github.com/soundscope/soundscope-api/internal/handler"
	"github.com/soundscope/soundscope-api/internal/repository"
	"github.com/soundscope/soundscope-api/internal/service"
	"github.com/soundscope/soundscope-api/internal/spotify"
	"github.com/soundscope/soundscope-api/internal/utils"
	"github.com/soundscope/soundscope-api/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.SessionExpiry.Duration,
	)

	spotifyClient := spotify.NewClient(spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RedirectURI:  cfg.Spotify.RedirectURI,
		AuthURL:      cfg.Spotify.AuthURL,
		TokenURL:     cfg.Spotify.TokenURL,
		APIBaseURL:   cfg.Spotify.APIBaseURL,
		Timeout:      cfg.Spotify.Timeout.Duration,
	})

	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	authService := service.NewAuthService(repos.User, spotifyClient, jwtManager)
	analyticsService := service.NewAnalyticsService(authService, spotifyClient)

	authHandler := handler.NewAuthHandler(authService, jwtManager)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	router := gin.Default()
	router.Use(otelgin.Middleware("soundscope-api"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, authHandler, analyticsHandler, authService, rateLimiter, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	analyticsHandler *handler.AnalyticsHandler,
	authService service.AuthService,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth/spotify")
		{
			auth.GET("/login", authHandler.Login)
			auth.GET("/callback",
				handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration, handler.IPBasedKey),
				authHandler.Callback,
			)
			auth.POST("/refresh_access_token",
				handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration, handler.IPBasedKey),
				authHandler.RefreshAccessToken,
			)
		}

		api.GET("/users/me", handler.AuthMiddleware(authService), authHandler.GetMe)

		analytics := api.Group("/analytics", handler.AuthMiddleware(authService))
		{
			analytics.GET("/top-items/:item_type", analyticsHandler.TopItems)
			analytics.GET("/playlists", analyticsHandler.Playlists)
			analytics.GET("/recently-played", analyticsHandler.RecentlyPlayed)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
