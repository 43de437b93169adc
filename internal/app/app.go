package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Mehboob-alam1/mahir-backend/internal/config"
	"github.com/Mehboob-alam1/mahir-backend/internal/handler"
	"github.com/Mehboob-alam1/mahir-backend/internal/mailer"
	"github.com/Mehboob-alam1/mahir-backend/internal/repository"
	"github.com/Mehboob-alam1/mahir-backend/internal/service"
	"github.com/Mehboob-alam1/mahir-backend/internal/utils"
	"github.com/Mehboob-alam1/mahir-backend/pkg/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra       Infrastructure
	config      *config.Config
	router      *gin.Engine
	server      *http.Server
	categories  service.CategoryService
	resetTokens repository.ResetTokenRepository
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)

	// Without an SMTP host the auth service only logs reset links.
	var mail *mailer.Mailer
	if cfg.SMTP.Enabled() {
		mail = mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	}

	healthChecker := NewHealthChecker(infra)

	categoryService := service.NewCategoryService(repos.Category, infra.Redis(), infra.Logger())

	authService := service.NewAuthService(
		repos.User,
		repos.Category,
		repos.ResetToken,
		jwtManager,
		mail,
		infra.Logger(),
		cfg.Security.BCryptCost,
		cfg.Reset.BaseURL,
		cfg.Reset.TokenValidity.Duration,
	)

	userService := service.NewUserService(repos.User, repos.ResetToken, cfg.Security.BCryptCost)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	router := gin.Default()
	router.Use(otelgin.Middleware("mahir-backend"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))
	router.Use(handler.PrincipalMiddleware(jwtManager))

	setupRoutes(router, authHandler, userHandler, categoryHandler, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:       infra,
		config:      cfg,
		router:      router,
		server:      srv,
		categories:  categoryService,
		resetTokens: repos.ResetToken,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// SeedCategories loads the default service categories when the table is empty
func (a *App) SeedCategories(ctx context.Context) {
	a.categories.SeedDefaults(ctx)
}

func setupRoutes(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/signin", authHandler.SignIn)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/check-session", authHandler.CheckSession)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	api := router.Group("/api")
	{
		api.GET("/categories", categoryHandler.GetAll)

		users := api.Group("/users")
		{
			users.POST("", userHandler.Create)
			users.GET("", userHandler.GetAll)
			users.GET("/:id", userHandler.GetByID)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	a.SeedCategories(ctx)

	// Stale reset tokens are also purged lazily on use; this clears the rest.
	if err := a.resetTokens.DeleteExpiredBefore(ctx, time.Now()); err != nil {
		a.infra.Logger().Warn("Expired reset token sweep failed", zap.Error(err))
	}

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
