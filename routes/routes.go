// Package routes assembles repositories, services and handlers into a gin
// engine.
package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"stockfolio/config"
	"stockfolio/handlers"
	"stockfolio/market"
	"stockfolio/metrics"
	"stockfolio/middleware"
	"stockfolio/repository"
	"stockfolio/service"
)

// Deps are the external resources the router is built from. Redis,
// Registry and QuoteSource are optional.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Log    *logrus.Logger

	// Registry defaults to a fresh registry.
	Registry *prometheus.Registry
	// QuoteSource replaces the Alpha Vantage client when set.
	QuoteSource market.PriceSource
}

// SetupRouter builds the HTTP handler. Refresh tokens, rate limiting and the
// quote cache need Redis; the quote endpoint needs an Alpha Vantage key or
// an explicit QuoteSource.
func SetupRouter(d Deps) (*gin.Engine, error) {
	if d.Config == nil || d.DB == nil {
		return nil, errors.New("routes: config and database are required")
	}
	log := d.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	cfg := d.Config

	handlers.RegisterValidators()
	m := metrics.New(reg)

	stocks := repository.NewGormStockRepository(d.DB)
	comments := repository.NewGormCommentRepository(d.DB)
	portfolios := repository.NewGormPortfolioRepository(d.DB)
	users := repository.NewGormUserRepository(d.DB)

	var refresh repository.RefreshTokenRepository
	if d.Redis != nil {
		refresh = repository.NewRedisRefreshTokenRepository(d.Redis)
	}

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTExpiry)
	if err != nil {
		return nil, err
	}
	accounts := service.NewAccountService(users, refresh, tokens, cfg.RefreshTokenTTL, log)

	accountHandler := handlers.NewAccountHandler(accounts, m, log)
	stockHandler := handlers.NewStockHandler(stocks, log)
	commentHandler := handlers.NewCommentHandler(comments, stocks, accounts, log)
	portfolioHandler := handlers.NewPortfolioHandler(portfolios, stocks, accounts, m, log)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Metrics(m))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigin))
	if d.Redis != nil {
		limiter := middleware.NewRedisLimiter(d.Redis, cfg.RateLimitMax, cfg.RateLimitWindow)
		router.Use(middleware.RateLimit(limiter, m, log))
	}

	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	requireAuth := middleware.JWTAuth(tokens, log)
	api := router.Group("/api")

	account := api.Group("/account")
	{
		account.POST("/login", accountHandler.Login)
		account.POST("/register", accountHandler.Register)
		if accounts.RefreshEnabled() {
			account.POST("/refresh", accountHandler.Refresh)
		}
	}

	stock := api.Group("/stock")
	{
		stock.GET("", stockHandler.List)
		stock.GET("/:id", stockHandler.Get)
		stock.POST("", stockHandler.Create)
		stock.PUT("/:id", stockHandler.Update)
		stock.DELETE("/:id", stockHandler.Delete)
	}

	if source := quoteSource(d); source != nil {
		var cache market.Cache
		if d.Redis != nil {
			cache = market.NewRedisCache(d.Redis)
		}
		quotes := market.NewService(source, cache, cfg.QuoteCacheTTL, m, log)
		stock.GET("/:id/quote", handlers.NewQuoteHandler(stocks, quotes, log).Get)
	}

	comment := api.Group("/comment")
	{
		comment.GET("", commentHandler.List)
		comment.GET("/:id", commentHandler.Get)
		comment.POST("/:stockId", requireAuth, commentHandler.Create)
		comment.PUT("/:id", commentHandler.Update)
		comment.DELETE("/:id", commentHandler.Delete)
	}

	portfolio := api.Group("/portfolio", requireAuth)
	{
		portfolio.GET("", portfolioHandler.List)
		portfolio.POST("", portfolioHandler.Add)
		portfolio.DELETE("", portfolioHandler.Remove)
	}

	log.Info("Router setup complete")
	return router, nil
}

func quoteSource(d Deps) market.PriceSource {
	if d.QuoteSource != nil {
		return d.QuoteSource
	}
	if d.Config.AlphaVantageAPIKey == "" {
		return nil
	}
	return market.NewClient(d.Config.AlphaVantageURL, d.Config.AlphaVantageAPIKey, nil)
}
