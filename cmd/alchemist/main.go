package main

import (
	"context"
	"log/slog"
	"os"

	pkgconfig "github.com/alchemist-music/alchemist-api/pkg/config"
	"github.com/alchemist-music/alchemist-api/pkg/library"
	libraryapi "github.com/alchemist-music/alchemist-api/pkg/library/api"
	"github.com/alchemist-music/alchemist-api/pkg/logincode"
	logincodeapi "github.com/alchemist-music/alchemist-api/pkg/logincode/api"
	"github.com/alchemist-music/alchemist-api/pkg/notification"
	"github.com/alchemist-music/alchemist-api/pkg/router"
	"github.com/alchemist-music/alchemist-api/pkg/search"
	searchapi "github.com/alchemist-music/alchemist-api/pkg/search/api"
	"github.com/alchemist-music/alchemist-api/pkg/tokengenerator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	config, err := pkgconfig.Load()
	if err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}
	if err := config.Validate(); err != nil {
		slog.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	var pool *pgxpool.Pool
	if config.DatabaseConfig.Persistence != "memory" {
		pool, err = dbutils.NewDbPool(context.Background(), config.DatabaseConfig.ToDbConfig())
		if err != nil {
			slog.Error("Failed to create database pool", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		slog.Info("Database connected", "database", config.DatabaseConfig.Database)
	} else {
		slog.Warn("Using in-memory persistence, data is lost on restart")
	}

	// Notifications
	notifierOpt := notification.WithNotifier(notification.EmailSystem, notification.LogNotifier{})
	if config.EmailConfig.Enabled {
		notifierOpt = notification.WithSMTP(config.EmailConfig.ToSMTPConfig())
	}
	notificationManager, err := notification.NewNotificationManagerWithOptions(config.BaseUrl,
		notifierOpt,
		notification.WithDefaultTemplates(),
	)
	if err != nil {
		slog.Error("Failed to initialize notification manager", "err", err)
		os.Exit(1)
	}

	// Login codes
	codeRepo, err := logincode.NewRepository(config.DatabaseConfig.Persistence, logincode.RepositoryConfig{Pool: pool})
	if err != nil {
		slog.Error("Failed to create login code repository", "err", err)
		os.Exit(1)
	}
	codeTTL, _ := config.LoginCodeConfig.ParseTTL()
	if config.LoginCodeConfig.Debug {
		slog.Warn("LOGIN_CODE_DEBUG is on, login codes are returned in API responses")
	}
	codeService := logincode.NewLoginCodeService(codeRepo,
		logincode.WithNotificationManager(notificationManager),
		logincode.WithCodeTTL(codeTTL),
		logincode.WithDebugCode(config.LoginCodeConfig.Debug),
	)

	// Tokens
	accessExpiry, _ := config.JWTConfig.ParseAccessTokenExpiry()
	refreshExpiry, _ := config.JWTConfig.ParseRefreshTokenExpiry()
	jwtService := tokengenerator.NewJwtService(
		tokengenerator.NewJwtTokenGenerator(config.JWTConfig.Secret, config.JWTConfig.Issuer, config.JWTConfig.Audience),
		tokengenerator.WithAccessTokenExpiry(accessExpiry),
		tokengenerator.WithRefreshTokenExpiry(refreshExpiry),
		tokengenerator.WithRefreshCookie(config.JWTConfig.RefreshCookieName,
			tokengenerator.NewCookieSetter(config.JWTConfig.CookieHttpOnly, config.JWTConfig.CookieSecure, refreshExpiry)),
	)

	// Library
	libraryRepo, err := library.NewRepository(config.DatabaseConfig.Persistence, pool)
	if err != nil {
		slog.Error("Failed to create library repository", "err", err)
		os.Exit(1)
	}

	// Search
	searchTimeout, _ := config.SearchConfig.ParseTimeout()
	breakerConfig := search.DefaultBreakerConfig
	breakerConfig.FailureThreshold = uint32(config.SearchConfig.BreakerThreshold)
	breakerConfig.Timeout, _ = config.SearchConfig.ParseBreakerTimeout()
	searchOpts := []search.SearchServiceOption{
		search.WithLimit(config.SearchConfig.Limit),
		search.WithTimeout(searchTimeout),
		search.WithBreaker(breakerConfig),
	}
	if config.SearchConfig.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.SearchConfig.RedisAddr,
			Password: config.SearchConfig.RedisPassword,
			DB:       config.SearchConfig.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			slog.Warn("Redis unreachable, search cache will fall through", "addr", config.SearchConfig.RedisAddr, "err", err)
		}
		cacheTTL, _ := config.SearchConfig.ParseCacheTTL()
		searchOpts = append(searchOpts, search.WithCache(search.NewRedisCache(rdb), cacheTTL))
		slog.Info("Search cache enabled", "addr", config.SearchConfig.RedisAddr, "ttl", cacheTTL)
	}
	searchService := search.NewSearchService(search.NewYtDlpRunner(config.SearchConfig.YtDlpPath), searchOpts...)

	corsOptions := router.CORSOptions(config.CORSConfig)
	server := app.NewApp(
		app.WithAppConfig(app.AppConfig{Server: app.Server{Host: config.Host, Port: config.Port}}),
		app.WithCors(&corsOptions),
	)
	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	router.SetupRoutes(server.R, router.Config{
		LoginCodeHandle: logincodeapi.NewHandle(codeService, jwtService),
		LibraryHandle:   libraryapi.NewHandle(library.NewLibraryService(libraryRepo)),
		SearchHandle:    searchapi.NewHandle(searchService),
		TokenAuth:       jwtauth.New("HS256", []byte(config.JWTConfig.Secret), nil),
		UserLookup:      router.UserLookup(codeService),
	})

	slog.Info("Alchemist API ready", "host", config.Host, "port", config.Port, "persistence", config.DatabaseConfig.Persistence)
	server.Run()
}
