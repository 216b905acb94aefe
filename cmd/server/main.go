package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/foliogen/foliogen/modules/account"
	"github.com/foliogen/foliogen/pkg/config"
	"github.com/foliogen/foliogen/pkg/cookie"
	"github.com/foliogen/foliogen/pkg/email"
	"github.com/foliogen/foliogen/pkg/httpserver"
	"github.com/foliogen/foliogen/pkg/jwt"
	"github.com/foliogen/foliogen/pkg/logger"
	"github.com/foliogen/foliogen/pkg/password"
	"github.com/foliogen/foliogen/pkg/pg"
	"github.com/foliogen/foliogen/pkg/redis"
	"github.com/foliogen/foliogen/svc/auth"
)

type appConfig struct {
	Environment   string `env:"ENVIRONMENT" envDefault:"development"`
	AppName       string `env:"APP_NAME" envDefault:"foliogen"`
	SessionSecret string `env:"SESSION_SECRET,required"`

	LoginAttempts     int64         `env:"LOGIN_ATTEMPT_LIMIT" envDefault:"10"`
	LoginAttemptsSpan time.Duration `env:"LOGIN_ATTEMPT_WINDOW" envDefault:"15m"`
}

func main() {
	var (
		appCfg    appConfig
		pgCfg     pg.Config
		redisCfg  redis.Config
		emailCfg  email.Config
		serverCfg httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&emailCfg)
	config.MustLoad(&serverCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Environment, appCfg.AppName))
	logger.SetAsDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		log.ErrorContext(ctx, "failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		log.ErrorContext(ctx, "failed to apply migrations", logger.Error(err))
		os.Exit(1)
	}

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		log.ErrorContext(ctx, "failed to connect to redis", logger.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()

	tokens, err := jwt.New([]byte(appCfg.SessionSecret))
	if err != nil {
		log.ErrorContext(ctx, "failed to init token issuer", logger.Error(err))
		os.Exit(1)
	}

	sender, err := newEmailSender(appCfg.Environment, emailCfg, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to init email sender", logger.Error(err))
		os.Exit(1)
	}

	authSvc := auth.New(
		auth.NewPostgresStore(pool),
		password.New(),
		tokens,
		email.NewCodeMailer(sender, emailCfg.SenderName),
		auth.WithLogger(log),
		auth.WithThrottle(auth.NewAttemptLimiter(redisClient, appCfg.LoginAttempts, appCfg.LoginAttemptsSpan)),
	)

	cookies := cookie.New(cookie.WithSecure(appCfg.Environment == "production"))
	accountHandler := account.NewHandler(authSvc, cookies, account.WithLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))

	r.Mount("/auth", accountHandler.Router())

	r.Group(func(r chi.Router) {
		r.Use(account.RequireSession(authSvc, cookies))
		r.Get("/me", meHandler)
	})

	srv := httpserver.NewFromConfig(serverCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("server listening", slog.String("addr", serverCfg.Addr))
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("server stopped")
		}),
	)

	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

// newEmailSender picks Postmark when a server token is configured, otherwise
// the filesystem sender so local signups stay testable without credentials.
func newEmailSender(environment string, cfg email.Config, log *slog.Logger) (email.EmailSender, error) {
	if cfg.PostmarkServerToken != "" {
		return email.NewPostmarkClient(cfg)
	}
	if environment == "production" {
		return nil, email.ErrInvalidConfig
	}
	log.Warn("postmark token not set, writing emails to disk", slog.String("dir", cfg.DevOutputDir))
	return email.NewDevSender(cfg.DevOutputDir), nil
}

func meHandler(w http.ResponseWriter, r *http.Request) {
	acc, ok := account.CurrentAccount(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":             acc.ID,
		"email":          acc.Email,
		"name":           acc.Name,
		"email_verified": acc.EmailVerified,
	})
}
