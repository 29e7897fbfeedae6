// Package bootstrap wires the application components together: config,
// logger, local cache store, session store, redis and the API client.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gatherly/internal/api"
	"gatherly/internal/config"
	"gatherly/internal/geo"
	"gatherly/internal/observability"
	"gatherly/internal/session"
	"gatherly/internal/store"

	"github.com/redis/go-redis/v9"
)

// Runtime is the assembled application runtime. Redis may be nil when the
// realtime backend is unreachable; callers degrade to polling.
type Runtime struct {
	Cfg      *config.Config
	Log      *slog.Logger
	Store    *store.Store
	Session  *session.Store
	Redis    *redis.Client
	API      *api.Client
	Location geo.Provider
}

// InitRuntime builds the runtime from configuration. Location defaults to
// an empty cached provider; inject a device-backed one where available.
func InitRuntime(cfg *config.Config) (*Runtime, error) {
	log := observability.NewLogger(cfg.Env)

	st, err := store.Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("local cache unavailable: %w", err)
	}

	sess, err := session.Open(cfg.SessionPath)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("session store unavailable: %w", err)
	}

	client := api.NewClient(cfg.APIBaseURL, sess, log, &http.Client{
		Timeout: time.Duration(cfg.APITimeoutSeconds) * time.Second,
	})

	rdb := connectRedis(cfg.RedisURL, log)

	return &Runtime{
		Cfg:      cfg,
		Log:      log,
		Store:    st,
		Session:  sess,
		Redis:    rdb,
		API:      client,
		Location: geo.NewCachedProvider(&geo.StaticProvider{}),
	}, nil
}

// connectRedis returns a pinged client, or nil when the realtime backend is
// unreachable. The app keeps working without it.
func connectRedis(addr string, log *slog.Logger) *redis.Client {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Warn("invalid REDIS_URL, continuing without realtime", slog.String("error", err.Error()))
			return nil
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, continuing without realtime", slog.String("error", err.Error()))
		client.Close()
		return nil
	}
	return client
}

// Close releases all runtime resources.
func (r *Runtime) Close() error {
	var firstErr error
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil {
			firstErr = err
		}
	}
	if err := r.Session.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := r.Store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
