package container

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/tokenlink/tokenlink/internal/analytics"
	analyticsstore "github.com/tokenlink/tokenlink/internal/analytics/store"
	"github.com/tokenlink/tokenlink/internal/handlers"
	"github.com/tokenlink/tokenlink/internal/messaging"
	"github.com/tokenlink/tokenlink/internal/middleware"
	"github.com/tokenlink/tokenlink/internal/ratelimit"
	"github.com/tokenlink/tokenlink/internal/redirect"
	"github.com/tokenlink/tokenlink/internal/store"
	"go.uber.org/zap"
)

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}

// PostgresPackage provides the pgx connection pool.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		return pgxpool.New(context.Background(), options.DatabaseURL)
	})
}

// RepositoryPackage provides the redirect repository: Postgres wrapped in a
// Redis read-through cache.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (redirect.Repository, error) {
		options := do.MustInvoke[*Options](i)
		pool := do.MustInvoke[*pgxpool.Pool](i)
		client := do.MustInvoke[*redis.Client](i)

		pg := store.NewPostgresStore(pool)
		ttl := time.Duration(options.CacheTTL) * time.Second

		return store.NewRedisCacheRepository(pg, client, ttl), nil
	})
}

// TokenPackage provides the token codec and key generator. A missing signing
// secret fails provider invocation, which aborts startup.
func TokenPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redirect.TokenCodec, error) {
		options := do.MustInvoke[*Options](i)

		ttl := time.Duration(options.TokenTTL) * time.Second

		codec, err := redirect.NewTokenCodec(options.SigningSecret, ttl)
		if err != nil {
			return nil, fmt.Errorf("token codec: %w", err)
		}

		return codec, nil
	})

	do.Provide(injector, func(_ *do.Injector) (redirect.KeyGenerator, error) {
		return redirect.NewHexKeyGenerator(), nil
	})
}

// RateLimitPackage provides the Redis-backed sliding window limiter.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		client := do.MustInvoke[*redis.Client](i)

		return store.NewRateLimitRedisStore(client), nil
	})

	do.Provide(injector, func(i *do.Injector) (*ratelimit.SlidingWindowLimiter, error) {
		options := do.MustInvoke[*Options](i)
		limitStore := do.MustInvoke[ratelimit.Store](i)

		window := time.Duration(options.RateLimitWindow) * time.Second

		return ratelimit.NewSlidingWindowLimiter(limitStore, int64(options.RateLimitMax), window), nil
	})
}

// PublisherGroupPackage provides the watermill publisher and the typed
// publish functions used by the handlers.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.RedirectCreatedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.RedirectCreatedEvent](group.Publisher(), analytics.TopicRedirectCreated), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.RedirectResolvedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.RedirectResolvedEvent](group.Publisher(), analytics.TopicRedirectResolved), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.RedirectDeniedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.RedirectDeniedEvent](group.Publisher(), analytics.TopicRedirectDenied), nil
	})
}

// ConsumerGroupPackage provides the analytics consumer group used by the
// consumer binary.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		return analyticsstore.NewNoop(logger), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)
		events := do.MustInvoke[analytics.Store](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: "analytics",
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)

		group.Add(messaging.NewConsumer(subscriber, analytics.TopicRedirectCreated,
			func(ctx context.Context, event *analytics.RedirectCreatedEvent) error {
				return events.SaveRedirectCreated(ctx, event)
			}, logger))

		group.Add(messaging.NewConsumer(subscriber, analytics.TopicRedirectResolved,
			func(ctx context.Context, event *analytics.RedirectResolvedEvent) error {
				return events.SaveRedirectResolved(ctx, event)
			}, logger))

		group.Add(messaging.NewConsumer(subscriber, analytics.TopicRedirectDenied,
			func(ctx context.Context, event *analytics.RedirectDeniedEvent) error {
				return events.SaveRedirectDenied(ctx, event)
			}, logger))

		return group, nil
	})
}

// HTTPPackage provides the chi router and the huma API with all routes and
// middleware registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		repo := do.MustInvoke[redirect.Repository](i)
		codec := do.MustInvoke[*redirect.TokenCodec](i)
		keygen := do.MustInvoke[redirect.KeyGenerator](i)
		limiter := do.MustInvoke[*ratelimit.SlidingWindowLimiter](i)
		pool := do.MustInvoke[*pgxpool.Pool](i)
		client := do.MustInvoke[*redis.Client](i)
		publishCreated := do.MustInvoke[messaging.Publish[analytics.RedirectCreatedEvent]](i)
		publishResolved := do.MustInvoke[messaging.Publish[analytics.RedirectResolvedEvent]](i)
		publishDenied := do.MustInvoke[messaging.Publish[analytics.RedirectDeniedEvent]](i)

		baseURL := options.BaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://localhost:%d", options.Port)
		}

		api := humachi.New(router, huma.DefaultConfig("Token Link", "1.0.0"))
		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.RateLimiter(api, limiter, logger),
		)

		creator := redirect.NewCreator(keygen, codec, repo, logger)
		resolver := redirect.NewResolver(codec, repo, logger)

		redirectHandler := handlers.NewRedirectHandler(
			creator,
			resolver,
			repo,
			baseURL,
			publishCreated,
			publishResolved,
			publishDenied,
			logger,
		)

		healthHandler := handlers.NewHealthHandler(
			handlers.NewRedisHealthChecker(client),
			handlers.NewPostgresHealthChecker(pool),
		)

		handlers.RegisterRoutes(api, redirectHandler, healthHandler)

		if options.StaticDir != "" {
			registerStatic(router, options.StaticDir)
		}

		return api, nil
	})
}

// registerStatic serves the dashboard the same way the service serves
// everything else: index at the root, assets under /static/.
func registerStatic(router *chi.Mux, dir string) {
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	})

	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
}
