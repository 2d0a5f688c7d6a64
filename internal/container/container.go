// Package container wires the application together with samber/do.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/clicklens/clicklens/internal/analytics"
	analyticsstore "github.com/clicklens/clicklens/internal/analytics/store"
	"github.com/clicklens/clicklens/internal/geo"
	"github.com/clicklens/clicklens/internal/handlers"
	"github.com/clicklens/clicklens/internal/messaging"
	"github.com/clicklens/clicklens/internal/middleware"
	"github.com/clicklens/clicklens/internal/shortener"
	"github.com/clicklens/clicklens/internal/stats"
	"github.com/clicklens/clicklens/internal/store"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// Options holds all runtime configuration, populated by humacli from flags
// and environment.
type Options struct {
	Port        int    `default:"8888"                  help:"Port to listen on"                              short:"p"`
	BaseURL     string `default:""                      help:"Public base URL, defaults to http://localhost:<port>"`
	CodeLength  int    `default:"6"                     help:"Length of generated short codes"                short:"c"`
	RedisAddr   string `default:"localhost:6379"        help:"Redis server address"                           short:"r"`
	DatabaseURL string `default:""                      help:"PostgreSQL URL; empty selects the in-memory store"`
	CacheTTL    int    `default:"3600"                  help:"Redirect cache TTL in seconds; 0 disables caching"`
	LogFormat   string `default:"console"               help:"Log format: console or json"`
}

func (o *Options) baseURL() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}

	return fmt.Sprintf("http://localhost:%d", o.Port)
}

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

// RedisPackage provides the Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}

// PostgresPackage provides the pgx pool when a database URL is configured.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		if options.DatabaseURL == "" {
			return nil, nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return pgxpool.New(ctx, options.DatabaseURL)
	})
}

// RepositoryPackage provides the link and click repositories, the geo
// resolver, the registry, the ledger, and the stats aggregator. With a
// database URL set the stores are Postgres-backed and link lookups go
// through the Redis cache; otherwise everything lives in memory.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*store.MemoryStore, error) {
		return store.NewMemoryStore(), nil
	})

	do.Provide(injector, func(i *do.Injector) (shortener.ClickRepository, error) {
		options := do.MustInvoke[*Options](i)

		if options.DatabaseURL == "" {
			return do.MustInvoke[*store.MemoryStore](i), nil
		}

		return store.NewPostgresStore(do.MustInvoke[*pgxpool.Pool](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (shortener.LinkRepository, error) {
		options := do.MustInvoke[*Options](i)

		if options.DatabaseURL == "" {
			return do.MustInvoke[*store.MemoryStore](i), nil
		}

		pg := store.NewPostgresStore(do.MustInvoke[*pgxpool.Pool](i))
		client := do.MustInvoke[*redis.Client](i)
		ttl := time.Duration(options.CacheTTL) * time.Second

		return store.NewRedisCacheRepository(pg, client, ttl), nil
	})

	do.Provide(injector, func(i *do.Injector) (geo.Resolver, error) {
		return geo.NewOctetResolver(nil), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortener.Registry, error) {
		options := do.MustInvoke[*Options](i)

		generator, err := shortener.NewCodeGenerator(options.CodeLength)
		if err != nil {
			return nil, err
		}

		return shortener.NewRegistry(do.MustInvoke[shortener.LinkRepository](i), generator), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortener.Ledger, error) {
		return shortener.NewLedger(
			do.MustInvoke[shortener.ClickRepository](i),
			do.MustInvoke[geo.Resolver](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (*stats.Aggregator, error) {
		return stats.NewAggregator(
			do.MustInvoke[shortener.LinkRepository](i),
			do.MustInvoke[shortener.ClickRepository](i),
		), nil
	})
}

// PublisherGroupPackage provides the watermill publisher over Redis streams
// plus the typed publish functions used by the handlers.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NewStdLogger(false, false))
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkCreatedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkCreatedEvent](group.Publisher(), analytics.TopicLinkCreated), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.ClickRecordedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.ClickRecordedEvent](group.Publisher(), analytics.TopicClickRecorded), nil
	})
}

// ConsumerGroupPackage provides the consumer-side wiring: the Redis stream
// subscriber, the analytics event store, and one typed consumer per topic.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		return analyticsstore.NewNoop(do.MustInvoke[*zap.Logger](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)
		eventStore := do.MustInvoke[analytics.Store](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: "clicklens-analytics",
		}, watermill.NewStdLogger(false, false))
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber, analytics.TopicLinkCreated, analytics.NewLinkCreatedHandler(eventStore), logger,
		))
		group.Add(messaging.NewConsumer(
			subscriber, analytics.TopicClickRecorded, analytics.NewClickRecordedHandler(eventStore), logger,
		))

		return group, nil
	})
}

// HTTPPackage provides the chi router, the huma API, and all handlers, and
// registers the routes.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*handlers.LinkHandler, error) {
		options := do.MustInvoke[*Options](i)

		return handlers.NewLinkHandler(
			do.MustInvoke[*shortener.Registry](i),
			do.MustInvoke[*shortener.Ledger](i),
			options.baseURL(),
			do.MustInvoke[messaging.Publish[analytics.LinkCreatedEvent]](i),
			do.MustInvoke[messaging.Publish[analytics.ClickRecordedEvent]](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (*handlers.StatsHandler, error) {
		return handlers.NewStatsHandler(
			do.MustInvoke[*shortener.Registry](i),
			do.MustInvoke[*stats.Aggregator](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (*handlers.HealthHandler, error) {
		return handlers.NewHealthHandler(
			handlers.NewRedisHealthChecker(do.MustInvoke[*redis.Client](i)),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		api := humachi.New(router, huma.DefaultConfig("ClickLens", "1.0.0"))

		api.UseMiddleware(middleware.RequestMeta(api))

		handlers.RegisterRoutes(api,
			do.MustInvoke[*handlers.LinkHandler](i),
			do.MustInvoke[*handlers.StatsHandler](i),
			do.MustInvoke[*handlers.HealthHandler](i),
		)

		return api, nil
	})
}
