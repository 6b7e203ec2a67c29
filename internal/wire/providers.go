package wire

import (
	"context"
	"fmt"
	"os"

	"fiction-catalog-api/internal/application/catalog"
	"fiction-catalog-api/internal/application/engagement"
	"fiction-catalog-api/internal/config"
	"fiction-catalog-api/internal/domain/entity"
	"fiction-catalog-api/internal/domain/repository"
	"fiction-catalog-api/internal/infrastructure/messaging"
	"fiction-catalog-api/internal/infrastructure/persistence/memory"
	"fiction-catalog-api/internal/infrastructure/persistence/postgres"
	"fiction-catalog-api/internal/infrastructure/persistence/redis"
	"fiction-catalog-api/internal/interfaces/http/handler"
	"fiction-catalog-api/internal/interfaces/http/middleware"
	"fiction-catalog-api/internal/interfaces/http/router"
	"fiction-catalog-api/pkg/logger"
)

// Storage 目录存储后端
type Storage struct {
	Driver   string
	Stories  repository.StoryRepository
	Chapters repository.ChapterRepository
	Tx       repository.Transactor
	Health   repository.HealthChecker
}

// PostgresOnlyDataLayer 仅包含 PostgreSQL 的数据层（用于 bootstrap）
type PostgresOnlyDataLayer struct {
	PgClient    *postgres.Client
	TxManager   *postgres.TxManager
	StoryRepo   *postgres.StoryRepository
	ChapterRepo *postgres.ChapterRepository
}

// Worker 互动事件消费者及其依赖
type Worker struct {
	Consumer    *messaging.Consumer
	RedisClient *redis.Client
}

// ProvideStorage 按 storage.driver 构建存储后端，postgres 启动时自动迁移
func ProvideStorage(ctx context.Context, cfg *config.Config) (*Storage, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		client, cleanup, err := ProvidePostgresClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := client.AutoMigrate(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}
		return &Storage{
			Driver:   config.StorageDriverPostgres,
			Stories:  postgres.NewStoryRepository(client),
			Chapters: postgres.NewChapterRepository(client),
			Tx:       postgres.NewTxManager(client),
			Health:   client,
		}, cleanup, nil
	case config.StorageDriverMemory, "":
		store := memory.NewStore()
		return &Storage{
			Driver:   config.StorageDriverMemory,
			Stories:  store.Stories(),
			Chapters: store.Chapters(),
			Tx:       store,
			Health:   store,
		}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClientOptional 未启用 Redis 时返回 nil，启用后连接失败则启动失败
func ProvideRedisClientOptional(cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	return ProvideRedisClient(cfg)
}

// ProvideChapterRepository 启用 Redis 且 chapter_ttl > 0 时为章节读取加缓存
func ProvideChapterRepository(cfg *config.Config, storage *Storage, redisClient *redis.Client) repository.ChapterRepository {
	if redisClient == nil || cfg.Cache.Redis.ChapterTTL <= 0 {
		return storage.Chapters
	}
	return redis.NewCachedChapterRepository(storage.Chapters, redis.NewCache(redisClient), cfg.Cache.Redis.ChapterTTL)
}

// ProvideEngagementPublisher 未启用消息时返回 nil，服务层跳过发布
func ProvideEngagementPublisher(cfg *config.Config, redisClient *redis.Client) catalog.EngagementPublisher {
	if !cfg.Messaging.Enabled || redisClient == nil {
		return nil
	}
	return ProvideMessagingProducer(redisClient, cfg)
}

// ProvideMessagingProducer 提供消息生产者
func ProvideMessagingProducer(redisClient *redis.Client, cfg *config.Config) *messaging.Producer {
	maxLen := cfg.Messaging.RedisStream.MaxLen
	if maxLen <= 0 {
		maxLen = 100000
	}
	return messaging.NewProducer(redisClient.Redis(), int64(maxLen))
}

// ProvideCatalogService 创建目录服务，按配置写入示例数据
func ProvideCatalogService(ctx context.Context, cfg *config.Config, storage *Storage, chapters repository.ChapterRepository, publisher catalog.EngagementPublisher) (*catalog.Service, error) {
	if cfg.Storage.Seed {
		if _, err := SeedCatalog(ctx, cfg, storage); err != nil {
			return nil, err
		}
	}
	return catalog.NewService(storage.Stories, chapters, publisher), nil
}

// SeedCatalog 存储为空时写入示例数据，返回写入的故事数
func SeedCatalog(ctx context.Context, cfg *config.Config, storage *Storage) (int, error) {
	fixtures := catalog.DefaultSeed()
	if cfg.Storage.SeedFile != "" {
		loaded, err := catalog.LoadSeedFile(cfg.Storage.SeedFile)
		if err != nil {
			return 0, err
		}
		fixtures = loaded
	}

	n, err := catalog.NewSeeder(storage.Stories, storage.Chapters, storage.Tx).SeedIfEmpty(ctx, fixtures)
	if err != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", err)
	}
	if n > 0 {
		logger.Info(ctx, "catalog seeded", "stories", n, "driver", storage.Driver)
	}
	return n, nil
}

// ProvideRanker 未启用 Redis 时返回 nil，热度榜接口返回 503
func ProvideRanker(storage *Storage, redisClient *redis.Client) *engagement.Ranker {
	if redisClient == nil {
		return nil
	}
	return engagement.NewRanker(redis.NewTrendingStore(redisClient), storage.Stories)
}

// ProvideRateLimiter 未启用限流或 Redis 时返回 nil
func ProvideRateLimiter(cfg *config.Config, redisClient *redis.Client) middleware.RateLimiter {
	if !cfg.Security.RateLimit.Enabled || redisClient == nil {
		return nil
	}
	return redis.NewRateLimiter(redisClient)
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(cfg *config.Config, storage *Storage, redisClient *redis.Client) *handler.HealthHandler {
	var redisChecker repository.HealthChecker
	if redisClient != nil {
		redisChecker = redisClient
	}
	return handler.NewHealthHandler(storage.Driver, storage.Health, redisChecker, cfg.App.Version)
}

// ProvideHandlers 汇总路由处理器
func ProvideHandlers(
	health *handler.HealthHandler,
	story *handler.StoryHandler,
	chapter *handler.ChapterHandler,
	stats *handler.StatsHandler,
) router.Handlers {
	return router.Handlers{
		Health:  health,
		Story:   story,
		Chapter: chapter,
		Stats:   stats,
	}
}

// ProvideRouter 提供路由器
func ProvideRouter(cfg *config.Config, handlers router.Handlers, limiter middleware.RateLimiter) *router.Router {
	return router.New(cfg, handlers, limiter)
}

// ProvideEngagementProcessor 提供热度榜事件处理器
func ProvideEngagementProcessor(redisClient *redis.Client) *engagement.Processor {
	return engagement.NewProcessor(redis.NewTrendingStore(redisClient))
}

// ProvideEngagementConsumer 创建互动事件消费者并注册处理器
func ProvideEngagementConsumer(cfg *config.Config, redisClient *redis.Client, processor *engagement.Processor) *messaging.Consumer {
	stream := cfg.Messaging.RedisStream
	consumer := messaging.NewConsumer(redisClient.Redis(), messaging.ConsumerConfig{
		Stream:       messaging.StreamStoryEngagement,
		Group:        messaging.ConsumerGroupTrending,
		ConsumerName: hostnameConsumerName(),
		BlockTimeout: stream.BlockTimeout,
		RetryLimit:   stream.RetryLimit,
		Backoff: messaging.BackoffConfig{
			Initial:    stream.RetryBackoff.Initial,
			Max:        stream.RetryBackoff.Max,
			Multiplier: stream.RetryBackoff.Multiplier,
		},
	})

	handle := messaging.EngagementHandler(processor.Handle)
	for _, t := range []entity.EngagementType{entity.EngagementViewed, entity.EngagementLiked, entity.EngagementUnliked} {
		consumer.RegisterHandler(string(t), handle)
	}
	return consumer
}

func hostnameConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "worker"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
