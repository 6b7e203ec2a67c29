package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fiction-catalog-api/internal/domain/entity"
	"fiction-catalog-api/internal/domain/repository"
	"fiction-catalog-api/pkg/logger"
)

// CachedChapterRepository 章节读缓存装饰器。
// 章节创建后不可变，按 ID 的读取走缓存，其余操作直接透传。
type CachedChapterRepository struct {
	repository.ChapterRepository
	cache *Cache
	ttl   time.Duration
}

// NewCachedChapterRepository 包装章节仓储
func NewCachedChapterRepository(inner repository.ChapterRepository, cache *Cache, ttl time.Duration) *CachedChapterRepository {
	return &CachedChapterRepository{
		ChapterRepository: inner,
		cache:             cache,
		ttl:               ttl,
	}
}

// BuildChapterKey 构建章节缓存键
func BuildChapterKey(id string) string {
	return fmt.Sprintf("chapter:%s", id)
}

// Get 先读缓存，未命中时回源；缓存故障时降级为直接读取
func (r *CachedChapterRepository) Get(ctx context.Context, id string) (*entity.Chapter, error) {
	data, err := r.cache.GetOrLoad(ctx, BuildChapterKey(id), r.ttl, func(ctx context.Context) (interface{}, error) {
		ch, err := r.ChapterRepository.Get(ctx, id)
		if err != nil || ch == nil {
			return nil, err
		}
		return ch, nil
	})
	if err != nil {
		logger.Warn(ctx, "chapter cache unavailable, reading through", "chapter_id", id, "error", err.Error())
		return r.ChapterRepository.Get(ctx, id)
	}
	if data == nil {
		return nil, nil
	}

	var ch entity.Chapter
	if err := json.Unmarshal(data, &ch); err != nil {
		return nil, fmt.Errorf("failed to decode cached chapter: %w", err)
	}
	return &ch, nil
}

// Put 写入后使缓存失效
func (r *CachedChapterRepository) Put(ctx context.Context, chapter *entity.Chapter) error {
	if err := r.ChapterRepository.Put(ctx, chapter); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, BuildChapterKey(chapter.ID)); err != nil {
		logger.Warn(ctx, "failed to invalidate chapter cache", "chapter_id", chapter.ID, "error", err.Error())
	}
	return nil
}

var _ repository.ChapterRepository = (*CachedChapterRepository)(nil)
