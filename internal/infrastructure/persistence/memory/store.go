// Package memory 提供进程内存储实现（默认后端，不持久化）
package memory

import (
	"context"
	"sort"
	"sync"

	"fiction-catalog-api/internal/domain/entity"
	"fiction-catalog-api/internal/domain/repository"
)

// Store 进程内故事/章节存储，所有访问由同一把读写锁串行化
type Store struct {
	mu       sync.RWMutex
	stories  map[string]*entity.Story
	chapters map[string]*entity.Chapter
	// 插入顺序，快照按此顺序返回
	storyOrder   []string
	chapterOrder []string
}

// NewStore 创建空存储
func NewStore() *Store {
	return &Store{
		stories:  make(map[string]*entity.Story),
		chapters: make(map[string]*entity.Chapter),
	}
}

// Stories 返回故事仓储视图
func (s *Store) Stories() repository.StoryRepository {
	return &storyRepository{store: s}
}

// Chapters 返回章节仓储视图
func (s *Store) Chapters() repository.ChapterRepository {
	return &chapterRepository{store: s}
}

// WithTransaction 内存存储没有事务，直接执行
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// HealthCheck 内存存储始终可用
func (s *Store) HealthCheck(ctx context.Context) error {
	return nil
}

type storyRepository struct {
	store *Store
}

func (r *storyRepository) Get(ctx context.Context, id string) (*entity.Story, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	story, ok := r.store.stories[id]
	if !ok {
		return nil, nil
	}
	return story.Clone(), nil
}

func (r *storyRepository) Put(ctx context.Context, story *entity.Story) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.stories[story.ID]; !ok {
		r.store.storyOrder = append(r.store.storyOrder, story.ID)
	}
	r.store.stories[story.ID] = story.Clone()
	return nil
}

func (r *storyRepository) All(ctx context.Context) ([]*entity.Story, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*entity.Story, 0, len(r.store.storyOrder))
	for _, id := range r.store.storyOrder {
		out = append(out, r.store.stories[id].Clone())
	}
	return out, nil
}

func (r *storyRepository) IncrementViews(ctx context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	story, ok := r.store.stories[id]
	if !ok {
		return false, nil
	}
	story.Views++
	return true, nil
}

func (r *storyRepository) AdjustLikes(ctx context.Context, id string, delta int) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	story, ok := r.store.stories[id]
	if !ok {
		return false, nil
	}
	story.Likes += delta
	return true, nil
}

func (r *storyRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.stories)), nil
}

type chapterRepository struct {
	store *Store
}

func (r *chapterRepository) Get(ctx context.Context, id string) (*entity.Chapter, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	chapter, ok := r.store.chapters[id]
	if !ok {
		return nil, nil
	}
	return chapter.Clone(), nil
}

func (r *chapterRepository) Put(ctx context.Context, chapter *entity.Chapter) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.chapters[chapter.ID]; !ok {
		r.store.chapterOrder = append(r.store.chapterOrder, chapter.ID)
	}
	r.store.chapters[chapter.ID] = chapter.Clone()
	return nil
}

func (r *chapterRepository) All(ctx context.Context) ([]*entity.Chapter, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*entity.Chapter, 0, len(r.store.chapterOrder))
	for _, id := range r.store.chapterOrder {
		out = append(out, r.store.chapters[id].Clone())
	}
	return out, nil
}

func (r *chapterRepository) ListByStory(ctx context.Context, storyID string) ([]*entity.Chapter, error) {
	r.store.mu.RLock()
	out := make([]*entity.Chapter, 0)
	for _, id := range r.store.chapterOrder {
		if ch := r.store.chapters[id]; ch.StoryID == storyID {
			out = append(out, ch.Clone())
		}
	}
	r.store.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChapterNumber < out[j].ChapterNumber
	})
	return out, nil
}

var (
	_ repository.Transactor    = (*Store)(nil)
	_ repository.HealthChecker = (*Store)(nil)
)
