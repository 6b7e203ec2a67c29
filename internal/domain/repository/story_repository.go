// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"fiction-catalog-api/internal/domain/entity"
)

// StoryRepository 故事仓储接口
//
// 不存在的 ID 以 (nil, nil) 表示，计数操作对不存在的 ID 静默忽略。
type StoryRepository interface {
	// Get 根据 ID 获取故事
	Get(ctx context.Context, id string) (*entity.Story, error)

	// Put 插入或按 ID 覆盖故事
	Put(ctx context.Context, story *entity.Story) error

	// All 返回全部故事的快照，调用方可任意排序或修改
	All(ctx context.Context) ([]*entity.Story, error)

	// IncrementViews 浏览数 +1，返回故事是否存在
	IncrementViews(ctx context.Context, id string) (bool, error)

	// AdjustLikes 点赞数增加 delta（可为负），返回故事是否存在
	AdjustLikes(ctx context.Context, id string, delta int) (bool, error)

	// Count 返回故事总数
	Count(ctx context.Context) (int64, error)
}

// ChapterRepository 章节仓储接口
type ChapterRepository interface {
	// Get 根据 ID 获取章节
	Get(ctx context.Context, id string) (*entity.Chapter, error)

	// Put 插入或按 ID 覆盖章节
	Put(ctx context.Context, chapter *entity.Chapter) error

	// All 返回全部章节的快照
	All(ctx context.Context) ([]*entity.Chapter, error)

	// ListByStory 获取故事的章节（按章节号升序）
	ListByStory(ctx context.Context, storyID string) ([]*entity.Chapter, error)
}
