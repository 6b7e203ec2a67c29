package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fiction-catalog-api/internal/domain/entity"
	"fiction-catalog-api/internal/domain/repository"
)

// 覆盖写入时更新的列，id 与 seq 保持不变
var storyUpsertColumns = []string{
	"title", "description", "author", "genre", "fandom", "word_count", "chapter_count",
	"is_complete", "last_updated", "likes", "views", "cover_image", "tags",
}

// StoryRepository 故事仓储实现
type StoryRepository struct {
	client *Client
}

// NewStoryRepository 创建故事仓储
func NewStoryRepository(client *Client) *StoryRepository {
	return &StoryRepository{client: client}
}

// Get 根据 ID 获取故事
func (r *StoryRepository) Get(ctx context.Context, id string) (*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.Get")
	defer span.End()

	if !isUUID(id) {
		return nil, nil
	}
	db := getDB(ctx, r.client.db)
	var rec storyRecord
	if err := db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return rec.toEntity(), nil
}

// Put 插入或按 ID 覆盖故事
func (r *StoryRepository) Put(ctx context.Context, story *entity.Story) error {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.Put")
	defer span.End()

	db := getDB(ctx, r.client.db)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(storyUpsertColumns),
	}).Create(newStoryRecord(story)).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to put story: %w", err)
	}
	return nil
}

// All 按插入顺序返回全部故事
func (r *StoryRepository) All(ctx context.Context) ([]*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.All")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var recs []storyRecord
	if err := db.Order("seq ASC").Find(&recs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}

	stories := make([]*entity.Story, len(recs))
	for i := range recs {
		stories[i] = recs[i].toEntity()
	}
	span.SetAttributes(attribute.Int("stories.count", len(stories)))
	return stories, nil
}

// IncrementViews 浏览数 +1
func (r *StoryRepository) IncrementViews(ctx context.Context, id string) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.IncrementViews")
	defer span.End()

	return r.bump(ctx, id, "views", 1)
}

// AdjustLikes 点赞数增加 delta
func (r *StoryRepository) AdjustLikes(ctx context.Context, id string, delta int) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.AdjustLikes")
	defer span.End()

	return r.bump(ctx, id, "likes", delta)
}

// bump 单条 UPDATE 原子更新计数列
func (r *StoryRepository) bump(ctx context.Context, id, column string, delta int) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	db := getDB(ctx, r.client.db)
	result := db.Model(&storyRecord{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if result.Error != nil {
		return false, fmt.Errorf("failed to update story %s: %w", column, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Count 返回故事总数
func (r *StoryRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.Count")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var count int64
	if err := db.Model(&storyRecord{}).Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count stories: %w", err)
	}
	return count, nil
}

var _ repository.StoryRepository = (*StoryRepository)(nil)
