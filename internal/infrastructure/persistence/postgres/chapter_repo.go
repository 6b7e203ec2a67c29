package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fiction-catalog-api/internal/domain/entity"
	"fiction-catalog-api/internal/domain/repository"
)

// ChapterRepository 章节仓储实现
type ChapterRepository struct {
	client *Client
}

// NewChapterRepository 创建章节仓储
func NewChapterRepository(client *Client) *ChapterRepository {
	return &ChapterRepository{client: client}
}

// Get 根据 ID 获取章节
func (r *ChapterRepository) Get(ctx context.Context, id string) (*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.Get")
	defer span.End()

	if !isUUID(id) {
		return nil, nil
	}
	db := getDB(ctx, r.client.db)
	var rec chapterRecord
	if err := db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	return rec.toEntity(), nil
}

// Put 插入或按 ID 覆盖章节
func (r *ChapterRepository) Put(ctx context.Context, chapter *entity.Chapter) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.Put")
	defer span.End()

	db := getDB(ctx, r.client.db)
	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"story_id", "title", "content", "chapter_number", "word_count", "created_at"}),
	}).Create(newChapterRecord(chapter)).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to put chapter: %w", err)
	}
	return nil
}

// All 按插入顺序返回全部章节
func (r *ChapterRepository) All(ctx context.Context) ([]*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.All")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var recs []chapterRecord
	if err := db.Order("seq ASC").Find(&recs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return toChapters(recs), nil
}

// ListByStory 获取故事的章节（按章节号升序，同号按插入顺序）
func (r *ChapterRepository) ListByStory(ctx context.Context, storyID string) ([]*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.ListByStory")
	defer span.End()

	if !isUUID(storyID) {
		return []*entity.Chapter{}, nil
	}
	db := getDB(ctx, r.client.db)
	var recs []chapterRecord
	if err := db.Where("story_id = ?", storyID).
		Order("chapter_number ASC").
		Order("seq ASC").
		Find(&recs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list chapters by story: %w", err)
	}
	return toChapters(recs), nil
}

func toChapters(recs []chapterRecord) []*entity.Chapter {
	chapters := make([]*entity.Chapter, len(recs))
	for i := range recs {
		chapters[i] = recs[i].toEntity()
	}
	return chapters
}

var _ repository.ChapterRepository = (*ChapterRepository)(nil)
