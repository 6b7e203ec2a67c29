package catalog

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"fiction-catalog-api/internal/domain/entity"
	"fiction-catalog-api/internal/domain/repository"
	apperrors "fiction-catalog-api/pkg/errors"
	"fiction-catalog-api/pkg/logger"
	"fiction-catalog-api/pkg/metrics"
	"fiction-catalog-api/pkg/tracer"
)

// EngagementPublisher 互动事件发布端口，发布失败不影响计数
type EngagementPublisher interface {
	PublishEngagement(ctx context.Context, event *entity.EngagementEvent) (string, error)
}

// Service 故事目录服务
type Service struct {
	stories   repository.StoryRepository
	chapters  repository.ChapterRepository
	publisher EngagementPublisher
}

// NewService 创建目录服务，publisher 可为 nil
func NewService(stories repository.StoryRepository, chapters repository.ChapterRepository, publisher EngagementPublisher) *Service {
	return &Service{
		stories:   stories,
		chapters:  chapters,
		publisher: publisher,
	}
}

// ListStories 查询故事列表
func (s *Service) ListStories(ctx context.Context, opts QueryOptions) (Page, error) {
	opts = opts.Normalize()
	ctx, span := tracer.Start(ctx, "catalog.Service.ListStories")
	defer span.End()
	span.SetAttributes(
		attribute.String("catalog.sort_by", string(opts.SortBy)),
		attribute.Int("catalog.limit", opts.Limit),
		attribute.Int("catalog.offset", opts.Offset),
	)

	start := time.Now()
	snapshot, err := s.stories.All(ctx)
	if err != nil {
		span.RecordError(err)
		return Page{}, err
	}
	metrics.StoriesTotal.Set(float64(len(snapshot)))

	page := QueryStories(snapshot, opts)

	metrics.CatalogQueryDuration.WithLabelValues(string(opts.SortBy)).Observe(time.Since(start).Seconds())
	metrics.CatalogQueryResults.Observe(float64(len(page.Stories)))
	span.SetAttributes(attribute.Int("catalog.total", page.Total))
	return page, nil
}

// GetStory 获取故事，不存在返回 (nil, nil)
func (s *Service) GetStory(ctx context.Context, id string) (*entity.Story, error) {
	return s.stories.Get(ctx, id)
}

// ViewStory 读取故事并记录一次浏览，返回浏览前的记录
func (s *Service) ViewStory(ctx context.Context, id string) (*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "catalog.Service.ViewStory")
	defer span.End()

	story, err := s.stories.Get(ctx, id)
	if err != nil || story == nil {
		return nil, err
	}
	if err := s.RecordView(ctx, id); err != nil {
		return nil, err
	}
	return story, nil
}

// RecordView 浏览数 +1，未知 ID 静默忽略
func (s *Service) RecordView(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "catalog.Service.RecordView")
	defer span.End()
	span.SetAttributes(attribute.String("story.id", id))

	found, err := s.stories.IncrementViews(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !found {
		return nil
	}

	metrics.StoryViewsTotal.Inc()
	s.publish(ctx, entity.NewEngagementEvent(entity.EngagementViewed, id, 1))
	return nil
}

// AdjustLikes increment 为 true 点赞 +1，否则 -1；未知 ID 静默忽略，没有下限
func (s *Service) AdjustLikes(ctx context.Context, id string, increment bool) error {
	ctx, span := tracer.Start(ctx, "catalog.Service.AdjustLikes")
	defer span.End()
	span.SetAttributes(attribute.String("story.id", id), attribute.Bool("like.increment", increment))

	delta, direction, eventType := 1, "up", entity.EngagementLiked
	if !increment {
		delta, direction, eventType = -1, "down", entity.EngagementUnliked
	}

	found, err := s.stories.AdjustLikes(ctx, id, delta)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !found {
		return nil
	}

	metrics.StoryLikeAdjustmentsTotal.WithLabelValues(direction).Inc()
	s.publish(ctx, entity.NewEngagementEvent(eventType, id, delta))
	return nil
}

func (s *Service) publish(ctx context.Context, event *entity.EngagementEvent) {
	if s.publisher == nil {
		return
	}
	if _, err := s.publisher.PublishEngagement(ctx, event); err != nil {
		logger.Warn(ctx, "failed to publish engagement event",
			"type", string(event.Type),
			"story_id", event.StoryID,
			"error", err.Error(),
		)
	}
}

// ListChapters 获取故事章节（按章节号升序），未知故事返回空列表
func (s *Service) ListChapters(ctx context.Context, storyID string) ([]*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "catalog.Service.ListChapters")
	defer span.End()

	chapters, err := s.chapters.ListByStory(ctx, storyID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if chapters == nil {
		chapters = []*entity.Chapter{}
	}
	return chapters, nil
}

// GetChapter 获取章节，不存在返回 (nil, nil)
func (s *Service) GetChapter(ctx context.Context, id string) (*entity.Chapter, error) {
	return s.chapters.Get(ctx, id)
}

// CreateStoryInput 创建故事参数
type CreateStoryInput struct {
	Title        string
	Description  string
	Author       string
	Genre        entity.Genre
	Fandom       string
	WordCount    int
	ChapterCount int
	IsComplete   bool
	CoverImage   string
	Tags         []string
}

// CreateStory 创建故事：分配 ID，更新时间取当前时间，计数归零
func (s *Service) CreateStory(ctx context.Context, in CreateStoryInput) (*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "catalog.Service.CreateStory")
	defer span.End()

	if !in.Genre.IsValid() {
		return nil, apperrors.ErrValidationFailed.WithDetail(fmt.Sprintf("unknown genre %q", in.Genre))
	}
	if in.WordCount < 0 || in.ChapterCount < 0 {
		return nil, apperrors.ErrValidationFailed.WithDetail("word_count and chapter_count must be non-negative")
	}

	story := entity.NewStory(in.Title, in.Description, in.Author, in.Genre, in.Fandom)
	story.WordCount = in.WordCount
	story.ChapterCount = in.ChapterCount
	story.IsComplete = in.IsComplete
	story.CoverImage = in.CoverImage
	if in.Tags != nil {
		story.Tags = append([]string(nil), in.Tags...)
	}

	if err := s.stories.Put(ctx, story); err != nil {
		span.RecordError(err)
		return nil, err
	}
	logger.Info(ctx, "story created", "story_id", story.ID, "genre", string(story.Genre))
	return story, nil
}

// CreateChapterInput 创建章节参数，WordCount 为 0 时按内容计算
type CreateChapterInput struct {
	StoryID       string
	Title         string
	Content       string
	ChapterNumber int
	WordCount     int
}

// CreateChapter 创建章节，所属故事必须存在
func (s *Service) CreateChapter(ctx context.Context, in CreateChapterInput) (*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "catalog.Service.CreateChapter")
	defer span.End()

	if in.ChapterNumber <= 0 {
		return nil, apperrors.ErrValidationFailed.WithDetail("chapter_number must be positive")
	}
	story, err := s.stories.Get(ctx, in.StoryID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if story == nil {
		return nil, apperrors.ErrStoryNotFound
	}

	chapter := entity.NewChapter(in.StoryID, in.ChapterNumber, in.Title, in.Content)
	if in.WordCount > 0 {
		chapter.WordCount = in.WordCount
	}
	if err := s.chapters.Put(ctx, chapter); err != nil {
		span.RecordError(err)
		return nil, err
	}
	logger.Info(ctx, "chapter created", "story_id", in.StoryID, "chapter_id", chapter.ID)
	return chapter, nil
}

// GenreStats 按类型统计，每次调用重新计算
func (s *Service) GenreStats(ctx context.Context) ([]entity.GenreStat, error) {
	ctx, span := tracer.Start(ctx, "catalog.Service.GenreStats")
	defer span.End()

	snapshot, err := s.stories.All(ctx)
	if err != nil {
		return nil, err
	}
	return GenreStats(snapshot), nil
}

// FandomStats 按同人圈统计，每次调用重新计算
func (s *Service) FandomStats(ctx context.Context) ([]entity.FandomStat, error) {
	ctx, span := tracer.Start(ctx, "catalog.Service.FandomStats")
	defer span.End()

	snapshot, err := s.stories.All(ctx)
	if err != nil {
		return nil, err
	}
	return FandomStats(snapshot), nil
}

// Overview 合并统计
type Overview struct {
	Genres  []entity.GenreStat
	Fandoms []entity.FandomStat
}

// Overview 并发计算两类统计
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var out Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.GenreStats(gctx)
		out.Genres = stats
		return err
	})
	g.Go(func() error {
		stats, err := s.FandomStats(gctx)
		out.Fandoms = stats
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
