package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"fiction-catalog-api/internal/domain/entity"
)

// isUUID 判断 ID 能否匹配 uuid 列，不能匹配的 ID 视为不存在
func isUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// storyRecord stories 表映射
type storyRecord struct {
	ID           string         `gorm:"primaryKey;type:uuid"`
	Title        string         `gorm:"not null"`
	Description  string         `gorm:"type:text"`
	Author       string         `gorm:"not null;index"`
	Genre        string         `gorm:"not null;index"`
	Fandom       string         `gorm:"not null;index"`
	WordCount    int            `gorm:"not null;default:0"`
	ChapterCount int            `gorm:"not null;default:0"`
	IsComplete   bool           `gorm:"not null;default:false"`
	LastUpdated  time.Time      `gorm:"not null;index"`
	Likes        int            `gorm:"not null;default:0"`
	Views        int            `gorm:"not null;default:0"`
	CoverImage   string         `gorm:"type:text"`
	Tags         pq.StringArray `gorm:"type:text[]"`
	// 插入序号，全量快照按此排序
	Seq int64 `gorm:"autoIncrement;uniqueIndex"`
}

func (storyRecord) TableName() string { return "stories" }

func newStoryRecord(s *entity.Story) *storyRecord {
	return &storyRecord{
		ID:           s.ID,
		Title:        s.Title,
		Description:  s.Description,
		Author:       s.Author,
		Genre:        string(s.Genre),
		Fandom:       s.Fandom,
		WordCount:    s.WordCount,
		ChapterCount: s.ChapterCount,
		IsComplete:   s.IsComplete,
		LastUpdated:  s.LastUpdated,
		Likes:        s.Likes,
		Views:        s.Views,
		CoverImage:   s.CoverImage,
		Tags:         pq.StringArray(append([]string{}, s.Tags...)),
	}
}

func (r *storyRecord) toEntity() *entity.Story {
	tags := make([]string, len(r.Tags))
	copy(tags, r.Tags)
	return &entity.Story{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Author:       r.Author,
		Genre:        entity.Genre(r.Genre),
		Fandom:       r.Fandom,
		WordCount:    r.WordCount,
		ChapterCount: r.ChapterCount,
		IsComplete:   r.IsComplete,
		LastUpdated:  r.LastUpdated,
		Likes:        r.Likes,
		Views:        r.Views,
		CoverImage:   r.CoverImage,
		Tags:         tags,
	}
}

// chapterRecord chapters 表映射
type chapterRecord struct {
	ID            string    `gorm:"primaryKey;type:uuid"`
	StoryID       string    `gorm:"type:uuid;not null;index:idx_chapters_story_number,priority:1"`
	Title         string    `gorm:"not null"`
	Content       string    `gorm:"type:text"`
	ChapterNumber int       `gorm:"not null;index:idx_chapters_story_number,priority:2"`
	WordCount     int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
	Seq           int64     `gorm:"autoIncrement;uniqueIndex"`

	Story *storyRecord `gorm:"foreignKey:StoryID;references:ID;constraint:OnDelete:CASCADE"`
}

func (chapterRecord) TableName() string { return "chapters" }

func newChapterRecord(c *entity.Chapter) *chapterRecord {
	return &chapterRecord{
		ID:            c.ID,
		StoryID:       c.StoryID,
		Title:         c.Title,
		Content:       c.Content,
		ChapterNumber: c.ChapterNumber,
		WordCount:     c.WordCount,
		CreatedAt:     c.CreatedAt,
	}
}

func (r *chapterRecord) toEntity() *entity.Chapter {
	return &entity.Chapter{
		ID:            r.ID,
		StoryID:       r.StoryID,
		Title:         r.Title,
		Content:       r.Content,
		ChapterNumber: r.ChapterNumber,
		WordCount:     r.WordCount,
		CreatedAt:     r.CreatedAt,
	}
}
