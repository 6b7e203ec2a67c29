package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"fiction-catalog-api/internal/domain/entity"
	"fiction-catalog-api/internal/domain/repository"
	"fiction-catalog-api/pkg/logger"
)

const (
	sampleChapterTitle     = "Chapter 1: The Beginning"
	sampleChapterWordCount = 1200
)

// SeedChapter 种子章节
type SeedChapter struct {
	Title         string `yaml:"title"`
	Content       string `yaml:"content"`
	ChapterNumber int    `yaml:"chapter_number"`
	WordCount     int    `yaml:"word_count"`
}

// SeedStory 种子故事，UpdatedAgo 为相对启动时间的偏移
type SeedStory struct {
	Title        string        `yaml:"title"`
	Description  string        `yaml:"description"`
	Author       string        `yaml:"author"`
	Genre        string        `yaml:"genre"`
	Fandom       string        `yaml:"fandom"`
	WordCount    int           `yaml:"word_count"`
	ChapterCount int           `yaml:"chapter_count"`
	IsComplete   bool          `yaml:"is_complete"`
	UpdatedAgo   time.Duration `yaml:"updated_ago"`
	Likes        int           `yaml:"likes"`
	Views        int           `yaml:"views"`
	CoverImage   string        `yaml:"cover_image"`
	Tags         []string      `yaml:"tags"`
	// Chapters 为空时生成一章示例章节
	Chapters []SeedChapter `yaml:"chapters"`
}

type seedFile struct {
	Stories []SeedStory `yaml:"stories"`
}

// LoadSeedFile 从 YAML 文件读取种子数据
func LoadSeedFile(path string) ([]SeedStory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, s := range f.Stories {
		if !entity.Genre(s.Genre).IsValid() {
			return nil, fmt.Errorf("seed story %d (%q): unknown genre %q", i, s.Title, s.Genre)
		}
	}
	return f.Stories, nil
}

// Seeder 写入种子数据
type Seeder struct {
	stories  repository.StoryRepository
	chapters repository.ChapterRepository
	tx       repository.Transactor
	now      func() time.Time
}

// NewSeeder 创建 Seeder，tx 为 nil 时不开启事务
func NewSeeder(stories repository.StoryRepository, chapters repository.ChapterRepository, tx repository.Transactor) *Seeder {
	return &Seeder{
		stories:  stories,
		chapters: chapters,
		tx:       tx,
		now:      time.Now,
	}
}

// SeedIfEmpty 仅在没有任何故事时写入，返回写入的故事数
func (s *Seeder) SeedIfEmpty(ctx context.Context, fixtures []SeedStory) (int, error) {
	n, err := s.stories.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info(ctx, "catalog already populated, skip seeding", "stories", n)
		return 0, nil
	}
	return s.Seed(ctx, fixtures)
}

// Seed 写入种子故事及其章节，ID 随机生成，时间相对当前时间
func (s *Seeder) Seed(ctx context.Context, fixtures []SeedStory) (int, error) {
	now := s.now()
	write := func(ctx context.Context) error {
		for _, f := range fixtures {
			story, chapters := buildSeed(f, now)
			if err := s.stories.Put(ctx, story); err != nil {
				return fmt.Errorf("failed to seed story %q: %w", f.Title, err)
			}
			for _, ch := range chapters {
				if err := s.chapters.Put(ctx, ch); err != nil {
					return fmt.Errorf("failed to seed chapter for %q: %w", f.Title, err)
				}
			}
		}
		return nil
	}

	var err error
	if s.tx != nil {
		err = s.tx.WithTransaction(ctx, write)
	} else {
		err = write(ctx)
	}
	if err != nil {
		return 0, err
	}
	logger.Info(ctx, "catalog seeded", "stories", len(fixtures))
	return len(fixtures), nil
}

func buildSeed(f SeedStory, now time.Time) (*entity.Story, []*entity.Chapter) {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	story := &entity.Story{
		ID:           uuid.New().String(),
		Title:        f.Title,
		Description:  f.Description,
		Author:       f.Author,
		Genre:        entity.Genre(f.Genre),
		Fandom:       f.Fandom,
		WordCount:    f.WordCount,
		ChapterCount: f.ChapterCount,
		IsComplete:   f.IsComplete,
		LastUpdated:  now.Add(-f.UpdatedAgo),
		Likes:        f.Likes,
		Views:        f.Views,
		CoverImage:   f.CoverImage,
		Tags:         append([]string(nil), tags...),
	}

	specs := f.Chapters
	if len(specs) == 0 {
		specs = []SeedChapter{{
			Title:         sampleChapterTitle,
			Content:       sampleChapterContent(story),
			ChapterNumber: 1,
			WordCount:     sampleChapterWordCount,
		}}
	}

	chapters := make([]*entity.Chapter, 0, len(specs))
	for i, sc := range specs {
		number := sc.ChapterNumber
		if number <= 0 {
			number = i + 1
		}
		wc := sc.WordCount
		if wc <= 0 {
			wc = entity.CountWords(sc.Content)
		}
		chapters = append(chapters, &entity.Chapter{
			ID:            uuid.New().String(),
			StoryID:       story.ID,
			Title:         sc.Title,
			Content:       sc.Content,
			ChapterNumber: number,
			WordCount:     wc,
			CreatedAt:     story.LastUpdated,
		})
	}
	return story, chapters
}

func sampleChapterContent(s *entity.Story) string {
	paragraphs := []string{
		fmt.Sprintf("The morning mist clung to the ancient stones like secrets whispered between generations. %s's masterpiece begins here, drawing readers into a world of %s and wonder.",
			s.Author, strings.ToLower(string(s.Genre))),
		fmt.Sprintf("This is the opening chapter of %q, where our journey truly begins. The author has crafted a compelling narrative that will keep you turning pages late into the night.",
			s.Title),
		"As you read further, you'll discover the intricate plot threads that weave together to create this unforgettable story. Each chapter builds upon the last, creating a rich tapestry of characters and events that will stay with you long after you've finished reading.",
		fmt.Sprintf("The story continues to unfold with each passing page, revealing new depths and complexities that make this tale truly special. Whether you're a long-time fan of %s or new to the genre, this story offers something for everyone.",
			s.Fandom),
		"Join us on this incredible journey as we explore themes of love, loss, adventure, and discovery. The author's unique voice shines through every sentence, creating an immersive experience that transports you directly into the heart of the story.",
	}
	return strings.Join(paragraphs, "\n\n")
}

// DefaultSeed 内置的七个示例故事
func DefaultSeed() []SeedStory {
	const day = 24 * time.Hour
	return []SeedStory{
		{
			Title:        "The Enchanted Academy",
			Description:  "A captivating tale of magic, friendship, and discovery in a hidden world where nothing is as it seems...",
			Author:       "moonwriter",
			Genre:        string(entity.GenreFantasy),
			Fandom:       "Harry Potter",
			WordCount:    124000,
			ChapterCount: 24,
			UpdatedAgo:   2 * day,
			Likes:        1240,
			Views:        8920,
			CoverImage:   "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=400",
			Tags:         []string{"magic", "friendship", "adventure", "school"},
		},
		{
			Title:        "Moonlight Confessions",
			Description:  "When Sarah returns to her hometown, she never expected to find her childhood friend has become the town's most eligible bachelor...",
			Author:       "romanticwriter",
			Genre:        string(entity.GenreRomance),
			Fandom:       "Original Fiction",
			WordCount:    45200,
			ChapterCount: 12,
			UpdatedAgo:   2 * day,
			Likes:        892,
			Views:        12400,
			CoverImage:   "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=600",
			Tags:         []string{"romance", "hometown", "second-chance", "small-town"},
		},
		{
			Title:        "The Dragon's Apprentice",
			Description:  "In a world where magic is forbidden, young Elara discovers she has the power to communicate with dragons...",
			Author:       "fantasylover",
			Genre:        string(entity.GenreFantasy),
			Fandom:       "Dragon Age",
			WordCount:    78900,
			ChapterCount: 18,
			UpdatedAgo:   5 * time.Hour,
			Likes:        1200,
			Views:        18700,
			CoverImage:   "https://images.unsplash.com/photo-1578662996442-48f60103fc96?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=600",
			Tags:         []string{"dragons", "magic", "forbidden", "coming-of-age"},
		},
		{
			Title:        "The Missing Manuscript",
			Description:  "Detective Carter's latest case involves a famous author whose manuscript has disappeared under mysterious circumstances...",
			Author:       "mysterymaker",
			Genre:        string(entity.GenreMystery),
			Fandom:       "Sherlock Holmes",
			WordCount:    32100,
			ChapterCount: 8,
			UpdatedAgo:   1 * day,
			Likes:        567,
			Views:        8900,
			CoverImage:   "https://images.unsplash.com/photo-1455390582262-044cdead277a?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=600",
			Tags:         []string{"detective", "mystery", "manuscript", "investigation"},
		},
		{
			Title:        "Beyond the Summit",
			Description:  "Three friends embark on the journey of a lifetime, climbing the world's most dangerous peak to fulfill a promise...",
			Author:       "peakclimber",
			Genre:        string(entity.GenreAdventure),
			Fandom:       "Original Fiction",
			WordCount:    95600,
			ChapterCount: 22,
			IsComplete:   true,
			UpdatedAgo:   3 * day,
			Likes:        2100,
			Views:        34500,
			CoverImage:   "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=600",
			Tags:         []string{"adventure", "friendship", "mountain-climbing", "promise"},
		},
		{
			Title:        "Stellar Echoes",
			Description:  "Captain Nova receives a mysterious signal from the edge of known space, leading her crew into uncharted territory...",
			Author:       "starwriter",
			Genre:        string(entity.GenreSciFi),
			Fandom:       "Star Trek",
			WordCount:    67300,
			ChapterCount: 15,
			UpdatedAgo:   6 * time.Hour,
			Likes:        945,
			Views:        15200,
			CoverImage:   "https://images.unsplash.com/photo-1446776877081-d282a0f896e2?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=600",
			Tags:         []string{"space", "exploration", "mystery", "crew"},
		},
		{
			Title:        "Shattered Glass",
			Description:  "A family's perfect facade begins to crumble when long-buried secrets start to surface during a reunion...",
			Author:       "dramaqueen",
			Genre:        string(entity.GenreDrama),
			Fandom:       "Original Fiction",
			WordCount:    54800,
			ChapterCount: 11,
			UpdatedAgo:   12 * time.Hour,
			Likes:        723,
			Views:        11600,
			CoverImage:   "https://images.unsplash.com/photo-1524995997946-a1c2e315a42f?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=600",
			Tags:         []string{"family", "secrets", "drama", "reunion"},
		},
	}
}
