package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"fiction-catalog-api/internal/application/catalog"
	"fiction-catalog-api/internal/domain/entity"
	"fiction-catalog-api/internal/infrastructure/persistence/memory"
	"fiction-catalog-api/internal/interfaces/http/dto"
)

type envelope[T any] struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Data    T             `json:"data"`
	Meta    *dto.PageMeta `json:"meta"`
}

type testServer struct {
	engine *gin.Engine
	store  *memory.Store
	svc    *catalog.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	if _, err := catalog.NewSeeder(store.Stories(), store.Chapters(), nil).Seed(context.Background(), catalog.DefaultSeed()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := catalog.NewService(store.Stories(), store.Chapters(), nil)

	stories := NewStoryHandler(svc)
	chapters := NewChapterHandler(svc)
	stats := NewStatsHandler(svc, nil)
	health := NewHealthHandler("memory", store, nil, "test")

	r := gin.New()
	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	r.GET("/api/stories", stories.ListStories)
	r.POST("/api/stories", stories.CreateStory)
	r.GET("/api/stories/:id", stories.GetStory)
	r.POST("/api/stories/:id/view", stories.RecordView)
	r.POST("/api/stories/:id/like", stories.LikeStory)
	r.GET("/api/stories/:id/chapters", stories.ListChapters)
	r.POST("/api/stories/:id/chapters", stories.CreateChapter)
	r.GET("/api/chapters/:id", chapters.GetChapter)
	r.GET("/api/stats", stats.Overview)
	r.GET("/api/stats/genres", stats.GenreStats)
	r.GET("/api/stats/fandoms", stats.FandomStats)
	r.GET("/api/stats/trending", stats.Trending)
	r.GET("/api/genres", stats.Genres)
	r.GET("/api/sort-options", stats.SortOptions)

	return &testServer{engine: r, store: store, svc: svc}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var out envelope[T]
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func (s *testServer) firstStory(t *testing.T) *entity.Story {
	t.Helper()
	all, err := s.store.Stories().All(context.Background())
	if err != nil || len(all) == 0 {
		t.Fatalf("no seeded stories: %v", err)
	}
	return all[0]
}

func TestListStoriesDefaults(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/stories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decode[[]dto.StoryResponse](t, w)
	if len(resp.Data) != 7 {
		t.Fatalf("got %d stories, want 7", len(resp.Data))
	}
	if resp.Meta == nil || resp.Meta.Total != 7 || resp.Meta.Limit != 20 || resp.Meta.HasMore {
		t.Fatalf("meta = %+v", resp.Meta)
	}
}

func TestListStoriesPopularPaged(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/stories?sortBy=popular&limit=2&offset=1", nil)
	resp := decode[[]dto.StoryResponse](t, w)
	if len(resp.Data) != 2 {
		t.Fatalf("got %d stories, want 2", len(resp.Data))
	}
	if resp.Data[0].Likes != 1240 || resp.Data[1].Likes != 1200 {
		t.Fatalf("likes = %d, %d", resp.Data[0].Likes, resp.Data[1].Likes)
	}
	if !resp.Meta.HasMore {
		t.Fatalf("expected has_more")
	}
}

func TestListStoriesFilters(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/stories?genre=fantasy", nil)
	resp := decode[[]dto.StoryResponse](t, w)
	if len(resp.Data) != 2 {
		t.Fatalf("fantasy: got %d, want 2", len(resp.Data))
	}

	w = s.do(t, http.MethodGet, "/api/stories?fandom=Original%20Fiction&search=summit", nil)
	resp = decode[[]dto.StoryResponse](t, w)
	if len(resp.Data) != 1 || resp.Data[0].Title != "Beyond the Summit" {
		t.Fatalf("fandom+search: %+v", resp.Data)
	}

	w = s.do(t, http.MethodGet, "/api/stories?limit=abc&offset=100", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("lenient params: status = %d", w.Code)
	}
	resp = decode[[]dto.StoryResponse](t, w)
	if resp.Data == nil || len(resp.Data) != 0 {
		t.Fatalf("offset past end should give empty list, got %v", resp.Data)
	}
}

func TestGetStoryRecordsView(t *testing.T) {
	s := newTestServer(t)
	story := s.firstStory(t)

	w := s.do(t, http.MethodGet, "/api/stories/"+story.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decode[dto.StoryResponse](t, w)
	if resp.Data.Views != story.Views {
		t.Fatalf("response views = %d, want pre-increment %d", resp.Data.Views, story.Views)
	}

	after, _ := s.store.Stories().Get(context.Background(), story.ID)
	if after.Views != story.Views+1 {
		t.Fatalf("stored views = %d, want %d", after.Views, story.Views+1)
	}
}

func TestGetStoryNotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/stories/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/chapters/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("chapter status = %d, want 404", w.Code)
	}
}

func TestLikeAndViewAreSilentForUnknownStory(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/stories/missing/like", map[string]bool{"increment": true})
	if w.Code != http.StatusOK {
		t.Fatalf("like status = %d", w.Code)
	}
	if resp := decode[dto.MessageResponse](t, w); resp.Data.Message != "Story like updated" {
		t.Fatalf("message = %q", resp.Data.Message)
	}

	w = s.do(t, http.MethodPost, "/api/stories/missing/view", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("view status = %d", w.Code)
	}
}

func TestLikeRoundTrip(t *testing.T) {
	s := newTestServer(t)
	story := s.firstStory(t)
	path := "/api/stories/" + story.ID + "/like"

	s.do(t, http.MethodPost, path, map[string]bool{"increment": true})
	got, _ := s.store.Stories().Get(context.Background(), story.ID)
	if got.Likes != story.Likes+1 {
		t.Fatalf("likes after like = %d", got.Likes)
	}

	// 缺省 body 视为取消点赞
	s.do(t, http.MethodPost, path, nil)
	got, _ = s.store.Stories().Get(context.Background(), story.ID)
	if got.Likes != story.Likes {
		t.Fatalf("likes after unlike = %d, want %d", got.Likes, story.Likes)
	}
}

func TestLikeWithChunkedEmptyBodyUnlikes(t *testing.T) {
	s := newTestServer(t)
	story := s.firstStory(t)
	path := "/api/stories/" + story.ID + "/like"

	s.do(t, http.MethodPost, path, map[string]bool{"increment": true})

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(""))
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}

	got, _ := s.store.Stories().Get(context.Background(), story.ID)
	if got.Likes != story.Likes {
		t.Fatalf("likes = %d, want %d", got.Likes, story.Likes)
	}
}

func TestLikeRejectsMalformedBody(t *testing.T) {
	s := newTestServer(t)
	story := s.firstStory(t)

	req := httptest.NewRequest(http.MethodPost, "/api/stories/"+story.ID+"/like", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestChaptersForStory(t *testing.T) {
	s := newTestServer(t)
	story := s.firstStory(t)

	w := s.do(t, http.MethodGet, "/api/stories/"+story.ID+"/chapters", nil)
	resp := decode[[]dto.ChapterResponse](t, w)
	if len(resp.Data) != 1 || resp.Data[0].ChapterNumber != 1 {
		t.Fatalf("chapters = %+v", resp.Data)
	}

	w = s.do(t, http.MethodGet, "/api/chapters/"+resp.Data[0].ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get chapter status = %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/stories/missing/chapters", nil)
	empty := decode[[]dto.ChapterResponse](t, w)
	if w.Code != http.StatusOK || empty.Data == nil || len(empty.Data) != 0 {
		t.Fatalf("unknown story chapters: status %d data %v", w.Code, empty.Data)
	}
}

func TestCreateStoryAndChapter(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/stories", map[string]any{
		"title":       "New Tale",
		"description": "A fresh story",
		"author":      "Someone",
		"genre":       "Drama",
		"fandom":      "Original Fiction",
		"tags":        []string{"new"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create story status = %d, body = %s", w.Code, w.Body.String())
	}
	created := decode[dto.StoryResponse](t, w)
	if created.Data.ID == "" || created.Data.Likes != 0 || created.Data.Views != 0 {
		t.Fatalf("created = %+v", created.Data)
	}

	w = s.do(t, http.MethodPost, "/api/stories/"+created.Data.ID+"/chapters", map[string]any{
		"title":          "Opening",
		"content":        "one two three",
		"chapter_number": 1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create chapter status = %d, body = %s", w.Code, w.Body.String())
	}
	chapter := decode[dto.ChapterResponse](t, w)
	if chapter.Data.WordCount != 3 {
		t.Fatalf("word count = %d, want 3", chapter.Data.WordCount)
	}
}

func TestCreateValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/stories", map[string]any{
		"title": "x", "description": "y", "author": "z", "genre": "Horror", "fandom": "f",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown genre status = %d, want 400", w.Code)
	}

	w = s.do(t, http.MethodPost, "/api/stories", map[string]any{"title": "missing fields"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing fields status = %d, want 400", w.Code)
	}

	w = s.do(t, http.MethodPost, "/api/stories/missing/chapters", map[string]any{
		"title": "t", "content": "c", "chapter_number": 1,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("chapter for unknown story status = %d, want 404", w.Code)
	}
}

func TestStatsEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/stats/genres", nil)
	genres := decode[[]entity.GenreStat](t, w)
	total := 0
	for _, g := range genres.Data {
		total += g.Count
	}
	if total != 7 {
		t.Fatalf("genre counts sum to %d, want 7", total)
	}
	if genres.Data[0].Genre != "Fantasy" || genres.Data[0].Count != 2 {
		t.Fatalf("top genre = %+v", genres.Data[0])
	}

	w = s.do(t, http.MethodGet, "/api/stats/fandoms", nil)
	fandoms := decode[[]entity.FandomStat](t, w)
	if fandoms.Data[0].Fandom != "Original Fiction" || fandoms.Data[0].Count != 3 {
		t.Fatalf("top fandom = %+v", fandoms.Data[0])
	}

	w = s.do(t, http.MethodGet, "/api/stats", nil)
	overview := decode[dto.StatsResponse](t, w)
	if len(overview.Data.Genres) != len(genres.Data) || len(overview.Data.Fandoms) != len(fandoms.Data) {
		t.Fatalf("overview = %+v", overview.Data)
	}
}

func TestTrendingDisabled(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/stats/trending", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestVocabularies(t *testing.T) {
	s := newTestServer(t)

	genres := decode[[]dto.GenreResponse](t, s.do(t, http.MethodGet, "/api/genres", nil))
	if len(genres.Data) != 6 || genres.Data[4].Slug != "scifi" {
		t.Fatalf("genres = %+v", genres.Data)
	}

	opts := decode[[]dto.SortOptionResponse](t, s.do(t, http.MethodGet, "/api/sort-options", nil))
	if len(opts.Data) != 4 || opts.Data[1].Value != "popular" {
		t.Fatalf("sort options = %+v", opts.Data)
	}
}

type failingChecker struct{}

func (failingChecker) HealthCheck(ctx context.Context) error { return errors.New("down") }

func TestReady(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/ready", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ready status = %d, body = %s", w.Code, w.Body.String())
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHealthHandler("postgres", failingChecker{}, nil, "test")
	r.GET("/ready", h.Ready)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("failing storage status = %d, want 503", w.Code)
	}
}
