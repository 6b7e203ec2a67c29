package memory

import (
	"context"
	"sync"
	"testing"

	"fiction-catalog-api/internal/domain/entity"
)

func newStory(title string) *entity.Story {
	s := entity.NewStory(title, "desc", "author", entity.GenreFantasy, "Original Fiction")
	s.Tags = []string{"a", "b"}
	return s
}

func TestGetUnknownReturnsNil(t *testing.T) {
	store := NewStore()
	got, err := store.Stories().Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
	ch, err := store.Chapters().Get(context.Background(), "missing")
	if err != nil || ch != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", ch, err)
	}
}

func TestPutOverwritesByID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Stories()

	s := newStory("first")
	if err := repo.Put(ctx, s); err != nil {
		t.Fatalf("put: %v", err)
	}
	s.Title = "second"
	if err := repo.Put(ctx, s); err != nil {
		t.Fatalf("put: %v", err)
	}

	all, _ := repo.All(ctx)
	if len(all) != 1 {
		t.Fatalf("expected 1 story after overwrite, got %d", len(all))
	}
	if all[0].Title != "second" {
		t.Fatalf("title = %q, want second", all[0].Title)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Stories()

	s := newStory("snap")
	_ = repo.Put(ctx, s)

	snapshot, _ := repo.All(ctx)
	if _, err := repo.IncrementViews(ctx, s.ID); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if snapshot[0].Views != 0 {
		t.Fatalf("snapshot observed later mutation: views=%d", snapshot[0].Views)
	}

	snapshot[0].Likes = 500
	snapshot[0].Tags[0] = "mutated"
	got, _ := repo.Get(ctx, s.ID)
	if got.Likes != 0 || got.Tags[0] != "a" {
		t.Fatalf("store changed through snapshot: %+v", got)
	}

	// 调用方修改原对象也不会影响存储
	s.Views = 42
	got, _ = repo.Get(ctx, s.ID)
	if got.Views != 1 {
		t.Fatalf("views = %d, want 1", got.Views)
	}
}

func TestSnapshotPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Stories()
	titles := []string{"a", "b", "c", "d"}
	for _, title := range titles {
		_ = repo.Put(ctx, newStory(title))
	}

	all, _ := repo.All(ctx)
	for i, s := range all {
		if s.Title != titles[i] {
			t.Fatalf("position %d = %q, want %q", i, s.Title, titles[i])
		}
	}
}

func TestCountersUnknownIDAreNoops(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Stories()
	_ = repo.Put(ctx, newStory("x"))

	found, err := repo.IncrementViews(ctx, "missing")
	if err != nil || found {
		t.Fatalf("IncrementViews(missing) = (%v, %v)", found, err)
	}
	found, err = repo.AdjustLikes(ctx, "missing", 1)
	if err != nil || found {
		t.Fatalf("AdjustLikes(missing) = (%v, %v)", found, err)
	}
	if n, _ := repo.Count(ctx); n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}

func TestAdjustLikesHasNoFloor(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Stories()
	s := newStory("x")
	_ = repo.Put(ctx, s)

	if _, err := repo.AdjustLikes(ctx, s.ID, -1); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	got, _ := repo.Get(ctx, s.ID)
	if got.Likes != -1 {
		t.Fatalf("likes = %d, want -1", got.Likes)
	}
}

func TestCountersAreAtomicUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Stories()
	s := newStory("busy")
	_ = repo.Put(ctx, s)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = repo.IncrementViews(ctx, s.ID)
		}()
		go func() {
			defer wg.Done()
			_, _ = repo.AdjustLikes(ctx, s.ID, 1)
		}()
	}
	wg.Wait()

	got, _ := repo.Get(ctx, s.ID)
	if got.Views != n || got.Likes != n {
		t.Fatalf("views=%d likes=%d, want %d each", got.Views, got.Likes, n)
	}
}

func TestListByStoryOrdersByChapterNumber(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	chapters := store.Chapters()

	add := func(storyID string, number int, title string) {
		ch := entity.NewChapter(storyID, number, title, "content")
		if err := chapters.Put(ctx, ch); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	add("s1", 3, "three")
	add("s1", 1, "one")
	add("s2", 2, "other")
	add("s1", 2, "two-a")
	add("s1", 2, "two-b")
	add("s1", 10, "ten")

	got, err := chapters.ListByStory(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"one", "two-a", "two-b", "three", "ten"}
	if len(got) != len(want) {
		t.Fatalf("got %d chapters, want %d", len(got), len(want))
	}
	for i, ch := range got {
		if ch.Title != want[i] {
			t.Fatalf("position %d = %q, want %q", i, ch.Title, want[i])
		}
	}

	none, err := chapters.ListByStory(ctx, "unknown")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", none)
	}
}
