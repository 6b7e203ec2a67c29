package catalog

import (
	"fmt"
	"testing"
	"time"

	"fiction-catalog-api/internal/domain/entity"
)

// seededStories 按内置种子构造故事，顺序与种子一致
func seededStories(t *testing.T) []*entity.Story {
	t.Helper()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var out []*entity.Story
	for _, f := range DefaultSeed() {
		story, _ := buildSeed(f, now)
		out = append(out, story)
	}
	return out
}

func titles(stories []*entity.Story) []string {
	out := make([]string, len(stories))
	for i, s := range stories {
		out[i] = s.Title
	}
	return out
}

func TestQueryNoConstraintsReturnsAll(t *testing.T) {
	stories := seededStories(t)
	page := QueryStories(stories, QueryOptions{})

	if len(page.Stories) != len(stories) {
		t.Fatalf("got %d stories, want %d", len(page.Stories), len(stories))
	}
	if page.Total != len(stories) || page.Limit != DefaultLimit || page.Offset != 0 {
		t.Fatalf("unexpected page meta: %+v", page)
	}
	seen := make(map[string]bool)
	for _, s := range page.Stories {
		seen[s.ID] = true
	}
	for _, s := range stories {
		if !seen[s.ID] {
			t.Fatalf("story %q missing from result", s.Title)
		}
	}
}

func TestQueryDefaultLimitIsTwenty(t *testing.T) {
	var stories []*entity.Story
	base := time.Now()
	for i := 0; i < 30; i++ {
		s := entity.NewStory(fmt.Sprintf("s%02d", i), "", "a", entity.GenreDrama, "F")
		s.LastUpdated = base.Add(time.Duration(i) * time.Minute)
		stories = append(stories, s)
	}

	page := QueryStories(stories, QueryOptions{})
	if len(page.Stories) != 20 {
		t.Fatalf("got %d stories, want 20", len(page.Stories))
	}
	if page.Total != 30 {
		t.Fatalf("total = %d, want 30", page.Total)
	}
	if page.Stories[0].Title != "s29" {
		t.Fatalf("first = %q, want most recent s29", page.Stories[0].Title)
	}
}

func TestQueryDoesNotReorderInput(t *testing.T) {
	stories := seededStories(t)
	before := titles(stories)

	QueryStories(stories, QueryOptions{SortBy: SortPopular})

	after := titles(stories)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input reordered at %d: %q -> %q", i, before[i], after[i])
		}
	}
}

func TestQueryGenreFilter(t *testing.T) {
	stories := seededStories(t)

	page := QueryStories(stories, QueryOptions{Genre: "fantasy"})
	if len(page.Stories) != 2 {
		t.Fatalf("got %d fantasy stories, want 2", len(page.Stories))
	}
	for _, s := range page.Stories {
		if s.Genre != entity.GenreFantasy {
			t.Fatalf("non-fantasy story %q in result", s.Title)
		}
	}

	empty := QueryStories(stories, QueryOptions{Genre: "Horror"})
	if empty.Stories == nil || len(empty.Stories) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", empty.Stories)
	}
}

func TestQueryFandomFilterIsExact(t *testing.T) {
	stories := seededStories(t)

	page := QueryStories(stories, QueryOptions{Fandom: "ORIGINAL FICTION"})
	if len(page.Stories) != 3 {
		t.Fatalf("got %d stories, want 3", len(page.Stories))
	}

	partial := QueryStories(stories, QueryOptions{Fandom: "Original"})
	if len(partial.Stories) != 0 {
		t.Fatalf("fandom filter should not match substrings, got %v", titles(partial.Stories))
	}
}

func TestQuerySearchAcrossFields(t *testing.T) {
	tagged := entity.NewStory("Wings of Ash", "A tale of fire", "someone", entity.GenreFantasy, "Original Fiction")
	tagged.Tags = []string{"Dragons"}
	stories := append(seededStories(t), tagged)

	page := QueryStories(stories, QueryOptions{Search: "DRAGON"})
	got := make(map[string]bool)
	for _, s := range page.Stories {
		got[s.Title] = true
	}
	if !got["The Dragon's Apprentice"] {
		t.Fatalf("title match missing: %v", titles(page.Stories))
	}
	if !got["Wings of Ash"] {
		t.Fatalf("tag match missing: %v", titles(page.Stories))
	}

	byAuthor := QueryStories(stories, QueryOptions{Search: "peakclimb"})
	if len(byAuthor.Stories) != 1 || byAuthor.Stories[0].Title != "Beyond the Summit" {
		t.Fatalf("author match = %v", titles(byAuthor.Stories))
	}

	byDescription := QueryStories(stories, QueryOptions{Search: "uncharted"})
	if len(byDescription.Stories) != 1 || byDescription.Stories[0].Title != "Stellar Echoes" {
		t.Fatalf("description match = %v", titles(byDescription.Stories))
	}
}

func TestQueryFiltersAreCombined(t *testing.T) {
	stories := seededStories(t)

	page := QueryStories(stories, QueryOptions{Genre: "Fantasy", Search: "friendship"})
	if len(page.Stories) != 1 || page.Stories[0].Title != "The Enchanted Academy" {
		t.Fatalf("got %v", titles(page.Stories))
	}

	none := QueryStories(stories, QueryOptions{Genre: "Romance", Fandom: "Star Trek"})
	if len(none.Stories) != 0 {
		t.Fatalf("expected no results, got %v", titles(none.Stories))
	}
}

func TestQuerySortPopular(t *testing.T) {
	page := QueryStories(seededStories(t), QueryOptions{SortBy: SortPopular})

	want := []int{2100, 1240, 1200, 945, 892, 723, 567}
	for i, s := range page.Stories {
		if s.Likes != want[i] {
			t.Fatalf("position %d likes = %d, want %d", i, s.Likes, want[i])
		}
	}
}

func TestQuerySortWordCount(t *testing.T) {
	page := QueryStories(seededStories(t), QueryOptions{SortBy: SortWordCount})
	for i := 1; i < len(page.Stories); i++ {
		if page.Stories[i-1].WordCount < page.Stories[i].WordCount {
			t.Fatalf("not descending at %d: %v", i, titles(page.Stories))
		}
	}
	if page.Stories[0].Title != "The Enchanted Academy" {
		t.Fatalf("first = %q", page.Stories[0].Title)
	}
}

func TestQueryRecentAndNewestShareComparator(t *testing.T) {
	stories := seededStories(t)

	recent := titles(QueryStories(stories, QueryOptions{SortBy: SortRecent}).Stories)
	newest := titles(QueryStories(stories, QueryOptions{SortBy: SortNewest}).Stories)
	unknown := titles(QueryStories(stories, QueryOptions{SortBy: "bogus"}).Stories)
	def := titles(QueryStories(stories, QueryOptions{}).Stories)

	for i := range recent {
		if recent[i] != newest[i] || recent[i] != unknown[i] || recent[i] != def[i] {
			t.Fatalf("orders differ at %d: recent=%v newest=%v unknown=%v default=%v", i, recent, newest, unknown, def)
		}
	}
	if recent[0] != "The Dragon's Apprentice" {
		t.Fatalf("most recent = %q, want The Dragon's Apprentice", recent[0])
	}
}

func TestQuerySortIsStableForTies(t *testing.T) {
	stories := seededStories(t)
	// Enchanted Academy 与 Moonlight Confessions 更新时间相同，保持快照中的相对顺序
	page := QueryStories(stories, QueryOptions{SortBy: SortRecent})
	order := titles(page.Stories)

	idx := func(title string) int {
		for i, got := range order {
			if got == title {
				return i
			}
		}
		return -1
	}
	if idx("The Enchanted Academy") > idx("Moonlight Confessions") {
		t.Fatalf("tie not stable: %v", order)
	}

	reversed := make([]*entity.Story, len(stories))
	for i, s := range stories {
		reversed[len(stories)-1-i] = s
	}
	order = titles(QueryStories(reversed, QueryOptions{SortBy: SortRecent}).Stories)
	if idx("The Enchanted Academy") < idx("Moonlight Confessions") {
		t.Fatalf("tie not stable after reversing input: %v", order)
	}
}

func TestQueryPagination(t *testing.T) {
	stories := seededStories(t)
	full := QueryStories(stories, QueryOptions{})

	tail := QueryStories(stories, QueryOptions{Offset: 5, Limit: 20})
	if len(tail.Stories) != 2 {
		t.Fatalf("got %d stories, want 2", len(tail.Stories))
	}
	for i, s := range tail.Stories {
		if s.ID != full.Stories[5+i].ID {
			t.Fatalf("tail[%d] = %q, want %q", i, s.Title, full.Stories[5+i].Title)
		}
	}

	past := QueryStories(stories, QueryOptions{Offset: 10})
	if past.Stories == nil || len(past.Stories) != 0 {
		t.Fatalf("offset past end should be empty, got %v", past.Stories)
	}
	if past.Total != 7 {
		t.Fatalf("total = %d, want 7", past.Total)
	}

	window := QueryStories(stories, QueryOptions{Offset: 2, Limit: 3})
	if len(window.Stories) != 3 || window.Stories[0].ID != full.Stories[2].ID {
		t.Fatalf("window = %v", titles(window.Stories))
	}
}

func TestNormalize(t *testing.T) {
	got := QueryOptions{Limit: -5, Offset: -1, SortBy: "nope"}.Normalize()
	if got.Limit != DefaultLimit || got.Offset != 0 || got.SortBy != SortRecent {
		t.Fatalf("Normalize = %+v", got)
	}
	kept := QueryOptions{Limit: 3, Offset: 4, SortBy: SortWordCount}.Normalize()
	if kept.Limit != 3 || kept.Offset != 4 || kept.SortBy != SortWordCount {
		t.Fatalf("Normalize changed valid options: %+v", kept)
	}
}
