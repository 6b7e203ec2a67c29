// Package catalog 提供故事目录的查询、互动计数与统计能力
package catalog

import (
	"sort"
	"strings"

	"fiction-catalog-api/internal/domain/entity"
)

// DefaultLimit 未指定或非法 limit 时的默认分页大小
const DefaultLimit = 20

// SortBy 排序键
type SortBy string

const (
	SortRecent    SortBy = "recent"
	SortPopular   SortBy = "popular"
	SortNewest    SortBy = "newest"
	SortWordCount SortBy = "wordCount"
)

// SortOption 排序选项（键 + 展示名）
type SortOption struct {
	Value SortBy `json:"value"`
	Label string `json:"label"`
}

// SortOptions 返回支持的排序选项
func SortOptions() []SortOption {
	return []SortOption{
		{Value: SortRecent, Label: "Recently Updated"},
		{Value: SortPopular, Label: "Most Popular"},
		{Value: SortNewest, Label: "Newest"},
		{Value: SortWordCount, Label: "Word Count"},
	}
}

// QueryOptions 目录查询参数，零值表示不过滤
type QueryOptions struct {
	Genre  string
	Fandom string
	Search string
	SortBy SortBy
	Limit  int
	Offset int
}

// Normalize 填充默认值：limit<=0 取 DefaultLimit，offset<0 取 0，未知排序键回落到 recent
func (o QueryOptions) Normalize() QueryOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	switch o.SortBy {
	case SortRecent, SortPopular, SortNewest, SortWordCount:
	default:
		o.SortBy = SortRecent
	}
	return o
}

// Page 查询结果
type Page struct {
	Stories []*entity.Story
	// Total 过滤后、分页前的数量
	Total  int
	Limit  int
	Offset int
}

// QueryStories 在快照上依次执行 类型 -> 同人圈 -> 关键词 过滤，稳定降序排序后分页。
// 排序作用于新切片，不改变 stories 的顺序。
func QueryStories(stories []*entity.Story, opts QueryOptions) Page {
	opts = opts.Normalize()

	filtered := stories[:0:0]
	term := strings.ToLower(opts.Search)
	for _, s := range stories {
		if opts.Genre != "" && !strings.EqualFold(string(s.Genre), opts.Genre) {
			continue
		}
		if opts.Fandom != "" && !strings.EqualFold(s.Fandom, opts.Fandom) {
			continue
		}
		if term != "" && !s.MatchesTerm(term) {
			continue
		}
		filtered = append(filtered, s)
	}

	sort.SliceStable(filtered, lessFor(filtered, opts.SortBy))

	page := Page{Total: len(filtered), Limit: opts.Limit, Offset: opts.Offset}
	if opts.Offset >= len(filtered) {
		page.Stories = []*entity.Story{}
		return page
	}
	end := opts.Offset + opts.Limit
	if end > len(filtered) || end < opts.Offset {
		end = len(filtered)
	}
	page.Stories = filtered[opts.Offset:end]
	return page
}

// lessFor 返回降序比较函数，相等元素保持原有相对顺序
func lessFor(stories []*entity.Story, by SortBy) func(i, j int) bool {
	switch by {
	case SortPopular:
		return func(i, j int) bool { return stories[i].Likes > stories[j].Likes }
	case SortWordCount:
		return func(i, j int) bool { return stories[i].WordCount > stories[j].WordCount }
	default:
		// recent 与 newest 都按最后更新时间
		return func(i, j int) bool { return stories[i].LastUpdated.After(stories[j].LastUpdated) }
	}
}
