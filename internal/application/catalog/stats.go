package catalog

import (
	"sort"

	"fiction-catalog-api/internal/domain/entity"
)

type tally struct {
	label string
	count int
}

// countBy 按精确值分组计数，数量降序，数量相同时按标签升序
func countBy(stories []*entity.Story, key func(*entity.Story) string) []tally {
	counts := make(map[string]int)
	for _, s := range stories {
		counts[key(s)]++
	}

	out := make([]tally, 0, len(counts))
	for label, n := range counts {
		out = append(out, tally{label: label, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].label < out[j].label
	})
	return out
}

// GenreStats 统计每个类型的故事数
func GenreStats(stories []*entity.Story) []entity.GenreStat {
	tallies := countBy(stories, func(s *entity.Story) string { return string(s.Genre) })
	stats := make([]entity.GenreStat, len(tallies))
	for i, t := range tallies {
		stats[i] = entity.GenreStat{Genre: t.label, Count: t.count}
	}
	return stats
}

// FandomStats 统计每个同人圈的故事数
func FandomStats(stories []*entity.Story) []entity.FandomStat {
	tallies := countBy(stories, func(s *entity.Story) string { return s.Fandom })
	stats := make([]entity.FandomStat, len(tallies))
	for i, t := range tallies {
		stats[i] = entity.FandomStat{Fandom: t.label, Count: t.count}
	}
	return stats
}
