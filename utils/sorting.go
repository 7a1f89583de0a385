package utils

import (
	"sort"
	"strings"
)

// SortOrder defines the direction of sorting
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// Identifiable is anything with a stable numeric ID. The ID is the final
// tie-break of every ordering in this package, so equal keys never come back
// in enumeration order.
type Identifiable interface {
	GetID() int64
}

// FilmSortable is an interface for film-like types that can be ordered
type FilmSortable interface {
	Identifiable
	GetRate() int
	GetReleaseDateUnix() int64
}

// RankSortable extends FilmSortable with the live like count computed by the
// ranking pipeline
type RankSortable interface {
	FilmSortable
	GetLikeCount() int
}

// SortField represents the field to sort by
type SortField string

const (
	SortByLikes   SortField = "likes"
	SortByRate    SortField = "rate"
	SortByRelease SortField = "release"
)

// SortConfig holds sorting configuration
type SortConfig struct {
	Field SortField
	Order SortOrder
}

// Common sort configurations
var (
	SortLikesDesc  = SortConfig{Field: SortByLikes, Order: Descending}
	SortRateDesc   = SortConfig{Field: SortByRate, Order: Descending}
	SortReleaseAsc = SortConfig{Field: SortByRelease, Order: Ascending}
)

// SortFilms orders items by the configured field, breaking ties by ascending ID
func SortFilms[T RankSortable](items []T, config SortConfig) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := sortKey(items[i], config.Field), sortKey(items[j], config.Field)
		if a != b {
			if config.Order == Descending {
				return a > b
			}
			return a < b
		}
		return items[i].GetID() < items[j].GetID()
	})
}

func sortKey[T RankSortable](item T, field SortField) int64 {
	switch field {
	case SortByRate:
		return int64(item.GetRate())
	case SortByRelease:
		return item.GetReleaseDateUnix()
	default:
		return int64(item.GetLikeCount())
	}
}

// SortByScoreMap sorts items using a precomputed score map keyed by ID
func SortByScoreMap[T Identifiable](items []T, scores map[int64]int, order SortOrder) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := scores[items[i].GetID()], scores[items[j].GetID()]
		if a != b {
			if order == Descending {
				return a > b
			}
			return a < b
		}
		return items[i].GetID() < items[j].GetID()
	})
}

// Limit returns at most n leading items. A non-positive n yields an empty slice.
func Limit[T any](items []T, n int) []T {
	if n <= 0 {
		return items[:0]
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

// ContainsFold reports whether needle is a case-insensitive substring of
// haystack. No tokenisation: "dark knight" does not match "Knight, Dark".
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
