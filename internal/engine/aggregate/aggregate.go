// Package aggregate holds the pure transforms that turn a fetched record
// slice into grouped counts, rankings, per-day buckets and mood polarity.
// Every function is total: empty input yields an empty or all-zero result.
package aggregate

import (
	"sort"

	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

// Count is one ranked key.
type Count[K comparable] struct {
	Key   K
	Count int
}

// DayCount is one dense bucket.
type DayCount struct {
	Date  timex.Date
	Count int
}

// Dated is implemented by records carrying a logical date.
type Dated interface {
	LogicalDate() timex.Date
}

// GroupCount counts key(r) over records. Absent keys have no entry.
func GroupCount[T any, K comparable](records []T, key func(T) K) map[K]int {
	counts := make(map[K]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

// GroupCountEach counts every key of a multi-valued field (tags, symptoms).
func GroupCountEach[T any, K comparable](records []T, keys func(T) []K) map[K]int {
	counts := make(map[K]int)
	for _, r := range records {
		for _, k := range keys(r) {
			counts[k]++
		}
	}
	return counts
}

// TopN ranks keys by descending count, breaking ties by first occurrence in
// records, and keeps at most n of them.
func TopN[T any, K comparable](records []T, key func(T) K, n int) []Count[K] {
	return TopNEach(records, func(r T) []K { return []K{key(r)} }, n)
}

// TopNEach is TopN over multi-valued keys.
func TopNEach[T any, K comparable](records []T, keys func(T) []K, n int) []Count[K] {
	if n <= 0 {
		return []Count[K]{}
	}

	index := make(map[K]int)
	ranked := make([]Count[K], 0)
	for _, r := range records {
		for _, k := range keys(r) {
			if i, ok := index[k]; ok {
				ranked[i].Count++
				continue
			}
			index[k] = len(ranked)
			ranked = append(ranked, Count[K]{Key: k, Count: 1})
		}
	}

	// ranked is in first-occurrence order, so a stable sort keeps ties that way
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Keys strips the counts from a ranking.
func Keys[K comparable](ranked []Count[K]) []K {
	out := make([]K, len(ranked))
	for i, c := range ranked {
		out[i] = c.Key
	}
	return out
}

// DailyBucket emits one bucket per day of r, ascending, counting records
// whose logical date is that day. Days without records report 0.
func DailyBucket[T Dated](records []T, r timex.Range) []DayCount {
	byDay := GroupCount(records, func(rec T) timex.Date { return rec.LogicalDate() })

	days := r.Days()
	out := make([]DayCount, len(days))
	for i, d := range days {
		out[i] = DayCount{Date: d, Count: byDay[d]}
	}
	return out
}
