// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package writer

import (
	"math"
	"sort"
	"time"
)

// SelectTopics deterministically picks up to n topics for the given calendar
// day. The seed is derived from year/month/day, so repeated runs on the same
// day select the same topics in the same order. The input list is never
// mutated. If n is at least the list length, all topics are returned in
// shuffled order.
//
// The shuffle is a sine-of-hash sort: stable per day and topic list, but not
// statistically rigorous. Topics whose hashed values land on near-equal sine
// values keep their relative input order.
func SelectTopics(day time.Time, topics []string, n int) []string {
	seed := day.Year()*1000 + int(day.Month())*100 + day.Day()

	keys := make([]float64, len(topics))
	for i, topic := range topics {
		keys[i] = topicSortKey(topic, seed)
	}

	order := make([]int, len(topics))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return keys[order[i]] < keys[order[j]]
	})

	if n > len(topics) {
		n = len(topics)
	}
	if n < 0 {
		n = 0
	}

	selected := make([]string, 0, n)
	for _, idx := range order[:n] {
		selected = append(selected, topics[idx])
	}
	return selected
}

// topicSortKey hashes a topic to a pseudo-random but date-stable sort key.
func topicSortKey(topic string, seed int) float64 {
	sum := 0
	for _, r := range topic {
		sum += int(r)
	}
	return math.Sin(float64(sum + seed))
}
