package writer

import (
	"reflect"
	"testing"
	"time"
)

var selectorTopics = []string{
	"Kubernetes at the edge",
	"Postgres tuning",
	"GitOps in anger",
	"Terraform drift",
	"Observability debt",
	"Queue theory for SREs",
}

func TestSelectTopicsDeterministicPerDay(t *testing.T) {
	morning := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)

	first := SelectTopics(morning, selectorTopics, 3)
	second := SelectTopics(evening, selectorTopics, 3)

	if len(first) != 3 {
		t.Fatalf("SelectTopics returned %d topics, want 3", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same-day selections differ: %v vs %v", first, second)
	}
}

func TestSelectTopicsCountExceedsList(t *testing.T) {
	day := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	got := SelectTopics(day, selectorTopics, 100)
	if len(got) != len(selectorTopics) {
		t.Fatalf("got %d topics, want all %d", len(got), len(selectorTopics))
	}

	seen := make(map[string]bool, len(got))
	for _, topic := range got {
		if seen[topic] {
			t.Errorf("duplicate topic in selection: %q", topic)
		}
		seen[topic] = true
	}
	for _, topic := range selectorTopics {
		if !seen[topic] {
			t.Errorf("topic missing from full selection: %q", topic)
		}
	}
}

func TestSelectTopicsDoesNotMutateInput(t *testing.T) {
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	input := make([]string, len(selectorTopics))
	copy(input, selectorTopics)

	SelectTopics(day, input, len(input))

	if !reflect.DeepEqual(input, selectorTopics) {
		t.Error("SelectTopics mutated its input list")
	}
}

func TestSelectTopicsZeroAndNegativeCount(t *testing.T) {
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	if got := SelectTopics(day, selectorTopics, 0); len(got) != 0 {
		t.Errorf("n=0 returned %d topics", len(got))
	}
	if got := SelectTopics(day, selectorTopics, -1); len(got) != 0 {
		t.Errorf("n=-1 returned %d topics", len(got))
	}
}
