package forecast

import (
	"math/rand"
	"strings"
	"testing"
)

func TestRecommendLowLabelIsFixed(t *testing.T) {
	r := NewRecommender(rand.NewSource(1))

	for _, cond := range []string{"Heavy rain", "Clear skies", "Storm", ""} {
		if got := r.Recommend(cond, LabelLow); got != UncertainAdvice {
			t.Errorf("Recommend(%q, Low) = %q, want the fixed uncertainty advice", cond, got)
		}
	}
}

func TestRecommendSeededIsReproducible(t *testing.T) {
	a := NewRecommender(rand.NewSource(42))
	b := NewRecommender(rand.NewSource(42))

	for i := 0; i < 5; i++ {
		got1 := a.Recommend("Clear skies", LabelHigh)
		got2 := b.Recommend("Clear skies", LabelHigh)
		if got1 != got2 {
			t.Fatalf("same seed produced different output: %q vs %q", got1, got2)
		}
	}
}

func TestRecommendPoolSelection(t *testing.T) {
	r := NewRecommender(rand.NewSource(7))

	rainy := r.Recommend("light rain showers", LabelModerate)
	assertTwoDistinctFrom(t, rainy, recommendationsRainy)

	stormy := r.Recommend("Tropical Storm", LabelHigh)
	assertTwoDistinctFrom(t, stormy, recommendationsRainy)

	sunny := r.Recommend("Clear skies", LabelHigh)
	assertTwoDistinctFrom(t, sunny, recommendationsSunny)
}

func assertTwoDistinctFrom(t *testing.T, joined string, pool []string) {
	t.Helper()

	parts := strings.Split(joined, ", ")
	if len(parts) != 2 {
		t.Fatalf("expected two suggestions, got %q", joined)
	}
	if parts[0] == parts[1] {
		t.Fatalf("suggestions are not distinct: %q", joined)
	}
	for _, p := range parts {
		if !containsString(pool, p) {
			t.Fatalf("suggestion %q is not from the expected pool", p)
		}
	}
}

func containsString(pool []string, s string) bool {
	for _, p := range pool {
		if p == s {
			return true
		}
	}
	return false
}
