package forecast

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/wakaweather/confidence-meter/internal/common"
)

var recommendationsSunny = []string{
	"Visit the beaches of Pacific Harbour",
	"Take a trip to Colo-i-Suva Forest Park",
	"Catch the sunset from Tamavua Hills",
	"Go reef diving near Beqa Lagoon",
}

var recommendationsRainy = []string{
	"Visit TappooCity or MHCC for indoor shopping",
	"Relax at a resort with covered lounges",
	"Go to the cinema or enjoy indoor entertainment",
	"Try local dishes in an indoor food court",
}

// UncertainAdvice is returned whenever confidence is Low, regardless of the
// forecast condition.
const UncertainAdvice = "Forecast uncertain. Prepare for all conditions."

// Recommender picks activity suggestions for a condition and confidence
// label. The random source is injected so callers can seed it and assert on
// the selection; a nil source seeds from the current time.
type Recommender struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRecommender creates a Recommender backed by src.
func NewRecommender(src rand.Source) *Recommender {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Recommender{rng: rand.New(src)}
}

// Recommend returns two distinct suggestions joined into one string. Rain or
// storm conditions draw from the indoor list, anything else from the outdoor
// list. A Low label short-circuits to the fixed uncertainty advice.
func (r *Recommender) Recommend(condition string, label ConfidenceLabel) string {
	if label == LabelLow {
		return UncertainAdvice
	}

	pool := recommendationsSunny
	if common.HasAny(condition, "rain", "storm") {
		pool = recommendationsRainy
	}
	return strings.Join(r.sample(pool, 2), ", ")
}

// sample picks n distinct entries from pool in random order.
func (r *Recommender) sample(pool []string, n int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n > len(pool) {
		n = len(pool)
	}
	picked := make([]string, 0, n)
	for _, i := range r.rng.Perm(len(pool))[:n] {
		picked = append(picked, pool[i])
	}
	return picked
}
