package forecast

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultFetchTimeout bounds each individual provider call.
const DefaultFetchTimeout = 4 * time.Second

// fallbackAdvice is returned when fewer than two providers responded and no
// confidence comparison is possible.
const fallbackAdvice = "Forecast uncertain. Try again shortly."

// Service fans a location out to all registered providers and reduces the
// successful forecasts into a consensus report. Registration order doubles
// as the priority used to pick the confidence comparison pair.
type Service struct {
	providers []Provider
	rec       *Recommender
	timeout   time.Duration
	log       *logrus.Logger

	// OnOutcome, when set, is called once per completed provider call.
	// It is presentation-only and never affects the result set.
	OnOutcome func(Outcome)
}

// NewService creates a Service. A non-positive timeout falls back to
// DefaultFetchTimeout.
func NewService(providers []Provider, rec *Recommender, timeout time.Duration, log *logrus.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if rec == nil {
		rec = NewRecommender(nil)
	}
	if log == nil {
		log = logrus.New()
	}
	return &Service{
		providers: providers,
		rec:       rec,
		timeout:   timeout,
		log:       log,
	}
}

// FetchAll runs every provider concurrently, each bounded by the per-call
// timeout, and returns whichever forecasts came back, in completion order.
// It never fails; a short or empty batch is a degraded but normal outcome
// that callers must check.
func (s *Service) FetchAll(ctx context.Context, loc Location) []Forecast {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []Forecast
	)

	for _, p := range s.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			f, err := p.Fetch(fetchCtx, loc)
			if err != nil {
				// Absorb and continue; we want partial success when possible.
				s.log.WithFields(logrus.Fields{
					"provider": p.Name(),
					"kind":     KindOf(err),
				}).Warnf("provider fetch failed: %v", err)
				s.notify(Outcome{Source: p.Name(), Err: err})
				return
			}

			mu.Lock()
			results = append(results, f)
			mu.Unlock()
			s.notify(Outcome{Source: p.Name(), Forecast: f})
		}(p)
	}

	wg.Wait()
	return results
}

func (s *Service) notify(o Outcome) {
	if s.OnOutcome != nil {
		s.OnOutcome(o)
	}
}

// Report is the consensus view assembled from one fetch batch.
type Report struct {
	City            string            `json:"city"`
	Country         string            `json:"country"`
	Confidence      float64           `json:"confidence"`
	Label           ConfidenceLabel   `json:"label"`
	TempRange       Range             `json:"temp_range"`
	RainRange       Range             `json:"rain_range"`
	Conditions      []string          `json:"conditions"`
	TempUncertainty float64           `json:"temp_uncertainty"`
	RainUncertainty float64           `json:"rain_uncertainty"`
	WindMax         float64           `json:"wind_max"`
	Severe          bool              `json:"severe"`
	Alert           string            `json:"alert,omitempty"`
	Recommendation  string            `json:"recommendation"`
	SatelliteURL    string            `json:"satellite_url"`
	Sources         []Forecast        `json:"sources"`
	Emergency       map[string]string `json:"emergency,omitempty"`
	GeneratedAt     time.Time         `json:"generated_at"`
}

// Consensus fetches all providers and reduces the batch into a Report.
// Fewer than two forecasts yields the defined low-confidence fallback
// rather than an error.
func (s *Service) Consensus(ctx context.Context, loc Location) Report {
	forecasts := s.FetchAll(ctx, loc)

	report := Report{
		City:         loc.City,
		Country:      loc.Country,
		Label:        LabelLow,
		Conditions:   []string{},
		Sources:      forecasts,
		SatelliteURL: SatelliteLink(loc.Lat, loc.Lon),
		GeneratedAt:  time.Now().UTC(),
	}

	if len(forecasts) < 2 {
		s.log.WithField("count", len(forecasts)).Warn("not enough forecasts for a confidence comparison")
		report.Recommendation = fallbackAdvice
		return report
	}

	best, second := s.priorityPair(forecasts)
	conf := Confidence(best, second)
	summary := Summarize(forecasts)
	severity := DetectSeverity(best.Condition, best.Rainfall, best.WindSpeed)

	report.Confidence = conf.Score
	report.Label = conf.Label
	report.TempRange = summary.TempRange
	report.RainRange = summary.RainRange
	report.Conditions = summary.Conditions
	report.TempUncertainty = summary.TempUncertainty
	report.RainUncertainty = summary.RainUncertainty
	report.WindMax = maxWind(forecasts)
	report.Severe = severity.Severe
	report.Alert = severity.Alert
	report.Recommendation = s.rec.Recommend(best.Condition, conf.Label)
	if severity.Severe {
		report.Emergency = EmergencyContacts(loc.Country)
	}
	return report
}

// priorityPair returns the two forecasts whose providers rank highest in
// registration order, so the comparison does not depend on which providers
// happened to answer first.
func (s *Service) priorityPair(forecasts []Forecast) (Forecast, Forecast) {
	bySource := make(map[string]Forecast, len(forecasts))
	for _, f := range forecasts {
		bySource[f.Source] = f
	}

	picked := make([]Forecast, 0, 2)
	for _, p := range s.providers {
		if f, ok := bySource[p.Name()]; ok {
			picked = append(picked, f)
			if len(picked) == 2 {
				return picked[0], picked[1]
			}
		}
	}

	// Sources outside the registered set only occur in tests; fall back to
	// batch order.
	return forecasts[0], forecasts[1]
}

func maxWind(forecasts []Forecast) float64 {
	var maxW float64
	for _, f := range forecasts {
		if f.WindSpeed > maxW {
			maxW = f.WindSpeed
		}
	}
	return maxW
}
