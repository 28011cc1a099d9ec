package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "versus_search_requests_total",
			Help: "Total number of web search requests by outcome",
		},
		[]string{"provider", "outcome"},
	)

	ScrapesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "versus_scrapes_total",
			Help: "Total number of review page scrapes by outcome",
		},
		[]string{"outcome"},
	)

	ScrapeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "versus_scrape_duration_seconds",
			Help:    "Duration of review page scrapes in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)

	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "versus_llm_requests_total",
			Help: "Total number of LLM completions by role and outcome",
		},
		[]string{"role", "provider", "outcome"},
	)

	LLMDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "versus_llm_duration_seconds",
			Help:    "Duration of LLM completions in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 160},
		},
		[]string{"role"},
	)

	RelevanceDroppedLinks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "versus_relevance_dropped_links_total",
			Help: "Links returned by the relevance model that were not scraped",
		},
		[]string{"reason"},
	)

	ComparisonsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "versus_comparisons_total",
			Help: "Total number of comparison requests by outcome and failing stage",
		},
		[]string{"outcome", "stage"},
	)
)

// RecordScrape counts one scrape attempt.
func RecordScrape(ok bool, d time.Duration) {
	outcome := OutcomeOK
	if !ok {
		outcome = OutcomeError
	}
	ScrapesTotal.WithLabelValues(outcome).Inc()
	ScrapeDuration.Observe(d.Seconds())
}

// RecordLLM counts one completion for the given role.
func RecordLLM(role, provider string, err error, d time.Duration) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	LLMRequestsTotal.WithLabelValues(role, provider, outcome).Inc()
	LLMDuration.WithLabelValues(role).Observe(d.Seconds())
}

// RecordComparison counts a finished comparison request. stage is empty on success.
func RecordComparison(stage string) {
	if stage == "" {
		ComparisonsTotal.WithLabelValues(OutcomeOK, "").Inc()
		return
	}
	ComparisonsTotal.WithLabelValues(OutcomeError, stage).Inc()
}
