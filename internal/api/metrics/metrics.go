// Package metrics defines the custom Prometheus metrics of the enterprise
// registry API. Metrics register themselves with the default registry on
// package initialisation; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "enterprise_registry"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts registration and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "invalid" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of admin registration and login attempts.",
	},
	[]string{"operation", "result"},
)

// ── Enterprise metrics ────────────────────────────────────────────────────────

// EnterprisesRegisteredTotal counts enterprises created, by impact level.
var EnterprisesRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enterprises_registered_total",
		Help:      "Total number of enterprises registered, by impact level.",
	},
	[]string{"impact_level"},
)

// EnterprisesUpdatedTotal counts successful enterprise updates.
var EnterprisesUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enterprises_updated_total",
		Help:      "Total number of enterprise updates applied.",
	},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsGeneratedTotal counts report requests.
// Label:
//   - result: "success" or "error"
var ReportsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total number of spreadsheet reports requested, by result.",
	},
	[]string{"result"},
)

// ReportRows observes how many enterprises each generated report contains.
var ReportRows = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_rows",
		Help:      "Number of enterprise rows written per report.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8), // 1 … 16384
	},
)

// ── Rate limiting ─────────────────────────────────────────────────────────────

// RateLimitedTotal counts requests rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429.",
	},
)
