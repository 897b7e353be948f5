package observability

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StakeMetrics bundles the collectors tracking stake-account operation
// activity: how often each transition runs, how long it takes, and the
// lamport amounts it moves.
type StakeMetrics struct {
	operations  *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	rewardsPaid *prometheus.CounterVec
	warmupSteps prometheus.Histogram
}

var (
	stakeMetricsOnce sync.Once
	stakeRegistry    *StakeMetrics
)

// Stake returns the lazily-initialised metrics registry for stake-account
// operations.
func Stake() *StakeMetrics {
	stakeMetricsOnce.Do(func() {
		stakeRegistry = &StakeMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "stakeengine",
				Subsystem: "account",
				Name:      "operations_total",
				Help:      "Count of stake-account operations segmented by kind and outcome.",
			}, []string{"operation", "outcome"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "stakeengine",
				Subsystem: "account",
				Name:      "operation_duration_seconds",
				Help:      "Latency distribution for stake-account operations.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"operation"}),
			rewardsPaid: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "stakeengine",
				Subsystem: "rewards",
				Name:      "lamports_paid_total",
				Help:      "Lamports paid out by redemption, segmented by recipient (voter or staker).",
			}, []string{"recipient"}),
			warmupSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
				Namespace: "stakeengine",
				Subsystem: "stake",
				Name:      "warmup_loop_steps",
				Help:      "Number of per-epoch iterations the warmup/cooldown loop ran before converging.",
				Buckets:   prometheus.LinearBuckets(0, 5, 10),
			}),
		}
		prometheus.MustRegister(
			stakeRegistry.operations,
			stakeRegistry.latency,
			stakeRegistry.rewardsPaid,
			stakeRegistry.warmupSteps,
		)
	})
	return stakeRegistry
}

// Observe records the outcome and latency of a stake-account operation.
func (m *StakeMetrics) Observe(operation string, err error, d time.Duration) {
	if m == nil {
		return
	}
	op := normalizeLabel(operation)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.operations.WithLabelValues(op, outcome).Inc()
	m.latency.WithLabelValues(op).Observe(d.Seconds())
}

// RecordReward adds to the running total of lamports paid to recipient
// ("voter" or "staker").
func (m *StakeMetrics) RecordReward(recipient string, lamports uint64) {
	if m == nil {
		return
	}
	m.rewardsPaid.WithLabelValues(normalizeLabel(recipient)).Add(float64(lamports))
}

// RecordWarmupSteps records how many history-entry iterations a single
// warmup or cooldown loop took to converge.
func (m *StakeMetrics) RecordWarmupSteps(steps int) {
	if m == nil {
		return
	}
	m.warmupSteps.Observe(float64(steps))
}

func normalizeLabel(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "unknown"
	}
	return strings.ToLower(trimmed)
}
