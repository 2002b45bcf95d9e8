package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	stakepoolCollector     *StakepoolCollector
	stakepoolCollectorOnce sync.Once
)

// StakepoolCollector holds the narrow set of stakepool metrics: total value
// locked, withdrawal queue depth, and force-release activity. It registers
// its own singleton, independent of any other collector in the process.
type StakepoolCollector struct {
	TVL              *prometheus.GaugeVec
	QueueDepth       *prometheus.GaugeVec
	QueuedAmount     *prometheus.GaugeVec
	ForceReleasesTotal *prometheus.CounterVec
	RewardsAdmittedTotal *prometheus.CounterVec
}

// GetStakepoolCollector returns the singleton stakepool metrics collector.
func GetStakepoolCollector() *StakepoolCollector {
	stakepoolCollectorOnce.Do(func() {
		stakepoolCollector = newStakepoolCollector()
	})
	return stakepoolCollector
}

func newStakepoolCollector() *StakepoolCollector {
	c := &StakepoolCollector{}

	c.TVL = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "stakepool",
			Name:      "total_value_locked",
			Help:      "Total stake currently locked in a pool",
		},
		[]string{"pool_id"},
	)

	c.QueueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "stakepool",
			Subsystem: "withdraw_queue",
			Name:      "depth",
			Help:      "Number of entries queued in a pool's withdraw FIFO",
		},
		[]string{"pool_id"},
	)

	c.QueuedAmount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "stakepool",
			Subsystem: "withdraw_queue",
			Name:      "amount",
			Help:      "Total amount queued in a pool's withdraw FIFO",
		},
		[]string{"pool_id"},
	)

	c.ForceReleasesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stakepool",
			Subsystem: "finalization",
			Name:      "force_releases_total",
			Help:      "Number of miners force-stopped by the finalization hook",
		},
		[]string{"pool_id"},
	)

	c.RewardsAdmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stakepool",
			Subsystem: "reward",
			Name:      "admitted_total",
			Help:      "Total reward amount admitted to a pool via on_reward",
		},
		[]string{"pool_id"},
	)

	prometheus.MustRegister(c.TVL)
	prometheus.MustRegister(c.QueueDepth)
	prometheus.MustRegister(c.QueuedAmount)
	prometheus.MustRegister(c.ForceReleasesTotal)
	prometheus.MustRegister(c.RewardsAdmittedTotal)

	return c
}

// RecordTVL sets the current total value locked for a pool.
func (c *StakepoolCollector) RecordTVL(poolID string, amount float64) {
	c.TVL.WithLabelValues(poolID).Set(amount)
}

// RecordQueueState records the current withdraw queue depth and amount for a pool.
func (c *StakepoolCollector) RecordQueueState(poolID string, depth int, amount float64) {
	c.QueueDepth.WithLabelValues(poolID).Set(float64(depth))
	c.QueuedAmount.WithLabelValues(poolID).Set(amount)
}

// RecordForceRelease records a finalization-hook force-stop for a pool.
func (c *StakepoolCollector) RecordForceRelease(poolID string) {
	c.ForceReleasesTotal.WithLabelValues(poolID).Inc()
}

// RecordRewardAdmitted records a reward admission for a pool.
func (c *StakepoolCollector) RecordRewardAdmitted(poolID string, amount float64) {
	c.RewardsAdmittedTotal.WithLabelValues(poolID).Add(amount)
}
