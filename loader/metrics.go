package loader

import "github.com/prometheus/client_golang/prometheus"

// Metrics instruments the pool loader worker. Construction registers every
// collector against the given registerer, the same one-shot pattern
// differ.NewMetrics uses.
type Metrics struct {
	tasksAccepted  prometheus.Counter
	tasksDuplicate prometheus.Counter
	tasksFailed    prometheus.Counter
	tasksLoaded    prometheus.Counter
	fetchDuration  prometheus.Histogram
}

// NewMetrics builds and registers the loader's collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tasksAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbcore_loader_tasks_accepted_total",
			Help: "Pool load tasks accepted for processing.",
		}),
		tasksDuplicate: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbcore_loader_tasks_duplicate_total",
			Help: "Pool load tasks skipped because the pool was already processed.",
		}),
		tasksFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbcore_loader_tasks_failed_total",
			Help: "Pool load tasks that failed to fetch or apply state.",
		}),
		tasksLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbcore_loader_tasks_loaded_total",
			Help: "Pool load tasks that completed and were inserted into the market.",
		}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbcore_loader_fetch_duration_seconds",
			Help:    "Time spent fetching and applying a single pool's required state.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.tasksAccepted, m.tasksDuplicate, m.tasksFailed, m.tasksLoaded, m.fetchDuration)
	return m
}
