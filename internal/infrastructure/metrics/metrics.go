package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Expense metrics
	ExpensesRecorded prometheus.Counter
	ExpenseAmount    prometheus.Histogram
	ExpenseDuration  prometheus.Histogram

	// Settlement metrics
	SettlementsRecorded prometheus.Counter
	PlansComputed       prometheus.Counter
	PlanTransactions    prometheus.Histogram

	// Event metrics
	EventsPublished *prometheus.CounterVec
	EventsDropped   *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Expense metrics
		ExpensesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tripledger_expenses_recorded_total",
			Help: "Total number of expenses recorded",
		}),
		ExpenseAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tripledger_expense_amount",
			Help:    "Recorded expense amounts",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
		}),
		ExpenseDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tripledger_expense_duration_seconds",
			Help:    "Duration of expense recording operations",
			Buckets: prometheus.DefBuckets,
		}),

		// Settlement metrics
		SettlementsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tripledger_settlements_recorded_total",
			Help: "Total number of settlement payments recorded",
		}),
		PlansComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tripledger_settlement_plans_computed_total",
			Help: "Total number of settlement plans computed",
		}),
		PlanTransactions: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tripledger_settlement_plan_transactions",
			Help:    "Number of transactions per computed settlement plan",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),

		// Event metrics
		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripledger_events_published_total",
				Help: "Total trip events published by name",
			},
			[]string{"event"},
		),
		EventsDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripledger_events_dropped_total",
				Help: "Total trip events dropped on slow subscribers",
			},
			[]string{"event"},
		),
	}
}
