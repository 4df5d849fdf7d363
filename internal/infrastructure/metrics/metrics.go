package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "useraccounts",
			Name:      "general_counters",
			Help:      "Account lifecycle and request counters by result.",
		},
		[]string{"result"})
}
