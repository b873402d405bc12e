// AngelaMos | 2026
// metrics.go

package booking

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	reasonCapacity  = "capacity_exceeded"
	reasonDuplicate = "duplicate_booking"
)

type Metrics struct {
	created    prometheus.Counter
	rejections *prometheus.CounterVec
}

// NewMetrics registers the booking counters on reg. A nil reg yields
// unregistered counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fitsyy_bookings_created_total",
			Help: "Bookings that entered the BOOKED state, by creation or re-booking.",
		}),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitsyy_booking_rejections_total",
				Help: "Booking attempts rejected by capacity or duplicate rules.",
			},
			[]string{"reason"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.created, m.rejections)
	}

	return m
}

func (m *Metrics) Created() prometheus.Counter {
	return m.created
}

func (m *Metrics) Rejections(reason string) prometheus.Counter {
	return m.rejections.WithLabelValues(reason)
}
