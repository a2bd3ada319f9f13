package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SimulationMetrics records garage and demand-process telemetry.
type SimulationMetrics struct {
	tickDuration *prometheus.HistogramVec
	bookings     *prometheus.CounterVec
	departures   *prometheus.CounterVec
	revenue      prometheus.Counter
	occupancy    prometheus.Gauge
	simTime      prometheus.Gauge
}

// NewSimulationMetrics registers the garage metrics on the provided registerer.
func NewSimulationMetrics(reg prometheus.Registerer) *SimulationMetrics {
	if reg == nil {
		return &SimulationMetrics{}
	}
	tickDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "garage_tick_duration_seconds",
		Help:    "Duration of simulation ticks in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"speed"})
	bookings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "garage_bookings_total",
		Help: "Bookings confirmed, labeled by origin.",
	}, []string{"origin"})
	departures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "garage_departures_total",
		Help: "Reservations completed, labeled by kind.",
	}, []string{"kind"})
	revenue := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "garage_revenue_dollars_total",
		Help: "Cumulative booked revenue in dollars.",
	})
	occupancy := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "garage_occupancy_rate",
		Help: "Fraction of units occupied at the current simulated time.",
	})
	simTime := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "garage_simulated_hour",
		Help: "Current simulated time as a decimal hour.",
	})
	reg.MustRegister(tickDuration, bookings, departures, revenue, occupancy, simTime)
	return &SimulationMetrics{
		tickDuration: tickDuration,
		bookings:     bookings,
		departures:   departures,
		revenue:      revenue,
		occupancy:    occupancy,
		simTime:      simTime,
	}
}

// ObserveTick records the duration of one tick at the given speed label.
func (m *SimulationMetrics) ObserveTick(speed string, duration time.Duration) {
	if m == nil || m.tickDuration == nil {
		return
	}
	m.tickDuration.WithLabelValues(speed).Observe(duration.Seconds())
}

// IncBooking increments the booking counter for the given origin.
func (m *SimulationMetrics) IncBooking(origin string) {
	if m == nil || m.bookings == nil {
		return
	}
	m.bookings.WithLabelValues(origin).Inc()
}

// IncDeparture increments the departure counter for the given kind.
func (m *SimulationMetrics) IncDeparture(kind string) {
	if m == nil || m.departures == nil {
		return
	}
	m.departures.WithLabelValues(kind).Inc()
}

// AddRevenue adds booked dollars to the revenue counter.
func (m *SimulationMetrics) AddRevenue(dollars float64) {
	if m == nil || m.revenue == nil {
		return
	}
	if dollars > 0 {
		m.revenue.Add(dollars)
	}
}

// SetOccupancy records the current occupancy rate.
func (m *SimulationMetrics) SetOccupancy(rate float64) {
	if m == nil || m.occupancy == nil {
		return
	}
	m.occupancy.Set(rate)
}

// SetSimTime records the current simulated hour.
func (m *SimulationMetrics) SetSimTime(hour float64) {
	if m == nil || m.simTime == nil {
		return
	}
	m.simTime.Set(hour)
}
