package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSimulationMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSimulationMetrics(reg)

	m.ObserveTick("1", 20*time.Millisecond)
	m.IncBooking("SIMULATED")
	m.IncBooking("SIMULATED")
	m.IncBooking("MANUAL")
	m.IncDeparture("early")
	m.AddRevenue(42.50)
	m.SetOccupancy(0.73)
	m.SetSimTime(18.2)

	if got := testutil.ToFloat64(m.bookings.WithLabelValues("SIMULATED")); got != 2 {
		t.Fatalf("expected 2 simulated bookings, got %v", got)
	}
	if got := testutil.ToFloat64(m.revenue); got != 42.50 {
		t.Fatalf("expected revenue 42.50, got %v", got)
	}
	if got := testutil.ToFloat64(m.occupancy); got != 0.73 {
		t.Fatalf("expected occupancy 0.73, got %v", got)
	}
}

func TestSimulationMetricsNilSafe(t *testing.T) {
	var m *SimulationMetrics
	m.ObserveTick("1", time.Second)
	m.IncBooking("MANUAL")
	m.AddRevenue(1)
	m.SetOccupancy(0)

	empty := NewSimulationMetrics(nil)
	empty.IncDeparture("expired")
	empty.SetSimTime(6)
}
