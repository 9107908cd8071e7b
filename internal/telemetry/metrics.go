// Package telemetry exposes simulation counters to Prometheus.
package telemetry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/oops"

	"github.com/vovakirdan/arcade-sim/internal/entity"
)

// Metrics counts ticks and simulation events. It implements entity.Observer.
type Metrics struct {
	Ticks       *prometheus.CounterVec
	Events      *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	Finishes    prometheus.Histogram
	Positions   prometheus.Histogram
}

var _ entity.Observer = (*Metrics)(nil)

// NewMetrics creates the simulation metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcade_sim_ticks_total",
				Help: "Total number of simulation ticks by game",
			},
			[]string{"game"},
		),
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcade_sim_events_total",
				Help: "Total number of simulation events by game and event name",
			},
			[]string{"game", "event"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcade_sim_room_transitions_total",
				Help: "Room transition requests by outcome",
			},
			[]string{"outcome"},
		),
		Finishes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "arcade_sim_race_finish_seconds",
				Help:    "Race clock at the finish line, every racer",
				Buckets: prometheus.LinearBuckets(30, 15, 10),
			},
		),
		Positions: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "arcade_sim_race_position",
				Help:    "Player's final race position",
				Buckets: prometheus.LinearBuckets(1, 1, 8),
			},
		),
	}

	reg.MustRegister(m.Ticks, m.Events, m.Transitions, m.Finishes, m.Positions)
	return m
}

// ObserveTick records one completed tick and its events.
func (m *Metrics) ObserveTick(game string, events []entity.Event) {
	m.Ticks.WithLabelValues(game).Inc()
	for _, e := range events {
		m.Events.WithLabelValues(game, e.Name()).Inc()
		switch ev := e.(type) {
		case entity.TransitionStarted:
			m.Transitions.WithLabelValues("accepted").Inc()
		case entity.TransitionRejected:
			m.Transitions.WithLabelValues(ev.Reason).Inc()
		case entity.Finished:
			m.Finishes.Observe(ev.Time / 1000)
		case entity.RaceOver:
			m.Positions.Observe(float64(ev.Position))
		}
	}
}

// NewRegistry returns a registry with the Go runtime collectors and the simulation metrics.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg, NewMetrics(reg)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	return mux
}

// Serve runs an HTTP server on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return oops.In("telemetry").With("addr", addr).Wrap(err)
	}

	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return oops.In("telemetry").With("addr", addr).Wrap(err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return oops.In("telemetry").With("operation", "shutdown").Wrap(err)
		}
		<-errCh
		return nil
	}
}
