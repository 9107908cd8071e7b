package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-sim/internal/entity"
)

func TestObserveTickCountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveTick("dungeon", []entity.Event{
		entity.Damaged{Target: 2, Amount: 2},
		entity.Damaged{Target: 3, Amount: 2},
		entity.TransitionRejected{Target: "dungeon_1_boss", Reason: "needs_key"},
		entity.TransitionStarted{From: "a", To: "b"},
	})
	m.ObserveTick("dungeon", nil)
	m.ObserveTick("kart", []entity.Event{
		entity.Finished{Actor: 1, Time: 92000},
		entity.RaceOver{Position: 2},
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Ticks.WithLabelValues("dungeon")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Ticks.WithLabelValues("kart")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Events.WithLabelValues("dungeon", "damaged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("needs_key")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("accepted")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Finishes))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Positions))
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg, m := NewRegistry()
	m.ObserveTick("kart", nil)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `arcade_sim_ticks_total{game="kart"} 1`))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler()) }()

	cancel()
	assert.NoError(t, <-done)
}

func TestServeRejectsBadAddress(t *testing.T) {
	err := Serve(context.Background(), "not-an-address", http.NotFoundHandler())
	assert.Error(t, err)
}
