package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMetrics_ObserveCommand(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveCommand("create_product", OutcomeSuccess, time.Now())
	m.ObserveCommand("create_product", OutcomeSuccess, time.Now())
	m.ObserveCommand("create_product", OutcomeValidation, time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Commands.WithLabelValues("create_product", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Commands.WithLabelValues("create_product", OutcomeValidation)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.CommandDuration))
}

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncPublishFailure("product.created")
	m.IncOutboxDispatched()
	m.IncOutboxFailed()
	m.IncOutboxFailed()
	m.IncOutboxDead()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PublishFailures.WithLabelValues("product.created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutboxDispatched))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OutboxFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutboxDead))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveCommand("x", OutcomeError, time.Now())
		m.IncPublishFailure("x")
		m.IncOutboxDispatched()
		m.IncProjectionIndexed()
	})
}

func TestServe_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger, _ := logtest.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", prometheus.NewRegistry(), logger) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServe_BadAddress(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	err := Serve(context.Background(), "127.0.0.1:notaport", prometheus.NewRegistry(), logger)
	assert.Error(t, err)
}
