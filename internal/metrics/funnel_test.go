package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFunnel_Counters(t *testing.T) {
	f := MustNewFunnel(prometheus.NewRegistry())

	f.SessionStarted(3)
	f.Advanced("goals", "chair-yoga-experience")
	f.Advanced("goals", "chair-yoga-experience")
	f.Blocked("goals")
	f.EmailCaptured(true)
	f.EmailCaptured(false)
	f.Checkout("complete", "pending")

	assert.Equal(t, 1.0, testutil.ToFloat64(f.sessionsStarted))
	assert.Equal(t, 3.0, testutil.ToFloat64(f.sessionsActive))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.stepAdvances.WithLabelValues("goals", "chair-yoga-experience")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.blockedAdvances.WithLabelValues("goals")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.emailCaptures.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.checkouts.WithLabelValues("complete", "pending")))
}

func TestFunnel_ActiveSessionsFollowsSweep(t *testing.T) {
	f := MustNewFunnel(prometheus.NewRegistry())

	f.SessionStarted(5)
	f.ActiveSessions(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(f.sessionsActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.sessionsStarted))
}

func TestFunnel_NilIsSafe(t *testing.T) {
	var f *Funnel
	assert.NotPanics(t, func() {
		f.SessionStarted(1)
		f.ActiveSessions(0)
		f.Advanced("a", "b")
		f.Blocked("a")
		f.EmailCaptured(true)
		f.Checkout("starter", "paid")
	})
}
