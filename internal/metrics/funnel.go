package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Funnel exposes Prometheus collectors that report quiz progress.
type Funnel struct {
	sessionsStarted prometheus.Counter
	stepAdvances    *prometheus.CounterVec
	blockedAdvances *prometheus.CounterVec
	emailCaptures   *prometheus.CounterVec
	checkouts       *prometheus.CounterVec
	sessionsActive  prometheus.Gauge
}

var (
	defaultFunnelOnce sync.Once
	sharedFunnel      *Funnel
)

// Default returns the Funnel registered with the global Prometheus registry.
// Collectors are created once so repeated construction does not panic on
// duplicate registration.
func Default() *Funnel {
	defaultFunnelOnce.Do(func() {
		sharedFunnel = MustNewFunnel(prometheus.DefaultRegisterer)
	})
	return sharedFunnel
}

// MustNewFunnel builds the collectors and registers them with reg. Tests pass
// a fresh prometheus.NewRegistry().
func MustNewFunnel(reg prometheus.Registerer) *Funnel {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := &Funnel{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "yogafunnel",
			Subsystem: "quiz",
			Name:      "sessions_started_total",
			Help:      "Quiz sessions created.",
		}),
		stepAdvances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yogafunnel",
			Subsystem: "quiz",
			Name:      "step_advances_total",
			Help:      "Forward moves, labelled by the step that was left and the step reached.",
		}, []string{"from", "to"}),
		blockedAdvances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yogafunnel",
			Subsystem: "quiz",
			Name:      "blocked_advances_total",
			Help:      "Actions refused because the step was not answered or not reached.",
		}, []string{"step"}),
		emailCaptures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yogafunnel",
			Subsystem: "leads",
			Name:      "email_captures_total",
			Help:      "Email submissions by outcome.",
		}, []string{"outcome"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yogafunnel",
			Subsystem: "checkout",
			Name:      "checkouts_total",
			Help:      "Checkout hand-offs by plan and status.",
		}, []string{"plan", "status"}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "yogafunnel",
			Subsystem: "quiz",
			Name:      "sessions_active",
			Help:      "Sessions currently held in memory.",
		}),
	}

	collectors := []prometheus.Collector{
		f.sessionsStarted, f.stepAdvances, f.blockedAdvances,
		f.emailCaptures, f.checkouts, f.sessionsActive,
	}
	for _, c := range collectors {
		reg.MustRegister(c)
	}
	return f
}

func (f *Funnel) SessionStarted(active int) {
	if f == nil {
		return
	}
	f.sessionsStarted.Inc()
	f.sessionsActive.Set(float64(active))
}

// ActiveSessions sets the gauge after expired sessions were swept.
func (f *Funnel) ActiveSessions(active int) {
	if f == nil {
		return
	}
	f.sessionsActive.Set(float64(active))
}

func (f *Funnel) Advanced(from, to string) {
	if f == nil {
		return
	}
	f.stepAdvances.WithLabelValues(from, to).Inc()
}

func (f *Funnel) Blocked(step string) {
	if f == nil {
		return
	}
	f.blockedAdvances.WithLabelValues(step).Inc()
}

func (f *Funnel) EmailCaptured(accepted bool) {
	if f == nil {
		return
	}
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	f.emailCaptures.WithLabelValues(outcome).Inc()
}

func (f *Funnel) Checkout(plan, status string) {
	if f == nil {
		return
	}
	f.checkouts.WithLabelValues(plan, status).Inc()
}
