package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/turtle/internal/validator"
	"github.com/aretw0/turtle/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine collectors on a private registry.
type Metrics struct {
	Registry    *prometheus.Registry
	Commands    *prometheus.CounterVec
	Reports     prometheus.Counter
	ParseErrors prometheus.Counter
	Placed      prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turtle_commands_total",
				Help: "Commands applied, by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		Reports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turtle_reports_total",
			Help: "Reports delivered to the output sink",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turtle_parse_errors_total",
			Help: "Command lines rejected by the parser",
		}),
		Placed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "turtle_placed",
			Help: "1 when the turtle holds a valid position",
		}),
	}
	m.Registry.MustRegister(m.Commands, m.Reports, m.ParseErrors, m.Placed)
	return m
}

// Hooks returns lifecycle hooks that record into m. bounds must match the
// engine's so that the placed gauge agrees with it.
func (m *Metrics) Hooks(bounds domain.Bounds) domain.LifecycleHooks {
	v := validator.New(bounds)
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			t := e.Transition
			m.Commands.WithLabelValues(string(t.Command.Action), string(t.Outcome)).Inc()
			if t.Changed() {
				if v.IsValidPosition(t.To) {
					m.Placed.Set(1)
				} else {
					m.Placed.Set(0)
				}
			}
		},
		OnReport: func(context.Context, *domain.ReportEvent) {
			m.Reports.Inc()
		},
		OnParseError: func(context.Context, *domain.ParseErrorEvent) {
			m.ParseErrors.Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
