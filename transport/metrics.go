package transport

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the Prometheus collectors the server exposes on
// config.Metrics.Path. Each Server owns its own registry rather than the
// global default one, so spinning up more than one Server in a process (as
// the tests do) never hits a duplicate-registration panic.
type metrics struct {
	registry *prometheus.Registry

	gamesCreated  prometheus.Counter
	gamesFinished prometheus.Counter
	turnsResolved prometheus.Counter
	illegalTurns  *prometheus.CounterVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()

	m := &metrics{
		registry: reg,
		gamesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simchess_games_created_total",
			Help: "Number of games created.",
		}),
		gamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simchess_games_finished_total",
			Help: "Number of games that reached a terminal state.",
		}),
		turnsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simchess_turns_resolved_total",
			Help: "Number of turns where both colors submitted a move.",
		}),
		illegalTurns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "simchess_illegal_turns_total",
			Help: "Number of turns rejected by the conflict analyzer, by illegality type.",
		}, []string{"type"}),
	}

	reg.MustRegister(m.gamesCreated, m.gamesFinished, m.turnsResolved, m.illegalTurns)
	return m
}
