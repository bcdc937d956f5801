// Package metrics registers the Prometheus instruments the engine updates
// as rounds run: how many start, how bots leave a round, and how the push
// engine resolves.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RoundsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pushbots_rounds_started_total",
			Help: "Number of rounds started by the lobby.",
		},
	)

	BotsJoined = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pushbots_bots_joined_total",
			Help: "Number of participants submitted to the lobby.",
		},
	)

	PushResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pushbots_push_resolutions_total",
			Help: "Number of push resolutions by action (move, drill) and outcome.",
		},
		[]string{"action", "outcome"},
	)

	Squishes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pushbots_squishes_total",
			Help: "Number of bots destroyed by being squished.",
		},
	)

	AbyssDeaths = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pushbots_abyss_deaths_total",
			Help: "Number of entities (bots or pushed blocks) destroyed by falling into an abyss.",
		},
	)

	Disconnects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pushbots_disconnects_total",
			Help: "Number of bots disconnected on malformed input or stream failure.",
		},
	)

	ActiveBots = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pushbots_active_bots",
			Help: "Number of bots currently holding an Input component in the running round.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RoundsStarted,
		BotsJoined,
		PushResolutions,
		Squishes,
		AbyssDeaths,
		Disconnects,
		ActiveBots,
	)
}
