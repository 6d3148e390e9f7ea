package middleware

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	GamesStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "minebot_games_started_total",
		Help: "Games created by the new-game command",
	})
	GamesFinished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "minebot_games_finished_total",
		Help: "Games reaching a terminal state, by outcome",
	}, []string{"outcome"})
	MovesHandled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "minebot_moves_total",
		Help: "Cell actions processed",
	})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "minebot_request_duration_seconds",
		Help:    "Wall time spent handling a request",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

func init() {
	prometheus.MustRegister(GamesStarted)
	prometheus.MustRegister(GamesFinished)
	prometheus.MustRegister(MovesHandled)
	prometheus.MustRegister(requestDuration)
}

func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			requestDuration.
				WithLabelValues(r.Method).
				Observe(time.Since(start).Seconds())
		})
	}
}
