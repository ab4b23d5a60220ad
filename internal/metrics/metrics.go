package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"

	SourceFetch = "fetch"
	SourcePush  = "push"

	SnapshotApplied   = "applied"
	SnapshotMalformed = "malformed"
	SnapshotStale     = "stale"
)

var (
	// HTTPRequests counts requests served by the UI server.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "candy_ui_http_requests_total",
		Help: "Requests served by the UI server.",
	}, []string{"method", "route", "status"})

	// APICalls counts calls made to the inventory API.
	APICalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "candy_ui_api_calls_total",
		Help: "Calls made to the inventory API by verb and outcome.",
	}, []string{"verb", "outcome"})

	// Actions counts user actions run through the view controller.
	Actions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "candy_ui_actions_total",
		Help: "User actions by name and outcome.",
	}, []string{"action", "outcome"})

	// Snapshots counts inventory lists received from fetches and the push
	// stream. Stale ones lost the race against a newer snapshot.
	Snapshots = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "candy_ui_inventory_snapshots_total",
		Help: "Inventory snapshots by source and outcome.",
	}, []string{"source", "outcome"})

	// Bans counts clients banned for exceeding the action rate limit.
	Bans = promauto.NewCounter(prometheus.CounterOpts{
		Name: "candy_ui_bans_total",
		Help: "Clients banned after repeated rate limit strikes.",
	})
)

func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
