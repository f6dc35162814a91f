package status

import (
	"net/http"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Metric names exposed at /metrics.
const (
	metricRuns             = "standings_runs_total"
	metricSkips            = "standings_skips_total"
	metricSourceErrors     = "standings_source_errors_total"
	metricRenderErrors     = "standings_render_errors_total"
	metricDispatchFailures = "standings_dispatch_failures_total"
	metricEntries          = "standings_board_entries"
	metricLastFetch        = "standings_last_fetch_timestamp_seconds"
)

// metrics serves GET /metrics in Prometheus text exposition format.
// Families are built by hand from the board counters — the bot's metric
// surface is small enough that a full client registry would be overkill.
func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c := h.board.Counters()
	families := []*dto.MetricFamily{
		counterFamily(metricRuns, "Pipeline runs attempted.", float64(c.Runs)),
		counterFamily(metricSkips, "Ticks declined by the time gate.", float64(c.Skips)),
		counterFamily(metricSourceErrors, "Runs aborted by a fetch or format failure.", float64(c.SourceErrors)),
		counterFamily(metricRenderErrors, "Runs aborted at the rendering stage.", float64(c.RenderErrors)),
		counterFamily(metricDispatchFailures, "Webhook sends that returned an error.", float64(c.DispatchFailures)),
	}

	if snap, ok := h.board.Latest(); ok {
		families = append(families,
			gaugeFamily(metricEntries, "Rows in the latest snapshot.", float64(len(snap.Rows))),
			gaugeFamily(metricLastFetch, "Unix time of the latest successful fetch.", float64(snap.FetchedAt.Unix())),
		)
	}

	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	w.Header().Set("Content-Type", string(format))
	enc := expfmt.NewEncoder(w, format)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return
		}
	}
}

func counterFamily(name, help string, v float64) *dto.MetricFamily {
	t := dto.MetricType_COUNTER
	return &dto.MetricFamily{
		Name:   &name,
		Help:   &help,
		Type:   &t,
		Metric: []*dto.Metric{{Counter: &dto.Counter{Value: &v}}},
	}
}

func gaugeFamily(name, help string, v float64) *dto.MetricFamily {
	t := dto.MetricType_GAUGE
	return &dto.MetricFamily{
		Name:   &name,
		Help:   &help,
		Type:   &t,
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: &v}}},
	}
}
