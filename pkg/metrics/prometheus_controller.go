package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultPath = "/metrics"

type Options struct {
	// Path defaults to DefaultPath.
	Path string
	// Gatherer defaults to the global registry, where the repository
	// request counters live.
	Gatherer    prometheus.Gatherer
	OpenMetrics bool
}

// PrometheusController exposes the scrape endpoint of the dev backend.
type PrometheusController struct {
	path    string
	handler http.Handler
}

func NewPrometheusController(opts Options) *PrometheusController {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	return &PrometheusController{
		path: opts.Path,
		handler: promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{
			ErrorHandling:     promhttp.ContinueOnError,
			EnableOpenMetrics: opts.OpenMetrics,
		}),
	}
}

func (c *PrometheusController) Key() string {
	return c.path
}

func (c *PrometheusController) Register(r *mux.Router) {
	r.Handle(c.path, c.handler).Methods(http.MethodGet, http.MethodHead)
}
