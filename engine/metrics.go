package engine

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/webtopd/webtop/model"
)

// MetricsExporter exposes the latest vitals over HTTP in Prometheus
// format. It uses its own registry so scrapes carry only page metrics,
// not Go runtime noise.
type MetricsExporter struct {
	server *http.Server

	lcpMs       prometheus.Gauge
	cls         prometheus.Gauge
	fidMs       prometheus.Gauge
	inpMs       prometheus.Gauge
	ttfbMs      prometheus.Gauge
	nodes       prometheus.Gauge
	images      prometheus.Gauge
	scripts     prometheus.Gauge
	stylesheets prometheus.Gauge
	warnings    *prometheus.GaugeVec
}

// NewMetricsExporter creates an exporter serving /metrics on addr.
func NewMetricsExporter(addr string) *MetricsExporter {
	e := &MetricsExporter{
		lcpMs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "webtop_lcp_ms",
			Help: "Largest contentful paint in milliseconds",
		}),
		cls: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "webtop_cls",
			Help: "Cumulative layout shift score",
		}),
		fidMs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "webtop_fid_ms",
			Help: "First input delay in milliseconds",
		}),
		inpMs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "webtop_inp_ms",
			Help: "Interaction to next paint in milliseconds",
		}),
		ttfbMs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "webtop_ttfb_ms",
			Help: "Time to first byte in milliseconds",
		}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "webtop_dom_nodes",
			Help: "Total DOM nodes in the document",
		}),
		images: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "webtop_resources_images",
			Help: "Image resources loaded by the page",
		}),
		scripts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "webtop_resources_scripts",
			Help: "Script resources loaded by the page",
		}),
		stylesheets: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "webtop_resources_stylesheets",
			Help: "Stylesheet resources loaded by the page",
		}),
		warnings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "webtop_warnings",
			Help: "Active warnings by severity",
		}, []string{"severity"}),
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(e.lcpMs, e.cls, e.fidMs, e.inpMs, e.ttfbMs,
		e.nodes, e.images, e.scripts, e.stylesheets, e.warnings)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	e.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return e
}

// Serve starts the HTTP listener in a goroutine.
func (e *MetricsExporter) Serve() {
	go func() {
		log.Printf("metrics exporter listening on %s", e.server.Addr)
		if err := e.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics exporter: %v", err)
		}
	}()
}

// Update publishes one snapshot's values.
func (e *MetricsExporter) Update(v model.Vitals, snap *model.MetricsSnapshot) {
	if v.LCP != nil {
		e.lcpMs.Set(*v.LCP)
	}
	e.cls.Set(v.CLS)
	if v.FID != nil {
		e.fidMs.Set(*v.FID)
	}
	if v.INP != nil {
		e.inpMs.Set(*v.INP)
	}
	if v.TTFB != nil {
		e.ttfbMs.Set(*v.TTFB)
	}

	if snap == nil {
		return
	}
	e.nodes.Set(float64(snap.TotalNodes))
	e.images.Set(float64(snap.TotalImages))
	e.scripts.Set(float64(snap.TotalScripts))
	e.stylesheets.Set(float64(snap.TotalStylesheets))

	counts := map[string]int{"high": 0, "medium": 0, "low": 0}
	for _, w := range snap.Warnings {
		counts[w.Severity]++
	}
	for sev, n := range counts {
		e.warnings.WithLabelValues(sev).Set(float64(n))
	}
}

// Close shuts down the HTTP listener.
func (e *MetricsExporter) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.server.Shutdown(ctx)
}

// instrumentedTicker publishes each tick to a metrics exporter.
type instrumentedTicker struct {
	inner    Ticker
	exporter *MetricsExporter
}

// NewInstrumentedTicker wraps a ticker so every tick updates the
// exporter.
func NewInstrumentedTicker(inner Ticker, exporter *MetricsExporter) Ticker {
	return &instrumentedTicker{inner: inner, exporter: exporter}
}

func (t *instrumentedTicker) Tick() (model.Vitals, *model.MetricsSnapshot) {
	vitals, snap := t.inner.Tick()
	t.exporter.Update(vitals, snap)
	return vitals, snap
}

func (t *instrumentedTicker) Base() *Engine {
	return t.inner.Base()
}
