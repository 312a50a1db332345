// Package metrics records per-backend clustering measurements in a private
// Prometheus registry and exports them in the text exposition format.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "colorquant"

// Recorder holds the collectors for one process run.
type Recorder struct {
	registry *prometheus.Registry

	duration   *prometheus.GaugeVec
	iterations *prometheus.GaugeVec
	inertia    *prometheus.GaugeVec
	empty      *prometheus.GaugeVec
	pixels     prometheus.Gauge
	centroids  prometheus.Gauge
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cluster_duration_seconds",
			Help:      "Wall time of the clustering run.",
		}, []string{"backend"}),
		iterations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cluster_iterations",
			Help:      "Assignment and update passes performed.",
		}, []string{"backend"}),
		inertia: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cluster_inertia",
			Help:      "Sum of squared distances from pixels to their centroid.",
		}, []string{"backend"}),
		empty: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cluster_empty_centroids",
			Help:      "Centroids with no assigned pixels.",
		}, []string{"backend"}),
		pixels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "input_pixels",
			Help:      "Pixels in the input image.",
		}),
		centroids: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "centroids",
			Help:      "Requested palette size.",
		}),
	}

	r.registry.MustRegister(r.duration, r.iterations, r.inertia, r.empty, r.pixels, r.centroids)
	return r
}

// ObserveInput records the problem size.
func (r *Recorder) ObserveInput(pixels, centroids int) {
	r.pixels.Set(float64(pixels))
	r.centroids.Set(float64(centroids))
}

// ObserveRun records one backend's run.
func (r *Recorder) ObserveRun(backend string, elapsed time.Duration, iterations int, inertia float64, empty int) {
	r.duration.WithLabelValues(backend).Set(elapsed.Seconds())
	r.iterations.WithLabelValues(backend).Set(float64(iterations))
	r.inertia.WithLabelValues(backend).Set(inertia)
	r.empty.WithLabelValues(backend).Set(float64(empty))
}

// WriteText writes all metrics to w in the text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
	}
	return nil
}
