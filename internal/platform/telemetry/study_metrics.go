package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "flashcards"

// StudyMetrics counts study activity as Prometheus series. It satisfies
// ports.StudyRecorder.
type StudyMetrics struct {
	registry      *prometheus.Registry
	quizzes       *prometheus.CounterVec
	quizzesDone   *prometheus.CounterVec
	cardsStudied  *prometheus.CounterVec
	cardsRevealed prometheus.Counter
	imports       *prometheus.CounterVec
	exports       *prometheus.CounterVec
}

// NewStudyMetrics registers the study counters plus the Go and process
// collectors on a fresh registry.
func NewStudyMetrics() *StudyMetrics {
	m := &StudyMetrics{
		registry: prometheus.NewRegistry(),
		quizzes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "quizzes_started_total",
			Help:      "Quizzes started, by subject.",
		}, []string{"subject"}),
		quizzesDone: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "quizzes_finished_total",
			Help:      "Quizzes walked to the last card, by subject.",
		}, []string{"subject"}),
		cardsStudied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cards_studied_total",
			Help:      "Cards in finished quizzes, by subject.",
		}, []string{"subject"}),
		cardsRevealed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cards_revealed_total",
			Help:      "Answers revealed during quizzes.",
		}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "imports_total",
			Help:      "Import attempts, by level and outcome.",
		}, []string{"level", "outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "exports_total",
			Help:      "Exports produced, by level.",
		}, []string{"level"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.quizzes,
		m.quizzesDone,
		m.cardsStudied,
		m.cardsRevealed,
		m.imports,
		m.exports,
	)

	return m
}

// Registry exposes the underlying registry.
func (m *StudyMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *StudyMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *StudyMetrics) QuizStarted(subject string) {
	m.quizzes.WithLabelValues(subject).Inc()
}

func (m *StudyMetrics) QuizFinished(subject string, cards int) {
	m.quizzesDone.WithLabelValues(subject).Inc()
	m.cardsStudied.WithLabelValues(subject).Add(float64(cards))
}

func (m *StudyMetrics) CardRevealed() {
	m.cardsRevealed.Inc()
}

func (m *StudyMetrics) Imported(level, outcome string) {
	m.imports.WithLabelValues(level, outcome).Inc()
}

func (m *StudyMetrics) Exported(level string) {
	m.exports.WithLabelValues(level).Inc()
}
