package metrics

import (
	"time"

	"appraisal-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// переходы жизненного цикла аттестации
	appraisalTransitionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appraisal_transition_total",
		Help: "Переходы статусов аттестации по действию",
	}, []string{"action"})

	stageSaveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appraisal_stage_save_total",
		Help: "Сохранения разделов формы по разделу, операции и результату",
	}, []string{"stage", "operation", "result"})

	autofillTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appraisal_autofill_total",
		Help: "Автозаполнение следующего раздела по результату",
	}, []string{"stage", "result"})

	stageSaveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "appraisal_stage_save_duration_seconds",
		Help:    "Длительность сохранения раздела",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
)

func Transition(action string) {
	appraisalTransitionTotal.WithLabelValues(action).Inc()
}

func StageSaved(stage models.StageName, operation string, err error) {
	stageSaveTotal.WithLabelValues(string(stage), operation, result(err)).Inc()
}

func StageSaveTimer(stage models.StageName) *prometheus.Timer {
	return prometheus.NewTimer(stageSaveDuration.WithLabelValues(string(stage)))
}

func Autofill(stage models.StageName, err error) {
	autofillTotal.WithLabelValues(string(stage), result(err)).Inc()
}

// Handler отдача метрик для prometheus
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

var (
	workerRunTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appraisal_worker_runs_total",
		Help: "Проходы фоновых задач по результату",
	}, []string{"worker", "result"})

	workerRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "appraisal_worker_run_duration_seconds",
		Help:    "Длительность прохода фоновой задачи",
		Buckets: prometheus.DefBuckets,
	}, []string{"worker"})
)

func WorkerRun(worker string, err error, d time.Duration) {
	workerRunTotal.WithLabelValues(worker, result(err)).Inc()
	workerRunDuration.WithLabelValues(worker).Observe(d.Seconds())
}
