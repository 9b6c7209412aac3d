// Package metrics 封装了基于 Prometheus 的指标采集注册表及管道/求解器标准监控指标。
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 封装了内部独立的 Prometheus 注册中心及预定义的标准监控指标。
type Metrics struct {
	registry *prometheus.Registry // 内部独立的 Prometheus 注册中心

	// 预定义的标准指标，减少各业务模块的样板代码
	SolvesTotal    *prometheus.CounterVec   // 求解总量 (维度: variant, status)
	SolveDuration  *prometheus.HistogramVec // 求解耗时分布 (维度: variant)
	ImputedCells   prometheus.Counter       // 累计填充的缺失单元格数
	PipelineRuns   *prometheus.CounterVec   // 管道运行总量 (维度: status)
	BatchInFlight  prometheus.Gauge         // 批量求解在途任务数
	ModelRows      prometheus.Histogram     // 提交模型的约束行数分布
	ModelVariables prometheus.Histogram     // 提交模型的决策变量数分布
}

// NewMetrics 初始化并返回一个新的指标采集器。
// 它会自动注册 Go 运行时指标和进程指标。
func NewMetrics(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: reg}

	// 初始化各标准指标...
	m.SolvesTotal = m.NewCounterVec(prometheus.CounterOpts{
		Name: "optpipe_solves_total",
		Help: "Total number of linear program solves",
	}, []string{"variant", "status"})

	m.SolveDuration = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "optpipe_solve_duration_seconds",
		Help:    "Linear program solve latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"variant"})

	m.ImputedCells = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "optpipe_imputed_cells_total",
		Help: "Total number of missing cells filled by imputation",
	})
	reg.MustRegister(m.ImputedCells)

	m.PipelineRuns = m.NewCounterVec(prometheus.CounterOpts{
		Name: "optpipe_pipeline_runs_total",
		Help: "Total number of pipeline invocations",
	}, []string{"status"})

	m.BatchInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "optpipe_batch_in_flight",
		Help: "Number of batch solve tasks currently running",
	})
	reg.MustRegister(m.BatchInFlight)

	m.ModelRows = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "optpipe_model_rows",
		Help:    "Distribution of constraint row counts per submitted model",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
	reg.MustRegister(m.ModelRows)

	m.ModelVariables = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "optpipe_model_variables",
		Help:    "Distribution of decision variable counts per submitted model",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
	reg.MustRegister(m.ModelVariables)

	slog.Info("unified metrics registry initialized", "service", serviceName)
	return m
}

// NewCounterVec 创建并注册一个新的计数器指标。
func (m *Metrics) NewCounterVec(opts prometheus.CounterOpts, labelNames []string) *prometheus.CounterVec {
	cv := prometheus.NewCounterVec(opts, labelNames)
	m.registry.MustRegister(cv)
	return cv
}

// NewGaugeVec 创建并注册一个新的仪表盘指标。
func (m *Metrics) NewGaugeVec(opts prometheus.GaugeOpts, labelNames []string) *prometheus.GaugeVec {
	gv := prometheus.NewGaugeVec(opts, labelNames)
	m.registry.MustRegister(gv)
	return gv
}

// NewHistogramVec 创建并注册一个新的直方图指标。
func (m *Metrics) NewHistogramVec(opts prometheus.HistogramOpts, labelNames []string) *prometheus.HistogramVec {
	hv := prometheus.NewHistogramVec(opts, labelNames)
	m.registry.MustRegister(hv)
	return hv
}

// Handler 返回用于暴露指标的 HTTP 处理器。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ExposeHttp 在指定端口启动一个独立的 HTTP 服务器用于暴露指标数据。
// 返回一个清理函数用于优雅关闭该服务器。
func (m *Metrics) ExposeHttp(port string) func() {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: m.Handler(),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server error", "error", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown metrics server", "error", err)
		}
	}
}
