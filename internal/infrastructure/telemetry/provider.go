// Package telemetry provides OpenTelemetry tracing, metrics and log export
// plus Pyroscope continuous profiling for the storefront.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/grafana/pyroscope-go"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds telemetry configuration
type Config struct {
	Enabled           bool
	CollectorEndpoint string
	Insecure          bool
	ServiceName       string
	ServiceVersion    string
	SamplingRatio     float64
	MetricsInterval   time.Duration
	LogsEnabled       bool
	Profiling         ProfilingConfig
}

// ProfilingConfig holds Pyroscope profiling configuration
type ProfilingConfig struct {
	Enabled         bool
	ServerAddress   string
	ApplicationName string
	// SpanProfiles labels CPU samples with the active span id
	SpanProfiles bool
}

// Provider owns the OpenTelemetry SDK providers and the profiler. A disabled
// Provider hands out no-op meters and leaves loggers untouched.
type Provider struct {
	config Config
	logger *zap.Logger

	tracer   *sdktrace.TracerProvider
	meter    *sdkmetric.MeterProvider
	logs     *sdklog.LoggerProvider
	profiler *pyroscope.Profiler

	mu       sync.Mutex
	shutdown bool
}

// Setup creates the providers described by cfg and installs them globally
func Setup(ctx context.Context, cfg Config, logger *zap.Logger) (*Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Provider{config: cfg, logger: logger.Named("telemetry")}

	if !cfg.Enabled {
		p.logger.Info("Telemetry disabled, using no-op providers")
		return p, nil
	}
	if cfg.CollectorEndpoint == "" {
		return nil, errors.New("telemetry: collector endpoint is required when enabled")
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if err := p.startTracing(ctx, res); err != nil {
		return nil, err
	}
	if err := p.startMetrics(ctx, res); err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	if cfg.LogsEnabled {
		if err := p.startLogs(ctx, res); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
	}
	if cfg.Profiling.Enabled {
		if err := p.startProfiler(); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
	}

	p.logger.Info("OpenTelemetry initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.String("service_name", cfg.ServiceName),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
		zap.Bool("logs", cfg.LogsEnabled),
		zap.Bool("profiling", cfg.Profiling.Enabled),
	)
	return p, nil
}

func (p *Provider) startTracing(ctx context.Context, res *resource.Resource) error {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(p.config.CollectorEndpoint)}
	if p.config.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	p.tracer = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(p.config.SamplingRatio)),
	)
	otel.SetTracerProvider(p.tracer)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return nil
}

func (p *Provider) startMetrics(ctx context.Context, res *resource.Resource) error {
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(p.config.CollectorEndpoint)}
	if p.config.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}

	interval := p.config.MetricsInterval
	if interval <= 0 {
		interval = 60 * time.Second
	}
	p.meter = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(p.meter)
	return nil
}

func (p *Provider) startLogs(ctx context.Context, res *resource.Resource) error {
	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(p.config.CollectorEndpoint)}
	if p.config.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP logs exporter: %w", err)
	}

	p.logs = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(p.logs)
	return nil
}

// Sampler maps a ratio to a parent-based sampler. Ratios at or above 1
// sample everything, ratios at or below 0 sample nothing.
func Sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

// Enabled reports whether the SDK providers are running
func (p *Provider) Enabled() bool {
	return p.tracer != nil
}

// Meter returns a named meter, or a no-op meter when telemetry is disabled
func (p *Provider) Meter(name string) metric.Meter {
	if p.meter == nil {
		return noop.NewMeterProvider().Meter(name)
	}
	return p.meter.Meter(name)
}

// Bridge tees log into the OpenTelemetry logs pipeline at the same level.
// Without a logs pipeline log is returned unchanged.
func (p *Provider) Bridge(log *zap.Logger) *zap.Logger {
	if p.logs == nil {
		return log
	}
	otelCore, err := zapcore.NewIncreaseLevelCore(
		otelzap.NewCore(p.config.ServiceName, otelzap.WithLoggerProvider(p.logs)),
		log.Level(),
	)
	if err != nil {
		log.Warn("Logs bridge disabled", zap.Error(err))
		return log
	}
	return log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, otelCore)
	}))
}

// Shutdown flushes and stops every provider. It is safe to call more than once.
func (p *Provider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shutdown {
		return nil
	}
	p.shutdown = true

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var errs []error
	if p.profiler != nil {
		if err := p.profiler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("profiler: %w", err))
		}
	}
	if p.tracer != nil {
		if err := p.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	if p.meter != nil {
		if err := p.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider: %w", err))
		}
	}
	if p.logs != nil {
		if err := p.logs.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("logger provider: %w", err))
		}
	}
	if len(errs) > 0 {
		p.logger.Error("Telemetry shutdown failed", zap.Errors("errors", errs))
		return errors.Join(errs...)
	}
	return nil
}
