package telemetry

import (
	"errors"
	"fmt"
	"os"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/grafana/pyroscope-go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// ProfileTypes are the profiles collected when profiling is enabled
var ProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

func (p *Provider) startProfiler() error {
	cfg := p.config.Profiling
	if cfg.ServerAddress == "" {
		return errors.New("telemetry: profiler server address is required when profiling is enabled")
	}
	name := cfg.ApplicationName
	if name == "" {
		name = p.config.ServiceName
	}

	tags := map[string]string{"version": p.config.ServiceVersion}
	if hostname, err := os.Hostname(); err == nil {
		tags["hostname"] = hostname
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: name,
		ServerAddress:   cfg.ServerAddress,
		Logger:          pyroscopeLogger{p.logger.Named("pyroscope").Sugar()},
		Tags:            tags,
		ProfileTypes:    ProfileTypes,
	})
	if err != nil {
		return fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}
	p.profiler = profiler

	// Span profiles need both a running profiler and a tracer provider.
	if cfg.SpanProfiles && p.tracer != nil {
		otel.SetTracerProvider(otelpyroscope.NewTracerProvider(p.tracer))
	}

	p.logger.Info("Pyroscope profiler started",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("application_name", name),
		zap.Bool("span_profiles", cfg.SpanProfiles),
	)
	return nil
}

// pyroscopeLogger satisfies pyroscope.Logger through the sugared methods
type pyroscopeLogger struct {
	*zap.SugaredLogger
}
