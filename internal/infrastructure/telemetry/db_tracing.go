package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for GORM query tracing
type DBTracingConfig struct {
	Enabled bool
	// DBName is reported as the db.name attribute
	DBName string
	// IncludeVariables keeps bound query values in the recorded statement
	IncludeVariables bool
}

// InstrumentGorm registers the otelgorm plugin on db. It is a no-op when
// tracing is disabled.
func InstrumentGorm(db *gorm.DB, cfg DBTracingConfig) error {
	if !cfg.Enabled {
		return nil
	}
	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.IncludeVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	return db.Use(otelgorm.NewPlugin(opts...))
}
