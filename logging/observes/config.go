package observes

import (
	"time"

	"github.com/spf13/viper"
)

// Config configures OpenTelemetry tracing.
type Config struct {
	Endpoint           string        `json:"endpoint" yaml:"endpoint"` // OTLP gRPC endpoint, empty keeps spans local
	Insecure           bool          `json:"insecure" yaml:"insecure"`
	ServiceName        string        `json:"service_name" yaml:"service_name"`
	Environment        string        `json:"environment" yaml:"environment"`
	SamplingRate       float64       `json:"sampling_rate" yaml:"sampling_rate" validate:"gte=0,lte=1"`
	MaxExportBatchSize int           `json:"max_export_batch_size" yaml:"max_export_batch_size" validate:"gte=1"`
	BatchTimeout       time.Duration `json:"batch_timeout" yaml:"batch_timeout"`
	ExportTimeout      time.Duration `json:"export_timeout" yaml:"export_timeout"`
}

// GetConfig reads the observes.tracer section
func GetConfig(v *viper.Viper) *Config {
	return &Config{
		Endpoint:           v.GetString("observes.tracer.endpoint"),
		Insecure:           v.GetBool("observes.tracer.insecure"),
		ServiceName:        v.GetString("observes.tracer.service_name"),
		Environment:        v.GetString("observes.tracer.environment"),
		SamplingRate:       v.GetFloat64("observes.tracer.sampling_rate"),
		MaxExportBatchSize: v.GetInt("observes.tracer.max_export_batch_size"),
		BatchTimeout:       v.GetDuration("observes.tracer.batch_timeout"),
		ExportTimeout:      v.GetDuration("observes.tracer.export_timeout"),
	}
}
