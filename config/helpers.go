package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/ncobase/geocontent/query"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "geocontent")
	v.SetDefault("run_mode", "release")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("logger.level", 4)
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")

	v.SetDefault("observes.tracer.service_name", "geocontent")
	v.SetDefault("observes.tracer.sampling_rate", 1.0)
	v.SetDefault("observes.tracer.max_export_batch_size", 512)
	v.SetDefault("observes.tracer.batch_timeout", 5*time.Second)
	v.SetDefault("observes.tracer.export_timeout", 30*time.Second)

	v.SetDefault("query.default_limit", query.DefaultLimit)
	v.SetDefault("query.max_result_window", query.MaxResultWindow)

	v.SetDefault("data.mongodb.database", "geocontent")
	v.SetDefault("data.mongodb.master.uri", "mongodb://localhost:27017")
	v.SetDefault("data.mongodb.strategy", "round_robin")
}
