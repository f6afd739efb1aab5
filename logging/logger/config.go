package logger

import "github.com/spf13/viper"

// Config logger configuration
type Config struct {
	Level      int    `json:"level" yaml:"level" validate:"gte=0,lte=6"`
	Format     string `json:"format" yaml:"format" validate:"omitempty,oneof=json text"`
	Output     string `json:"output" yaml:"output" validate:"omitempty,oneof=stdout stderr file"`
	OutputFile string `json:"output_file" yaml:"output_file" validate:"required_if=Output file"`
}

// GetConfig reads the logger section
func GetConfig(v *viper.Viper) *Config {
	return &Config{
		Level:      v.GetInt("logger.level"),
		Format:     v.GetString("logger.format"),
		Output:     v.GetString("logger.output"),
		OutputFile: v.GetString("logger.output_file"),
	}
}
