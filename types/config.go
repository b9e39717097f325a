package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool       `mapstructure:"verbose"`
	JSON    bool       `mapstructure:"json"`
	Config  string     `mapstructure:"config"`
	Data    DataConfig `mapstructure:"data" validate:"required"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	Dir      string `mapstructure:"dir" validate:"required"`
	File     string `mapstructure:"file" validate:"required"`
	FileLock bool   `mapstructure:"fileLock"`
}
