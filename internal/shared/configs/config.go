package configs

// Config holds all configuration for the application.
type Config struct {
	Serve       bool              `mapstructure:"serve"`
	Log         LogConfig         `mapstructure:"log"`
	Analysis    AnalysisConfig    `mapstructure:"analysis"`
	Report      ReportConfig      `mapstructure:"report"`
	Geolocation GeolocationConfig `mapstructure:"geolocation"`
	FileStorage FileStorageConfig `mapstructure:"file_storage"`
	Server      ServerConfig      `mapstructure:"server"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=trace debug info warn error fatal panic disabled"`
}

// AnalysisConfig holds the parameters of one analysis run.
type AnalysisConfig struct {
	InputPath string `mapstructure:"input_path"`                 // required unless serving
	Threshold int64  `mapstructure:"threshold" validate:"gte=0"` // failed logins strictly above are suspicious
}

// ReportConfig selects the report outputs of the command-line run.
type ReportConfig struct {
	CSVPath string `mapstructure:"csv_path"` // empty disables the CSV file
	Console bool   `mapstructure:"console"`
	Chart   bool   `mapstructure:"chart"`
}

// GeolocationConfig holds the address enrichment settings.
type GeolocationConfig struct {
	Provider string `mapstructure:"provider" validate:"required,oneof=ipinfo ipapi none"`
	Timeout  int    `mapstructure:"timeout" validate:"min=1"`        // seconds, per lookup
	Workers  int    `mapstructure:"workers" validate:"min=1,max=64"` // concurrent lookups
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// ServerConfig holds server-related configuration, only used with --serve.
type ServerConfig struct {
	Port              int   `mapstructure:"port" validate:"min=1,max=65535"`
	ReadHeaderTimeout int   `mapstructure:"read_header_timeout" validate:"min=1"` // seconds
	ReadTimeout       int   `mapstructure:"read_timeout" validate:"min=1"`        // seconds (headers+body)
	WriteTimeout      int   `mapstructure:"write_timeout" validate:"min=1"`       // seconds (response)
	IdleTimeout       int   `mapstructure:"idle_timeout" validate:"min=1"`        // seconds (keep-alive)
	MaxBodyBytes      int64 `mapstructure:"max_body_bytes" validate:"min=1"`
}
