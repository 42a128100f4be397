package configs

import (
	"fmt"
	"strings"

	"log-insights/internal/shared/validators"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "LOG_INSIGHTS"

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"input":       "analysis.input_path",
	"threshold":   "analysis.threshold",
	"csv":         "report.csv_path",
	"geolocation": "geolocation.provider",
	"log-level":   "log.level",
	"serve":       "serve",
	"port":        "server.port",
}

// NewFlagSet declares the command-line flags understood by LoadConfig.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "path to a YAML configuration file")
	fs.StringP("input", "i", "", "access log to analyze")
	fs.Int64P("threshold", "t", 10, "failed logins above which an address is suspicious")
	fs.String("csv", "", "CSV report destination (empty disables it)")
	fs.String("geolocation", "", "geolocation provider: ipinfo, ipapi or none")
	fs.String("log-level", "", "log level")
	fs.Bool("serve", false, "run the HTTP analysis API instead of a single analysis")
	fs.Int("port", 0, "HTTP port used with --serve")
	return fs
}

// LoadConfig builds the configuration from defaults, an optional YAML file,
// LOG_INSIGHTS_* environment variables and flags (in increasing precedence), then validates it.
var LoadConfig = func(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil || !flag.Changed {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("serve", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("analysis.input_path", "")
	v.SetDefault("analysis.threshold", 10)
	v.SetDefault("report.csv_path", "log_analysis_results.csv")
	v.SetDefault("report.console", true)
	v.SetDefault("report.chart", true)
	v.SetDefault("geolocation.provider", "ipinfo")
	v.SetDefault("geolocation.timeout", 5)
	v.SetDefault("geolocation.workers", 4)
	v.SetDefault("file_storage.root_dir", "./data")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout", 5)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("server.max_body_bytes", 64*1024*1024)
}

func validateConfig(cfg *Config) error {
	var validationErrors []string

	validate := validators.New()
	if err := validate.Struct(cfg); err != nil {
		ve, ok := err.(validators.ValidationErrors)
		if !ok {
			return fmt.Errorf("config validation failed: %w", err)
		}
		for _, e := range ve {
			validationErrors = append(validationErrors, formatValidationError(e))
		}
	}

	if !cfg.Serve && strings.TrimSpace(cfg.Analysis.InputPath) == "" {
		validationErrors = append(validationErrors, "analysis.inputpath (required)")
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}
	return nil
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()

	// "Config.Geolocation.Workers" -> "geolocation.workers"
	if parts := strings.Split(e.StructNamespace(), "."); len(parts) >= 2 {
		field = strings.ToLower(strings.Join(parts[1:], "."))
	}

	switch tag := e.Tag(); tag {
	case "required":
		return fmt.Sprintf("%s (required)", field)
	case "min", "max", "gte", "oneof":
		return fmt.Sprintf("%s (%s=%s)", field, tag, e.Param())
	default:
		return fmt.Sprintf("%s (%s)", field, tag)
	}
}
