package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	InputFile      string      `yaml:"input_file" mapstructure:"input_file"`
	OutputDir      string      `yaml:"output_dir" mapstructure:"output_dir"`
	ItemsDir       string      `yaml:"items_dir" mapstructure:"items_dir"`
	FinalDataFile  string      `yaml:"final_data_file" mapstructure:"final_data_file"`
	IPSTrackingURL string      `yaml:"ips_tracking_url" mapstructure:"ips_tracking_url"`
	ZipLookupURL   string      `yaml:"zip_lookup_url" mapstructure:"zip_lookup_url"`
	Fetch          FetchConfig `yaml:"fetch" mapstructure:"fetch"`
	Log            LogConfig   `yaml:"log" mapstructure:"log"`
}

// FetchConfig configures outbound page fetches.
type FetchConfig struct {
	TrackingTimeoutSecs int     `yaml:"tracking_timeout_secs" mapstructure:"tracking_timeout_secs"`
	ZipTimeoutSecs      int     `yaml:"zip_timeout_secs" mapstructure:"zip_timeout_secs"`
	UserAgent           string  `yaml:"user_agent" mapstructure:"user_agent"`
	RequestsPerSecond   float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// TrackingTimeout returns the tracking page timeout.
func (f FetchConfig) TrackingTimeout() time.Duration {
	return time.Duration(f.TrackingTimeoutSecs) * time.Second
}

// ZipTimeout returns the zip code page timeout.
func (f FetchConfig) ZipTimeout() time.Duration {
	return time.Duration(f.ZipTimeoutSecs) * time.Second
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from path, or from config.{json,yaml} in ./config
// or the working directory when path is empty, then applies MEDSHIP_*
// environment overrides. A missing or malformed file is an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("MEDSHIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("output_dir", "output")
	v.SetDefault("items_dir", "output/items")
	v.SetDefault("final_data_file", "output/Final-Data.xlsx")
	v.SetDefault("zip_lookup_url", "https://www.zip-codes.com")
	v.SetDefault("fetch.tracking_timeout_secs", 15)
	v.SetDefault("fetch.zip_timeout_secs", 10)
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (compatible; MedshipTracker/1.0)")
	v.SetDefault("fetch.requests_per_second", 2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Keys that have no default still need binding for env-only overrides.
	for _, k := range []string{"input_file", "ips_tracking_url"} {
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			return nil, eris.New("config: no config.json or config.yaml found in ./config or .")
		}
		return nil, eris.Wrap(err, "config: read file")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a run cannot do without, including that the
// input workbook exists.
func (c *Config) Validate() error {
	required := []struct{ key, val string }{
		{"input_file", c.InputFile},
		{"final_data_file", c.FinalDataFile},
		{"items_dir", c.ItemsDir},
		{"ips_tracking_url", c.IPSTrackingURL},
	}
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			return eris.Errorf("config: %s is required", r.key)
		}
	}

	info, err := os.Stat(c.InputFile)
	if err != nil {
		return eris.Wrapf(err, "config: input file %s", c.InputFile)
	}
	if info.IsDir() {
		return eris.Errorf("config: input file %s is a directory", c.InputFile)
	}
	return nil
}

// EnsureDirs creates the output directories if they are absent.
func (c *Config) EnsureDirs() error {
	dirs := []string{c.OutputDir, c.ItemsDir, filepath.Dir(c.FinalDataFile)}
	for _, d := range dirs {
		if d == "" || d == "." {
			continue
		}
		if err := os.MkdirAll(d, 0o755); err != nil {
			return eris.Wrapf(err, "config: create dir %s", d)
		}
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
