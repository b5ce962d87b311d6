package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"cane-forecast/internal/data"
	"cane-forecast/internal/grading"
	"cane-forecast/internal/sanitize"
	"cane-forecast/internal/strategy"
)

// EnvPrefix prefixes environment overrides, e.g. CANE_SERVER_PORT.
const EnvPrefix = "CANE"

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Forecast   ForecastConfig   `mapstructure:"forecast"`
	Grading    GradingConfig    `mapstructure:"grading"`
	Sanitizer  SanitizerConfig  `mapstructure:"sanitizer"`
	Normalizer NormalizerConfig `mapstructure:"normalizer"`
	Logging    LoggingConfig    `mapstructure:"logging"`

	// path is the file the config was read from, if any.
	path string
}

type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Env            string        `mapstructure:"env"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	MaxUploadMB    int           `mapstructure:"max_upload_mb"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
}

type ForecastConfig struct {
	Strategy   string  `mapstructure:"strategy"`
	Multiplier float64 `mapstructure:"multiplier"`
}

type GradingConfig struct {
	// Table names a built-in table (v1, v2). TableFile, when set, wins.
	Table     string `mapstructure:"table"`
	TableFile string `mapstructure:"table_file"`
	// TablesDir holds extra *.yaml tables selectable per request.
	TablesDir string `mapstructure:"tables_dir"`
}

type SanitizerConfig struct {
	Policy   string   `mapstructure:"policy"`
	OrderIDs []string `mapstructure:"order_ids"`
}

type NormalizerConfig struct {
	StrictSexCodes bool `mapstructure:"strict_sex_codes"`
	AssetMin       int  `mapstructure:"asset_min"`
	AssetMax       int  `mapstructure:"asset_max"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from path (optional) and CANE_* environment
// variables, then validates it.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads config without validating it.
func LoadUnchecked(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	c.path = path
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("server.session_ttl", "2h")

	v.SetDefault("forecast.strategy", strategy.NameTrendAverage)
	v.SetDefault("forecast.multiplier", strategy.DefaultMultiplier)

	v.SetDefault("grading.table", "v2")
	v.SetDefault("grading.table_file", "")
	v.SetDefault("grading.tables_dir", "")

	v.SetDefault("sanitizer.policy", string(sanitize.PolicyZeroFill))
	v.SetDefault("sanitizer.order_ids", []string{sanitize.LegacyOrderID})

	d := data.DefaultLoadOptions()
	v.SetDefault("normalizer.strict_sex_codes", false)
	v.SetDefault("normalizer.asset_min", d.AssetMin)
	v.SetDefault("normalizer.asset_max", d.AssetMax)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Server.MaxUploadMB < 1 {
		return errors.New("server.max_upload_mb must be at least 1")
	}
	if c.Server.SessionTTL < time.Minute {
		return errors.New("server.session_ttl must be at least 1 minute")
	}
	if _, err := c.Strategy(); err != nil {
		return fmt.Errorf("forecast: %w", err)
	}
	if c.Forecast.Multiplier <= 0 {
		return errors.New("forecast.multiplier must be > 0")
	}
	if _, err := c.GradingTable(); err != nil {
		return fmt.Errorf("grading: %w", err)
	}
	if _, err := sanitize.ParsePolicy(c.Sanitizer.Policy); err != nil {
		return fmt.Errorf("sanitizer: %w", err)
	}
	if err := c.LoadOptions().Validate(); err != nil {
		return fmt.Errorf("normalizer: %w", err)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return errors.New("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return errors.New("logging.format must be one of: json, console")
	}
	return nil
}

// Strategy builds the configured forecast strategy.
func (c *Config) Strategy() (strategy.Strategy, error) {
	return strategy.ByName(c.Forecast.Strategy, strategy.Params{Multiplier: c.Forecast.Multiplier})
}

// GradingTable resolves the threshold table: the table file when set,
// otherwise the named built-in table.
func (c *Config) GradingTable() (grading.Table, error) {
	if c.Grading.TableFile == "" {
		return grading.TableByName(c.Grading.Table)
	}
	return LoadTableFile(c.resolve(c.Grading.TableFile))
}

// GradingCatalog returns every selectable table: the active table first,
// then the built-ins, then the tables found in TablesDir. Invalid files in
// TablesDir are reported in skipped and left out.
func (c *Config) GradingCatalog() (cat *grading.Catalog, skipped map[string]error, err error) {
	active, err := c.GradingTable()
	if err != nil {
		return nil, nil, err
	}
	cat = grading.NewCatalog(active, grading.TableV2, grading.TableV1)
	if c.Grading.TablesDir == "" {
		return cat, nil, nil
	}
	tables, skipped, err := LoadTableDir(c.resolve(c.Grading.TablesDir))
	if err != nil {
		return nil, nil, err
	}
	for _, t := range tables {
		cat.Add(t)
	}
	return cat, skipped, nil
}

// Sanitizer builds the configured missing-value sanitizer.
func (c *Config) Sanitizer() (*sanitize.Sanitizer, error) {
	p, err := sanitize.ParsePolicy(c.Sanitizer.Policy)
	if err != nil {
		return nil, err
	}
	return sanitize.New(p, c.Sanitizer.OrderIDs), nil
}

// LoadOptions returns the normalizer settings for uploads.
func (c *Config) LoadOptions() data.LoadOptions {
	return data.LoadOptions{
		StrictSexCodes: c.Normalizer.StrictSexCodes,
		AssetMin:       c.Normalizer.AssetMin,
		AssetMax:       c.Normalizer.AssetMax,
	}
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// resolve interprets relative paths relative to the config file directory,
// falling back to the path as given (relative to cwd).
func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.path == "" {
		return p
	}
	cand := filepath.Join(filepath.Dir(c.path), p)
	if fileExists(cand) {
		return cand
	}
	return p
}
