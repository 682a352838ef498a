package config

import (
	"io/ioutil"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/jwaldner/fxvanilla/internal/logger"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// EngineConfig represents batch engine configuration
type EngineConfig struct {
	ExecutionMode string `yaml:"execution_mode"` // auto, parallel, sequential
	Workers       int    `yaml:"workers"`        // 0 = one per CPU
	BatchSize     int    `yaml:"batch_size"`     // Batch size from which auto mode goes parallel
}

// DefaultsConfig holds the initial contract shown to a dashboard
type DefaultsConfig struct {
	Spot         float64 `yaml:"spot" json:"spot"`
	Strike       float64 `yaml:"strike" json:"strike"`
	TimeToExpiry float64 `yaml:"time_to_expiry" json:"time_to_expiry"`
	DomesticRate float64 `yaml:"domestic_rate" json:"domestic_rate"`
	ForeignRate  float64 `yaml:"foreign_rate" json:"foreign_rate"`
	Volatility   float64 `yaml:"volatility" json:"volatility"`
	OptionType   string  `yaml:"option_type" json:"option_type"`
}

// SliceConfig controls the price-vs-strike grid as multiples of spot
type SliceConfig struct {
	Lower  float64 `yaml:"lower" json:"lower"`
	Upper  float64 `yaml:"upper" json:"upper"`
	Points int     `yaml:"points" json:"points"`
}

type Config struct {
	// Server settings
	Port string

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
	// Engine settings
	Engine EngineConfig `yaml:"engine"`
	// Dashboard defaults
	Defaults DefaultsConfig `yaml:"defaults"`
	// Strike slice settings
	Slice SliceConfig `yaml:"slice"`
}

type YAMLConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Logging  LoggingConfig  `yaml:"logging"`
	Engine   EngineConfig   `yaml:"engine"`
	Defaults yamlDefaults   `yaml:"defaults"`
	Slice    SliceConfig    `yaml:"slice"`
}

// yamlDefaults uses pointers so an explicit zero in the file is kept
type yamlDefaults struct {
	Spot         *float64 `yaml:"spot"`
	Strike       *float64 `yaml:"strike"`
	TimeToExpiry *float64 `yaml:"time_to_expiry"`
	DomesticRate *float64 `yaml:"domestic_rate"`
	ForeignRate  *float64 `yaml:"foreign_rate"`
	Volatility   *float64 `yaml:"volatility"`
	OptionType   *string  `yaml:"option_type"`
}

// Load reads .env and config.yaml from the working directory.
func Load() *Config {
	return LoadFrom("config.yaml")
}

// LoadFrom builds the configuration from environment variables (after loading
// a .env file if present) and overlays the YAML file at path.
func LoadFrom(path string) *Config {
	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn.Printf("ignoring .env: %v", err)
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Logging: LoggingConfig{
			LogLevel: getEnv("LOG_LEVEL", "info"),
			LogFile:  getEnv("LOG_FILE", "fxvanilla.log"),
		},

		// Default engine configuration
		Engine: EngineConfig{
			ExecutionMode: getEnv("ENGINE_EXECUTION_MODE", "auto"),
			Workers:       getEnvInt("ENGINE_WORKERS", 0),
			BatchSize:     getEnvInt("ENGINE_BATCH_SIZE", 64),
		},

		Defaults: DefaultsConfig{
			Spot:         1.05,
			Strike:       1.05,
			TimeToExpiry: 0.5,
			DomesticRate: 0.02,
			ForeignRate:  0.01,
			Volatility:   0.15,
			OptionType:   "call",
		},

		Slice: SliceConfig{
			Lower:  getEnvFloat("SLICE_LOWER", 0.6),
			Upper:  getEnvFloat("SLICE_UPPER", 1.4),
			Points: getEnvInt("SLICE_POINTS", 41),
		},
	}

	yamlCfg := loadYAMLConfig(path)
	if yamlCfg == nil {
		return cfg
	}

	// Environment wins over the file for the server port
	if yamlCfg.Server.Port != "" && os.Getenv("PORT") == "" {
		cfg.Port = yamlCfg.Server.Port
	}

	// Logging configuration from YAML
	if yamlCfg.Logging.LogLevel != "" {
		cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
	}
	if yamlCfg.Logging.LogFile != "" {
		cfg.Logging.LogFile = yamlCfg.Logging.LogFile
	}

	// Engine configuration from YAML
	if yamlCfg.Engine.ExecutionMode != "" {
		cfg.Engine.ExecutionMode = yamlCfg.Engine.ExecutionMode
	}
	if yamlCfg.Engine.Workers > 0 {
		cfg.Engine.Workers = yamlCfg.Engine.Workers
	}
	if yamlCfg.Engine.BatchSize > 0 {
		cfg.Engine.BatchSize = yamlCfg.Engine.BatchSize
	}

	// Any value present in the file replaces the default, zero included
	d := yamlCfg.Defaults
	setFloat(&cfg.Defaults.Spot, d.Spot)
	setFloat(&cfg.Defaults.Strike, d.Strike)
	setFloat(&cfg.Defaults.TimeToExpiry, d.TimeToExpiry)
	setFloat(&cfg.Defaults.DomesticRate, d.DomesticRate)
	setFloat(&cfg.Defaults.ForeignRate, d.ForeignRate)
	setFloat(&cfg.Defaults.Volatility, d.Volatility)
	if d.OptionType != nil {
		cfg.Defaults.OptionType = *d.OptionType
	}

	if yamlCfg.Slice.Lower > 0 {
		cfg.Slice.Lower = yamlCfg.Slice.Lower
	}
	if yamlCfg.Slice.Upper > 0 {
		cfg.Slice.Upper = yamlCfg.Slice.Upper
	}
	if yamlCfg.Slice.Points > 0 {
		cfg.Slice.Points = yamlCfg.Slice.Points
	}

	return cfg
}

func loadYAMLConfig(path string) *YAMLConfig {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		// Could not read config file - silently return nil
		return nil
	}

	var yamlCfg YAMLConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		// Could not parse config file - silently return nil
		return nil
	}

	return &yamlCfg
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
