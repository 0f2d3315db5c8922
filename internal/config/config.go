package config

import (
	"time"

	"github.com/srishhttii05/resolvex/internal/logging"
)

// Default configuration values.
const (
	defaultServiceName      = "resolvex-engine"
	defaultServiceVersion   = "1.0.0"
	defaultServicePort      = 5001
	defaultReadTimeoutSec   = 30
	defaultWriteTimeoutSec  = 60
	defaultDBHost           = "localhost"
	defaultDBPort           = 5432
	defaultDBUser           = "postgres"
	defaultDBName           = "resolvex"
	defaultDBSSLMode        = "disable"
	defaultVisionModel      = "gpt-4o-mini"
	defaultRelevanceModel   = "gpt-4o-mini"
	defaultChatModel        = "gpt-4o-mini"
	defaultOpenAIRPS        = 5
	defaultOpenAIBurst      = 10
	defaultOpenAITimeoutSec = 30
	defaultWaterModelPath   = "model/water_model.json"
	defaultMaxImages        = 5
	defaultLogLevel         = "info"
	defaultLogFormat        = "json"
)

// Config holds all configuration for the decision engine service.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Database   DatabaseConfig   `yaml:"database"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Water      WaterConfig      `yaml:"water"`
	Moderation ModerationConfig `yaml:"moderation"`
	Logging    logging.Config   `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Port         int           `env:"ENGINE_PORT" yaml:"port"`
	Debug        bool          `env:"APP_DEBUG"   yaml:"debug"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig holds decision-history database configuration.
// Persistence is best-effort; Enabled=false runs the service without it.
type DatabaseConfig struct {
	Enabled  bool   `env:"HISTORY_ENABLED"   yaml:"enabled"`
	Host     string `env:"POSTGRES_HOST"     yaml:"host"`
	Port     int    `env:"POSTGRES_PORT"     yaml:"port"`
	User     string `env:"POSTGRES_USER"     yaml:"user"`
	Password string `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database string `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode  string `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
}

// OpenAIConfig holds settings for the external classifier capabilities.
type OpenAIConfig struct {
	APIKey            string        `env:"OPENAI_API_KEY" yaml:"api_key"`
	VisionModel       string        `yaml:"vision_model"`
	RelevanceModel    string        `yaml:"relevance_model"`
	ChatModel         string        `yaml:"chat_model"`
	RequestsPerSecond int           `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	Timeout           time.Duration `yaml:"timeout"`
}

// WaterConfig holds the water-quality model location.
type WaterConfig struct {
	ModelPath string `env:"WATER_MODEL_PATH" yaml:"model_path"`
}

// ModerationConfig holds moderation pipeline settings.
type ModerationConfig struct {
	// MaxImages caps the number of images checked per report.
	MaxImages int `yaml:"max_images"`
}

// Load loads configuration from the specified path and applies defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	setDefaults(&cfg)
	// Env always wins, including over defaults.
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setOpenAIDefaults(&cfg.OpenAI)
	setWaterDefaults(&cfg.Water)
	setModerationDefaults(&cfg.Moderation)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = defaultReadTimeoutSec * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = defaultWriteTimeoutSec * time.Second
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
}

func setOpenAIDefaults(o *OpenAIConfig) {
	if o.VisionModel == "" {
		o.VisionModel = defaultVisionModel
	}
	if o.RelevanceModel == "" {
		o.RelevanceModel = defaultRelevanceModel
	}
	if o.ChatModel == "" {
		o.ChatModel = defaultChatModel
	}
	if o.RequestsPerSecond == 0 {
		o.RequestsPerSecond = defaultOpenAIRPS
	}
	if o.Burst == 0 {
		o.Burst = defaultOpenAIBurst
	}
	if o.Timeout == 0 {
		o.Timeout = defaultOpenAITimeoutSec * time.Second
	}
}

func setWaterDefaults(w *WaterConfig) {
	if w.ModelPath == "" {
		w.ModelPath = defaultWaterModelPath
	}
}

func setModerationDefaults(m *ModerationConfig) {
	if m.MaxImages == 0 {
		m.MaxImages = defaultMaxImages
	}
}

func setLoggingDefaults(l *logging.Config) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
