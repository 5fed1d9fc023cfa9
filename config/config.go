package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Minio     MinioConfig     `yaml:"minio"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	NER       NERConfig       `yaml:"ner"`
	Store     StoreConfig     `yaml:"store"`
	Upload    UploadConfig    `yaml:"upload"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

type MinioConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Bucket     string `yaml:"bucket"`
	UseSSL     bool   `yaml:"use_ssl"`
	ExpireDays int    `yaml:"expire_days"`
}

// ExtractorConfig points at the text-extraction service that turns uploaded
// PDF/DOCX/TXT bytes into raw text.
type ExtractorConfig struct {
	APIURL   string `yaml:"api_url"`
	APIToken string `yaml:"api_token"`
}

// GeminiConfig holds the generative-text service settings. An empty APIKey
// disables the service; every analysis then uses the deterministic fallback.
type GeminiConfig struct {
	APIURL string `yaml:"api_url"`
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// NERConfig points at the named-entity recognition sidecar. An empty APIURL
// disables recognition; entity buckets then hold only pattern matches.
type NERConfig struct {
	APIURL string `yaml:"api_url"`
}

type StoreConfig struct {
	Path string `yaml:"path"` // sqlite database file, ":memory:" for tests
}

type UploadConfig struct {
	MaxSizeMB int `yaml:"max_size_mb"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Minio.ExpireDays == 0 {
		cfg.Minio.ExpireDays = 7
	}
	if cfg.Gemini.APIURL == "" {
		cfg.Gemini.APIURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.0-flash"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "legalclear.db"
	}
	if cfg.Upload.MaxSizeMB == 0 {
		cfg.Upload.MaxSizeMB = 10
	}

	return &cfg, nil
}
