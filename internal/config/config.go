// Package config loads leadscope configuration from a YAML file with
// environment variable overrides.
//
// .env and .env.local are loaded first when present, then the YAML file, then
// every field carrying an `env` tag is overridden from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Dany7865/IITR-esummit07/internal/logger"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      logger.Config  `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	NLP      NLPConfig      `yaml:"nlp"`
	Notify   NotifyConfig   `yaml:"notify"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"DATABASE_PATH"`
}

type ServerConfig struct {
	Port                int    `yaml:"port" env:"SERVER_PORT"`
	BaseURL             string `yaml:"base_url" env:"BASE_URL"`
	WhatsAppVerifyToken string `yaml:"whatsapp_verify_token" env:"WHATSAPP_VERIFY_TOKEN"`
}

type ScoringConfig struct {
	HighThreshold   int `yaml:"high_threshold" env:"HIGH_PRIORITY_THRESHOLD"`
	MediumThreshold int `yaml:"medium_threshold" env:"MEDIUM_PRIORITY_THRESHOLD"`
}

// NLPConfig selects the optional text-analysis capabilities at startup.
type NLPConfig struct {
	Tokenizer string `yaml:"tokenizer" env:"NLP_TOKENIZER"` // rich | basic
	Entities  string `yaml:"entities" env:"NLP_ENTITIES"`   // none | pattern | llm
	LLMModel  string `yaml:"llm_model" env:"NLP_LLM_MODEL"`
}

type NotifyConfig struct {
	MinConfidence int  `yaml:"min_confidence" env:"MIN_CONFIDENCE_TO_NOTIFY"`
	OnNewLead     bool `yaml:"on_new_lead" env:"NOTIFY_ON_NEW_LEAD"`
	OnAssign      bool `yaml:"on_assign" env:"NOTIFY_ON_ASSIGN"`
	MaxBody       int  `yaml:"max_body" env:"MAX_WHATSAPP_BODY"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Database: DatabaseConfig{Path: "leads.duckdb"},
		Log:      logger.Config{Level: "info"},
		Server: ServerConfig{
			Port:    5000,
			BaseURL: "http://127.0.0.1:5000",
		},
		Scoring: ScoringConfig{
			HighThreshold:   75,
			MediumThreshold: 50,
		},
		NLP: NLPConfig{
			Tokenizer: "rich",
			Entities:  "none",
			LLMModel:  "google/gemini-3-flash-preview",
		},
		Notify: NotifyConfig{
			MinConfidence: 50,
			OnNewLead:     true,
			OnAssign:      true,
			MaxBody:       1000,
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// GetConfigPath returns CONFIG_PATH when set, otherwise defaultPath.
func GetConfigPath(defaultPath string) string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return defaultPath
}

func applyEnvOverrides(cfg any) {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	applyEnvToStruct(v)
}

func applyEnvToStruct(v reflect.Value) {
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			applyEnvToStruct(field)
			continue
		}

		envTag := t.Field(i).Tag.Get("env")
		if envTag == "" {
			continue
		}
		envVal := os.Getenv(envTag)
		if envVal == "" {
			continue
		}
		setFieldFromString(field, envVal)
	}
}

func setFieldFromString(field reflect.Value, val string) {
	switch field.Kind() {
	case reflect.String:
		field.SetString(val)
	case reflect.Int, reflect.Int64:
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			field.SetInt(i)
		}
	case reflect.Bool:
		s := strings.ToLower(strings.TrimSpace(val))
		field.SetBool(s == "true" || s == "1" || s == "yes")
	}
}
