// Package config loads LLM provider settings from an optional YAML file,
// with FEYNLEARN_* environment variables taking precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/feynlearn/feynlearn/internal/llm"
)

// fileConfig is the structure of ~/.config/feynlearn/config.yaml.
type fileConfig struct {
	Provider string `yaml:"provider"`
	Qianfan  struct {
		APIKey         string `yaml:"api_key"`
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"qianfan"`
	OpenAI struct {
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"openai"`
	Anthropic struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"anthropic"`
	Gemini struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`
}

// Load builds the LLM configuration: defaults, then the config file when
// present, then environment variables.
func Load() (llm.Config, error) {
	cfg := llm.DefaultConfig()

	path, err := configPath()
	if err == nil {
		if err := applyFile(&cfg, path); err != nil {
			return llm.Config{}, err
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "feynlearn", "config.yaml"), nil
}

// applyFile overlays settings from a YAML file. A missing file is fine.
func applyFile(cfg *llm.Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Provider != "" {
		cfg.Provider = fc.Provider
	}
	if fc.Qianfan.APIKey != "" {
		cfg.Qianfan.APIKey = fc.Qianfan.APIKey
	}
	if fc.Qianfan.BaseURL != "" {
		cfg.Qianfan.BaseURL = fc.Qianfan.BaseURL
	}
	if fc.Qianfan.TimeoutSeconds > 0 {
		cfg.Qianfan.Timeout = time.Duration(fc.Qianfan.TimeoutSeconds) * time.Second
	}
	if fc.OpenAI.APIKey != "" {
		cfg.OpenAI.APIKey = fc.OpenAI.APIKey
	}
	if fc.OpenAI.Model != "" {
		cfg.OpenAI.Model = fc.OpenAI.Model
	}
	if fc.OpenAI.BaseURL != "" {
		cfg.OpenAI.BaseURL = fc.OpenAI.BaseURL
	}
	if fc.Anthropic.APIKey != "" {
		cfg.Anthropic.APIKey = fc.Anthropic.APIKey
	}
	if fc.Anthropic.Model != "" {
		cfg.Anthropic.Model = fc.Anthropic.Model
	}
	if fc.Gemini.APIKey != "" {
		cfg.Gemini.APIKey = fc.Gemini.APIKey
	}
	if fc.Gemini.Model != "" {
		cfg.Gemini.Model = fc.Gemini.Model
	}
	return nil
}
