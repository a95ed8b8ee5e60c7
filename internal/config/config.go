package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LLMConfig holds configuration for the chat completions boundary.
type LLMConfig struct {
	BaseURL      string `yaml:"base_url"`
	APIKeyEnv    string `yaml:"api_key_env"`
	ChatModel    string `yaml:"chat_model"`
	KeywordModel string `yaml:"keyword_model"`
	TimeoutSecs  int    `yaml:"timeout_secs"`
}

// ChunkerConfig configures how documents are split into fragments.
type ChunkerConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// ChromaConfig contains connection details for a Chroma server.
type ChromaConfig struct {
	URL         string `yaml:"url"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// StoreConfig selects and configures the vector store implementation.
type StoreConfig struct {
	Type   string        `yaml:"type"`
	Chroma *ChromaConfig `yaml:"chroma,omitempty"`
}

// RetrievalConfig tunes how many fragments ground each answer.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// QuizConfig configures the mini-quiz.
type QuizConfig struct {
	Questions int `yaml:"questions"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	DocsDir      string          `yaml:"docs_dir"`
	BaselinePath string          `yaml:"baseline_path"`
	LLM          LLMConfig       `yaml:"llm"`
	Chunker      ChunkerConfig   `yaml:"chunker"`
	Store        StoreConfig     `yaml:"store"`
	Retrieval    RetrievalConfig `yaml:"retrieval"`
	Quiz         QuizConfig      `yaml:"quiz"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/ecobot/config.yaml.
// If neither exists, it writes defaults to ~/.config/ecobot/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ecobot", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.DocsDir == "" {
		cfg.DocsDir = "./documentos"
	}
	if cfg.BaselinePath == "" {
		cfg.BaselinePath = ".doc_hash"
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "GROQ_API_KEY"
	}
	if cfg.LLM.ChatModel == "" {
		cfg.LLM.ChatModel = "llama-3.1-8b-instant"
	}
	if cfg.LLM.KeywordModel == "" {
		cfg.LLM.KeywordModel = "llama-3.1-70b-versatile"
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = 60
	}
	if cfg.Chunker.Size == 0 {
		cfg.Chunker.Size = 1000
	}
	if cfg.Chunker.Overlap == 0 {
		cfg.Chunker.Overlap = 200
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = "chroma"
	}
	if cfg.Store.Type == "chroma" {
		if cfg.Store.Chroma == nil {
			cfg.Store.Chroma = &ChromaConfig{}
		}
		if cfg.Store.Chroma.URL == "" {
			cfg.Store.Chroma.URL = "http://localhost:8000"
		}
		if cfg.Store.Chroma.Collection == "" {
			cfg.Store.Chroma.Collection = "documentos_curso"
		}
		if cfg.Store.Chroma.TimeoutSecs == 0 {
			cfg.Store.Chroma.TimeoutSecs = 30
		}
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 10
	}
	if cfg.Quiz.Questions == 0 {
		cfg.Quiz.Questions = 5
	}
}
