package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v9"
)

// Config aggregates configuration for the service and its hosted
// collaborators. Every credential and model identifier is carried here and
// passed into adapter constructors; nothing is read from the environment
// past startup.
type Config struct {
	Server   ServerConfig
	Groq     GroqConfig
	Cartesia CartesiaConfig
	PubMed   PubMedConfig
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}
	if _, err := cfg.Server.Addr(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
}

// Addr normalizes the PORT value into a listen address. "8080", ":8080" and
// "127.0.0.1:8080" are all accepted.
func (c ServerConfig) Addr() (string, error) {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}
	if strings.Contains(port, ":") {
		return port, nil
	}
	return ":" + port, nil
}

// GroqConfig covers both Groq-hosted models: Whisper for transcription and
// the chat model for completion. Groq serves the OpenAI wire API, so one
// key and base URL cover both.
type GroqConfig struct {
	APIKey       string `env:"GROQ_API_KEY,required"`
	BaseURL      string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	ChatModel    string `env:"GROQ_CHAT_MODEL" envDefault:"llama3-8b-8192"`
	WhisperModel string `env:"GROQ_WHISPER_MODEL" envDefault:"whisper-large-v3"`
}

// CartesiaConfig describes the text-to-speech collaborator.
type CartesiaConfig struct {
	APIKey  string `env:"CARTESIA_API_KEY,required"`
	BaseURL string `env:"CARTESIA_BASE_URL" envDefault:"https://api.cartesia.ai"`
	Version string `env:"CARTESIA_VERSION" envDefault:"2024-06-30"`
}

// PubMedConfig describes the biomedical search collaborator. No credential
// is needed for the public eutils endpoints.
type PubMedConfig struct {
	BaseURL    string `env:"PUBMED_BASE_URL" envDefault:"https://eutils.ncbi.nlm.nih.gov/entrez/eutils"`
	MaxResults int    `env:"PUBMED_MAX_RESULTS" envDefault:"3"`
}
