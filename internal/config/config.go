package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Render failure modes. Propagate marks the job failed; placeholder substitutes
// a stub video and completes the job (useful outside production).
const (
	RenderFailurePropagate   = "propagate"
	RenderFailurePlaceholder = "placeholder"
)

type Config struct {
	LLMProvider string
	LLMModel    string
	LLMAPIKey   string
	LLMBaseURL  string

	VideosDir   string
	AudioDir    string
	RemotionDir string

	RenderFailureMode string
	WorkerConcurrency int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
		LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:         os.Getenv("LLM_API_KEY"),
		LLMBaseURL:        os.Getenv("LLM_BASE_URL"),
		VideosDir:         getEnv("VIDEOS_DIR", "videos"),
		AudioDir:          getEnv("AUDIO_DIR", "audio"),
		RemotionDir:       getEnv("REMOTION_DIR", "../video-templates"),
		RenderFailureMode: getEnv("RENDER_FAILURE_MODE", RenderFailurePropagate),
		WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 2),
	}

	if cfg.LLMAPIKey == "" {
		log.Fatal("LLM_API_KEY environment variable is not set")
	}
	if cfg.RenderFailureMode != RenderFailurePropagate && cfg.RenderFailureMode != RenderFailurePlaceholder {
		log.Fatalf("Invalid RENDER_FAILURE_MODE: %s", cfg.RenderFailureMode)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Warnf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
