package model

import "strings"

// ================ Config ================

// StorageMemory and StorageRedis are the accepted CONTEXT_STORAGE_TYPE values.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type ContextConfig struct {
	StorageType string `envconfig:"CONTEXT_STORAGE_TYPE" default:"memory"`
	MaxMessages int    `envconfig:"CONTEXT_MAX_MESSAGES" default:"30"`
}

type TriggerConfig struct {
	CreatorHandles        []string `envconfig:"CREATOR_HANDLES" default:"Nik_Ly"`
	GroupReplyProbability float64  `envconfig:"GROUP_REPLY_PROBABILITY" default:"0.05"`
}

// IsCreatorHandle reports whether name matches one of the configured creator
// handles. Matching is case-insensitive and tolerates a leading "@".
func IsCreatorHandle(name string, handles []string) bool {
	name = strings.TrimPrefix(strings.TrimSpace(name), "@")
	if name == "" {
		return false
	}
	for _, h := range handles {
		if strings.EqualFold(name, strings.TrimPrefix(strings.TrimSpace(h), "@")) {
			return true
		}
	}
	return false
}

type GenerationConfig struct {
	Model       string  `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	Temperature float32 `envconfig:"GEMINI_TEMPERATURE" default:"0.75"`
}

type TelegramConfig struct {
	Token      string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	APIBaseURL string `envconfig:"TELEGRAM_API_BASE_URL" default:"https://api.telegram.org"`
	// Long-poll timeout and the shared HTTP client timeout, in seconds.
	PollTimeout int `envconfig:"TELEGRAM_POLL_TIMEOUT" default:"30"`
	HTTPTimeout int `envconfig:"HTTP_CLIENT_TIMEOUT" default:"90"`
}
