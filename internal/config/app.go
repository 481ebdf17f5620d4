package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	ModeLiveness = "liveness"
	ModeEmotion  = "emotion"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type CameraConfig struct {
	Device string
	Width  int
	Height int
}

type CascadeConfig struct {
	FacePath string
	EyePath  string
}

type LLMConfig struct {
	Provider     string
	GoogleAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	Timeout      time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	Channel  string
}

type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

type AppConfig struct {
	Mode              string
	Port              string
	Camera            CameraConfig
	Cascades          CascadeConfig
	LandmarkURL       string
	LLM               LLMConfig
	Redis             RedisConfig
	MQTT              MQTTConfig
	BroadcastInterval time.Duration
	AskRateLimit      float64
	AskRateBurst      int
}

// LoadAppConfig reads the process configuration from the environment, falling
// back to defaults for anything unset.
func LoadAppConfig() (AppConfig, error) {
	var (
		cfg AppConfig
		err error
	)

	cfg.Mode = getEnv("APP_MODE", ModeLiveness)
	if cfg.Mode != ModeLiveness && cfg.Mode != ModeEmotion {
		return AppConfig{}, fmt.Errorf("APP_MODE must be %q or %q, got %q", ModeLiveness, ModeEmotion, cfg.Mode)
	}
	cfg.Port = getEnv("APP_PORT", "5000")

	cfg.Camera.Device = getEnv("CAMERA_DEVICE", "0")
	if cfg.Camera.Width, err = getInt("CAMERA_WIDTH", 640); err != nil {
		return AppConfig{}, err
	}
	if cfg.Camera.Height, err = getInt("CAMERA_HEIGHT", 480); err != nil {
		return AppConfig{}, err
	}

	cfg.Cascades.FacePath = getEnv("FACE_CASCADE_PATH", "./models/haarcascade_frontalface_default.xml")
	cfg.Cascades.EyePath = getEnv("EYE_CASCADE_PATH", "./models/haarcascade_eye.xml")
	cfg.LandmarkURL = os.Getenv("LANDMARK_WS_URL")

	cfg.LLM.Provider = getEnv("LLM_PROVIDER", ProviderGemini)
	if cfg.LLM.Provider != ProviderGemini && cfg.LLM.Provider != ProviderOpenAI {
		return AppConfig{}, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, cfg.LLM.Provider)
	}
	cfg.LLM.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	cfg.LLM.GeminiModel = getEnv("GEMINI_MODEL_NAME", "gemini-pro")
	cfg.LLM.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.LLM.OpenAIModel = getEnv("OPENAI_CHAT_MODEL", "gpt-4")
	if cfg.LLM.Timeout, err = getDuration("LLM_TIMEOUT", 0); err != nil {
		return AppConfig{}, err
	}

	cfg.Redis.Address = os.Getenv("REDIS_ADDRESS")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return AppConfig{}, err
	}
	cfg.Redis.Channel = getEnv("REDIS_STATUS_CHANNEL", "moodcam:status")

	cfg.MQTT.Broker = os.Getenv("MQTT_BROKER_URL")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "moodcam")
	cfg.MQTT.Username = os.Getenv("MQTT_USERNAME")
	cfg.MQTT.Password = os.Getenv("MQTT_PASSWORD")
	cfg.MQTT.Topic = getEnv("MQTT_STATUS_TOPIC", "moodcam/status")

	if cfg.BroadcastInterval, err = getDuration("STATUS_BROADCAST_INTERVAL", time.Second); err != nil {
		return AppConfig{}, err
	}
	if cfg.BroadcastInterval <= 0 {
		return AppConfig{}, fmt.Errorf("STATUS_BROADCAST_INTERVAL must be positive")
	}

	if cfg.AskRateLimit, err = getFloat("ASK_RATE_LIMIT", 5); err != nil {
		return AppConfig{}, err
	}
	if cfg.AskRateBurst, err = getInt("ASK_RATE_BURST", 10); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
