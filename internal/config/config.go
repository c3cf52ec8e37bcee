package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	Password        string
	ModelPath       string
	ConfigPath      string
	UploadDirectory string
	DatabasePath    string
	LogDirectory    string
	CameraDevice    int
	ZoneFraction    float64
	AlertThreshold  int
}

func Load() *Config {
	// Missing .env is fine, plain env vars still apply.
	_ = godotenv.Load()

	return &Config{
		Port:            getEnvAsInt("PORT", 8080),
		Password:        getEnv("PASSWORD", "hallway"),
		ModelPath:       getEnv("MODEL_PATH", filepath.Join(".", "models", "frozen_inference_graph.pb")),
		ConfigPath:      getEnv("CONFIG_PATH", filepath.Join(".", "models", "ssd_mobilenet_v1_coco_2017_11_17.pbtxt")),
		UploadDirectory: getEnv("UPLOAD_DIR", filepath.Join(".", "uploads")),
		DatabasePath:    getEnv("DATABASE_PATH", filepath.Join(".", "data", "monitor.db")),
		LogDirectory:    getEnv("LOG_DIR", filepath.Join(".", "logs")),
		CameraDevice:    getEnvAsInt("CAMERA_DEVICE", 0),
		ZoneFraction:    getEnvAsFloat("ZONE_FRACTION", 0.5),
		AlertThreshold:  getEnvAsInt("ALERT_THRESHOLD", 4),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
