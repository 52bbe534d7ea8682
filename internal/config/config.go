package config

import "os"

type Config struct {
	Port        string
	ScenarioDir string
	StaticDir   string
	LogLevel    string
}

func Load() Config {
	return Config{
		Port:        getEnv("PORT", "3000"),
		ScenarioDir: getEnv("SCENARIO_DIR", "./scenarios"),
		StaticDir:   getEnv("STATIC_DIR", "./public"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
