package logging

import "os"

type Config struct {
	Mode  string `envconfig:"ATTRITION_LOG_MODE" default:"PRODUCTION"`
	Level string `envconfig:"ATTRITION_LOG_LEVEL" default:"info"`
}

func envMode() string {
	if v := os.Getenv("ATTRITION_LOG_MODE"); v != "" {
		return v
	}
	return ModeProduction
}

func envLevel() string {
	return os.Getenv("ATTRITION_LOG_LEVEL")
}
