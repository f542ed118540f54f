package artifact

import "time"

type Config struct {
	Kind         Kind          `envconfig:"ATTRITION_ARTIFACT_SOURCE" default:"FILE"`
	Dir          string        `envconfig:"ATTRITION_ARTIFACT_DIR" default:"."`
	Bucket       string        `envconfig:"ATTRITION_ARTIFACT_BUCKET" default:"artifacts"`
	RedisAddr    string        `envconfig:"ATTRITION_REDIS_ADDR" default:"localhost:6379"`
	RedisDB      int           `envconfig:"ATTRITION_REDIS_DB" default:"0"`
	RedisPrefix  string        `envconfig:"ATTRITION_REDIS_PREFIX" default:"attrition:artifact:"`
	RedisTimeout time.Duration `envconfig:"ATTRITION_REDIS_TIMEOUT" default:"3s"`
}
