package database

import "time"

type Config struct {
	FileName string        `envconfig:"ATTRITION_ARTIFACT_BOLT_FILE" default:"artifacts.db"`
	ReadOnly bool          `envconfig:"ATTRITION_ARTIFACT_BOLT_READONLY" default:"true"`
	Timeout  time.Duration `envconfig:"ATTRITION_ARTIFACT_BOLT_TIMEOUT" default:"1s"`
}
