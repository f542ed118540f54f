package attrition

import (
	"github.com/go-sod/attrition/internal/artifact"
	"github.com/go-sod/attrition/internal/database"
	"github.com/go-sod/attrition/internal/logging"
	"github.com/go-sod/attrition/internal/predict"
	"github.com/go-sod/attrition/internal/predictor"
	"github.com/go-sod/attrition/internal/setup"
)

var (
	_ setup.LoggingConfigProvider   = (*Config)(nil)
	_ setup.ArtifactConfigProvider  = (*Config)(nil)
	_ setup.DatabaseConfigProvider  = (*Config)(nil)
	_ setup.PredictorConfigProvider = (*Config)(nil)
)

type Config struct {
	SrvAddr     string `envconfig:"ATTRITION_ADDR" default:":8787"`
	GRPCAddr    string `envconfig:"ATTRITION_GRPC_ADDR" default:":8788"`
	MetricsAddr string `envconfig:"ATTRITION_METRICS_ADDR" default:":9090"`
	MaxConns    int    `envconfig:"ATTRITION_MAX_CONNS" default:"256"`
	Log         logging.Config
	Artifact    artifact.Config
	Database    database.Config
	Predictor   predictor.Config
	Predict     predict.Config
}

func (c *Config) LoggingConfig() *logging.Config {
	return &c.Log
}

func (c *Config) ArtifactConfig() *artifact.Config {
	return &c.Artifact
}

func (c *Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *Config) PredictConfig() *predictor.Config {
	return &c.Predictor
}
