package setup

import (
	"context"
	"fmt"

	"github.com/go-sod/attrition/internal/artifact"
	"github.com/go-sod/attrition/internal/database"
	"github.com/go-sod/attrition/internal/logging"
	"github.com/go-sod/attrition/internal/pipeline"
	"github.com/go-sod/attrition/internal/predictor"
	"github.com/go-sod/attrition/internal/schema"
	"github.com/go-sod/attrition/internal/srvenv"
	"github.com/kelseyhightower/envconfig"
)

type LoggingConfigProvider interface {
	LoggingConfig() *logging.Config
}

type ArtifactConfigProvider interface {
	ArtifactConfig() *artifact.Config
}

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

type PredictorConfigProvider interface {
	PredictConfig() *predictor.Config
}

// Setup reads the environment into config and prepares the provider
// functions of every component the config asks for.
func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	if logConfigProvider, ok := config.(LoggingConfigProvider); ok {
		cfg := logConfigProvider.LoggingConfig()
		logger := logging.NewLogger(cfg.Mode, cfg.Level)
		ctx = logging.WithLogger(ctx, logger)
		serverEnvOpts = append(serverEnvOpts, srvenv.WithLogger(logger))
	}
	logger := logging.FromContext(ctx)

	var artifactProvideFn artifact.ProvideFn
	if artifactConfigProvider, ok := config.(ArtifactConfigProvider); ok {
		logger.Infof("configuring artifact source %s", artifactConfigProvider.ArtifactConfig().Kind)
		dbCfg := &database.Config{}
		if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok {
			dbCfg = dbConfigProvider.DatabaseConfig()
		}
		provideFn, err := artifact.ProvideFor(artifactConfigProvider.ArtifactConfig(), dbCfg)
		if err != nil {
			return nil, fmt.Errorf("unable create artifact provide function: %w", err)
		}
		artifactProvideFn = provideFn
		serverEnvOpts = append(serverEnvOpts, srvenv.WithArtifacts(artifactProvideFn))
	}

	if predictConfigProvider, ok := config.(PredictorConfigProvider); ok {
		if artifactProvideFn == nil {
			return nil, fmt.Errorf("predictor requires an artifact source")
		}
		logger.Infof("configuring %s predictor", predictConfigProvider.PredictConfig().PredictorType())
		provideFn, err := ProvidePipelineFor(predictConfigProvider.PredictConfig(), artifactProvideFn)
		if err != nil {
			return nil, fmt.Errorf("unable create pipeline provide function: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithPipeline(provideFn))
	}

	return srvenv.New(serverEnvOpts...), nil
}

// ProvidePipelineFor returns a function that loads the schema and model once
// and builds the prediction pipeline over them. Any load failure is returned
// unchanged so callers can report which artifact is missing.
func ProvidePipelineFor(cfg *predictor.Config, provideSource artifact.ProvideFn) (pipeline.ProvideFn, error) {
	switch cfg.PredictorType() {
	case predictor.AlgTypeForest, predictor.AlgTypeLogistic:
	default:
		return nil, fmt.Errorf("unknown predictor type: %s", cfg.PredictorType())
	}
	return func(ctx context.Context) (*pipeline.Service, error) {
		src, err := provideSource(ctx)
		if err != nil {
			return nil, fmt.Errorf("artifact source: %w", err)
		}
		defer func() {
			if err := src.Close(ctx); err != nil {
				logging.FromContext(ctx).Errorf("closing artifact source: %v", err)
			}
		}()

		registry, err := schema.Load(ctx, src, cfg.SchemaName)
		if err != nil {
			return nil, err
		}
		p, err := predictor.Load(ctx, src, cfg)
		if err != nil {
			return nil, err
		}
		return pipeline.New(registry, p)
	}, nil
}
