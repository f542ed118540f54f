package srvenv

import (
	"github.com/go-sod/attrition/internal/artifact"
	"github.com/go-sod/attrition/internal/logging"
	"github.com/go-sod/attrition/internal/pipeline"
	"go.uber.org/zap"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	logger    *zap.SugaredLogger
	artifacts artifact.ProvideFn
	pipeline  pipeline.ProvideFn
}

func (s *SrvEnv) Logger() *zap.SugaredLogger {
	if s.logger == nil {
		return logging.DefaultLogger()
	}
	return s.logger
}

func (s *SrvEnv) ProvideArtifacts() artifact.ProvideFn {
	return s.artifacts
}

func (s *SrvEnv) ProvidePipeline() pipeline.ProvideFn {
	return s.pipeline
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.logger = logger
		return s
	}
}

func WithArtifacts(fn artifact.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.artifacts = fn
		return s
	}
}

func WithPipeline(fn pipeline.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.pipeline = fn
		return s
	}
}
