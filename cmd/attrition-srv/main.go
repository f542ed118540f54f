package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/go-sod/attrition/internal/buildinfo"
	attrition "github.com/go-sod/attrition/internal/config"
	"github.com/go-sod/attrition/internal/logging"
	"github.com/go-sod/attrition/internal/metrics"
	"github.com/go-sod/attrition/internal/predict"
	"github.com/go-sod/attrition/internal/predictor"
	"github.com/go-sod/attrition/internal/rpc"
	"github.com/go-sod/attrition/internal/schema"
	"github.com/go-sod/attrition/internal/server"
	"github.com/go-sod/attrition/internal/setup"
	"github.com/go-sod/attrition/internal/shutdown"
	"golang.org/x/sync/errgroup"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintln(os.Stdout, buildinfo.Info)

	ctx, done := shutdown.New()
	defer done()

	if err := run(ctx); err != nil {
		logging.FromContext(ctx).Fatal(err)
	}
}

func run(ctx context.Context) error {
	config := attrition.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	ctx = logging.WithLogger(ctx, env.Logger())
	logger := env.Logger()

	svc, err := env.ProvidePipeline()(ctx)
	if err != nil {
		var (
			schemaErr *schema.LoadError
			modelErr  *predictor.LoadError
		)
		switch {
		case errors.As(err, &schemaErr):
			return fmt.Errorf("schema artifact %q unavailable, refusing to serve: %w", schemaErr.Name, err)
		case errors.As(err, &modelErr):
			return fmt.Errorf("model artifact %q unavailable, refusing to serve: %w", modelErr.Name, err)
		}
		return fmt.Errorf("pipeline provider function error: %w", err)
	}
	logger.Infof("loaded %s model over %d columns", config.Predictor.PredictorType(), len(svc.Columns()))

	metricsHandler, err := metrics.Register()
	if err != nil {
		return fmt.Errorf("metrics.Register: %w", err)
	}

	predictHandler, err := predict.NewHandler(&config.Predict, svc)
	if err != nil {
		return fmt.Errorf("predict.NewHandler: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/predict", predictHandler)
	mux.Handle("/schema", predict.HandleSchema(svc))
	mux.Handle("/health", server.HandleHealth(ctx))

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metricsHandler)

	srv, err := server.New(config.SrvAddr, server.WithMaxConns(config.MaxConns))
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	grpcSrv, err := server.New(config.GRPCAddr, server.WithMaxConns(config.MaxConns))
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	metricsSrv, err := server.New(config.MetricsAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	errGrp, grpCtx := errgroup.WithContext(ctx)
	errGrp.Go(func() error {
		return srv.ServeHTTPHandler(grpCtx, mux)
	})
	errGrp.Go(func() error {
		return grpcSrv.ServeGRPC(grpCtx, rpc.NewServer(svc))
	})
	errGrp.Go(func() error {
		return metricsSrv.ServeHTTPHandler(grpCtx, metricsMux)
	})

	return errGrp.Wait()
}
