package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/davecgh/go-spew/spew"
	"github.com/go-sod/attrition/internal/httputil"
	"github.com/go-sod/attrition/internal/integration"
	"github.com/go-sod/attrition/internal/predict"
	"github.com/go-sod/attrition/internal/record"
	"github.com/go-sod/attrition/internal/rpc"
	"github.com/go-sod/attrition/internal/setup"
	"github.com/kelseyhightower/envconfig"
)

func runPredict(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("f", "", "TOML file with the employee record")
	addr := fs.String("addr", "", "address of a running attrition server; predicts locally when empty")
	useGRPC := fs.Bool("grpc", false, "call the server over gRPC instead of HTTP")
	debug := fs.Bool("debug", false, "dump the encoded features and the aligned vector")

	overrides := make(map[string]interface{})
	for _, spec := range record.Specs {
		spec := spec
		fs.Func(spec.Name, "value in "+spec.Domain(), func(s string) error {
			if spec.Kind == record.KindCategorical {
				overrides[spec.Name] = s
				return nil
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("%s must be an integer", spec.Name)
			}
			overrides[spec.Name] = n
			return nil
		})
	}
	fs.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "Usage: attrition predict [-f record.toml] [-addr host:port [-grpc]] [-debug] [-<Field> value ...]")
		_, _ = fmt.Fprintln(stderr, "\nFields not given take the form defaults.\n\nOptions:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	fields := make(map[string]interface{})
	if *file != "" {
		if _, err := toml.DecodeFile(*file, &fields); err != nil {
			_, _ = fmt.Fprintf(stderr, "error reading record file: %v\n", err)
			return 1
		}
	}
	for k, v := range overrides {
		fields[k] = v
	}

	var (
		item *predict.Item
		err  error
	)
	switch {
	case *addr != "" && *useGRPC:
		item, err = predictGRPC(ctx, *addr, fields)
	case *addr != "":
		item, err = predictHTTP(ctx, *addr, fields)
	default:
		item, err = predictLocal(ctx, fields, stdout, *debug)
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	_, _ = fmt.Fprintln(stdout, item.Summary)
	_, _ = fmt.Fprintf(stdout, "label: %d (%s)\n", item.Label, item.Class)
	_, _ = fmt.Fprintf(stdout, "probabilities: stays=%.4f leaves=%.4f\n", item.Probabilities[0], item.Probabilities[1])
	return 0
}

func predictLocal(ctx context.Context, fields map[string]interface{}, stdout io.Writer, debug bool) (*predict.Item, error) {
	config := cliConfig{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return nil, fmt.Errorf("setup.Setup: %w", err)
	}
	svc, err := env.ProvidePipeline()(ctx)
	if err != nil {
		return nil, err
	}

	e, err := record.Decode(fields)
	if err != nil {
		return nil, err
	}
	if debug {
		encoded, err := svc.Encode(e)
		if err != nil {
			return nil, err
		}
		vec, err := svc.Vector(e)
		if err != nil {
			return nil, err
		}
		spew.Fdump(stdout, e, encoded, svc.Columns(), vec)
	}

	prediction, err := svc.Predict(ctx, e)
	if err != nil {
		return nil, err
	}
	item := predict.NewItem(prediction)
	return &item, nil
}

func predictHTTP(ctx context.Context, addr string, fields map[string]interface{}) (*predict.Item, error) {
	cfg := httputil.HTTPClientConfig{}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}
	return integration.NewClient(addr, cfg).Predict(ctx, fields)
}

func predictGRPC(ctx context.Context, addr string, fields map[string]interface{}) (*predict.Item, error) {
	client, err := rpc.NewClient(addr)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	out, err := client.Predict(ctx, fields)
	if err != nil {
		return nil, err
	}
	return itemFromFields(out)
}

func itemFromFields(out map[string]interface{}) (*predict.Item, error) {
	item := &predict.Item{}
	item.ID, _ = out["id"].(string)
	item.Class, _ = out["class"].(string)
	item.Summary, _ = out["summary"].(string)
	item.Probability, _ = out["probability"].(float64)
	label, ok := out["label"].(float64)
	if !ok {
		return nil, fmt.Errorf("response has no label")
	}
	item.Label = int(label)
	probs, ok := out["probabilities"].([]interface{})
	if !ok || len(probs) != 2 {
		return nil, fmt.Errorf("response has malformed probabilities")
	}
	for i := range probs {
		p, ok := probs[i].(float64)
		if !ok {
			return nil, fmt.Errorf("response has malformed probabilities")
		}
		item.Probabilities[i] = p
	}
	return item, nil
}
