package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/go-sod/attrition/internal/artifact"
	"github.com/go-sod/attrition/internal/setup"
)

func runImport(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", ".", "directory holding the artifact files")
	fs.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "Usage: attrition import [-dir path] <artifact.json> ...")
		_, _ = fmt.Fprintln(stderr, "\nCopies artifacts into the store named by ATTRITION_ARTIFACT_SOURCE.\n\nOptions:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		_, _ = fmt.Fprintln(stderr, "error: at least one artifact name is required")
		fs.Usage()
		return 2
	}

	if err := importArtifacts(ctx, *dir, fs.Args(), stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func importArtifacts(ctx context.Context, dir string, names []string, stdout io.Writer) error {
	config := storeConfig{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	if config.Artifact.Kind == artifact.KindFile {
		return fmt.Errorf("import needs a %s or %s artifact source", artifact.KindBolt, artifact.KindRedis)
	}
	config.Database.ReadOnly = false

	dst, err := env.ProvideArtifacts()(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = dst.Close(ctx)
	}()
	sink, ok := dst.(artifact.Sink)
	if !ok {
		return fmt.Errorf("artifact source %s is not writable", config.Artifact.Kind)
	}

	src := artifact.NewFileSource(dir)
	for _, name := range names {
		data, err := src.Load(ctx, name)
		if err != nil {
			return err
		}
		if err := sink.Put(ctx, name, data); err != nil {
			return fmt.Errorf("store %s: %w", name, err)
		}
		_, _ = fmt.Fprintf(stdout, "imported %s (%d bytes)\n", name, len(data))
	}
	return nil
}
