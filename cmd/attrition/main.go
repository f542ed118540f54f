package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-sod/attrition/internal/artifact"
	"github.com/go-sod/attrition/internal/buildinfo"
	"github.com/go-sod/attrition/internal/database"
	"github.com/go-sod/attrition/internal/logging"
	"github.com/go-sod/attrition/internal/predictor"
	"github.com/go-sod/attrition/internal/setup"
	"github.com/go-sod/attrition/internal/shutdown"
)

// cliConfig is read from the same ATTRITION_* variables as the server.
type cliConfig struct {
	Log       logging.Config
	Artifact  artifact.Config
	Database  database.Config
	Predictor predictor.Config
}

func (c *cliConfig) LoggingConfig() *logging.Config   { return &c.Log }
func (c *cliConfig) ArtifactConfig() *artifact.Config { return &c.Artifact }
func (c *cliConfig) DatabaseConfig() *database.Config { return &c.Database }
func (c *cliConfig) PredictConfig() *predictor.Config { return &c.Predictor }

// storeConfig is the subset needed by import, which never loads a model.
type storeConfig struct {
	Log      logging.Config
	Artifact artifact.Config
	Database database.Config
}

func (c *storeConfig) LoggingConfig() *logging.Config   { return &c.Log }
func (c *storeConfig) ArtifactConfig() *artifact.Config { return &c.Artifact }
func (c *storeConfig) DatabaseConfig() *database.Config { return &c.Database }

var (
	_ setup.PredictorConfigProvider = (*cliConfig)(nil)
	_ setup.DatabaseConfigProvider  = (*storeConfig)(nil)
)

func main() {
	ctx, done := shutdown.New()
	code := runWithArgs(ctx, os.Args[1:], os.Stdout, os.Stderr)
	done()
	os.Exit(code)
}

func runWithArgs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "predict":
		return runPredict(ctx, args[1:], stdout, stderr)
	case "import":
		return runImport(ctx, args[1:], stdout, stderr)
	case "version":
		_, _ = fmt.Fprintln(stdout, buildinfo.Info)
		return 0
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "error: unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage: %s <command> [options]\n\n", "attrition")
	_, _ = fmt.Fprintln(w, "Commands:")
	_, _ = fmt.Fprintln(w, "  predict   predict attrition for one employee record")
	_, _ = fmt.Fprintln(w, "  import    copy model and schema artifacts into the configured store")
	_, _ = fmt.Fprintln(w, "  version   print the build version")
}
