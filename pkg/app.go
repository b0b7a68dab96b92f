package pkg

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/slamdev/importtoarray/configs"
	"github.com/slamdev/importtoarray/pkg/business"
	"github.com/slamdev/importtoarray/pkg/integration"
)

type App interface {
	Run(ctx context.Context, args []string) error
}

type app struct {
	config configs.Config
	out    io.Writer
	errOut io.Writer
}

func NewApp(out io.Writer, errOut io.Writer) (App, error) {
	a := app{out: out, errOut: errOut}

	if err := integration.BuildConfig("IMPORTTOARRAY_", "application", configs.Configs, &a.config); err != nil {
		return nil, fmt.Errorf("failed to populate config; %w", err)
	}

	integration.ConfigureLogProvider(errOut, a.config.Telemetry.Logs.Level, a.config.Telemetry.Logs.Format)

	return &a, nil
}

func (a *app) Run(ctx context.Context, args []string) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("importtoarray"),
		kong.Description("Print the exported values of a YAML or JSON namespace, skipping synthetic __ names."),
		kong.Writers(a.out, a.errOut),
		kong.Vars{
			"markerPrefix": a.config.Exports.MarkerPrefix,
			"format":       a.config.Exports.Format,
			"indent":       a.config.Exports.Indent,
			"debounce":     a.config.Watch.Debounce.String(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create cli parser; %w", err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return fmt.Errorf("failed to parse arguments; %w", err)
	}

	slog.DebugContext(ctx, "running command", "command", kctx.Command(), "prefix", cli.Prefix, "format", cli.Format)

	env := &runEnv{ctx: ctx, cli: cli, out: a.out}
	if err := kctx.Run(env); err != nil {
		return fmt.Errorf("failed to run %s; %w", kctx.Command(), err)
	}
	return nil
}

// runEnv is bound into every command's Run method.
type runEnv struct {
	ctx context.Context
	cli CLI
	out io.Writer
}

func (e *runEnv) convert(path string) ([]any, error) {
	ns, err := business.LoadNamespaceFile(path)
	if err != nil {
		return nil, err
	}
	values := business.ImportToArrayWithPrefix(ns, e.cli.Prefix)
	slog.DebugContext(e.ctx, "converted namespace",
		"path", path,
		"exports", ns.Len(),
		"values", integration.ToUnsafeJSONString(values),
	)
	return values, nil
}

func (e *runEnv) emit(path string) error {
	values, err := e.convert(path)
	if err != nil {
		return err
	}
	if e.cli.Format == "lines" {
		return integration.WriteJSONLines(e.out, values)
	}
	return integration.WriteJSON(e.out, values, e.cli.Indent)
}
