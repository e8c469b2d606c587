package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/s2ws/s2gen/internal/codegen/generator"
	"github.com/s2ws/s2gen/internal/log"
)

type Generate struct {
	GenerateOptions `embed:""`
	Manifest        bool `help:"Write s2gen-manifest.json with file digests" default:"true" negatable:"" env:"S2GEN_MANIFEST"`
}

// Run is called by Kong when the generate command is executed.
func (c *Generate) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.Generate(ctx, logger, rawLogger)
}

func (c *Generate) Generate(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	opts, err := c.generatorOptions()
	if err != nil {
		return err
	}
	opts.Manifest = c.Manifest

	logger.Info("Starting s2gen code generation", "spec", c.Spec, "output", opts.OutputDir, "style", opts.Style)
	gen, err := generator.New(opts, logger, rawLogger)
	if err != nil {
		return err
	}
	report, err := gen.Run(ctx, c.Spec)
	if err != nil {
		return err
	}
	if len(report.Skipped) > 0 {
		logger.Warn("Skipped unsupported control types", "tags", report.Skipped)
	}
	if len(report.Unresolved) > 0 {
		logger.Warn("Unresolved references rendered as any", "refs", report.Unresolved)
	}
	return nil
}
