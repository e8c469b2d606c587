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

type Check struct {
	GenerateOptions `embed:""`
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	_, err := c.Check(ctx, logger, rawLogger)
	return err
}

// Check compares the output directory with a fresh in-memory render.
func (c *Check) Check(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) (*generator.Drift, error) {
	opts, err := c.generatorOptions()
	if err != nil {
		return nil, err
	}
	gen, err := generator.New(opts, logger, rawLogger)
	if err != nil {
		return nil, err
	}
	return gen.Check(ctx, c.Spec)
}
