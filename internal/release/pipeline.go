package release

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tally/internal/logging"
)

// Step is one stage of the release pipeline.
type Step struct {
	Name string
	// Optional steps log their failure and let the pipeline continue.
	Optional bool
	Run      func(context.Context) error
}

// Pipeline executes steps strictly in order. The first failing required step
// aborts the remainder; there are no retries and no partial-success handling.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// NewPipeline builds a pipeline over the given steps.
func NewPipeline(logger *slog.Logger, steps ...Step) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		steps:  steps,
		logger: logger.With(logging.String(logging.FieldComponent, "release")),
	}
}

// Run executes the pipeline.
func (p *Pipeline) Run(ctx context.Context) error {
	started := time.Now()
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		stepLogger := p.logger.With(logging.String(logging.FieldStep, step.Name))
		stepLogger.Info("step started")

		stepStarted := time.Now()
		err := step.Run(ctx)
		duration := time.Since(stepStarted)

		if err != nil {
			if step.Optional {
				stepLogger.Warn("optional step failed",
					logging.Error(err),
					logging.Duration("duration", duration))
				continue
			}
			stepLogger.Error("step failed",
				logging.Error(err),
				logging.Duration("duration", duration))
			return fmt.Errorf("step %s: %w", step.Name, err)
		}

		stepLogger.Info("step completed", logging.Duration("duration", duration))
	}

	p.logger.Info("pipeline completed", logging.Duration("duration", time.Since(started)))
	return nil
}
