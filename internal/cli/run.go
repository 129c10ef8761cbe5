package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/definition"
	"github.com/aretw0/strata/pkg/observability"
)

// RunOptions configures a scripted run.
type RunOptions struct {
	Path    string
	Steps   []string
	Config  Config
	Metrics bool

	Stdout io.Writer
	Stderr io.Writer
}

// Run builds the store described at Path, applies every step in order and
// prints the final report. Dispatched actions are awaited before the next step.
func Run(ctx context.Context, opts RunOptions) error {
	steps, err := ParseSteps(opts.Steps)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(opts.Config.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewWithWriter(opts.Stderr, level)
	printer := NewPrinter(opts.Stderr, opts.Config.NoColor)
	metrics := observability.NewMetrics()

	def, err := loadDefinition(opts.Path, opts.Config)
	if err != nil {
		return err
	}
	store, err := def.Build(
		strata.WithLogger(logger),
		strata.WithLifecycleHooks(metrics.Hooks()),
		strata.WithLifecycleHooks(observability.LoggingHooks(logger)),
		strata.WithPlugin(printer.Plugin()),
	)
	if err != nil {
		return fmt.Errorf("failed to build store: %w", err)
	}
	logger.Debug("store ready", "definition", def.Name, "steps", len(steps))

	for _, step := range steps {
		if err := apply(ctx, store, step); err != nil {
			printer.Failure(step, err)
			return fmt.Errorf("step %s: %w", step, err)
		}
	}

	if err := NewReport(store).Write(opts.Stdout, opts.Config.Output); err != nil {
		return err
	}
	if opts.Metrics {
		return metrics.WriteText(opts.Stdout)
	}
	return nil
}

// Validate loads the definition and builds a throwaway store from it.
func Validate(path string, cfg Config) (*definition.Definition, error) {
	def, err := loadDefinition(path, cfg)
	if err != nil {
		return nil, err
	}
	if _, err := def.Build(strata.WithLogger(logging.NewNop())); err != nil {
		return nil, fmt.Errorf("failed to build store: %w", err)
	}
	return def, nil
}

func loadDefinition(path string, cfg Config) (*definition.Definition, error) {
	def, err := definition.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Profile != "" {
		def.Profile = cfg.Profile
		if err := def.Validate(); err != nil {
			return nil, err
		}
	}
	return def, nil
}

func apply(ctx context.Context, store *strata.Store, step Step) error {
	args := []any{}
	if step.Payload != nil {
		args = append(args, step.Payload)
	}

	if step.Kind == StepCommit {
		return store.Commit(ctx, step.Name, args...)
	}
	f, err := store.Dispatch(ctx, step.Name, args...)
	if err != nil {
		return err
	}
	_, err = f.Await(ctx)
	return err
}

