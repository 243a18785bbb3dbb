// Package engine evaluates many independent positions in parallel.
package engine

import (
	"bao/agent"
	"bao/config"
	"bao/game"
	"bao/metrics"
	"bao/policy"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Factory builds the private agent one worker uses for all its decisions.
type Factory func() (agent.Agent, error)

type Engine struct {
	workers int
	factory Factory
	metrics metrics.Collector
	logger  zerolog.Logger
}

func NewEngine(workers int, factory Factory) *Engine {
	if workers <= 0 {
		panic("workers must be positive")
	}
	if factory == nil {
		panic("engine needs a session factory")
	}
	return &Engine{
		workers: workers,
		factory: factory,
		metrics: metrics.NewDummyCollector(),
		logger:  log.Logger,
	}
}

// FromConfig loads the configured network once and gives every worker a
// session over its own clone of it.
func FromConfig(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	network, err := policy.LoadDense(cfg.NetworkPath)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger(nil)
	collector := metrics.NewDummyCollector()
	if cfg.Metrics {
		collector = metrics.NewCollector()
	}

	e := NewEngine(cfg.Workers, func() (agent.Agent, error) {
		return agent.NewSession(network.Clone(),
			agent.WithTieBreak(cfg.TieBreakMode()),
			agent.WithMetrics(collector),
			agent.WithLogger(logger),
		), nil
	})
	e.metrics = collector
	e.logger = logger

	logger.Info().Msgf("loaded network %q from %s", network.Name(), cfg.NetworkPath)
	return e, nil
}

// Metrics returns the collector shared by the engine's sessions.
func (e *Engine) Metrics() metrics.Collector {
	return e.metrics
}

// Run picks a move for every state. results[i] belongs to states[i]. The
// first failure cancels the remaining work and is returned.
func (e *Engine) Run(ctx context.Context, states []game.State) ([]int, error) {
	results := make([]int, len(states))
	if len(states) == 0 {
		return results, nil
	}

	workers := min(e.workers, len(states))
	e.logger.Info().Msgf("evaluating %d states with %d workers", len(states), workers)

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for i := range states {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			a, err := e.factory()
			if err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				index, err := a.PickIndex(states[i])
				if err != nil {
					return fmt.Errorf("state %d: %w", i, err)
				}
				results[i] = index
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Info().Msgf("evaluated %d states", len(states))
	return results, nil
}
