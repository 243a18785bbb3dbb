package agent

import (
	"bao/game"
	"bao/metrics"
	"bao/policy"
	"bao/selector"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var _ Agent = (*Session)(nil)

type Option func(s *Session)

// WithTieBreak sets how exactly equal scores are ordered.
func WithTieBreak(tieBreak selector.TieBreak) Option {
	return func(s *Session) {
		s.tieBreak = tieBreak
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *Session) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Session is one network playing one game. The input, score and ranking
// buffers are reused on every decision, so a Session must stay on a single
// goroutine; parallel games each need their own Session and network.
type Session struct {
	network  policy.Network
	input    game.Input
	scores   policy.Scores
	selector *selector.Selector
	tieBreak selector.TieBreak
	metrics  metrics.Collector
	logger   zerolog.Logger
	steps    int
}

func NewSession(network policy.Network, options ...Option) *Session {
	if network == nil {
		panic("session needs a network")
	}
	s := &Session{ // Default values
		network:  network,
		tieBreak: selector.TieUnstable,
		metrics:  metrics.NewDummyCollector(),
		logger:   log.Logger,
	}
	for _, option := range options {
		option(s)
	}
	s.selector = selector.New(s.tieBreak)
	return s
}

// PickIndex returns the best-scored legal pit index for the side to move.
// Both failure kinds are defects in the caller or the network, never a
// position to play on from: the error wraps selector.ErrInvalidScore,
// selector.ErrNoValidMove or the network's own error.
func (s *Session) PickIndex(state game.State) (int, error) {
	start := time.Now()
	s.steps++

	index, rank, err := s.pick(state)

	metric := metrics.DecisionMetric{
		Step:     s.steps,
		Player:   state.Turn(),
		Index:    index,
		Rank:     rank,
		Duration: time.Since(start),
		Err:      err,
	}
	if err != nil {
		s.metrics.Record(metric)
		s.logger.Error().Err(err).Msgf("step %d: %s failed to pick a move", s.steps, state.Turn())
		return 0, err
	}

	metric.Score = s.scores[index]
	s.metrics.Record(metric)
	if rank > 0 {
		s.logger.Debug().Msgf("step %d: %s picked index %d at rank %d", s.steps, state.Turn(), index, rank)
	}
	return index, nil
}

// MustPickIndex is PickIndex for callers that treat every failure as fatal.
func (s *Session) MustPickIndex(state game.State) int {
	index, err := s.PickIndex(state)
	if err != nil {
		panic(fmt.Sprintf("cannot pick move: %v", err))
	}
	return index
}

func (s *Session) pick(state game.State) (index, rank int, err error) {
	game.Encode(state, &s.input)

	if err := policy.Evaluate(s.network, &s.input, &s.scores); err != nil {
		return -1, -1, err
	}

	index, err = s.selector.Select(&s.scores, state.IsValidIndex)
	if err != nil {
		return -1, -1, err
	}
	return index, s.selector.Rank(), nil
}

// Scores returns the network output of the last decision.
func (s *Session) Scores() policy.Scores {
	return s.scores
}

// Steps is the number of decisions made so far, failed ones included.
func (s *Session) Steps() int {
	return s.steps
}
