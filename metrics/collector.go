package metrics

import (
	"bao/game"
	"bao/selector"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

type DecisionMetric struct {
	Step     int // 1-based, per session
	Player   game.Turn
	Index    int // -1 when the decision failed
	Rank     int // position of Index in the ranking, 0 for the network's first choice
	Score    float64
	Duration time.Duration
	Err      error
}

type Summary struct {
	Decisions     int
	Fallbacks     int // decisions where a better-scored move was illegal
	InvalidScores int
	NoValidMoves  int
	Duration      time.Duration
}

// Collector aggregates decisions. Implementations must be safe to share
// between sessions running on different goroutines.
type Collector interface {
	Record(m DecisionMetric)
	Records() []DecisionMetric
	Summary() Summary
}

type collector struct {
	decisions     atomic.Int64
	fallbacks     atomic.Int64
	invalidScores atomic.Int64
	noValidMoves  atomic.Int64
	duration      atomic.Int64

	mu      sync.Mutex
	records []DecisionMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Record(m DecisionMetric) {
	c.decisions.Add(1)
	c.duration.Add(int64(m.Duration))
	switch {
	case errors.Is(m.Err, selector.ErrInvalidScore):
		c.invalidScores.Add(1)
	case errors.Is(m.Err, selector.ErrNoValidMove):
		c.noValidMoves.Add(1)
	case m.Err == nil && m.Rank > 0:
		c.fallbacks.Add(1)
	}

	c.mu.Lock()
	c.records = append(c.records, m)
	c.mu.Unlock()
}

func (c *collector) Records() []DecisionMetric {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]DecisionMetric(nil), c.records...)
}

func (c *collector) Summary() Summary {
	return Summary{
		Decisions:     int(c.decisions.Load()),
		Fallbacks:     int(c.fallbacks.Load()),
		InvalidScores: int(c.invalidScores.Load()),
		NoValidMoves:  int(c.noValidMoves.Load()),
		Duration:      time.Duration(c.duration.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Record(m DecisionMetric)   {}
func (c *dummyCollector) Records() []DecisionMetric { return nil }
func (c *dummyCollector) Summary() Summary          { return Summary{} }
