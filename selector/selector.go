// Package selector turns a score vector into a legal move.
package selector

import (
	"bao/game"
	"bao/policy"
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
)

var (
	// ErrInvalidScore means the network produced a score that cannot be ordered.
	ErrInvalidScore = errors.New("invalid score")
	// ErrNoValidMove means selection ran on a position without legal moves.
	ErrNoValidMove = errors.New("no valid move")
)

// TieBreak decides the order of exactly equal scores.
type TieBreak int

const (
	// TieUnstable leaves equal scores in whatever order the sort produces.
	TieUnstable TieBreak = iota
	// TieLowestIndex ranks the lower pit index first among equal scores.
	TieLowestIndex
)

func (t TieBreak) String() string {
	switch t {
	case TieUnstable:
		return "unstable"
	case TieLowestIndex:
		return "lowest_index"
	default:
		return fmt.Sprintf("TieBreak(%d)", int(t))
	}
}

// ParseTieBreak is the inverse of TieBreak.String.
func ParseTieBreak(s string) (TieBreak, error) {
	switch s {
	case "", "unstable":
		return TieUnstable, nil
	case "lowest_index":
		return TieLowestIndex, nil
	default:
		return 0, fmt.Errorf("unknown tie break %q", s)
	}
}

type Candidate struct {
	Index int
	Score float64
}

// Ranking is every move ordered best first.
type Ranking [game.NumMoves]Candidate

// Selector ranks scores and picks the best legal move. It keeps its ranking
// buffer between calls and is not safe for concurrent use.
type Selector struct {
	tieBreak TieBreak
	ranking  Ranking
	rank     int
}

func New(tieBreak TieBreak) *Selector {
	return &Selector{tieBreak: tieBreak, rank: -1}
}

// Select is a one-off selection with unstable tie-breaking.
func Select(scores *policy.Scores, legal game.Legality) (int, error) {
	return New(TieUnstable).Select(scores, legal)
}

// Select returns the highest-scoring index for which legal is true.
func (s *Selector) Select(scores *policy.Scores, legal game.Legality) (int, error) {
	s.rank = -1
	for i, score := range scores {
		s.ranking[i] = Candidate{Index: i, Score: score}
	}

	if _, i, found := lo.FindIndexOf(scores[:], math.IsNaN); found {
		return 0, fmt.Errorf("%w: score %d is NaN in %v", ErrInvalidScore, i, *scores)
	}

	slices.SortFunc(s.ranking[:], s.compare)

	best, rank, found := lo.FindIndexOf(s.ranking[:], func(c Candidate) bool {
		return legal(c.Index)
	})
	if !found {
		return 0, fmt.Errorf("%w: none of %d candidates is legal", ErrNoValidMove, len(s.ranking))
	}

	s.rank = rank
	return best.Index, nil
}

func (s *Selector) compare(a, b Candidate) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 || s.tieBreak == TieUnstable {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

// Rank is the position of the last selected move in its ranking, 0 when the
// top-scored move was legal and -1 when the last selection failed.
func (s *Selector) Rank() int {
	return s.rank
}

// Ranking returns a copy of the last ranking.
func (s *Selector) Ranking() Ranking {
	return s.ranking
}
