package ai

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/arcanechess/arcanechess/internal/game"
)

// Difficulty doubles as the maximum search depth.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
)

// Depth maps a difficulty to its search depth.
func (d Difficulty) Depth() int {
	switch d {
	case Easy:
		return 1
	case Medium:
		return 3
	case Hard:
		return 5
	case Expert:
		return 7
	default:
		return 3
	}
}

// randomChance is the probability a computed best move is replaced with a
// uniformly random legal one, weakening the lower difficulties on purpose.
func (d Difficulty) randomChance() float64 {
	if d == Easy || d == Medium {
		return 0.3
	}
	return 0
}

// ParseDifficulty reads a difficulty name from config or API input.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Easy, Medium, Hard, Expert:
		return Difficulty(s), nil
	case "":
		return Medium, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

// DefaultBudget bounds one move's total thinking time.
const DefaultBudget = 5000 * time.Millisecond

// Controller selects moves for one side with iterative-deepening minimax.
// It implements game.Opponent; candidate moves come from the same
// game.LegalMoves / game.ApplyMove pair the human path uses, so the two
// can never disagree about legality.
type Controller struct {
	team         game.Team
	depth        int
	randomChance float64
	budget       time.Duration
	rng          *rand.Rand
}

// New builds a controller for the given side and difficulty.
func New(team game.Team, diff Difficulty) *Controller {
	return &Controller{
		team:         team,
		depth:        diff.Depth(),
		randomChance: diff.randomChance(),
		budget:       DefaultBudget,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetBudget overrides the wall-clock search budget.
func (c *Controller) SetBudget(d time.Duration) {
	if d > 0 {
		c.budget = d
	}
}

func (c *Controller) Team() game.Team { return c.team }

type candidate struct {
	from, to game.Position
}

// ChooseMove runs iterative deepening from depth 1 up to the configured
// maximum, keeping the result of the deepest depth that completed within
// budget. Returns ok=false when the side has no legal move.
func (c *Controller) ChooseMove(b *game.Board) (game.Position, game.Position, bool) {
	candidates := enumerateMoves(b, c.team)
	if len(candidates) == 0 {
		return game.Position{}, game.Position{}, false
	}

	start := time.Now()
	s := &search{ai: c.team, deadline: start.Add(c.budget)}
	best := candidates[0]
	completed := 0
	for depth := 1; depth <= c.depth; depth++ {
		move, score, ok := s.root(b, candidates, depth)
		if !ok {
			break
		}
		best = move
		completed = depth
		log.Debug().
			Int("depth", depth).
			Int("score", score).
			Str("from", move.from.String()).
			Str("to", move.to.String()).
			Msg("search depth completed")
	}

	if c.randomChance > 0 && c.rng.Float64() < c.randomChance {
		best = candidates[c.rng.Intn(len(candidates))]
	}

	log.Info().
		Str("team", c.team.String()).
		Int("depth", completed).
		Dur("elapsed", time.Since(start)).
		Msg("move selected")
	return best.from, best.to, true
}

func enumerateMoves(b *game.Board, team game.Team) []candidate {
	var out []candidate
	for _, pc := range b.Pieces(team) {
		for _, to := range game.LegalMoves(pc, b) {
			out = append(out, candidate{from: pc.Position, to: to})
		}
	}
	return out
}

type search struct {
	ai       game.Team
	deadline time.Time
	aborted  bool
}

// root evaluates every candidate at the given depth. ok=false means the
// budget expired before the depth finished; the caller keeps the previous
// depth's answer.
func (s *search) root(b *game.Board, candidates []candidate, depth int) (candidate, int, bool) {
	best := candidates[0]
	bestScore := math.MinInt
	alpha, beta := math.MinInt, math.MaxInt
	for _, move := range candidates {
		next := b.Clone()
		game.ApplyMove(next, move.from, move.to)
		score := s.minimax(next, depth-1, alpha, beta, s.ai.Opponent())
		if s.aborted {
			return candidate{}, 0, false
		}
		if score > bestScore {
			best = move
			bestScore = score
		}
		if bestScore > alpha {
			alpha = bestScore
		}
	}
	return best, bestScore, true
}

// minimax walks the game tree with alpha-beta pruning. The AI's own turns
// maximize, the opponent's minimize; scores are signed so that higher is
// always better for the AI side.
func (s *search) minimax(b *game.Board, depth int, alpha, beta int, turn game.Team) int {
	if s.aborted || time.Now().After(s.deadline) {
		s.aborted = true
		return s.score(b)
	}
	if depth == 0 || game.IsCheckmate(b, turn) || game.IsStalemate(b, turn) {
		return s.score(b)
	}

	moves := enumerateMoves(b, turn)
	if len(moves) == 0 {
		return s.score(b)
	}

	if turn == s.ai {
		best := math.MinInt
		for _, move := range moves {
			next := b.Clone()
			game.ApplyMove(next, move.from, move.to)
			score := s.minimax(next, depth-1, alpha, beta, turn.Opponent())
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for _, move := range moves {
		next := b.Clone()
		game.ApplyMove(next, move.from, move.to)
		score := s.minimax(next, depth-1, alpha, beta, turn.Opponent())
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// score evaluates from White's perspective and flips the sign for a
// Black-controlled AI, so the controller always maximizes its own side.
func (s *search) score(b *game.Board) int {
	score := Evaluate(b)
	if s.ai == game.Black {
		score = -score
	}
	return score
}
