package ai

import (
	"testing"
	"time"

	"github.com/arcanechess/arcanechess/internal/game"
)

func place(pieces ...*game.Piece) *game.Board {
	b := game.NewBoard()
	for _, pc := range pieces {
		b.Set(pc.Position, pc)
	}
	return b
}

func at(pt game.PieceType, team game.Team, x, y int) *game.Piece {
	return game.NewPiece(pt, team, game.Position{X: x, Y: y})
}

func TestDifficultyDepth(t *testing.T) {
	cases := []struct {
		diff  Difficulty
		depth int
	}{
		{Easy, 1},
		{Medium, 3},
		{Hard, 5},
		{Expert, 7},
		{Difficulty("bogus"), 3},
	}
	for _, tc := range cases {
		if got := tc.diff.Depth(); got != tc.depth {
			t.Errorf("%s: depth = %d, want %d", tc.diff, got, tc.depth)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	if d, err := ParseDifficulty("hard"); err != nil || d != Hard {
		t.Fatalf("ParseDifficulty(hard) = %v, %v", d, err)
	}
	if d, err := ParseDifficulty(""); err != nil || d != Medium {
		t.Fatalf("empty difficulty should default to medium, got %v, %v", d, err)
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}

func TestChooseMoveReturnsLegalMove(t *testing.T) {
	c := New(game.White, Easy)
	b := game.NewStandardBoard()

	from, to, ok := c.ChooseMove(b)
	if !ok {
		t.Fatal("expected a move from the opening position")
	}
	if !game.IsMoveValid(b, from, to) {
		t.Fatalf("chose illegal move %s -> %s", from, to)
	}
	pc := b.At(from)
	if pc == nil || pc.Team != game.White {
		t.Fatalf("chose a move for the wrong side: %s", from)
	}
}

func TestChooseMoveNoPieces(t *testing.T) {
	c := New(game.White, Medium)
	b := place(at(game.King, game.Black, 4, 0))

	if _, _, ok := c.ChooseMove(b); ok {
		t.Fatal("expected ok=false with no pieces to move")
	}
}

func TestChooseMoveFindsMateInOne(t *testing.T) {
	// Black king boxed in the corner; only Rg4-g1 delivers mate.
	b := place(
		at(game.King, game.Black, 0, 0),
		at(game.Rook, game.White, 7, 1),
		at(game.Rook, game.White, 6, 3),
		at(game.King, game.White, 7, 7),
	)
	c := New(game.White, Hard)
	c.SetBudget(2 * time.Second)

	from, to, ok := c.ChooseMove(b)
	if !ok {
		t.Fatal("expected a move")
	}
	game.ApplyMove(b, from, to)
	if !game.IsCheckmate(b, game.Black) {
		t.Fatalf("move %s -> %s did not mate", from, to)
	}
}

func TestChooseMoveRespectsBudget(t *testing.T) {
	c := New(game.Black, Expert)
	c.SetBudget(50 * time.Millisecond)
	b := game.NewStandardBoard()

	start := time.Now()
	_, _, ok := c.ChooseMove(b)
	if !ok {
		t.Fatal("expected a move")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("search ran %v past its budget", elapsed)
	}
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	level := place(
		at(game.King, game.White, 4, 7),
		at(game.King, game.Black, 4, 0),
	)
	if got := Evaluate(level); got > 200 || got < -200 {
		t.Fatalf("bare kings should be near level, got %d", got)
	}

	up := place(
		at(game.King, game.White, 4, 7),
		at(game.Queen, game.White, 3, 4),
		at(game.King, game.Black, 4, 0),
	)
	if Evaluate(up) <= Evaluate(level) {
		t.Fatalf("an extra queen should raise the score: %d vs %d", Evaluate(up), Evaluate(level))
	}
}

func TestEvaluateCheckmateIsTerminal(t *testing.T) {
	// Back-rank ladder mate against Black.
	mated := place(
		at(game.King, game.Black, 0, 0),
		at(game.Rook, game.White, 7, 0),
		at(game.Rook, game.White, 7, 1),
		at(game.King, game.White, 7, 7),
	)
	if got := Evaluate(mated); got != 50000 {
		t.Fatalf("checkmate against black should score 50000, got %d", got)
	}

	// Mirror: White is mated on its own back rank.
	mirror := place(
		at(game.King, game.White, 0, 7),
		at(game.Rook, game.Black, 7, 7),
		at(game.Rook, game.Black, 7, 6),
		at(game.King, game.Black, 7, 0),
	)
	if got := Evaluate(mirror); got != -50000 {
		t.Fatalf("checkmate against white should score -50000, got %d", got)
	}
}

func TestEvaluateStalemateIsZero(t *testing.T) {
	b := place(
		at(game.King, game.Black, 0, 0),
		at(game.Queen, game.White, 2, 1),
		at(game.King, game.White, 7, 7),
	)
	if got := Evaluate(b); got != 0 {
		t.Fatalf("stalemate should score 0, got %d", got)
	}
}

func TestDoubledPawns(t *testing.T) {
	b := place(
		at(game.Pawn, game.White, 2, 4),
		at(game.Pawn, game.White, 2, 5),
		at(game.Pawn, game.White, 2, 6),
		at(game.Pawn, game.White, 4, 6),
		at(game.King, game.White, 7, 7),
		at(game.King, game.Black, 0, 0),
	)
	if got := doubledPawns(b, game.White); got != 2 {
		t.Fatalf("doubledPawns = %d, want 2", got)
	}
	if got := doubledPawns(b, game.Black); got != 0 {
		t.Fatalf("doubledPawns(black) = %d, want 0", got)
	}
}

func TestWoundedPieceScoresLower(t *testing.T) {
	healthy := place(
		at(game.King, game.White, 4, 7),
		at(game.Rook, game.White, 0, 4),
		at(game.King, game.Black, 4, 0),
	)
	wounded := place(
		at(game.King, game.White, 4, 7),
		at(game.Rook, game.White, 0, 4),
		at(game.King, game.Black, 4, 0),
	)
	rook := wounded.At(game.Position{X: 0, Y: 4})
	rook.Stats.CurrentHP = rook.Stats.MaxHP / 4

	if Evaluate(wounded) >= Evaluate(healthy) {
		t.Fatalf("wounded rook should be worth less: %d vs %d",
			Evaluate(wounded), Evaluate(healthy))
	}
}
