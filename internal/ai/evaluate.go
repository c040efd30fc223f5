package ai

import "github.com/arcanechess/arcanechess/internal/game"

// Material values per piece type, in centipawn-style units.
var pieceValues = [6]int{
	game.Pawn:   100,
	game.Knight: 320,
	game.Bishop: 330,
	game.Rook:   500,
	game.Queen:  900,
	game.King:   20000,
}

const (
	checkmateScore     = 50000
	checkPenalty       = 40
	doubledPawnPenalty = 20
	mobilityWeight     = 2
)

// Piece-square tables, written with Black's back rank on row 0 so they
// index directly with a White piece's board coordinates; Black mirrors the
// row.
var pawnTable = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{10, 10, 20, 30, 30, 20, 10, 10},
	{5, 5, 10, 25, 25, 10, 5, 5},
	{0, 0, 0, 20, 20, 0, 0, 0},
	{5, -5, -10, 0, 0, -10, -5, 5},
	{5, 10, 10, -20, -20, 10, 10, 5},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var knightTable = [8][8]int{
	{-50, -40, -30, -30, -30, -30, -40, -50},
	{-40, -20, 0, 0, 0, 0, -20, -40},
	{-30, 0, 10, 15, 15, 10, 0, -30},
	{-30, 5, 15, 20, 20, 15, 5, -30},
	{-30, 0, 15, 20, 20, 15, 0, -30},
	{-30, 5, 10, 15, 15, 10, 5, -30},
	{-40, -20, 0, 5, 5, 0, -20, -40},
	{-50, -40, -30, -30, -30, -30, -40, -50},
}

var bishopTable = [8][8]int{
	{-20, -10, -10, -10, -10, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 10, 10, 5, 0, -10},
	{-10, 5, 5, 10, 10, 5, 5, -10},
	{-10, 0, 10, 10, 10, 10, 0, -10},
	{-10, 10, 10, 10, 10, 10, 10, -10},
	{-10, 5, 0, 0, 0, 0, 5, -10},
	{-20, -10, -10, -10, -10, -10, -10, -20},
}

var rookTable = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{5, 10, 10, 10, 10, 10, 10, 5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{0, 0, 0, 5, 5, 0, 0, 0},
}

var queenTable = [8][8]int{
	{-20, -10, -10, -5, -5, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 5, 5, 5, 0, -10},
	{-5, 0, 5, 5, 5, 5, 0, -5},
	{0, 0, 5, 5, 5, 5, 0, -5},
	{-10, 5, 5, 5, 5, 5, 0, -10},
	{-10, 0, 5, 0, 0, 0, 0, -10},
	{-20, -10, -10, -5, -5, -10, -10, -20},
}

var kingTable = [8][8]int{
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-20, -30, -30, -40, -40, -30, -30, -20},
	{-10, -20, -20, -20, -20, -20, -20, -10},
	{20, 20, 0, 0, 0, 0, 20, 20},
	{20, 30, 10, 0, 0, 10, 30, 20},
}

var tables = [6]*[8][8]int{
	game.Pawn:   &pawnTable,
	game.Knight: &knightTable,
	game.Bishop: &bishopTable,
	game.Rook:   &rookTable,
	game.Queen:  &queenTable,
	game.King:   &kingTable,
}

// Evaluate scores a board from White's perspective: material, positional
// bonuses, an RPG bonus scaling a piece's combat stats by its remaining
// hp, terminal checkmate scores, king safety, doubled pawns and mobility.
func Evaluate(b *game.Board) int {
	if game.IsCheckmate(b, game.Black) {
		return checkmateScore
	}
	if game.IsCheckmate(b, game.White) {
		return -checkmateScore
	}
	if game.IsStalemate(b, game.White) || game.IsStalemate(b, game.Black) {
		return 0
	}

	score := 0
	for _, pc := range b.AllPieces() {
		score += signed(pc.Team, pieceScore(pc))
	}

	if game.IsKingInCheck(b, game.White) {
		score -= checkPenalty
	}
	if game.IsKingInCheck(b, game.Black) {
		score += checkPenalty
	}

	score -= doubledPawnPenalty * doubledPawns(b, game.White)
	score += doubledPawnPenalty * doubledPawns(b, game.Black)

	score += mobilityWeight * (mobility(b, game.White) - mobility(b, game.Black))
	return score
}

func pieceScore(pc *game.Piece) int {
	v := pieceValues[pc.Type]
	y := pc.Position.Y
	if pc.Team == game.Black {
		y = 7 - y
	}
	v += tables[pc.Type][y][pc.Position.X]

	// RPG bonus: a wounded piece fights at a fraction of its worth.
	if pc.Stats.MaxHP > 0 {
		v += (pc.Stats.AttackPower + pc.Stats.Defense) * pc.Stats.CurrentHP / pc.Stats.MaxHP
	}
	return v
}

func signed(team game.Team, v int) int {
	if team == game.Black {
		return -v
	}
	return v
}

// doubledPawns counts the extra pawns stacked on each file.
func doubledPawns(b *game.Board, team game.Team) int {
	var files [8]int
	for _, pc := range b.Pieces(team) {
		if pc.Type == game.Pawn {
			files[pc.Position.X]++
		}
	}
	extra := 0
	for _, n := range files {
		if n > 1 {
			extra += n - 1
		}
	}
	return extra
}

func mobility(b *game.Board, team game.Team) int {
	total := 0
	for _, pc := range b.Pieces(team) {
		total += len(game.LegalMoves(pc, b))
	}
	return total
}
