package game

import "time"

var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var royalDirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// LegalMoves returns every destination the piece may move to, filtered so
// that no returned move leaves the mover's own king in check.
func LegalMoves(pc *Piece, b *Board) []Position {
	if pc == nil || !pc.Alive {
		return nil
	}
	candidates := pseudoMoves(pc, b, true)
	legal := candidates[:0]
	for _, to := range candidates {
		if !wouldLeaveKingInCheck(b, pc.Position, to, pc.Team) {
			legal = append(legal, to)
		}
	}
	return legal
}

// IsMoveValid reports whether from→to is a legal move for the side owning
// the piece at from.
func IsMoveValid(b *Board, from, to Position) bool {
	pc := b.At(from)
	if pc == nil {
		return false
	}
	for _, m := range LegalMoves(pc, b) {
		if m == to {
			return true
		}
	}
	return false
}

// pseudoMoves generates the piece's movement template without the
// self-check filter. Castling is only considered when includeCastling is
// set; attack testing must leave it out or check detection would recurse.
func pseudoMoves(pc *Piece, b *Board, includeCastling bool) []Position {
	switch pc.Type {
	case Pawn:
		return pawnMoves(pc, b)
	case Knight:
		return offsetMoves(pc, b, knightOffsets[:])
	case Bishop:
		return slidingMoves(pc, b, bishopDirs[:])
	case Rook:
		return slidingMoves(pc, b, rookDirs[:])
	case Queen:
		return slidingMoves(pc, b, royalDirs[:])
	case King:
		moves := offsetMoves(pc, b, royalDirs[:])
		if includeCastling {
			moves = append(moves, castlingMoves(pc, b)...)
		}
		return moves
	default:
		return nil
	}
}

func pawnMoves(pc *Piece, b *Board) []Position {
	var moves []Position
	dir := -1 // White advances toward y=0
	startRank := 6
	if pc.Team == Black {
		dir = 1
		startRank = 1
	}

	one := Position{X: pc.Position.X, Y: pc.Position.Y + dir}
	if one.InBounds() && b.At(one) == nil {
		moves = append(moves, one)
		two := Position{X: pc.Position.X, Y: pc.Position.Y + 2*dir}
		if pc.Position.Y == startRank && b.At(two) == nil {
			moves = append(moves, two)
		}
	}

	// Diagonal capture only; no en passant.
	for _, dx := range [2]int{-1, 1} {
		diag := Position{X: pc.Position.X + dx, Y: pc.Position.Y + dir}
		if !diag.InBounds() {
			continue
		}
		if target := b.At(diag); target != nil && target.Alive && target.Team != pc.Team {
			moves = append(moves, diag)
		}
	}
	return moves
}

func offsetMoves(pc *Piece, b *Board, offsets [][2]int) []Position {
	var moves []Position
	for _, off := range offsets {
		to := Position{X: pc.Position.X + off[0], Y: pc.Position.Y + off[1]}
		if !to.InBounds() {
			continue
		}
		if target := b.At(to); target == nil || target.Team != pc.Team {
			moves = append(moves, to)
		}
	}
	return moves
}

func slidingMoves(pc *Piece, b *Board, dirs [][2]int) []Position {
	var moves []Position
	for _, dir := range dirs {
		for step := 1; step < BoardSize; step++ {
			to := Position{X: pc.Position.X + dir[0]*step, Y: pc.Position.Y + dir[1]*step}
			if !to.InBounds() {
				break
			}
			target := b.At(to)
			if target == nil {
				moves = append(moves, to)
				continue
			}
			if target.Team != pc.Team {
				moves = append(moves, to)
			}
			break
		}
	}
	return moves
}

// castlingMoves yields the king's two-square castle destinations when king
// and rook are unmoved, the path is clear, and none of the king's transit
// squares are attacked.
func castlingMoves(king *Piece, b *Board) []Position {
	if king.HasMoved || IsKingInCheck(b, king.Team) {
		return nil
	}
	var moves []Position
	y := king.Position.Y
	for _, side := range [2]struct {
		rookX   int
		kingX   int
		transit []int
		between []int
	}{
		{rookX: 7, kingX: 6, transit: []int{5, 6}, between: []int{5, 6}},
		{rookX: 0, kingX: 2, transit: []int{3, 2}, between: []int{1, 2, 3}},
	} {
		rook := b.At(Position{X: side.rookX, Y: y})
		if rook == nil || rook.Type != Rook || rook.Team != king.Team || rook.HasMoved {
			continue
		}
		clear := true
		for _, x := range side.between {
			if b.At(Position{X: x, Y: y}) != nil {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}
		safe := true
		for _, x := range side.transit {
			if wouldLeaveKingInCheck(b, king.Position, Position{X: x, Y: y}, king.Team) {
				safe = false
				break
			}
		}
		if safe {
			moves = append(moves, Position{X: side.kingX, Y: y})
		}
	}
	return moves
}

// IsKingInCheck reports whether the team's king square is attacked by any
// enemy piece's unfiltered move set. A board with no king is reported as
// not in check; that state is unreachable in normal play.
func IsKingInCheck(b *Board, team Team) bool {
	king := b.FindKing(team)
	if king == nil {
		return false
	}
	return isSquareAttacked(b, king.Position, team.Opponent())
}

func isSquareAttacked(b *Board, pos Position, by Team) bool {
	for _, pc := range b.Pieces(by) {
		for _, m := range pseudoMoves(pc, b, false) {
			if m == pos {
				return true
			}
		}
	}
	return false
}

// wouldLeaveKingInCheck hypothetically applies from→to on a scratch copy of
// the board and tests check. The canonical board is never mutated. The
// simulation runs through ApplyMove itself, so a capture whose damage
// cannot kill leaves the defender standing exactly as it would in play: a
// strike that fails to remove a checking piece is not an answer to check.
func wouldLeaveKingInCheck(b *Board, from, to Position, team Team) bool {
	scratch := b.Clone()
	ApplyMove(scratch, from, to)
	return IsKingInCheck(scratch, team)
}

// IsCheckmate reports check with no legal escape for any piece of the team.
func IsCheckmate(b *Board, team Team) bool {
	return IsKingInCheck(b, team) && !hasAnyLegalMove(b, team)
}

// IsStalemate reports no legal move while not in check.
func IsStalemate(b *Board, team Team) bool {
	return !IsKingInCheck(b, team) && !hasAnyLegalMove(b, team)
}

func hasAnyLegalMove(b *Board, team Team) bool {
	for _, pc := range b.Pieces(team) {
		if len(LegalMoves(pc, b)) > 0 {
			return true
		}
	}
	return false
}

// MoveOutcome describes what ApplyMove did.
type MoveOutcome struct {
	Record   Move
	Captured bool
	Killed   bool
	Castled  bool
}

// ApplyMove executes from→to on the board and returns the move record. It
// is the single mutation path shared by the session and the AI search; it
// assumes legality was already established via LegalMoves/IsMoveValid and
// silently no-ops on an empty source square.
//
// Moving onto an enemy square deals attackPower-vs-defense damage. The
// defender is removed only when its hp reaches zero; a surviving defender
// holds the square and the attacker stays in place.
func ApplyMove(b *Board, from, to Position) MoveOutcome {
	pc := b.At(from)
	if pc == nil {
		return MoveOutcome{}
	}

	out := MoveOutcome{Record: Move{
		From:      from,
		To:        to,
		Piece:     pc.Clone(),
		Timestamp: time.Now(),
	}}

	target := b.At(to)
	if target != nil && target.Team != pc.Team {
		out.Captured = true
		out.Record.Captured = target.Clone()
		damage := pc.Stats.AttackPower - target.Stats.Defense
		if damage < 1 {
			damage = 1
		}
		out.Record.Damage = damage
		target.Stats.TakeDamage(damage)
		if target.Stats.CurrentHP <= 0 {
			target.Stats.CurrentHP = 0
			target.Alive = false
			out.Killed = true
			b.Remove(to)
		} else {
			// Defender survived; the attacker keeps its square.
			pc.HasMoved = true
			return out
		}
	}

	// Castling: the king stepping two squares drags the rook across in the
	// same atomic update.
	if pc.Type == King && !pc.HasMoved && abs(to.X-from.X) == 2 {
		rookFrom, rookTo := Position{X: 0, Y: from.Y}, Position{X: 3, Y: from.Y}
		if to.X > from.X {
			rookFrom, rookTo = Position{X: 7, Y: from.Y}, Position{X: 5, Y: from.Y}
		}
		if rook := b.At(rookFrom); rook != nil && rook.Type == Rook {
			b.Relocate(rookFrom, rookTo)
			rook.HasMoved = true
			out.Castled = true
			out.Record.Castle = true
		}
	}

	b.Relocate(from, to)
	pc.HasMoved = true
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
