package game

// BoardSize is the edge length of the square board.
const BoardSize = 8

// Board is the canonical 8x8 grid. At most one piece occupies a cell, and
// every alive piece's stored position matches its grid cell; Set/Remove keep
// the two in sync so callers never update one without the other.
type Board struct {
	cells [BoardSize][BoardSize]*Piece
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewStandardBoard returns a board with the classic starting arrangement,
// every piece carrying its type's base stats and ability kit.
func NewStandardBoard() *Board {
	b := NewBoard()
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x := 0; x < BoardSize; x++ {
		b.Set(Position{X: x, Y: 0}, NewPiece(backRank[x], Black, Position{X: x, Y: 0}))
		b.Set(Position{X: x, Y: 1}, NewPiece(Pawn, Black, Position{X: x, Y: 1}))
		b.Set(Position{X: x, Y: 6}, NewPiece(Pawn, White, Position{X: x, Y: 6}))
		b.Set(Position{X: x, Y: 7}, NewPiece(backRank[x], White, Position{X: x, Y: 7}))
	}
	return b
}

// At returns the piece on the given square, or nil. Out-of-bounds squares
// are reported as empty.
func (b *Board) At(pos Position) *Piece {
	if !pos.InBounds() {
		return nil
	}
	return b.cells[pos.Y][pos.X]
}

// Set places a piece on a square and updates the piece's stored position.
func (b *Board) Set(pos Position, pc *Piece) {
	if !pos.InBounds() {
		return
	}
	b.cells[pos.Y][pos.X] = pc
	if pc != nil {
		pc.Position = pos
	}
}

// Remove clears a square.
func (b *Board) Remove(pos Position) {
	if !pos.InBounds() {
		return
	}
	b.cells[pos.Y][pos.X] = nil
}

// Relocate moves the occupant of from onto to, overwriting whatever was
// there. It is the low-level primitive used by move application; it does no
// legality checking.
func (b *Board) Relocate(from, to Position) {
	pc := b.At(from)
	if pc == nil {
		return
	}
	b.Remove(from)
	b.Set(to, pc)
}

// Clone deep-copies the board and every piece on it.
func (b *Board) Clone() *Board {
	cp := &Board{}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if pc := b.cells[y][x]; pc != nil {
				cp.cells[y][x] = pc.Clone()
			}
		}
	}
	return cp
}

// Pieces returns the living pieces of one team in scan order.
func (b *Board) Pieces(team Team) []*Piece {
	var out []*Piece
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			pc := b.cells[y][x]
			if pc != nil && pc.Alive && pc.Team == team {
				out = append(out, pc)
			}
		}
	}
	return out
}

// AllPieces returns every living piece on the board.
func (b *Board) AllPieces() []*Piece {
	var out []*Piece
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if pc := b.cells[y][x]; pc != nil && pc.Alive {
				out = append(out, pc)
			}
		}
	}
	return out
}

// FindKing locates a team's king, or returns nil if it has been removed.
func (b *Board) FindKing(team Team) *Piece {
	for _, pc := range b.Pieces(team) {
		if pc.Type == King {
			return pc
		}
	}
	return nil
}

// FindPiece locates a living piece by id, or returns nil.
func (b *Board) FindPiece(id string) *Piece {
	for _, pc := range b.AllPieces() {
		if pc.ID == id {
			return pc
		}
	}
	return nil
}
