// Package board implements the Dama Voadora rules engine: the 8x8 grid,
// move legality including mandatory captures and multi-jump chains, and
// terminal condition detection. All functions are pure with respect to
// the grid they receive; only Apply mutates it.
package board

// Size is the board edge length.
const Size = 8

// Board is an 8x8 grid of optional pieces. Only dark squares
// ((r+c)%2 == 1) ever hold a piece. The zero-value cell is empty, so the
// JSON form is the nested array of null/{color,king} the clients expect.
type Board [Size][Size]*Piece

// New returns a board in the initial position: black pawns on the dark
// squares of rows 0-2, white pawns on rows 5-7.
func New() *Board {
	var b Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if (r+c)%2 != 1 {
				continue
			}
			switch {
			case r < 3:
				b[r][c] = &Piece{Color: Black}
			case r > 4:
				b[r][c] = &Piece{Color: White}
			}
		}
	}
	return &b
}

// At returns the piece on sq, or nil for an empty or off-board square.
func (b *Board) At(sq Square) *Piece {
	if !sq.InBounds() {
		return nil
	}
	return b[sq.R][sq.C]
}

// Set places p on sq. A nil p clears the square.
func (b *Board) Set(sq Square, p *Piece) {
	b[sq.R][sq.C] = p
}

// Count returns the number of pieces of the given color on the board.
func (b *Board) Count(color Color) int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if p := b[r][c]; p != nil && p.Color == color {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	var out Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if p := b[r][c]; p != nil {
				cp := *p
				out[r][c] = &cp
			}
		}
	}
	return &out
}
