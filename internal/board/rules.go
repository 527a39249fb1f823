package board

// diagonals lists the four diagonal directions.
var diagonals = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// CanCaptureFrom reports whether the piece of the given color on pos has
// a two-square jump available: an adjacent enemy piece on some diagonal
// with an empty landing square directly beyond it. This is the form that
// drives mandatory-capture enforcement and chain continuation; kings may
// additionally capture at distance through Validate.
func CanCaptureFrom(b *Board, pos Square, color Color) bool {
	p := b.At(pos)
	if p == nil || p.Color != color {
		return false
	}
	for _, d := range diagonals {
		land := Square{R: pos.R + 2*d[0], C: pos.C + 2*d[1]}
		if !land.InBounds() || b.At(land) != nil {
			continue
		}
		mid := b.At(Square{R: pos.R + d[0], C: pos.C + d[1]})
		if mid != nil && mid.Color != color {
			return true
		}
	}
	return false
}

// AnyCaptureAvailable reports whether any piece of the given color has a
// capture available.
func AnyCaptureAvailable(b *Board, color Color) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sq := Square{R: r, C: c}
			if p := b.At(sq); p != nil && p.Color == color && CanCaptureFrom(b, sq, color) {
				return true
			}
		}
	}
	return false
}

// CanMoveSimply reports whether the piece on pos has at least one empty
// destination one diagonal step away: forward only for pawns, any
// diagonal for kings. An adjacent empty square is also a prerequisite
// for any longer king slide, so this suffices for mobility checks.
func CanMoveSimply(b *Board, pos Square, color Color) bool {
	p := b.At(pos)
	if p == nil || p.Color != color {
		return false
	}
	for _, d := range diagonals {
		if !p.King && d[0] != color.Forward() {
			continue
		}
		to := Square{R: pos.R + d[0], C: pos.C + d[1]}
		if to.InBounds() && b.At(to) == nil {
			return true
		}
	}
	return false
}

// HasAnyMove reports whether the given color has at least one legal move,
// counting both captures and simple moves.
func HasAnyMove(b *Board, color Color) bool {
	if AnyCaptureAvailable(b, color) {
		return true
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sq := Square{R: r, C: c}
			if p := b.At(sq); p != nil && p.Color == color && CanMoveSimply(b, sq, color) {
				return true
			}
		}
	}
	return false
}

// Validate checks a candidate move for the given color. chain, when
// non-nil, pins the mover to that square (a multi-jump in progress).
// It returns whether the move is legal and whether it is a capture.
//
// Capture classification: the diagonal segment strictly between from and
// to must contain exactly one enemy piece and no friendly pieces. Pawns
// may only capture with the two-square jump; kings may capture at any
// distance along the diagonal. Simple moves are one forward step for
// pawns, or any slide along a fully clear diagonal for kings. Captures
// are mandatory whenever one is available, and during a chain only the
// pinned piece may move, and only to capture.
func Validate(b *Board, chain *Square, from, to Square, color Color) (ok, capture bool) {
	if !from.InBounds() || !to.InBounds() || b.At(to) != nil {
		return false, false
	}
	p := b.At(from)
	if p == nil || p.Color != color {
		return false, false
	}
	if chain != nil && *chain != from {
		return false, false
	}

	dr, dc := to.R-from.R, to.C-from.C
	if abs(dr) != abs(dc) || dr == 0 {
		return false, false
	}
	dist := abs(dr)
	stepR, stepC := sign(dr), sign(dc)

	// Scan the segment between from and to, exclusive of both ends.
	enemies, friends := 0, 0
	for sq := (Square{R: from.R + stepR, C: from.C + stepC}); sq != to; sq.R, sq.C = sq.R+stepR, sq.C+stepC {
		if mid := b.At(sq); mid != nil {
			if mid.Color == color {
				friends++
			} else {
				enemies++
			}
		}
	}

	isCapture := dist >= 2 && enemies == 1 && friends == 0
	if isCapture {
		if !p.King && dist != 2 {
			return false, false
		}
		return true, true
	}
	if chain != nil {
		return false, false
	}
	if enemies != 0 || friends != 0 {
		return false, false
	}
	// Simple candidate on a clear diagonal.
	if !p.King && (dist != 1 || dr != color.Forward()) {
		return false, false
	}
	if AnyCaptureAvailable(b, color) {
		return false, false
	}
	return true, false
}

// Apply moves the piece from from to to. On a capture it walks the
// diagonal from the origin and removes the first enemy piece it meets.
// A pawn reaching the opponent's home row is promoted to king.
func Apply(b *Board, from, to Square, capture bool) {
	p := b.At(from)
	if p == nil {
		return
	}
	if capture {
		stepR, stepC := sign(to.R-from.R), sign(to.C-from.C)
		for sq := (Square{R: from.R + stepR, C: from.C + stepC}); sq != to; sq.R, sq.C = sq.R+stepR, sq.C+stepC {
			if mid := b.At(sq); mid != nil && mid.Color != p.Color {
				b.Set(sq, nil)
				break
			}
		}
	}
	b.Set(from, nil)
	b.Set(to, p)
	if !p.King && to.R == p.Color.Opposite().HomeRow() {
		p.King = true
	}
}

// Terminal reasons reported in game_over frames.
const (
	ReasonAnnihilation = "annihilation"
	ReasonBlockade     = "blockade"
	ReasonStalemate    = "stalemate"
)

// Verdict is the result of a terminal check. Winner is empty for a draw.
type Verdict struct {
	Over   bool
	Winner Color
	Reason string
}

// CheckTerminal inspects the board after justMoved completed a ply and
// the turn passed to the opponent. Annihilation and blockade are wins
// for justMoved; a position where neither side can move is a stalemate
// draw.
func CheckTerminal(b *Board, justMoved Color) Verdict {
	opponent := justMoved.Opposite()
	if b.Count(opponent) == 0 {
		return Verdict{Over: true, Winner: justMoved, Reason: ReasonAnnihilation}
	}
	if !HasAnyMove(b, opponent) {
		if HasAnyMove(b, justMoved) {
			return Verdict{Over: true, Winner: justMoved, Reason: ReasonBlockade}
		}
		return Verdict{Over: true, Reason: ReasonStalemate}
	}
	return Verdict{}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
