package board

// Color represents the color of a piece or player.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opposite returns the other color.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Forward returns the row direction a pawn of this color advances in.
// White moves toward row 0, black toward row 7.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// HomeRow returns the back row where pieces of this color start.
// A pawn promotes when it reaches the opponent's home row.
func (c Color) HomeRow() int {
	if c == White {
		return 7
	}
	return 0
}

// Valid reports whether c is one of the two playable colors.
func (c Color) Valid() bool {
	return c == White || c == Black
}

// ParseColor converts a wire string to a Color.
func ParseColor(s string) (Color, bool) {
	c := Color(s)
	return c, c.Valid()
}

// Piece is a single checkers piece. The JSON form matches the wire
// protocol: {"color":"white","king":false}.
type Piece struct {
	Color Color `json:"color"`
	King  bool  `json:"king"`
}

// Square is a board coordinate. Row 0 is the top (black home),
// row 7 the bottom (white home).
type Square struct {
	R int `json:"r"`
	C int `json:"c"`
}

// InBounds reports whether the square lies on the 8x8 board.
func (s Square) InBounds() bool {
	return s.R >= 0 && s.R < Size && s.C >= 0 && s.C < Size
}

// Dark reports whether the square is a playable dark square.
func (s Square) Dark() bool {
	return (s.R+s.C)%2 == 1
}
