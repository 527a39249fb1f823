package game

import "github.com/damavoadora/server/internal/board"

// Inbound frame types routed by the dispatcher. Anything else is dropped.
const (
	TypeMove         = "move"
	TypeSurrender    = "surrender"
	TypeChat         = "chat"
	TypeSignal       = "signal"
	TypeRequestState = "request_state"
)

// Frame is the envelope decoded from every inbound text frame. Only the
// fields relevant to the routed type are populated; signal payloads are
// relayed from the raw bytes, never from this struct.
type Frame struct {
	Type string        `json:"type"`
	From *board.Square `json:"from"`
	To   *board.Square `json:"to"`
	Text string        `json:"text"`
}

// PlayerInfo is the per-slot identity block of an update frame.
// ID is null for anonymous players.
type PlayerInfo struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	ID    *string `json:"id"`
}

type playersInfo struct {
	White PlayerInfo `json:"white"`
	Black PlayerInfo `json:"black"`
}

type updateFrame struct {
	Type         string        `json:"type"`
	Board        *board.Board  `json:"board"`
	Turn         board.Color   `json:"turn"`
	ChainPiece   *board.Square `json:"chain_piece"`
	LastMoveFrom *board.Square `json:"last_move_from"`
	LastMoveTo   *board.Square `json:"last_move_to"`
	Players      playersInfo   `json:"players"`
}

type gameOverFrame struct {
	Type   string `json:"type"`
	Winner string `json:"winner"`
	Reason string `json:"reason"`
}

type matchFoundFrame struct {
	Type   string      `json:"type"`
	GameID string      `json:"game_id"`
	Color  board.Color `json:"color"`
}

// ReasonSurrender supplements the rules engine's terminal reasons.
const ReasonSurrender = "surrender"
