package game

// Conn is the outbound half of a client channel as the game core sees
// it. Send must not block: implementations queue the frame and report
// false when the client cannot keep up, in which case the frame is
// dropped for that recipient and the game continues. Close is
// idempotent.
type Conn interface {
	Send(frame []byte) bool
	Close()
}

// Participant is the identity snapshot taken when a client attaches to
// a session. A zero ID means anonymous.
type Participant struct {
	ID    string
	Name  string
	Email string
}

// Outcomes submitted to the statistics collaborator.
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
	OutcomeDraw = "draw"
)

// StatsRecorder increments a user's win/loss/draw counters. Calls are
// best effort: failures are logged by the caller and never block or
// abort a game.
type StatsRecorder interface {
	RecordResult(userID, outcome string) error
}
